// Package config loads runtime settings from environment variables.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/workhive/job-portal-api/internal/mailer"
)

// Config holds all runtime settings for the job portal API.
type Config struct {
	Addr          string `env:"ADDR"           envDefault:":5000"`
	MongoURI      string `env:"MONGO_URI"      envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"jobportal"`

	JWTSecret      string        `env:"JWT_SECRET,required"`
	JWTIssuer      string        `env:"JWT_ISSUER"       envDefault:"job-portal-api"`
	TokenExpiresIn time.Duration `env:"TOKEN_EXPIRES_IN" envDefault:"720h"`

	// RequestTimeout bounds every request context, including its database
	// round-trips.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`

	Mailer mailer.Config
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
