// Package security provides password hashing for stored credentials.
package security

import (
	"github.com/matthewhartstonge/argon2"
)

var config = argon2.DefaultConfig()

// HashPassword hashes a plaintext password into a PHC-encoded argon2id string.
func HashPassword(password string) (string, error) {
	encoded, err := config.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}

// VerifyPassword reports whether password matches the stored encoded hash.
func VerifyPassword(password, encoded string) (bool, error) {
	return argon2.VerifyEncoded([]byte(password), []byte(encoded))
}
