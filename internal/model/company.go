package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Company represents a recruiter account that owns job postings.
type Company struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name         string        `bson:"name"          json:"name"`
	Email        string        `bson:"email"         json:"email"`
	PasswordHash string        `bson:"password_hash" json:"-"`
	Image        string        `bson:"image"         json:"image"`
	CreatedAt    time.Time     `bson:"created_at"    json:"-"`
	UpdatedAt    time.Time     `bson:"updated_at"    json:"-"`
}

// CompanySummary is the projection of a company embedded in job and
// application listings. The password hash never leaves the repository.
type CompanySummary struct {
	ID    bson.ObjectID `bson:"_id"   json:"_id"`
	Name  string        `bson:"name"  json:"name"`
	Email string        `bson:"email" json:"email"`
	Image string        `bson:"image" json:"image"`
}

// Summary returns the embeddable projection of the company.
func (c *Company) Summary() CompanySummary {
	return CompanySummary{ID: c.ID, Name: c.Name, Email: c.Email, Image: c.Image}
}
