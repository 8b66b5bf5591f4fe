package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a job seeker account.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty"   json:"_id"`
	Name         string        `bson:"name"            json:"name"`
	Email        string        `bson:"email"           json:"email"`
	PasswordHash string        `bson:"password_hash"   json:"-"`
	Image        string        `bson:"image"           json:"image"`
	Resume       string        `bson:"resume"          json:"resume,omitempty"`
	Active       bool          `bson:"active"          json:"-"`
	LastLoginAt  time.Time     `bson:"last_login_at"   json:"-"`
	CreatedAt    time.Time     `bson:"created_at"      json:"-"`
	UpdatedAt    time.Time     `bson:"updated_at"      json:"-"`
}

// UserSummary is the projection of a user embedded in application listings.
type UserSummary struct {
	ID    bson.ObjectID `bson:"_id"   json:"_id"`
	Name  string        `bson:"name"  json:"name"`
	Email string        `bson:"email" json:"email"`
	Image string        `bson:"image" json:"image"`
}

// Summary returns the embeddable projection of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Image: u.Image}
}
