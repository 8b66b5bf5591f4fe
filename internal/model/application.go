package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ApplicationStatus is the lifecycle state of a job application.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "Pending"
	StatusAccepted ApplicationStatus = "Accepted"
	StatusRejected ApplicationStatus = "Rejected"
)

// Valid reports whether s is one of the known status values.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether s is a final decision.
func (s ApplicationStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// Application ties a user to a job. At most one application exists per
// (user, job) pair, enforced by a unique compound index. The company id
// is denormalized from the job for company-side queries.
type Application struct {
	ID        bson.ObjectID     `bson:"_id,omitempty" json:"_id"`
	UserID    bson.ObjectID     `bson:"user_id"       json:"userId"`
	JobID     bson.ObjectID     `bson:"job_id"        json:"jobId"`
	CompanyID bson.ObjectID     `bson:"company_id"    json:"companyId"`
	Status    ApplicationStatus `bson:"status"        json:"status"`
	Date      time.Time         `bson:"date"          json:"date"`
	CreatedAt time.Time         `bson:"created_at"    json:"-"`
	UpdatedAt time.Time         `bson:"updated_at"    json:"-"`
}
