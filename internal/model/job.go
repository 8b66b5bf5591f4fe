package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Job represents a posting owned by exactly one company. Hiding a job
// removes it from public listings; postings are never physically deleted.
type Job struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string        `bson:"title"         json:"title"`
	Description string        `bson:"description"   json:"description"`
	Location    string        `bson:"location"      json:"location"`
	Category    string        `bson:"category"      json:"category"`
	Level       string        `bson:"level"         json:"level"`
	Salary      int64         `bson:"salary"        json:"salary"`
	Visible     bool          `bson:"visible"       json:"visible"`
	CompanyID   bson.ObjectID `bson:"company_id"    json:"companyId"`
	Date        time.Time     `bson:"date"          json:"date"`
	CreatedAt   time.Time     `bson:"created_at"    json:"-"`
	UpdatedAt   time.Time     `bson:"updated_at"    json:"-"`
}

// JobSummary is the projection of a job embedded in application listings.
type JobSummary struct {
	ID       bson.ObjectID `bson:"_id"      json:"_id"`
	Title    string        `bson:"title"    json:"title"`
	Location string        `bson:"location" json:"location"`
	Category string        `bson:"category" json:"category"`
	Level    string        `bson:"level"    json:"level"`
	Salary   int64         `bson:"salary"   json:"salary"`
}

// Summary returns the embeddable projection of the job.
func (j *Job) Summary() JobSummary {
	return JobSummary{
		ID:       j.ID,
		Title:    j.Title,
		Location: j.Location,
		Category: j.Category,
		Level:    j.Level,
		Salary:   j.Salary,
	}
}
