package payload

// PostJobRequest creates a new job posting.
type PostJobRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
	Location    string `json:"location"    validate:"required"`
	Category    string `json:"category"    validate:"required"`
	Level       string `json:"level"       validate:"required"`
	Salary      int64  `json:"salary"      validate:"required,gte=0"`
}

// ChangeVisibilityRequest toggles a job's visibility flag.
type ChangeVisibilityRequest struct {
	ID string `json:"id" validate:"required"`
}
