package payload

// ApplyRequest submits an application for a job.
type ApplyRequest struct {
	JobID string `json:"jobId" validate:"required"`
}

// ChangeStatusRequest transitions an application's status.
type ChangeStatusRequest struct {
	ApplicationID string `json:"applicationId" validate:"required"`
	Status        string `json:"status"        validate:"required"`
}

// UpdateResumeRequest stores a new resume URL on the user profile.
type UpdateResumeRequest struct {
	Resume string `json:"resume" validate:"required,url"`
}
