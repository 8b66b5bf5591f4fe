package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/workhive/job-portal-api/internal/httputil"
	"github.com/workhive/job-portal-api/internal/repository"
	"github.com/workhive/job-portal-api/internal/usecase"
)

// JobHandler serves the public job browsing endpoints under /api/jobs.
type JobHandler struct {
	jobUsecase usecase.JobUsecase
	logger     *zerolog.Logger
}

func NewJobHandler(jobUsecase usecase.JobUsecase, logger *zerolog.Logger) *JobHandler {
	return &JobHandler{jobUsecase: jobUsecase, logger: logger}
}

// List returns visible jobs, newest first, with optional filters.
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobUsecase.ListVisibleJobs(r.Context(), filterParams(r))
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	httputil.Success(w, http.StatusOK, "Success", httputil.Envelope{"jobs": jobs})
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobUsecase.GetJob(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	httputil.Success(w, http.StatusOK, "Success", httputil.Envelope{"job": job})
}

func filterParams(r *http.Request) repository.FilterJobsParams {
	query := r.URL.Query()

	params := repository.FilterJobsParams{}
	if title := query.Get("title"); title != "" {
		params.Title = &title
	}
	if location := query.Get("location"); location != "" {
		params.Location = &location
	}
	if category := query.Get("category"); category != "" {
		params.Category = &category
	}
	if level := query.Get("level"); level != "" {
		params.Level = &level
	}

	page := pageParams(r)
	params.Limit = page.Limit
	params.Offset = page.Offset

	return params
}
