package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/workhive/job-portal-api/internal/httputil"
	"github.com/workhive/job-portal-api/internal/middleware"
	"github.com/workhive/job-portal-api/internal/model"
	"github.com/workhive/job-portal-api/internal/payload"
	"github.com/workhive/job-portal-api/internal/usecase"
	"github.com/workhive/job-portal-api/internal/validation"
)

// CompanyHandler serves the recruiter endpoints under /api/company.
type CompanyHandler struct {
	authUsecase        usecase.AuthUsecase
	jobUsecase         usecase.JobUsecase
	applicationUsecase usecase.ApplicationUsecase
	validate           *validation.Validator
	logger             *zerolog.Logger
}

func NewCompanyHandler(
	authUsecase usecase.AuthUsecase,
	jobUsecase usecase.JobUsecase,
	applicationUsecase usecase.ApplicationUsecase,
	validate *validation.Validator,
	logger *zerolog.Logger,
) *CompanyHandler {
	return &CompanyHandler{
		authUsecase:        authUsecase,
		jobUsecase:         jobUsecase,
		applicationUsecase: applicationUsecase,
		validate:           validate,
		logger:             logger,
	}
}

func (h *CompanyHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	company, token, err := h.authUsecase.RegisterCompany(r.Context(), usecase.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Image:    req.Image,
	})
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	httputil.Success(w, http.StatusCreated, "Company registered successfully", httputil.Envelope{
		"company": company,
		"token":   token,
	})
}

func (h *CompanyHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	company, token, err := h.authUsecase.LoginCompany(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	httputil.Success(w, http.StatusOK, "Login successful", httputil.Envelope{
		"company": company,
		"token":   token,
	})
}

func (h *CompanyHandler) Me(w http.ResponseWriter, r *http.Request) {
	company, ok := middleware.CompanyFrom(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "Not authorized. Please login again.")
		return
	}

	httputil.Success(w, http.StatusOK, "Success", httputil.Envelope{"company": company})
}

func (h *CompanyHandler) PostJob(w http.ResponseWriter, r *http.Request) {
	company, ok := middleware.CompanyFrom(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "Not authorized. Please login again.")
		return
	}

	var req payload.PostJobRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	job, err := h.jobUsecase.PostJob(r.Context(), company.ID, usecase.PostJobParams{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Category:    req.Category,
		Level:       req.Level,
		Salary:      req.Salary,
	})
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	httputil.Success(w, http.StatusCreated, "Job posted successfully", httputil.Envelope{
		"job": job,
	})
}

func (h *CompanyHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	company, ok := middleware.CompanyFrom(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "Not authorized. Please login again.")
		return
	}

	jobs, err := h.jobUsecase.ListCompanyJobs(r.Context(), company.ID)
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	httputil.Success(w, http.StatusOK, "Success", httputil.Envelope{"jobs": jobs})
}

func (h *CompanyHandler) ListApplicants(w http.ResponseWriter, r *http.Request) {
	company, ok := middleware.CompanyFrom(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "Not authorized. Please login again.")
		return
	}

	applications, err := h.applicationUsecase.ListForCompany(r.Context(), company.ID, pageParams(r))
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	httputil.Success(w, http.StatusOK, "Success", httputil.Envelope{
		"applications": applications,
	})
}

func (h *CompanyHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	company, ok := middleware.CompanyFrom(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "Not authorized. Please login again.")
		return
	}

	var req payload.ChangeStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	application, err := h.applicationUsecase.SetStatus(
		r.Context(),
		company.ID,
		req.ApplicationID,
		model.ApplicationStatus(req.Status),
	)
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	httputil.Success(w, http.StatusOK, "Application status updated successfully", httputil.Envelope{
		"application": application,
	})
}

func (h *CompanyHandler) ChangeVisibility(w http.ResponseWriter, r *http.Request) {
	company, ok := middleware.CompanyFrom(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "Not authorized. Please login again.")
		return
	}

	var req payload.ChangeVisibilityRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	job, err := h.jobUsecase.ToggleVisibility(r.Context(), company.ID, req.ID)
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	httputil.Success(w, http.StatusOK, "Job visibility updated successfully", httputil.Envelope{
		"job": job,
	})
}
