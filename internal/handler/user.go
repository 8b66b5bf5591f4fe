package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/workhive/job-portal-api/internal/httputil"
	"github.com/workhive/job-portal-api/internal/middleware"
	"github.com/workhive/job-portal-api/internal/payload"
	"github.com/workhive/job-portal-api/internal/usecase"
	"github.com/workhive/job-portal-api/internal/validation"
)

// UserHandler serves the job-seeker endpoints under /api/user.
type UserHandler struct {
	authUsecase        usecase.AuthUsecase
	applicationUsecase usecase.ApplicationUsecase
	validate           *validation.Validator
	logger             *zerolog.Logger
}

func NewUserHandler(
	authUsecase usecase.AuthUsecase,
	applicationUsecase usecase.ApplicationUsecase,
	validate *validation.Validator,
	logger *zerolog.Logger,
) *UserHandler {
	return &UserHandler{
		authUsecase:        authUsecase,
		applicationUsecase: applicationUsecase,
		validate:           validate,
		logger:             logger,
	}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := h.authUsecase.RegisterUser(r.Context(), usecase.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Image:    req.Image,
	})
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	httputil.Success(w, http.StatusCreated, "User registered successfully", httputil.Envelope{
		"user":  user,
		"token": token,
	})
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := h.authUsecase.LoginUser(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	httputil.Success(w, http.StatusOK, "Login successful", httputil.Envelope{
		"user":  user,
		"token": token,
	})
}

// Me returns the principal the auth middleware already loaded; no second
// repository read happens here.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "Not authorized. Please login again.")
		return
	}

	httputil.Success(w, http.StatusOK, "Success", httputil.Envelope{"user": user})
}

func (h *UserHandler) UpdateResume(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "Not authorized. Please login again.")
		return
	}

	var req payload.UpdateResumeRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.authUsecase.UpdateUserResume(r.Context(), user.ID.Hex(), req.Resume)
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	httputil.Success(w, http.StatusOK, "Resume updated successfully", httputil.Envelope{
		"user": updated,
	})
}

func (h *UserHandler) Apply(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "Not authorized. Please login again.")
		return
	}

	var req payload.ApplyRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	application, err := h.applicationUsecase.Apply(r.Context(), user.ID, req.JobID)
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	httputil.Success(w, http.StatusCreated, "Job applied successfully", httputil.Envelope{
		"application": application,
	})
}

func (h *UserHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "Not authorized. Please login again.")
		return
	}

	applications, err := h.applicationUsecase.ListForUser(r.Context(), user.ID, pageParams(r))
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	httputil.Success(w, http.StatusOK, "Success", httputil.Envelope{
		"applications": applications,
	})
}

// Logout acknowledges a client-side token discard. Tokens are stateless and
// are not revoked server-side.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	httputil.Success(w, http.StatusOK, "Logged out successfully", nil)
}
