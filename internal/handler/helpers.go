package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/workhive/job-portal-api/internal/httputil"
	"github.com/workhive/job-portal-api/internal/repository"
	"github.com/workhive/job-portal-api/internal/usecase"
)

const defaultPageSize = 10
const maxPageSize = 100

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}

// pageParams reads ?page and ?limit, clamping the limit. Pages are 1-based.
func pageParams(r *http.Request) repository.PageParams {
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	if page < 1 {
		page = 1
	}

	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	return repository.PageParams{
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// respondUsecaseError maps business errors to HTTP responses. Anything
// unrecognized is logged and becomes a generic 500; internal detail is never
// echoed to the client.
func respondUsecaseError(w http.ResponseWriter, logger *zerolog.Logger, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		httputil.Error(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, usecase.ErrUserAlreadyExists):
		httputil.Error(w, http.StatusConflict, "User already registered")
	case errors.Is(err, usecase.ErrCompanyAlreadyExists):
		httputil.Error(w, http.StatusConflict, "Company already registered")
	case errors.Is(err, usecase.ErrUserNotFound):
		httputil.Error(w, http.StatusNotFound, "User not found")
	case errors.Is(err, usecase.ErrJobNotFound):
		httputil.Error(w, http.StatusNotFound, "Job not found")
	case errors.Is(err, usecase.ErrJobHidden):
		httputil.Error(w, http.StatusBadRequest, "Job is not accepting applications")
	case errors.Is(err, usecase.ErrAlreadyApplied):
		httputil.Error(w, http.StatusBadRequest, "Already applied for this job")
	case errors.Is(err, usecase.ErrApplicationNotFound):
		httputil.Error(w, http.StatusNotFound, "Application not found")
	case errors.Is(err, usecase.ErrInvalidStatus):
		httputil.Error(w, http.StatusBadRequest, "Invalid application status")
	case errors.Is(err, usecase.ErrApplicationDecided):
		httputil.Error(w, http.StatusConflict, "Application has already been decided")
	case errors.Is(err, usecase.ErrNotOwner):
		httputil.Error(w, http.StatusForbidden, "You are not authorized to modify this resource")
	default:
		logger.Error().Err(err).Msg("unexpected error")
		httputil.Error(w, http.StatusInternalServerError, "Something went wrong.")
	}
}
