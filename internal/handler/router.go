package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/workhive/job-portal-api/internal/httputil"
	"github.com/workhive/job-portal-api/internal/middleware"
)

// NewRouter mounts all routes. Public job browsing is unauthenticated; user
// and company routes are gated by the matching auth middleware.
func NewRouter(
	userHandler *UserHandler,
	companyHandler *CompanyHandler,
	jobHandler *JobHandler,
	authMiddleware *middleware.Auth,
	logger *zerolog.Logger,
	requestTimeout time.Duration,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(chimiddleware.Timeout(requestTimeout))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		httputil.Success(w, http.StatusOK, "API is working", nil)
	})

	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", userHandler.Register)
		r.Post("/login", userHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireUser)
			r.Get("/user", userHandler.Me)
			r.Post("/apply", userHandler.Apply)
			r.Get("/applications", userHandler.ListApplications)
			r.Post("/update-resume", userHandler.UpdateResume)
			r.Post("/logout", userHandler.Logout)
		})
	})

	r.Route("/api/company", func(r chi.Router) {
		r.Post("/register", companyHandler.Register)
		r.Post("/login", companyHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireCompany)
			r.Get("/company", companyHandler.Me)
			r.Post("/post-job", companyHandler.PostJob)
			r.Get("/list-jobs", companyHandler.ListJobs)
			r.Get("/applicants", companyHandler.ListApplicants)
			r.Post("/change-status", companyHandler.ChangeStatus)
			r.Post("/change-visibility", companyHandler.ChangeVisibility)
		})
	})

	r.Route("/api/jobs", func(r chi.Router) {
		r.Get("/", jobHandler.List)
		r.Get("/{id}", jobHandler.Get)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.Error(w, http.StatusNotFound, "Route not found")
	})

	return r
}
