package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/workhive/job-portal-api/internal/auth"
	"github.com/workhive/job-portal-api/internal/httputil"
	"github.com/workhive/job-portal-api/internal/repository"
)

const (
	msgLoginAgain      = "Not authorized. Please login again."
	msgUserNotFound    = "User not found"
	msgCompanyNotFound = "Company not found"
)

// Auth gates protected routes. It extracts a bearer token, verifies it, and
// loads the principal from the matching collection before the handler runs.
type Auth struct {
	jwtAuth     auth.JWTAuthenticator
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	logger      *zerolog.Logger
}

func NewAuth(
	jwtAuth auth.JWTAuthenticator,
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	logger *zerolog.Logger,
) *Auth {
	return &Auth{
		jwtAuth:     jwtAuth,
		userRepo:    userRepo,
		companyRepo: companyRepo,
		logger:      logger,
	}
}

// RequireUser authenticates a job seeker and attaches the loaded user to the
// request context. Responds 401 before the handler when the token is missing,
// expired, or invalid, and 404 when the token is valid but the account is gone.
func (a *Auth) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subjectID, ok := a.verifyRequest(w, r)
		if !ok {
			return
		}

		user, err := a.userRepo.GetUser(r.Context(), subjectID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, bson.ErrInvalidHex) {
				httputil.Error(w, http.StatusNotFound, msgUserNotFound)
				return
			}

			a.logger.Error().Err(err).Str("subject_id", subjectID).Msg("failed to load user principal")
			httputil.Error(w, http.StatusInternalServerError, "Something went wrong.")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireCompany authenticates a recruiter the same way RequireUser does,
// resolving the principal against the companies collection instead.
func (a *Auth) RequireCompany(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subjectID, ok := a.verifyRequest(w, r)
		if !ok {
			return
		}

		company, err := a.companyRepo.GetCompany(r.Context(), subjectID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, bson.ErrInvalidHex) {
				httputil.Error(w, http.StatusNotFound, msgCompanyNotFound)
				return
			}

			a.logger.Error().Err(err).Str("subject_id", subjectID).Msg("failed to load company principal")
			httputil.Error(w, http.StatusInternalServerError, "Something went wrong.")
			return
		}

		ctx := context.WithValue(r.Context(), companyContextKey, company)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// verifyRequest extracts and verifies the bearer token. Expired and malformed
// tokens are distinguished in logs but indistinguishable to the client.
func (a *Auth) verifyRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	token := extractToken(r)
	if token == "" {
		httputil.Error(w, http.StatusUnauthorized, msgLoginAgain)
		return "", false
	}

	subjectID, err := a.jwtAuth.Verify(token)
	if err != nil {
		event := a.logger.Debug().Str("request_id", RequestIDFrom(r.Context()))
		if errors.Is(err, auth.ErrTokenExpired) {
			event.Msg("rejected expired token")
		} else {
			event.Msg("rejected malformed token")
		}

		httputil.Error(w, http.StatusUnauthorized, msgLoginAgain)
		return "", false
	}

	return subjectID, true
}

// extractToken reads the credential from the Authorization header. The
// Bearer-prefixed form is canonical; a raw value or the legacy "token"
// header is accepted for backward compatibility.
func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		header = r.Header.Get("token")
	}

	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	return header
}
