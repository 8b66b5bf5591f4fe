package middleware

import (
	"context"

	"github.com/workhive/job-portal-api/internal/model"
)

type contextKey struct{ name string }

var (
	userContextKey      = &contextKey{"user"}
	companyContextKey   = &contextKey{"company"}
	requestIDContextKey = &contextKey{"request-id"}
)

// UserFrom returns the authenticated user attached by RequireUser.
func UserFrom(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userContextKey).(*model.User)
	return user, ok
}

// CompanyFrom returns the authenticated company attached by RequireCompany.
func CompanyFrom(ctx context.Context) (*model.Company, bool) {
	company, ok := ctx.Value(companyContextKey).(*model.Company)
	return company, ok
}

// RequestIDFrom returns the id assigned to the current request.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey).(string)
	return id
}
