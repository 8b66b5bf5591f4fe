package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/workhive/job-portal-api/internal/auth"
	"github.com/workhive/job-portal-api/internal/model"
)

type stubUserRepo struct {
	users map[string]*model.User
}

func (r *stubUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	return user, nil
}

func (r *stubUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	if _, err := bson.ObjectIDFromHex(id); err != nil {
		return nil, err
	}
	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return user, nil
}

func (r *stubUserRepo) GetUserByEmail(_ context.Context, _ string) (*model.User, error) {
	return nil, mongo.ErrNoDocuments
}

func (r *stubUserRepo) GetUsersByIDs(_ context.Context, _ []bson.ObjectID) ([]model.User, error) {
	return nil, nil
}

func (r *stubUserRepo) UpdateResume(_ context.Context, _ string, _ string) (*model.User, error) {
	return nil, mongo.ErrNoDocuments
}

func (r *stubUserRepo) UpdateLastLogin(_ context.Context, _ string) error {
	return nil
}

type stubCompanyRepo struct {
	companies map[string]*model.Company
}

func (r *stubCompanyRepo) CreateCompany(_ context.Context, company *model.Company) (*model.Company, error) {
	return company, nil
}

func (r *stubCompanyRepo) GetCompany(_ context.Context, id string) (*model.Company, error) {
	if _, err := bson.ObjectIDFromHex(id); err != nil {
		return nil, err
	}
	company, ok := r.companies[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return company, nil
}

func (r *stubCompanyRepo) GetCompanyByEmail(_ context.Context, _ string) (*model.Company, error) {
	return nil, mongo.ErrNoDocuments
}

func (r *stubCompanyRepo) GetCompaniesByIDs(_ context.Context, _ []bson.ObjectID) ([]model.Company, error) {
	return nil, nil
}

type authFixture struct {
	auth    *Auth
	jwtAuth auth.JWTAuthenticator
	user    *model.User
	company *model.Company
}

func newAuthTestFixture(t *testing.T) *authFixture {
	t.Helper()

	user := &model.User{ID: bson.NewObjectID(), Name: "Jane Doe", Email: "jane@example.com"}
	company := &model.Company{ID: bson.NewObjectID(), Name: "Acme Corp", Email: "hr@acme.example.com"}

	jwtAuth := auth.NewJWTAuthenticator("test-secret", "job-portal-api", time.Hour)
	logger := zerolog.Nop()

	return &authFixture{
		auth: NewAuth(
			jwtAuth,
			&stubUserRepo{users: map[string]*model.User{user.ID.Hex(): user}},
			&stubCompanyRepo{companies: map[string]*model.Company{company.ID.Hex(): company}},
			&logger,
		),
		jwtAuth: jwtAuth,
		user:    user,
		company: company,
	}
}

// sentinelHandler records whether the inner handler ran and captures the
// principal from the request context.
type sentinelHandler struct {
	called  bool
	user    *model.User
	company *model.Company
}

func (h *sentinelHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.called = true
	h.user, _ = UserFrom(r.Context())
	h.company, _ = CompanyFrom(r.Context())
	w.WriteHeader(http.StatusOK)
}

func doRequest(t *testing.T, mw func(http.Handler) http.Handler, header, value string) (*httptest.ResponseRecorder, *sentinelHandler) {
	t.Helper()

	inner := &sentinelHandler{}
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set(header, value)
	}

	rec := httptest.NewRecorder()
	mw(inner).ServeHTTP(rec, req)
	return rec, inner
}

func TestRequireUser_MissingToken(t *testing.T) {
	t.Parallel()

	f := newAuthTestFixture(t)

	rec, inner := doRequest(t, f.auth.RequireUser, "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, inner.called, "handler must not run without a token")

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Not authorized. Please login again.", body["message"])
}

func TestRequireUser_BearerToken(t *testing.T) {
	t.Parallel()

	f := newAuthTestFixture(t)

	token, err := f.jwtAuth.Issue(f.user.ID.Hex())
	require.NoError(t, err)

	rec, inner := doRequest(t, f.auth.RequireUser, "Authorization", "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, inner.called)
	require.NotNil(t, inner.user)
	assert.Equal(t, f.user.ID, inner.user.ID)
}

func TestRequireUser_LegacyTokenHeader(t *testing.T) {
	t.Parallel()

	f := newAuthTestFixture(t)

	token, err := f.jwtAuth.Issue(f.user.ID.Hex())
	require.NoError(t, err)

	rec, inner := doRequest(t, f.auth.RequireUser, "token", token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, inner.called)
}

func TestRequireUser_ExpiredToken(t *testing.T) {
	t.Parallel()

	f := newAuthTestFixture(t)

	expiredAuth := auth.NewJWTAuthenticator("test-secret", "job-portal-api", -time.Hour)
	token, err := expiredAuth.Issue(f.user.ID.Hex())
	require.NoError(t, err)

	rec, inner := doRequest(t, f.auth.RequireUser, "Authorization", "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, inner.called)
}

func TestRequireUser_GarbageToken(t *testing.T) {
	t.Parallel()

	f := newAuthTestFixture(t)

	rec, inner := doRequest(t, f.auth.RequireUser, "Authorization", "Bearer not.a.token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, inner.called)
}

func TestRequireUser_UnknownPrincipal(t *testing.T) {
	t.Parallel()

	f := newAuthTestFixture(t)

	// Valid token whose subject no longer exists in storage.
	token, err := f.jwtAuth.Issue(bson.NewObjectID().Hex())
	require.NoError(t, err)

	rec, inner := doRequest(t, f.auth.RequireUser, "Authorization", "Bearer "+token)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, inner.called)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "User not found", body["message"])
}

func TestRequireCompany_BearerToken(t *testing.T) {
	t.Parallel()

	f := newAuthTestFixture(t)

	token, err := f.jwtAuth.Issue(f.company.ID.Hex())
	require.NoError(t, err)

	rec, inner := doRequest(t, f.auth.RequireCompany, "Authorization", "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, inner.called)
	require.NotNil(t, inner.company)
	assert.Equal(t, f.company.ID, inner.company.ID)
}

func TestRequireCompany_UserTokenRejected(t *testing.T) {
	t.Parallel()

	// A user token carries a subject that only exists in the users collection,
	// so the company gate resolves it to 404.
	f := newAuthTestFixture(t)

	token, err := f.jwtAuth.Issue(f.user.ID.Hex())
	require.NoError(t, err)

	rec, inner := doRequest(t, f.auth.RequireCompany, "Authorization", "Bearer "+token)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, inner.called)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Company not found", body["message"])
}
