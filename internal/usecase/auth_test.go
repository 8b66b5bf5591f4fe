package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workhive/job-portal-api/internal/auth"
)

func newAuthFixture() (AuthUsecase, *fakeUserRepo, *fakeCompanyRepo) {
	userRepo := newFakeUserRepo()
	companyRepo := newFakeCompanyRepo()
	jwtAuth := auth.NewJWTAuthenticator("test-secret", "job-portal-api", time.Hour)

	return NewAuthUsecase(userRepo, companyRepo, jwtAuth), userRepo, companyRepo
}

func TestRegisterUser_IssuesTokenForNewUser(t *testing.T) {
	t.Parallel()

	uc, _, _ := newAuthFixture()

	user, token, err := uc.RegisterUser(context.Background(), RegisterParams{
		Name:     "Jane Doe",
		Email:    "Jane@Example.com",
		Password: "Sup3r$ecret",
		Image:    "https://img.example.com/jane.png",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, token)
	assert.Equal(t, "jane@example.com", user.Email, "email should be normalized")
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "Sup3r$ecret", user.PasswordHash)
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	t.Parallel()

	uc, _, _ := newAuthFixture()
	ctx := context.Background()

	params := RegisterParams{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "Sup3r$ecret",
		Image:    "https://img.example.com/jane.png",
	}

	_, _, err := uc.RegisterUser(ctx, params)
	require.NoError(t, err)

	_, _, err = uc.RegisterUser(ctx, params)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLoginUser_Success(t *testing.T) {
	t.Parallel()

	uc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, _, err := uc.RegisterUser(ctx, RegisterParams{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "Sup3r$ecret",
		Image:    "https://img.example.com/jane.png",
	})
	require.NoError(t, err)

	user, token, err := uc.LoginUser(ctx, LoginParams{
		Email:    "JANE@example.com",
		Password: "Sup3r$ecret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "jane@example.com", user.Email)
}

func TestLoginUser_InvalidCredentials(t *testing.T) {
	t.Parallel()

	uc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, _, err := uc.RegisterUser(ctx, RegisterParams{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "Sup3r$ecret",
		Image:    "https://img.example.com/jane.png",
	})
	require.NoError(t, err)

	// Unknown email and wrong password are indistinguishable to the caller.
	_, _, err = uc.LoginUser(ctx, LoginParams{Email: "nobody@example.com", Password: "Sup3r$ecret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = uc.LoginUser(ctx, LoginParams{Email: "jane@example.com", Password: "Wr0ng$ecret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterCompany_DuplicateEmail(t *testing.T) {
	t.Parallel()

	uc, _, _ := newAuthFixture()
	ctx := context.Background()

	params := RegisterParams{
		Name:     "Acme Corp",
		Email:    "hr@acme.example.com",
		Password: "Sup3r$ecret",
		Image:    "https://img.example.com/acme.png",
	}

	_, _, err := uc.RegisterCompany(ctx, params)
	require.NoError(t, err)

	_, _, err = uc.RegisterCompany(ctx, params)
	assert.ErrorIs(t, err, ErrCompanyAlreadyExists)
}

func TestLoginCompany_Success(t *testing.T) {
	t.Parallel()

	uc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, _, err := uc.RegisterCompany(ctx, RegisterParams{
		Name:     "Acme Corp",
		Email:    "hr@acme.example.com",
		Password: "Sup3r$ecret",
		Image:    "https://img.example.com/acme.png",
	})
	require.NoError(t, err)

	company, token, err := uc.LoginCompany(ctx, LoginParams{
		Email:    "hr@acme.example.com",
		Password: "Sup3r$ecret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "Acme Corp", company.Name)
}

func TestUpdateUserResume(t *testing.T) {
	t.Parallel()

	uc, _, _ := newAuthFixture()
	ctx := context.Background()

	user, _, err := uc.RegisterUser(ctx, RegisterParams{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "Sup3r$ecret",
		Image:    "https://img.example.com/jane.png",
	})
	require.NoError(t, err)

	updated, err := uc.UpdateUserResume(ctx, user.ID.Hex(), "https://cdn.example.com/jane.pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/jane.pdf", updated.Resume)
}
