package usecase

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/workhive/job-portal-api/internal/auth"
	"github.com/workhive/job-portal-api/internal/model"
	"github.com/workhive/job-portal-api/internal/repository"
	"github.com/workhive/job-portal-api/internal/security"
)

// AuthUsecase defines the business logic for account registration and login,
// covering both actor types.
type AuthUsecase interface {
	RegisterUser(ctx context.Context, params RegisterParams) (*model.User, string, error)
	LoginUser(ctx context.Context, params LoginParams) (*model.User, string, error)
	UpdateUserResume(ctx context.Context, userID string, resume string) (*model.User, error)
	RegisterCompany(ctx context.Context, params RegisterParams) (*model.Company, string, error)
	LoginCompany(ctx context.Context, params LoginParams) (*model.Company, string, error)
}

// RegisterParams defines the parameters for registering a principal.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
	Image    string
}

// LoginParams defines the parameters for principal login.
type LoginParams struct {
	Email    string
	Password string
}

var (
	ErrUserAlreadyExists    = errors.New("user already registered")
	ErrCompanyAlreadyExists = errors.New("company already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUserNotFound         = errors.New("user not found")
)

type authUsecase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	jwtAuth     auth.JWTAuthenticator
}

func NewAuthUsecase(
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	jwtAuth auth.JWTAuthenticator,
) AuthUsecase {
	return &authUsecase{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		jwtAuth:     jwtAuth,
	}
}

func (u *authUsecase) RegisterUser(ctx context.Context, params RegisterParams) (*model.User, string, error) {
	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, "", err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Name:         params.Name,
		Email:        normalizeEmail(params.Email),
		PasswordHash: passwordHash,
		Image:        params.Image,
	})
	if err != nil {
		// The unique email index is the authority on duplicates.
		if mongo.IsDuplicateKeyError(err) {
			return nil, "", ErrUserAlreadyExists
		}

		return nil, "", err
	}

	token, err := u.jwtAuth.Issue(user.ID.Hex())
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (u *authUsecase) LoginUser(ctx context.Context, params LoginParams) (*model.User, string, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, normalizeEmail(params.Email))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", ErrInvalidCredentials
		}

		return nil, "", err
	}

	if ok, err := security.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return nil, "", err
	} else if !ok {
		return nil, "", ErrInvalidCredentials
	}

	if err := u.userRepo.UpdateLastLogin(ctx, user.ID.Hex()); err != nil {
		return nil, "", err
	}

	token, err := u.jwtAuth.Issue(user.ID.Hex())
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (u *authUsecase) UpdateUserResume(ctx context.Context, userID string, resume string) (*model.User, error) {
	user, err := u.userRepo.UpdateResume(ctx, userID, resume)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return user, nil
}

func (u *authUsecase) RegisterCompany(ctx context.Context, params RegisterParams) (*model.Company, string, error) {
	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, "", err
	}

	company, err := u.companyRepo.CreateCompany(ctx, &model.Company{
		Name:         params.Name,
		Email:        normalizeEmail(params.Email),
		PasswordHash: passwordHash,
		Image:        params.Image,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, "", ErrCompanyAlreadyExists
		}

		return nil, "", err
	}

	token, err := u.jwtAuth.Issue(company.ID.Hex())
	if err != nil {
		return nil, "", err
	}

	return company, token, nil
}

func (u *authUsecase) LoginCompany(ctx context.Context, params LoginParams) (*model.Company, string, error) {
	company, err := u.companyRepo.GetCompanyByEmail(ctx, normalizeEmail(params.Email))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", ErrInvalidCredentials
		}

		return nil, "", err
	}

	if ok, err := security.VerifyPassword(params.Password, company.PasswordHash); err != nil {
		return nil, "", err
	} else if !ok {
		return nil, "", ErrInvalidCredentials
	}

	token, err := u.jwtAuth.Issue(company.ID.Hex())
	if err != nil {
		return nil, "", err
	}

	return company, token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
