package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/workhive/job-portal-api/internal/model"
	"github.com/workhive/job-portal-api/internal/repository"
)

// JobUsecase defines the business logic for job postings.
type JobUsecase interface {
	PostJob(ctx context.Context, companyID bson.ObjectID, params PostJobParams) (*model.Job, error)
	GetJob(ctx context.Context, id string) (*JobWithCompany, error)
	ListVisibleJobs(ctx context.Context, params repository.FilterJobsParams) ([]JobWithCompany, error)
	ListCompanyJobs(ctx context.Context, companyID bson.ObjectID) ([]JobWithApplicants, error)
	ToggleVisibility(ctx context.Context, companyID bson.ObjectID, jobID string) (*model.Job, error)
}

// PostJobParams defines the parameters for creating a job posting.
type PostJobParams struct {
	Title       string
	Description string
	Location    string
	Category    string
	Level       string
	Salary      int64
}

// JobWithCompany is a job joined with its owning company's public summary.
type JobWithCompany struct {
	model.Job
	Company model.CompanySummary `json:"company"`
}

// JobWithApplicants is a job joined with the number of applications it
// received, for the company dashboard.
type JobWithApplicants struct {
	model.Job
	Applicants int64 `json:"applicants"`
}

var (
	ErrJobNotFound = errors.New("job not found")
	// ErrNotOwner is the single ownership-gate failure for every
	// company-scoped mutation.
	ErrNotOwner = errors.New("not authorized to modify this resource")
)

type jobUsecase struct {
	jobRepo         repository.JobRepository
	companyRepo     repository.CompanyRepository
	applicationRepo repository.ApplicationRepository
}

func NewJobUsecase(
	jobRepo repository.JobRepository,
	companyRepo repository.CompanyRepository,
	applicationRepo repository.ApplicationRepository,
) JobUsecase {
	return &jobUsecase{
		jobRepo:         jobRepo,
		companyRepo:     companyRepo,
		applicationRepo: applicationRepo,
	}
}

// ensureCompanyOwns is the reusable ownership guard: every company-scoped
// mutation must pass through it before touching the resource.
func ensureCompanyOwns(companyID, resourceCompanyID bson.ObjectID) error {
	if companyID != resourceCompanyID {
		return ErrNotOwner
	}
	return nil
}

func (u *jobUsecase) PostJob(
	ctx context.Context,
	companyID bson.ObjectID,
	params PostJobParams,
) (*model.Job, error) {
	return u.jobRepo.CreateJob(ctx, &model.Job{
		Title:       params.Title,
		Description: params.Description,
		Location:    params.Location,
		Category:    params.Category,
		Level:       params.Level,
		Salary:      params.Salary,
		Visible:     true,
		CompanyID:   companyID,
	})
}

func (u *jobUsecase) GetJob(ctx context.Context, id string) (*JobWithCompany, error) {
	job, err := u.jobRepo.GetJob(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, bson.ErrInvalidHex) {
			return nil, ErrJobNotFound
		}

		return nil, err
	}

	company, err := u.companyRepo.GetCompany(ctx, job.CompanyID.Hex())
	if err != nil {
		return nil, err
	}

	return &JobWithCompany{Job: *job, Company: company.Summary()}, nil
}

func (u *jobUsecase) ListVisibleJobs(
	ctx context.Context,
	params repository.FilterJobsParams,
) ([]JobWithCompany, error) {
	jobs, err := u.jobRepo.ListVisibleJobs(ctx, params)
	if err != nil {
		return nil, err
	}

	companies, err := u.companiesFor(ctx, jobs)
	if err != nil {
		return nil, err
	}

	result := make([]JobWithCompany, 0, len(jobs))
	for _, job := range jobs {
		result = append(result, JobWithCompany{Job: job, Company: companies[job.CompanyID]})
	}

	return result, nil
}

func (u *jobUsecase) ListCompanyJobs(
	ctx context.Context,
	companyID bson.ObjectID,
) ([]JobWithApplicants, error) {
	jobs, err := u.jobRepo.ListJobsByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	jobIDs := make([]bson.ObjectID, 0, len(jobs))
	for _, job := range jobs {
		jobIDs = append(jobIDs, job.ID)
	}

	counts, err := u.applicationRepo.CountByJobs(ctx, jobIDs)
	if err != nil {
		return nil, err
	}

	result := make([]JobWithApplicants, 0, len(jobs))
	for _, job := range jobs {
		result = append(result, JobWithApplicants{Job: job, Applicants: counts[job.ID]})
	}

	return result, nil
}

func (u *jobUsecase) ToggleVisibility(
	ctx context.Context,
	companyID bson.ObjectID,
	jobID string,
) (*model.Job, error) {
	job, err := u.jobRepo.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, bson.ErrInvalidHex) {
			return nil, ErrJobNotFound
		}

		return nil, err
	}

	if err := ensureCompanyOwns(companyID, job.CompanyID); err != nil {
		return nil, err
	}

	return u.jobRepo.SetVisibility(ctx, job.ID, !job.Visible)
}

func (u *jobUsecase) companiesFor(
	ctx context.Context,
	jobs []model.Job,
) (map[bson.ObjectID]model.CompanySummary, error) {
	seen := make(map[bson.ObjectID]bool, len(jobs))
	ids := make([]bson.ObjectID, 0, len(jobs))
	for _, job := range jobs {
		if !seen[job.CompanyID] {
			seen[job.CompanyID] = true
			ids = append(ids, job.CompanyID)
		}
	}

	companies, err := u.companyRepo.GetCompaniesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	summaries := make(map[bson.ObjectID]model.CompanySummary, len(companies))
	for i := range companies {
		summaries[companies[i].ID] = companies[i].Summary()
	}

	return summaries, nil
}
