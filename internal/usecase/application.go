package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/workhive/job-portal-api/internal/mailer"
	"github.com/workhive/job-portal-api/internal/model"
	"github.com/workhive/job-portal-api/internal/repository"
)

// ApplicationUsecase defines the business logic for the application
// lifecycle: NotApplied -> Pending -> Accepted/Rejected.
type ApplicationUsecase interface {
	Apply(ctx context.Context, userID bson.ObjectID, jobID string) (*model.Application, error)
	ListForUser(ctx context.Context, userID bson.ObjectID, params repository.PageParams) ([]ApplicationDetail, error)
	ListForCompany(ctx context.Context, companyID bson.ObjectID, params repository.PageParams) ([]ApplicationDetail, error)
	SetStatus(ctx context.Context, companyID bson.ObjectID, applicationID string, status model.ApplicationStatus) (*model.Application, error)
}

// ApplicationDetail is an application joined with the summaries the client
// renders: the job, its company, and (for company listings) the applicant.
type ApplicationDetail struct {
	model.Application
	Job     model.JobSummary     `json:"job"`
	Company model.CompanySummary `json:"company"`
	User    *model.UserSummary   `json:"user,omitempty"`
}

var (
	ErrJobHidden           = errors.New("job is not accepting applications")
	ErrAlreadyApplied      = errors.New("already applied for this job")
	ErrApplicationNotFound = errors.New("application not found")
	ErrInvalidStatus       = errors.New("invalid application status")
	ErrApplicationDecided  = errors.New("application has already been decided")
)

type applicationUsecase struct {
	applicationRepo repository.ApplicationRepository
	jobRepo         repository.JobRepository
	userRepo        repository.UserRepository
	companyRepo     repository.CompanyRepository
	mail            *mailer.Mailer
	logger          *zerolog.Logger
}

func NewApplicationUsecase(
	applicationRepo repository.ApplicationRepository,
	jobRepo repository.JobRepository,
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	mail *mailer.Mailer,
	logger *zerolog.Logger,
) ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		userRepo:        userRepo,
		companyRepo:     companyRepo,
		mail:            mail,
		logger:          logger,
	}
}

func (u *applicationUsecase) Apply(
	ctx context.Context,
	userID bson.ObjectID,
	jobID string,
) (*model.Application, error) {
	job, err := u.jobRepo.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, bson.ErrInvalidHex) {
			return nil, ErrJobNotFound
		}

		return nil, err
	}

	if !job.Visible {
		return nil, ErrJobHidden
	}

	// Fast path only. The unique (user_id, job_id) index below is what
	// actually guarantees at-most-one under concurrent submissions.
	if _, err := u.applicationRepo.GetApplicationByUserAndJob(ctx, userID, job.ID); err == nil {
		return nil, ErrAlreadyApplied
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	application, err := u.applicationRepo.CreateApplication(ctx, &model.Application{
		UserID:    userID,
		JobID:     job.ID,
		CompanyID: job.CompanyID,
		Status:    model.StatusPending,
	})
	if err != nil {
		// A concurrent duplicate lost the race against the unique index.
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrAlreadyApplied
		}

		return nil, err
	}

	return application, nil
}

func (u *applicationUsecase) ListForUser(
	ctx context.Context,
	userID bson.ObjectID,
	params repository.PageParams,
) ([]ApplicationDetail, error) {
	applications, err := u.applicationRepo.ListApplicationsByUser(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	return u.joinDetails(ctx, applications, false)
}

func (u *applicationUsecase) ListForCompany(
	ctx context.Context,
	companyID bson.ObjectID,
	params repository.PageParams,
) ([]ApplicationDetail, error) {
	applications, err := u.applicationRepo.ListApplicationsByCompany(ctx, companyID, params)
	if err != nil {
		return nil, err
	}

	return u.joinDetails(ctx, applications, true)
}

func (u *applicationUsecase) SetStatus(
	ctx context.Context,
	companyID bson.ObjectID,
	applicationID string,
	status model.ApplicationStatus,
) (*model.Application, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	application, err := u.applicationRepo.GetApplication(ctx, applicationID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, bson.ErrInvalidHex) {
			return nil, ErrApplicationNotFound
		}

		return nil, err
	}

	if err := ensureCompanyOwns(companyID, application.CompanyID); err != nil {
		return nil, err
	}

	// Accepted/Rejected are closed; re-opening a decision requires a
	// product-level call, not a silent overwrite.
	if application.Status.Terminal() {
		return nil, ErrApplicationDecided
	}

	updated, err := u.applicationRepo.UpdateStatus(ctx, application.ID, status)
	if err != nil {
		return nil, err
	}

	u.notifyStatusChange(ctx, updated)

	return updated, nil
}

// notifyStatusChange emails the applicant about the decision. Failures are
// logged and never retried; the status update has already been persisted.
func (u *applicationUsecase) notifyStatusChange(ctx context.Context, application *model.Application) {
	if u.mail == nil {
		return
	}

	user, err := u.userRepo.GetUser(ctx, application.UserID.Hex())
	if err != nil {
		u.logger.Error().Err(err).
			Str("application_id", application.ID.Hex()).
			Msg("failed to load applicant for status notification")
		return
	}

	job, err := u.jobRepo.GetJob(ctx, application.JobID.Hex())
	if err != nil {
		u.logger.Error().Err(err).
			Str("application_id", application.ID.Hex()).
			Msg("failed to load job for status notification")
		return
	}

	subject := fmt.Sprintf("Your application for %q was %s", job.Title, application.Status)
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>The status of your application for <b>%s</b> has changed to <b>%s</b>.</p>
		<p>Log in to your account to see the details.</p>
	`, user.Name, job.Title, application.Status)

	if err := u.mail.SendHTML([]string{user.Email}, subject, body); err != nil {
		u.logger.Error().Err(err).
			Str("application_id", application.ID.Hex()).
			Msg("failed to send status notification email")
	}
}

func (u *applicationUsecase) joinDetails(
	ctx context.Context,
	applications []model.Application,
	includeUsers bool,
) ([]ApplicationDetail, error) {
	jobIDs := make([]bson.ObjectID, 0, len(applications))
	companyIDs := make([]bson.ObjectID, 0, len(applications))
	userIDs := make([]bson.ObjectID, 0, len(applications))
	for _, a := range applications {
		jobIDs = appendUnique(jobIDs, a.JobID)
		companyIDs = appendUnique(companyIDs, a.CompanyID)
		userIDs = appendUnique(userIDs, a.UserID)
	}

	jobs, err := u.jobRepo.GetJobsByIDs(ctx, jobIDs)
	if err != nil {
		return nil, err
	}
	jobSummaries := make(map[bson.ObjectID]model.JobSummary, len(jobs))
	for i := range jobs {
		jobSummaries[jobs[i].ID] = jobs[i].Summary()
	}

	companies, err := u.companyRepo.GetCompaniesByIDs(ctx, companyIDs)
	if err != nil {
		return nil, err
	}
	companySummaries := make(map[bson.ObjectID]model.CompanySummary, len(companies))
	for i := range companies {
		companySummaries[companies[i].ID] = companies[i].Summary()
	}

	var userSummaries map[bson.ObjectID]model.UserSummary
	if includeUsers {
		users, err := u.userRepo.GetUsersByIDs(ctx, userIDs)
		if err != nil {
			return nil, err
		}
		userSummaries = make(map[bson.ObjectID]model.UserSummary, len(users))
		for i := range users {
			userSummaries[users[i].ID] = users[i].Summary()
		}
	}

	details := make([]ApplicationDetail, 0, len(applications))
	for _, a := range applications {
		detail := ApplicationDetail{
			Application: a,
			Job:         jobSummaries[a.JobID],
			Company:     companySummaries[a.CompanyID],
		}
		if includeUsers {
			if summary, ok := userSummaries[a.UserID]; ok {
				detail.User = &summary
			}
		}
		details = append(details, detail)
	}

	return details, nil
}

func appendUnique(ids []bson.ObjectID, id bson.ObjectID) []bson.ObjectID {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
