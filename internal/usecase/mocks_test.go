package usecase

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/workhive/job-portal-api/internal/model"
	"github.com/workhive/job-portal-api/internal/repository"
)

// duplicateKeyErr mimics the server-side rejection produced by a unique index.
func duplicateKeyErr() error {
	return mongo.WriteException{
		WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}},
	}
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[bson.ObjectID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[bson.ObjectID]*model.User)}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, duplicateKeyErr()
		}
	}

	user.ID = bson.NewObjectID()
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	sanitized := *user
	sanitized.PasswordHash = ""
	return &sanitized, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) GetUsersByIDs(_ context.Context, ids []bson.ObjectID) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var users []model.User
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) UpdateResume(_ context.Context, id string, resume string) (*model.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	user.Resume = resume
	return user, nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, _ string) error {
	return nil
}

type fakeCompanyRepo struct {
	mu        sync.Mutex
	companies map[bson.ObjectID]*model.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[bson.ObjectID]*model.Company)}
}

func (r *fakeCompanyRepo) CreateCompany(_ context.Context, company *model.Company) (*model.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.companies {
		if existing.Email == company.Email {
			return nil, duplicateKeyErr()
		}
	}

	company.ID = bson.NewObjectID()
	r.companies[company.ID] = company
	return company, nil
}

func (r *fakeCompanyRepo) GetCompany(_ context.Context, id string) (*model.Company, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	company, ok := r.companies[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	sanitized := *company
	sanitized.PasswordHash = ""
	return &sanitized, nil
}

func (r *fakeCompanyRepo) GetCompanyByEmail(_ context.Context, email string) (*model.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, company := range r.companies {
		if company.Email == email {
			return company, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeCompanyRepo) GetCompaniesByIDs(_ context.Context, ids []bson.ObjectID) ([]model.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var companies []model.Company
	for _, id := range ids {
		if company, ok := r.companies[id]; ok {
			companies = append(companies, *company)
		}
	}
	return companies, nil
}

type fakeJobRepo struct {
	mu   sync.Mutex
	jobs map[bson.ObjectID]*model.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[bson.ObjectID]*model.Job)}
}

func (r *fakeJobRepo) CreateJob(_ context.Context, job *model.Job) (*model.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job.ID = bson.NewObjectID()
	r.jobs[job.ID] = job
	return job, nil
}

func (r *fakeJobRepo) GetJob(_ context.Context, id string) (*model.Job, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return job, nil
}

func (r *fakeJobRepo) GetJobsByIDs(_ context.Context, ids []bson.ObjectID) ([]model.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var jobs []model.Job
	for _, id := range ids {
		if job, ok := r.jobs[id]; ok {
			jobs = append(jobs, *job)
		}
	}
	return jobs, nil
}

func (r *fakeJobRepo) ListVisibleJobs(_ context.Context, _ repository.FilterJobsParams) ([]model.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var jobs []model.Job
	for _, job := range r.jobs {
		if job.Visible {
			jobs = append(jobs, *job)
		}
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Date.After(jobs[j].Date) })
	return jobs, nil
}

func (r *fakeJobRepo) ListJobsByCompany(_ context.Context, companyID bson.ObjectID) ([]model.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var jobs []model.Job
	for _, job := range r.jobs {
		if job.CompanyID == companyID {
			jobs = append(jobs, *job)
		}
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Date.After(jobs[j].Date) })
	return jobs, nil
}

func (r *fakeJobRepo) SetVisibility(_ context.Context, id bson.ObjectID, visible bool) (*model.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	job.Visible = visible
	return job, nil
}

type fakeApplicationRepo struct {
	mu           sync.Mutex
	applications map[bson.ObjectID]*model.Application

	// hideFromLookup makes GetApplicationByUserAndJob miss existing records,
	// simulating the check/insert race where the unique index is the only
	// remaining guard.
	hideFromLookup bool
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{applications: make(map[bson.ObjectID]*model.Application)}
}

func (r *fakeApplicationRepo) CreateApplication(
	_ context.Context,
	application *model.Application,
) (*model.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.applications {
		if existing.UserID == application.UserID && existing.JobID == application.JobID {
			return nil, duplicateKeyErr()
		}
	}

	application.ID = bson.NewObjectID()
	r.applications[application.ID] = application
	return application, nil
}

func (r *fakeApplicationRepo) GetApplication(_ context.Context, id string) (*model.Application, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	application, ok := r.applications[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return application, nil
}

func (r *fakeApplicationRepo) GetApplicationByUserAndJob(
	_ context.Context,
	userID, jobID bson.ObjectID,
) (*model.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.hideFromLookup {
		for _, application := range r.applications {
			if application.UserID == userID && application.JobID == jobID {
				return application, nil
			}
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeApplicationRepo) ListApplicationsByUser(
	_ context.Context,
	userID bson.ObjectID,
	_ repository.PageParams,
) ([]model.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var applications []model.Application
	for _, application := range r.applications {
		if application.UserID == userID {
			applications = append(applications, *application)
		}
	}
	sort.Slice(applications, func(i, j int) bool {
		return applications[i].Date.After(applications[j].Date)
	})
	return applications, nil
}

func (r *fakeApplicationRepo) ListApplicationsByCompany(
	_ context.Context,
	companyID bson.ObjectID,
	_ repository.PageParams,
) ([]model.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var applications []model.Application
	for _, application := range r.applications {
		if application.CompanyID == companyID {
			applications = append(applications, *application)
		}
	}
	sort.Slice(applications, func(i, j int) bool {
		return applications[i].Date.After(applications[j].Date)
	})
	return applications, nil
}

func (r *fakeApplicationRepo) UpdateStatus(
	_ context.Context,
	id bson.ObjectID,
	status model.ApplicationStatus,
) (*model.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	application, ok := r.applications[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	application.Status = status
	return application, nil
}

func (r *fakeApplicationRepo) CountByJobs(
	_ context.Context,
	jobIDs []bson.ObjectID,
) (map[bson.ObjectID]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[bson.ObjectID]int64, len(jobIDs))
	for _, id := range jobIDs {
		for _, application := range r.applications {
			if application.JobID == id {
				counts[id]++
			}
		}
	}
	return counts, nil
}
