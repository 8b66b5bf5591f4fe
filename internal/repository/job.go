package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/workhive/job-portal-api/internal/model"
)

// JobRepository defines the interface for job-related database operations.
type JobRepository interface {
	CreateJob(ctx context.Context, job *model.Job) (*model.Job, error)
	GetJob(ctx context.Context, id string) (*model.Job, error)
	GetJobsByIDs(ctx context.Context, ids []bson.ObjectID) ([]model.Job, error)
	ListVisibleJobs(ctx context.Context, params FilterJobsParams) ([]model.Job, error)
	ListJobsByCompany(ctx context.Context, companyID bson.ObjectID) ([]model.Job, error)
	SetVisibility(ctx context.Context, id bson.ObjectID, visible bool) (*model.Job, error)
}

// FilterJobsParams defines the parameters for filtering and paginating the
// public job listing. String filters are case-insensitive substring matches.
type FilterJobsParams struct {
	Title    *string
	Location *string
	Category *string
	Level    *string
	Limit    int64
	Offset   int64
}

const jobCollection = "jobs"

type jobMongoRepository struct {
	db *mongo.Database
}

func NewJobMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) JobRepository {
	collection := db.Collection(jobCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "company_id", Value: 1}, {Key: "date", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "visible", Value: 1}, {Key: "date", Value: -1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create job indexes")
	}

	return &jobMongoRepository{db: db}
}

func (r *jobMongoRepository) CreateJob(ctx context.Context, job *model.Job) (*model.Job, error) {
	now := time.Now()
	job.Date = now
	job.CreatedAt = now
	job.UpdatedAt = now

	result, err := r.db.Collection(jobCollection).InsertOne(ctx, job)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		job.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return job, nil
}

func (r *jobMongoRepository) GetJob(ctx context.Context, id string) (*model.Job, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(jobCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var job model.Job
	if err := result.Decode(&job); err != nil {
		return nil, err
	}

	return &job, nil
}

func (r *jobMongoRepository) GetJobsByIDs(ctx context.Context, ids []bson.ObjectID) ([]model.Job, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := r.db.Collection(jobCollection).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}

	var jobs []model.Job
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, err
	}

	return jobs, nil
}

func (r *jobMongoRepository) ListVisibleJobs(ctx context.Context, params FilterJobsParams) ([]model.Job, error) {
	findOptions := options.Find()

	limit := params.Limit
	if limit == 0 {
		limit = 10
	}
	findOptions.SetLimit(limit)

	if params.Offset > 0 {
		findOptions.SetSkip(params.Offset)
	}

	findOptions.SetSort(bson.D{{Key: "date", Value: -1}})

	filter := bson.M{"visible": true}
	if params.Title != nil {
		filter["title"] = bson.M{"$regex": *params.Title, "$options": "i"}
	}
	if params.Location != nil {
		filter["location"] = bson.M{"$regex": *params.Location, "$options": "i"}
	}
	if params.Category != nil {
		filter["category"] = *params.Category
	}
	if params.Level != nil {
		filter["level"] = *params.Level
	}

	cursor, err := r.db.Collection(jobCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var jobs []model.Job
	for cursor.Next(ctx) {
		var job model.Job
		if err := cursor.Decode(&job); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}

func (r *jobMongoRepository) ListJobsByCompany(ctx context.Context, companyID bson.ObjectID) ([]model.Job, error) {
	cursor, err := r.db.Collection(jobCollection).Find(
		ctx,
		bson.M{"company_id": companyID},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}

	var jobs []model.Job
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, err
	}

	return jobs, nil
}

func (r *jobMongoRepository) SetVisibility(ctx context.Context, id bson.ObjectID, visible bool) (*model.Job, error) {
	result := r.db.Collection(jobCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"visible": visible, "updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var job model.Job
	if err := result.Decode(&job); err != nil {
		return nil, err
	}

	return &job, nil
}
