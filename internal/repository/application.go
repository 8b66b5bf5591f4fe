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

// ApplicationRepository defines the interface for job-application database
// operations. The unique (user_id, job_id) index created here is the
// authoritative guard against duplicate applications; callers must treat a
// duplicate-key error from CreateApplication as "already applied".
type ApplicationRepository interface {
	CreateApplication(ctx context.Context, application *model.Application) (*model.Application, error)
	GetApplication(ctx context.Context, id string) (*model.Application, error)
	GetApplicationByUserAndJob(ctx context.Context, userID, jobID bson.ObjectID) (*model.Application, error)
	ListApplicationsByUser(ctx context.Context, userID bson.ObjectID, params PageParams) ([]model.Application, error)
	ListApplicationsByCompany(ctx context.Context, companyID bson.ObjectID, params PageParams) ([]model.Application, error)
	UpdateStatus(ctx context.Context, id bson.ObjectID, status model.ApplicationStatus) (*model.Application, error)
	CountByJobs(ctx context.Context, jobIDs []bson.ObjectID) (map[bson.ObjectID]int64, error)
}

// PageParams defines offset pagination for application listings.
type PageParams struct {
	Limit  int64
	Offset int64
}

const applicationCollection = "applications"

type applicationMongoRepository struct {
	db *mongo.Database
}

func NewApplicationMongoRepository(
	ctx context.Context,
	logger *zerolog.Logger,
	db *mongo.Database,
) ApplicationRepository {
	collection := db.Collection(applicationCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "job_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "company_id", Value: 1}, {Key: "date", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create application indexes")
	}

	return &applicationMongoRepository{db: db}
}

func (r *applicationMongoRepository) CreateApplication(
	ctx context.Context,
	application *model.Application,
) (*model.Application, error) {
	now := time.Now()
	application.Date = now
	application.CreatedAt = now
	application.UpdatedAt = now

	result, err := r.db.Collection(applicationCollection).InsertOne(ctx, application)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		application.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return application, nil
}

func (r *applicationMongoRepository) GetApplication(ctx context.Context, id string) (*model.Application, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(applicationCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var application model.Application
	if err := result.Decode(&application); err != nil {
		return nil, err
	}

	return &application, nil
}

func (r *applicationMongoRepository) GetApplicationByUserAndJob(
	ctx context.Context,
	userID, jobID bson.ObjectID,
) (*model.Application, error) {
	result := r.db.Collection(applicationCollection).FindOne(ctx, bson.M{
		"user_id": userID,
		"job_id":  jobID,
	})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var application model.Application
	if err := result.Decode(&application); err != nil {
		return nil, err
	}

	return &application, nil
}

func (r *applicationMongoRepository) ListApplicationsByUser(
	ctx context.Context,
	userID bson.ObjectID,
	params PageParams,
) ([]model.Application, error) {
	return r.list(ctx, bson.M{"user_id": userID}, params)
}

func (r *applicationMongoRepository) ListApplicationsByCompany(
	ctx context.Context,
	companyID bson.ObjectID,
	params PageParams,
) ([]model.Application, error) {
	return r.list(ctx, bson.M{"company_id": companyID}, params)
}

func (r *applicationMongoRepository) list(
	ctx context.Context,
	filter bson.M,
	params PageParams,
) ([]model.Application, error) {
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

	cursor, err := r.db.Collection(applicationCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var applications []model.Application
	for cursor.Next(ctx) {
		var application model.Application
		if err := cursor.Decode(&application); err != nil {
			return nil, err
		}
		applications = append(applications, application)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return applications, nil
}

func (r *applicationMongoRepository) UpdateStatus(
	ctx context.Context,
	id bson.ObjectID,
	status model.ApplicationStatus,
) (*model.Application, error) {
	result := r.db.Collection(applicationCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var application model.Application
	if err := result.Decode(&application); err != nil {
		return nil, err
	}

	return &application, nil
}

func (r *applicationMongoRepository) CountByJobs(
	ctx context.Context,
	jobIDs []bson.ObjectID,
) (map[bson.ObjectID]int64, error) {
	counts := make(map[bson.ObjectID]int64, len(jobIDs))
	if len(jobIDs) == 0 {
		return counts, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"job_id": bson.M{"$in": jobIDs}}}},
		{{Key: "$group", Value: bson.M{"_id": "$job_id", "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := r.db.Collection(applicationCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var row struct {
			JobID bson.ObjectID `bson:"_id"`
			Count int64         `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		counts[row.JobID] = row.Count
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
