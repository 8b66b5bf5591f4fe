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

// CompanyRepository defines the interface for company-related database operations.
type CompanyRepository interface {
	CreateCompany(ctx context.Context, company *model.Company) (*model.Company, error)
	// GetCompany loads a company by id with the password hash excluded from
	// the projection.
	GetCompany(ctx context.Context, id string) (*model.Company, error)
	GetCompanyByEmail(ctx context.Context, email string) (*model.Company, error)
	GetCompaniesByIDs(ctx context.Context, ids []bson.ObjectID) ([]model.Company, error)
}

const companyCollection = "companies"

type companyMongoRepository struct {
	db *mongo.Database
}

func NewCompanyMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) CompanyRepository {
	collection := db.Collection(companyCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create company indexes")
	}

	return &companyMongoRepository{db: db}
}

func (r *companyMongoRepository) CreateCompany(ctx context.Context, company *model.Company) (*model.Company, error) {
	now := time.Now()
	company.CreatedAt = now
	company.UpdatedAt = now

	result, err := r.db.Collection(companyCollection).InsertOne(ctx, company)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		company.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return company, nil
}

func (r *companyMongoRepository) GetCompany(ctx context.Context, id string) (*model.Company, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(companyCollection).FindOne(
		ctx,
		bson.M{"_id": objectID},
		options.FindOne().SetProjection(bson.M{"password_hash": 0}),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var company model.Company
	if err := result.Decode(&company); err != nil {
		return nil, err
	}

	return &company, nil
}

func (r *companyMongoRepository) GetCompanyByEmail(ctx context.Context, email string) (*model.Company, error) {
	result := r.db.Collection(companyCollection).FindOne(ctx, bson.M{"email": email})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var company model.Company
	if err := result.Decode(&company); err != nil {
		return nil, err
	}

	return &company, nil
}

func (r *companyMongoRepository) GetCompaniesByIDs(ctx context.Context, ids []bson.ObjectID) ([]model.Company, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := r.db.Collection(companyCollection).Find(
		ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"password_hash": 0}),
	)
	if err != nil {
		return nil, err
	}

	var companies []model.Company
	if err := cursor.All(ctx, &companies); err != nil {
		return nil, err
	}

	return companies, nil
}
