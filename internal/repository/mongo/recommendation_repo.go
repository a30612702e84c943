package mongo

import (
	"context"
	"errors"
	"time"

	"gymwell/gym-app/internal/domain"
	"gymwell/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const recommendationCollectionName = "recommendations"

// mongoRecommendationRepository implements repository.RecommendationRepository
type mongoRecommendationRepository struct {
	collection *mongo.Collection
}

func NewMongoRecommendationRepository(db *mongo.Database) repository.RecommendationRepository {
	return &mongoRecommendationRepository{
		collection: db.Collection(recommendationCollectionName),
	}
}

func (r *mongoRecommendationRepository) Create(ctx context.Context, rec *domain.Recommendation) (primitive.ObjectID, error) {
	if rec.TrainerID == 0 || rec.UserID == 0 || rec.Content == "" {
		return primitive.NilObjectID, errors.New("recommendation requires trainerId, userId and content")
	}
	rec.ID = primitive.NewObjectID()
	rec.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, rec)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted recommendation ID")
	}
	return insertedID, nil
}

// List returns recommendations matching filter, newest first.
func (r *mongoRecommendationRepository) List(ctx context.Context, filter domain.RecommendationFilter) ([]domain.Recommendation, error) {
	query := bson.M{}
	if filter.UserID != nil {
		query["userId"] = *filter.UserID
	}
	if filter.TrainerID != nil {
		query["trainerId"] = *filter.TrainerID
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.Recommendation](ctx, cursor)
}

func EnsureRecommendationIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "trainerId", Value: 1}, {Key: "date", Value: -1}}},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
