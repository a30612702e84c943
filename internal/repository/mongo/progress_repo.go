// internal/repository/mongo/progress_repo.go
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

const progressCollectionName = "progress_logs"

// mongoProgressRepository implements repository.ProgressRepository
type mongoProgressRepository struct {
	collection *mongo.Collection
}

func NewMongoProgressRepository(db *mongo.Database) repository.ProgressRepository {
	return &mongoProgressRepository{
		collection: db.Collection(progressCollectionName),
	}
}

// Create inserts a new progress log.
func (r *mongoProgressRepository) Create(ctx context.Context, log *domain.ProgressLog) (primitive.ObjectID, error) {
	if log.RoutineID == primitive.NilObjectID || log.UserID == 0 {
		return primitive.NilObjectID, errors.New("progress log requires routineId and userId")
	}
	log.ID = primitive.NewObjectID()
	log.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, log)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted progress log ID")
	}
	return insertedID, nil
}

// List returns logs matching filter, most recent first.
func (r *mongoProgressRepository) List(ctx context.Context, filter domain.ProgressFilter) ([]domain.ProgressLog, error) {
	query := bson.M{}
	if filter.RoutineID != nil {
		query["routineId"] = *filter.RoutineID
	}
	if filter.UserID != nil {
		query["userId"] = *filter.UserID
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.ProgressLog](ctx, cursor)
}

func EnsureProgressIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "routineId", Value: 1}, {Key: "date", Value: -1}}},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
