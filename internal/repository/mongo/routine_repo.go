// internal/repository/mongo/routine_repo.go
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

const routineCollectionName = "routines"

// mongoRoutineRepository implements repository.RoutineRepository
type mongoRoutineRepository struct {
	collection *mongo.Collection
}

// NewMongoRoutineRepository creates a new Routine repository.
func NewMongoRoutineRepository(db *mongo.Database) repository.RoutineRepository {
	return &mongoRoutineRepository{
		collection: db.Collection(routineCollectionName),
	}
}

// Create inserts a new routine.
func (r *mongoRoutineRepository) Create(ctx context.Context, routine *domain.Routine) (primitive.ObjectID, error) {
	if routine.Name == "" {
		return primitive.NilObjectID, errors.New("routine requires a name")
	}
	routine.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	routine.CreatedAt = now
	routine.UpdatedAt = now
	if routine.Items == nil {
		routine.Items = []domain.RoutineItem{}
	}

	result, err := r.collection.InsertOne(ctx, routine)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted routine ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single routine by its ID.
func (r *mongoRoutineRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Routine, error) {
	var routine domain.Routine
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&routine)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &routine, nil
}

// List returns routines matching filter, newest first.
func (r *mongoRoutineRepository) List(ctx context.Context, filter domain.RoutineFilter) ([]domain.Routine, error) {
	query := bson.M{}
	if filter.UserID != nil {
		query["userId"] = *filter.UserID
	}
	if filter.Predefined != nil {
		query["isPredefined"] = *filter.Predefined
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.Routine](ctx, cursor)
}

// Adopt upserts on (userId, adoptedFrom), so concurrent or repeated adoptions
// of the same routine by the same user converge on a single copy.
func (r *mongoRoutineRepository) Adopt(ctx context.Context, source *domain.Routine, userID int64) (*domain.Routine, bool, error) {
	filter := bson.M{"userId": userID, "adoptedFrom": source.ID}
	now := time.Now().UTC()
	items := source.Items
	if items == nil {
		items = []domain.RoutineItem{}
	}
	update := bson.M{
		"$setOnInsert": bson.M{
			"name":         source.Name,
			"description":  source.Description,
			"exercises":    items,
			"isPredefined": false,
			"createdBy":    userID,
			"createdAt":    now,
			"updatedAt":    now,
		},
	}

	created := true
	result, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	switch {
	case mongo.IsDuplicateKeyError(err):
		// Lost the race against a concurrent adoption; the unique index kept
		// the other copy.
		created = false
	case err != nil:
		return nil, false, err
	default:
		created = result.UpsertedCount > 0
	}

	var routine domain.Routine
	if err := r.collection.FindOne(ctx, filter).Decode(&routine); err != nil {
		return nil, false, err
	}
	return &routine, created, nil
}

// EnsureRoutineIndexes creates necessary indexes. Call during startup.
func EnsureRoutineIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "isPredefined", Value: 1}},
		},
		{
			// One adopted copy per user and source routine. Documents with
			// adoptedFrom: null are personal routines and stay out of the index.
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "adoptedFrom", Value: 1}},
			Options: options.Index().
				SetName("routine_adoption_unique").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"adoptedFrom": bson.M{"$type": "objectId"}}),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
