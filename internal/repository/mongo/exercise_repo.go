package mongo

import (
	"context"
	"errors"
	"time"

	"gymwell/gym-app/internal/domain"
	"gymwell/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const exerciseCollectionName = "exercises"

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates a new Exercise repository backed by MongoDB.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

// Create inserts a new exercise. The caller assigns the numeric ID.
func (r *mongoExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) error {
	if exercise.ID <= 0 || exercise.Name == "" {
		return errors.New("exercise id and name are required")
	}

	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now
	if exercise.Videos == nil {
		exercise.Videos = []string{}
	}

	if _, err := r.collection.InsertOne(ctx, exercise); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

// GetByID retrieves an exercise by its ID.
func (r *mongoExerciseRepository) GetByID(ctx context.Context, id int64) (*domain.Exercise, error) {
	var exercise domain.Exercise
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// GetByIDs retrieves every exercise whose ID is in ids. Missing ids are skipped.
func (r *mongoExerciseRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Exercise, error) {
	if len(ids) == 0 {
		return []domain.Exercise{}, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.Exercise](ctx, cursor)
}

// List returns the catalog sorted by id, optionally narrowed by type and difficulty.
func (r *mongoExerciseRepository) List(ctx context.Context, filter domain.ExerciseFilter) ([]domain.Exercise, error) {
	query := bson.M{}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.Difficulty != nil {
		query["difficulty"] = *filter.Difficulty
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.Exercise](ctx, cursor)
}

func (r *mongoExerciseRepository) MaxID(ctx context.Context) (int64, error) {
	var last struct {
		ID int64 `bson:"_id"`
	}
	findOptions := options.FindOne().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetProjection(bson.M{"_id": 1})

	err := r.collection.FindOne(ctx, bson.M{}, findOptions).Decode(&last)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, err
	}
	return last.ID, nil
}

// Update applies the non-nil fields of update and returns the new document.
func (r *mongoExerciseRepository) Update(ctx context.Context, id int64, update domain.ExerciseUpdate) (*domain.Exercise, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Type != nil {
		set["type"] = *update.Type
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Duration != nil {
		set["duration"] = *update.Duration
	}
	if update.Difficulty != nil {
		set["difficulty"] = *update.Difficulty
	}
	if update.Videos != nil {
		set["videos"] = *update.Videos
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var exercise domain.Exercise
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

func (r *mongoExerciseRepository) Delete(ctx context.Context, id int64) (*domain.Exercise, error) {
	var exercise domain.Exercise
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// EnsureExerciseIndexes creates necessary indexes for the exercises collection.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// Catalog filters
			Keys: bson.D{{Key: "type", Value: 1}, {Key: "difficulty", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}},
			Options: options.Index().SetName("exercise_text_search"),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
