// internal/domain/exercise.go
package domain

import "time"

// ExerciseType categorises an exercise.
type ExerciseType string

const (
	ExerciseCardio   ExerciseType = "cardio"
	ExerciseStrength ExerciseType = "strength"
	ExerciseMobility ExerciseType = "mobility"
)

func (t ExerciseType) Valid() bool {
	switch t {
	case ExerciseCardio, ExerciseStrength, ExerciseMobility:
		return true
	}
	return false
}

// Difficulty levels accepted for an exercise.
const (
	DifficultyEasy   = 1
	DifficultyMedium = 2
	DifficultyHard   = 3
)

func ValidDifficulty(d int) bool {
	return d >= DifficultyEasy && d <= DifficultyHard
}

// Exercise represents a single exercise definition in the shared catalog.
// The numeric ID doubles as the document _id and is assigned sequentially.
type Exercise struct {
	ID          int64        `bson:"_id" json:"id"`
	Name        string       `bson:"name" json:"name"`
	Type        ExerciseType `bson:"type" json:"type"`
	Description string       `bson:"description" json:"description"`
	Duration    *int         `bson:"duration,omitempty" json:"duration,omitempty"` // minutes
	Difficulty  int          `bson:"difficulty" json:"difficulty"`
	Videos      []string     `bson:"videos" json:"videos"`
	CreatedBy   int64        `bson:"createdBy" json:"createdBy"` // Identity id of the trainer/admin
	CreatedAt   time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time    `bson:"updatedAt" json:"updatedAt"`
}

// ExerciseFilter narrows catalog listings. Zero values mean "any".
type ExerciseFilter struct {
	Type       ExerciseType
	Difficulty *int
}

// ExerciseUpdate carries a partial update; nil fields are left untouched.
type ExerciseUpdate struct {
	Name        *string
	Type        *ExerciseType
	Description *string
	Duration    *int
	Difficulty  *int
	Videos      *[]string
}

// Empty reports whether the update would change nothing.
func (u ExerciseUpdate) Empty() bool {
	return u.Name == nil && u.Type == nil && u.Description == nil &&
		u.Duration == nil && u.Difficulty == nil && u.Videos == nil
}
