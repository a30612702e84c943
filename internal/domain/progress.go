// internal/domain/progress.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EffortLevel is the perceived effort recorded with a progress log.
type EffortLevel string

const (
	EffortLow    EffortLevel = "low"
	EffortMedium EffortLevel = "medium"
	EffortHigh   EffortLevel = "high"
)

func (e EffortLevel) Valid() bool {
	return e == EffortLow || e == EffortMedium || e == EffortHigh
}

// ProgressLog is a dated performance record against a routine/exercise pair.
type ProgressLog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RoutineID   primitive.ObjectID `bson:"routineId" json:"routineId"`
	UserID      int64              `bson:"userId" json:"userId"` // must match the routine owner at creation
	ExerciseID  int64              `bson:"exerciseId" json:"exerciseId"`
	Date        time.Time          `bson:"date" json:"date"`
	Repetitions int                `bson:"repetitions" json:"repetitions"`
	Duration    int                `bson:"duration" json:"duration"` // minutes
	EffortLevel EffortLevel        `bson:"effortLevel" json:"effortLevel"`
	Comments    string             `bson:"comments" json:"comments"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`

	Exercise *Exercise `bson:"-" json:"exercise,omitempty"`
}

type ProgressFilter struct {
	RoutineID *primitive.ObjectID
	UserID    *int64
}
