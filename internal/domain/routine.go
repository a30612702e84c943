// internal/domain/routine.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PredefinedOwner is the owner id used for routines with no individual owner.
const PredefinedOwner int64 = 0

// RoutineItem is one parameterised exercise within a routine.
type RoutineItem struct {
	ExerciseID int64 `bson:"exerciseId" json:"exerciseId"`
	Order      int   `bson:"order" json:"order"`
	Sets       int   `bson:"sets" json:"sets"`
	Reps       int   `bson:"reps" json:"reps"`
	Duration   int   `bson:"duration" json:"duration"`
	Rest       int   `bson:"rest" json:"rest"`

	// Populated on reads, never stored.
	Exercise *Exercise `bson:"-" json:"exercise,omitempty"`
}

// Routine is an ordered list of exercises, either predefined (owned by
// PredefinedOwner) or personal to a user.
type Routine struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID       int64               `bson:"userId" json:"userId"`
	Name         string              `bson:"name" json:"name"`
	Description  string              `bson:"description" json:"description"`
	Items        []RoutineItem       `bson:"exercises" json:"exercises"`
	IsPredefined bool                `bson:"isPredefined" json:"isPredefined"`
	AdoptedFrom  *primitive.ObjectID `bson:"adoptedFrom,omitempty" json:"adoptedFrom,omitempty"`
	CreatedBy    int64               `bson:"createdBy" json:"createdBy"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// ExerciseIDs returns the distinct exercise ids referenced by the routine.
func (r *Routine) ExerciseIDs() []int64 {
	seen := make(map[int64]struct{}, len(r.Items))
	ids := make([]int64, 0, len(r.Items))
	for _, it := range r.Items {
		if _, ok := seen[it.ExerciseID]; ok {
			continue
		}
		seen[it.ExerciseID] = struct{}{}
		ids = append(ids, it.ExerciseID)
	}
	return ids
}

// RoutineFilter narrows routine listings. Nil fields mean "any".
type RoutineFilter struct {
	UserID     *int64
	Predefined *bool
}
