package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recommendation is a free-text note from a trainer to a user.
type Recommendation struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainerID int64              `bson:"trainerId" json:"trainerId"`
	UserID    int64              `bson:"userId" json:"userId"`
	Date      time.Time          `bson:"date" json:"date"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type RecommendationFilter struct {
	UserID    *int64
	TrainerID *int64
}
