package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionExercise is the record of one catalog exercise performed within a
// workout session: sets/reps/weight plus display order and completion.
// Ownership is transitive through session -> plan -> user.
type SessionExercise struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkoutSessionID primitive.ObjectID `bson:"workoutSessionId" json:"workoutSessionId"`
	ExerciseID       primitive.ObjectID `bson:"exerciseId" json:"exerciseId"` // Catalog reference, shared not owned
	Sets             *int               `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps             *int               `bson:"reps,omitempty" json:"reps,omitempty"`
	Weight           *float64           `bson:"weight,omitempty" json:"weight,omitempty"`
	DurationMinutes  *int               `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
	OrderIndex       int                `bson:"orderIndex" json:"orderIndex"` // Non-negative, determines display order
	Notes            string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Completed        bool               `bson:"completed" json:"completed"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}
