// internal/domain/exercise.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MuscleGroupTarget describes how strongly an exercise works a muscle group.
type MuscleGroupTarget string

const (
	TargetPrimary   MuscleGroupTarget = "PRIMARY"
	TargetSecondary MuscleGroupTarget = "SECONDARY"
)

// MuscleGroup is one (muscle group, target type) pair on a catalog exercise.
// Pairs are unique per exercise.
type MuscleGroup struct {
	Name       string            `bson:"name" json:"name"`
	TargetType MuscleGroupTarget `bson:"targetType" json:"targetType"`
}

// Exercise is a reference definition of a movement, shared across all users.
// The catalog is read-only from the API; it is populated by the seed command.
type Exercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"` // Unique
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`

	// External demo video link, used when no uploaded object exists.
	VideoURL string `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	// Object key of an uploaded demo video in S3-compatible storage.
	VideoObjectKey string `bson:"videoObjectKey,omitempty" json:"-"`

	MuscleGroups []MuscleGroup `bson:"muscleGroups,omitempty" json:"muscleGroups,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
