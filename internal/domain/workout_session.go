package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionStatus is the completion state of a workout session.
type SessionStatus string

const (
	SessionStatusPending   SessionStatus = "pending"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusSkipped   SessionStatus = "skipped"
)

// ParseSessionStatus validates a raw status value.
func ParseSessionStatus(raw string) (SessionStatus, bool) {
	switch SessionStatus(raw) {
	case SessionStatusPending, SessionStatusCompleted, SessionStatusSkipped:
		return SessionStatus(raw), true
	}
	return "", false
}

// WorkoutSession is a scheduled occurrence of a plan. Its transitive owner
// (via the plan) must equal the requesting user for any access.
type WorkoutSession struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkoutPlanID primitive.ObjectID `bson:"workoutPlanId" json:"workoutPlanId"`
	Name          string             `bson:"name" json:"name"`
	ScheduledDate *time.Time         `bson:"scheduledDate,omitempty" json:"scheduledDate,omitempty"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Status        SessionStatus      `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
