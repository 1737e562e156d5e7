package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"workout-tracker/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound = RepositoryError("not found")
	ErrConflict = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// WorkoutPlanRepository defines the interface for interacting with plan data.
// Mutating operations scope their filters by the owning user so the
// ownership check and the write cannot be split by a concurrent delete.
type WorkoutPlanRepository interface {
	Create(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutPlan, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutPlan, error)
	Update(ctx context.Context, plan *domain.WorkoutPlan) error
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
}

// WorkoutSessionRepository defines the interface for interacting with
// session data. Reads and writes are scoped by the parent plan id.
type WorkoutSessionRepository interface {
	Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error)
	GetByIDAndPlanID(ctx context.Context, id, planID primitive.ObjectID) (*domain.WorkoutSession, error)
	GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.WorkoutSession, error)
	Update(ctx context.Context, session *domain.WorkoutSession) error
	Delete(ctx context.Context, id, planID primitive.ObjectID) error
	DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) error
}

// SessionExerciseRepository defines the interface for interacting with
// exercise-log entries. Reads and writes are scoped by the parent session id;
// listings are ordered ascending by orderIndex.
type SessionExerciseRepository interface {
	Create(ctx context.Context, entry *domain.SessionExercise) (primitive.ObjectID, error)
	CreateMany(ctx context.Context, entries []domain.SessionExercise) error
	GetByIDAndSessionID(ctx context.Context, id, sessionID primitive.ObjectID) (*domain.SessionExercise, error)
	GetBySessionID(ctx context.Context, sessionID primitive.ObjectID) ([]domain.SessionExercise, error)
	Update(ctx context.Context, entry *domain.SessionExercise) error
	Delete(ctx context.Context, id, sessionID primitive.ObjectID) error
	DeleteBySessionID(ctx context.Context, sessionID primitive.ObjectID) error
	DeleteBySessionIDs(ctx context.Context, sessionIDs []primitive.ObjectID) error
}

// ExerciseRepository defines the interface for the shared exercise catalog.
// The catalog has no user-facing create/update/delete; Upsert exists for the
// seed command and SetVideoObjectKey for the demo-video flow.
type ExerciseRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error)
	GetAll(ctx context.Context) ([]domain.Exercise, error)
	UpsertByName(ctx context.Context, exercise *domain.Exercise) error
	SetVideoObjectKey(ctx context.Context, id primitive.ObjectID, objectKey string) error
}
