package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"workout-tracker/internal/domain"
	"workout-tracker/internal/repository"
)

// SessionExerciseInput is one exercise-log entry supplied inline when a
// session is created.
type SessionExerciseInput struct {
	ExerciseID      primitive.ObjectID
	Sets            *int
	Reps            *int
	Weight          *float64
	DurationMinutes *int
	OrderIndex      int
	Notes           string
}

// WorkoutSessionCreate carries the creation payload for a session.
type WorkoutSessionCreate struct {
	Name          string
	ScheduledDate *time.Time
	Notes         string
	Exercises     []SessionExerciseInput
}

// WorkoutSessionUpdate carries the partial-update payload for a session.
// Nil fields leave the stored value untouched; a blank name is "no change"
// while empty notes clear the field.
type WorkoutSessionUpdate struct {
	Name          *string
	ScheduledDate *time.Time
	Notes         *string
}

// WorkoutSessionService manages sessions nested under a plan. Every
// operation walks the plan ownership chain before touching a session.
type WorkoutSessionService interface {
	Create(ctx context.Context, planID, userID primitive.ObjectID, create WorkoutSessionCreate) (*domain.WorkoutSession, error)
	List(ctx context.Context, planID, userID primitive.ObjectID) ([]domain.WorkoutSession, error)
	GetByID(ctx context.Context, sessionID, planID, userID primitive.ObjectID) (*domain.WorkoutSession, error)
	Update(ctx context.Context, sessionID, planID, userID primitive.ObjectID, update WorkoutSessionUpdate) (*domain.WorkoutSession, error)
	UpdateStatus(ctx context.Context, sessionID, planID, userID primitive.ObjectID, status domain.SessionStatus) (*domain.WorkoutSession, error)
	Delete(ctx context.Context, sessionID, planID, userID primitive.ObjectID) error
	DeleteAll(ctx context.Context, planID, userID primitive.ObjectID) error
}

// workoutSessionService implements the WorkoutSessionService interface.
type workoutSessionService struct {
	planRepo            repository.WorkoutPlanRepository
	sessionRepo         repository.WorkoutSessionRepository
	sessionExerciseRepo repository.SessionExerciseRepository
	exerciseRepo        repository.ExerciseRepository
}

// NewWorkoutSessionService creates a new instance of workoutSessionService.
func NewWorkoutSessionService(
	planRepo repository.WorkoutPlanRepository,
	sessionRepo repository.WorkoutSessionRepository,
	sessionExerciseRepo repository.SessionExerciseRepository,
	exerciseRepo repository.ExerciseRepository,
) WorkoutSessionService {
	return &workoutSessionService{
		planRepo:            planRepo,
		sessionRepo:         sessionRepo,
		sessionExerciseRepo: sessionExerciseRepo,
		exerciseRepo:        exerciseRepo,
	}
}

// Create persists a new session under the caller's plan. An inline exercise
// list is validated against the catalog before anything is written.
func (s *workoutSessionService) Create(ctx context.Context, planID, userID primitive.ObjectID, create WorkoutSessionCreate) (*domain.WorkoutSession, error) {
	if _, err := getPlanForOwner(ctx, s.planRepo, planID, userID); err != nil {
		return nil, err
	}

	// Resolve catalog references first so a bad exerciseId fails the whole
	// request before the session document exists.
	for _, input := range create.Exercises {
		if _, err := s.exerciseRepo.GetByID(ctx, input.ExerciseID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrExerciseNotFound
			}
			return nil, err
		}
	}

	session := &domain.WorkoutSession{
		WorkoutPlanID: planID,
		Name:          create.Name,
		ScheduledDate: create.ScheduledDate,
		Notes:         create.Notes,
		Status:        domain.SessionStatusPending,
	}

	sessionID, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		return nil, err
	}
	session.ID = sessionID

	if len(create.Exercises) > 0 {
		entries := make([]domain.SessionExercise, len(create.Exercises))
		for i, input := range create.Exercises {
			entries[i] = domain.SessionExercise{
				WorkoutSessionID: sessionID,
				ExerciseID:       input.ExerciseID,
				Sets:             input.Sets,
				Reps:             input.Reps,
				Weight:           input.Weight,
				DurationMinutes:  input.DurationMinutes,
				OrderIndex:       input.OrderIndex,
				Notes:            input.Notes,
			}
		}
		if err := s.sessionExerciseRepo.CreateMany(ctx, entries); err != nil {
			return nil, err
		}
	}

	return session, nil
}

// List returns all sessions of the caller's plan.
func (s *workoutSessionService) List(ctx context.Context, planID, userID primitive.ObjectID) ([]domain.WorkoutSession, error) {
	if _, err := getPlanForOwner(ctx, s.planRepo, planID, userID); err != nil {
		return nil, err
	}
	return s.sessionRepo.GetByPlanID(ctx, planID)
}

// GetByID returns one session after the full ownership walk.
func (s *workoutSessionService) GetByID(ctx context.Context, sessionID, planID, userID primitive.ObjectID) (*domain.WorkoutSession, error) {
	return getSessionForOwner(ctx, s.planRepo, s.sessionRepo, sessionID, planID, userID)
}

// Update applies partial-update semantics to a session.
func (s *workoutSessionService) Update(ctx context.Context, sessionID, planID, userID primitive.ObjectID, update WorkoutSessionUpdate) (*domain.WorkoutSession, error) {
	session, err := getSessionForOwner(ctx, s.planRepo, s.sessionRepo, sessionID, planID, userID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil && strings.TrimSpace(*update.Name) != "" {
		session.Name = *update.Name
	}
	if update.ScheduledDate != nil {
		session.ScheduledDate = update.ScheduledDate
	}
	if update.Notes != nil {
		session.Notes = *update.Notes
	}

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, translateNotFound(err, ErrSessionNotFound)
	}
	return session, nil
}

// UpdateStatus sets the session status. Any of the three values may be set
// regardless of the current one; there is no guarded transition graph.
func (s *workoutSessionService) UpdateStatus(ctx context.Context, sessionID, planID, userID primitive.ObjectID, status domain.SessionStatus) (*domain.WorkoutSession, error) {
	session, err := getSessionForOwner(ctx, s.planRepo, s.sessionRepo, sessionID, planID, userID)
	if err != nil {
		return nil, err
	}

	session.Status = status
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, translateNotFound(err, ErrSessionNotFound)
	}
	return session, nil
}

// Delete removes a session and cascades to its exercise-log entries.
func (s *workoutSessionService) Delete(ctx context.Context, sessionID, planID, userID primitive.ObjectID) error {
	if _, err := getSessionForOwner(ctx, s.planRepo, s.sessionRepo, sessionID, planID, userID); err != nil {
		return err
	}

	if err := s.sessionExerciseRepo.DeleteBySessionID(ctx, sessionID); err != nil {
		return err
	}
	if err := s.sessionRepo.Delete(ctx, sessionID, planID); err != nil {
		return translateNotFound(err, ErrSessionNotFound)
	}
	return nil
}

// DeleteAll removes every session of the caller's plan, cascading each one.
func (s *workoutSessionService) DeleteAll(ctx context.Context, planID, userID primitive.ObjectID) error {
	if _, err := getPlanForOwner(ctx, s.planRepo, planID, userID); err != nil {
		return err
	}

	sessions, err := s.sessionRepo.GetByPlanID(ctx, planID)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		return nil
	}

	sessionIDs := make([]primitive.ObjectID, len(sessions))
	for i, session := range sessions {
		sessionIDs[i] = session.ID
	}
	if err := s.sessionExerciseRepo.DeleteBySessionIDs(ctx, sessionIDs); err != nil {
		return err
	}
	return s.sessionRepo.DeleteByPlanID(ctx, planID)
}
