package service

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"workout-tracker/internal/domain"
	"workout-tracker/internal/repository"
)

// copyNameSuffix is appended to the name of a deep-copied plan.
const copyNameSuffix = " (Copy)"

// WorkoutPlanUpdate carries the partial-update payload for a plan. Nil
// fields leave the stored value untouched; a blank name is "no change"
// while an empty description clears the field.
type WorkoutPlanUpdate struct {
	Name        *string
	Description *string
}

// WorkoutPlanService manages the caller's plans, including the cascading
// delete and the deep copy of the plan -> session -> exercise-log tree.
type WorkoutPlanService interface {
	Create(ctx context.Context, userID primitive.ObjectID, name, description string) (*domain.WorkoutPlan, error)
	List(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutPlan, error)
	GetByID(ctx context.Context, planID, userID primitive.ObjectID) (*domain.WorkoutPlan, error)
	Update(ctx context.Context, planID, userID primitive.ObjectID, update WorkoutPlanUpdate) (*domain.WorkoutPlan, error)
	Delete(ctx context.Context, planID, userID primitive.ObjectID) error
	DeleteAll(ctx context.Context, userID primitive.ObjectID) error
	Copy(ctx context.Context, planID, userID primitive.ObjectID) (*domain.WorkoutPlan, error)
}

// workoutPlanService implements the WorkoutPlanService interface.
type workoutPlanService struct {
	planRepo            repository.WorkoutPlanRepository
	sessionRepo         repository.WorkoutSessionRepository
	sessionExerciseRepo repository.SessionExerciseRepository
}

// NewWorkoutPlanService creates a new instance of workoutPlanService.
func NewWorkoutPlanService(
	planRepo repository.WorkoutPlanRepository,
	sessionRepo repository.WorkoutSessionRepository,
	sessionExerciseRepo repository.SessionExerciseRepository,
) WorkoutPlanService {
	return &workoutPlanService{
		planRepo:            planRepo,
		sessionRepo:         sessionRepo,
		sessionExerciseRepo: sessionExerciseRepo,
	}
}

// Create persists a new plan owned by the caller.
func (s *workoutPlanService) Create(ctx context.Context, userID primitive.ObjectID, name, description string) (*domain.WorkoutPlan, error) {
	plan := &domain.WorkoutPlan{
		UserID:      userID,
		Name:        name,
		Description: description,
		// ID, CreatedAt, UpdatedAt are set by the repository layer
	}

	planID, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = planID
	return plan, nil
}

// List returns all of the caller's plans, newest first.
func (s *workoutPlanService) List(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	return s.planRepo.GetByUserID(ctx, userID)
}

// GetByID returns one plan after the ownership check.
func (s *workoutPlanService) GetByID(ctx context.Context, planID, userID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	return getPlanForOwner(ctx, s.planRepo, planID, userID)
}

// Update applies partial-update semantics to a plan.
func (s *workoutPlanService) Update(ctx context.Context, planID, userID primitive.ObjectID, update WorkoutPlanUpdate) (*domain.WorkoutPlan, error) {
	plan, err := getPlanForOwner(ctx, s.planRepo, planID, userID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil && strings.TrimSpace(*update.Name) != "" {
		plan.Name = *update.Name
	}
	if update.Description != nil {
		plan.Description = *update.Description
	}

	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, translateNotFound(err, ErrPlanNotFound)
	}
	return plan, nil
}

// Delete removes a plan and cascades to its sessions and their exercise-log
// entries. Children go first so a failure cannot orphan them behind a
// missing parent.
func (s *workoutPlanService) Delete(ctx context.Context, planID, userID primitive.ObjectID) error {
	if _, err := getPlanForOwner(ctx, s.planRepo, planID, userID); err != nil {
		return err
	}

	sessions, err := s.sessionRepo.GetByPlanID(ctx, planID)
	if err != nil {
		return err
	}
	if len(sessions) > 0 {
		sessionIDs := make([]primitive.ObjectID, len(sessions))
		for i, session := range sessions {
			sessionIDs[i] = session.ID
		}
		if err := s.sessionExerciseRepo.DeleteBySessionIDs(ctx, sessionIDs); err != nil {
			return err
		}
		if err := s.sessionRepo.DeleteByPlanID(ctx, planID); err != nil {
			return err
		}
	}

	if err := s.planRepo.Delete(ctx, planID, userID); err != nil {
		return translateNotFound(err, ErrPlanNotFound)
	}
	return nil
}

// DeleteAll removes every plan owned by the caller, cascading each one.
func (s *workoutPlanService) DeleteAll(ctx context.Context, userID primitive.ObjectID) error {
	plans, err := s.planRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	for _, plan := range plans {
		if err := s.Delete(ctx, plan.ID, userID); err != nil {
			return err
		}
	}
	return nil
}

// Copy deep-clones a plan: a new plan named "<name> (Copy)", new sessions
// with the same name/notes/scheduledDate, and new exercise-log entries
// referencing the same catalog exercises. Status and completion reset;
// catalog exercises are reference data and are shared, never cloned.
func (s *workoutPlanService) Copy(ctx context.Context, planID, userID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	source, err := getPlanForOwner(ctx, s.planRepo, planID, userID)
	if err != nil {
		return nil, err
	}

	clone := &domain.WorkoutPlan{
		UserID:      userID,
		Name:        source.Name + copyNameSuffix,
		Description: source.Description,
	}
	cloneID, err := s.planRepo.Create(ctx, clone)
	if err != nil {
		return nil, err
	}
	clone.ID = cloneID

	sessions, err := s.sessionRepo.GetByPlanID(ctx, planID)
	if err != nil {
		return nil, err
	}

	for _, session := range sessions {
		sessionClone := &domain.WorkoutSession{
			WorkoutPlanID: cloneID,
			Name:          session.Name,
			ScheduledDate: session.ScheduledDate,
			Notes:         session.Notes,
			Status:        domain.SessionStatusPending,
		}
		sessionCloneID, err := s.sessionRepo.Create(ctx, sessionClone)
		if err != nil {
			return nil, err
		}

		entries, err := s.sessionExerciseRepo.GetBySessionID(ctx, session.ID)
		if err != nil {
			return nil, err
		}
		if len(entries) == 0 {
			continue
		}

		clones := make([]domain.SessionExercise, len(entries))
		for i, entry := range entries {
			clones[i] = domain.SessionExercise{
				WorkoutSessionID: sessionCloneID,
				ExerciseID:       entry.ExerciseID,
				Sets:             entry.Sets,
				Reps:             entry.Reps,
				Weight:           entry.Weight,
				DurationMinutes:  entry.DurationMinutes,
				OrderIndex:       entry.OrderIndex,
				Notes:            entry.Notes,
				Completed:        false,
			}
		}
		if err := s.sessionExerciseRepo.CreateMany(ctx, clones); err != nil {
			return nil, err
		}
	}

	return clone, nil
}
