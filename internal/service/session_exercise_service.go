package service

import (
	"context"
	"errors"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"workout-tracker/internal/domain"
	"workout-tracker/internal/repository"
)

// SessionExerciseUpdate carries the partial-update payload for an
// exercise-log entry. Nil fields leave the stored value untouched; notes
// behave like session notes (non-nil empty string clears).
type SessionExerciseUpdate struct {
	ExerciseID      *primitive.ObjectID
	Sets            *int
	Reps            *int
	Weight          *float64
	DurationMinutes *int
	OrderIndex      *int
	Notes           *string
}

// SessionExerciseDetails pairs an exercise-log entry with the catalog
// exercise it references, so responses can carry the exercise name without
// a second round trip.
type SessionExerciseDetails struct {
	Entry    domain.SessionExercise
	Exercise *domain.Exercise
}

// SessionExerciseService manages the exercise-log entries of a session.
// Every operation walks plan -> session ownership before touching an entry.
type SessionExerciseService interface {
	Create(ctx context.Context, sessionID, planID, userID primitive.ObjectID, input SessionExerciseInput) (*SessionExerciseDetails, error)
	List(ctx context.Context, sessionID, planID, userID primitive.ObjectID) ([]SessionExerciseDetails, error)
	GetByID(ctx context.Context, entryID, sessionID, planID, userID primitive.ObjectID) (*SessionExerciseDetails, error)
	Update(ctx context.Context, entryID, sessionID, planID, userID primitive.ObjectID, update SessionExerciseUpdate) (*SessionExerciseDetails, error)
	MarkCompleted(ctx context.Context, entryID, sessionID, planID, userID primitive.ObjectID, completed bool) (*SessionExerciseDetails, error)
	Delete(ctx context.Context, entryID, sessionID, planID, userID primitive.ObjectID) error
	DeleteAll(ctx context.Context, sessionID, planID, userID primitive.ObjectID) error
}

// sessionExerciseService implements the SessionExerciseService interface.
type sessionExerciseService struct {
	planRepo            repository.WorkoutPlanRepository
	sessionRepo         repository.WorkoutSessionRepository
	sessionExerciseRepo repository.SessionExerciseRepository
	exerciseRepo        repository.ExerciseRepository
}

// NewSessionExerciseService creates a new instance of sessionExerciseService.
func NewSessionExerciseService(
	planRepo repository.WorkoutPlanRepository,
	sessionRepo repository.WorkoutSessionRepository,
	sessionExerciseRepo repository.SessionExerciseRepository,
	exerciseRepo repository.ExerciseRepository,
) SessionExerciseService {
	return &sessionExerciseService{
		planRepo:            planRepo,
		sessionRepo:         sessionRepo,
		sessionExerciseRepo: sessionExerciseRepo,
		exerciseRepo:        exerciseRepo,
	}
}

// resolveExercise loads a catalog exercise, mapping the repository sentinel
// onto the service-level error.
func (s *sessionExerciseService) resolveExercise(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

// Create adds an exercise-log entry to the caller's session. The referenced
// catalog exercise must exist.
func (s *sessionExerciseService) Create(ctx context.Context, sessionID, planID, userID primitive.ObjectID, input SessionExerciseInput) (*SessionExerciseDetails, error) {
	if _, err := getSessionForOwner(ctx, s.planRepo, s.sessionRepo, sessionID, planID, userID); err != nil {
		return nil, err
	}

	exercise, err := s.resolveExercise(ctx, input.ExerciseID)
	if err != nil {
		return nil, err
	}

	entry := &domain.SessionExercise{
		WorkoutSessionID: sessionID,
		ExerciseID:       input.ExerciseID,
		Sets:             input.Sets,
		Reps:             input.Reps,
		Weight:           input.Weight,
		DurationMinutes:  input.DurationMinutes,
		OrderIndex:       input.OrderIndex,
		Notes:            input.Notes,
	}

	entryID, err := s.sessionExerciseRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = entryID

	return &SessionExerciseDetails{Entry: *entry, Exercise: exercise}, nil
}

// List returns the session's entries in order, each paired with its catalog
// exercise. The catalog rows are fetched in one batch.
func (s *sessionExerciseService) List(ctx context.Context, sessionID, planID, userID primitive.ObjectID) ([]SessionExerciseDetails, error) {
	if _, err := getSessionForOwner(ctx, s.planRepo, s.sessionRepo, sessionID, planID, userID); err != nil {
		return nil, err
	}

	entries, err := s.sessionExerciseRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return []SessionExerciseDetails{}, nil
	}

	idSet := make(map[primitive.ObjectID]struct{}, len(entries))
	for _, entry := range entries {
		idSet[entry.ExerciseID] = struct{}{}
	}
	exerciseIDs := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		exerciseIDs = append(exerciseIDs, id)
	}
	sort.Slice(exerciseIDs, func(i, j int) bool {
		return exerciseIDs[i].Hex() < exerciseIDs[j].Hex()
	})

	exercises, err := s.exerciseRepo.GetByIDs(ctx, exerciseIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*domain.Exercise, len(exercises))
	for i := range exercises {
		byID[exercises[i].ID] = &exercises[i]
	}

	details := make([]SessionExerciseDetails, len(entries))
	for i, entry := range entries {
		details[i] = SessionExerciseDetails{Entry: entry, Exercise: byID[entry.ExerciseID]}
	}
	return details, nil
}

// GetByID returns one entry after the full ownership walk.
func (s *sessionExerciseService) GetByID(ctx context.Context, entryID, sessionID, planID, userID primitive.ObjectID) (*SessionExerciseDetails, error) {
	if _, err := getSessionForOwner(ctx, s.planRepo, s.sessionRepo, sessionID, planID, userID); err != nil {
		return nil, err
	}

	entry, err := s.sessionExerciseRepo.GetByIDAndSessionID(ctx, entryID, sessionID)
	if err != nil {
		return nil, translateNotFound(err, ErrSessionExerciseNotFound)
	}

	exercise, err := s.resolveExercise(ctx, entry.ExerciseID)
	if err != nil {
		return nil, err
	}
	return &SessionExerciseDetails{Entry: *entry, Exercise: exercise}, nil
}

// Update applies partial-update semantics to an entry. Re-pointing the
// entry at a different catalog exercise validates the new reference first.
func (s *sessionExerciseService) Update(ctx context.Context, entryID, sessionID, planID, userID primitive.ObjectID, update SessionExerciseUpdate) (*SessionExerciseDetails, error) {
	if _, err := getSessionForOwner(ctx, s.planRepo, s.sessionRepo, sessionID, planID, userID); err != nil {
		return nil, err
	}

	entry, err := s.sessionExerciseRepo.GetByIDAndSessionID(ctx, entryID, sessionID)
	if err != nil {
		return nil, translateNotFound(err, ErrSessionExerciseNotFound)
	}

	if update.ExerciseID != nil {
		if _, err := s.resolveExercise(ctx, *update.ExerciseID); err != nil {
			return nil, err
		}
		entry.ExerciseID = *update.ExerciseID
	}
	if update.Sets != nil {
		entry.Sets = update.Sets
	}
	if update.Reps != nil {
		entry.Reps = update.Reps
	}
	if update.Weight != nil {
		entry.Weight = update.Weight
	}
	if update.DurationMinutes != nil {
		entry.DurationMinutes = update.DurationMinutes
	}
	if update.OrderIndex != nil {
		entry.OrderIndex = *update.OrderIndex
	}
	if update.Notes != nil {
		entry.Notes = *update.Notes
	}

	if err := s.sessionExerciseRepo.Update(ctx, entry); err != nil {
		return nil, translateNotFound(err, ErrSessionExerciseNotFound)
	}

	exercise, err := s.resolveExercise(ctx, entry.ExerciseID)
	if err != nil {
		return nil, err
	}
	return &SessionExerciseDetails{Entry: *entry, Exercise: exercise}, nil
}

// MarkCompleted sets the completion flag. Setting the current value again
// is a no-op success, so retries are safe.
func (s *sessionExerciseService) MarkCompleted(ctx context.Context, entryID, sessionID, planID, userID primitive.ObjectID, completed bool) (*SessionExerciseDetails, error) {
	if _, err := getSessionForOwner(ctx, s.planRepo, s.sessionRepo, sessionID, planID, userID); err != nil {
		return nil, err
	}

	entry, err := s.sessionExerciseRepo.GetByIDAndSessionID(ctx, entryID, sessionID)
	if err != nil {
		return nil, translateNotFound(err, ErrSessionExerciseNotFound)
	}

	if entry.Completed != completed {
		entry.Completed = completed
		if err := s.sessionExerciseRepo.Update(ctx, entry); err != nil {
			return nil, translateNotFound(err, ErrSessionExerciseNotFound)
		}
	}

	exercise, err := s.resolveExercise(ctx, entry.ExerciseID)
	if err != nil {
		return nil, err
	}
	return &SessionExerciseDetails{Entry: *entry, Exercise: exercise}, nil
}

// Delete removes one entry from the caller's session.
func (s *sessionExerciseService) Delete(ctx context.Context, entryID, sessionID, planID, userID primitive.ObjectID) error {
	if _, err := getSessionForOwner(ctx, s.planRepo, s.sessionRepo, sessionID, planID, userID); err != nil {
		return err
	}

	if err := s.sessionExerciseRepo.Delete(ctx, entryID, sessionID); err != nil {
		return translateNotFound(err, ErrSessionExerciseNotFound)
	}
	return nil
}

// DeleteAll removes every entry of the caller's session.
func (s *sessionExerciseService) DeleteAll(ctx context.Context, sessionID, planID, userID primitive.ObjectID) error {
	if _, err := getSessionForOwner(ctx, s.planRepo, s.sessionRepo, sessionID, planID, userID); err != nil {
		return err
	}
	return s.sessionExerciseRepo.DeleteBySessionID(ctx, sessionID)
}
