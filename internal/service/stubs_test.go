package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"workout-tracker/internal/domain"
	"workout-tracker/internal/repository"
)

// In-memory repository implementations used across the service tests. They
// mirror the Mongo repositories' contract, including the parent-scoped
// filters on mutating operations.

type memUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[primitive.ObjectID]domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return primitive.NilObjectID, repository.ErrConflict
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = *user
	return user.ID, nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := user
	return &u, nil
}

type memPlanRepo struct {
	mu    sync.Mutex
	plans map[primitive.ObjectID]domain.WorkoutPlan
	seq   int
}

func newMemPlanRepo() *memPlanRepo {
	return &memPlanRepo{plans: make(map[primitive.ObjectID]domain.WorkoutPlan)}
}

func (r *memPlanRepo) Create(_ context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	plan.ID = primitive.NewObjectID()
	r.seq++
	// Monotonic timestamps keep newest-first ordering deterministic.
	plan.CreatedAt = time.Now().UTC().Add(time.Duration(r.seq) * time.Millisecond)
	plan.UpdatedAt = plan.CreatedAt
	r.plans[plan.ID] = *plan
	return plan.ID, nil
}

func (r *memPlanRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	plan, ok := r.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p := plan
	return &p, nil
}

func (r *memPlanRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var plans []domain.WorkoutPlan
	for _, plan := range r.plans {
		if plan.UserID == userID {
			plans = append(plans, plan)
		}
	}
	sort.Slice(plans, func(i, j int) bool {
		return plans[i].CreatedAt.After(plans[j].CreatedAt)
	})
	return plans, nil
}

func (r *memPlanRepo) Update(_ context.Context, plan *domain.WorkoutPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.plans[plan.ID]
	if !ok || existing.UserID != plan.UserID {
		return repository.ErrNotFound
	}
	plan.UpdatedAt = time.Now().UTC()
	r.plans[plan.ID] = *plan
	return nil
}

func (r *memPlanRepo) Delete(_ context.Context, id, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.plans[id]
	if !ok || existing.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.plans, id)
	return nil
}

type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[primitive.ObjectID]domain.WorkoutSession
	seq      int
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[primitive.ObjectID]domain.WorkoutSession)}
}

func (r *memSessionRepo) Create(_ context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session.ID = primitive.NewObjectID()
	if session.Status == "" {
		session.Status = domain.SessionStatusPending
	}
	r.seq++
	session.CreatedAt = time.Now().UTC().Add(time.Duration(r.seq) * time.Millisecond)
	session.UpdatedAt = session.CreatedAt
	r.sessions[session.ID] = *session
	return session.ID, nil
}

func (r *memSessionRepo) GetByIDAndPlanID(_ context.Context, id, planID primitive.ObjectID) (*domain.WorkoutSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok || session.WorkoutPlanID != planID {
		return nil, repository.ErrNotFound
	}
	s := session
	return &s, nil
}

func (r *memSessionRepo) GetByPlanID(_ context.Context, planID primitive.ObjectID) ([]domain.WorkoutSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sessions []domain.WorkoutSession
	for _, session := range r.sessions {
		if session.WorkoutPlanID == planID {
			sessions = append(sessions, session)
		}
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})
	return sessions, nil
}

func (r *memSessionRepo) Update(_ context.Context, session *domain.WorkoutSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.sessions[session.ID]
	if !ok || existing.WorkoutPlanID != session.WorkoutPlanID {
		return repository.ErrNotFound
	}
	session.UpdatedAt = time.Now().UTC()
	r.sessions[session.ID] = *session
	return nil
}

func (r *memSessionRepo) Delete(_ context.Context, id, planID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.sessions[id]
	if !ok || existing.WorkoutPlanID != planID {
		return repository.ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *memSessionRepo) DeleteByPlanID(_ context.Context, planID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, session := range r.sessions {
		if session.WorkoutPlanID == planID {
			delete(r.sessions, id)
		}
	}
	return nil
}

type memSessionExerciseRepo struct {
	mu      sync.Mutex
	entries map[primitive.ObjectID]domain.SessionExercise
}

func newMemSessionExerciseRepo() *memSessionExerciseRepo {
	return &memSessionExerciseRepo{entries: make(map[primitive.ObjectID]domain.SessionExercise)}
}

func (r *memSessionExerciseRepo) Create(_ context.Context, entry *domain.SessionExercise) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = time.Now().UTC()
	entry.UpdatedAt = entry.CreatedAt
	r.entries[entry.ID] = *entry
	return entry.ID, nil
}

func (r *memSessionExerciseRepo) CreateMany(ctx context.Context, entries []domain.SessionExercise) error {
	for i := range entries {
		if _, err := r.Create(ctx, &entries[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *memSessionExerciseRepo) GetByIDAndSessionID(_ context.Context, id, sessionID primitive.ObjectID) (*domain.SessionExercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[id]
	if !ok || entry.WorkoutSessionID != sessionID {
		return nil, repository.ErrNotFound
	}
	e := entry
	return &e, nil
}

func (r *memSessionExerciseRepo) GetBySessionID(_ context.Context, sessionID primitive.ObjectID) ([]domain.SessionExercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var entries []domain.SessionExercise
	for _, entry := range r.entries {
		if entry.WorkoutSessionID == sessionID {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].OrderIndex < entries[j].OrderIndex
	})
	return entries, nil
}

func (r *memSessionExerciseRepo) Update(_ context.Context, entry *domain.SessionExercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.entries[entry.ID]
	if !ok || existing.WorkoutSessionID != entry.WorkoutSessionID {
		return repository.ErrNotFound
	}
	entry.UpdatedAt = time.Now().UTC()
	r.entries[entry.ID] = *entry
	return nil
}

func (r *memSessionExerciseRepo) Delete(_ context.Context, id, sessionID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.entries[id]
	if !ok || existing.WorkoutSessionID != sessionID {
		return repository.ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *memSessionExerciseRepo) DeleteBySessionID(_ context.Context, sessionID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, entry := range r.entries {
		if entry.WorkoutSessionID == sessionID {
			delete(r.entries, id)
		}
	}
	return nil
}

func (r *memSessionExerciseRepo) DeleteBySessionIDs(ctx context.Context, sessionIDs []primitive.ObjectID) error {
	for _, id := range sessionIDs {
		if err := r.DeleteBySessionID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

type memExerciseRepo struct {
	mu        sync.Mutex
	exercises map[primitive.ObjectID]domain.Exercise
}

func newMemExerciseRepo() *memExerciseRepo {
	return &memExerciseRepo{exercises: make(map[primitive.ObjectID]domain.Exercise)}
}

func (r *memExerciseRepo) add(name string) primitive.ObjectID {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	now := time.Now().UTC()
	r.exercises[id] = domain.Exercise{ID: id, Name: name, CreatedAt: now, UpdatedAt: now}
	return id
}

func (r *memExerciseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	exercise, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	e := exercise
	return &e, nil
}

func (r *memExerciseRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var exercises []domain.Exercise
	for _, id := range ids {
		if exercise, ok := r.exercises[id]; ok {
			exercises = append(exercises, exercise)
		}
	}
	return exercises, nil
}

func (r *memExerciseRepo) GetAll(_ context.Context) ([]domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var exercises []domain.Exercise
	for _, exercise := range r.exercises {
		exercises = append(exercises, exercise)
	}
	sort.Slice(exercises, func(i, j int) bool {
		return exercises[i].Name < exercises[j].Name
	})
	return exercises, nil
}

func (r *memExerciseRepo) UpsertByName(_ context.Context, exercise *domain.Exercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.exercises {
		if existing.Name == exercise.Name {
			exercise.ID = id
			exercise.UpdatedAt = time.Now().UTC()
			r.exercises[id] = *exercise
			return nil
		}
	}
	exercise.ID = primitive.NewObjectID()
	exercise.CreatedAt = time.Now().UTC()
	exercise.UpdatedAt = exercise.CreatedAt
	r.exercises[exercise.ID] = *exercise
	return nil
}

func (r *memExerciseRepo) SetVideoObjectKey(_ context.Context, id primitive.ObjectID, objectKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	exercise, ok := r.exercises[id]
	if !ok {
		return repository.ErrNotFound
	}
	exercise.VideoObjectKey = objectKey
	exercise.UpdatedAt = time.Now().UTC()
	r.exercises[id] = exercise
	return nil
}
