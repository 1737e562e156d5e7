package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"workout-tracker/internal/domain"
)

func TestSessionCreateDefaultsToPending(t *testing.T) {
	ctx := context.Background()
	f := newPlanFixture()

	plan, err := f.planSvc.Create(ctx, f.owner, "Plan", "")
	require.NoError(t, err)

	session, err := f.sessionSvc.Create(ctx, plan.ID, f.owner, WorkoutSessionCreate{Name: "Day 1"})
	require.NoError(t, err)
	assert.Equal(t, domain.SessionStatusPending, session.Status)
	assert.Equal(t, plan.ID, session.WorkoutPlanID)
}

func TestSessionCreateRejectsUnknownCatalogExercise(t *testing.T) {
	ctx := context.Background()
	f := newPlanFixture()

	plan, err := f.planSvc.Create(ctx, f.owner, "Plan", "")
	require.NoError(t, err)

	_, err = f.sessionSvc.Create(ctx, plan.ID, f.owner, WorkoutSessionCreate{
		Name: "Day 1",
		Exercises: []SessionExerciseInput{
			{ExerciseID: primitive.NewObjectID(), OrderIndex: 0},
		},
	})
	assert.ErrorIs(t, err, ErrExerciseNotFound)

	sessions, err := f.sessionSvc.List(ctx, plan.ID, f.owner)
	require.NoError(t, err)
	assert.Empty(t, sessions, "a bad exercise reference fails the whole create")
}

func TestSessionCreateWithInitialExercises(t *testing.T) {
	ctx := context.Background()
	f := newPlanFixture()
	exerciseID := f.exerciseRepo.add("Bench Press")

	plan, err := f.planSvc.Create(ctx, f.owner, "Plan", "")
	require.NoError(t, err)

	session, err := f.sessionSvc.Create(ctx, plan.ID, f.owner, WorkoutSessionCreate{
		Name: "Push Day",
		Exercises: []SessionExerciseInput{
			{ExerciseID: exerciseID, Sets: intPtr(3), Reps: intPtr(10), OrderIndex: 1},
			{ExerciseID: exerciseID, Sets: intPtr(5), Reps: intPtr(5), OrderIndex: 0},
		},
	})
	require.NoError(t, err)

	details, err := f.entrySvc.List(ctx, session.ID, plan.ID, f.owner)
	require.NoError(t, err)
	require.Len(t, details, 2)
	// Ascending order index.
	assert.Equal(t, 0, details[0].Entry.OrderIndex)
	assert.Equal(t, 1, details[1].Entry.OrderIndex)
	assert.Equal(t, "Bench Press", details[0].Exercise.Name)
}

func TestSessionPartialUpdate(t *testing.T) {
	ctx := context.Background()
	f := newPlanFixture()

	plan, err := f.planSvc.Create(ctx, f.owner, "Plan", "")
	require.NoError(t, err)
	session, err := f.sessionSvc.Create(ctx, plan.ID, f.owner, WorkoutSessionCreate{
		Name:  "Day 1",
		Notes: "take it easy",
	})
	require.NoError(t, err)

	date := time.Date(2026, 9, 2, 6, 30, 0, 0, time.UTC)
	updated, err := f.sessionSvc.Update(ctx, session.ID, plan.ID, f.owner, WorkoutSessionUpdate{
		Name:          strPtr(""),
		ScheduledDate: &date,
		Notes:         strPtr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "Day 1", updated.Name, "blank name is no change")
	assert.Empty(t, updated.Notes, "empty notes clear the field")
	require.NotNil(t, updated.ScheduledDate)
	assert.True(t, updated.ScheduledDate.Equal(date))
}

func TestSessionStatusTransitionsAreUnrestricted(t *testing.T) {
	ctx := context.Background()
	f := newPlanFixture()

	plan, err := f.planSvc.Create(ctx, f.owner, "Plan", "")
	require.NoError(t, err)
	session, err := f.sessionSvc.Create(ctx, plan.ID, f.owner, WorkoutSessionCreate{Name: "Day 1"})
	require.NoError(t, err)

	// Any value can follow any other, including going back to pending.
	for _, status := range []domain.SessionStatus{
		domain.SessionStatusCompleted,
		domain.SessionStatusSkipped,
		domain.SessionStatusPending,
		domain.SessionStatusCompleted,
	} {
		updated, err := f.sessionSvc.UpdateStatus(ctx, session.ID, plan.ID, f.owner, status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}
}

func TestSessionOwnershipChain(t *testing.T) {
	ctx := context.Background()
	f := newPlanFixture()

	plan, err := f.planSvc.Create(ctx, f.owner, "Mine", "")
	require.NoError(t, err)
	otherPlan, err := f.planSvc.Create(ctx, f.owner, "Also Mine", "")
	require.NoError(t, err)
	session, err := f.sessionSvc.Create(ctx, plan.ID, f.owner, WorkoutSessionCreate{Name: "Day 1"})
	require.NoError(t, err)

	// Foreign caller fails at the plan link.
	_, err = f.sessionSvc.GetByID(ctx, session.ID, plan.ID, f.stranger)
	assert.ErrorIs(t, err, ErrPlanNotFound)

	// Right owner, wrong parent plan fails at the session link.
	_, err = f.sessionSvc.GetByID(ctx, session.ID, otherPlan.ID, f.owner)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionDeleteCascadesEntries(t *testing.T) {
	ctx := context.Background()
	f := newPlanFixture()
	exerciseID := f.exerciseRepo.add("Squat")

	plan, err := f.planSvc.Create(ctx, f.owner, "Plan", "")
	require.NoError(t, err)
	session, err := f.sessionSvc.Create(ctx, plan.ID, f.owner, WorkoutSessionCreate{
		Name: "Day 1",
		Exercises: []SessionExerciseInput{
			{ExerciseID: exerciseID, OrderIndex: 0},
		},
	})
	require.NoError(t, err)
	keep, err := f.sessionSvc.Create(ctx, plan.ID, f.owner, WorkoutSessionCreate{Name: "Day 2"})
	require.NoError(t, err)

	require.NoError(t, f.sessionSvc.Delete(ctx, session.ID, plan.ID, f.owner))

	_, err = f.sessionSvc.GetByID(ctx, session.ID, plan.ID, f.owner)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Empty(t, f.entryRepo.entries)

	still, err := f.sessionSvc.GetByID(ctx, keep.ID, plan.ID, f.owner)
	require.NoError(t, err)
	assert.Equal(t, "Day 2", still.Name)
}

func TestSessionDeleteAll(t *testing.T) {
	ctx := context.Background()
	f := newPlanFixture()
	exerciseID := f.exerciseRepo.add("Squat")

	plan, err := f.planSvc.Create(ctx, f.owner, "Plan", "")
	require.NoError(t, err)
	for _, name := range []string{"Day 1", "Day 2"} {
		_, err = f.sessionSvc.Create(ctx, plan.ID, f.owner, WorkoutSessionCreate{
			Name: name,
			Exercises: []SessionExerciseInput{
				{ExerciseID: exerciseID, OrderIndex: 0},
			},
		})
		require.NoError(t, err)
	}

	require.NoError(t, f.sessionSvc.DeleteAll(ctx, plan.ID, f.owner))

	sessions, err := f.sessionSvc.List(ctx, plan.ID, f.owner)
	require.NoError(t, err)
	assert.Empty(t, sessions)
	assert.Empty(t, f.entryRepo.entries)
}
