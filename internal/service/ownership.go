package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"workout-tracker/internal/domain"
	"workout-tracker/internal/repository"
)

// Hierarchy errors. A resource that exists but belongs to someone else is
// reported with exactly the same error as one that does not exist, so the
// API never leaks the existence of other users' resources.
var (
	ErrPlanNotFound            = errors.New("workout plan not found")
	ErrSessionNotFound         = errors.New("workout session not found")
	ErrSessionExerciseNotFound = errors.New("session exercise not found")
	ErrExerciseNotFound        = errors.New("exercise not found")
)

// translateNotFound maps the repository sentinel onto the hierarchy error
// for the resource being mutated; other errors pass through.
func translateNotFound(err error, notFound error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound
	}
	return err
}

// getPlanForOwner loads a plan and verifies the caller owns it. This is the
// root of the ownership chain every nested operation walks before acting.
func getPlanForOwner(ctx context.Context, planRepo repository.WorkoutPlanRepository, planID, userID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	plan, err := planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if plan.UserID != userID {
		return nil, ErrPlanNotFound
	}
	return plan, nil
}

// getSessionForOwner walks plan -> session: the plan must belong to the
// caller and the session must belong to the plan.
func getSessionForOwner(ctx context.Context, planRepo repository.WorkoutPlanRepository, sessionRepo repository.WorkoutSessionRepository, sessionID, planID, userID primitive.ObjectID) (*domain.WorkoutSession, error) {
	if _, err := getPlanForOwner(ctx, planRepo, planID, userID); err != nil {
		return nil, err
	}

	session, err := sessionRepo.GetByIDAndPlanID(ctx, sessionID, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}
