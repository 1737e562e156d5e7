// internal/repository/mongo/workout_session_repo.go
package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"workout-tracker/internal/domain"
	"workout-tracker/internal/repository"
)

const workoutSessionCollectionName = "workout_sessions"

// mongoWorkoutSessionRepository implements repository.WorkoutSessionRepository
type mongoWorkoutSessionRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutSessionRepository creates a new WorkoutSession repository.
func NewMongoWorkoutSessionRepository(db *mongo.Database) repository.WorkoutSessionRepository {
	return &mongoWorkoutSessionRepository{
		collection: db.Collection(workoutSessionCollectionName),
	}
}

// Create inserts a new workout session under its plan.
func (r *mongoWorkoutSessionRepository) Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error) {
	if session.WorkoutPlanID == primitive.NilObjectID || session.Name == "" {
		return primitive.NilObjectID, errors.New("session requires workoutPlanId and name")
	}
	session.ID = primitive.NewObjectID()
	if session.Status == "" {
		session.Status = domain.SessionStatusPending
	}
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, session)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted session ID")
	}
	return insertedID, nil
}

// GetByIDAndPlanID retrieves a session only when it belongs to the given plan.
// A session reachable through the wrong plan reads the same as absence.
func (r *mongoWorkoutSessionRepository) GetByIDAndPlanID(ctx context.Context, id, planID primitive.ObjectID) (*domain.WorkoutSession, error) {
	var session domain.WorkoutSession
	filter := bson.M{"_id": id, "workoutPlanId": planID}
	err := r.collection.FindOne(ctx, filter).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// GetByPlanID retrieves all sessions under a plan, oldest first.
func (r *mongoWorkoutSessionRepository) GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.WorkoutSession, error) {
	var sessions []domain.WorkoutSession
	filter := bson.M{"workoutPlanId": planID}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Update persists the mutable fields of a session, scoped by the parent plan.
func (r *mongoWorkoutSessionRepository) Update(ctx context.Context, session *domain.WorkoutSession) error {
	if session.ID == primitive.NilObjectID {
		return errors.New("workout session ID is required for update")
	}

	filter := bson.M{"_id": session.ID, "workoutPlanId": session.WorkoutPlanID}
	updateDoc := bson.M{
		"$set": bson.M{
			"name":          session.Name,
			"scheduledDate": session.ScheduledDate,
			"notes":         session.Notes,
			"status":        session.Status,
			"updatedAt":     time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes one session, scoped by the parent plan.
func (r *mongoWorkoutSessionRepository) Delete(ctx context.Context, id, planID primitive.ObjectID) error {
	if id == primitive.NilObjectID || planID == primitive.NilObjectID {
		return errors.New("session ID and plan ID are required for deletion")
	}

	filter := bson.M{"_id": id, "workoutPlanId": planID}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByPlanID removes all sessions under a plan. Used by the bulk delete
// endpoint and by the plan cascade.
func (r *mongoWorkoutSessionRepository) DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) error {
	if planID == primitive.NilObjectID {
		return errors.New("plan ID is required for bulk deletion")
	}
	_, err := r.collection.DeleteMany(ctx, bson.M{"workoutPlanId": planID})
	return err
}

// EnsureWorkoutSessionIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutSessionIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "workoutPlanId", Value: 1}, {Key: "createdAt", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
