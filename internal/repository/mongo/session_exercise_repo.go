// internal/repository/mongo/session_exercise_repo.go
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

const sessionExerciseCollectionName = "session_exercises"

// mongoSessionExerciseRepository implements repository.SessionExerciseRepository
type mongoSessionExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoSessionExerciseRepository creates a new SessionExercise repository.
func NewMongoSessionExerciseRepository(db *mongo.Database) repository.SessionExerciseRepository {
	return &mongoSessionExerciseRepository{
		collection: db.Collection(sessionExerciseCollectionName),
	}
}

// Create inserts a new exercise-log entry under its session.
func (r *mongoSessionExerciseRepository) Create(ctx context.Context, entry *domain.SessionExercise) (primitive.ObjectID, error) {
	if entry.WorkoutSessionID == primitive.NilObjectID || entry.ExerciseID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("entry requires workoutSessionId and exerciseId")
	}
	if entry.OrderIndex < 0 {
		return primitive.NilObjectID, errors.New("orderIndex must be non-negative")
	}
	entry.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted entry ID")
	}
	return insertedID, nil
}

// CreateMany inserts a batch of entries in one round trip. Used when a
// session is created with an initial exercise list and by the plan copy.
func (r *mongoSessionExerciseRepository) CreateMany(ctx context.Context, entries []domain.SessionExercise) error {
	if len(entries) == 0 {
		return nil
	}
	now := time.Now().UTC()
	docs := make([]interface{}, len(entries))
	for i := range entries {
		if entries[i].WorkoutSessionID == primitive.NilObjectID || entries[i].ExerciseID == primitive.NilObjectID {
			return errors.New("entry requires workoutSessionId and exerciseId")
		}
		entries[i].ID = primitive.NewObjectID()
		entries[i].CreatedAt = now
		entries[i].UpdatedAt = now
		docs[i] = entries[i]
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// GetByIDAndSessionID retrieves an entry only when it belongs to the session.
func (r *mongoSessionExerciseRepository) GetByIDAndSessionID(ctx context.Context, id, sessionID primitive.ObjectID) (*domain.SessionExercise, error) {
	var entry domain.SessionExercise
	filter := bson.M{"_id": id, "workoutSessionId": sessionID}
	err := r.collection.FindOne(ctx, filter).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// GetBySessionID retrieves all entries of a session, ascending by orderIndex.
func (r *mongoSessionExerciseRepository) GetBySessionID(ctx context.Context, sessionID primitive.ObjectID) ([]domain.SessionExercise, error) {
	var entries []domain.SessionExercise
	filter := bson.M{"workoutSessionId": sessionID}
	findOptions := options.Find().SetSort(bson.D{{Key: "orderIndex", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Update persists the mutable fields of an entry, scoped by the parent session.
func (r *mongoSessionExerciseRepository) Update(ctx context.Context, entry *domain.SessionExercise) error {
	if entry.ID == primitive.NilObjectID {
		return errors.New("session exercise ID is required for update")
	}

	filter := bson.M{"_id": entry.ID, "workoutSessionId": entry.WorkoutSessionID}
	updateDoc := bson.M{
		"$set": bson.M{
			"exerciseId":      entry.ExerciseID,
			"sets":            entry.Sets,
			"reps":            entry.Reps,
			"weight":          entry.Weight,
			"durationMinutes": entry.DurationMinutes,
			"orderIndex":      entry.OrderIndex,
			"notes":           entry.Notes,
			"completed":       entry.Completed,
			"updatedAt":       time.Now().UTC(),
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

// Delete removes one entry, scoped by the parent session.
func (r *mongoSessionExerciseRepository) Delete(ctx context.Context, id, sessionID primitive.ObjectID) error {
	if id == primitive.NilObjectID || sessionID == primitive.NilObjectID {
		return errors.New("entry ID and session ID are required for deletion")
	}

	filter := bson.M{"_id": id, "workoutSessionId": sessionID}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteBySessionID removes all entries of one session.
func (r *mongoSessionExerciseRepository) DeleteBySessionID(ctx context.Context, sessionID primitive.ObjectID) error {
	if sessionID == primitive.NilObjectID {
		return errors.New("session ID is required for bulk deletion")
	}
	_, err := r.collection.DeleteMany(ctx, bson.M{"workoutSessionId": sessionID})
	return err
}

// DeleteBySessionIDs removes all entries of a set of sessions. Used by the
// plan cascade, where the session ids are collected before the plan goes.
func (r *mongoSessionExerciseRepository) DeleteBySessionIDs(ctx context.Context, sessionIDs []primitive.ObjectID) error {
	if len(sessionIDs) == 0 {
		return nil
	}
	_, err := r.collection.DeleteMany(ctx, bson.M{"workoutSessionId": bson.M{"$in": sessionIDs}})
	return err
}

// EnsureSessionExerciseIndexes creates necessary indexes. Call during startup.
func EnsureSessionExerciseIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "workoutSessionId", Value: 1}, {Key: "orderIndex", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
