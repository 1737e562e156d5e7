package service

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"workout-tracker/internal/domain"
	"workout-tracker/internal/repository"
	"workout-tracker/internal/storage"
)

// ErrInvalidVideoType is returned when an upload request names a content
// type outside video/*.
var ErrInvalidVideoType = errors.New("content type must be a video format")

// ErrNoVideo is returned when an exercise has neither an uploaded demo
// video nor an external link.
var ErrNoVideo = errors.New("exercise has no demo video")

// ExerciseService exposes the shared exercise catalog plus the demo-video
// upload flow. The catalog itself is read-only through the API.
type ExerciseService interface {
	List(ctx context.Context) ([]domain.Exercise, error)
	GetByID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error)
	RequestVideoUploadURL(ctx context.Context, exerciseID primitive.ObjectID, contentType string) (uploadURL, objectKey string, err error)
	AttachVideo(ctx context.Context, exerciseID primitive.ObjectID, objectKey string) (*domain.Exercise, error)
	GetVideoDownloadURL(ctx context.Context, exerciseID primitive.ObjectID) (string, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	fileStorage  storage.FileStorage
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, fileStorage storage.FileStorage) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		fileStorage:  fileStorage,
	}
}

// List returns the whole catalog, sorted by name.
func (s *exerciseService) List(ctx context.Context) ([]domain.Exercise, error) {
	return s.exerciseRepo.GetAll(ctx)
}

// GetByID returns one catalog exercise.
func (s *exerciseService) GetByID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		return nil, translateNotFound(err, ErrExerciseNotFound)
	}
	return exercise, nil
}

// RequestVideoUploadURL generates a presigned PUT URL for a demo video.
// The returned object key must be echoed back via AttachVideo once the
// client has uploaded the file.
func (s *exerciseService) RequestVideoUploadURL(ctx context.Context, exerciseID primitive.ObjectID, contentType string) (string, string, error) {
	if !strings.HasPrefix(contentType, "video/") {
		return "", "", ErrInvalidVideoType
	}

	if _, err := s.exerciseRepo.GetByID(ctx, exerciseID); err != nil {
		return "", "", translateNotFound(err, ErrExerciseNotFound)
	}

	ext := ""
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		ext = exts[0]
	}
	objectKey := fmt.Sprintf("exercise-videos/%s/%s%s", exerciseID.Hex(), uuid.NewString(), ext)

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", "", err
	}
	return uploadURL, objectKey, nil
}

// AttachVideo records the uploaded object as the exercise's demo video.
// A previously uploaded object is removed from storage; a stale orphan is
// tolerable if that delete fails.
func (s *exerciseService) AttachVideo(ctx context.Context, exerciseID primitive.ObjectID, objectKey string) (*domain.Exercise, error) {
	if objectKey == "" {
		return nil, errors.New("object key is required")
	}

	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		return nil, translateNotFound(err, ErrExerciseNotFound)
	}

	previousKey := exercise.VideoObjectKey
	if err := s.exerciseRepo.SetVideoObjectKey(ctx, exerciseID, objectKey); err != nil {
		return nil, translateNotFound(err, ErrExerciseNotFound)
	}
	exercise.VideoObjectKey = objectKey

	if previousKey != "" && previousKey != objectKey {
		_ = s.fileStorage.DeleteObject(ctx, previousKey)
	}
	return exercise, nil
}

// GetVideoDownloadURL resolves the demo-video URL for an exercise: a
// presigned GET for an uploaded object, otherwise the external link.
func (s *exerciseService) GetVideoDownloadURL(ctx context.Context, exerciseID primitive.ObjectID) (string, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		return "", translateNotFound(err, ErrExerciseNotFound)
	}

	if exercise.VideoObjectKey != "" {
		return s.fileStorage.GeneratePresignedDownloadURL(ctx, exercise.VideoObjectKey, storage.DefaultPresignedURLExpiry)
	}
	if exercise.VideoURL != "" {
		return exercise.VideoURL, nil
	}
	return "", ErrNoVideo
}
