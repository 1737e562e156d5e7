package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubStorage fakes the presign flow with deterministic URLs.
type stubStorage struct {
	deleted []string
}

func (s *stubStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, _ string, _ time.Duration) (string, error) {
	return "https://storage.test/upload/" + objectKey, nil
}

func (s *stubStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.test/download/" + objectKey, nil
}

func (s *stubStorage) DeleteObject(_ context.Context, objectKey string) error {
	s.deleted = append(s.deleted, objectKey)
	return nil
}

func newExerciseFixture() (ExerciseService, *memExerciseRepo, *stubStorage) {
	repo := newMemExerciseRepo()
	store := &stubStorage{}
	return NewExerciseService(repo, store), repo, store
}

func TestCatalogListAndGet(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newExerciseFixture()

	repo.add("Squat")
	benchID := repo.add("Bench Press")

	exercises, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, exercises, 2)
	assert.Equal(t, "Bench Press", exercises[0].Name, "catalog sorts by name")

	bench, err := svc.GetByID(ctx, benchID)
	require.NoError(t, err)
	assert.Equal(t, "Bench Press", bench.Name)

	_, err = svc.GetByID(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrExerciseNotFound)
}

func TestVideoUploadURLValidatesContentType(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newExerciseFixture()
	id := repo.add("Squat")

	_, _, err := svc.RequestVideoUploadURL(ctx, id, "image/png")
	assert.ErrorIs(t, err, ErrInvalidVideoType)

	uploadURL, objectKey, err := svc.RequestVideoUploadURL(ctx, id, "video/mp4")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(objectKey, "exercise-videos/"+id.Hex()+"/"))
	assert.Contains(t, uploadURL, objectKey)
}

func TestAttachVideoAndDownloadURL(t *testing.T) {
	ctx := context.Background()
	svc, repo, store := newExerciseFixture()
	id := repo.add("Squat")

	// No upload and no external link yet.
	_, err := svc.GetVideoDownloadURL(ctx, id)
	assert.ErrorIs(t, err, ErrNoVideo)

	_, err = svc.AttachVideo(ctx, id, "exercise-videos/key-1")
	require.NoError(t, err)

	url, err := svc.GetVideoDownloadURL(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "https://storage.test/download/exercise-videos/key-1", url)

	// Replacing the video drops the old object.
	_, err = svc.AttachVideo(ctx, id, "exercise-videos/key-2")
	require.NoError(t, err)
	assert.Equal(t, []string{"exercise-videos/key-1"}, store.deleted)
}

func TestDownloadURLFallsBackToExternalLink(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newExerciseFixture()

	id := repo.add("Running")
	repo.mu.Lock()
	exercise := repo.exercises[id]
	exercise.VideoURL = "https://videos.example.com/running"
	repo.exercises[id] = exercise
	repo.mu.Unlock()

	url, err := svc.GetVideoDownloadURL(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "https://videos.example.com/running", url)
}
