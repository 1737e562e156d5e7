package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"workout-tracker/internal/domain"
	"workout-tracker/internal/service"
)

// ExerciseHandler holds the catalog service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- Request/Response Structs ---

type ExerciseResponse struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Description  string               `json:"description,omitempty"`
	Category     string               `json:"category,omitempty"`
	VideoURL     string               `json:"videoUrl,omitempty"`
	MuscleGroups []domain.MuscleGroup `json:"muscleGroups,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

type VideoUploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type VideoUploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

type AttachVideoRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

type VideoDownloadURLResponse struct {
	DownloadURL string `json:"downloadUrl"`
}

// --- Handler Methods ---

// List returns the whole catalog.
func (h *ExerciseHandler) List(c *gin.Context) {
	exercises, err := h.exerciseService.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	responses := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		responses[i] = mapExerciseToResponse(&exercises[i])
	}
	c.JSON(http.StatusOK, responses)
}

// GetByID returns one catalog exercise.
func (h *ExerciseHandler) GetByID(c *gin.Context) {
	exerciseID, ok := pathObjectID(c, "exerciseId")
	if !ok {
		return
	}

	exercise, err := h.exerciseService.GetByID(c.Request.Context(), exerciseID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapExerciseToResponse(exercise))
}

// RequestVideoUploadURL returns a presigned PUT URL for a demo video.
func (h *ExerciseHandler) RequestVideoUploadURL(c *gin.Context) {
	exerciseID, ok := pathObjectID(c, "exerciseId")
	if !ok {
		return
	}

	var req VideoUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, bindingErrorMessage(err))
		return
	}

	uploadURL, objectKey, err := h.exerciseService.RequestVideoUploadURL(c.Request.Context(), exerciseID, req.ContentType)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, VideoUploadURLResponse{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
	})
}

// AttachVideo records an uploaded object as the exercise's demo video.
func (h *ExerciseHandler) AttachVideo(c *gin.Context) {
	exerciseID, ok := pathObjectID(c, "exerciseId")
	if !ok {
		return
	}

	var req AttachVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, bindingErrorMessage(err))
		return
	}

	exercise, err := h.exerciseService.AttachVideo(c.Request.Context(), exerciseID, req.ObjectKey)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapExerciseToResponse(exercise))
}

// GetVideoDownloadURL resolves the demo-video URL for an exercise.
func (h *ExerciseHandler) GetVideoDownloadURL(c *gin.Context) {
	exerciseID, ok := pathObjectID(c, "exerciseId")
	if !ok {
		return
	}

	downloadURL, err := h.exerciseService.GetVideoDownloadURL(c.Request.Context(), exerciseID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, VideoDownloadURLResponse{DownloadURL: downloadURL})
}

// mapExerciseToResponse converts a catalog exercise to its response DTO.
func mapExerciseToResponse(exercise *domain.Exercise) ExerciseResponse {
	return ExerciseResponse{
		ID:           exercise.ID.Hex(),
		Name:         exercise.Name,
		Description:  exercise.Description,
		Category:     exercise.Category,
		VideoURL:     exercise.VideoURL,
		MuscleGroups: exercise.MuscleGroups,
		CreatedAt:    exercise.CreatedAt,
		UpdatedAt:    exercise.UpdatedAt,
	}
}
