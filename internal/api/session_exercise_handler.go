package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"workout-tracker/internal/service"
)

// SessionExerciseHandler holds the exercise-log service dependency.
type SessionExerciseHandler struct {
	sessionExerciseService service.SessionExerciseService
}

// NewSessionExerciseHandler creates a new SessionExerciseHandler.
func NewSessionExerciseHandler(sessionExerciseService service.SessionExerciseService) *SessionExerciseHandler {
	return &SessionExerciseHandler{sessionExerciseService: sessionExerciseService}
}

// --- Request/Response Structs ---

// SessionExerciseUpdateRequest carries optional fields; absent fields are
// not changed.
type SessionExerciseUpdateRequest struct {
	ExerciseID      *string  `json:"exerciseId"`
	Sets            *int     `json:"sets" binding:"omitempty,gte=0"`
	Reps            *int     `json:"reps" binding:"omitempty,gte=0"`
	Weight          *float64 `json:"weight" binding:"omitempty,gte=0"`
	DurationMinutes *int     `json:"durationMinutes" binding:"omitempty,gte=0"`
	OrderIndex      *int     `json:"orderIndex" binding:"omitempty,gte=0"`
	Notes           *string  `json:"notes"`
}

// SessionExerciseResponse embeds the catalog exercise name so clients can
// render the log without a second lookup.
type SessionExerciseResponse struct {
	ID               string     `json:"id"`
	WorkoutSessionID string     `json:"workoutSessionId"`
	ExerciseID       string     `json:"exerciseId"`
	ExerciseName     string     `json:"exerciseName,omitempty"`
	Sets             *int       `json:"sets,omitempty"`
	Reps             *int       `json:"reps,omitempty"`
	Weight           *float64   `json:"weight,omitempty"`
	DurationMinutes  *int       `json:"durationMinutes,omitempty"`
	OrderIndex       int        `json:"orderIndex"`
	Notes            string     `json:"notes,omitempty"`
	Completed        bool       `json:"completed"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// sessionScope pulls the caller id and the plan/session path parameters.
func sessionScope(c *gin.Context) (userID, planID, sessionID primitive.ObjectID, ok bool) {
	if userID, ok = callerID(c); !ok {
		return
	}
	if planID, ok = pathObjectID(c, "planId"); !ok {
		return
	}
	sessionID, ok = pathObjectID(c, "sessionId")
	return
}

// --- Handler Methods ---

// Create adds an exercise-log entry to the caller's session.
func (h *SessionExerciseHandler) Create(c *gin.Context) {
	userID, planID, sessionID, ok := sessionScope(c)
	if !ok {
		return
	}

	var req SessionExerciseCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, bindingErrorMessage(err))
		return
	}
	exerciseID, err := primitive.ObjectIDFromHex(req.ExerciseID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exerciseId format")
		return
	}

	details, err := h.sessionExerciseService.Create(c.Request.Context(), sessionID, planID, userID, service.SessionExerciseInput{
		ExerciseID:      exerciseID,
		Sets:            req.Sets,
		Reps:            req.Reps,
		Weight:          req.Weight,
		DurationMinutes: req.DurationMinutes,
		OrderIndex:      req.OrderIndex,
		Notes:           req.Notes,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapSessionExerciseToResponse(details))
}

// List returns the session's entries in display order.
func (h *SessionExerciseHandler) List(c *gin.Context) {
	userID, planID, sessionID, ok := sessionScope(c)
	if !ok {
		return
	}

	details, err := h.sessionExerciseService.List(c.Request.Context(), sessionID, planID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	responses := make([]SessionExerciseResponse, len(details))
	for i := range details {
		responses[i] = mapSessionExerciseToResponse(&details[i])
	}
	c.JSON(http.StatusOK, responses)
}

// GetByID returns one exercise-log entry.
func (h *SessionExerciseHandler) GetByID(c *gin.Context) {
	userID, planID, sessionID, ok := sessionScope(c)
	if !ok {
		return
	}
	entryID, ok := pathObjectID(c, "exerciseId")
	if !ok {
		return
	}

	details, err := h.sessionExerciseService.GetByID(c.Request.Context(), entryID, sessionID, planID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSessionExerciseToResponse(details))
}

// Update partially updates one entry.
func (h *SessionExerciseHandler) Update(c *gin.Context) {
	userID, planID, sessionID, ok := sessionScope(c)
	if !ok {
		return
	}
	entryID, ok := pathObjectID(c, "exerciseId")
	if !ok {
		return
	}

	var req SessionExerciseUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, bindingErrorMessage(err))
		return
	}

	update := service.SessionExerciseUpdate{
		Sets:            req.Sets,
		Reps:            req.Reps,
		Weight:          req.Weight,
		DurationMinutes: req.DurationMinutes,
		OrderIndex:      req.OrderIndex,
		Notes:           req.Notes,
	}
	if req.ExerciseID != nil {
		exerciseID, err := primitive.ObjectIDFromHex(*req.ExerciseID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid exerciseId format")
			return
		}
		update.ExerciseID = &exerciseID
	}

	details, err := h.sessionExerciseService.Update(c.Request.Context(), entryID, sessionID, planID, userID, update)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSessionExerciseToResponse(details))
}

// MarkCompleted sets the completion flag from the ?completed= query
// parameter (defaults to true).
func (h *SessionExerciseHandler) MarkCompleted(c *gin.Context) {
	userID, planID, sessionID, ok := sessionScope(c)
	if !ok {
		return
	}
	entryID, ok := pathObjectID(c, "exerciseId")
	if !ok {
		return
	}

	completed := true
	if raw := c.Query("completed"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "completed must be a boolean")
			return
		}
		completed = parsed
	}

	details, err := h.sessionExerciseService.MarkCompleted(c.Request.Context(), entryID, sessionID, planID, userID, completed)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSessionExerciseToResponse(details))
}

// Delete removes one entry.
func (h *SessionExerciseHandler) Delete(c *gin.Context) {
	userID, planID, sessionID, ok := sessionScope(c)
	if !ok {
		return
	}
	entryID, ok := pathObjectID(c, "exerciseId")
	if !ok {
		return
	}

	if err := h.sessionExerciseService.Delete(c.Request.Context(), entryID, sessionID, planID, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteAll removes every entry of the session.
func (h *SessionExerciseHandler) DeleteAll(c *gin.Context) {
	userID, planID, sessionID, ok := sessionScope(c)
	if !ok {
		return
	}

	if err := h.sessionExerciseService.DeleteAll(c.Request.Context(), sessionID, planID, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// mapSessionExerciseToResponse converts an entry plus its catalog exercise
// to the response DTO.
func mapSessionExerciseToResponse(details *service.SessionExerciseDetails) SessionExerciseResponse {
	resp := SessionExerciseResponse{
		ID:               details.Entry.ID.Hex(),
		WorkoutSessionID: details.Entry.WorkoutSessionID.Hex(),
		ExerciseID:       details.Entry.ExerciseID.Hex(),
		Sets:             details.Entry.Sets,
		Reps:             details.Entry.Reps,
		Weight:           details.Entry.Weight,
		DurationMinutes:  details.Entry.DurationMinutes,
		OrderIndex:       details.Entry.OrderIndex,
		Notes:            details.Entry.Notes,
		Completed:        details.Entry.Completed,
		CreatedAt:        details.Entry.CreatedAt,
		UpdatedAt:        details.Entry.UpdatedAt,
	}
	if details.Exercise != nil {
		resp.ExerciseName = details.Exercise.Name
	}
	return resp
}
