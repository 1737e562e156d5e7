package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"workout-tracker/internal/domain"
	"workout-tracker/internal/service"
)

// WorkoutSessionHandler holds the session service dependency.
type WorkoutSessionHandler struct {
	sessionService service.WorkoutSessionService
}

// NewWorkoutSessionHandler creates a new WorkoutSessionHandler.
func NewWorkoutSessionHandler(sessionService service.WorkoutSessionService) *WorkoutSessionHandler {
	return &WorkoutSessionHandler{sessionService: sessionService}
}

// --- Request/Response Structs ---

type SessionExerciseCreateRequest struct {
	ExerciseID      string   `json:"exerciseId" binding:"required"`
	Sets            *int     `json:"sets" binding:"omitempty,gte=0"`
	Reps            *int     `json:"reps" binding:"omitempty,gte=0"`
	Weight          *float64 `json:"weight" binding:"omitempty,gte=0"`
	DurationMinutes *int     `json:"durationMinutes" binding:"omitempty,gte=0"`
	OrderIndex      int      `json:"orderIndex" binding:"gte=0"`
	Notes           string   `json:"notes"`
}

type SessionCreateRequest struct {
	Name          string                         `json:"name" binding:"required"`
	ScheduledDate *time.Time                     `json:"scheduledDate"`
	Notes         string                         `json:"notes"`
	Exercises     []SessionExerciseCreateRequest `json:"exercises" binding:"omitempty,dive"`
}

// SessionUpdateRequest carries optional fields; absent fields are not changed.
type SessionUpdateRequest struct {
	Name          *string    `json:"name"`
	ScheduledDate *time.Time `json:"scheduledDate"`
	Notes         *string    `json:"notes"`
}

type SessionResponse struct {
	ID            string               `json:"id"`
	WorkoutPlanID string               `json:"workoutPlanId"`
	Name          string               `json:"name"`
	ScheduledDate *time.Time           `json:"scheduledDate,omitempty"`
	Notes         string               `json:"notes,omitempty"`
	Status        domain.SessionStatus `json:"status"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// --- Handler Methods ---

// Create makes a new session under the caller's plan, optionally with an
// initial exercise list.
func (h *WorkoutSessionHandler) Create(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "planId")
	if !ok {
		return
	}

	var req SessionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, bindingErrorMessage(err))
		return
	}

	create := service.WorkoutSessionCreate{
		Name:          req.Name,
		ScheduledDate: req.ScheduledDate,
		Notes:         req.Notes,
	}
	for _, ex := range req.Exercises {
		exerciseID, err := primitive.ObjectIDFromHex(ex.ExerciseID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid exerciseId format")
			return
		}
		create.Exercises = append(create.Exercises, service.SessionExerciseInput{
			ExerciseID:      exerciseID,
			Sets:            ex.Sets,
			Reps:            ex.Reps,
			Weight:          ex.Weight,
			DurationMinutes: ex.DurationMinutes,
			OrderIndex:      ex.OrderIndex,
			Notes:           ex.Notes,
		})
	}

	session, err := h.sessionService.Create(c.Request.Context(), planID, userID, create)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapSessionToResponse(session))
}

// List returns all sessions of the caller's plan.
func (h *WorkoutSessionHandler) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "planId")
	if !ok {
		return
	}

	sessions, err := h.sessionService.List(c.Request.Context(), planID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	responses := make([]SessionResponse, len(sessions))
	for i := range sessions {
		responses[i] = mapSessionToResponse(&sessions[i])
	}
	c.JSON(http.StatusOK, responses)
}

// GetByID returns one session of the caller's plan.
func (h *WorkoutSessionHandler) GetByID(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "planId")
	if !ok {
		return
	}
	sessionID, ok := pathObjectID(c, "sessionId")
	if !ok {
		return
	}

	session, err := h.sessionService.GetByID(c.Request.Context(), sessionID, planID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSessionToResponse(session))
}

// Update partially updates one session.
func (h *WorkoutSessionHandler) Update(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "planId")
	if !ok {
		return
	}
	sessionID, ok := pathObjectID(c, "sessionId")
	if !ok {
		return
	}

	var req SessionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, bindingErrorMessage(err))
		return
	}

	session, err := h.sessionService.Update(c.Request.Context(), sessionID, planID, userID, service.WorkoutSessionUpdate{
		Name:          req.Name,
		ScheduledDate: req.ScheduledDate,
		Notes:         req.Notes,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSessionToResponse(session))
}

// UpdateStatus sets the session status from the ?status= query parameter.
func (h *WorkoutSessionHandler) UpdateStatus(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "planId")
	if !ok {
		return
	}
	sessionID, ok := pathObjectID(c, "sessionId")
	if !ok {
		return
	}

	status, ok := domain.ParseSessionStatus(c.Query("status"))
	if !ok {
		abortWithError(c, http.StatusBadRequest, "status must be one of: pending, completed, skipped")
		return
	}

	session, err := h.sessionService.UpdateStatus(c.Request.Context(), sessionID, planID, userID, status)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSessionToResponse(session))
}

// Delete removes one session, cascading to its exercise-log entries.
func (h *WorkoutSessionHandler) Delete(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "planId")
	if !ok {
		return
	}
	sessionID, ok := pathObjectID(c, "sessionId")
	if !ok {
		return
	}

	if err := h.sessionService.Delete(c.Request.Context(), sessionID, planID, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteAll removes every session of the caller's plan.
func (h *WorkoutSessionHandler) DeleteAll(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "planId")
	if !ok {
		return
	}

	if err := h.sessionService.DeleteAll(c.Request.Context(), planID, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// mapSessionToResponse converts a domain WorkoutSession to its response DTO.
func mapSessionToResponse(session *domain.WorkoutSession) SessionResponse {
	return SessionResponse{
		ID:            session.ID.Hex(),
		WorkoutPlanID: session.WorkoutPlanID.Hex(),
		Name:          session.Name,
		ScheduledDate: session.ScheduledDate,
		Notes:         session.Notes,
		Status:        session.Status,
		CreatedAt:     session.CreatedAt,
		UpdatedAt:     session.UpdatedAt,
	}
}
