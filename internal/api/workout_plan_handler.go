package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"workout-tracker/internal/domain"
	"workout-tracker/internal/service"
)

// WorkoutPlanHandler holds the plan service dependency.
type WorkoutPlanHandler struct {
	planService service.WorkoutPlanService
}

// NewWorkoutPlanHandler creates a new WorkoutPlanHandler.
func NewWorkoutPlanHandler(planService service.WorkoutPlanService) *WorkoutPlanHandler {
	return &WorkoutPlanHandler{planService: planService}
}

// --- Request/Response Structs ---

type PlanCreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// PlanUpdateRequest carries optional fields; absent fields are not changed.
type PlanUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type PlanResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// --- Handler Methods ---

// Create makes a new plan owned by the caller.
func (h *WorkoutPlanHandler) Create(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req PlanCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, bindingErrorMessage(err))
		return
	}

	plan, err := h.planService.Create(c.Request.Context(), userID, req.Name, req.Description)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapPlanToResponse(plan))
}

// List returns the caller's plans, newest first.
func (h *WorkoutPlanHandler) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	plans, err := h.planService.List(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	responses := make([]PlanResponse, len(plans))
	for i := range plans {
		responses[i] = mapPlanToResponse(&plans[i])
	}
	c.JSON(http.StatusOK, responses)
}

// GetByID returns one of the caller's plans.
func (h *WorkoutPlanHandler) GetByID(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "planId")
	if !ok {
		return
	}

	plan, err := h.planService.GetByID(c.Request.Context(), planID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPlanToResponse(plan))
}

// Update partially updates one of the caller's plans.
func (h *WorkoutPlanHandler) Update(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "planId")
	if !ok {
		return
	}

	var req PlanUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, bindingErrorMessage(err))
		return
	}

	plan, err := h.planService.Update(c.Request.Context(), planID, userID, service.WorkoutPlanUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPlanToResponse(plan))
}

// Delete removes one plan, cascading to its sessions and their entries.
func (h *WorkoutPlanHandler) Delete(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "planId")
	if !ok {
		return
	}

	if err := h.planService.Delete(c.Request.Context(), planID, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteAll removes every plan owned by the caller.
func (h *WorkoutPlanHandler) DeleteAll(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.planService.DeleteAll(c.Request.Context(), userID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Copy deep-clones one of the caller's plans.
func (h *WorkoutPlanHandler) Copy(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "planId")
	if !ok {
		return
	}

	clone, err := h.planService.Copy(c.Request.Context(), planID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapPlanToResponse(clone))
}

// mapPlanToResponse converts a domain WorkoutPlan to its response DTO.
func mapPlanToResponse(plan *domain.WorkoutPlan) PlanResponse {
	return PlanResponse{
		ID:          plan.ID.Hex(),
		Name:        plan.Name,
		Description: plan.Description,
		CreatedAt:   plan.CreatedAt,
		UpdatedAt:   plan.UpdatedAt,
	}
}
