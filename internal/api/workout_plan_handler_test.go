package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"workout-tracker/internal/domain"
	"workout-tracker/internal/service"
)

// stubPlanService records the update payload it receives and returns
// canned results.
type stubPlanService struct {
	plan       *domain.WorkoutPlan
	err        error
	lastUpdate service.WorkoutPlanUpdate
}

func (s *stubPlanService) Create(_ context.Context, _ primitive.ObjectID, _, _ string) (*domain.WorkoutPlan, error) {
	return s.plan, s.err
}

func (s *stubPlanService) List(_ context.Context, _ primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.WorkoutPlan{*s.plan}, nil
}

func (s *stubPlanService) GetByID(_ context.Context, _, _ primitive.ObjectID) (*domain.WorkoutPlan, error) {
	return s.plan, s.err
}

func (s *stubPlanService) Update(_ context.Context, _, _ primitive.ObjectID, update service.WorkoutPlanUpdate) (*domain.WorkoutPlan, error) {
	s.lastUpdate = update
	return s.plan, s.err
}

func (s *stubPlanService) Delete(_ context.Context, _, _ primitive.ObjectID) error {
	return s.err
}

func (s *stubPlanService) DeleteAll(_ context.Context, _ primitive.ObjectID) error {
	return s.err
}

func (s *stubPlanService) Copy(_ context.Context, _, _ primitive.ObjectID) (*domain.WorkoutPlan, error) {
	return s.plan, s.err
}

func newPlanHandlerRouter(svc service.WorkoutPlanService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	// Simulate the auth middleware having run.
	router.Use(func(c *gin.Context) {
		c.Set(ContextUserIDKey, primitive.NewObjectID().Hex())
	})
	handler := NewWorkoutPlanHandler(svc)
	router.GET("/api/plans/:planId", handler.GetByID)
	router.PATCH("/api/plans/:planId", handler.Update)
	router.DELETE("/api/plans/:planId", handler.Delete)
	router.POST("/api/plans/:planId/copy", handler.Copy)
	return router
}

func testPlan() *domain.WorkoutPlan {
	return &domain.WorkoutPlan{
		ID:        primitive.NewObjectID(),
		UserID:    primitive.NewObjectID(),
		Name:      "Strength Block",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func TestPlanGetNotFoundEnvelope(t *testing.T) {
	router := newPlanHandlerRouter(&stubPlanService{err: service.ErrPlanNotFound})
	path := "/api/plans/" + primitive.NewObjectID().Hex()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	envelope := decodeErrorResponse(t, rec)
	assert.Equal(t, http.StatusNotFound, envelope.Status)
	assert.Equal(t, "Not Found", envelope.Error)
	assert.Equal(t, "workout plan not found", envelope.Message)
	assert.Equal(t, path, envelope.Path)
}

func TestPlanGetInvalidIDIsBadRequest(t *testing.T) {
	router := newPlanHandlerRouter(&stubPlanService{plan: testPlan()})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/plans/not-a-hex-id", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlanUpdatePassesPartialFields(t *testing.T) {
	stub := &stubPlanService{plan: testPlan()}
	router := newPlanHandlerRouter(stub)

	body, _ := json.Marshal(gin.H{"description": ""})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/plans/"+primitive.NewObjectID().Hex(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, stub.lastUpdate.Name, "absent name stays nil")
	require.NotNil(t, stub.lastUpdate.Description)
	assert.Empty(t, *stub.lastUpdate.Description, "empty description is passed through to clear")
}

func TestPlanDeleteNoContent(t *testing.T) {
	router := newPlanHandlerRouter(&stubPlanService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/plans/"+primitive.NewObjectID().Hex(), nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestPlanCopyCreated(t *testing.T) {
	plan := testPlan()
	plan.Name = "Strength Block (Copy)"
	router := newPlanHandlerRouter(&stubPlanService{plan: plan})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/plans/"+primitive.NewObjectID().Hex()+"/copy", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp PlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Strength Block (Copy)", resp.Name)
}
