package handlers

import (
  "bytes"
  "context"
  "encoding/json"
  "net/http"
  "net/http/httptest"
  "strings"
  "testing"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/yungbote/neuroplan-backend/internal/logger"
  "github.com/yungbote/neuroplan-backend/internal/requestdata"
  "github.com/yungbote/neuroplan-backend/internal/services"
  "github.com/yungbote/neuroplan-backend/internal/types"
)

type stubClassroomService struct {
  result  *services.ClassroomGenerationResult
  lastReq *services.ClassroomPlanRequest
}

func (s *stubClassroomService) CreateConfiguration(ctx context.Context, userID uuid.UUID, cfg *types.ClassroomConfig) (*types.ClassroomConfig, error) {
  cfg.ID = uuid.New()
  cfg.UserID = userID
  return cfg, nil
}

func (s *stubClassroomService) ListConfigurations(ctx context.Context, userID uuid.UUID) ([]*types.ClassroomConfig, error) {
  return nil, nil
}

func (s *stubClassroomService) GetConfiguration(ctx context.Context, userID, configID uuid.UUID) (*types.ClassroomConfig, error) {
  return nil, services.ErrNotFound
}

func (s *stubClassroomService) UpdateConfiguration(ctx context.Context, userID, configID uuid.UUID, cfg *types.ClassroomConfig) (*types.ClassroomConfig, error) {
  return nil, services.ErrNotFound
}

func (s *stubClassroomService) DeleteConfiguration(ctx context.Context, userID, configID uuid.UUID) error {
  return services.ErrNotFound
}

func (s *stubClassroomService) GeneratePlan(ctx context.Context, req *services.ClassroomPlanRequest) *services.ClassroomGenerationResult {
  s.lastReq = req
  return s.result
}

func newClassroomRouter(t *testing.T, svc services.ClassroomService) *gin.Engine {
  t.Helper()
  gin.SetMode(gin.TestMode)
  log, err := logger.New("development")
  if err != nil {
    t.Fatalf("logger.New: %v", err)
  }

  h := NewClassroomHandler(log, svc)
  router := gin.New()
  router.Use(func(c *gin.Context) {
    rd := &requestdata.RequestData{UserID: uuid.New()}
    c.Request = c.Request.WithContext(requestdata.WithRequestData(c.Request.Context(), rd))
    c.Next()
  })
  router.POST("/api/educator-plans/generate", h.GeneratePlan)
  router.POST("/api/educator-plans/configurations", h.CreateConfiguration)
  return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
  t.Helper()
  b, err := json.Marshal(body)
  if err != nil {
    t.Fatalf("marshal body: %v", err)
  }
  req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
  req.Header.Set("Content-Type", "application/json")
  w := httptest.NewRecorder()
  router.ServeHTTP(w, req)
  return w
}

func TestClassroomGenerateEndpoint_MissingFieldsNamed(t *testing.T) {
  router := newClassroomRouter(t, &stubClassroomService{})

  w := postJSON(t, router, "/api/educator-plans/generate", map[string]any{
    "classroom_name": "3B",
    "subject":        "Science",
  })
  if w.Code != http.StatusBadRequest {
    t.Fatalf("expected 400, got %d", w.Code)
  }

  var envelope ErrorEnvelope
  if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
    t.Fatalf("decode error envelope: %v", err)
  }
  for _, field := range []string{"educator_name", "year_level", "learning_objectives"} {
    if !strings.Contains(envelope.Error.Message, field) {
      t.Fatalf("error must name missing field %q, got %q", field, envelope.Error.Message)
    }
  }
  for _, field := range []string{"classroom_name", "subject"} {
    if strings.Contains(envelope.Error.Message, field) {
      t.Fatalf("error must not name present field %q, got %q", field, envelope.Error.Message)
    }
  }
}

func TestClassroomGenerateEndpoint_DegradedResultStill200(t *testing.T) {
  svc := &stubClassroomService{
    result: &services.ClassroomGenerationResult{
      Success:      false,
      Error:        "upstream 503",
      FallbackPlan: &types.ClassroomPlan{ID: uuid.New(), Degraded: true},
    },
  }
  router := newClassroomRouter(t, svc)

  w := postJSON(t, router, "/api/educator-plans/generate", map[string]any{
    "classroom_name":      "3B",
    "educator_name":       "Ms Chen",
    "year_level":          "Year 3",
    "subject":             "Science",
    "learning_objectives": []string{"Classify living things"},
  })
  if w.Code != http.StatusOK {
    t.Fatalf("degraded generation must still answer 200, got %d", w.Code)
  }

  var result services.ClassroomGenerationResult
  if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
    t.Fatalf("decode result: %v", err)
  }
  if result.Success || result.FallbackPlan == nil || result.Error == "" {
    t.Fatalf("degraded shape lost on the wire: %+v", result)
  }
}

func TestClassroomGenerateEndpoint_ForwardsRequest(t *testing.T) {
  svc := &stubClassroomService{
    result: &services.ClassroomGenerationResult{Success: true, Plan: &types.ClassroomPlan{ID: uuid.New()}},
  }
  router := newClassroomRouter(t, svc)

  w := postJSON(t, router, "/api/educator-plans/generate", map[string]any{
    "classroom_name":      "3B",
    "educator_name":       "Ms Chen",
    "year_level":          "Year 3",
    "subject":             "Science",
    "learning_objectives": []string{"Classify living things"},
    "students": []map[string]any{
      {"first_name": "Sam", "interests": []string{"dinosaurs"}},
    },
  })
  if w.Code != http.StatusOK {
    t.Fatalf("expected 200, got %d", w.Code)
  }
  if svc.lastReq == nil || len(svc.lastReq.Students) != 1 || svc.lastReq.Students[0].FirstName != "Sam" {
    t.Fatalf("request not forwarded to service: %+v", svc.lastReq)
  }
}

func TestClassroomConfigurationsEndpoint_Create(t *testing.T) {
  router := newClassroomRouter(t, &stubClassroomService{})

  w := postJSON(t, router, "/api/educator-plans/configurations", map[string]any{
    "name":          "3B",
    "educator_name": "Ms Chen",
  })
  if w.Code != http.StatusCreated {
    t.Fatalf("expected 201, got %d", w.Code)
  }
  var body struct {
    Configuration types.ClassroomConfig `json:"configuration"`
  }
  if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
    t.Fatalf("decode body: %v", err)
  }
  if body.Configuration.ID == uuid.Nil || body.Configuration.Name != "3B" {
    t.Fatalf("unexpected configuration: %+v", body.Configuration)
  }
}
