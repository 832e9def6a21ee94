package services

import (
  "context"
  "encoding/json"
  "errors"
  "testing"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yungbote/neuroplan-backend/internal/types"
)

type stubProgressRepo struct {
  rows []*types.PlanProgress
}

func (s *stubProgressRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.PlanProgress) ([]*types.PlanProgress, error) {
  s.rows = append(s.rows, rows...)
  return rows, nil
}

func (s *stubProgressRepo) GetByPlanID(ctx context.Context, tx *gorm.DB, planID uuid.UUID) ([]*types.PlanProgress, error) {
  var out []*types.PlanProgress
  for _, r := range s.rows {
    if r.PlanID == planID {
      out = append(out, r)
    }
  }
  return out, nil
}

func (s *stubProgressRepo) GetByPlanAndDay(ctx context.Context, tx *gorm.DB, planID uuid.UUID, dayIndex int) ([]*types.PlanProgress, error) {
  var out []*types.PlanProgress
  for _, r := range s.rows {
    if r.PlanID == planID && r.DayIndex == dayIndex {
      out = append(out, r)
    }
  }
  return out, nil
}

type progressFixture struct {
  svc    ProgressService
  repo   *stubProgressRepo
  userID uuid.UUID
  planID uuid.UUID
}

func newProgressFixture(t *testing.T) *progressFixture {
  t.Helper()
  log := testLogger(t)

  userID := uuid.New()
  child := &types.Child{ID: uuid.New(), UserID: userID, FirstName: "Mia"}
  plan := &types.LearningPlan{ID: uuid.New(), ChildID: child.ID}

  childRepo := &stubChildRepo{children: map[uuid.UUID]*types.Child{child.ID: child}}
  planRepo := &stubPlanRepo{created: []*types.LearningPlan{plan}}
  progressRepo := &stubProgressRepo{}

  return &progressFixture{
    svc:    NewProgressService(nil, log, childRepo, planRepo, progressRepo),
    repo:   progressRepo,
    userID: userID,
    planID: plan.ID,
  }
}

func TestRecordProgress_StampsEvidence(t *testing.T) {
  f := newProgressFixture(t)

  row, err := f.svc.RecordProgress(context.Background(), f.userID, f.planID, 2, "Built a rocket out of boxes.", nil)
  if err != nil {
    t.Fatalf("RecordProgress: %v", err)
  }
  if row.DayIndex != 2 || row.EngagementNotes != "Built a rocket out of boxes." {
    t.Fatalf("unexpected row: %+v", row)
  }

  var evidence map[string]any
  if err := json.Unmarshal(row.Evidence, &evidence); err != nil {
    t.Fatalf("decode evidence: %v", err)
  }
  if ts, ok := evidence["recorded_at"].(string); !ok || ts == "" {
    t.Fatalf("evidence must carry recorded_at, got %v", evidence)
  }
}

func TestRecordProgress_KeepsCallerEvidence(t *testing.T) {
  f := newProgressFixture(t)

  row, err := f.svc.RecordProgress(context.Background(), f.userID, f.planID, 0, "", map[string]any{"photo_count": 3})
  if err != nil {
    t.Fatalf("RecordProgress: %v", err)
  }
  var evidence map[string]any
  if err := json.Unmarshal(row.Evidence, &evidence); err != nil {
    t.Fatalf("decode evidence: %v", err)
  }
  if evidence["photo_count"] != float64(3) {
    t.Fatalf("caller evidence lost: %v", evidence)
  }
}

func TestRecordProgress_AppendOnly(t *testing.T) {
  f := newProgressFixture(t)
  ctx := context.Background()

  for i := 0; i < 2; i++ {
    if _, err := f.svc.RecordProgress(ctx, f.userID, f.planID, 1, "again", nil); err != nil {
      t.Fatalf("RecordProgress #%d: %v", i, err)
    }
  }
  rows, err := f.svc.GetProgressForPlan(ctx, f.userID, f.planID)
  if err != nil {
    t.Fatalf("GetProgressForPlan: %v", err)
  }
  if len(rows) != 2 {
    t.Fatalf("recording a day twice must keep both entries, got %d", len(rows))
  }
}

func TestRecordProgress_DayIndexBounds(t *testing.T) {
  f := newProgressFixture(t)
  ctx := context.Background()

  for _, day := range []int{-1, 5, 7} {
    if _, err := f.svc.RecordProgress(ctx, f.userID, f.planID, day, "", nil); err == nil {
      t.Errorf("expected error for day index %d", day)
    }
  }
}

func TestProgress_Ownership(t *testing.T) {
  f := newProgressFixture(t)
  ctx := context.Background()

  if _, err := f.svc.RecordProgress(ctx, uuid.New(), f.planID, 0, "", nil); !errors.Is(err, ErrForbidden) {
    t.Fatalf("expected ErrForbidden, got %v", err)
  }
  if _, err := f.svc.GetProgressForPlan(ctx, f.userID, uuid.New()); !errors.Is(err, ErrNotFound) {
    t.Fatalf("expected ErrNotFound, got %v", err)
  }
}
