package services

import (
  "context"
  "errors"
  "testing"

  "github.com/google/uuid"

  "github.com/yungbote/neuroplan-backend/internal/types"
)

func TestPlanService_OwnershipWalk(t *testing.T) {
  log := testLogger(t)
  ctx := context.Background()

  owner := uuid.New()
  child := &types.Child{ID: uuid.New(), UserID: owner, FirstName: "Mia"}
  plan := &types.LearningPlan{ID: uuid.New(), ChildID: child.ID, ThemeTitle: "Space Week"}

  childRepo := &stubChildRepo{children: map[uuid.UUID]*types.Child{child.ID: child}}
  planRepo := &stubPlanRepo{created: []*types.LearningPlan{plan}}
  svc := NewPlanService(nil, log, childRepo, planRepo)

  got, err := svc.GetPlan(ctx, owner, plan.ID)
  if err != nil || got.ThemeTitle != "Space Week" {
    t.Fatalf("GetPlan = (%+v, %v)", got, err)
  }

  if _, err := svc.GetPlan(ctx, uuid.New(), plan.ID); !errors.Is(err, ErrForbidden) {
    t.Fatalf("expected ErrForbidden for stranger, got %v", err)
  }
  if _, err := svc.GetPlan(ctx, owner, uuid.New()); !errors.Is(err, ErrNotFound) {
    t.Fatalf("expected ErrNotFound for unknown plan, got %v", err)
  }

  plans, err := svc.GetPlansForChild(ctx, owner, child.ID)
  if err != nil || len(plans) != 1 {
    t.Fatalf("GetPlansForChild = (%d, %v)", len(plans), err)
  }
  if _, err := svc.GetPlansForChild(ctx, uuid.New(), child.ID); !errors.Is(err, ErrForbidden) {
    t.Fatalf("expected ErrForbidden, got %v", err)
  }
}
