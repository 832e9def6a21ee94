package services

import (
  "context"
  "errors"
  "testing"

  "github.com/google/uuid"

  "github.com/yungbote/neuroplan-backend/internal/types"
)

func strPtr(s string) *string { return &s }

func newChildFixture(t *testing.T) (ChildService, *stubChildRepo, uuid.UUID) {
  t.Helper()
  repo := &stubChildRepo{children: map[uuid.UUID]*types.Child{}}
  return NewChildService(nil, testLogger(t), repo), repo, uuid.New()
}

func TestCreateChild_DefaultsAndValidation(t *testing.T) {
  svc, _, userID := newChildFixture(t)
  ctx := context.Background()

  created, err := svc.CreateChild(ctx, userID, &types.Child{FirstName: "Mia"})
  if err != nil {
    t.Fatalf("CreateChild: %v", err)
  }
  if created.ID == uuid.Nil || created.UserID != userID {
    t.Fatalf("created child missing identity fields: %+v", created)
  }
  if created.LearningContext != types.LearningContextHomeschool {
    t.Fatalf("learning context should default to homeschool, got %q", created.LearningContext)
  }

  if _, err := svc.CreateChild(ctx, userID, &types.Child{}); err == nil {
    t.Fatalf("expected error for missing first name")
  }
  badAge := 25
  if _, err := svc.CreateChild(ctx, userID, &types.Child{FirstName: "Mia", AgeYears: &badAge}); err == nil {
    t.Fatalf("expected error for age out of range")
  }
  if _, err := svc.CreateChild(ctx, userID, &types.Child{FirstName: "Mia", LearningContext: "daycare"}); err == nil {
    t.Fatalf("expected error for unknown learning context")
  }
}

func TestUpdateChild_PartialUpdate(t *testing.T) {
  svc, _, userID := newChildFixture(t)
  ctx := context.Background()

  age := 6
  created, err := svc.CreateChild(ctx, userID, &types.Child{FirstName: "Mia", AgeYears: &age, Interests: "dinosaurs, trains"})
  if err != nil {
    t.Fatalf("CreateChild: %v", err)
  }

  updated, err := svc.UpdateChild(ctx, userID, created.ID, ChildUpdate{Interests: strPtr("space, robots")})
  if err != nil {
    t.Fatalf("UpdateChild: %v", err)
  }
  if updated.Interests != "space, robots" {
    t.Fatalf("interests not updated: %q", updated.Interests)
  }
  if updated.FirstName != "Mia" || updated.AgeYears == nil || *updated.AgeYears != 6 {
    t.Fatalf("untouched fields must survive: %+v", updated)
  }

  if _, err := svc.UpdateChild(ctx, userID, created.ID, ChildUpdate{FirstName: strPtr("")}); err == nil {
    t.Fatalf("expected error for empty first name")
  }
}

func TestUpdateChild_Ownership(t *testing.T) {
  svc, _, userID := newChildFixture(t)
  ctx := context.Background()

  created, err := svc.CreateChild(ctx, userID, &types.Child{FirstName: "Mia"})
  if err != nil {
    t.Fatalf("CreateChild: %v", err)
  }

  if _, err := svc.UpdateChild(ctx, uuid.New(), created.ID, ChildUpdate{}); !errors.Is(err, ErrForbidden) {
    t.Fatalf("expected ErrForbidden, got %v", err)
  }
  if _, err := svc.UpdateChild(ctx, userID, uuid.New(), ChildUpdate{}); !errors.Is(err, ErrNotFound) {
    t.Fatalf("expected ErrNotFound, got %v", err)
  }
}

func TestDeleteChild(t *testing.T) {
  svc, repo, userID := newChildFixture(t)
  ctx := context.Background()

  created, err := svc.CreateChild(ctx, userID, &types.Child{FirstName: "Mia"})
  if err != nil {
    t.Fatalf("CreateChild: %v", err)
  }

  if err := svc.DeleteChild(ctx, uuid.New(), created.ID); !errors.Is(err, ErrForbidden) {
    t.Fatalf("expected ErrForbidden for stranger, got %v", err)
  }
  if err := svc.DeleteChild(ctx, userID, created.ID); err != nil {
    t.Fatalf("DeleteChild: %v", err)
  }
  if _, ok := repo.children[created.ID]; ok {
    t.Fatalf("child row must be gone after delete")
  }
}
