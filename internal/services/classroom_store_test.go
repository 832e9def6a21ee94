package services

import (
  "context"
  "testing"

  "github.com/google/uuid"

  "github.com/yungbote/neuroplan-backend/internal/types"
)

func TestMemoryClassroomStore_MissingKeysReturnNilNil(t *testing.T) {
  store := NewMemoryClassroomStore()
  ctx := context.Background()

  cfg, err := store.GetConfig(ctx, uuid.New())
  if cfg != nil || err != nil {
    t.Fatalf("GetConfig on missing id = (%+v, %v), want (nil, nil)", cfg, err)
  }
  plan, err := store.GetPlan(ctx, uuid.New())
  if plan != nil || err != nil {
    t.Fatalf("GetPlan on missing id = (%+v, %v), want (nil, nil)", plan, err)
  }
}

func TestMemoryClassroomStore_ListFiltersByUser(t *testing.T) {
  store := NewMemoryClassroomStore()
  ctx := context.Background()
  alice := uuid.New()
  bob := uuid.New()

  for _, cfg := range []*types.ClassroomConfig{
    {ID: uuid.New(), UserID: alice, Name: "3B"},
    {ID: uuid.New(), UserID: alice, Name: "4A"},
    {ID: uuid.New(), UserID: bob, Name: "5C"},
  } {
    if err := store.PutConfig(ctx, cfg); err != nil {
      t.Fatalf("PutConfig: %v", err)
    }
  }

  got, err := store.ListConfigs(ctx, alice)
  if err != nil {
    t.Fatalf("ListConfigs: %v", err)
  }
  if len(got) != 2 {
    t.Fatalf("expected 2 configs for alice, got %d", len(got))
  }
  for _, cfg := range got {
    if cfg.UserID != alice {
      t.Fatalf("listed config belongs to the wrong user: %+v", cfg)
    }
  }
}

func TestMemoryClassroomStore_DeleteIsIdempotent(t *testing.T) {
  store := NewMemoryClassroomStore()
  ctx := context.Background()

  cfg := &types.ClassroomConfig{ID: uuid.New(), UserID: uuid.New(), Name: "3B"}
  if err := store.PutConfig(ctx, cfg); err != nil {
    t.Fatalf("PutConfig: %v", err)
  }
  if err := store.DeleteConfig(ctx, cfg.ID); err != nil {
    t.Fatalf("DeleteConfig: %v", err)
  }
  if err := store.DeleteConfig(ctx, cfg.ID); err != nil {
    t.Fatalf("second DeleteConfig must be a no-op, got %v", err)
  }
}
