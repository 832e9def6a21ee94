package services

import (
  "context"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/yungbote/neuroplan-backend/internal/logger"
  "github.com/yungbote/neuroplan-backend/internal/repos"
  "github.com/yungbote/neuroplan-backend/internal/types"
)

// ProgressService records per-day engagement against a plan. Entries are
// append-only; a day can be recorded more than once.
type ProgressService interface {
  RecordProgress(ctx context.Context, userID, planID uuid.UUID, dayIndex int, notes string, evidence map[string]any) (*types.PlanProgress, error)
  GetProgressForPlan(ctx context.Context, userID, planID uuid.UUID) ([]*types.PlanProgress, error)
}

type progressService struct {
  db  *gorm.DB
  log *logger.Logger

  childRepo    repos.ChildRepo
  planRepo     repos.LearningPlanRepo
  progressRepo repos.PlanProgressRepo
}

func NewProgressService(db *gorm.DB, baseLog *logger.Logger, childRepo repos.ChildRepo, planRepo repos.LearningPlanRepo, progressRepo repos.PlanProgressRepo) ProgressService {
  return &progressService{
    db:           db,
    log:          baseLog.With("service", "ProgressService"),
    childRepo:    childRepo,
    planRepo:     planRepo,
    progressRepo: progressRepo,
  }
}

func (ps *progressService) RecordProgress(ctx context.Context, userID, planID uuid.UUID, dayIndex int, notes string, evidence map[string]any) (*types.PlanProgress, error) {
  if dayIndex < 0 || dayIndex > 4 {
    return nil, fmt.Errorf("day_index must be between 0 and 4")
  }
  if err := ps.assertPlanOwnership(ctx, userID, planID); err != nil {
    return nil, err
  }

  if evidence == nil {
    evidence = map[string]any{}
  }
  if _, ok := evidence["recorded_at"]; !ok {
    evidence["recorded_at"] = time.Now().Format(time.RFC3339)
  }

  now := time.Now()
  row := &types.PlanProgress{
    ID:              uuid.New(),
    PlanID:          planID,
    DayIndex:        dayIndex,
    EngagementNotes: notes,
    Evidence:        datatypes.JSON(mustJSON(evidence)),
    CreatedAt:       now,
    UpdatedAt:       now,
  }
  if _, err := ps.progressRepo.Create(ctx, nil, []*types.PlanProgress{row}); err != nil {
    return nil, fmt.Errorf("create progress: %w", err)
  }
  return row, nil
}

func (ps *progressService) GetProgressForPlan(ctx context.Context, userID, planID uuid.UUID) ([]*types.PlanProgress, error) {
  if err := ps.assertPlanOwnership(ctx, userID, planID); err != nil {
    return nil, err
  }
  rows, err := ps.progressRepo.GetByPlanID(ctx, nil, planID)
  if err != nil {
    return nil, fmt.Errorf("load progress: %w", err)
  }
  return rows, nil
}

func (ps *progressService) assertPlanOwnership(ctx context.Context, userID, planID uuid.UUID) error {
  plans, err := ps.planRepo.GetByIDs(ctx, nil, []uuid.UUID{planID})
  if err != nil {
    return fmt.Errorf("load plan: %w", err)
  }
  if len(plans) == 0 || plans[0] == nil {
    return ErrNotFound
  }
  children, err := ps.childRepo.GetByIDs(ctx, nil, []uuid.UUID{plans[0].ChildID})
  if err != nil {
    return fmt.Errorf("load child: %w", err)
  }
  if len(children) == 0 || children[0] == nil {
    return ErrNotFound
  }
  if children[0].UserID != userID {
    return ErrForbidden
  }
  return nil
}
