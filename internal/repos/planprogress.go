package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/neuroplan-backend/internal/logger"
  "github.com/yungbote/neuroplan-backend/internal/types"
)

type PlanProgressRepo interface {
  Create(ctx context.Context, tx *gorm.DB, rows []*types.PlanProgress) ([]*types.PlanProgress, error)
  GetByPlanID(ctx context.Context, tx *gorm.DB, planID uuid.UUID) ([]*types.PlanProgress, error)
  GetByPlanAndDay(ctx context.Context, tx *gorm.DB, planID uuid.UUID, dayIndex int) ([]*types.PlanProgress, error)
}

type planProgressRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPlanProgressRepo(db *gorm.DB, baseLog *logger.Logger) PlanProgressRepo {
  repoLog := baseLog.With("repo", "PlanProgressRepo")
  return &planProgressRepo{db: db, log: repoLog}
}

func (pr *planProgressRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.PlanProgress) ([]*types.PlanProgress, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  if len(rows) == 0 {
    return []*types.PlanProgress{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
    return nil, err
  }
  return rows, nil
}

func (pr *planProgressRepo) GetByPlanID(ctx context.Context, tx *gorm.DB, planID uuid.UUID) ([]*types.PlanProgress, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.PlanProgress
  if planID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("plan_id = ?", planID).
    Order("day_index ASC, created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *planProgressRepo) GetByPlanAndDay(ctx context.Context, tx *gorm.DB, planID uuid.UUID, dayIndex int) ([]*types.PlanProgress, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.PlanProgress
  if planID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("plan_id = ? AND day_index = ?", planID, dayIndex).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
