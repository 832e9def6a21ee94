package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/neuroplan-backend/internal/logger"
  "github.com/yungbote/neuroplan-backend/internal/types"
)

type LearningPlanRepo interface {
  Create(ctx context.Context, tx *gorm.DB, plans []*types.LearningPlan) ([]*types.LearningPlan, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.LearningPlan, error)
  GetByChildID(ctx context.Context, tx *gorm.DB, childID uuid.UUID) ([]*types.LearningPlan, error)
}

type learningPlanRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewLearningPlanRepo(db *gorm.DB, baseLog *logger.Logger) LearningPlanRepo {
  repoLog := baseLog.With("repo", "LearningPlanRepo")
  return &learningPlanRepo{db: db, log: repoLog}
}

func (lr *learningPlanRepo) Create(ctx context.Context, tx *gorm.DB, plans []*types.LearningPlan) ([]*types.LearningPlan, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  if len(plans) == 0 {
    return []*types.LearningPlan{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&plans).Error; err != nil {
    return nil, err
  }
  return plans, nil
}

func (lr *learningPlanRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.LearningPlan, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  var results []*types.LearningPlan
  if len(ids) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", ids).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (lr *learningPlanRepo) GetByChildID(ctx context.Context, tx *gorm.DB, childID uuid.UUID) ([]*types.LearningPlan, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  var results []*types.LearningPlan
  if childID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("child_id = ?", childID).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
