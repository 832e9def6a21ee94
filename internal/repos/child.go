package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/neuroplan-backend/internal/logger"
  "github.com/yungbote/neuroplan-backend/internal/types"
)

type ChildRepo interface {
  Create(ctx context.Context, tx *gorm.DB, children []*types.Child) ([]*types.Child, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Child, error)
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Child, error)
  UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error
  DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type childRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewChildRepo(db *gorm.DB, baseLog *logger.Logger) ChildRepo {
  repoLog := baseLog.With("repo", "ChildRepo")
  return &childRepo{db: db, log: repoLog}
}

func (cr *childRepo) Create(ctx context.Context, tx *gorm.DB, children []*types.Child) ([]*types.Child, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  if len(children) == 0 {
    return []*types.Child{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&children).Error; err != nil {
    return nil, err
  }
  return children, nil
}

func (cr *childRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Child, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  var results []*types.Child
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

func (cr *childRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Child, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  var results []*types.Child
  if userID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (cr *childRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  if id == uuid.Nil || len(fields) == 0 {
    return nil
  }

  return transaction.WithContext(ctx).
    Model(&types.Child{}).
    Where("id = ?", id).
    Updates(fields).Error
}

func (cr *childRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  if len(ids) == 0 {
    return nil
  }

  // hard delete: the child_id FK cascades to learning_plan rows
  return transaction.WithContext(ctx).
    Where("id IN ?", ids).
    Delete(&types.Child{}).Error
}
