package services

import (
  "context"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yungbote/neuroplan-backend/internal/logger"
  "github.com/yungbote/neuroplan-backend/internal/repos"
  "github.com/yungbote/neuroplan-backend/internal/types"
)

type ChildUpdate struct {
  FirstName       *string `json:"first_name,omitempty"`
  AgeYears        *int    `json:"age_years,omitempty"`
  Neurotype       *string `json:"neurotype,omitempty"`
  Interests       *string `json:"interests,omitempty"`
  LearningContext *string `json:"learning_context,omitempty"`
  State           *string `json:"state,omitempty"`
}

type ChildService interface {
  CreateChild(ctx context.Context, userID uuid.UUID, child *types.Child) (*types.Child, error)
  GetChildren(ctx context.Context, userID uuid.UUID) ([]*types.Child, error)
  UpdateChild(ctx context.Context, userID, childID uuid.UUID, update ChildUpdate) (*types.Child, error)
  DeleteChild(ctx context.Context, userID, childID uuid.UUID) error
}

type childService struct {
  db  *gorm.DB
  log *logger.Logger

  childRepo repos.ChildRepo
}

func NewChildService(db *gorm.DB, baseLog *logger.Logger, childRepo repos.ChildRepo) ChildService {
  return &childService{
    db:        db,
    log:       baseLog.With("service", "ChildService"),
    childRepo: childRepo,
  }
}

func (cs *childService) CreateChild(ctx context.Context, userID uuid.UUID, child *types.Child) (*types.Child, error) {
  if child.FirstName == "" {
    return nil, fmt.Errorf("first_name is required")
  }
  if child.AgeYears != nil && (*child.AgeYears < 1 || *child.AgeYears > 18) {
    return nil, fmt.Errorf("age_years must be between 1 and 18")
  }
  if child.LearningContext == "" {
    child.LearningContext = types.LearningContextHomeschool
  }
  if child.LearningContext != types.LearningContextHomeschool && child.LearningContext != types.LearningContextClassroom {
    return nil, fmt.Errorf("learning_context must be %q or %q", types.LearningContextHomeschool, types.LearningContextClassroom)
  }

  now := time.Now()
  child.ID = uuid.New()
  child.UserID = userID
  child.CreatedAt = now
  child.UpdatedAt = now

  if _, err := cs.childRepo.Create(ctx, nil, []*types.Child{child}); err != nil {
    return nil, fmt.Errorf("create child: %w", err)
  }
  return child, nil
}

func (cs *childService) GetChildren(ctx context.Context, userID uuid.UUID) ([]*types.Child, error) {
  children, err := cs.childRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("load children: %w", err)
  }
  return children, nil
}

func (cs *childService) UpdateChild(ctx context.Context, userID, childID uuid.UUID, update ChildUpdate) (*types.Child, error) {
  child, err := cs.ownedChild(ctx, userID, childID)
  if err != nil {
    return nil, err
  }

  fields := map[string]any{}
  if update.FirstName != nil {
    if *update.FirstName == "" {
      return nil, fmt.Errorf("first_name cannot be empty")
    }
    fields["first_name"] = *update.FirstName
  }
  if update.AgeYears != nil {
    if *update.AgeYears < 1 || *update.AgeYears > 18 {
      return nil, fmt.Errorf("age_years must be between 1 and 18")
    }
    fields["age_years"] = *update.AgeYears
  }
  if update.Neurotype != nil {
    fields["neurotype"] = *update.Neurotype
  }
  if update.Interests != nil {
    fields["interests"] = *update.Interests
  }
  if update.LearningContext != nil {
    if *update.LearningContext != types.LearningContextHomeschool && *update.LearningContext != types.LearningContextClassroom {
      return nil, fmt.Errorf("learning_context must be %q or %q", types.LearningContextHomeschool, types.LearningContextClassroom)
    }
    fields["learning_context"] = *update.LearningContext
  }
  if update.State != nil {
    fields["state"] = *update.State
  }
  if len(fields) == 0 {
    return child, nil
  }
  fields["updated_at"] = time.Now()

  if err := cs.childRepo.UpdateFields(ctx, nil, childID, fields); err != nil {
    return nil, fmt.Errorf("update child: %w", err)
  }

  children, err := cs.childRepo.GetByIDs(ctx, nil, []uuid.UUID{childID})
  if err != nil || len(children) == 0 {
    return nil, fmt.Errorf("reload child: %v", err)
  }
  return children[0], nil
}

func (cs *childService) DeleteChild(ctx context.Context, userID, childID uuid.UUID) error {
  if _, err := cs.ownedChild(ctx, userID, childID); err != nil {
    return err
  }
  // plans go with the child via the FK cascade
  if err := cs.childRepo.DeleteByIDs(ctx, nil, []uuid.UUID{childID}); err != nil {
    return fmt.Errorf("delete child: %w", err)
  }
  return nil
}

func (cs *childService) ownedChild(ctx context.Context, userID, childID uuid.UUID) (*types.Child, error) {
  children, err := cs.childRepo.GetByIDs(ctx, nil, []uuid.UUID{childID})
  if err != nil {
    return nil, fmt.Errorf("load child: %w", err)
  }
  if len(children) == 0 || children[0] == nil {
    return nil, ErrNotFound
  }
  if children[0].UserID != userID {
    return nil, ErrForbidden
  }
  return children[0], nil
}
