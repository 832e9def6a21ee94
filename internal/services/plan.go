package services

import (
  "context"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yungbote/neuroplan-backend/internal/logger"
  "github.com/yungbote/neuroplan-backend/internal/repos"
  "github.com/yungbote/neuroplan-backend/internal/types"
)

// PlanService is the read side of learning plans. Ownership is always walked
// plan -> child -> user before anything is returned.
type PlanService interface {
  GetPlan(ctx context.Context, userID, planID uuid.UUID) (*types.LearningPlan, error)
  GetPlansForChild(ctx context.Context, userID, childID uuid.UUID) ([]*types.LearningPlan, error)
}

type planService struct {
  db  *gorm.DB
  log *logger.Logger

  childRepo repos.ChildRepo
  planRepo  repos.LearningPlanRepo
}

func NewPlanService(db *gorm.DB, baseLog *logger.Logger, childRepo repos.ChildRepo, planRepo repos.LearningPlanRepo) PlanService {
  return &planService{
    db:        db,
    log:       baseLog.With("service", "PlanService"),
    childRepo: childRepo,
    planRepo:  planRepo,
  }
}

func (ps *planService) GetPlan(ctx context.Context, userID, planID uuid.UUID) (*types.LearningPlan, error) {
  plans, err := ps.planRepo.GetByIDs(ctx, nil, []uuid.UUID{planID})
  if err != nil {
    return nil, fmt.Errorf("load plan: %w", err)
  }
  if len(plans) == 0 || plans[0] == nil {
    return nil, ErrNotFound
  }
  plan := plans[0]

  if err := ps.assertChildOwnership(ctx, userID, plan.ChildID); err != nil {
    return nil, err
  }
  return plan, nil
}

func (ps *planService) GetPlansForChild(ctx context.Context, userID, childID uuid.UUID) ([]*types.LearningPlan, error) {
  if err := ps.assertChildOwnership(ctx, userID, childID); err != nil {
    return nil, err
  }
  plans, err := ps.planRepo.GetByChildID(ctx, nil, childID)
  if err != nil {
    return nil, fmt.Errorf("load plans: %w", err)
  }
  return plans, nil
}

func (ps *planService) assertChildOwnership(ctx context.Context, userID, childID uuid.UUID) error {
  children, err := ps.childRepo.GetByIDs(ctx, nil, []uuid.UUID{childID})
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
