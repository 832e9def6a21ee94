package services

import (
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/yungbote/neuroplan-backend/internal/logger"
  "github.com/yungbote/neuroplan-backend/internal/repos"
  "github.com/yungbote/neuroplan-backend/internal/types"
)

var (
  ErrNotFound  = errors.New("not found")
  ErrForbidden = errors.New("forbidden")
)

const (
  planTemperature = 0.7
  planMaxTokens   = 4000
)

// PlanGenerationService orchestrates curriculum lookup, prompt rendering, the
// model call, validation, and persistence for individual plans.
//
// Failure policy is uniform: a model or parse failure never surfaces as a
// bare 500. Parse failures keep the raw text with no structured half; model
// failures substitute a hand-authored plan. Both set Degraded.
type PlanGenerationService interface {
  GenerateForChild(ctx context.Context, userID, childID uuid.UUID, custom *PlanCustomization) (*types.LearningPlan, error)
}

type planGenerationService struct {
  db  *gorm.DB
  log *logger.Logger

  childRepo  repos.ChildRepo
  planRepo   repos.LearningPlanRepo
  curriculum CurriculumService
  ai         AIClient
}

func NewPlanGenerationService(
  db *gorm.DB,
  baseLog *logger.Logger,
  childRepo repos.ChildRepo,
  planRepo repos.LearningPlanRepo,
  curriculum CurriculumService,
  ai AIClient,
) PlanGenerationService {
  return &planGenerationService{
    db:         db,
    log:        baseLog.With("service", "PlanGenerationService"),
    childRepo:  childRepo,
    planRepo:   planRepo,
    curriculum: curriculum,
    ai:         ai,
  }
}

func (pgs *planGenerationService) GenerateForChild(ctx context.Context, userID, childID uuid.UUID, custom *PlanCustomization) (*types.LearningPlan, error) {
  children, err := pgs.childRepo.GetByIDs(ctx, nil, []uuid.UUID{childID})
  if err != nil {
    return nil, fmt.Errorf("load child: %w", err)
  }
  if len(children) == 0 || children[0] == nil {
    return nil, ErrNotFound
  }
  child := children[0]
  if child.UserID != userID {
    return nil, ErrForbidden
  }

  excerpt := pgs.curriculum.GetContextForYearLevel(yearLevelForChild(child), "")
  system := BuildIndividualSystemPrompt()
  user := BuildIndividualUserPrompt(child, excerpt, custom)

  plan := &types.LearningPlan{
    ID:        uuid.New(),
    ChildID:   child.ID,
    WeekStart: upcomingMonday(time.Now()),
  }

  raw, genErr := pgs.ai.GenerateText(ctx, system, user, planTemperature, planMaxTokens)
  if genErr != nil {
    pgs.log.Warn("Plan generation failed, substituting fallback plan", "child_id", childID, "error", genErr)
    fallback := fallbackWeeklyPlan(child, custom)
    doc := types.PlanDocument{Structured: fallback, Raw: ""}
    plan.ThemeTitle = fallback.Theme
    plan.Overview = fallback.Overview
    plan.PlanJSON = datatypes.JSON(mustJSON(doc))
    plan.Degraded = true
    return pgs.persist(ctx, plan)
  }

  structured, parseErr := ParseWeeklyPlan(raw)
  if parseErr != nil {
    // raw is still a usable plan for a human reader; keep it verbatim
    pgs.log.Warn("Model output failed weekly plan validation, storing raw only", "child_id", childID, "error", parseErr)
    doc := types.PlanDocument{Raw: raw}
    plan.ThemeTitle = genericThemeTitle(child, custom)
    plan.PlanJSON = datatypes.JSON(mustJSON(doc))
    plan.Degraded = true
    return pgs.persist(ctx, plan)
  }

  doc := types.PlanDocument{Structured: structured, Raw: raw}
  plan.ThemeTitle = structured.Theme
  if plan.ThemeTitle == "" {
    plan.ThemeTitle = genericThemeTitle(child, custom)
  }
  plan.Overview = structured.Overview
  plan.PlanJSON = datatypes.JSON(mustJSON(doc))
  return pgs.persist(ctx, plan)
}

// persist writes the plan, degrading to an unpersisted record when the
// database is unreachable so the caller still gets a plan back.
func (pgs *planGenerationService) persist(ctx context.Context, plan *types.LearningPlan) (*types.LearningPlan, error) {
  now := time.Now()
  plan.CreatedAt = now
  plan.UpdatedAt = now
  if _, err := pgs.planRepo.Create(ctx, nil, []*types.LearningPlan{plan}); err != nil {
    pgs.log.Warn("Plan persistence failed, returning unpersisted record", "plan_id", plan.ID, "error", err)
    plan.Degraded = true
  }
  return plan, nil
}

// yearLevelForChild maps age to an Australian year level: age 5 is
// Foundation, age 6 is Year 1, and so on.
func yearLevelForChild(child *types.Child) string {
  if child.AgeYears == nil {
    return ""
  }
  year := *child.AgeYears - 5
  if year < 0 {
    return ""
  }
  if year == 0 {
    return "Foundation"
  }
  return fmt.Sprintf("Year %d", year)
}

func upcomingMonday(now time.Time) time.Time {
  day := now
  for day.Weekday() != time.Monday {
    day = day.AddDate(0, 0, 1)
  }
  return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
}

func genericThemeTitle(child *types.Child, custom *PlanCustomization) string {
  if custom != nil && custom.Theme != "" {
    return custom.Theme
  }
  return fmt.Sprintf("Learning Adventures for %s", child.FirstName)
}

// fallbackWeeklyPlan is the hand-authored plan substituted when the model is
// unavailable. One gentle anchor activity per day, grounded in the child's
// stated interests.
func fallbackWeeklyPlan(child *types.Child, custom *PlanCustomization) *types.WeeklyPlan {
  theme := genericThemeTitle(child, custom)
  interests := child.Interests
  if interests == "" {
    interests = "things that already feel interesting"
  }

  days := make([]types.PlanDay, 0, 5)
  focus := []string{
    "noticing and naming",
    "making and building",
    "moving and exploring",
    "telling and drawing",
    "sharing and reflecting",
  }
  for d := 0; d < 5; d++ {
    days = append(days, types.PlanDay{
      Day: d,
      Activities: []types.PlanActivity{
        {
          Title:        fmt.Sprintf("Interest time: %s", focus[d]),
          Objective:    fmt.Sprintf("Spend unhurried time on %s, led by %s.", interests, child.FirstName),
          Materials:    []string{"whatever is already at home"},
          Instructions: "I notice what catches your attention today. Start there, and I wonder where it takes us.",
          AdultSupport: &types.AdultSupport{
            SetupGuidance:     "No setup needed; follow the child's lead.",
            FacilitationTips:  "Narrate, don't direct. Sit alongside rather than opposite.",
            RegulationSupport: "Any activity can pause or stop; stopping is information, not failure.",
            ExtensionIdeas:    "If something sparks, plan tomorrow around it.",
          },
          EstimatedDuration: "as long as it holds attention",
        },
      },
    })
  }

  return &types.WeeklyPlan{
    Theme:    theme,
    Overview: "A low-pressure backup week built around the child's own interests. Generated without the planning model.",
    Days:     days,
  }
}

func mustJSON(v any) []byte {
  b, _ := json.Marshal(v)
  return b
}
