package services

import (
  "context"
  "encoding/json"
  "fmt"
  "time"

  "github.com/google/uuid"

  "github.com/yungbote/neuroplan-backend/internal/logger"
  "github.com/yungbote/neuroplan-backend/internal/types"
)

const classroomMaxTokens = 6000

// ClassroomGenerationResult mirrors the wire shape the educator frontend
// expects: a successful plan, or an error with a fallback plan that still
// carries the inferred theme.
type ClassroomGenerationResult struct {
  Success      bool                 `json:"success"`
  Plan         *types.ClassroomPlan `json:"plan,omitempty"`
  Error        string               `json:"error,omitempty"`
  FallbackPlan *types.ClassroomPlan `json:"fallback_plan,omitempty"`
}

type ClassroomService interface {
  CreateConfiguration(ctx context.Context, userID uuid.UUID, cfg *types.ClassroomConfig) (*types.ClassroomConfig, error)
  ListConfigurations(ctx context.Context, userID uuid.UUID) ([]*types.ClassroomConfig, error)
  GetConfiguration(ctx context.Context, userID, configID uuid.UUID) (*types.ClassroomConfig, error)
  UpdateConfiguration(ctx context.Context, userID, configID uuid.UUID, cfg *types.ClassroomConfig) (*types.ClassroomConfig, error)
  DeleteConfiguration(ctx context.Context, userID, configID uuid.UUID) error
  GeneratePlan(ctx context.Context, req *ClassroomPlanRequest) *ClassroomGenerationResult
}

type classroomService struct {
  log *logger.Logger

  store      ClassroomStore
  curriculum CurriculumService
  ai         AIClient
}

func NewClassroomService(baseLog *logger.Logger, store ClassroomStore, curriculum CurriculumService, ai AIClient) ClassroomService {
  return &classroomService{
    log:        baseLog.With("service", "ClassroomService"),
    store:      store,
    curriculum: curriculum,
    ai:         ai,
  }
}

func (cls *classroomService) CreateConfiguration(ctx context.Context, userID uuid.UUID, cfg *types.ClassroomConfig) (*types.ClassroomConfig, error) {
  if cfg.Name == "" {
    return nil, fmt.Errorf("classroom name is required")
  }
  now := time.Now()
  cfg.ID = uuid.New()
  cfg.UserID = userID
  cfg.CreatedAt = now
  cfg.UpdatedAt = now
  if err := cls.store.PutConfig(ctx, cfg); err != nil {
    return nil, fmt.Errorf("store configuration: %w", err)
  }
  return cfg, nil
}

func (cls *classroomService) ListConfigurations(ctx context.Context, userID uuid.UUID) ([]*types.ClassroomConfig, error) {
  return cls.store.ListConfigs(ctx, userID)
}

func (cls *classroomService) GetConfiguration(ctx context.Context, userID, configID uuid.UUID) (*types.ClassroomConfig, error) {
  cfg, err := cls.store.GetConfig(ctx, configID)
  if err != nil {
    return nil, err
  }
  if cfg == nil {
    return nil, ErrNotFound
  }
  if cfg.UserID != userID {
    return nil, ErrForbidden
  }
  return cfg, nil
}

func (cls *classroomService) UpdateConfiguration(ctx context.Context, userID, configID uuid.UUID, cfg *types.ClassroomConfig) (*types.ClassroomConfig, error) {
  existing, err := cls.GetConfiguration(ctx, userID, configID)
  if err != nil {
    return nil, err
  }
  cfg.ID = existing.ID
  cfg.UserID = existing.UserID
  cfg.CreatedAt = existing.CreatedAt
  cfg.UpdatedAt = time.Now()
  if err := cls.store.PutConfig(ctx, cfg); err != nil {
    return nil, fmt.Errorf("store configuration: %w", err)
  }
  return cfg, nil
}

func (cls *classroomService) DeleteConfiguration(ctx context.Context, userID, configID uuid.UUID) error {
  if _, err := cls.GetConfiguration(ctx, userID, configID); err != nil {
    return err
  }
  return cls.store.DeleteConfig(ctx, configID)
}

// GeneratePlan never returns an unusable result: a model or parse failure
// produces a fallback plan that still embeds the inferred theme, so the
// inference work is never wasted.
func (cls *classroomService) GeneratePlan(ctx context.Context, req *ClassroomPlanRequest) *ClassroomGenerationResult {
  students := req.Students
  if len(students) == 0 {
    // a themeless prompt grounds nothing; invent a plausible class instead
    students = representativeStudents()
  }

  theme := InferClassTheme(students)
  excerpt := cls.curriculum.GetContextForYearLevel(req.YearLevel, req.Subject)

  rosterReq := *req
  rosterReq.Students = students
  system := BuildClassroomSystemPrompt()
  user := BuildClassroomUserPrompt(&rosterReq, theme, excerpt)

  raw, err := cls.ai.GenerateText(ctx, system, user, planTemperature, classroomMaxTokens)
  if err != nil {
    cls.log.Warn("Classroom generation failed, substituting fallback plan", "classroom", req.ClassroomName, "error", err)
    return cls.fallbackResult(ctx, req, theme, err)
  }

  plan, err := parseClassroomPlan(raw)
  if err != nil {
    cls.log.Warn("Classroom plan output failed to parse, substituting fallback plan", "classroom", req.ClassroomName, "error", err)
    return cls.fallbackResult(ctx, req, theme, err)
  }

  if plan.ID == uuid.Nil {
    plan.ID = uuid.New()
  }
  if plan.ClassroomName == "" {
    plan.ClassroomName = req.ClassroomName
  }
  if plan.Subject == "" {
    plan.Subject = req.Subject
  }
  if plan.YearLevel == "" {
    plan.YearLevel = req.YearLevel
  }
  if plan.ClassTheme.Theme == "" {
    plan.ClassTheme = theme
  }
  plan.Raw = raw
  plan.CreatedAt = time.Now()

  if err := cls.store.PutPlan(ctx, plan); err != nil {
    cls.log.Warn("Failed to store classroom plan", "plan_id", plan.ID, "error", err)
  }
  return &ClassroomGenerationResult{Success: true, Plan: plan}
}

func (cls *classroomService) fallbackResult(ctx context.Context, req *ClassroomPlanRequest, theme types.ClassTheme, cause error) *ClassroomGenerationResult {
  fallback := fallbackClassroomPlan(req, theme)
  if err := cls.store.PutPlan(ctx, fallback); err != nil {
    cls.log.Warn("Failed to store fallback classroom plan", "plan_id", fallback.ID, "error", err)
  }
  return &ClassroomGenerationResult{
    Success:      false,
    Error:        cause.Error(),
    FallbackPlan: fallback,
  }
}

func parseClassroomPlan(raw string) (*types.ClassroomPlan, error) {
  text := stripCodeFences(raw)
  var plan types.ClassroomPlan
  if err := json.Unmarshal([]byte(text), &plan); err != nil {
    return nil, fmt.Errorf("invalid JSON: %w", err)
  }
  if len(plan.Days) == 0 {
    return nil, fmt.Errorf("classroom plan has no days")
  }
  return &plan, nil
}

// representativeStudents stands in for an empty roster: three plausible
// profiles spanning common neurotypes, so the prompt and theme inference
// always have something concrete to work with.
func representativeStudents() []types.ClassroomStudent {
  return []types.ClassroomStudent{
    {
      FirstName:          "Alex",
      Neurotype:          "Autism",
      Strengths:          []string{"pattern recognition", "deep focus", "honesty"},
      Challenges:         []string{"unexpected transitions"},
      Interests:          []string{"dinosaurs", "trains"},
      SensoryNeeds:       "prefers low noise, dislikes strong smells",
      CommunicationStyle: "direct, literal",
      Accommodations:     []string{"visual schedule", "advance warning of changes"},
    },
    {
      FirstName:          "Jordan",
      Neurotype:          "ADHD",
      Strengths:          []string{"energy", "creativity", "quick thinking"},
      Challenges:         []string{"sustained seat work"},
      Interests:          []string{"soccer", "lego"},
      SensoryNeeds:       "needs movement breaks",
      CommunicationStyle: "enthusiastic, talkative",
      Accommodations:     []string{"movement breaks", "fidget tools"},
    },
    {
      FirstName:          "Riley",
      Neurotype:          "Dyslexia",
      Strengths:          []string{"verbal storytelling", "spatial reasoning", "empathy"},
      Challenges:         []string{"decoding dense text"},
      Interests:          []string{"drawing", "animals"},
      SensoryNeeds:       "none noted",
      CommunicationStyle: "expressive, prefers talking over writing",
      Accommodations:     []string{"audio alternatives", "extra reading time"},
    },
  }
}

// fallbackClassroomPlan is the hand-authored plan used when generation
// fails. A single anchor activity per day built directly from the theme.
func fallbackClassroomPlan(req *ClassroomPlanRequest, theme types.ClassTheme) *types.ClassroomPlan {
  days := make([]types.ClassroomDay, 0, 5)
  for d := 0; d < 5; d++ {
    days = append(days, types.ClassroomDay{
      Day: d,
      Activities: []types.ClassroomActivity{
        {
          Title:        fmt.Sprintf("%s circle: day %d", theme.Theme, d+1),
          Objective:    fmt.Sprintf("Explore %s together through discussion, drawing, and building.", theme.Theme),
          Materials:    []string{"paper", "pencils", "building materials on hand"},
          Instructions: "I notice what each student brings to the theme today. Open with the theme, offer three ways in (talk, draw, build), and let students choose.",
          Differentiation: map[string]string{
            "visual":          "Offer a drawing or diagram response option.",
            "auditory":        "Open and close with spoken discussion.",
            "kinesthetic":     "Include a building or movement option.",
            "reading_writing": "Offer a written response for students who prefer it.",
          },
          EstimatedDuration: "45-60 minutes",
        },
      },
    })
  }

  return &types.ClassroomPlan{
    ID:            uuid.New(),
    ClassroomName: req.ClassroomName,
    Subject:       req.Subject,
    YearLevel:     req.YearLevel,
    ClassTheme:    theme,
    Days:          days,
    TransitionStrategies: []string{
      "Two-minute visual countdown before every transition.",
      "Name what is ending and what is starting, out loud and on the board.",
    },
    EmergencyActivities: []string{
      "Quiet drawing tied to the week's theme.",
      "Theme-related picture book read-aloud.",
    },
    ReflectionPrompts: []string{
      "I noticed something today that surprised me...",
      "One thing I want to try again tomorrow is...",
    },
    Degraded:  true,
    CreatedAt: time.Now(),
  }
}
