package services

import (
  "context"
  "encoding/json"
  "fmt"
  "strings"

  "github.com/yungbote/neuroplan-backend/internal/logger"
  "github.com/yungbote/neuroplan-backend/internal/types"
)

// mockAIClient stands in for the real model when PLAN_MODE=mock. It emits a
// deterministic five-day week so demos and tests exercise the full parse and
// persistence path without an API key.
type mockAIClient struct {
  log *logger.Logger
}

func NewMockAIClient(log *logger.Logger) AIClient {
  return &mockAIClient{log: log.With("service", "MockAIClient")}
}

func (m *mockAIClient) GenerateText(ctx context.Context, system string, user string, temperature float64, maxTokens int) (string, error) {
  if ctx.Err() != nil {
    return "", ctx.Err()
  }

  theme := "Exploring Our World"
  if i := strings.Index(user, "Theme: "); i >= 0 {
    rest := user[i+len("Theme: "):]
    if j := strings.IndexByte(rest, '\n'); j > 0 {
      theme = strings.TrimSpace(rest[:j])
    }
  }

  days := make([]types.PlanDay, 0, 5)
  dayNames := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
  for d := 0; d < 5; d++ {
    days = append(days, types.PlanDay{
      Day: d,
      Activities: []types.PlanActivity{
        {
          Title:        fmt.Sprintf("%s: %s exploration", dayNames[d], theme),
          Objective:    fmt.Sprintf("Build confidence through a %s-themed activity at the learner's own pace.", strings.ToLower(theme)),
          Materials:    []string{"paper", "markers", "any favourite objects on hand"},
          Instructions: "Set out the materials together. I notice you like starting with what feels familiar. Begin wherever feels comfortable and follow the learner's lead.",
          AdultSupport: &types.AdultSupport{
            SetupGuidance:     "Lay out materials before inviting the learner over, so the start feels low-pressure.",
            FacilitationTips:  "Use declarative language: narrate what you see rather than issuing instructions.",
            RegulationSupport: "Offer movement breaks whenever attention drifts; this is regulation, not avoidance.",
            ExtensionIdeas:    "If engagement is high, invite the learner to teach the activity back to you.",
          },
          DeclarativeLanguageExamples: []string{
            "I notice you chose the blue one first.",
            "I wonder what would happen if we tried it another way.",
          },
          EstimatedDuration: "20-30 minutes",
        },
      },
    })
  }

  week := types.WeeklyPlan{
    Theme:    theme,
    Overview: fmt.Sprintf("A gentle week built around %s, with one anchor activity per day.", strings.ToLower(theme)),
    Days:     days,
  }

  b, err := json.Marshal(week)
  if err != nil {
    return "", err
  }
  return string(b), nil
}
