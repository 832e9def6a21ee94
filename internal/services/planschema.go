package services

import (
  "encoding/json"
  "fmt"
  "strings"
  "sync"

  "github.com/santhosh-tekuri/jsonschema/v6"

  "github.com/yungbote/neuroplan-backend/internal/types"
)

// weeklyPlanSchema describes the shape we trust from the model. JSON syntax
// alone is not enough: a syntactically valid response that is missing
// required activity fields is treated the same as unparseable output.
// adult_support stays optional here even though the prompt demands it.
var weeklyPlanSchema = map[string]any{
  "type": "object",
  "properties": map[string]any{
    "theme":    map[string]any{"type": "string"},
    "overview": map[string]any{"type": "string"},
    "days": map[string]any{
      "type":     "array",
      "minItems": 5,
      "maxItems": 5,
      "items": map[string]any{
        "type": "object",
        "properties": map[string]any{
          "day": map[string]any{"type": "integer", "minimum": 0, "maximum": 4},
          "activities": map[string]any{
            "type":     "array",
            "minItems": 1,
            "items": map[string]any{
              "type": "object",
              "properties": map[string]any{
                "title":            map[string]any{"type": "string", "minLength": 1},
                "objective":        map[string]any{"type": "string", "minLength": 1},
                "curriculum_codes": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
                "materials":        map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
                "instructions":     map[string]any{"type": "string", "minLength": 1},
                "adult_support": map[string]any{
                  "type": "object",
                  "properties": map[string]any{
                    "setup_guidance":     map[string]any{"type": "string"},
                    "facilitation_tips":  map[string]any{"type": "string"},
                    "regulation_support": map[string]any{"type": "string"},
                    "extension_ideas":    map[string]any{"type": "string"},
                  },
                },
                "declarative_language_examples": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
                "modifications":                 map[string]any{"type": "string"},
                "estimated_duration":            map[string]any{"type": "string"},
              },
              "required": []any{"title", "objective", "instructions"},
            },
          },
        },
        "required": []any{"day", "activities"},
      },
    },
  },
  "required": []any{"days"},
}

var (
  weeklyPlanSchemaOnce     sync.Once
  weeklyPlanSchemaCompiled *jsonschema.Schema
  weeklyPlanSchemaErr      error
)

func compiledWeeklyPlanSchema() (*jsonschema.Schema, error) {
  weeklyPlanSchemaOnce.Do(func() {
    // the compiler wants a parsed JSON value, not Go maps with typed slices
    b, err := json.Marshal(weeklyPlanSchema)
    if err != nil {
      weeklyPlanSchemaErr = fmt.Errorf("marshal weekly plan schema: %w", err)
      return
    }
    var def any
    if err := json.Unmarshal(b, &def); err != nil {
      weeklyPlanSchemaErr = fmt.Errorf("parse weekly plan schema: %w", err)
      return
    }
    c := jsonschema.NewCompiler()
    if err := c.AddResource("schema://weekly_plan.json", def); err != nil {
      weeklyPlanSchemaErr = fmt.Errorf("add schema resource: %w", err)
      return
    }
    weeklyPlanSchemaCompiled, weeklyPlanSchemaErr = c.Compile("schema://weekly_plan.json")
  })
  return weeklyPlanSchemaCompiled, weeklyPlanSchemaErr
}

// ParseWeeklyPlan turns raw model output into a validated WeeklyPlan. The
// caller keeps the raw text either way; a non-nil error only means the
// structured half is unavailable.
func ParseWeeklyPlan(raw string) (*types.WeeklyPlan, error) {
  text := stripCodeFences(raw)

  var parsed any
  if err := json.Unmarshal([]byte(text), &parsed); err != nil {
    return nil, fmt.Errorf("invalid JSON: %w", err)
  }

  schema, err := compiledWeeklyPlanSchema()
  if err != nil {
    return nil, err
  }
  if err := schema.Validate(parsed); err != nil {
    return nil, fmt.Errorf("weekly plan schema validation failed: %w", err)
  }

  var plan types.WeeklyPlan
  if err := json.Unmarshal([]byte(text), &plan); err != nil {
    return nil, fmt.Errorf("decode weekly plan: %w", err)
  }
  return &plan, nil
}

// stripCodeFences tolerates models that wrap JSON in markdown fences despite
// the prompt contract.
func stripCodeFences(s string) string {
  text := strings.TrimSpace(s)
  if !strings.HasPrefix(text, "```") {
    return text
  }
  text = strings.TrimPrefix(text, "```json")
  text = strings.TrimPrefix(text, "```")
  text = strings.TrimSuffix(strings.TrimSpace(text), "```")
  return strings.TrimSpace(text)
}
