package services

import (
  "fmt"
  "strings"

  "github.com/yungbote/neuroplan-backend/internal/types"
)

// PlanCustomization is the optional per-request shaping a parent can supply.
// Missing fields render as placeholder text rather than being omitted, so the
// model always sees a complete-looking brief.
type PlanCustomization struct {
  Theme          string   `json:"theme,omitempty"`
  FocusAreas     []string `json:"focus_areas,omitempty"`
  MaterialAccess string   `json:"material_access,omitempty"`
  LearningStyles []string `json:"learning_styles,omitempty"`
  EnergyLevel    string   `json:"energy_level,omitempty"`
  SpecialNotes   string   `json:"special_notes,omitempty"`
}

type ClassroomPlanRequest struct {
  ClassroomName         string                   `json:"classroom_name"`
  EducatorName          string                   `json:"educator_name"`
  YearLevel             string                   `json:"year_level"`
  State                 string                   `json:"state"`
  Subject               string                   `json:"subject"`
  LessonDuration        string                   `json:"lesson_duration"`
  Students              []types.ClassroomStudent `json:"students"`
  LearningObjectives    []string                 `json:"learning_objectives"`
  AvailableResources    []string                 `json:"available_resources"`
  Layout                string                   `json:"layout"`
  SpecialConsiderations string                   `json:"special_considerations"`
}

// individualSystemPrompt is a constant style contract, not computed from
// input. It carries the persona, the tone rules, and the output format the
// parser depends on.
const individualSystemPrompt = `You are a warm, experienced educator who designs neurodiversity-affirming weekly learning plans for individual children.

Style rules you must follow:
- Affirming, strengths-based tone. The child's neurotype is a difference to design around, never a deficit to fix.
- Use declarative language in all activity instructions: observational "I notice..." and "I wonder..." phrasing instead of commands.
- Adapt to the stated neurotype. For PDA profiles, avoid imperative framing entirely and offer choices. For ADHD profiles, keep activities short with movement built in. For autistic learners, make transitions and expectations explicit.
- Every activity must include adult_support guidance covering setup, facilitation, regulation, and extension.
- Activities use everyday household materials unless the plan brief says otherwise.

Output format contract:
Respond with ONLY a JSON object, no surrounding prose and no markdown fences, with this shape:
{
  "theme": string,
  "overview": string,
  "days": [
    {
      "day": 0-4,
      "activities": [
        {
          "title": string,
          "objective": string,
          "curriculum_codes": [string],
          "materials": [string],
          "instructions": string,
          "adult_support": {
            "setup_guidance": string,
            "facilitation_tips": string,
            "regulation_support": string,
            "extension_ideas": string
          },
          "declarative_language_examples": [string],
          "modifications": string,
          "estimated_duration": string
        }
      ]
    }
  ]
}
Exactly 5 days, day indexes 0 through 4.`

const classroomSystemPrompt = `You are an inclusive-education specialist who designs neurodiversity-affirming weekly classroom plans.

Style rules you must follow:
- Affirming, strengths-based tone for every student profile in the roster.
- Use declarative language ("I notice...", "I wonder...") in activity scripts.
- Every activity must include differentiation strategies keyed by learning modality (visual, auditory, kinesthetic, reading_writing).
- Weave the provided class theme through every day so each student's stated connection to it is honoured.
- Plan for regulation: include transition strategies, emergency (low-demand) activities, and end-of-day reflection prompts.

Output format contract:
Respond with ONLY a JSON object, no surrounding prose and no markdown fences, with these keys:
"classroom_name", "subject", "year_level",
"class_theme" {"theme", "rationale", "connections": [string]},
"days": [{"day": 0-4, "activities": [{"title", "objective", "curriculum_codes": [string], "materials": [string], "instructions", "differentiation": {modality: strategy}, "estimated_duration"}]}],
"transition_strategies": [string],
"emergency_activities": [string],
"reflection_prompts": [string].
Exactly 5 days, day indexes 0 through 4.`

func BuildIndividualSystemPrompt() string {
  return individualSystemPrompt
}

func BuildClassroomSystemPrompt() string {
  return classroomSystemPrompt
}

// BuildIndividualUserPrompt renders the child brief. Deterministic string
// assembly only; no validation happens here.
func BuildIndividualUserPrompt(child *types.Child, curriculumExcerpt string, custom *PlanCustomization) string {
  var b strings.Builder

  b.WriteString("Create a 5-day weekly learning plan for this child.\n\n")
  b.WriteString("CHILD PROFILE\n")
  fmt.Fprintf(&b, "Name: %s\n", child.FirstName)
  if child.AgeYears != nil {
    fmt.Fprintf(&b, "Age: %d\n", *child.AgeYears)
  } else {
    b.WriteString("Age: not specified\n")
  }
  fmt.Fprintf(&b, "Neurotype: %s\n", orPlaceholder(child.Neurotype, "not specified"))
  fmt.Fprintf(&b, "Interests: %s\n", orPlaceholder(child.Interests, "not specified"))
  fmt.Fprintf(&b, "Learning context: %s\n", orPlaceholder(child.LearningContext, types.LearningContextHomeschool))
  fmt.Fprintf(&b, "State: %s\n", orPlaceholder(child.State, "not specified"))

  if custom != nil {
    b.WriteString("\nPLAN CUSTOMIZATION\n")
    fmt.Fprintf(&b, "Theme: %s\n", orPlaceholder(custom.Theme, "Based on child's interests"))
    fmt.Fprintf(&b, "Focus areas: %s\n", orPlaceholder(strings.Join(custom.FocusAreas, ", "), "Balanced across subjects"))
    fmt.Fprintf(&b, "Material access: %s\n", orPlaceholder(custom.MaterialAccess, "Common household items"))
    fmt.Fprintf(&b, "Learning styles: %s\n", orPlaceholder(strings.Join(custom.LearningStyles, ", "), "Mixed"))
    fmt.Fprintf(&b, "Energy level: %s\n", orPlaceholder(custom.EnergyLevel, "Varied across the day"))
    fmt.Fprintf(&b, "Special notes: %s\n", orPlaceholder(custom.SpecialNotes, "None"))
  }

  if strings.TrimSpace(curriculumExcerpt) != "" {
    b.WriteString("\nCURRICULUM CONTEXT\n")
    b.WriteString(curriculumExcerpt)
    b.WriteString("\n")
  }

  b.WriteString("\nReturn the weekly plan JSON now.")
  return b.String()
}

// BuildClassroomUserPrompt renders the classroom brief: metadata, roster,
// neurotype breakdown, inferred theme, and curriculum context.
func BuildClassroomUserPrompt(req *ClassroomPlanRequest, theme types.ClassTheme, curriculumExcerpt string) string {
  var b strings.Builder

  b.WriteString("Create a 5-day weekly classroom plan.\n\n")
  b.WriteString("CLASSROOM\n")
  fmt.Fprintf(&b, "Name: %s\n", req.ClassroomName)
  fmt.Fprintf(&b, "Educator: %s\n", req.EducatorName)
  fmt.Fprintf(&b, "Year level: %s\n", req.YearLevel)
  fmt.Fprintf(&b, "State: %s\n", orPlaceholder(req.State, "not specified"))
  fmt.Fprintf(&b, "Subject: %s\n", req.Subject)
  fmt.Fprintf(&b, "Lesson duration: %s\n", orPlaceholder(req.LessonDuration, "about an hour"))
  fmt.Fprintf(&b, "Layout: %s\n", orPlaceholder(req.Layout, "flexible seating"))
  fmt.Fprintf(&b, "Available resources: %s\n", orPlaceholder(strings.Join(req.AvailableResources, ", "), "standard classroom supplies"))
  fmt.Fprintf(&b, "Special considerations: %s\n", orPlaceholder(req.SpecialConsiderations, "None"))

  b.WriteString("\nLEARNING OBJECTIVES\n")
  for _, obj := range req.LearningObjectives {
    fmt.Fprintf(&b, "- %s\n", obj)
  }

  b.WriteString("\nSTUDENT ROSTER\n")
  for _, s := range req.Students {
    fmt.Fprintf(&b, "- %s | neurotype: %s | strengths: %s | interests: %s | sensory needs: %s | communication: %s | accommodations: %s\n",
      s.FirstName,
      orPlaceholder(s.Neurotype, "not specified"),
      orPlaceholder(strings.Join(topN(s.Strengths, 3), ", "), "not specified"),
      orPlaceholder(strings.Join(topN(s.Interests, 3), ", "), "not specified"),
      orPlaceholder(s.SensoryNeeds, "none noted"),
      orPlaceholder(s.CommunicationStyle, "not specified"),
      orPlaceholder(strings.Join(topN(s.Accommodations, 2), ", "), "none noted"),
    )
  }

  b.WriteString("\nNEUROTYPE BREAKDOWN\n")
  for _, line := range neurotypeBreakdown(req.Students) {
    fmt.Fprintf(&b, "- %s\n", line)
  }

  b.WriteString("\nCLASS THEME\n")
  fmt.Fprintf(&b, "Theme: %s\n", theme.Theme)
  fmt.Fprintf(&b, "Rationale: %s\n", theme.Rationale)
  b.WriteString("Student connections:\n")
  for _, conn := range theme.Connections {
    fmt.Fprintf(&b, "- %s\n", conn)
  }

  if strings.TrimSpace(curriculumExcerpt) != "" {
    b.WriteString("\nCURRICULUM CONTEXT\n")
    b.WriteString(curriculumExcerpt)
    b.WriteString("\n")
  }

  b.WriteString("\nReturn the classroom plan JSON now.")
  return b.String()
}

func orPlaceholder(s, placeholder string) string {
  if strings.TrimSpace(s) == "" {
    return placeholder
  }
  return s
}

func topN(items []string, n int) []string {
  if len(items) <= n {
    return items
  }
  return items[:n]
}

// neurotypeBreakdown counts students per neurotype in roster order.
func neurotypeBreakdown(students []types.ClassroomStudent) []string {
  counts := map[string]int{}
  var order []string
  for _, s := range students {
    nt := strings.TrimSpace(s.Neurotype)
    if nt == "" {
      nt = "unspecified"
    }
    if _, seen := counts[nt]; !seen {
      order = append(order, nt)
    }
    counts[nt]++
  }
  out := make([]string, 0, len(order))
  for _, nt := range order {
    out = append(out, fmt.Sprintf("%s: %d", nt, counts[nt]))
  }
  return out
}
