package services

import (
  "strings"
  "testing"

  "github.com/yungbote/neuroplan-backend/internal/types"
)

func intPtr(n int) *int { return &n }

func TestBuildIndividualUserPrompt_CarriesChildProfile(t *testing.T) {
  child := &types.Child{
    FirstName:       "Mia",
    AgeYears:        intPtr(7),
    Neurotype:       "ADHD",
    Interests:       "space, robots",
    LearningContext: types.LearningContextHomeschool,
    State:           "VIC",
  }

  got := BuildIndividualUserPrompt(child, "", nil)
  for _, want := range []string{"CHILD PROFILE", "Name: Mia", "Age: 7", "Neurotype: ADHD", "space, robots", "State: VIC"} {
    if !strings.Contains(got, want) {
      t.Fatalf("prompt missing %q:\n%s", want, got)
    }
  }
  if strings.Contains(got, "PLAN CUSTOMIZATION") {
    t.Fatalf("no customization given, block must be absent:\n%s", got)
  }
  if strings.Contains(got, "CURRICULUM CONTEXT") {
    t.Fatalf("empty excerpt must not emit a curriculum block:\n%s", got)
  }
}

func TestBuildIndividualUserPrompt_PlaceholdersForEmptyCustomization(t *testing.T) {
  child := &types.Child{FirstName: "Mia"}

  got := BuildIndividualUserPrompt(child, "", &PlanCustomization{})
  for _, want := range []string{
    "PLAN CUSTOMIZATION",
    "Theme: Based on child's interests",
    "Focus areas: Balanced across subjects",
    "Material access: Common household items",
    "Learning styles: Mixed",
    "Energy level: Varied across the day",
    "Special notes: None",
  } {
    if !strings.Contains(got, want) {
      t.Fatalf("prompt missing %q:\n%s", want, got)
    }
  }
  if !strings.Contains(got, "Age: not specified") {
    t.Fatalf("missing age placeholder:\n%s", got)
  }
}

func TestBuildIndividualUserPrompt_CustomizationOverridesPlaceholders(t *testing.T) {
  child := &types.Child{FirstName: "Mia"}
  custom := &PlanCustomization{
    Theme:          "Space Week",
    FocusAreas:     []string{"maths", "science"},
    MaterialAccess: "craft supplies only",
  }

  got := BuildIndividualUserPrompt(child, "", custom)
  for _, want := range []string{"Theme: Space Week", "Focus areas: maths, science", "Material access: craft supplies only"} {
    if !strings.Contains(got, want) {
      t.Fatalf("prompt missing %q:\n%s", want, got)
    }
  }
}

func TestBuildIndividualUserPrompt_IncludesCurriculumExcerpt(t *testing.T) {
  child := &types.Child{FirstName: "Mia"}
  got := BuildIndividualUserPrompt(child, "Mathematics:\nCount to ten.", nil)
  if !strings.Contains(got, "CURRICULUM CONTEXT") || !strings.Contains(got, "Count to ten.") {
    t.Fatalf("curriculum excerpt missing:\n%s", got)
  }
}

func TestBuildClassroomUserPrompt_RosterAndBreakdown(t *testing.T) {
  req := &ClassroomPlanRequest{
    ClassroomName:      "3B",
    EducatorName:       "Ms Chen",
    YearLevel:          "Year 3",
    Subject:            "English",
    LearningObjectives: []string{"Retell a story", "Identify main characters"},
    Students: []types.ClassroomStudent{
      {FirstName: "Alex", Neurotype: "Autism", Strengths: []string{"pattern recognition", "memory", "focus", "drawing"}, Interests: []string{"dinosaurs"}},
      {FirstName: "Jordan", Neurotype: "ADHD", Interests: []string{"soccer"}},
      {FirstName: "Riley", Neurotype: "ADHD", Interests: []string{"drawing"}},
    },
  }
  theme := types.ClassTheme{Theme: "Amazing Animals and Creatures", Rationale: "shared interests", Connections: []string{"Alex loves dinosaurs."}}

  got := BuildClassroomUserPrompt(req, theme, "Year 3 English content.")
  for _, want := range []string{
    "CLASSROOM",
    "Name: 3B",
    "LEARNING OBJECTIVES",
    "- Retell a story",
    "STUDENT ROSTER",
    "NEUROTYPE BREAKDOWN",
    "- Autism: 1",
    "- ADHD: 2",
    "Theme: Amazing Animals and Creatures",
    "- Alex loves dinosaurs.",
    "CURRICULUM CONTEXT",
    "Year 3 English content.",
  } {
    if !strings.Contains(got, want) {
      t.Fatalf("prompt missing %q:\n%s", want, got)
    }
  }
}

func TestBuildClassroomUserPrompt_RosterLineCapsLists(t *testing.T) {
  req := &ClassroomPlanRequest{
    ClassroomName:      "3B",
    EducatorName:       "Ms Chen",
    YearLevel:          "Year 3",
    Subject:            "English",
    LearningObjectives: []string{"Retell a story"},
    Students: []types.ClassroomStudent{
      {
        FirstName: "Alex",
        Strengths: []string{"s1", "s2", "s3", "s4"},
        Interests: []string{"i1", "i2", "i3", "i4"},
      },
    },
  }

  got := BuildClassroomUserPrompt(req, types.ClassTheme{Theme: "T"}, "")
  if strings.Contains(got, "s4") || strings.Contains(got, "i4") {
    t.Fatalf("roster line should cap strengths at 3 and interests at 3:\n%s", got)
  }
  if !strings.Contains(got, "s1, s2, s3") || !strings.Contains(got, "i1, i2, i3") {
    t.Fatalf("roster line missing capped lists:\n%s", got)
  }
}

func TestSystemPrompts_CarryFormatContract(t *testing.T) {
  if !strings.Contains(BuildIndividualSystemPrompt(), "declarative language") {
    t.Fatalf("individual system prompt lost the declarative language rule")
  }
  if !strings.Contains(BuildIndividualSystemPrompt(), "Exactly 5 days") {
    t.Fatalf("individual system prompt lost the 5-day contract")
  }
  if !strings.Contains(BuildClassroomSystemPrompt(), "transition_strategies") {
    t.Fatalf("classroom system prompt lost the output keys")
  }
}
