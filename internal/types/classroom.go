package types

import (
	"time"

	"github.com/google/uuid"
)

// Classroom configurations and plans live in the classroom store (memory or
// redis), not in Postgres. Keys are opaque uuid strings.

type ClassroomStudent struct {
	FirstName          string   `json:"first_name"`
	Neurotype          string   `json:"neurotype"`
	Strengths          []string `json:"strengths,omitempty"`
	Challenges         []string `json:"challenges,omitempty"`
	Interests          []string `json:"interests,omitempty"`
	SensoryNeeds       string   `json:"sensory_needs,omitempty"`
	CommunicationStyle string   `json:"communication_style,omitempty"`
	Accommodations     []string `json:"accommodations,omitempty"`
}

type ClassroomConfig struct {
	ID           uuid.UUID          `json:"id"`
	UserID       uuid.UUID          `json:"user_id"`
	Name         string             `json:"name"`
	EducatorName string             `json:"educator_name"`
	YearLevel    string             `json:"year_level"`
	State        string             `json:"state"`
	Students     []ClassroomStudent `json:"students"`
	Resources    []string           `json:"resources,omitempty"`
	Layout       string             `json:"layout,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

type ClassTheme struct {
	Theme       string   `json:"theme"`
	Rationale   string   `json:"rationale"`
	Connections []string `json:"connections"`
}

type ClassroomActivity struct {
	Title             string            `json:"title"`
	Objective         string            `json:"objective"`
	CurriculumCodes   []string          `json:"curriculum_codes,omitempty"`
	Materials         []string          `json:"materials,omitempty"`
	Instructions      string            `json:"instructions"`
	Differentiation   map[string]string `json:"differentiation,omitempty"`
	EstimatedDuration string            `json:"estimated_duration,omitempty"`
}

type ClassroomDay struct {
	Day        int                 `json:"day"`
	Activities []ClassroomActivity `json:"activities"`
}

type ClassroomPlan struct {
	ID                   uuid.UUID      `json:"id"`
	ClassroomName        string         `json:"classroom_name"`
	Subject              string         `json:"subject"`
	YearLevel            string         `json:"year_level"`
	ClassTheme           ClassTheme     `json:"class_theme"`
	Days                 []ClassroomDay `json:"days"`
	TransitionStrategies []string       `json:"transition_strategies,omitempty"`
	EmergencyActivities  []string       `json:"emergency_activities,omitempty"`
	ReflectionPrompts    []string       `json:"reflection_prompts,omitempty"`
	Raw                  string         `json:"raw,omitempty"`
	Degraded             bool           `json:"degraded"`
	Error                string         `json:"error,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
}
