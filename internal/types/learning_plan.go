package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// LearningPlan rows are written once by the generation pipeline. PlanJSON is
// a PlanDocument: raw always carries the verbatim model output, structured is
// present only when that output validated as a weekly plan.
type LearningPlan struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ChildID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"child_id"`
	Child      *Child         `gorm:"constraint:OnDelete:CASCADE;foreignKey:ChildID;references:ID" json:"child,omitempty"`
	WeekStart  time.Time      `gorm:"column:week_start;not null" json:"week_start"`
	ThemeTitle string         `gorm:"column:theme_title" json:"theme_title"`
	Overview   string         `gorm:"column:overview" json:"overview"`
	PlanJSON   datatypes.JSON `gorm:"column:plan_json;type:jsonb" json:"plan_json"`
	Degraded   bool           `gorm:"column:degraded;not null;default:false" json:"degraded"`
	CreatedAt  time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (LearningPlan) TableName() string { return "learning_plan" }
