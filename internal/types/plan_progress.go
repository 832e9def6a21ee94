package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PlanProgress records engagement for one day of a plan. Multiple entries per
// (plan, day) are allowed on purpose: a day can be revisited.
type PlanProgress struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	PlanID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"plan_id"`
	Plan            *LearningPlan  `gorm:"constraint:OnDelete:CASCADE;foreignKey:PlanID;references:ID" json:"plan,omitempty"`
	DayIndex        int            `gorm:"column:day_index;not null" json:"day_index"`
	EngagementNotes string         `gorm:"column:engagement_notes" json:"engagement_notes"`
	Evidence        datatypes.JSON `gorm:"column:evidence;type:jsonb" json:"evidence"`
	CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (PlanProgress) TableName() string { return "plan_progress" }
