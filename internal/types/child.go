package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	LearningContextHomeschool = "homeschool"
	LearningContextClassroom  = "classroom"
)

type Child struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User            *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	FirstName       string    `gorm:"column:first_name;not null" json:"first_name"`
	AgeYears        *int      `gorm:"column:age_years" json:"age_years,omitempty"`
	Neurotype       string    `gorm:"column:neurotype" json:"neurotype"`
	Interests       string    `gorm:"column:interests" json:"interests"`
	LearningContext string    `gorm:"column:learning_context;not null;default:'homeschool'" json:"learning_context"`
	State           string    `gorm:"column:state" json:"state"`
	CreatedAt       time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Child) TableName() string { return "child" }
