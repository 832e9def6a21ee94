package types

import (
	"time"

	"github.com/google/uuid"
)

// User is provisioned lazily on the first authenticated request; identity
// itself lives with the external provider.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Subject     string    `gorm:"uniqueIndex;not null;column:subject" json:"subject"`
	Email       string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	DisplayName string    `gorm:"column:display_name" json:"display_name"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string { return "user" }
