package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the prediction player. TotalScore only ever moves up within a
// season (scoring commits increment it) and snaps to zero at the season
// boundary. Account creation and sessions are owned by the auth layer.
type User struct {
	ID         string `gorm:"primaryKey;type:uuid" json:"id"`
	Username   string `gorm:"uniqueIndex;not null" json:"username"`
	Email      string `gorm:"uniqueIndex;not null" json:"email"`
	TotalScore int    `gorm:"default:0" json:"total_score"`

	Predictions []Prediction `json:"predictions,omitempty"`

	Timestamps
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
