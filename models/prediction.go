package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Prediction is one user's pick for one fight, created before the event
// starts and never edited afterwards (edit lock enforced at submission).
// PredictedWinner is free text and compared against the scored winner
// only after name normalization.
type Prediction struct {
	ID              string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID          string `gorm:"index;uniqueIndex:idx_user_fight;not null" json:"user_id"`
	FightID         string `gorm:"index;uniqueIndex:idx_user_fight;not null" json:"fight_id"`
	PredictedWinner string `gorm:"not null" json:"predicted_winner"`

	Timestamps
}

func (p *Prediction) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
