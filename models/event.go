package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event is a numbered UFC card. Name is the business key ("UFC 310");
// IsCompleted flips to true exactly once, when results are scored, and
// never reverts.
type Event struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Slug        string    `gorm:"index" json:"slug"`
	Date        time.Time `gorm:"not null" json:"date"`
	Location    string    `json:"location"`
	IsCompleted bool      `gorm:"default:false" json:"is_completed"`

	Fights []Fight `json:"fights,omitempty"`

	Timestamps
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// Fight is one main-card bout. Fighters are denormalized snapshot copies
// taken at sync time, not references into a roster; corner order carries
// no meaning for result matching. Winner and Method stay nil until the
// event is scored. IsInvalidated is sticky: once a fight is excluded from
// scoring (draw, no contest, overturned, or fighter replacement) it never
// becomes scorable again.
type Fight struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	EventID string `gorm:"index;not null" json:"event_id"`

	Division     string `json:"division"`
	IsTitleFight bool   `gorm:"default:false" json:"is_title_fight"`

	Fighter1Name   string `gorm:"not null" json:"fighter1_name"`
	Fighter1Record string `json:"fighter1_record"`
	Fighter1Age    string `json:"fighter1_age"`
	Fighter1Height string `json:"fighter1_height"`
	Fighter1Reach  string `json:"fighter1_reach"`

	Fighter2Name   string `gorm:"not null" json:"fighter2_name"`
	Fighter2Record string `json:"fighter2_record"`
	Fighter2Age    string `json:"fighter2_age"`
	Fighter2Height string `json:"fighter2_height"`
	Fighter2Reach  string `json:"fighter2_reach"`

	Winner        *string `json:"winner,omitempty"`
	Method        *string `json:"method,omitempty"`
	IsInvalidated bool    `gorm:"default:false" json:"is_invalidated"`

	Predictions []Prediction `json:"predictions,omitempty"`

	Timestamps
}

func (f *Fight) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
