package models

// AppState is a generic key/value row for small pieces of service state.
// The season service keeps the last-observed season year under
// SeasonStateKey and drives the yearly leaderboard reset off it.
type AppState struct {
	Key   string `gorm:"primaryKey" json:"key"`
	Value string `gorm:"not null" json:"value"`

	Timestamps
}

// SeasonStateKey is the AppState key holding the active season year.
const SeasonStateKey = "leaderboard-season-year"
