package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fight-picks-system/models"
	"fight-picks-system/utils"
)

// errSeasonAlreadyAdvanced aborts a reset transaction when a concurrent
// run advanced the season state first; the loser's zeroing is skipped so
// scores committed after the winner's reset are not wiped twice.
var errSeasonAlreadyAdvanced = errors.New("season state already advanced")

// SeasonService tracks the active season year and resets the leaderboard
// exactly once per year boundary. EnsureSeasonResetIfNeeded is called
// before every read or write of season-scoped data and is idempotent.
type SeasonService struct {
	DB  *gorm.DB
	now func() time.Time
}

func NewSeasonService(db *gorm.DB) *SeasonService {
	return &SeasonService{DB: db, now: utils.NowInBrussels}
}

// SeasonResult reports whether a season check applied a reset.
type SeasonResult struct {
	OK           bool   `json:"ok"`
	ResetApplied bool   `json:"reset_applied"`
	SeasonYear   string `json:"season_year"`
	Message      string `json:"message"`
}

// CurrentSeasonYear is the governing-time-zone calendar year.
func (s *SeasonService) CurrentSeasonYear() string {
	return utils.SeasonYear(s.now())
}

// EnsureSeasonResetIfNeeded compares the persisted season year with the
// current one. A missing state row is created without resetting; a
// matching row is a no-op; a stale row triggers one atomic reset of all
// user scores together with the state advance.
func (s *SeasonService) EnsureSeasonResetIfNeeded() SeasonResult {
	seasonYear := s.CurrentSeasonYear()

	var state models.AppState
	err := s.DB.First(&state, "key = ?", models.SeasonStateKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := s.DB.Create(&models.AppState{Key: models.SeasonStateKey, Value: seasonYear}).Error; err != nil {
			log.Printf("❌ [Season] Failed to initialize season state: %v", err)
			return SeasonResult{OK: false, SeasonYear: seasonYear, Message: "Failed to initialize season state."}
		}
		return SeasonResult{OK: true, ResetApplied: false, SeasonYear: seasonYear, Message: "Season state initialized."}
	}
	if err != nil {
		log.Printf("❌ [Season] Failed to read season state: %v", err)
		return SeasonResult{OK: false, SeasonYear: seasonYear, Message: "Failed to read season state."}
	}

	if state.Value == seasonYear {
		return SeasonResult{OK: true, ResetApplied: false, SeasonYear: seasonYear, Message: "Season unchanged."}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		// Advance the state row only if it still holds the stale year. A
		// concurrent run that got here first wins; this run backs off.
		res := tx.Model(&models.AppState{}).
			Where("key = ? AND value = ?", models.SeasonStateKey, state.Value).
			Update("value", seasonYear)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errSeasonAlreadyAdvanced
		}

		return tx.Model(&models.User{}).
			Session(&gorm.Session{AllowGlobalUpdate: true}).
			Update("total_score", 0).Error
	})
	if errors.Is(err, errSeasonAlreadyAdvanced) {
		return SeasonResult{OK: true, ResetApplied: false, SeasonYear: seasonYear, Message: "Season already reset by a concurrent run."}
	}
	if err != nil {
		log.Printf("❌ [Season] Season reset failed: %v", err)
		return SeasonResult{OK: false, SeasonYear: seasonYear, Message: "Season reset failed."}
	}

	log.Printf("✅ [Season] Reset applied for season %s", seasonYear)
	return SeasonResult{OK: true, ResetApplied: true, SeasonYear: seasonYear, Message: fmt.Sprintf("Season reset applied for %s.", seasonYear)}
}

// ForceSeasonReset zeroes every score and pins the state to the current
// year regardless of what the state row holds. Administrative override.
func (s *SeasonService) ForceSeasonReset() SeasonResult {
	seasonYear := s.CurrentSeasonYear()

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Session(&gorm.Session{AllowGlobalUpdate: true}).
			Update("total_score", 0).Error; err != nil {
			return err
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).Create(&models.AppState{Key: models.SeasonStateKey, Value: seasonYear}).Error
	})
	if err != nil {
		log.Printf("❌ [Season] Forced season reset failed: %v", err)
		return SeasonResult{OK: false, SeasonYear: seasonYear, Message: "Forced season reset failed."}
	}

	log.Printf("✅ [Season] Forced reset applied for season %s", seasonYear)
	return SeasonResult{OK: true, ResetApplied: true, SeasonYear: seasonYear, Message: fmt.Sprintf("Season reset forced for %s.", seasonYear)}
}
