package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"fight-picks-system/models"
	"fight-picks-system/scraper"
	"fight-picks-system/utils"
)

// ReplacementDetectedMethod marks a stored fight that no scraped result
// matched: the card changed after sync, almost always a late fighter
// substitution.
const ReplacementDetectedMethod = "Invalidated: fighter replacement detected"

// errEventAlreadyScored aborts the scoring transaction when another run
// completed the event between this run's pre-check and its commit.
var errEventAlreadyScored = errors.New("event already scored")

// ResultsScraper is the slice of the scraper the scoring service needs.
type ResultsScraper interface {
	GetLatestNumberedEventResults(ctx context.Context) (*scraper.EventResults, error)
}

// ScoringService reconciles scraped results against the stored card and
// awards one point per correct pick, committing fight updates, score
// increments, and event completion as a single unit.
type ScoringService struct {
	DB      *gorm.DB
	scraper ResultsScraper
	seasons *SeasonService
}

func NewScoringService(db *gorm.DB, sc ResultsScraper, seasons *SeasonService) *ScoringService {
	return &ScoringService{DB: db, scraper: sc, seasons: seasons}
}

// ApplyLatestEventResults runs the season check, scrapes the most recent
// results, matches them to stored fights by unordered normalized name
// pair, and scores the event. Idempotent: an already-completed event is
// a no-op, and the completion flag commits conditionally so two racing
// runs cannot both award points.
func (s *ScoringService) ApplyLatestEventResults(ctx context.Context) RunResult {
	if season := s.seasons.EnsureSeasonResetIfNeeded(); !season.OK {
		return failedResult(season.Message)
	}

	results, err := s.scraper.GetLatestNumberedEventResults(ctx)
	if err != nil {
		log.Printf("❌ [Scoring] Scrape failed: %v", err)
		return failedResult(fmt.Sprintf("Scrape failed: %v", err))
	}
	if results == nil {
		return okResult("No recent numbered UFC event results found.")
	}

	var event models.Event
	err = s.DB.Preload("Fights.Predictions").First(&event, "name = ?", results.EventName).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return okResult("No matching event found in database. Run sync first.")
	}
	if err != nil {
		log.Printf("❌ [Scoring] Failed to load event %s: %v", results.EventName, err)
		return failedResult("Failed to load stored event.")
	}

	if event.IsCompleted {
		return okResult("Event already completed and scored.")
	}

	scoreDeltas := make(map[string]int)

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		for _, fight := range event.Fights {
			matched := findMatchingResult(results.Fights, fight)

			if matched == nil {
				if err := invalidateFight(tx, fight.ID, ReplacementDetectedMethod); err != nil {
					return err
				}
				continue
			}

			invalid := matched.IsDraw || matched.IsNoContest || matched.IsOverturned
			if invalid || matched.Winner == nil {
				if err := invalidateFight(tx, fight.ID, matched.Method); err != nil {
					return err
				}
				continue
			}

			if err := tx.Model(&models.Fight{}).Where("id = ?", fight.ID).
				Updates(map[string]interface{}{
					"winner":         *matched.Winner,
					"method":         matched.Method,
					"is_invalidated": false,
				}).Error; err != nil {
				return err
			}

			winner := utils.NormalizeName(*matched.Winner)
			for _, prediction := range fight.Predictions {
				if utils.NormalizeName(prediction.PredictedWinner) == winner {
					scoreDeltas[prediction.UserID]++
				}
			}
		}

		for userID, points := range scoreDeltas {
			if err := tx.Model(&models.User{}).Where("id = ?", userID).
				Update("total_score", gorm.Expr("total_score + ?", points)).Error; err != nil {
				return err
			}
		}

		// Conditional completion: if another run committed first, this
		// whole transaction rolls back instead of double-awarding.
		res := tx.Model(&models.Event{}).
			Where("id = ? AND is_completed = ?", event.ID, false).
			Update("is_completed", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errEventAlreadyScored
		}
		return nil
	})
	if errors.Is(err, errEventAlreadyScored) {
		return okResult("Event already completed and scored.")
	}
	if err != nil {
		log.Printf("❌ [Scoring] Scoring transaction failed for %s: %v", event.Name, err)
		return failedResult("Failed to commit scores.")
	}

	log.Printf("✅ [Scoring] Scored %s (%d users awarded)", event.Name, len(scoreDeltas))
	return okResult(fmt.Sprintf("Scored %s.", event.Name))
}

func findMatchingResult(results []scraper.ResultFight, fight models.Fight) *scraper.ResultFight {
	for i := range results {
		if utils.SameFighterPair(
			fight.Fighter1Name, fight.Fighter2Name,
			results[i].Fighter1Name, results[i].Fighter2Name,
		) {
			return &results[i]
		}
	}
	return nil
}

func invalidateFight(tx *gorm.DB, fightID, method string) error {
	return tx.Model(&models.Fight{}).Where("id = ?", fightID).
		Updates(map[string]interface{}{
			"is_invalidated": true,
			"winner":         nil,
			"method":         method,
		}).Error
}
