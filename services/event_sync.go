package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"fight-picks-system/models"
	"fight-picks-system/scraper"
)

// SnapshotScraper is the slice of the scraper the sync service needs.
type SnapshotScraper interface {
	GetUpcomingNumberedEventWithin7Days(ctx context.Context) (*scraper.EventSnapshot, error)
}

// EventSyncService mirrors the next upcoming card into storage. Once any
// user has predicted on an event its fight list is locked: a changed
// card upstream must never invalidate live predictions.
type EventSyncService struct {
	DB      *gorm.DB
	scraper SnapshotScraper
}

func NewEventSyncService(db *gorm.DB, sc SnapshotScraper) *EventSyncService {
	return &EventSyncService{DB: db, scraper: sc}
}

// SyncUpcomingEvent scrapes the next qualifying card and replaces the
// stored fight list in one transaction. No-ops when there is nothing to
// sync, when the event is already completed, or when the snapshot lock
// is in effect.
func (s *EventSyncService) SyncUpcomingEvent(ctx context.Context) RunResult {
	snapshot, err := s.scraper.GetUpcomingNumberedEventWithin7Days(ctx)
	if err != nil {
		log.Printf("❌ [EventSync] Scrape failed: %v", err)
		return failedResult(fmt.Sprintf("Scrape failed: %v", err))
	}
	if snapshot == nil {
		return okResult("No numbered UFC event in the next 7 days.")
	}

	var existing models.Event
	err = s.DB.Preload("Fights.Predictions").First(&existing, "name = ?", snapshot.Name).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("❌ [EventSync] Failed to load event %s: %v", snapshot.Name, err)
		return failedResult("Failed to load stored event.")
	}
	found := err == nil

	if found {
		if existing.IsCompleted {
			return okResult("Event already completed. Skipping.")
		}
		for _, fight := range existing.Fights {
			if len(fight.Predictions) > 0 {
				return okResult("Event already has predictions. Snapshot locked.")
			}
		}
	}

	// The whole card replacement is all-or-nothing: a partially replaced
	// fight list left behind on failure would be a correctness bug.
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		event := existing
		if found {
			if err := tx.Model(&models.Event{}).Where("id = ?", event.ID).
				Updates(map[string]interface{}{
					"date":         snapshot.Date,
					"location":     snapshot.Location,
					"is_completed": false,
				}).Error; err != nil {
				return err
			}
		} else {
			event = models.Event{
				Name:     snapshot.Name,
				Slug:     slug.Make(snapshot.Name),
				Date:     snapshot.Date,
				Location: snapshot.Location,
			}
			if err := tx.Create(&event).Error; err != nil {
				return err
			}
		}

		// Safety net only: the snapshot-lock guard above means no
		// predictions can exist on this path.
		fightIDs := tx.Model(&models.Fight{}).Select("id").Where("event_id = ?", event.ID)
		if err := tx.Where("fight_id IN (?)", fightIDs).Delete(&models.Prediction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", event.ID).Delete(&models.Fight{}).Error; err != nil {
			return err
		}

		for _, fight := range snapshot.Fights {
			row := models.Fight{
				EventID:        event.ID,
				Division:       fight.Division,
				IsTitleFight:   fight.IsTitleFight,
				Fighter1Name:   fight.Fighter1.Name,
				Fighter1Record: fight.Fighter1.Record,
				Fighter1Age:    fight.Fighter1.Age,
				Fighter1Height: fight.Fighter1.Height,
				Fighter1Reach:  fight.Fighter1.Reach,
				Fighter2Name:   fight.Fighter2.Name,
				Fighter2Record: fight.Fighter2.Record,
				Fighter2Age:    fight.Fighter2.Age,
				Fighter2Height: fight.Fighter2.Height,
				Fighter2Reach:  fight.Fighter2.Reach,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("❌ [EventSync] Sync transaction failed for %s: %v", snapshot.Name, err)
		return failedResult("Failed to store event snapshot.")
	}

	log.Printf("✅ [EventSync] Synced %s with %d fights", snapshot.Name, len(snapshot.Fights))
	return okResult(fmt.Sprintf("Synced %s with %d fights.", snapshot.Name, len(snapshot.Fights)))
}

// GetUpcomingEvent serves the earliest not-yet-completed event with its
// fight card.
func (s *EventSyncService) GetUpcomingEvent(c *fiber.Ctx) error {
	var event models.Event
	err := s.DB.Preload("Fights").
		Where("is_completed = ?", false).
		Order("date ASC").
		First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(fiber.Map{"ok": true, "event": nil})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"ok": false, "error": "Failed to fetch upcoming event."})
	}

	return c.JSON(fiber.Map{"ok": true, "event": event})
}
