package services

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fight-picks-system/models"
	"fight-picks-system/utils"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrPredictionsLocked = errors.New("predictions are locked for this event")
	ErrPickCountMismatch = errors.New("one prediction required per main card fight")
	ErrUnknownFight      = errors.New("fight does not belong to this event")
	ErrAlreadySubmitted  = errors.New("predictions already submitted")
)

// Pick is one submitted prediction.
type Pick struct {
	FightID         string `json:"fight_id"`
	PredictedWinner string `json:"predicted_winner"`
}

type submitPayload struct {
	EventID string `json:"event_id"`
	Picks   []Pick `json:"picks"`
}

// PredictionService handles pick submission and retrieval. Picks are
// write-once: submitting a second time for the same event is rejected
// (the edit lock the snapshot lock depends on).
type PredictionService struct {
	DB  *gorm.DB
	now func() time.Time
}

func NewPredictionService(db *gorm.DB) *PredictionService {
	return &PredictionService{DB: db, now: utils.NowInBrussels}
}

// SubmitPicks validates and stores one full card of picks for a user.
func (s *PredictionService) SubmitPicks(userID, eventID string, picks []Pick) error {
	var event models.Event
	err := s.DB.Preload("Fights").First(&event, "id = ?", eventID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrEventNotFound
	}
	if err != nil {
		return err
	}

	if event.IsCompleted || !s.now().Before(event.Date) {
		return ErrPredictionsLocked
	}

	if len(picks) != len(event.Fights) {
		return ErrPickCountMismatch
	}

	fightIDs := make(map[string]bool, len(event.Fights))
	for _, fight := range event.Fights {
		fightIDs[fight.ID] = true
	}
	for _, pick := range picks {
		if !fightIDs[pick.FightID] {
			return ErrUnknownFight
		}
	}

	var existing int64
	err = s.DB.Model(&models.Prediction{}).
		Joins("JOIN fights ON fights.id = predictions.fight_id").
		Where("predictions.user_id = ? AND fights.event_id = ?", userID, eventID).
		Count(&existing).Error
	if err != nil {
		return err
	}
	if existing > 0 {
		return ErrAlreadySubmitted
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		for _, pick := range picks {
			row := models.Prediction{
				UserID:          userID,
				FightID:         pick.FightID,
				PredictedWinner: pick.PredictedWinner,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SubmitPredictions is the POST /predictions handler.
func (s *PredictionService) SubmitPredictions(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"ok": false, "error": "Unauthorized."})
	}

	var payload submitPayload
	if err := c.BodyParser(&payload); err != nil || payload.EventID == "" || len(payload.Picks) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false, "error": "Invalid payload."})
	}
	for _, pick := range payload.Picks {
		if pick.FightID == "" || pick.PredictedWinner == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false, "error": "Invalid payload."})
		}
	}

	switch err := s.SubmitPicks(userID, payload.EventID, payload.Picks); {
	case err == nil:
		return c.JSON(fiber.Map{"ok": true})
	case errors.Is(err, ErrEventNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"ok": false, "error": "Event not found."})
	case errors.Is(err, ErrPredictionsLocked):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false, "error": "Predictions are locked for this event."})
	case errors.Is(err, ErrPickCountMismatch):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false, "error": "You must submit one prediction for each main card fight."})
	case errors.Is(err, ErrUnknownFight):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false, "error": "One or more fights do not belong to this event."})
	case errors.Is(err, ErrAlreadySubmitted):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"ok": false, "error": "Predictions already submitted. Edits are disabled."})
	default:
		log.Printf("❌ [Predictions] Submit failed for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"ok": false, "error": "Unexpected server error."})
	}
}

// GetUserPredictions is the GET /predictions handler: the calling user's
// picks with their fights and events.
func (s *PredictionService) GetUserPredictions(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"ok": false, "error": "Unauthorized."})
	}

	var predictions []models.Prediction
	if err := s.DB.Where("user_id = ?", userID).Order("created_at ASC").Find(&predictions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"ok": false, "error": "Failed to fetch predictions."})
	}

	return c.JSON(fiber.Map{"ok": true, "predictions": predictions})
}
