package services

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fight-picks-system/models"
	"fight-picks-system/utils"
)

// LeaderboardRow is one user's season line: the committed total plus
// pick-accuracy stats recomputed from completed, non-invalidated fights.
type LeaderboardRow struct {
	Username        string  `json:"username"`
	TotalScore      int     `json:"total_score"`
	CorrectPicks    int     `json:"correct_picks"`
	TotalValidPicks int     `json:"total_valid_picks"`
	Accuracy        float64 `json:"accuracy"`
}

// LeaderboardService builds the season standings.
type LeaderboardService struct {
	DB      *gorm.DB
	seasons *SeasonService
}

func NewLeaderboardService(db *gorm.DB, seasons *SeasonService) *LeaderboardService {
	return &LeaderboardService{DB: db, seasons: seasons}
}

// BuildRows computes the standings for the given season year.
func (s *LeaderboardService) BuildRows(seasonYear string) ([]LeaderboardRow, error) {
	year, _ := strconv.Atoi(seasonYear)

	var users []models.User
	if err := s.DB.Preload("Predictions").Find(&users).Error; err != nil {
		return nil, err
	}

	var fights []models.Fight
	if err := s.DB.Find(&fights).Error; err != nil {
		return nil, err
	}
	var events []models.Event
	if err := s.DB.Find(&events).Error; err != nil {
		return nil, err
	}

	eventByID := make(map[string]models.Event, len(events))
	for _, event := range events {
		eventByID[event.ID] = event
	}
	fightByID := make(map[string]models.Fight, len(fights))
	for _, fight := range fights {
		fightByID[fight.ID] = fight
	}

	rows := make([]LeaderboardRow, 0, len(users))
	for _, user := range users {
		row := LeaderboardRow{Username: user.Username, TotalScore: user.TotalScore}

		for _, prediction := range user.Predictions {
			fight, ok := fightByID[prediction.FightID]
			if !ok {
				continue
			}
			event, ok := eventByID[fight.EventID]
			if !ok {
				continue
			}

			valid := event.Date.In(utils.Brussels()).Year() == year &&
				event.IsCompleted &&
				fight.Winner != nil &&
				!fight.IsInvalidated &&
				(fight.Method == nil || !strings.Contains(strings.ToLower(*fight.Method), "no contest"))
			if !valid {
				continue
			}

			row.TotalValidPicks++
			if utils.NormalizeName(prediction.PredictedWinner) == utils.NormalizeName(*fight.Winner) {
				row.CorrectPicks++
			}
		}

		if row.TotalValidPicks > 0 {
			pct := float64(row.CorrectPicks) / float64(row.TotalValidPicks) * 100
			row.Accuracy = math.Round(pct*100) / 100
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalScore != rows[j].TotalScore {
			return rows[i].TotalScore > rows[j].TotalScore
		}
		if rows[i].Accuracy != rows[j].Accuracy {
			return rows[i].Accuracy > rows[j].Accuracy
		}
		return rows[i].Username < rows[j].Username
	})

	return rows, nil
}

// GetLeaderboard is the GET /leaderboard handler. Runs the season check
// first so a stale season never serves pre-reset totals.
func (s *LeaderboardService) GetLeaderboard(c *fiber.Ctx) error {
	season := s.seasons.EnsureSeasonResetIfNeeded()
	if !season.OK {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"ok": false, "error": "Failed to fetch leaderboard."})
	}

	rows, err := s.BuildRows(season.SeasonYear)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"ok": false, "error": "Failed to fetch leaderboard."})
	}

	return c.JSON(fiber.Map{"ok": true, "leaderboard": rows})
}
