package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fight-picks-system/models"
	"fight-picks-system/utils"
)

func beforeEventClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, 8, 25, 12, 0, 0, 0, utils.Brussels())
	}
}

func afterEventClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, 8, 30, 12, 0, 0, 0, utils.Brussels())
	}
}

func fullCardPicks(event models.Event) []Pick {
	picks := make([]Pick, 0, len(event.Fights))
	for _, fight := range event.Fights {
		picks = append(picks, Pick{FightID: fight.ID, PredictedWinner: fight.Fighter1Name})
	}
	return picks
}

func TestSubmitPicks(t *testing.T) {
	db := newTestDB(t)
	s := NewPredictionService(db)
	s.now = beforeEventClock()

	event := seedEvent(t, db, "UFC 310", [][2]string{
		{"Jon Jones", "Stipe Miocic"},
		{"Ilia Topuria", "Charles Oliveira"},
	})
	alice := createUser(t, db, "alice", 0)

	require.NoError(t, s.SubmitPicks(alice.ID, event.ID, fullCardPicks(event)))

	var count int64
	require.NoError(t, db.Model(&models.Prediction{}).Where("user_id = ?", alice.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestSubmitPicksEventNotFound(t *testing.T) {
	db := newTestDB(t)
	s := NewPredictionService(db)
	s.now = beforeEventClock()

	err := s.SubmitPicks("user", "missing-event", []Pick{{FightID: "x", PredictedWinner: "y"}})
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestSubmitPicksLockedAfterEventStart(t *testing.T) {
	db := newTestDB(t)
	s := NewPredictionService(db)
	s.now = afterEventClock()

	event := seedEvent(t, db, "UFC 310", [][2]string{{"Jon Jones", "Stipe Miocic"}})
	alice := createUser(t, db, "alice", 0)

	err := s.SubmitPicks(alice.ID, event.ID, fullCardPicks(event))
	assert.ErrorIs(t, err, ErrPredictionsLocked)
}

func TestSubmitPicksLockedWhenCompleted(t *testing.T) {
	db := newTestDB(t)
	s := NewPredictionService(db)
	s.now = beforeEventClock()

	event := seedEvent(t, db, "UFC 310", [][2]string{{"Jon Jones", "Stipe Miocic"}})
	require.NoError(t, db.Model(&models.Event{}).Where("id = ?", event.ID).Update("is_completed", true).Error)
	alice := createUser(t, db, "alice", 0)

	err := s.SubmitPicks(alice.ID, event.ID, fullCardPicks(event))
	assert.ErrorIs(t, err, ErrPredictionsLocked)
}

func TestSubmitPicksRequiresFullCard(t *testing.T) {
	db := newTestDB(t)
	s := NewPredictionService(db)
	s.now = beforeEventClock()

	event := seedEvent(t, db, "UFC 310", [][2]string{
		{"Jon Jones", "Stipe Miocic"},
		{"Ilia Topuria", "Charles Oliveira"},
	})
	alice := createUser(t, db, "alice", 0)

	err := s.SubmitPicks(alice.ID, event.ID, fullCardPicks(event)[:1])
	assert.ErrorIs(t, err, ErrPickCountMismatch)
}

func TestSubmitPicksRejectsForeignFight(t *testing.T) {
	db := newTestDB(t)
	s := NewPredictionService(db)
	s.now = beforeEventClock()

	event := seedEvent(t, db, "UFC 310", [][2]string{{"Jon Jones", "Stipe Miocic"}})
	other := seedEvent(t, db, "UFC 311", [][2]string{{"Ilia Topuria", "Charles Oliveira"}})
	alice := createUser(t, db, "alice", 0)

	err := s.SubmitPicks(alice.ID, event.ID, []Pick{
		{FightID: other.Fights[0].ID, PredictedWinner: "Ilia Topuria"},
	})
	assert.ErrorIs(t, err, ErrUnknownFight)
}

func TestSubmitPicksEditLock(t *testing.T) {
	db := newTestDB(t)
	s := NewPredictionService(db)
	s.now = beforeEventClock()

	event := seedEvent(t, db, "UFC 310", [][2]string{{"Jon Jones", "Stipe Miocic"}})
	alice := createUser(t, db, "alice", 0)

	require.NoError(t, s.SubmitPicks(alice.ID, event.ID, fullCardPicks(event)))

	err := s.SubmitPicks(alice.ID, event.ID, fullCardPicks(event))
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
}
