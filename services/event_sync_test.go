package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fight-picks-system/models"
	"fight-picks-system/scraper"
	"fight-picks-system/utils"
)

type stubSnapshotScraper struct {
	snapshot *scraper.EventSnapshot
	err      error
}

func (s *stubSnapshotScraper) GetUpcomingNumberedEventWithin7Days(context.Context) (*scraper.EventSnapshot, error) {
	return s.snapshot, s.err
}

func sampleFighter(name string) scraper.FighterSnapshot {
	return scraper.FighterSnapshot{Name: name, Record: "10-2-0", Age: "30", Height: `5' 11"`, Reach: `72"`}
}

func sampleSnapshot() *scraper.EventSnapshot {
	return &scraper.EventSnapshot{
		Name:     "UFC 310",
		Date:     time.Date(2026, 8, 29, 0, 0, 0, 0, utils.Brussels()),
		Location: "Las Vegas, Nevada, USA",
		Fights: []scraper.FightSnapshot{
			{
				Division:     "Heavyweight",
				IsTitleFight: true,
				Fighter1:     sampleFighter("Jon Jones"),
				Fighter2:     sampleFighter("Stipe Miocic"),
			},
			{
				Division: "Lightweight",
				Fighter1: sampleFighter("Ilia Topuria"),
				Fighter2: sampleFighter("Charles Oliveira"),
			},
		},
	}
}

func TestSyncUpcomingEventNothingToDo(t *testing.T) {
	db := newTestDB(t)
	s := NewEventSyncService(db, &stubSnapshotScraper{})

	result := s.SyncUpcomingEvent(context.Background())
	assert.True(t, result.OK)
	assert.Equal(t, "No numbered UFC event in the next 7 days.", result.Message)
}

func TestSyncUpcomingEventScrapeFailure(t *testing.T) {
	db := newTestDB(t)
	s := NewEventSyncService(db, &stubSnapshotScraper{err: errors.New("both fetch paths failed")})

	result := s.SyncUpcomingEvent(context.Background())
	assert.False(t, result.OK)
	assert.Contains(t, result.Message, "Scrape failed")
}

func TestSyncUpcomingEventCreatesEventAndFights(t *testing.T) {
	db := newTestDB(t)
	s := NewEventSyncService(db, &stubSnapshotScraper{snapshot: sampleSnapshot()})

	result := s.SyncUpcomingEvent(context.Background())
	assert.True(t, result.OK)
	assert.Equal(t, "Synced UFC 310 with 2 fights.", result.Message)

	var event models.Event
	require.NoError(t, db.Preload("Fights").First(&event, "name = ?", "UFC 310").Error)
	assert.Equal(t, "ufc-310", event.Slug)
	assert.Equal(t, "Las Vegas, Nevada, USA", event.Location)
	assert.False(t, event.IsCompleted)
	require.Len(t, event.Fights, 2)

	var title models.Fight
	require.NoError(t, db.First(&title, "event_id = ? AND fighter1_name = ?", event.ID, "Jon Jones").Error)
	assert.Equal(t, "Stipe Miocic", title.Fighter2Name)
	assert.Equal(t, "10-2-0", title.Fighter1Record)
	assert.True(t, title.IsTitleFight)
	assert.Nil(t, title.Winner)
	assert.False(t, title.IsInvalidated)
}

func TestSyncUpcomingEventReplaceWithIdenticalSnapshot(t *testing.T) {
	db := newTestDB(t)
	s := NewEventSyncService(db, &stubSnapshotScraper{snapshot: sampleSnapshot()})

	require.True(t, s.SyncUpcomingEvent(context.Background()).OK)

	var before models.Event
	require.NoError(t, db.Preload("Fights").First(&before, "name = ?", "UFC 310").Error)

	result := s.SyncUpcomingEvent(context.Background())
	assert.True(t, result.OK)

	var after models.Event
	require.NoError(t, db.Preload("Fights").First(&after, "name = ?", "UFC 310").Error)

	assert.Equal(t, before.ID, after.ID, "event row survives a re-sync")
	require.Len(t, after.Fights, 2)

	beforeNames := []string{before.Fights[0].Fighter1Name, before.Fights[1].Fighter1Name}
	afterNames := []string{after.Fights[0].Fighter1Name, after.Fights[1].Fighter1Name}
	assert.ElementsMatch(t, beforeNames, afterNames, "re-sync of an unchanged card leaves the same fights in effect")
}

func TestSyncUpcomingEventSnapshotLock(t *testing.T) {
	db := newTestDB(t)
	s := NewEventSyncService(db, &stubSnapshotScraper{snapshot: sampleSnapshot()})

	require.True(t, s.SyncUpcomingEvent(context.Background()).OK)

	var event models.Event
	require.NoError(t, db.Preload("Fights").First(&event, "name = ?", "UFC 310").Error)
	user := createUser(t, db, "alice", 0)
	require.NoError(t, db.Create(&models.Prediction{
		UserID:          user.ID,
		FightID:         event.Fights[0].ID,
		PredictedWinner: "Jon Jones",
	}).Error)

	result := s.SyncUpcomingEvent(context.Background())
	assert.True(t, result.OK)
	assert.Equal(t, "Event already has predictions. Snapshot locked.", result.Message)

	// The original fight rows are untouched.
	var after models.Event
	require.NoError(t, db.Preload("Fights").First(&after, "name = ?", "UFC 310").Error)
	afterIDs := []string{after.Fights[0].ID, after.Fights[1].ID}
	assert.Contains(t, afterIDs, event.Fights[0].ID)
	assert.Contains(t, afterIDs, event.Fights[1].ID)
}

func TestSyncUpcomingEventSkipsCompleted(t *testing.T) {
	db := newTestDB(t)
	s := NewEventSyncService(db, &stubSnapshotScraper{snapshot: sampleSnapshot()})

	require.True(t, s.SyncUpcomingEvent(context.Background()).OK)
	require.NoError(t, db.Model(&models.Event{}).Where("name = ?", "UFC 310").Update("is_completed", true).Error)

	result := s.SyncUpcomingEvent(context.Background())
	assert.True(t, result.OK)
	assert.Equal(t, "Event already completed. Skipping.", result.Message)
}
