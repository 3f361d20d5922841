package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithinNextDaysBrussels(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, Brussels())

	assert.True(t, WithinNextDaysBrussels(now, now.AddDate(0, 0, 3), 7))
	assert.True(t, WithinNextDaysBrussels(now, now.Add(time.Hour), 7))
	assert.False(t, WithinNextDaysBrussels(now, now.AddDate(0, 0, 8), 7), "past the window")
	assert.False(t, WithinNextDaysBrussels(now, now.AddDate(0, 0, 7), 7), "boundary is exclusive")
	assert.False(t, WithinNextDaysBrussels(now, now.AddDate(0, 0, -1), 7), "past events excluded")
	assert.False(t, WithinNextDaysBrussels(now, now, 7), "now itself excluded")
}

func TestWithinDaysEitherSide(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, Brussels())

	assert.True(t, WithinDaysEitherSide(now, now.AddDate(0, 0, -1), 2))
	assert.True(t, WithinDaysEitherSide(now, now.AddDate(0, 0, 1), 2))
	assert.True(t, WithinDaysEitherSide(now, now, 2))
	assert.False(t, WithinDaysEitherSide(now, now.AddDate(0, 0, -3), 2))
	assert.False(t, WithinDaysEitherSide(now, now.AddDate(0, 0, 3), 2))
}

func TestSeasonYear(t *testing.T) {
	assert.Equal(t, "2026", SeasonYear(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)))

	// 23:30 UTC on Dec 31 is already Jan 1 in Brussels.
	newYearEveUTC := time.Date(2026, 12, 31, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2027", SeasonYear(newYearEveUTC))
}
