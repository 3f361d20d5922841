package scraper

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fight-picks-system/utils"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  Jon   Jones  ", "Jon Jones"},
		{"Jon\n\tJones", "Jon Jones"},
		{"", ""},
		{"   ", ""},
		{"single", "single"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanText(tt.input))
	}
}

func TestParseDateLoose(t *testing.T) {
	loc := utils.Brussels()

	tests := []struct {
		input string
		want  time.Time
	}{
		{"December 7, 2024", time.Date(2024, 12, 7, 0, 0, 0, 0, loc)},
		{"Jul 19, 1987", time.Date(1987, 7, 19, 0, 0, 0, 0, loc)},
		{"2024-12-07", time.Date(2024, 12, 7, 0, 0, 0, 0, loc)},
		{"  December  7,  2024 ", time.Date(2024, 12, 7, 0, 0, 0, 0, loc)},
	}
	for _, tt := range tests {
		got, err := ParseDateLoose(tt.input, loc)
		require.NoError(t, err, tt.input)
		assert.True(t, got.Equal(tt.want), "%s parsed to %s", tt.input, got)
	}

	_, err := ParseDateLoose("not a date", loc)
	assert.ErrorIs(t, err, ErrUnparseableDate)

	_, ok := TryParseDateLoose("not a date", loc)
	assert.False(t, ok)
	_, ok = TryParseDateLoose("December 7, 2024", loc)
	assert.True(t, ok)
}

const infoBoxHTML = `
<div class="profile">
  <ul class="info-list">
    <li class="b-list__box-list-item">Height: 6' 4"</li>
    <li class="b-list__box-list-item">Reach: 84"</li>
    <li class="b-list__box-list-item">DOB: Jul 19, 1987</li>
    <li class="b-list__box-list-item">no colon here</li>
  </ul>
</div>`

func TestLabelValue(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(infoBoxHTML))
	require.NoError(t, err)

	assert.Equal(t, `6' 4"`, LabelValue(doc.Selection, ".b-list__box-list-item", "Height"))
	assert.Equal(t, `84"`, LabelValue(doc.Selection, ".b-list__box-list-item", "Reach"))
	assert.Equal(t, "Jul 19, 1987", LabelValue(doc.Selection, ".b-list__box-list-item", "dob"), "label match is case-insensitive")
	assert.Equal(t, "", LabelValue(doc.Selection, ".b-list__box-list-item", "Weight"), "absent label yields empty string")
}

func TestYearsBetween(t *testing.T) {
	dob := time.Date(1987, 7, 19, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 39, yearsBetween(dob, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 38, yearsBetween(dob, time.Date(2026, 7, 18, 0, 0, 0, 0, time.UTC)), "day before birthday")
	assert.Equal(t, 39, yearsBetween(dob, time.Date(2026, 7, 19, 0, 0, 0, 0, time.UTC)), "on the birthday")
}
