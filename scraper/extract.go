package scraper

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// CleanText collapses internal whitespace runs to single spaces and
// trims the ends. Total over all inputs.
func CleanText(value string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(value, " "))
}

// dateLayouts are tried in order by ParseDateLoose: machine formats
// first, then the human "Month D, YYYY" forms the stats site uses.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 02, 2006",
}

// ParseDateLoose parses either a machine-readable date or a human
// "Month D, YYYY" string, in the given location.
func ParseDateLoose(input string, loc *time.Location) (time.Time, error) {
	cleaned := CleanText(input)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, cleaned, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableDate, input)
}

// TryParseDateLoose is the non-throwing variant used when scanning rows
// whose date cell is not known in advance.
func TryParseDateLoose(input string, loc *time.Location) (time.Time, bool) {
	t, err := ParseDateLoose(input, loc)
	return t, err == nil
}

// LabelValue scans the list items selected by itemSelector under root
// for the first entry whose leading "Label:" matches label
// (case-insensitively), strips the label prefix, and returns the cleaned
// remainder. Returns "" when no entry matches. All markup knowledge for
// labelled info boxes lives here so the scraper itself only asks for
// semantic values.
func LabelValue(root *goquery.Selection, itemSelector, label string) string {
	value := ""
	root.Find(itemSelector).EachWithBreak(func(_ int, item *goquery.Selection) bool {
		text := CleanText(item.Text())
		idx := strings.Index(text, ":")
		if idx < 0 {
			return true
		}
		if !strings.EqualFold(CleanText(text[:idx]), label) {
			return true
		}
		value = CleanText(text[idx+1:])
		return false
	})
	return value
}

// yearsBetween returns full calendar years elapsed from start to end.
func yearsBetween(start, end time.Time) int {
	years := end.Year() - start.Year()
	anniversary := start.AddDate(years, 0, 0)
	if anniversary.After(end) {
		years--
	}
	return years
}
