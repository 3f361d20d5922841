package utils

import (
	"log"
	"time"
)

// All scheduling and season arithmetic runs in the league's governing
// time zone, not server-local time.
const BrusselsTZ = "Europe/Brussels"

var brussels *time.Location

func init() {
	loc, err := time.LoadLocation(BrusselsTZ)
	if err != nil {
		log.Fatalf("failed to load %s time zone: %v", BrusselsTZ, err)
	}
	brussels = loc
}

// Brussels returns the governing time zone location.
func Brussels() *time.Location {
	return brussels
}

// NowInBrussels returns the current instant in the governing time zone.
func NowInBrussels() time.Time {
	return time.Now().In(brussels)
}

// WithinNextDaysBrussels reports whether target falls strictly between
// now and now+days, both evaluated in the governing time zone.
func WithinNextDaysBrussels(now, target time.Time, days int) bool {
	now = now.In(brussels)
	target = target.In(brussels)
	max := now.AddDate(0, 0, days)
	return target.After(now) && target.Before(max)
}

// WithinDaysEitherSide reports whether target is at most days away from
// now in either direction. Used to pick the most recently concluded event.
func WithinDaysEitherSide(now, target time.Time, days int) bool {
	diff := now.Sub(target)
	if diff < 0 {
		diff = -diff
	}
	return diff <= time.Duration(days)*24*time.Hour
}

// SeasonYear returns the season identifier for an instant: its calendar
// year in the governing time zone, as a string.
func SeasonYear(now time.Time) string {
	return now.In(brussels).Format("2006")
}
