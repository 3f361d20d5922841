package scraper

import (
	"errors"
	"time"
)

var (
	// ErrFetchFailed means both the browser and the plain-HTTP retrieval
	// paths failed for a URL.
	ErrFetchFailed = errors.New("failed to fetch page")
	// ErrUnparseableDate means a date string matched none of the accepted
	// formats.
	ErrUnparseableDate = errors.New("unable to parse date")
	// ErrMalformedFightPage means a fight-detail page did not expose two
	// fighter links; the page is assumed broken, not slow.
	ErrMalformedFightPage = errors.New("unable to parse fighters from fight page")
)

// FighterSnapshot is the bio block captured from a fighter profile page
// at sync time. Every field is free text; anything unobtainable is the
// literal "Unknown".
type FighterSnapshot struct {
	Name   string
	Record string
	Age    string
	Height string
	Reach  string
}

// FightSnapshot is one main-card bout as scraped from the fight card.
// Corner order (Fighter1/Fighter2) mirrors the page and is not
// significant when matching results later.
type FightSnapshot struct {
	Division     string
	IsTitleFight bool
	Fighter1     FighterSnapshot
	Fighter2     FighterSnapshot
}

// EventSnapshot is a point-in-time extraction of an upcoming card.
// Immutable once produced; persisted whole or not at all.
type EventSnapshot struct {
	Name     string
	Date     time.Time
	Location string
	Fights   []FightSnapshot
}

// ResultFight is one completed bout from a results page. Winner is nil
// for draws, no contests, and anything else without a clear winner. The
// three anomaly flags are computed independently from the method text
// and are not mutually exclusive; any of them invalidates the fight for
// scoring.
type ResultFight struct {
	Fighter1Name string
	Fighter2Name string
	Winner       *string
	Method       string
	IsDraw       bool
	IsNoContest  bool
	IsOverturned bool
}

// EventResults is the scraped outcome set for a completed event.
type EventResults struct {
	EventName string
	EventDate time.Time
	Fights    []ResultFight
}
