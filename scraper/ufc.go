package scraper

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"fight-picks-system/utils"
)

const (
	upcomingEventsURL  = "http://ufcstats.com/statistics/events/upcoming"
	completedEventsURL = "http://ufcstats.com/statistics/events/completed?page=all"

	// Main card convention: only the first five bouts of a card are
	// synced and scored.
	mainCardFightLimit = 5

	// UnknownValue fills any bio field that could not be scraped.
	UnknownValue = "Unknown"

	upcomingWindowDays  = 7
	completedWindowDays = 2
)

var (
	onclickNavRegex   = regexp.MustCompile(`doNav\('([^']+)'\)`)
	recordPrefixRegex = regexp.MustCompile(`(?i)^Record:\s*`)
	titleTextRegex    = regexp.MustCompile(`(?i)title`)
)

type eventCandidate struct {
	Name string
	Date time.Time
	URL  string
}

// UFCStatsScraper reads the ufcstats.com listing, fight card, fight
// detail, and fighter profile page families. Read-only on the source;
// both operations are safe to retry.
type UFCStatsScraper struct {
	fetcher      Fetcher
	onlyNumbered bool
	now          func() time.Time
}

// NewUFCStatsScraper builds a scraper. onlyNumbered restricts candidate
// events to numbered cards ("UFC 310"); the clock defaults to the
// governing-time-zone wall clock and is injectable for tests.
func NewUFCStatsScraper(fetcher Fetcher, onlyNumbered bool) *UFCStatsScraper {
	return &UFCStatsScraper{
		fetcher:      fetcher,
		onlyNumbered: onlyNumbered,
		now:          utils.NowInBrussels,
	}
}

// WithClock overrides the scraper's notion of now.
func (s *UFCStatsScraper) WithClock(now func() time.Time) *UFCStatsScraper {
	s.now = now
	return s
}

// GetUpcomingNumberedEventWithin7Days returns a full snapshot of the
// first qualifying event starting within the next seven days, or nil
// when none qualifies.
func (s *UFCStatsScraper) GetUpcomingNumberedEventWithin7Days(ctx context.Context) (*EventSnapshot, error) {
	candidates, err := s.scrapeEventCandidates(ctx, upcomingEventsURL)
	if err != nil {
		return nil, err
	}

	for _, candidate := range candidates {
		if !utils.WithinNextDaysBrussels(s.now(), candidate.Date, upcomingWindowDays) {
			continue
		}
		log.Printf("ℹ️ [Scraper] Selected upcoming event %s (%s)", candidate.Name, candidate.Date.Format("2006-01-02"))
		return s.scrapeEventFightCard(ctx, candidate)
	}

	return nil, nil
}

// GetLatestNumberedEventResults returns the result set of the most
// recently concluded qualifying event (within two days of now, either
// direction), or nil when none qualifies.
func (s *UFCStatsScraper) GetLatestNumberedEventResults(ctx context.Context) (*EventResults, error) {
	candidates, err := s.scrapeEventCandidates(ctx, completedEventsURL)
	if err != nil {
		return nil, err
	}

	for _, candidate := range candidates {
		if !utils.WithinDaysEitherSide(s.now(), candidate.Date, completedWindowDays) {
			continue
		}
		log.Printf("ℹ️ [Scraper] Selected completed event %s (%s)", candidate.Name, candidate.Date.Format("2006-01-02"))
		return s.scrapeCompletedEventResults(ctx, candidate)
	}

	return nil, nil
}

// scrapeEventCandidates parses an events-listing page into candidates,
// skipping rows without a usable link or a parseable date and, when
// configured, anything that is not a numbered card.
func (s *UFCStatsScraper) scrapeEventCandidates(ctx context.Context, listingURL string) ([]eventCandidate, error) {
	html, err := s.fetcher.Fetch(ctx, listingURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse events listing: %w", err)
	}

	var candidates []eventCandidate
	doc.Find("table.b-statistics__table-events tbody tr.b-statistics__table-row").Each(func(_ int, row *goquery.Selection) {
		candidate, ok := s.parseEventCandidateRow(row)
		if !ok {
			return
		}
		if s.onlyNumbered && !utils.IsNumberedUFCEvent(candidate.Name) {
			return
		}
		candidates = append(candidates, candidate)
	})

	return candidates, nil
}

func (s *UFCStatsScraper) parseEventCandidateRow(row *goquery.Selection) (eventCandidate, bool) {
	firstCell := row.Find("td").First()
	anchor := firstCell.Find("a.b-link").First()

	name := CleanText(anchor.Text())
	url := anchor.AttrOr("href", "")
	if name == "" || url == "" {
		return eventCandidate{}, false
	}

	// Prefer the explicit date element; some listing variants only carry
	// the date as loose cell text.
	if explicit := CleanText(firstCell.Find("span.b-statistics__date").First().Text()); explicit != "" {
		if date, ok := TryParseDateLoose(explicit, utils.Brussels()); ok {
			return eventCandidate{Name: name, Date: date, URL: url}, true
		}
	}

	if date, ok := TryParseDateLoose(firstCell.Text(), utils.Brussels()); ok {
		return eventCandidate{Name: name, Date: date, URL: url}, true
	}

	return eventCandidate{}, false
}

// scrapeEventFightCard builds the upcoming-event snapshot: the card page
// for location and fight rows, then one fight-detail page and two
// fighter profiles per bout.
func (s *UFCStatsScraper) scrapeEventFightCard(ctx context.Context, candidate eventCandidate) (*EventSnapshot, error) {
	html, err := s.fetcher.Fetch(ctx, candidate.URL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse fight card page: %w", err)
	}

	location := LabelValue(doc.Selection, ".b-list__box-list-item", "Location")
	if location == "" {
		location = UnknownValue
	}

	snapshot := &EventSnapshot{
		Name:     utils.NormalizeEventName(candidate.Name),
		Date:     candidate.Date,
		Location: location,
	}

	rows := doc.Find(".b-fight-details__table tbody tr")
	for i := 0; i < rows.Length() && len(snapshot.Fights) < mainCardFightLimit; i++ {
		row := rows.Eq(i)

		fightURL := resolveFightURL(row)
		if fightURL == "" {
			continue
		}

		division := CleanText(row.Find("td").Eq(6).Text())
		if division == "" {
			division = UnknownValue
		}
		boutType := CleanText(row.Find("td").Eq(7).Text())
		hasBeltIcon := row.Find("td").Eq(6).Find("img[src*='belt']").Length() > 0
		isTitleFight := hasBeltIcon || titleTextRegex.MatchString(boutType) || titleTextRegex.MatchString(division)

		fight, err := s.scrapeFightSnapshot(ctx, fightURL, division, isTitleFight)
		if err != nil {
			return nil, err
		}
		snapshot.Fights = append(snapshot.Fights, *fight)
	}

	return snapshot, nil
}

// resolveFightURL pulls the fight-detail link out of a card row. The
// site varies: newer markup carries a data attribute on the row, older
// markup navigates through an inline onclick handler or a plain anchor.
func resolveFightURL(row *goquery.Selection) string {
	if link := row.AttrOr("data-link", ""); link != "" {
		return link
	}
	if match := onclickNavRegex.FindStringSubmatch(row.AttrOr("onclick", "")); match != nil {
		return match[1]
	}
	if link := row.Find("a[data-link]").First().AttrOr("data-link", ""); link != "" {
		return link
	}
	return row.Find("a.b-flag").First().AttrOr("href", "")
}

// scrapeFightSnapshot reads a fight-detail page and the two fighter
// profiles behind it. Fewer than two fighter links is a hard error; a
// failed profile fetch degrades to Unknown bios instead.
func (s *UFCStatsScraper) scrapeFightSnapshot(ctx context.Context, fightURL, division string, isTitleFight bool) (*FightSnapshot, error) {
	html, err := s.fetcher.Fetch(ctx, fightURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse fight page: %w", err)
	}

	anchors := doc.Find(".b-fight-details__person-name a")
	if anchors.Length() < 2 {
		return nil, fmt.Errorf("%w: %s", ErrMalformedFightPage, fightURL)
	}

	fighter1Name := CleanText(anchors.Eq(0).Text())
	fighter2Name := CleanText(anchors.Eq(1).Text())
	fighter1URL := anchors.Eq(0).AttrOr("href", "")
	fighter2URL := anchors.Eq(1).AttrOr("href", "")

	// Both corner profiles in parallel; each one degrades on its own.
	var fighter1, fighter2 FighterSnapshot
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		fighter1 = s.scrapeFighterProfile(ctx, fighter1URL, fighter1Name)
	}()
	go func() {
		defer wg.Done()
		fighter2 = s.scrapeFighterProfile(ctx, fighter2URL, fighter2Name)
	}()
	wg.Wait()

	return &FightSnapshot{
		Division:     division,
		IsTitleFight: isTitleFight,
		Fighter1:     fighter1,
		Fighter2:     fighter2,
	}, nil
}

// scrapeFighterProfile reads a fighter profile page. Partial data beats
// no data here: any failure returns an Unknown-filled snapshot carrying
// the name already extracted from the fight page.
func (s *UFCStatsScraper) scrapeFighterProfile(ctx context.Context, profileURL, fallbackName string) FighterSnapshot {
	unknown := FighterSnapshot{
		Name:   fallbackName,
		Record: UnknownValue,
		Age:    UnknownValue,
		Height: UnknownValue,
		Reach:  UnknownValue,
	}

	if profileURL == "" {
		return unknown
	}

	html, err := s.fetcher.Fetch(ctx, profileURL)
	if err != nil {
		log.Printf("⚠️  [Scraper] Fighter profile fetch failed for %s: %v", fallbackName, err)
		return unknown
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		log.Printf("⚠️  [Scraper] Fighter profile parse failed for %s: %v", fallbackName, err)
		return unknown
	}

	name := CleanText(doc.Find(".b-content__title-highlight").First().Text())
	if name == "" {
		name = fallbackName
	}

	record := recordPrefixRegex.ReplaceAllString(CleanText(doc.Find(".b-content__title-record").First().Text()), "")
	if record == "" {
		record = UnknownValue
	}

	smallBox := doc.Find(".b-list__info-box_style_small-width")
	profileValue := func(label string) string {
		if v := LabelValue(smallBox, ".b-list__box-list-item", label); v != "" {
			return v
		}
		return LabelValue(doc.Selection, ".b-list__box-list-item", label)
	}

	height := profileValue("Height")
	if height == "" {
		height = UnknownValue
	}
	reach := profileValue("Reach")
	if reach == "" {
		reach = UnknownValue
	}

	age := UnknownValue
	if dob := profileValue("DOB"); dob != "" {
		if dobDate, ok := TryParseDateLoose(dob, utils.Brussels()); ok {
			age = fmt.Sprintf("%d", yearsBetween(dobDate, s.now()))
		}
	}

	return FighterSnapshot{
		Name:   name,
		Record: record,
		Age:    age,
		Height: height,
		Reach:  reach,
	}
}

// scrapeCompletedEventResults reads a completed card's results table:
// per row the two fighter names, the corner status markers that decide
// the winner, and the method text the anomaly flags derive from.
func (s *UFCStatsScraper) scrapeCompletedEventResults(ctx context.Context, candidate eventCandidate) (*EventResults, error) {
	html, err := s.fetcher.Fetch(ctx, candidate.URL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse results page: %w", err)
	}

	results := &EventResults{
		EventName: utils.NormalizeEventName(candidate.Name),
		EventDate: candidate.Date,
	}

	rows := doc.Find(".b-fight-details__table tbody tr")
	for i := 0; i < rows.Length() && len(results.Fights) < mainCardFightLimit; i++ {
		row := rows.Eq(i)

		fighterLinks := row.Find("td").Eq(1).Find("a")
		if fighterLinks.Length() < 2 {
			continue
		}

		fighter1Name := CleanText(fighterLinks.Eq(0).Text())
		fighter2Name := CleanText(fighterLinks.Eq(1).Text())

		status1 := CleanText(row.Find("td").Eq(0).Find("p").Eq(0).Text())
		status2 := CleanText(row.Find("td").Eq(0).Find("p").Eq(1).Text())

		method := CleanText(row.Find("td").Eq(7).Text())
		if method == "" {
			method = UnknownValue
		}

		var winner *string
		if isWinnerToken(status1) {
			winner = &fighter1Name
		} else if isWinnerToken(status2) {
			winner = &fighter2Name
		}

		methodLower := strings.ToLower(method)
		noContest := strings.Contains(methodLower, "no contest")
		overturned := strings.Contains(methodLower, "overturned")
		draw := winner == nil && !noContest && !overturned

		results.Fights = append(results.Fights, ResultFight{
			Fighter1Name: fighter1Name,
			Fighter2Name: fighter2Name,
			Winner:       winner,
			Method:       method,
			IsDraw:       draw,
			IsNoContest:  noContest,
			IsOverturned: overturned,
		})
	}

	return results, nil
}

func isWinnerToken(value string) bool {
	normalized := strings.ToLower(value)
	return normalized == "w" || normalized == "win"
}
