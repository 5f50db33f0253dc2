// README: Calendar-aware date query generator (window resolution, weekend bias, distribution).
package queryplan

import (
	"fmt"
	"strings"
	"time"

	"tripscout/internal/config"
	"tripscout/internal/modules/calendar"
	"tripscout/internal/modules/intent"
	"tripscout/internal/types"
)

const (
	// DefaultTripLengthDays is assumed when the traveler never gave a duration.
	DefaultTripLengthDays = 7

	// Default window when no timeframe is known: two weeks out, ~2.5 months ahead.
	defaultWindowLeadDays = 14
	defaultWindowSpanDays = 75

	// Trips of this length or shorter plausibly span a single weekend and get
	// Friday-aligned departures.
	weekendTripMaxDays = 4

	// Window applied when only an earliest start date is known.
	openEndedWindowDays = 30

	// originPlaceholder stands in until the traveler names an origin; origin is
	// an optional field and must never block generation.
	originPlaceholder = "current location"
)

// Generator converts a travel intent into a bounded, deterministic set of
// date-bounded search queries. Stateless; safe for concurrent use.
type Generator struct {
	calendar   *calendar.Service
	country    string
	maxQueries int
}

func NewGenerator(cal *calendar.Service, cfg config.GeneratorConfig) *Generator {
	max := cfg.MaxQueries
	if max < 1 {
		max = 6
	}
	return &Generator{calendar: cal, country: cfg.CountryCode, maxQueries: max}
}

type window struct {
	start, end types.Date
}

// Generate produces 1..maxQueries date pairs per destination. today is the
// injected reference date; there is no wall-clock read anywhere below, so two
// invocations with equal inputs yield identical plans.
//
// Generate never fails: an unparseable month degrades to the default window
// and the reason travels back in Plan.Fallback.
func (g *Generator) Generate(ti intent.TravelIntent, today types.Date) Plan {
	tripLen := ti.TripLengthDays
	if tripLen <= 0 {
		tripLen = DefaultTripLengthDays
	}

	win, fallback := g.resolveWindow(ti, today, tripLen)

	// Holiday awareness is an optimization; an unknown country still yields
	// weekend flags and an empty holiday map.
	info, _ := g.calendar.WeekendsAndHolidays(win.start, win.end, g.country)

	starts, strategy := candidateStarts(win, tripLen, info)
	starts = evenlySpaced(starts, g.maxQueries)

	plan := Plan{
		Explanation: describeStrategy(strategy, len(starts), win, info),
		Fallback:    fallback,
	}

	origin := ti.Origin
	if origin == "" {
		origin = originPlaceholder
	}

	for _, dest := range ti.Destinations {
		for _, start := range starts {
			plan.Queries = append(plan.Queries, DateQuery{
				Origin:            origin,
				Destination:       dest,
				DepartDate:        start,
				ReturnDate:        start.AddDays(tripLen),
				Budget:            ti.Budget,
				Travelers:         ti.TravelersOrDefault(),
				MaxStops:          ti.MaxStops,
				PreferredAirlines: ti.PreferredAirlines,
			})
		}
	}
	return plan
}

// resolveWindow applies the documented resolution order: named month, then
// explicit range, then the default look-ahead window.
func (g *Generator) resolveWindow(ti intent.TravelIntent, today types.Date, tripLen int) (window, string) {
	if ti.SpecificMonth != "" {
		if month, ok := parseMonth(ti.SpecificMonth); ok {
			return monthWindow(month, today, tripLen), ""
		}
		return defaultWindow(today),
			fmt.Sprintf("could not interpret month %q; searching the default window instead", ti.SpecificMonth)
	}

	if !ti.EarliestStart.IsZero() {
		end := ti.LatestStart
		if end.IsZero() {
			end = ti.EarliestStart.AddDays(openEndedWindowDays)
		}
		return window{start: ti.EarliestStart, end: end}, ""
	}

	return defaultWindow(today), ""
}

// monthWindow picks the occurrence of month that can still hold a full trip
// departing strictly after today. An elapsed month rolls to next year, and so
// does a current month whose remaining days are shorter than the trip.
func monthWindow(month time.Month, today types.Date, tripLen int) window {
	year := today.Year
	if month < today.Month {
		year++
	}
	first, last := types.MonthBounds(year, month)
	if first.Before(today.AddDays(1)) {
		first = today.AddDays(1) // skip the elapsed days of the current month
		if first.AddDays(tripLen).After(last) {
			first, last = types.MonthBounds(year+1, month)
		}
	}
	return window{start: first, end: last}
}

func defaultWindow(today types.Date) window {
	return window{
		start: today.AddDays(defaultWindowLeadDays),
		end:   today.AddDays(defaultWindowSpanDays),
	}
}

type strategy string

const (
	strategyWeekend strategy = "weekend-biased"
	strategyEven    strategy = "even-distribution"
)

// candidateStarts enumerates departure dates inside the window such that the
// whole trip fits (start + tripLen <= window.end). Short trips depart on
// weekdays that lead straight into a weekend or a public holiday, so the stay
// spans a long weekend; longer trips sample the window at a fixed cadence,
// denser for shorter trips.
func candidateStarts(win window, tripLen int, info calendar.Info) ([]types.Date, strategy) {
	latestStart := win.end.AddDays(-tripLen)

	if tripLen <= weekendTripMaxDays {
		var leadIns []types.Date
		for d := win.start; !d.After(latestStart); d = d.AddDays(1) {
			if info.IsWeekend(d) {
				continue
			}
			next := d.AddDays(1)
			if info.IsWeekend(next) {
				leadIns = append(leadIns, d) // Friday departure
				continue
			}
			if _, ok := info.HolidayName(next); ok {
				leadIns = append(leadIns, d) // holiday-eve departure
			}
		}
		if len(leadIns) > 0 {
			return leadIns, strategyWeekend
		}
		// No full weekend-anchored trip fits; fall through to cadence sampling.
	}

	step := tripLen
	if step < 3 {
		step = 3
	}
	if step > 7 {
		step = 7
	}
	var starts []types.Date
	for d := win.start; !d.After(latestStart); d = d.AddDays(step) {
		starts = append(starts, d)
	}
	if len(starts) == 0 {
		// The window is shorter than the trip. Still emit one pair anchored at
		// the window start: callers must always receive some result set.
		starts = []types.Date{win.start}
	}
	return starts, strategyEven
}

// evenlySpaced selects at most max entries spanning the whole slice, rather
// than truncating from one end.
func evenlySpaced(dates []types.Date, max int) []types.Date {
	if len(dates) <= max {
		return dates
	}
	if max == 1 {
		return dates[:1]
	}
	out := make([]types.Date, 0, max)
	var prev int = -1
	for i := 0; i < max; i++ {
		idx := i * (len(dates) - 1) / (max - 1)
		if idx == prev {
			continue
		}
		out = append(out, dates[idx])
		prev = idx
	}
	return out
}

func describeStrategy(s strategy, n int, win window, info calendar.Info) string {
	var b strings.Builder
	switch s {
	case strategyWeekend:
		fmt.Fprintf(&b, "Prioritized %d departures leading into weekends or public holidays between %s and %s", n, win.start, win.end)
	default:
		fmt.Fprintf(&b, "Distributed %d departures evenly between %s and %s", n, win.start, win.end)
	}
	if len(info.Holidays) > 0 {
		fmt.Fprintf(&b, " (%d public holidays in this window)", len(info.Holidays))
	}
	b.WriteByte('.')
	return b.String()
}

// parseMonth accepts full English month names and 3-letter abbreviations,
// case-insensitively.
func parseMonth(name string) (time.Month, bool) {
	name = strings.TrimSpace(name)
	if len(name) < 3 {
		return 0, false
	}
	for m := time.January; m <= time.December; m++ {
		full := m.String()
		if strings.EqualFold(name, full) {
			return m, true
		}
		if strings.EqualFold(name, full[:3]) {
			return m, true
		}
	}
	return 0, false
}
