// README: Generator tests (window bounds, trip length, determinism, fallbacks).
package queryplan

import (
	"reflect"
	"testing"
	"time"

	"tripscout/internal/config"
	"tripscout/internal/modules/calendar"
	"tripscout/internal/modules/intent"
	"tripscout/internal/types"
)

func newTestGenerator(maxQueries int) *Generator {
	return NewGenerator(calendar.NewService(), config.GeneratorConfig{
		CountryCode: "US",
		MaxQueries:  maxQueries,
	})
}

func TestGenerate_SpecificMonthStaysInBounds(t *testing.T) {
	g := newTestGenerator(6)
	ti := intent.TravelIntent{
		Destinations:   []string{"Seattle"},
		TripLengthDays: 3,
		SpecificMonth:  "June",
	}
	today := types.NewDate(2025, time.January, 1)

	plan := g.Generate(ti, today)

	if len(plan.Queries) == 0 {
		t.Fatal("expected at least one query")
	}
	first := types.NewDate(2025, time.June, 1)
	last := types.NewDate(2025, time.June, 30)
	for _, q := range plan.Queries {
		if q.DepartDate.Before(first) || q.ReturnDate.After(last) {
			t.Errorf("pair %s..%s escapes June 2025", q.DepartDate, q.ReturnDate)
		}
		if got := q.DepartDate.DaysUntil(q.ReturnDate); got != 3 {
			t.Errorf("trip span = %d days, want 3", got)
		}
	}
}

func TestGenerate_ElapsedMonthRollsToNextYear(t *testing.T) {
	g := newTestGenerator(6)
	ti := intent.TravelIntent{
		Destinations:   []string{"Oslo"},
		TripLengthDays: 5,
		SpecificMonth:  "March",
	}
	today := types.NewDate(2025, time.August, 10)

	plan := g.Generate(ti, today)

	for _, q := range plan.Queries {
		if q.DepartDate.Year != 2026 || q.DepartDate.Month != time.March {
			t.Errorf("depart %s, want March 2026", q.DepartDate)
		}
	}
}

func TestGenerate_CurrentMonthSkipsElapsedDays(t *testing.T) {
	g := newTestGenerator(6)
	ti := intent.TravelIntent{
		Destinations:   []string{"Lisbon"},
		TripLengthDays: 7,
		SpecificMonth:  "June",
	}
	today := types.NewDate(2025, time.June, 10)

	plan := g.Generate(ti, today)

	for _, q := range plan.Queries {
		if !q.DepartDate.After(today) {
			t.Errorf("depart %s is not in the future of %s", q.DepartDate, today)
		}
		if q.DepartDate.Month != time.June || q.DepartDate.Year != 2025 {
			t.Errorf("depart %s escaped June 2025", q.DepartDate)
		}
	}
}

func TestGenerate_WeekendTripLeadsIntoWeekendOrHoliday(t *testing.T) {
	g := newTestGenerator(6)
	ti := intent.TravelIntent{
		Destinations:   []string{"Chicago"},
		TripLengthDays: 3,
		SpecificMonth:  "June",
	}
	plan := g.Generate(ti, types.NewDate(2025, time.January, 1))

	// 2025-06-19 is Juneteenth; departing the day before earns a long weekend.
	holidayEve := types.NewDate(2025, time.June, 18)
	sawEve := false
	for _, q := range plan.Queries {
		if q.DepartDate == holidayEve {
			sawEve = true
			continue
		}
		if q.DepartDate.Weekday() != time.Friday {
			t.Errorf("weekend trip departs on %s (%s), want Friday or a holiday eve",
				q.DepartDate, q.DepartDate.Weekday())
		}
	}
	if !sawEve {
		t.Errorf("expected a departure on the Juneteenth eve %s", holidayEve)
	}
	if plan.Explanation == "" {
		t.Error("plan is missing its strategy explanation")
	}
}

func TestGenerate_HolidayEveDepartures(t *testing.T) {
	g := newTestGenerator(6)
	ti := intent.TravelIntent{
		Destinations:   []string{"Austin"},
		TripLengthDays: 3,
		SpecificMonth:  "November",
	}
	plan := g.Generate(ti, types.NewDate(2025, time.January, 1))

	// Thanksgiving 2025 falls on Thursday the 27th.
	thanksgivingEve := types.NewDate(2025, time.November, 26)
	found := false
	for _, q := range plan.Queries {
		if q.DepartDate == thanksgivingEve {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a departure on %s, got %v", thanksgivingEve, departures(plan))
	}
}

func TestGenerate_MonthTailTooShortRollsToNextYear(t *testing.T) {
	g := newTestGenerator(6)
	ti := intent.TravelIntent{
		Destinations:   []string{"Seattle"},
		TripLengthDays: 3,
		SpecificMonth:  "June",
	}

	// Only three days of June remain and none of them can hold a full trip.
	cases := []types.Date{
		types.NewDate(2025, time.June, 27),
		types.NewDate(2025, time.June, 29),
		types.NewDate(2025, time.June, 30), // the month's last day
	}
	for _, today := range cases {
		plan := g.Generate(ti, today)
		if len(plan.Queries) == 0 {
			t.Fatalf("today=%s: expected queries", today)
		}
		first := types.NewDate(2026, time.June, 1)
		last := types.NewDate(2026, time.June, 30)
		for _, q := range plan.Queries {
			if q.DepartDate.Before(first) || q.ReturnDate.After(last) {
				t.Errorf("today=%s: pair %s..%s outside June 2026", today, q.DepartDate, q.ReturnDate)
			}
			if !q.DepartDate.After(today) {
				t.Errorf("today=%s: departure %s not in the future", today, q.DepartDate)
			}
		}
	}
}

func TestGenerate_MonthTailStillFitsStaysInYear(t *testing.T) {
	g := newTestGenerator(6)
	ti := intent.TravelIntent{
		Destinations:   []string{"Seattle"},
		TripLengthDays: 3,
		SpecificMonth:  "June",
	}
	today := types.NewDate(2025, time.June, 20)

	plan := g.Generate(ti, today)

	if len(plan.Queries) == 0 {
		t.Fatal("expected queries")
	}
	for _, q := range plan.Queries {
		if q.DepartDate.Year != 2025 || q.DepartDate.Month != time.June {
			t.Errorf("depart %s, want the remainder of June 2025", q.DepartDate)
		}
		if !q.DepartDate.After(today) {
			t.Errorf("departure %s not in the future of %s", q.DepartDate, today)
		}
		if q.ReturnDate.After(types.NewDate(2025, time.June, 30)) {
			t.Errorf("return %s escapes June 2025", q.ReturnDate)
		}
	}
}

func TestGenerate_CapSpansWholeWindow(t *testing.T) {
	g := newTestGenerator(5)
	// No timeframe: default window of ~61 candidate days, 2-day weekend trips
	// produce more Fridays than the cap allows.
	ti := intent.TravelIntent{
		Destinations:   []string{"Denver"},
		TripLengthDays: 2,
	}
	today := types.NewDate(2025, time.March, 3)

	plan := g.Generate(ti, today)

	if len(plan.Queries) > 5 {
		t.Fatalf("cap exceeded: %d queries", len(plan.Queries))
	}
	if len(plan.Queries) < 2 {
		t.Fatalf("expected several queries, got %d", len(plan.Queries))
	}
	// The sample must span the window, not cluster at its start: the last
	// selected departure sits in the window's back half.
	windowStart := today.AddDays(defaultWindowLeadDays)
	windowEnd := today.AddDays(defaultWindowSpanDays)
	mid := windowStart.AddDays(windowStart.DaysUntil(windowEnd) / 2)
	last := plan.Queries[len(plan.Queries)-1]
	if last.DepartDate.Before(mid) {
		t.Errorf("selection truncated from one end: last departure %s before window midpoint %s", last.DepartDate, mid)
	}
}

func TestGenerate_ExplicitRangeWindow(t *testing.T) {
	g := newTestGenerator(6)
	ti := intent.TravelIntent{
		Destinations:   []string{"Boston"},
		TripLengthDays: 7,
		EarliestStart:  types.NewDate(2025, time.September, 1),
		LatestStart:    types.NewDate(2025, time.September, 20),
	}
	plan := g.Generate(ti, types.NewDate(2025, time.January, 1))

	if len(plan.Queries) == 0 {
		t.Fatal("expected queries for an explicit range")
	}
	for _, q := range plan.Queries {
		if q.DepartDate.Before(ti.EarliestStart) {
			t.Errorf("depart %s before earliest start", q.DepartDate)
		}
		if q.ReturnDate.After(ti.LatestStart) {
			t.Errorf("return %s after window end", q.ReturnDate)
		}
	}
}

func TestGenerate_WindowShorterThanTripStillYieldsOnePair(t *testing.T) {
	g := newTestGenerator(6)
	ti := intent.TravelIntent{
		Destinations:   []string{"Quebec"},
		TripLengthDays: 14,
		EarliestStart:  types.NewDate(2025, time.July, 1),
		LatestStart:    types.NewDate(2025, time.July, 5),
	}
	plan := g.Generate(ti, types.NewDate(2025, time.January, 1))

	if len(plan.Queries) != 1 {
		t.Fatalf("want exactly one anchored pair, got %d", len(plan.Queries))
	}
	q := plan.Queries[0]
	if q.DepartDate != ti.EarliestStart {
		t.Errorf("anchored depart = %s, want %s", q.DepartDate, ti.EarliestStart)
	}
	if q.DepartDate.DaysUntil(q.ReturnDate) != 14 {
		t.Errorf("span = %d, want 14", q.DepartDate.DaysUntil(q.ReturnDate))
	}
}

func TestGenerate_UnparseableMonthFallsBack(t *testing.T) {
	g := newTestGenerator(6)
	ti := intent.TravelIntent{
		Destinations:   []string{"Madrid"},
		TripLengthDays: 7,
		SpecificMonth:  "Brumaire",
	}
	today := types.NewDate(2025, time.February, 1)

	plan := g.Generate(ti, today)

	if len(plan.Queries) == 0 {
		t.Fatal("fallback must still produce queries")
	}
	if plan.Fallback == "" {
		t.Error("fallback reason not reported")
	}
	windowStart := today.AddDays(defaultWindowLeadDays)
	for _, q := range plan.Queries {
		if q.DepartDate.Before(windowStart) {
			t.Errorf("depart %s before default window start %s", q.DepartDate, windowStart)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	g := newTestGenerator(6)
	ti := intent.TravelIntent{
		Destinations:   []string{"Tokyo", "Osaka"},
		TripLengthDays: 10,
		SpecificMonth:  "November",
		Travelers:      2,
	}
	today := types.NewDate(2025, time.April, 15)

	a := g.Generate(ti, today)
	b := g.Generate(ti, today)

	if !reflect.DeepEqual(a, b) {
		t.Fatalf("plans differ across invocations:\n%+v\n%+v", a, b)
	}
}

func TestGenerate_PerDestinationQueries(t *testing.T) {
	g := newTestGenerator(6)
	ti := intent.TravelIntent{
		Destinations:   []string{"Rome", "Florence"},
		TripLengthDays: 7,
		SpecificMonth:  "October",
	}
	plan := g.Generate(ti, types.NewDate(2025, time.January, 1))

	perDest := map[string]int{}
	for _, q := range plan.Queries {
		perDest[q.Destination]++
	}
	if perDest["Rome"] == 0 || perDest["Florence"] == 0 {
		t.Fatalf("missing destination coverage: %v", perDest)
	}
	if perDest["Rome"] != perDest["Florence"] {
		t.Errorf("uneven per-destination pairs: %v", perDest)
	}
}

func TestGenerate_OriginPlaceholderAndDefaults(t *testing.T) {
	g := newTestGenerator(6)
	ti := intent.TravelIntent{
		Destinations:  []string{"Paris"},
		SpecificMonth: "May",
	}
	plan := g.Generate(ti, types.NewDate(2025, time.January, 1))

	for _, q := range plan.Queries {
		if q.Origin != "current location" {
			t.Errorf("origin = %q, want placeholder", q.Origin)
		}
		if q.Travelers != 1 {
			t.Errorf("travelers = %d, want default 1", q.Travelers)
		}
		// No trip length given: the one-week default applies.
		if q.DepartDate.DaysUntil(q.ReturnDate) != DefaultTripLengthDays {
			t.Errorf("span = %d, want %d", q.DepartDate.DaysUntil(q.ReturnDate), DefaultTripLengthDays)
		}
	}
}

func departures(plan Plan) []types.Date {
	out := make([]types.Date, 0, len(plan.Queries))
	for _, q := range plan.Queries {
		out = append(out, q.DepartDate)
	}
	return out
}

func TestParseMonth(t *testing.T) {
	cases := []struct {
		in   string
		want time.Month
		ok   bool
	}{
		{"June", time.June, true},
		{"june", time.June, true},
		{"JUN", time.June, true},
		{" december ", time.December, true},
		{"Brumaire", 0, false},
		{"ju", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseMonth(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("parseMonth(%q) = (%v, %v), want (%v, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
