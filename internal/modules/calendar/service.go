// README: Calendar service; pure weekend/holiday lookup backed by rickar/cal rules.
package calendar

import (
	"strings"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/au"
	"github.com/rickar/cal/v2/ca"
	"github.com/rickar/cal/v2/de"
	"github.com/rickar/cal/v2/fr"
	"github.com/rickar/cal/v2/gb"
	"github.com/rickar/cal/v2/jp"
	"github.com/rickar/cal/v2/us"

	"tripscout/internal/types"
)

// countryCalendars maps ISO country codes to their holiday rule sets.
var countryCalendars = map[string]*cal.Calendar{
	"US": newCalendar("US", us.Holidays),
	"GB": newCalendar("GB", gb.Holidays),
	"DE": newCalendar("DE", de.Holidays),
	"FR": newCalendar("FR", fr.Holidays),
	"CA": newCalendar("CA", ca.Holidays),
	// The au package ships per-region lists only; NSW covers the national set.
	"AU": newCalendar("AU", au.HolidaysNSW),
	"JP": newCalendar("JP", jp.Holidays),
}

func newCalendar(name string, holidays []*cal.Holiday) *cal.Calendar {
	c := &cal.Calendar{Name: name, Cacheable: true}
	c.AddHoliday(holidays...)
	return c
}

// Service answers weekend/holiday questions for date windows.
// It is stateless and safe for concurrent use.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// WeekendsAndHolidays flags every date in [start, end], both endpoints
// inclusive. An unknown countryCode yields ErrUnknownCountry together with an
// Info whose weekends are still populated and whose holidays are empty, so
// callers can always proceed.
func (s *Service) WeekendsAndHolidays(start, end types.Date, countryCode string) (Info, error) {
	info := Info{
		Weekends: make(map[types.Date]bool),
		Holidays: make(map[types.Date]string),
	}
	if end.Before(start) {
		start, end = end, start
	}

	rules, ok := countryCalendars[strings.ToUpper(strings.TrimSpace(countryCode))]

	for d := start; !d.After(end); d = d.AddDays(1) {
		t := d.Time()
		if cal.IsWeekend(t) {
			info.Weekends[d] = true
		}
		if rules == nil {
			continue
		}
		if actual, observed, h := rules.IsHoliday(t); (actual || observed) && h != nil {
			info.Holidays[d] = h.Name
		}
	}

	if !ok {
		return info, ErrUnknownCountry
	}
	return info, nil
}
