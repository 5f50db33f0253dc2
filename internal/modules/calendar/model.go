// README: Calendar info model (weekends and named holidays for a date window).
package calendar

import (
	"errors"

	"tripscout/internal/types"
)

// ErrUnknownCountry is returned when no holiday rules exist for a country code.
// The accompanying Info still carries weekends; holiday awareness is an
// optimization, never a precondition for date generation.
var ErrUnknownCountry = errors.New("unknown country code")

// Info holds weekend and holiday flags for every date in a window,
// both endpoints inclusive.
type Info struct {
	Weekends map[types.Date]bool
	Holidays map[types.Date]string
}

func (i Info) IsWeekend(d types.Date) bool {
	return i.Weekends[d]
}

func (i Info) HolidayName(d types.Date) (string, bool) {
	name, ok := i.Holidays[d]
	return name, ok
}
