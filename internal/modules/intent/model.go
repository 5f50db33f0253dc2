// README: Travel intent aggregate, field identifiers, and missing-field classification.
package intent

import (
	"tripscout/internal/types"
)

// TravelIntent is the accumulated best-known understanding of a trip request.
// Zero values mean "not yet known" except where noted.
type TravelIntent struct {
	Origin            string     `json:"origin,omitempty"`
	Destinations      []string   `json:"destinations,omitempty"`
	Budget            *float64   `json:"budget,omitempty"`
	TripLengthDays    int        `json:"trip_length_days,omitempty"`
	EarliestStart     types.Date `json:"earliest_start,omitempty"`
	LatestStart       types.Date `json:"latest_start,omitempty"`
	SpecificMonth     string     `json:"specific_month,omitempty"`
	FlexibleDates     bool       `json:"flexible_dates,omitempty"`
	Travelers         int        `json:"travelers,omitempty"`
	PreferredAirlines []string   `json:"preferred_airlines,omitempty"`
	MaxStops          *int       `json:"max_stops,omitempty"`
}

// HasTemporalConstraint reports whether any usable timeframe is known: a named
// month, an explicit earliest start, or a flexible timeframe anchored to a month.
func (ti TravelIntent) HasTemporalConstraint() bool {
	if ti.SpecificMonth != "" {
		return true
	}
	if !ti.EarliestStart.IsZero() {
		return true
	}
	return false
}

// TravelersOrDefault applies the default party size of 1.
func (ti TravelIntent) TravelersOrDefault() int {
	if ti.Travelers > 0 {
		return ti.Travelers
	}
	return 1
}

// FieldID is a closed enumeration of intent field identifiers. Missing-field
// classification is a total function over these, never a string membership test.
type FieldID string

const (
	FieldDestination FieldID = "destination"
	FieldTravelDates FieldID = "travel_dates"
	FieldTripLength  FieldID = "trip_length_days"
	FieldOrigin      FieldID = "origin"
	FieldBudget      FieldID = "budget"
	FieldTravelers   FieldID = "travelers"
	// FieldPreferences covers airline/stop/flexibility refinements. It is never
	// reported missing; it only identifies preference changes to merge callers.
	FieldPreferences FieldID = "preferences"
)

// Tier order is fixed: it determines both question priority and the order of
// identifiers in boundary responses.
var (
	criticalOrder = []FieldID{FieldDestination, FieldTravelDates, FieldTripLength}
	optionalOrder = []FieldID{FieldOrigin, FieldBudget, FieldTravelers}
)

// MissingFieldSet partitions still-required fields into priority tiers.
// It is always recomputed from a TravelIntent, never patched in place.
type MissingFieldSet struct {
	Critical []FieldID `json:"critical"`
	Optional []FieldID `json:"optional"`
}

// CriticalComplete reports whether a search can be generated at all.
func (m MissingFieldSet) CriticalComplete() bool {
	return len(m.Critical) == 0
}

func (m MissingFieldSet) Contains(f FieldID) bool {
	for _, c := range m.Critical {
		if c == f {
			return true
		}
	}
	for _, o := range m.Optional {
		if o == f {
			return true
		}
	}
	return false
}

// Strings flattens the set, critical tier first, for boundary responses.
func (m MissingFieldSet) Strings() []string {
	out := make([]string, 0, len(m.Critical)+len(m.Optional))
	for _, f := range m.Critical {
		out = append(out, string(f))
	}
	for _, f := range m.Optional {
		out = append(out, string(f))
	}
	return out
}

// ComputeMissing derives the missing-field set from an intent. Pure function;
// the set stored on a session is a cache of this function's last output.
func ComputeMissing(ti TravelIntent) MissingFieldSet {
	var m MissingFieldSet
	for _, f := range criticalOrder {
		if !fieldSatisfied(ti, f) {
			m.Critical = append(m.Critical, f)
		}
	}
	for _, f := range optionalOrder {
		if !fieldSatisfied(ti, f) {
			m.Optional = append(m.Optional, f)
		}
	}
	return m
}

func fieldSatisfied(ti TravelIntent, f FieldID) bool {
	switch f {
	case FieldDestination:
		return len(ti.Destinations) > 0
	case FieldTravelDates:
		return ti.HasTemporalConstraint()
	case FieldTripLength:
		return ti.TripLengthDays > 0
	case FieldOrigin:
		return ti.Origin != ""
	case FieldBudget:
		return ti.Budget != nil
	case FieldTravelers:
		return ti.Travelers > 0
	default:
		return true
	}
}
