// README: Intent merge engine; folds a noisy partial extraction into the known intent.
package intent

// Merge folds extracted into current and recomputes the missing-field set.
//
// Per-field rule: the extracted value is adopted iff it is non-zero/non-empty
// and differs from the current value. Extraction wins on conflict, never
// blended. List fields are replaced wholesale so repeated re-extraction of the
// same utterance cannot grow them without bound.
//
// Merge must remain callable with extracted == nil (oracle failure): the
// current intent passes through untouched and the missing set is simply
// recomputed, so a failed turn can never corrupt or deadlock a conversation.
//
// The returned FieldIDs name the fields a merge actually changed; callers use
// them to decide whether previously generated queries are stale.
func Merge(current TravelIntent, extracted *TravelIntent) (TravelIntent, MissingFieldSet, []FieldID) {
	if extracted == nil {
		return current, ComputeMissing(current), nil
	}

	merged := current
	var changed []FieldID

	if extracted.Origin != "" && extracted.Origin != merged.Origin {
		merged.Origin = extracted.Origin
		changed = append(changed, FieldOrigin)
	}
	if len(extracted.Destinations) > 0 && !equalStrings(extracted.Destinations, merged.Destinations) {
		merged.Destinations = append([]string(nil), extracted.Destinations...)
		changed = append(changed, FieldDestination)
	}
	if extracted.Budget != nil && *extracted.Budget >= 0 &&
		(merged.Budget == nil || *merged.Budget != *extracted.Budget) {
		v := *extracted.Budget
		merged.Budget = &v
		changed = append(changed, FieldBudget)
	}
	if extracted.TripLengthDays > 0 && extracted.TripLengthDays != merged.TripLengthDays {
		merged.TripLengthDays = extracted.TripLengthDays
		changed = append(changed, FieldTripLength)
	}

	datesChanged := false
	if !extracted.EarliestStart.IsZero() && extracted.EarliestStart != merged.EarliestStart {
		merged.EarliestStart = extracted.EarliestStart
		datesChanged = true
	}
	if !extracted.LatestStart.IsZero() && extracted.LatestStart != merged.LatestStart {
		merged.LatestStart = extracted.LatestStart
		datesChanged = true
	}
	// Invariant: latestStart >= earliestStart when both present. A noisy
	// extraction that inverts the range loses its latest bound.
	if !merged.LatestStart.IsZero() && !merged.EarliestStart.IsZero() &&
		merged.LatestStart.Before(merged.EarliestStart) {
		merged.LatestStart = merged.EarliestStart
	}
	if extracted.SpecificMonth != "" && extracted.SpecificMonth != merged.SpecificMonth {
		merged.SpecificMonth = extracted.SpecificMonth
		datesChanged = true
	}
	if extracted.FlexibleDates && !merged.FlexibleDates {
		merged.FlexibleDates = true
		datesChanged = true
	}
	if datesChanged {
		changed = append(changed, FieldTravelDates)
	}

	if extracted.Travelers > 0 && extracted.Travelers != merged.Travelers {
		merged.Travelers = extracted.Travelers
		changed = append(changed, FieldTravelers)
	}

	prefsChanged := false
	if len(extracted.PreferredAirlines) > 0 && !equalStrings(extracted.PreferredAirlines, merged.PreferredAirlines) {
		merged.PreferredAirlines = append([]string(nil), extracted.PreferredAirlines...)
		prefsChanged = true
	}
	if extracted.MaxStops != nil && *extracted.MaxStops >= 0 &&
		(merged.MaxStops == nil || *merged.MaxStops != *extracted.MaxStops) {
		v := *extracted.MaxStops
		merged.MaxStops = &v
		prefsChanged = true
	}
	if prefsChanged {
		changed = append(changed, FieldPreferences)
	}

	return merged, ComputeMissing(merged), changed
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
