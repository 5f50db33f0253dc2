// README: Date query model; one concrete, executable search request.
package queryplan

import (
	"tripscout/internal/types"
)

// DateQuery is a single date-bounded search request for the downstream
// search workers. DepartDate < ReturnDate always holds by construction.
type DateQuery struct {
	Origin            string     `json:"origin"`
	Destination       string     `json:"destination"`
	DepartDate        types.Date `json:"depart_date"`
	ReturnDate        types.Date `json:"return_date"`
	Budget            *float64   `json:"budget,omitempty"`
	Travelers         int        `json:"travelers"`
	MaxStops          *int       `json:"max_stops,omitempty"`
	PreferredAirlines []string   `json:"preferred_airlines,omitempty"`
}

// Plan is the generator's output: the ordered query list plus a short
// human-readable description of the strategy used. Explanation and Fallback
// are informational only and never drive control flow.
type Plan struct {
	Queries     []DateQuery `json:"queries"`
	Explanation string      `json:"explanation"`
	// Fallback names the reason a temporal hint was discarded, empty otherwise.
	Fallback string `json:"fallback,omitempty"`
}
