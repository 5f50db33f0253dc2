// README: Boundary response model for one conversation turn.
package conversation

import (
	"errors"

	"tripscout/internal/modules/queryplan"
)

var ErrBadRequest = errors.New("bad request")

// responseQueryCap bounds how many queries one turn surfaces to the caller;
// the session keeps the full generated set.
const responseQueryCap = 5

// Response is the contract external callers rely on for one processed turn.
type Response struct {
	Message            string                `json:"message"`
	MissingInfo        []string              `json:"missing_info"`
	HasCompleteDetails bool                  `json:"has_complete_details"`
	SearchQueries      []queryplan.DateQuery `json:"search_queries"`
	SessionID          string                `json:"session_id"`
}
