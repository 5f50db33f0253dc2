// README: Search dispatch boundary; hands generated queries to the browser workers.
package search

import (
	"context"

	"tripscout/internal/modules/queryplan"
)

// Dispatcher hands a batch of well-formed date queries to the independent
// search-execution workers. Implementations must not mutate the batch.
type Dispatcher interface {
	Dispatch(ctx context.Context, sessionID string, queries []queryplan.DateQuery) error
}
