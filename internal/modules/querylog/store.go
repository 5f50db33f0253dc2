// README: Query log store backed by PostgreSQL (audit trail of generated queries).
package querylog

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"tripscout/internal/modules/queryplan"
	"tripscout/internal/types"
)

// Store persists every generated date query for later inspection. Writes are
// best-effort from the orchestrator's point of view: a failed insert never
// fails a conversation turn.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

type Record struct {
	ID          int64
	SessionID   string
	Origin      string
	Destination string
	DepartDate  types.Date
	ReturnDate  types.Date
	Travelers   int
	Strategy    string
	CreatedAt   time.Time
}

func (s *Store) Append(ctx context.Context, sessionID, strategy string, queries []queryplan.DateQuery) error {
	now := time.Now()
	for _, q := range queries {
		_, err := s.db.Exec(ctx, `
            INSERT INTO query_log (
                session_id, origin, destination, depart_date, return_date,
                travelers, strategy, created_at
            ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			sessionID,
			q.Origin,
			q.Destination,
			q.DepartDate.Time(),
			q.ReturnDate.Time(),
			q.Travelers,
			strategy,
			now,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) ListBySession(ctx context.Context, sessionID string) ([]Record, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, session_id, origin, destination, depart_date, return_date,
               travelers, strategy, created_at
        FROM query_log
        WHERE session_id = $1
        ORDER BY id`, sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var depart, ret time.Time
		if err := rows.Scan(
			&r.ID, &r.SessionID, &r.Origin, &r.Destination, &depart, &ret,
			&r.Travelers, &r.Strategy, &r.CreatedAt,
		); err != nil {
			return nil, err
		}
		r.DepartDate = types.DateOf(depart)
		r.ReturnDate = types.DateOf(ret)
		out = append(out, r)
	}
	return out, rows.Err()
}
