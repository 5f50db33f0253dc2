// README: Conversation orchestrator; sequences oracle, merge, generation, and dispatch.
package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tripscout/internal/ai"
	"tripscout/internal/maps"
	"tripscout/internal/modules/intent"
	"tripscout/internal/modules/queryplan"
	"tripscout/internal/modules/search"
	"tripscout/internal/modules/session"
	"tripscout/internal/types"
)

// QueryLog records generated queries for later inspection. Optional.
type QueryLog interface {
	Append(ctx context.Context, sessionID, strategy string, queries []queryplan.DateQuery) error
}

// DestinationResolver normalizes free-text destinations. Optional.
type DestinationResolver interface {
	ResolveDestination(ctx context.Context, destination string) (maps.Place, error)
}

// Deps lists the orchestrator's collaborators. Store, Oracle, and Generator
// are required; the rest degrade gracefully to no-ops when nil.
type Deps struct {
	Store      session.Store
	Oracle     ai.Extractor
	Generator  *queryplan.Generator
	Dispatcher search.Dispatcher
	QueryLog   QueryLog
	Resolver   DestinationResolver
	Logger     *slog.Logger
	Now        func() time.Time
}

// Service sequences one conversation turn. It contains no slot-filling or
// generation logic of its own; it only coordinates the pure components around
// the session store's per-session exclusion.
type Service struct {
	store      session.Store
	oracle     ai.Extractor
	generator  *queryplan.Generator
	dispatcher search.Dispatcher
	querylog   QueryLog
	resolver   DestinationResolver
	logger     *slog.Logger
	now        func() time.Time
}

func NewService(deps Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		store:      deps.Store,
		oracle:     deps.Oracle,
		generator:  deps.Generator,
		dispatcher: deps.Dispatcher,
		querylog:   deps.QueryLog,
		resolver:   deps.Resolver,
		logger:     logger,
		now:        now,
	}
}

// ProcessMessage runs one turn: snapshot session, consult the oracle on the
// full transcript outside any session lock, then merge, regenerate, and
// persist under the session's exclusive lock.
//
// An unknown sessionID means "create new", never an error. An oracle failure
// degrades the turn (generic reply, intent preserved) rather than failing it.
func (s *Service) ProcessMessage(ctx context.Context, message, sessionID string) (Response, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Response{}, ErrBadRequest
	}

	snap, isNew, err := s.store.GetOrCreate(ctx, sessionID)
	if err != nil {
		return Response{}, fmt.Errorf("load session: %w", err)
	}
	if isNew {
		s.logger.Info("session created", "session_id", snap.ID)
	}

	today := types.DateOf(s.now())
	outcome := s.consultOracle(ctx, snap, message, today)

	// Places lookups are network calls; resolve the extracted destinations
	// here, before taking the session lock.
	if !outcome.Degraded {
		s.normalizeDestinations(ctx, &outcome.Result.Intent)
	}

	var (
		resp    Response
		newPlan *queryplan.Plan
	)
	err = s.store.With(ctx, snap.ID, func(sess *session.Session) error {
		turnAt := s.now()
		sess.AppendMessage("user", message, turnAt)

		var extracted *intent.TravelIntent
		if !outcome.Degraded {
			extracted = &outcome.Result.Intent
		}
		merged, missing, changed := intent.Merge(sess.Intent, extracted)
		sess.Intent = merged
		sess.Missing = missing

		switch {
		case !missing.CriticalComplete():
			if sess.QueriesGenerated {
				// A later merge reopened the critical tier; the stored queries
				// no longer reflect the intent and must not be surfaced.
				s.logger.Info("critical field reopened, discarding stale queries",
					"session_id", sess.ID, "missing", missing.Strings())
				sess.Queries = nil
				sess.QueriesGenerated = false
				sess.PlanExplanation = ""
			}
		case !sess.QueriesGenerated || len(changed) > 0:
			plan := s.generator.Generate(merged, today)
			sess.Queries = plan.Queries
			sess.QueriesGenerated = true
			sess.PlanExplanation = plan.Explanation
			newPlan = &plan
			if plan.Fallback != "" {
				s.logger.Warn("date generation degraded", "session_id", sess.ID, "reason", plan.Fallback)
			}
		}

		reply := s.buildReply(outcome, sess)
		sess.AppendMessage("assistant", reply, turnAt)

		resp = Response{
			Message:            reply,
			MissingInfo:        sess.Missing.Strings(),
			HasCompleteDetails: sess.Missing.CriticalComplete() && sess.QueriesGenerated,
			SearchQueries:      capQueries(sess.Queries),
			SessionID:          sess.ID,
		}
		return nil
	})
	if err != nil {
		return Response{}, fmt.Errorf("process turn: %w", err)
	}

	if newPlan != nil {
		s.handOff(ctx, resp.SessionID, newPlan)
	}
	return resp, nil
}

// Session returns a read-only snapshot for inspection endpoints.
func (s *Service) Session(ctx context.Context, id string) (*session.Session, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) consultOracle(ctx context.Context, snap *session.Session, message string, today types.Date) ai.ExtractOutcome {
	transcript := make([]ai.Turn, 0, len(snap.Transcript)+1)
	for _, m := range snap.Transcript {
		transcript = append(transcript, ai.Turn{Role: m.Role, Content: m.Content})
	}
	transcript = append(transcript, ai.Turn{Role: "user", Content: message})

	res, err := s.oracle.ExtractTravelIntent(ctx, transcript, today)
	if err != nil {
		s.logger.Warn("oracle failure, degrading turn", "session_id", snap.ID, "error", err)
		return ai.DegradedOutcome(err.Error())
	}
	return ai.Success(res)
}

func (s *Service) normalizeDestinations(ctx context.Context, ti *intent.TravelIntent) {
	if s.resolver == nil || len(ti.Destinations) == 0 {
		return
	}
	for i, dest := range ti.Destinations {
		place, err := s.resolver.ResolveDestination(ctx, dest)
		if err != nil {
			s.logger.Debug("destination resolution skipped", "destination", dest, "error", err)
			continue
		}
		if place.Name != "" {
			ti.Destinations[i] = place.Name
		}
	}
}

// handOff delivers a freshly generated plan to the search workers and the
// audit log. Both are best-effort; the turn has already committed.
func (s *Service) handOff(ctx context.Context, sessionID string, plan *queryplan.Plan) {
	if s.dispatcher != nil {
		if err := s.dispatcher.Dispatch(ctx, sessionID, plan.Queries); err != nil {
			s.logger.Warn("search dispatch failed", "session_id", sessionID, "error", err)
		}
	}
	if s.querylog != nil {
		if err := s.querylog.Append(ctx, sessionID, plan.Explanation, plan.Queries); err != nil {
			s.logger.Warn("query log append failed", "session_id", sessionID, "error", err)
		}
	}
}

func (s *Service) buildReply(outcome ai.ExtractOutcome, sess *session.Session) string {
	if outcome.Degraded {
		return "Sorry, I couldn't quite process that. Could you rephrase it for me?"
	}
	if reply := strings.TrimSpace(outcome.Result.Reply); reply != "" {
		return reply
	}
	return fallbackPrompt(sess)
}

// fallbackPrompt asks for the highest-priority missing field, or confirms the
// plan when nothing critical is missing. Used only when the oracle produced
// no reply of its own.
func fallbackPrompt(sess *session.Session) string {
	if len(sess.Missing.Critical) > 0 {
		switch sess.Missing.Critical[0] {
		case intent.FieldDestination:
			return "That sounds like a fun trip! Where were you thinking of traveling to?"
		case intent.FieldTravelDates:
			return "When would you like to go? A month or a rough date range is enough."
		default:
			return "How many days would you like the trip to be?"
		}
	}
	if sess.QueriesGenerated {
		return fmt.Sprintf("Great news! I've put together %d date options for your trip. %s",
			len(sess.Queries), sess.PlanExplanation)
	}
	return "Got it! Anything else I should know about your trip?"
}

// capQueries never returns nil so boundary responses encode [] rather than null.
func capQueries(queries []queryplan.DateQuery) []queryplan.DateQuery {
	if queries == nil {
		return []queryplan.DateQuery{}
	}
	if len(queries) <= responseQueryCap {
		return queries
	}
	return queries[:responseQueryCap]
}
