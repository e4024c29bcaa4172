package engine

import (
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/mombot/mom/internal/items"
	"github.com/mombot/mom/internal/registry"
	"github.com/mombot/mom/internal/store"
	"github.com/mombot/mom/internal/text"
)

// DefaultRewardLineLimit caps how many lines a reward text may span.
// Rewards are rendered line by line into chat, so an unbounded reward
// would let an author spam every solver.
const DefaultRewardLineLimit = 10

// DefaultDelimiter separates clauses in an item-list answer.
const DefaultDelimiter = ","

// Engine handles the chat front end's requests against one registry and
// one read-only item dictionary.
//
// All registry mutations go through the registry's own mutual-exclusion
// boundary; one inbound chat event is fully processed before the next as
// long as the hosting front end dispatches sequentially, and the registry
// stays correct even if it does not.
type Engine struct {
	registry *registry.Registry
	dict     *items.Dictionary
	audit    *store.Store // optional
	clock    Clock
	validate *validator.Validate

	delimiter       string
	rewardLineLimit int
}

// Option configures an Engine.
type Option func(*Engine)

// WithAudit attaches the audit log. Audit writes are best-effort: a failed
// append is logged and never fails the request being handled.
func WithAudit(s *store.Store) Option {
	return func(e *Engine) { e.audit = s }
}

// WithClock overrides the solve-timestamp clock. Used by tests.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithDelimiter overrides the item-list clause delimiter.
func WithDelimiter(d string) Option {
	return func(e *Engine) { e.delimiter = d }
}

// WithRewardLineLimit overrides the reward text line cap.
func WithRewardLineLimit(n int) Option {
	return func(e *Engine) { e.rewardLineLimit = n }
}

// New creates an engine over a registry and item dictionary.
func New(reg *registry.Registry, dict *items.Dictionary, opts ...Option) *Engine {
	e := &Engine{
		registry:        reg,
		dict:            dict,
		clock:           SystemClock{},
		validate:        validator.New(),
		delimiter:       DefaultDelimiter,
		rewardLineLimit: DefaultRewardLineLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// recordAudit appends an audit row if an audit log is attached.
// Best-effort: failures are logged, never propagated. The registry
// snapshot, not the audit log, is the source of truth.
func (e *Engine) recordAudit(ctx context.Context, event, actorID, puzzleName, detail string) {
	if e.audit == nil {
		return
	}

	ev := store.AuditEvent{
		OccurredAt: e.clock.Now(),
		Event:      event,
		ActorID:    actorID,
		PuzzleRef:  text.Fingerprint(puzzleName),
		Detail:     detail,
	}
	if err := e.audit.Append(ctx, ev); err != nil {
		slog.Error("audit append failed", "event", event, "error", err)
	}
}
