package ratelimit

import (
	"context"
	"time"

	"chirp/internal/platform/logger"
	"chirp/internal/platform/store"
)

// EventsTable receives one row per limiter decision
const EventsTable = "ratelimit_events"

const eventsDDL = `CREATE TABLE IF NOT EXISTS ` + EventsTable + ` (
  ts        DateTime64(3, 'UTC'),
  key       String,
  allowed   UInt8,
  lim       UInt16,
  window_ms UInt32
) ENGINE = MergeTree
ORDER BY (key, ts)
TTL toDateTime(ts) + INTERVAL 30 DAY`

// EnsureEventsTable creates the decisions table if needed
func EnsureEventsTable(ctx context.Context, chc store.Clickhouse) error {
	return chc.Exec(ctx, eventsDDL)
}

// recorded forwards to next and records each decision it made
type recorded struct {
	next Limiter
	ch   store.Clickhouse
	cfg  Config
	now  func() time.Time
}

// WithEvents records decisions of next to clickhouse. Recording failures are
// logged and never change the decision
func WithEvents(next Limiter, chc store.Clickhouse, cfg Config) Limiter {
	return &recorded{next: next, ch: chc, cfg: cfg.normalized(), now: time.Now}
}

func (r *recorded) Allow(ctx context.Context, key string) (bool, error) {
	ok, err := r.next.Allow(ctx, key)
	if err != nil {
		return ok, err
	}
	var allowed uint8
	if ok {
		allowed = 1
	}
	row := []any{r.now().UTC(), key, allowed, uint16(r.cfg.Limit), uint32(r.cfg.Window.Milliseconds())}
	if ierr := r.ch.Insert(ctx, EventsTable, [][]any{row}); ierr != nil {
		logger.C(ctx).Warn().Err(ierr).Str("key", key).Msg("ratelimit event not recorded")
	}
	return ok, nil
}
