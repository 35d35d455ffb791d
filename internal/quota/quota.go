// Package quota meters question draws per user and calendar day.
//
// The tracker is the only component that touches its persistence store.
// Persistence failures never propagate to callers: reads fail to a zero
// count / non-premium default, writes are best-effort with an in-memory
// overlay that keeps the count consistent for the rest of the process
// lifetime.
package quota

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hansolyoo/cardtalk/internal/cardtalk"
)

// Clock supplies the current calendar day as an opaque comparable key.
type Clock interface {
	Today() string
}

// SystemClock keys days by the local date, matching the behaviour of the
// web client the quota was designed around.
type SystemClock struct{}

func (SystemClock) Today() string {
	return time.Now().Format("2006-01-02")
}

// Store is the persistence port for quota records and the premium flag.
// Implementations must return ErrNotFound-free zero values or an error;
// the tracker treats both missing data and errors as day-zero.
type Store interface {
	LoadQuota(ctx context.Context, userID string) (cardtalk.QuotaRecord, error)
	SaveQuota(ctx context.Context, userID string, rec cardtalk.QuotaRecord) error
	IsPremium(ctx context.Context, userID string) (bool, error)
	SetPremium(ctx context.Context, userID string, premium bool) error
}

// isStale reports whether a persisted record belongs to a prior day and
// must therefore read as count zero. The stale record itself is never
// mutated; it is superseded on the next write.
func isStale(rec cardtalk.QuotaRecord, today string) bool {
	return rec.Day != today
}

// Tracker meters draws for a single user. One logical owner per instance;
// the mutex only guards the best-effort overlay against the SSE goroutines
// that read counts for event payloads.
type Tracker struct {
	store  Store
	clock  Clock
	logger *slog.Logger
	userID string

	mu         sync.Mutex
	overlay    *cardtalk.QuotaRecord
	premiumMem bool
}

func NewTracker(store Store, clock Clock, logger *slog.Logger, userID string) *Tracker {
	return &Tracker{
		store:  store,
		clock:  clock,
		logger: logger,
		userID: userID,
	}
}

// CurrentCount returns the number of draws recorded today. A record from a
// prior day reads as zero without being rewritten; the reset is persisted
// lazily by the next RecordDraw.
func (t *Tracker) CurrentCount(ctx context.Context) int {
	today := t.clock.Today()

	t.mu.Lock()
	if t.overlay != nil && !isStale(*t.overlay, today) {
		count := t.overlay.Count
		t.mu.Unlock()
		return count
	}
	t.mu.Unlock()

	rec, err := t.store.LoadQuota(ctx, t.userID)
	if err != nil {
		t.logger.Warn("quota read failed, treating as zero", "user_id", t.userID, "error", err)
		return 0
	}
	if isStale(rec, today) {
		return 0
	}
	return rec.Count
}

// CanDraw reports whether another draw is allowed under the given limit.
// Premium users bypass the limit entirely.
func (t *Tracker) CanDraw(ctx context.Context, isPremium bool, dailyLimit int) bool {
	if isPremium {
		return true
	}
	return t.CurrentCount(ctx) < dailyLimit
}

// RecordDraw increments and persists today's count, returning the new
// value. The first draw of a new day always returns 1 regardless of any
// stale record. A failed write keeps the incremented count in memory so
// subsequent reads within this process stay consistent.
func (t *Tracker) RecordDraw(ctx context.Context) int {
	today := t.clock.Today()
	rec := cardtalk.QuotaRecord{Day: today, Count: t.CurrentCount(ctx) + 1}

	t.mu.Lock()
	t.overlay = &rec
	t.mu.Unlock()

	if err := t.store.SaveQuota(ctx, t.userID, rec); err != nil {
		t.logger.Warn("quota write failed, keeping count in memory", "user_id", t.userID, "error", err)
	}
	return rec.Count
}

// IsPremium reports the persisted premium flag, failing toward the
// conservative non-premium default on read errors. A flag set during this
// process lifetime is never silently cleared by a later read failure.
func (t *Tracker) IsPremium(ctx context.Context) bool {
	t.mu.Lock()
	mem := t.premiumMem
	t.mu.Unlock()
	if mem {
		return true
	}

	premium, err := t.store.IsPremium(ctx, t.userID)
	if err != nil {
		t.logger.Warn("premium read failed, treating as free tier", "user_id", t.userID, "error", err)
		return false
	}
	return premium
}

// SetPremium persists the premium flag. Best-effort: a failed write still
// applies for the remainder of the process lifetime.
func (t *Tracker) SetPremium(ctx context.Context, premium bool) {
	t.mu.Lock()
	if premium {
		t.premiumMem = true
	}
	t.mu.Unlock()

	if err := t.store.SetPremium(ctx, t.userID, premium); err != nil {
		t.logger.Warn("premium write failed, keeping flag in memory", "user_id", t.userID, "error", err)
	}
}
