// Package limiter throttles admin sign-in attempts per client scope.
//
// It is a UX deterrent, not an authentication control: the scope key comes
// from the caller and a client can reset it by changing address or header.
package limiter

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Defaults applied when a Limiter is built with zero values.
const (
	DefaultAttemptLimit  = 3
	DefaultBlockDuration = 7 * 24 * time.Hour
)

// ErrCorruptState is returned by stores when a persisted record cannot be decoded.
var ErrCorruptState = errors.New("corrupt login security state")

// State persisted record for one client scope.
type State struct {
	Attempts   int   `json:"attempts"`
	BlockUntil int64 `json:"blockUntil,omitempty"` // unix millis, 0 when not blocked
}

// BlockedAt reports whether the state carries a lockout still active at now.
func (s State) BlockedAt(now time.Time) bool {
	return s.BlockUntil > 0 && now.UnixMilli() < s.BlockUntil
}

// Expired reports whether the state carries a lockout that has passed.
func (s State) Expired(now time.Time) bool {
	return s.BlockUntil > 0 && now.UnixMilli() >= s.BlockUntil
}

// Store persists limiter state by client scope key.
type Store interface {
	Get(ctx context.Context, key string) (State, bool, error)
	Set(ctx context.Context, key string, state State) error
	Clear(ctx context.Context, key string) error
	// Prune removes lockouts that expired before now and returns how many were removed.
	Prune(ctx context.Context, now time.Time) (int, error)
}

// Status view of a client scope returned to callers.
type Status struct {
	Blocked           bool
	BlockedUntil      time.Time
	RemainingAttempts int
}

// Limiter counts failed attempts and blocks a scope once the limit is reached.
type Limiter struct {
	store    Store
	limit    int
	duration time.Duration
	now      func() time.Time
	mu       sync.Mutex
}

// New creates a limiter. Non-positive limit or duration fall back to the defaults.
func New(store Store, limit int, duration time.Duration) *Limiter {
	if limit <= 0 {
		limit = DefaultAttemptLimit
	}
	if duration <= 0 {
		duration = DefaultBlockDuration
	}
	return &Limiter{store: store, limit: limit, duration: duration, now: time.Now}
}

// Limit configured attempt limit
func (l *Limiter) Limit() int {
	return l.limit
}

// load reads the state for key, clearing it when corrupt or when its lockout expired.
func (l *Limiter) load(ctx context.Context, key string) (State, error) {
	state, ok, err := l.store.Get(ctx, key)
	if errors.Is(err, ErrCorruptState) {
		return State{}, l.store.Clear(ctx, key)
	}
	if err != nil {
		return State{}, fmt.Errorf("read limiter state: %w", err)
	}
	if !ok {
		return State{}, nil
	}
	if state.Expired(l.now()) {
		return State{}, l.store.Clear(ctx, key)
	}
	return state, nil
}

func (l *Limiter) statusOf(state State) Status {
	if state.BlockedAt(l.now()) {
		return Status{Blocked: true, BlockedUntil: time.UnixMilli(state.BlockUntil)}
	}
	remaining := l.limit - state.Attempts
	if remaining < 0 {
		remaining = 0
	}
	return Status{RemainingAttempts: remaining}
}

// Status returns the current lockout state and remaining attempts for key.
func (l *Limiter) Status(ctx context.Context, key string) (Status, error) {
	state, err := l.load(ctx, key)
	if err != nil {
		return Status{}, err
	}
	return l.statusOf(state), nil
}

// RecordFailure counts a failed attempt. A failure while blocked changes nothing.
func (l *Limiter) RecordFailure(ctx context.Context, key string) (Status, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	state, err := l.load(ctx, key)
	if err != nil {
		return Status{}, err
	}
	if state.BlockedAt(l.now()) {
		return l.statusOf(state), nil
	}

	state.Attempts++
	if state.Attempts >= l.limit {
		state.BlockUntil = l.now().Add(l.duration).UnixMilli()
	}
	if err := l.store.Set(ctx, key, state); err != nil {
		return Status{}, fmt.Errorf("write limiter state: %w", err)
	}
	return l.statusOf(state), nil
}

// Reset clears the state for key after a successful sign-in.
func (l *Limiter) Reset(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.Clear(ctx, key)
}

// Prune drops expired lockouts from the store.
func (l *Limiter) Prune(ctx context.Context) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.Prune(ctx, l.now())
}
