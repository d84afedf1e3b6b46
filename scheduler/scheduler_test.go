package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"samiratravel/models"
)

type fakePruner struct {
	mu       sync.Mutex
	lockouts int
	sessions int64
	err      error
	calls    int
}

func (f *fakePruner) Prune(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.lockouts, f.err
}

func (f *fakePruner) PruneExpired(ctx context.Context) (int64, error) {
	return f.sessions, nil
}

func (f *fakePruner) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeActivity struct {
	mu      sync.Mutex
	actions []string
}

func (f *fakeActivity) Log(ctx context.Context, adminUID, email, action, details string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions = append(f.actions, action)
}

func (f *fakeActivity) Recent(ctx context.Context, action string, limit int) ([]models.AdminActivityLog, error) {
	return nil, nil
}

func TestPruneSecurityState_LogsActivityWhenSomethingRemoved(t *testing.T) {
	pruner := &fakePruner{lockouts: 2, sessions: 1}
	activity := &fakeActivity{}
	s := New(pruner, pruner, activity, time.Hour)

	lockouts, sessions := s.PruneSecurityState(context.Background())
	assert.Equal(t, 2, lockouts)
	assert.Equal(t, int64(1), sessions)
	assert.Equal(t, []string{models.AdminActionPruneSecurity}, activity.actions)
}

func TestPruneSecurityState_NothingToRemove(t *testing.T) {
	pruner := &fakePruner{err: errors.New("bolt closed")}
	activity := &fakeActivity{}
	s := New(pruner, pruner, activity, 0)

	lockouts, sessions := s.PruneSecurityState(context.Background())
	assert.Zero(t, lockouts)
	assert.Zero(t, sessions)
	assert.Empty(t, activity.actions)
	assert.Equal(t, DefaultInterval, s.interval)
}

func TestStart_RunsImmediatelyAndOnTick(t *testing.T) {
	pruner := &fakePruner{}
	s := New(pruner, pruner, &fakeActivity{}, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	assert.Equal(t, 1, pruner.Calls())

	assert.Eventually(t, func() bool { return pruner.Calls() >= 3 }, time.Second, 5*time.Millisecond)
}
