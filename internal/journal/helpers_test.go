package journal

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"io.winapps.moodjournal/internal/kvstore"
	"io.winapps.moodjournal/internal/sentiment"
)

// fakeClock advances by step on every reading
type fakeClock struct {
	mu   sync.Mutex
	t    time.Time
	step time.Duration
}

func newFakeClock(start time.Time, step time.Duration) *fakeClock {
	return &fakeClock{t: start, step: step}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.t
	c.t = c.t.Add(c.step)
	return now
}

type staticClassifier struct {
	label sentiment.Label
	calls int
	texts []string
}

func (c *staticClassifier) Classify(_ context.Context, text string) sentiment.Label {
	c.calls++
	c.texts = append(c.texts, text)
	return c.label
}

// faultyKV wraps a memory store and fails the operations it is told to
type faultyKV struct {
	*kvstore.Memory
	getErr error
	setErr error
}

func (f *faultyKV) Get(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.Memory.Get(ctx, key)
}

func (f *faultyKV) Set(ctx context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.Memory.Set(ctx, key, value)
}

var errBackendDown = errors.New("backend down")

var testStart = time.Date(2026, time.October, 19, 9, 30, 0, 0, time.UTC)

func newTestStore(t *testing.T, kv kvstore.Store) *Store {
	t.Helper()
	clock := newFakeClock(testStart, time.Second)
	return NewStore(kv, zaptest.NewLogger(t).Sugar(), WithClock(clock.Now))
}
