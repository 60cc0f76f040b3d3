// Package ratelimit implements a per-key sliding-window admission gate.
package ratelimit

import (
	"sync"
	"time"
)

// Result is a single admission decision.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter int // seconds until a slot frees, set only on denial
}

// SlidingWindow admits at most limit requests per key within any trailing
// window. It is a true sliding window over recorded timestamps, not a fixed
// bucket, so the retry hint derived from the oldest timestamp is exact up to
// integer rounding. The registry is guarded by one mutex; per-key locks are
// not worth the complexity at this client diversity.
type SlidingWindow struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	windows map[string][]time.Time
	done    chan struct{}
}

func New(limit int, window time.Duration) *SlidingWindow {
	if limit <= 0 {
		limit = 60
	}
	if window <= 0 {
		window = time.Minute
	}
	return &SlidingWindow{
		limit:   limit,
		window:  window,
		windows: make(map[string][]time.Time),
		done:    make(chan struct{}),
	}
}

// Limit returns the per-window capacity.
func (l *SlidingWindow) Limit() int { return l.limit }

// Allow evicts expired timestamps for key, then records and admits the
// request unless the window is already full. An unseen key has zero prior
// requests. Never fails.
func (l *SlidingWindow) Allow(key string, now time.Time) Result {
	if key == "" {
		key = "unknown"
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	q := l.windows[key]
	cutoff := now.Add(-l.window)
	i := 0
	for i < len(q) && q[i].Before(cutoff) {
		i++
	}
	q = q[i:]

	if len(q) >= l.limit {
		l.windows[key] = q
		retry := int(l.window.Seconds()-now.Sub(q[0]).Seconds()) + 1
		if retry < 1 {
			retry = 1
		}
		return Result{Allowed: false, Limit: l.limit, RetryAfter: retry}
	}

	q = append(q, now)
	l.windows[key] = q
	remaining := l.limit - len(q)
	if remaining < 0 {
		remaining = 0
	}
	return Result{Allowed: true, Limit: l.limit, Remaining: remaining}
}

// StartSweeper launches a janitor that periodically drops keys whose windows
// have fully drained, so the key set stays bounded under client churn. The
// returned func stops the janitor.
func (l *SlidingWindow) StartSweeper(interval time.Duration) func() {
	if interval <= 0 {
		interval = l.window
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-l.done:
				return
			case now := <-ticker.C:
				l.Sweep(now)
			}
		}
	}()
	var once sync.Once
	return func() { once.Do(func() { close(l.done) }) }
}

// Sweep removes expired timestamps everywhere and deletes drained keys.
func (l *SlidingWindow) Sweep(now time.Time) {
	cutoff := now.Add(-l.window)
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, q := range l.windows {
		i := 0
		for i < len(q) && q[i].Before(cutoff) {
			i++
		}
		switch {
		case i == len(q):
			delete(l.windows, key)
		case i > 0:
			l.windows[key] = q[i:]
		}
	}
}

// Keys reports how many client keys are currently tracked.
func (l *SlidingWindow) Keys() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}
