package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process sliding window, used in tests and single node dev runs
type Memory struct {
	mu   sync.Mutex
	cfg  Config
	hits map[string][]time.Time
	now  func() time.Time

	// every sweepEvery calls, keys with no hit inside the window are dropped
	sweepEvery int
	calls      int
}

// NewMemory builds an empty in-process limiter
func NewMemory(cfg Config) *Memory {
	return &Memory{cfg: cfg.normalized(), hits: map[string][]time.Time{}, now: time.Now, sweepEvery: 128}
}

// Allow never fails
func (m *Memory) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	cutoff := now.Add(-m.cfg.Window)
	if m.calls++; m.calls >= m.sweepEvery {
		m.calls = 0
		m.sweep(cutoff)
	}
	kept := m.hits[key][:0]
	for _, t := range m.hits[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) >= m.cfg.Limit {
		m.hits[key] = kept
		return false, nil
	}
	m.hits[key] = append(kept, now)
	return true, nil
}

// sweep drops keys whose newest hit is outside the window
func (m *Memory) sweep(cutoff time.Time) {
	for k, ts := range m.hits {
		if len(ts) == 0 || !ts[len(ts)-1].After(cutoff) {
			delete(m.hits, k)
		}
	}
}
