package server

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

const idleCheckInterval = 30 * time.Second

// IdleTracker tracks server activity and determines when the server is idle.
type IdleTracker struct {
	mu           sync.RWMutex
	clock        clockwork.Clock
	lastActivity time.Time
	idleTimeout  time.Duration
	shutdownChan chan struct{}
	stopChan     chan struct{}
	stopOnce     sync.Once
}

// NewIdleTracker creates a new idle tracker with the specified timeout.
// If timeout is 0, the tracker is disabled (never triggers shutdown).
// A nil clock means the real clock.
func NewIdleTracker(timeout time.Duration, clock clockwork.Clock) *IdleTracker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &IdleTracker{
		clock:        clock,
		lastActivity: clock.Now(),
		idleTimeout:  timeout,
		shutdownChan: make(chan struct{}),
		stopChan:     make(chan struct{}),
	}
}

// Touch updates the last activity time.
func (t *IdleTracker) Touch() {
	t.mu.Lock()
	t.lastActivity = t.clock.Now()
	t.mu.Unlock()
}

// IsEnabled returns true if idle timeout is enabled.
func (t *IdleTracker) IsEnabled() bool {
	return t.idleTimeout > 0
}

// ShutdownChan returns a channel that will be closed when idle timeout is reached.
func (t *IdleTracker) ShutdownChan() <-chan struct{} {
	return t.shutdownChan
}

// Start begins monitoring for idle timeout.
// This should be called in a goroutine.
func (t *IdleTracker) Start() {
	if !t.IsEnabled() {
		return
	}

	interval := min(idleCheckInterval, t.idleTimeout)

	ticker := t.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.stopChan:
			return
		case <-ticker.Chan():
			t.mu.RLock()
			idle := t.clock.Since(t.lastActivity)
			t.mu.RUnlock()

			if idle >= t.idleTimeout {
				close(t.shutdownChan)
				return
			}
		}
	}
}

// Stop stops the idle tracker.
func (t *IdleTracker) Stop() {
	t.stopOnce.Do(func() {
		close(t.stopChan)
	})
}

// IdleTimeout returns the configured idle timeout.
func (t *IdleTracker) IdleTimeout() time.Duration {
	return t.idleTimeout
}
