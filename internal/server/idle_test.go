package server

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestIdleTracker_Disabled(t *testing.T) {
	tracker := NewIdleTracker(0, nil)

	assert.False(t, tracker.IsEnabled())

	// Start returns immediately when disabled
	tracker.Start()
	tracker.Stop()
}

func TestIdleTracker_ShutsDownWhenIdle(t *testing.T) {
	clock := clockwork.NewFakeClock()
	tracker := NewIdleTracker(time.Minute, clock)

	go tracker.Start()
	defer tracker.Stop()

	assert.NoError(t, clock.BlockUntilContext(t.Context(), 1))
	clock.Advance(30 * time.Second)
	clock.Advance(30 * time.Second)

	select {
	case <-tracker.ShutdownChan():
	case <-time.After(5 * time.Second):
		t.Fatal("expected idle shutdown")
	}
}

func TestIdleTracker_TouchDefersShutdown(t *testing.T) {
	clock := clockwork.NewFakeClock()
	tracker := NewIdleTracker(time.Minute, clock)

	go tracker.Start()
	defer tracker.Stop()

	assert.NoError(t, clock.BlockUntilContext(t.Context(), 1))
	clock.Advance(45 * time.Second)
	tracker.Touch()
	clock.Advance(30 * time.Second)

	select {
	case <-tracker.ShutdownChan():
		t.Fatal("shutdown despite recent activity")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestIdleTracker_StopIsIdempotent(t *testing.T) {
	tracker := NewIdleTracker(time.Minute, clockwork.NewFakeClock())

	tracker.Stop()
	tracker.Stop()

	assert.Equal(t, time.Minute, tracker.IdleTimeout())
}
