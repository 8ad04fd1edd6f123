package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSemaphoreLoadMonitorAcquireRelease(t *testing.T) {
	m := NewSemaphoreLoadMonitor(2, 1.0)

	assert.True(t, m.TryAcquire())
	assert.True(t, m.TryAcquire())
	assert.False(t, m.TryAcquire(), "capacity exhausted")
	assert.False(t, m.CanAcceptRequest())

	metrics := m.GetMetrics()
	assert.Equal(t, int64(2), metrics.InFlight)
	assert.Equal(t, int64(2), metrics.MaxInFlight)
	assert.Equal(t, 100.0, metrics.LoadPercentage)

	m.Release()
	assert.True(t, m.CanAcceptRequest())
	assert.Equal(t, int64(1), m.GetMetrics().InFlight)

	m.Release()
	assert.Equal(t, int64(0), m.GetMetrics().InFlight)
}

func TestSemaphoreLoadMonitorCanAcceptDoesNotHoldSlot(t *testing.T) {
	m := NewSemaphoreLoadMonitor(1, 1.0)

	assert.True(t, m.CanAcceptRequest())
	assert.True(t, m.CanAcceptRequest(), "probing must not consume the slot")
	assert.True(t, m.TryAcquire())
	assert.False(t, m.CanAcceptRequest())
}

func TestSemaphoreLoadMonitorHealthThreshold(t *testing.T) {
	m := NewSemaphoreLoadMonitor(2, 0.5)

	assert.True(t, m.IsHealthy())

	assert.True(t, m.TryAcquire())
	// 1/2 = 50% load, exactly at the threshold.
	assert.True(t, m.IsHealthy())

	assert.True(t, m.TryAcquire())
	assert.False(t, m.IsHealthy())

	m.Release()
	m.Release()
	assert.True(t, m.IsHealthy())
}

func TestSemaphoreLoadMonitorThresholdClamped(t *testing.T) {
	low := NewSemaphoreLoadMonitor(1, -3)
	assert.True(t, low.IsHealthy(), "idle monitor is healthy even with threshold clamped to 0")
	assert.True(t, low.TryAcquire())
	assert.False(t, low.IsHealthy())

	high := NewSemaphoreLoadMonitor(1, 9)
	assert.True(t, high.TryAcquire())
	assert.True(t, high.IsHealthy(), "threshold clamps to 1.0, full load still healthy")
}
