package monitor

import (
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

var _ LoadMonitor = (*SemaphoreLoadMonitor)(nil)

// SemaphoreLoadMonitor implements LoadMonitor with a weighted semaphore.
// Every prediction request holds one unit for its duration.
type SemaphoreLoadMonitor struct {
	sem       *semaphore.Weighted
	maxWeight int64
	inFlight  atomic.Int64
	threshold float64 // 0.0 - 1.0 share of capacity considered healthy
}

// NewSemaphoreLoadMonitor builds a monitor allowing maxConcurrency parallel
// requests. healthThreshold is the load share (0.0-1.0) above which the
// service reports unhealthy; out-of-range values are clamped.
func NewSemaphoreLoadMonitor(maxConcurrency int64, healthThreshold float64) *SemaphoreLoadMonitor {
	if healthThreshold < 0.0 {
		healthThreshold = 0.0
	}
	if healthThreshold > 1.0 {
		healthThreshold = 1.0
	}

	return &SemaphoreLoadMonitor{
		sem:       semaphore.NewWeighted(maxConcurrency),
		maxWeight: maxConcurrency,
		threshold: healthThreshold,
	}
}

func (m *SemaphoreLoadMonitor) GetMetrics() LoadMetrics {
	inFlight := m.inFlight.Load()
	loadPct := 0.0
	if m.maxWeight > 0 {
		loadPct = float64(inFlight) / float64(m.maxWeight) * 100.0
	}

	return LoadMetrics{
		InFlight:       inFlight,
		MaxInFlight:    m.maxWeight,
		LoadPercentage: loadPct,
	}
}

// CanAcceptRequest checks for a free slot without keeping it.
func (m *SemaphoreLoadMonitor) CanAcceptRequest() bool {
	if m.sem.TryAcquire(1) {
		m.sem.Release(1)
		return true
	}
	return false
}

func (m *SemaphoreLoadMonitor) IsHealthy() bool {
	load := m.GetMetrics().LoadPercentage / 100.0
	return load <= m.threshold
}

// TryAcquire takes a request slot. The caller MUST call Release() when the
// request completes.
func (m *SemaphoreLoadMonitor) TryAcquire() bool {
	if m.sem.TryAcquire(1) {
		m.inFlight.Add(1)
		return true
	}
	return false
}

func (m *SemaphoreLoadMonitor) Release() {
	m.inFlight.Add(-1)
	m.sem.Release(1)
}
