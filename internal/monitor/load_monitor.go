package monitor

// LoadMetrics is a snapshot of in-flight inference pressure.
type LoadMetrics struct {
	// InFlight is the number of inference requests currently running.
	InFlight int64
	// MaxInFlight is the number of concurrent inference requests allowed.
	MaxInFlight int64
	// LoadPercentage is InFlight relative to MaxInFlight (0-100).
	LoadPercentage float64
}

// LoadMonitor tracks how loaded the prediction path is. It abstracts the
// tracking mechanism so the service and health check do not care whether a
// semaphore, a queue, or something else sits underneath.
type LoadMonitor interface {
	// GetMetrics returns the current load snapshot.
	GetMetrics() LoadMetrics

	// CanAcceptRequest reports whether a new request would get a slot right
	// now, without taking one.
	CanAcceptRequest() bool

	// IsHealthy reports whether load is below the configured threshold.
	IsHealthy() bool

	// TryAcquire attempts to take a request slot. The caller MUST call
	// Release() when the request completes.
	TryAcquire() bool

	// Release returns a slot taken by TryAcquire.
	Release()
}
