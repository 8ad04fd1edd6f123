// Package health aggregates service health from the load monitor and the
// upstream inference service.
package health

import (
	"context"
	"time"

	"github.com/sentialab/go-sentiment-server/internal/monitor"
)

// Pinger checks that the upstream inference service answers. The classifier
// client satisfies it.
type Pinger interface {
	Health(ctx context.Context) error
}

// Status is one aggregated health snapshot.
type Status struct {
	Healthy    bool                `json:"healthy"`
	Components map[string]string   `json:"components"`
	Load       monitor.LoadMetrics `json:"-"`
}

// Checker combines both health inputs. The service reports unhealthy the
// moment the inference service is unreachable or load crosses the monitor's
// threshold, even while requests are still being accepted.
type Checker struct {
	loadMonitor monitor.LoadMonitor
	pinger      Pinger
	pingTimeout time.Duration
}

func NewChecker(loadMonitor monitor.LoadMonitor, pinger Pinger) *Checker {
	return &Checker{
		loadMonitor: loadMonitor,
		pinger:      pinger,
		pingTimeout: 2 * time.Second,
	}
}

// Check returns the full component breakdown.
func (c *Checker) Check(ctx context.Context) Status {
	components := make(map[string]string, 2)
	healthy := true

	if c.loadMonitor.IsHealthy() {
		components["load"] = "ok"
	} else {
		components["load"] = "overloaded"
		healthy = false
	}

	if err := c.pingUpstream(ctx); err != nil {
		components["inference"] = err.Error()
		healthy = false
	} else {
		components["inference"] = "ok"
	}

	return Status{
		Healthy:    healthy,
		Components: components,
		Load:       c.loadMonitor.GetMetrics(),
	}
}

// Ready checks only the upstream: the process can serve as soon as the
// inference service answers, regardless of momentary load.
func (c *Checker) Ready(ctx context.Context) error {
	return c.pingUpstream(ctx)
}

func (c *Checker) pingUpstream(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, c.pingTimeout)
	defer cancel()
	return c.pinger.Health(pingCtx)
}
