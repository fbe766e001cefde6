package domain

import (
	"context"
	"time"
)

// Component health states.
const (
	ComponentOK   = "ok"
	ComponentDown = "down"
)

// ComponentStatus is the health of one dependency.
type ComponentStatus struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

// HealthReport is the body of the detailed health endpoint.
type HealthReport struct {
	OK         bool                       `json:"ok"`
	Timestamp  time.Time                  `json:"timestamp"`
	Version    string                     `json:"version"`
	Components map[string]ComponentStatus `json:"components"`
}

// Pinger is anything whose reachability can be checked.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthService checks the application's dependencies.
type HealthService interface {
	Check(ctx context.Context) HealthReport
}
