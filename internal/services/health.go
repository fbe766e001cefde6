package services

import (
	"context"
	"time"

	"lawflow/internal/domain"
)

type healthService struct {
	db      domain.Pinger
	cache   domain.Cache
	version string
	timeout time.Duration
	now     func() time.Time
}

// NewHealthService checks db and, when non-nil, cache.
func NewHealthService(db domain.Pinger, cache domain.Cache, version string, timeout time.Duration) domain.HealthService {
	return &healthService{db: db, cache: cache, version: version, timeout: timeout, now: time.Now}
}

func (s *healthService) Check(ctx context.Context) domain.HealthReport {
	report := domain.HealthReport{
		OK:         true,
		Timestamp:  s.now().UTC(),
		Version:    s.version,
		Components: map[string]domain.ComponentStatus{},
	}
	report.Components["database"] = s.probe(ctx, s.db.PingContext)
	if s.cache != nil {
		report.Components["cache"] = s.probe(ctx, s.cache.Ping)
	}
	for _, c := range report.Components {
		if c.Status != domain.ComponentOK {
			report.OK = false
		}
	}
	return report
}

func (s *healthService) probe(ctx context.Context, ping func(context.Context) error) domain.ComponentStatus {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	err := ping(ctx)
	st := domain.ComponentStatus{Status: domain.ComponentOK, LatencyMS: time.Since(start).Milliseconds()}
	if err != nil {
		st.Status = domain.ComponentDown
		st.Error = err.Error()
	}
	return st
}
