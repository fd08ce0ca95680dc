package health

import "context"

// Status represents the aggregated readiness status.
type Status string

const (
	// Healthy indicates all probes passed.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual probe outcome.
type CheckResult string

const (
	// CheckOK indicates a passing probe.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing probe.
	CheckError CheckResult = "error"
)

// Report aggregates probe results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// probeIndex is a name that needn't exist; asking for it still proves the
// search module is loaded and answering.
const probeIndex = "health-probe"

// Service coordinates oracle readiness probes.
type Service struct {
	oracle OraclePinger
	search SearchChecker
}

// New creates a Service. search can be nil when range queries run without
// the search module.
func New(oracle OraclePinger, search SearchChecker) *Service {
	return &Service{oracle: oracle, search: search}
}

// Check runs readiness probes against the oracle.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.oracle.Ping(ctx); err != nil {
		checks["oracle"] = CheckError
	} else {
		checks["oracle"] = CheckOK
	}

	if s.search != nil {
		if _, err := s.search.IndexExists(ctx, probeIndex); err != nil {
			checks["search"] = CheckError
		} else {
			checks["search"] = CheckOK
		}
	}

	failed := 0
	for _, v := range checks {
		if v == CheckError {
			failed++
		}
	}

	status := Healthy
	switch {
	case failed == len(checks):
		status = Unhealthy
	case failed > 0:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}
