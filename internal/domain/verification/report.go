package verification

import "time"

// Status is the aggregate outcome of a verification run.
type Status string

// Verification run status values.
const (
	StatusOK     Status = "ok"
	StatusFailed Status = "failed"
)

// CheckResult is the outcome of one verification check. Observed and
// Expected are human-readable summaries; Detail describes the first
// disagreement when the check failed.
type CheckResult struct {
	Name     string
	Passed   bool
	Observed string
	Expected string
	Detail   string
}

// Report aggregates one verification run over a corpus field.
type Report struct {
	Corpus    string
	Field     string
	Status    Status
	Checks    []CheckResult
	Seed      int64
	Samples   int
	StartedAt time.Time
	Duration  time.Duration
}

// New assembles a report, deriving Status from the checks.
func New(
	corpus, fieldName string,
	seed int64,
	samples int,
	startedAt time.Time,
	duration time.Duration,
	checks []CheckResult,
) Report {
	status := StatusOK
	for _, c := range checks {
		if !c.Passed {
			status = StatusFailed
			break
		}
	}
	return Report{
		Corpus:    corpus,
		Field:     fieldName,
		Status:    status,
		Checks:    checks,
		Seed:      seed,
		Samples:   samples,
		StartedAt: startedAt,
		Duration:  duration,
	}
}

// Passed reports whether every check passed.
func (r Report) Passed() bool { return r.Status == StatusOK }
