package report

import (
	"time"

	domver "github.com/kailas-cloud/lexord/internal/domain/verification"
)

type checkRow struct {
	Name     string `json:"name"`
	Passed   bool   `json:"passed"`
	Observed string `json:"observed,omitempty"`
	Expected string `json:"expected,omitempty"`
	Detail   string `json:"detail,omitempty"`
}

type reportRow struct {
	Corpus     string     `json:"corpus"`
	Field      string     `json:"field"`
	Status     string     `json:"status"`
	Checks     []checkRow `json:"checks"`
	Seed       int64      `json:"seed"`
	Samples    int        `json:"samples"`
	StartedAt  int64      `json:"started_at"`
	DurationMS int64      `json:"duration_ms"`
}

func reportToRow(rep domver.Report) reportRow {
	checks := make([]checkRow, 0, len(rep.Checks))
	for _, c := range rep.Checks {
		checks = append(checks, checkRow{
			Name:     c.Name,
			Passed:   c.Passed,
			Observed: c.Observed,
			Expected: c.Expected,
			Detail:   c.Detail,
		})
	}
	return reportRow{
		Corpus:     rep.Corpus,
		Field:      rep.Field,
		Status:     string(rep.Status),
		Checks:     checks,
		Seed:       rep.Seed,
		Samples:    rep.Samples,
		StartedAt:  rep.StartedAt.UnixMilli(),
		DurationMS: rep.Duration.Milliseconds(),
	}
}

func (row reportRow) toDomain() domver.Report {
	checks := make([]domver.CheckResult, 0, len(row.Checks))
	for _, c := range row.Checks {
		checks = append(checks, domver.CheckResult{
			Name:     c.Name,
			Passed:   c.Passed,
			Observed: c.Observed,
			Expected: c.Expected,
			Detail:   c.Detail,
		})
	}
	return domver.Report{
		Corpus:    row.Corpus,
		Field:     row.Field,
		Status:    domver.Status(row.Status),
		Checks:    checks,
		Seed:      row.Seed,
		Samples:   row.Samples,
		StartedAt: time.UnixMilli(row.StartedAt).UTC(),
		Duration:  time.Duration(row.DurationMS) * time.Millisecond,
	}
}
