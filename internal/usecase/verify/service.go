package verify

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/lexord/internal/domain"
	domcorp "github.com/kailas-cloud/lexord/internal/domain/corpus"
	"github.com/kailas-cloud/lexord/internal/domain/corpus/field"
	domver "github.com/kailas-cloud/lexord/internal/domain/verification"
)

// Check names as they appear in reports.
const (
	CheckRoundTrip        = "round_trip"
	CheckLexicographic    = "lexicographic_order"
	CheckLexRange         = "oracle_lex_range"
	CheckNumericAgreement = "oracle_numeric_agreement"
	CheckSortedOrder      = "oracle_sorted_order"
)

const (
	// DefaultSamples is the random draw count when a run does not set one.
	DefaultSamples = 64
	// MaxSamples bounds a single run's random draw count.
	MaxSamples = 4096
	// DefaultSeed seeds sampling when a run does not set one.
	DefaultSeed = 1
	// randomIntervals is how many seeded-random probe intervals each
	// oracle check walks on top of the boundary intervals.
	randomIntervals = 8
)

// Options tunes a single verification run. Zero values select the service
// defaults; Field "" targets the corpus's first integer field, Seed 0
// selects the configured default seed.
type Options struct {
	Field   string
	Samples int
	Seed    int64
}

// Service proves the order-preservation contract of a corpus against the
// live oracle and caches the resulting report.
type Service struct {
	corpora     CorpusReader
	oracle      OracleReader
	reports     ReportCache
	codecFor    CodecFactory
	samples     int
	seed        int64
	runsTotal   *prometheus.CounterVec
	runDuration prometheus.Observer
}

// Option configures a Service.
type Option func(*Service)

// WithDefaultSamples overrides the default random draw count.
func WithDefaultSamples(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.samples = n
		}
	}
}

// WithDefaultSeed overrides the default sampling seed.
func WithDefaultSeed(seed int64) Option {
	return func(s *Service) {
		if seed != 0 {
			s.seed = seed
		}
	}
}

// WithRunsCounter wires a counter vec with label "status" counting
// completed runs. nil disables counting.
func WithRunsCounter(cv *prometheus.CounterVec) Option {
	return func(s *Service) { s.runsTotal = cv }
}

// WithRunDuration wires an observer recording run duration in seconds.
// nil disables the observation.
func WithRunDuration(o prometheus.Observer) Option {
	return func(s *Service) { s.runDuration = o }
}

// New creates a verification service.
func New(corpora CorpusReader, oracle OracleReader, reports ReportCache, codecFor CodecFactory, opts ...Option) *Service {
	s := &Service{
		corpora:  corpora,
		oracle:   oracle,
		reports:  reports,
		codecFor: codecFor,
		samples:  DefaultSamples,
		seed:     DefaultSeed,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes every check over the corpus's loaded documents and caches
// the report. The report fails when the oracle disagrees with the
// client-side ground truth; infrastructure errors fail the run itself.
func (s *Service) Run(ctx context.Context, corpusName string, opts Options) (domver.Report, error) {
	started := time.Now()

	c, err := s.corpora.Get(ctx, corpusName)
	if err != nil {
		return domver.Report{}, fmt.Errorf("get corpus: %w", err)
	}

	params := c.Codec()
	codec, err := s.codecFor(params.Width, params.Min, params.Max)
	if err != nil {
		return domver.Report{}, fmt.Errorf("corpus codec: %w", err)
	}

	fld, err := targetField(c, opts.Field)
	if err != nil {
		return domver.Report{}, err
	}

	samples := opts.Samples
	if samples <= 0 {
		samples = s.samples
	}
	if samples > MaxSamples {
		return domver.Report{}, fmt.Errorf("samples %d exceeds %d: %w", samples, MaxSamples, domain.ErrValidation)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = s.seed
	}

	// One generator drives both value sampling and interval probes, so a
	// (corpus, seed, samples) triple always replays the same run.
	rng := rand.New(rand.NewSource(seed))
	values := sampleValues(codec, samples, rng)

	checks := []domver.CheckResult{
		checkRoundTrip(codec, values),
		checkLexOrder(codec, values),
	}

	oracleChecks, err := s.runOracleChecks(ctx, c, fld.Name(), codec, rng)
	if err != nil {
		return domver.Report{}, err
	}
	checks = append(checks, oracleChecks...)

	rep := domver.New(corpusName, fld.Name(), seed, samples, started, time.Since(started), checks)

	if err := s.reports.Save(ctx, corpusName, rep); err != nil {
		return domver.Report{}, fmt.Errorf("save report: %w", err)
	}

	s.incRuns(string(rep.Status))
	if s.runDuration != nil {
		s.runDuration.Observe(rep.Duration.Seconds())
	}
	return rep, nil
}

// LastReport returns the corpus's cached verification report.
func (s *Service) LastReport(ctx context.Context, corpusName string) (domver.Report, error) {
	rep, err := s.reports.Last(ctx, corpusName)
	if err != nil {
		return domver.Report{}, fmt.Errorf("last report: %w", err)
	}
	return rep, nil
}

func (s *Service) runOracleChecks(
	ctx context.Context,
	c domcorp.Corpus,
	fieldName string,
	codec Codec,
	rng *rand.Rand,
) ([]domver.CheckResult, error) {
	members, err := s.oracle.LexMembers(ctx, c.Name(), fieldName)
	if err != nil {
		return nil, fmt.Errorf("lex members: %w", err)
	}

	intervals := buildIntervals(codec, rng)

	lexRange, err := s.checkLexRange(ctx, c.Name(), fieldName, codec, members, intervals)
	if err != nil {
		return nil, err
	}
	checks := []domver.CheckResult{lexRange}

	if c.NumericMirror() {
		agree, err := s.checkNumericAgreement(ctx, c.Name(), fieldName, codec, len(members), intervals)
		if err != nil {
			return nil, err
		}
		checks = append(checks, agree)
	}

	sorted, err := s.checkSortedOrder(ctx, c.Name(), fieldName, members)
	if err != nil {
		return nil, err
	}
	return append(checks, sorted), nil
}

func targetField(c domcorp.Corpus, name string) (field.Field, error) {
	if name != "" {
		f, ok := c.FieldByName(name)
		if !ok {
			return field.Field{}, fmt.Errorf("field %q: %w", name, domain.ErrUnknownField)
		}
		if f.FieldKind() != field.Integer {
			return field.Field{}, fmt.Errorf("field %q is %s, verification targets integer fields: %w",
				name, f.FieldKind(), domain.ErrValidation)
		}
		return f, nil
	}

	ints := c.IntegerFields()
	if len(ints) == 0 {
		return field.Field{}, fmt.Errorf("corpus %s has no integer fields: %w", c.Name(), domain.ErrValidation)
	}
	return ints[0], nil
}

func (s *Service) incRuns(status string) {
	if s.runsTotal != nil {
		s.runsTotal.WithLabelValues(status).Inc()
	}
}
