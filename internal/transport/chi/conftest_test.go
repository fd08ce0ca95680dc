package chi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/kailas-cloud/lexord"
	domcorp "github.com/kailas-cloud/lexord/internal/domain/corpus"
	"github.com/kailas-cloud/lexord/internal/domain/corpus/field"
	domdoc "github.com/kailas-cloud/lexord/internal/domain/document"
	domver "github.com/kailas-cloud/lexord/internal/domain/verification"
	corpusuc "github.com/kailas-cloud/lexord/internal/usecase/corpus"
	healthuc "github.com/kailas-cloud/lexord/internal/usecase/health"
	ingestuc "github.com/kailas-cloud/lexord/internal/usecase/ingest"
	queryuc "github.com/kailas-cloud/lexord/internal/usecase/query"
	verifyuc "github.com/kailas-cloud/lexord/internal/usecase/verify"
)

// testCodecParams is a narrow width-4 domain that keeps expected encodings
// short: encode(v) = %04d of v+500.
var testCodecParams = domcorp.CodecParams{Width: 4, Min: -500, Max: 499}

// --- Mocks ---

type mockCorpusRepo struct {
	createFn func(ctx context.Context, c domcorp.Corpus) error
	getFn    func(ctx context.Context, name string) (domcorp.Corpus, error)
	listFn   func(ctx context.Context) ([]domcorp.Corpus, error)
	deleteFn func(ctx context.Context, name string) error
}

func (m *mockCorpusRepo) Create(ctx context.Context, c domcorp.Corpus) error {
	if m.createFn != nil {
		return m.createFn(ctx, c)
	}
	return nil
}

func (m *mockCorpusRepo) Get(ctx context.Context, name string) (domcorp.Corpus, error) {
	if m.getFn != nil {
		return m.getFn(ctx, name)
	}
	return fixtureCorpus(), nil
}

func (m *mockCorpusRepo) List(ctx context.Context) ([]domcorp.Corpus, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []domcorp.Corpus{fixtureCorpus()}, nil
}

func (m *mockCorpusRepo) Delete(ctx context.Context, name string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, name)
	}
	return nil
}

type mockDocStore struct {
	bulkUpsertFn func(ctx context.Context, corpusName string, docs []domdoc.Encoded) error
	countFn      func(ctx context.Context, corpusName string) (int64, error)
}

func (m *mockDocStore) BulkUpsert(ctx context.Context, corpusName string, docs []domdoc.Encoded) error {
	if m.bulkUpsertFn != nil {
		return m.bulkUpsertFn(ctx, corpusName, docs)
	}
	return nil
}

func (m *mockDocStore) WaitForIndexed(context.Context, string, int64, time.Duration) error {
	return nil
}

func (m *mockDocStore) Count(ctx context.Context, corpusName string) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx, corpusName)
	}
	return 0, nil
}

type mockScanner struct {
	lexRangeIDsFn func(ctx context.Context, corpus, field, minEnc, maxEnc string, limit int) ([]string, error)
}

func (m *mockScanner) LexRangeIDs(ctx context.Context, corpus, field, minEnc, maxEnc string, limit int) ([]string, error) {
	if m.lexRangeIDsFn != nil {
		return m.lexRangeIDsFn(ctx, corpus, field, minEnc, maxEnc, limit)
	}
	return nil, nil
}

type mockOracle struct {
	members []domdoc.Member
}

func (m *mockOracle) LexMembers(context.Context, string, string) ([]domdoc.Member, error) {
	return m.members, nil
}

func (m *mockOracle) LexRangeIDs(_ context.Context, _, _, minEnc, maxEnc string, _ int) ([]string, error) {
	ids := make([]string, 0, len(m.members))
	for _, mb := range m.members {
		if (minEnc == "" || mb.Encoded >= minEnc) && (maxEnc == "" || mb.Encoded <= maxEnc) {
			ids = append(ids, mb.DocID)
		}
	}
	return ids, nil
}

func (m *mockOracle) NumericRangeIDs(_ context.Context, _, _ string, min, max int64, _ int) ([]string, error) {
	codec, _ := lexord.New(testCodecParams.Width, testCodecParams.Min, testCodecParams.Max)
	ids := make([]string, 0, len(m.members))
	for _, mb := range m.members {
		v, err := codec.Decode(mb.Encoded)
		if err != nil {
			return nil, err
		}
		if v >= min && v <= max {
			ids = append(ids, mb.DocID)
		}
	}
	return ids, nil
}

func (m *mockOracle) SortedIDs(context.Context, string, string, bool, int) ([]string, error) {
	ids := make([]string, 0, len(m.members))
	for _, mb := range m.members {
		ids = append(ids, mb.DocID)
	}
	return ids, nil
}

type mockReportCache struct {
	last    domver.Report
	lastErr error
}

func (m *mockReportCache) Save(context.Context, string, domver.Report) error { return nil }

func (m *mockReportCache) Last(context.Context, string) (domver.Report, error) {
	return m.last, m.lastErr
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(context.Context) error { return m.err }

type mockSearchChecker struct {
	err error
}

func (m *mockSearchChecker) IndexExists(context.Context, string) (bool, error) {
	return false, m.err
}

// --- Fixtures ---

func fixtureCorpus() domcorp.Corpus {
	fields := []field.Field{
		field.Reconstruct("category", field.Keyword),
		field.Reconstruct("price", field.Integer),
	}
	return domcorp.Reconstruct("prices", fields, testCodecParams, true, time.Now().UnixMilli())
}

// testMembers holds three documents in oracle (byte) order:
// -500 -> "0000", 0 -> "0500", 499 -> "0999".
func testMembers() []domdoc.Member {
	return []domdoc.Member{
		{Encoded: "0000", DocID: "low"},
		{Encoded: "0500", DocID: "mid"},
		{Encoded: "0999", DocID: "high"},
	}
}

// backend bundles every storage-side mock a test server runs on.
type backend struct {
	corpusRepo *mockCorpusRepo
	docs       *mockDocStore
	scanner    *mockScanner
	oracle     *mockOracle
	reports    *mockReportCache
	pinger     *mockPinger
	search     *mockSearchChecker
}

// newTestServer assembles real services over the backend mocks and returns
// the router ready for httptest traffic.
func newTestServer(t *testing.T) (http.Handler, *backend) {
	t.Helper()

	b := &backend{
		corpusRepo: &mockCorpusRepo{},
		docs:       &mockDocStore{},
		scanner:    &mockScanner{},
		oracle:     &mockOracle{members: testMembers()},
		reports:    &mockReportCache{},
		pinger:     &mockPinger{},
		search:     &mockSearchChecker{},
	}

	codecFor := func(width int, min, max int64) (verifyuc.Codec, error) {
		return lexord.New(width, min, max)
	}

	srv := NewServer(
		corpusuc.New(b.corpusRepo, testCodecParams),
		ingestuc.New(b.docs, b.docs, b.corpusRepo),
		queryuc.New(b.corpusRepo, b.scanner),
		verifyuc.New(b.corpusRepo, b.oracle, b.reports, codecFor),
		healthuc.New(b.pinger, b.search),
		zap.NewNop(),
	)
	return srv.Routes(), b
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeErrorBody(t *testing.T, rr *httptest.ResponseRecorder) errorInfo {
	t.Helper()
	var eb errorBody
	if err := json.NewDecoder(rr.Body).Decode(&eb); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return eb.Error
}
