package verify

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"

	domcorp "github.com/kailas-cloud/lexord/internal/domain/corpus"
	"github.com/kailas-cloud/lexord/internal/domain/corpus/field"
	domdoc "github.com/kailas-cloud/lexord/internal/domain/document"
	domver "github.com/kailas-cloud/lexord/internal/domain/verification"
)

// testCodec is a width-4 shift codec over [-500, 499]: encode(v) is the
// zero-padded decimal of v+500, so -500 -> "0000" and 499 -> "0999".
type testCodec struct {
	width    int
	min, max int64
}

func newTestCodec() testCodec { return testCodec{width: 4, min: -500, max: 499} }

func (c testCodec) Width() int            { return c.width }
func (c testCodec) Min() int64            { return c.min }
func (c testCodec) Max() int64            { return c.max }
func (c testCodec) Contains(v int64) bool { return v >= c.min && v <= c.max }

func (c testCodec) Encode(v int64) (string, error) {
	if !c.Contains(v) {
		return "", fmt.Errorf("value %d out of range", v)
	}
	return fmt.Sprintf("%0*d", c.width, uint64(v)-uint64(c.min)), nil
}

func (c testCodec) Decode(s string) (int64, error) {
	if len(s) != c.width {
		return 0, fmt.Errorf("bad length %d", len(s))
	}
	shifted, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return int64(shifted + uint64(c.min)), nil
}

// funcCodec overrides individual testCodec methods for fault injection.
type funcCodec struct {
	testCodec
	encodeFn func(v int64) (string, error)
	decodeFn func(s string) (int64, error)
}

func (f funcCodec) Encode(v int64) (string, error) {
	if f.encodeFn != nil {
		return f.encodeFn(v)
	}
	return f.testCodec.Encode(v)
}

func (f funcCodec) Decode(s string) (int64, error) {
	if f.decodeFn != nil {
		return f.decodeFn(s)
	}
	return f.testCodec.Decode(s)
}

// --- Mocks ---

type mockCorpusReader struct {
	corpus domcorp.Corpus
	err    error
}

func (m *mockCorpusReader) Get(_ context.Context, _ string) (domcorp.Corpus, error) {
	return m.corpus, m.err
}

type mockOracle struct {
	lexRangeIDsFn     func(ctx context.Context, corpus, field, minEnc, maxEnc string, limit int) ([]string, error)
	lexMembersFn      func(ctx context.Context, corpus, field string) ([]domdoc.Member, error)
	numericRangeIDsFn func(ctx context.Context, corpus, field string, min, max int64, limit int) ([]string, error)
	sortedIDsFn       func(ctx context.Context, corpus, field string, desc bool, limit int) ([]string, error)
}

func (m *mockOracle) LexRangeIDs(ctx context.Context, corpus, field, minEnc, maxEnc string, limit int) ([]string, error) {
	if m.lexRangeIDsFn != nil {
		return m.lexRangeIDsFn(ctx, corpus, field, minEnc, maxEnc, limit)
	}
	return nil, nil
}

func (m *mockOracle) LexMembers(ctx context.Context, corpus, field string) ([]domdoc.Member, error) {
	if m.lexMembersFn != nil {
		return m.lexMembersFn(ctx, corpus, field)
	}
	return nil, nil
}

func (m *mockOracle) NumericRangeIDs(ctx context.Context, corpus, field string, min, max int64, limit int) ([]string, error) {
	if m.numericRangeIDsFn != nil {
		return m.numericRangeIDsFn(ctx, corpus, field, min, max, limit)
	}
	return nil, nil
}

func (m *mockOracle) SortedIDs(ctx context.Context, corpus, field string, desc bool, limit int) ([]string, error) {
	if m.sortedIDsFn != nil {
		return m.sortedIDsFn(ctx, corpus, field, desc, limit)
	}
	return nil, nil
}

type mockReportCache struct {
	saved   *domver.Report
	saveErr error
	last    domver.Report
	lastErr error
}

func (m *mockReportCache) Save(_ context.Context, _ string, rep domver.Report) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = &rep
	return nil
}

func (m *mockReportCache) Last(_ context.Context, _ string) (domver.Report, error) {
	return m.last, m.lastErr
}

// --- Fixtures ---

func makeCorpus(t *testing.T, mirror bool) domcorp.Corpus {
	t.Helper()
	category, err := field.New("category", field.Keyword)
	if err != nil {
		t.Fatalf("field: %v", err)
	}
	price, err := field.New("price", field.Integer)
	if err != nil {
		t.Fatalf("field: %v", err)
	}
	c, err := domcorp.New(
		"prices",
		[]field.Field{category, price},
		domcorp.CodecParams{Width: 4, Min: -500, Max: 499},
		mirror,
	)
	if err != nil {
		t.Fatalf("corpus: %v", err)
	}
	return c
}

// testMembers holds three documents in oracle (byte) order.
func testMembers(t *testing.T) []domdoc.Member {
	t.Helper()
	codec := newTestCodec()
	members := make([]domdoc.Member, 0, 3)
	for _, d := range []struct {
		id    string
		value int64
	}{
		{"low", -500},
		{"mid", 0},
		{"high", 499},
	} {
		enc, err := codec.Encode(d.value)
		if err != nil {
			t.Fatalf("encode %d: %v", d.value, err)
		}
		members = append(members, domdoc.Member{Encoded: enc, DocID: d.id})
	}
	return members
}

// consistentOracle answers every read the way a healthy store would,
// deriving all projections from the given member list.
func consistentOracle(t *testing.T, members []domdoc.Member) *mockOracle {
	t.Helper()
	codec := newTestCodec()

	value := func(m domdoc.Member) int64 {
		v, err := codec.Decode(m.Encoded)
		if err != nil {
			t.Fatalf("decode %q: %v", m.Encoded, err)
		}
		return v
	}

	return &mockOracle{
		lexMembersFn: func(_ context.Context, _, _ string) ([]domdoc.Member, error) {
			return members, nil
		},
		lexRangeIDsFn: func(_ context.Context, _, _, minEnc, maxEnc string, _ int) ([]string, error) {
			ids := make([]string, 0, len(members))
			for _, m := range members {
				if (minEnc == "" || m.Encoded >= minEnc) && (maxEnc == "" || m.Encoded <= maxEnc) {
					ids = append(ids, m.DocID)
				}
			}
			return ids, nil
		},
		numericRangeIDsFn: func(_ context.Context, _, _ string, min, max int64, _ int) ([]string, error) {
			ids := make([]string, 0, len(members))
			// Walk backwards: the numeric index promises membership, not order.
			for i := len(members) - 1; i >= 0; i-- {
				if v := value(members[i]); v >= min && v <= max {
					ids = append(ids, members[i].DocID)
				}
			}
			return ids, nil
		},
		sortedIDsFn: func(_ context.Context, _, _ string, _ bool, _ int) ([]string, error) {
			ids := make([]string, 0, len(members))
			for _, m := range members {
				ids = append(ids, m.DocID)
			}
			return ids, nil
		},
	}
}

func newService(t *testing.T, corpus domcorp.Corpus, oracle *mockOracle, cache *mockReportCache, opts ...Option) *Service {
	t.Helper()
	factory := func(width int, min, max int64) (Codec, error) {
		return testCodec{width: width, min: min, max: max}, nil
	}
	return New(&mockCorpusReader{corpus: corpus}, oracle, cache, factory, opts...)
}

var errOracleDown = errors.New("oracle down")
