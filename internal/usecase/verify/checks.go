package verify

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"

	domdoc "github.com/kailas-cloud/lexord/internal/domain/document"
	domver "github.com/kailas-cloud/lexord/internal/domain/verification"
)

// sampleValues returns the verification inputs: the codec domain's
// boundary values plus n random draws, deduplicated in draw order.
func sampleValues(codec Codec, n int, rng *rand.Rand) []int64 {
	seen := make(map[int64]bool, n+7)
	values := make([]int64, 0, n+7)

	add := func(v int64) {
		if codec.Contains(v) && !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}

	min, max := codec.Min(), codec.Max()
	for _, v := range []int64{min, min + 1, -1, 0, 1, max - 1, max} {
		add(v)
	}
	for i := 0; i < n; i++ {
		add(drawValue(codec, rng))
	}
	return values
}

// drawValue picks a uniform value from the codec domain.
func drawValue(codec Codec, rng *rand.Rand) int64 {
	span := uint64(codec.Max()) - uint64(codec.Min())
	if span == math.MaxUint64 {
		return int64(rng.Uint64())
	}
	return codec.Min() + int64(rng.Uint64()%(span+1))
}

// checkRoundTrip proves decode(encode(v)) == v for every sampled value.
func checkRoundTrip(codec Codec, values []int64) domver.CheckResult {
	res := domver.CheckResult{
		Name:     CheckRoundTrip,
		Expected: fmt.Sprintf("%d/%d values round-trip", len(values), len(values)),
	}

	ok := 0
	for _, v := range values {
		enc, err := codec.Encode(v)
		if err != nil {
			if res.Detail == "" {
				res.Detail = fmt.Sprintf("encode %d: %v", v, err)
			}
			continue
		}
		dec, err := codec.Decode(enc)
		if err != nil {
			if res.Detail == "" {
				res.Detail = fmt.Sprintf("decode %q: %v", enc, err)
			}
			continue
		}
		if dec != v {
			if res.Detail == "" {
				res.Detail = fmt.Sprintf("%d -> %q -> %d", v, enc, dec)
			}
			continue
		}
		ok++
	}

	res.Observed = fmt.Sprintf("%d/%d values round-trip", ok, len(values))
	res.Passed = ok == len(values)
	return res
}

// checkLexOrder proves byte order on encodings equals numeric order on
// values: after sorting the sample numerically, every adjacent encoding
// pair must compare strictly ascending (the sample holds no duplicates).
func checkLexOrder(codec Codec, values []int64) domver.CheckResult {
	res := domver.CheckResult{
		Name:     CheckLexicographic,
		Expected: "encoding order matches numeric order",
	}

	sorted := make([]int64, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	encs := make([]string, len(sorted))
	for i, v := range sorted {
		enc, err := codec.Encode(v)
		if err != nil {
			res.Observed = fmt.Sprintf("encode %d failed", v)
			res.Detail = err.Error()
			return res
		}
		encs[i] = enc
	}

	violations := 0
	for i := 1; i < len(encs); i++ {
		if encs[i-1] >= encs[i] {
			violations++
			if res.Detail == "" {
				res.Detail = fmt.Sprintf("%d < %d but %q >= %q", sorted[i-1], sorted[i], encs[i-1], encs[i])
			}
		}
	}

	if violations == 0 {
		res.Passed = true
		res.Observed = res.Expected
	} else {
		res.Observed = fmt.Sprintf("%d adjacent pairs out of order", violations)
	}
	return res
}

// interval is a closed probe range over the codec domain.
type interval struct {
	lo, hi int64
}

// buildIntervals derives the probe intervals: the full domain, tight
// boundary windows and seeded-random spans.
func buildIntervals(codec Codec, rng *rand.Rand) []interval {
	min, max := codec.Min(), codec.Max()
	ivs := []interval{
		{min, max},
		{min, min},
		{max, max},
		{min, min + 1},
		{max - 1, max},
	}
	if codec.Contains(-1) && codec.Contains(1) {
		ivs = append(ivs, interval{-1, 1})
	}

	for i := 0; i < randomIntervals; i++ {
		a, b := drawValue(codec, rng), drawValue(codec, rng)
		if a > b {
			a, b = b, a
		}
		ivs = append(ivs, interval{a, b})
	}
	return ivs
}

// checkLexRange compares the oracle's ZRANGEBYLEX answer for every probe
// interval against the ID set computed client-side from the full member
// list. Both sides order members byte-wise, so slices must match exactly.
func (s *Service) checkLexRange(
	ctx context.Context,
	corpus, fieldName string,
	codec Codec,
	members []domdoc.Member,
	intervals []interval,
) (domver.CheckResult, error) {
	res := domver.CheckResult{
		Name:     CheckLexRange,
		Expected: fmt.Sprintf("%d/%d intervals agree", len(intervals), len(intervals)),
	}

	type entry struct {
		value int64
		id    string
	}
	entries := make([]entry, 0, len(members))
	for _, m := range members {
		v, err := codec.Decode(m.Encoded)
		if err != nil {
			res.Observed = fmt.Sprintf("member %q does not decode", m.Encoded)
			res.Detail = err.Error()
			return res, nil
		}
		entries = append(entries, entry{value: v, id: m.DocID})
	}

	agreed := 0
	for _, iv := range intervals {
		minEnc, maxEnc, err := encodeInterval(codec, iv)
		if err != nil {
			return domver.CheckResult{}, err
		}

		got, err := s.oracle.LexRangeIDs(ctx, corpus, fieldName, minEnc, maxEnc, 0)
		if err != nil {
			return domver.CheckResult{}, fmt.Errorf("lex range [%d,%d]: %w", iv.lo, iv.hi, err)
		}

		want := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.value >= iv.lo && e.value <= iv.hi {
				want = append(want, e.id)
			}
		}

		if equalIDs(got, want) {
			agreed++
		} else if res.Detail == "" {
			res.Detail = fmt.Sprintf("interval [%d,%d]: got %d ids, want %d", iv.lo, iv.hi, len(got), len(want))
		}
	}

	res.Observed = fmt.Sprintf("%d/%d intervals agree", agreed, len(intervals))
	res.Passed = agreed == len(intervals)
	return res, nil
}

// checkNumericAgreement compares the lex oracle and the NUMERIC mirror
// index over the same probe intervals. The numeric path carries no order
// contract, so the two answers compare as sets.
func (s *Service) checkNumericAgreement(
	ctx context.Context,
	corpus, fieldName string,
	codec Codec,
	docCount int,
	intervals []interval,
) (domver.CheckResult, error) {
	res := domver.CheckResult{
		Name:     CheckNumericAgreement,
		Expected: fmt.Sprintf("%d/%d intervals agree", len(intervals), len(intervals)),
	}

	agreed := 0
	for _, iv := range intervals {
		minEnc, maxEnc, err := encodeInterval(codec, iv)
		if err != nil {
			return domver.CheckResult{}, err
		}

		lexIDs, err := s.oracle.LexRangeIDs(ctx, corpus, fieldName, minEnc, maxEnc, 0)
		if err != nil {
			return domver.CheckResult{}, fmt.Errorf("lex range [%d,%d]: %w", iv.lo, iv.hi, err)
		}
		// limit+1 exposes a numeric index matching more than it should.
		numIDs, err := s.oracle.NumericRangeIDs(ctx, corpus, fieldName, iv.lo, iv.hi, docCount+1)
		if err != nil {
			return domver.CheckResult{}, fmt.Errorf("numeric range [%d,%d]: %w", iv.lo, iv.hi, err)
		}

		if sameIDSet(lexIDs, numIDs) {
			agreed++
		} else if res.Detail == "" {
			res.Detail = fmt.Sprintf("interval [%d,%d]: lex %d ids, numeric %d", iv.lo, iv.hi, len(lexIDs), len(numIDs))
		}
	}

	res.Observed = fmt.Sprintf("%d/%d intervals agree", agreed, len(intervals))
	res.Passed = agreed == len(intervals)
	return res, nil
}

// checkSortedOrder asks the engine to sort by the encoded field and
// verifies the returned IDs walk the oracle members in non-decreasing
// encoding order.
func (s *Service) checkSortedOrder(
	ctx context.Context,
	corpus, fieldName string,
	members []domdoc.Member,
) (domver.CheckResult, error) {
	res := domver.CheckResult{
		Name:     CheckSortedOrder,
		Expected: fmt.Sprintf("%d ids in encoding order", len(members)),
	}

	// limit+1 exposes an index holding documents the oracle never saw.
	got, err := s.oracle.SortedIDs(ctx, corpus, fieldName, false, len(members)+1)
	if err != nil {
		return domver.CheckResult{}, fmt.Errorf("sorted scan: %w", err)
	}

	if len(got) != len(members) {
		res.Observed = fmt.Sprintf("%d ids from engine, %d members in oracle", len(got), len(members))
		return res, nil
	}

	encodedOf := make(map[string]string, len(members))
	for _, m := range members {
		encodedOf[m.DocID] = m.Encoded
	}

	prev := ""
	for i, id := range got {
		enc, ok := encodedOf[id]
		if !ok {
			res.Observed = fmt.Sprintf("engine returned id %q absent from the oracle", id)
			return res, nil
		}
		if i > 0 && enc < prev {
			res.Observed = "engine order diverges from encoding order"
			res.Detail = fmt.Sprintf("position %d: %q after %q", i, enc, prev)
			return res, nil
		}
		prev = enc
	}

	res.Passed = true
	res.Observed = fmt.Sprintf("%d ids in encoding order", len(got))
	return res, nil
}

func encodeInterval(codec Codec, iv interval) (minEnc, maxEnc string, err error) {
	minEnc, err = codec.Encode(iv.lo)
	if err != nil {
		return "", "", fmt.Errorf("encode bound %d: %w", iv.lo, err)
	}
	maxEnc, err = codec.Encode(iv.hi)
	if err != nil {
		return "", "", fmt.Errorf("encode bound %d: %w", iv.hi, err)
	}
	return minEnc, maxEnc, nil
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sameIDSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
