package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/lexord/internal/db"
)

// SearchKeys runs FT.SEARCH with NOCONTENT and returns matching document
// keys plus the total match count. The total counts every match, not
// just the returned page.
func (s *Store) SearchKeys(ctx context.Context, q *db.SearchQuery) ([]string, int64, error) {
	if q.Index == "" {
		return nil, 0, fmt.Errorf("index name is required")
	}

	query := "*"
	if q.Numeric != nil {
		query = buildNumericQuery(q.Numeric)
	}

	args := []string{q.Index, query, "NOCONTENT"}

	if q.SortBy != "" {
		dir := "ASC"
		if q.SortDesc {
			dir = "DESC"
		}
		args = append(args, "SORTBY", q.SortBy, dir)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}
	args = append(args,
		"LIMIT", strconv.Itoa(q.Offset), strconv.Itoa(limit),
		"DIALECT", "2",
	)

	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		if isRedisErr(err, "unknown index name") {
			return nil, 0, db.ErrIndexNotFound
		}
		return nil, 0, &db.Error{Op: db.OpSearch, Err: err}
	}

	return parseKeysResult(raw)
}

// buildNumericQuery renders a closed-interval numeric predicate. Bounds
// are formatted as integers; RediSearch widens them to doubles, so
// values beyond 2^53 would lose precision, which is why callers mirror
// only 32-bit domains numerically.
func buildNumericQuery(f *db.NumericFilter) string {
	return fmt.Sprintf("@%s:[%s %s]",
		f.Field,
		strconv.FormatInt(f.Min, 10),
		strconv.FormatInt(f.Max, 10),
	)
}

// parseKeysResult handles the NOCONTENT reply shape: [total, key1, key2, ...].
func parseKeysResult(raw []rueidis.RedisMessage) ([]string, int64, error) {
	if len(raw) == 0 {
		return nil, 0, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, 0, fmt.Errorf("parse total: %w", err)
	}

	keys := make([]string, 0, len(raw)-1)
	for i := 1; i < len(raw); i++ {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}
		keys = append(keys, key)
	}

	return keys, total, nil
}
