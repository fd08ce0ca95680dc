package redis

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/lexord/internal/db"
)

// LexAdd inserts members into a sorted set with score zero. With equal
// scores the server falls back to byte-wise member comparison, which is
// exactly the ordering the encoded values are built to survive.
func (s *Store) LexAdd(ctx context.Context, key string, members []string) error {
	if len(members) == 0 {
		return nil
	}
	cmd := s.b().Zadd().Key(key).ScoreMember()
	for _, m := range members {
		cmd = cmd.ScoreMember(0, m)
	}
	if err := s.do(ctx, cmd.Build()).Error(); err != nil {
		return &db.Error{Op: db.OpZAdd, Err: err}
	}
	return nil
}

// LexAddMulti inserts members into multiple sorted sets in a single
// DoMulti round-trip.
func (s *Store) LexAddMulti(ctx context.Context, items []db.LexAddItem) error {
	if len(items) == 0 {
		return nil
	}

	cmds := make([]rueidis.Completed, 0, len(items))
	keys := make([]string, 0, len(items))
	for _, item := range items {
		if len(item.Members) == 0 {
			continue
		}
		cmd := s.b().Zadd().Key(item.Key).ScoreMember()
		for _, m := range item.Members {
			cmd = cmd.ScoreMember(0, m)
		}
		cmds = append(cmds, cmd.Build())
		keys = append(keys, item.Key)
	}
	if len(cmds) == 0 {
		return nil
	}

	results := s.client.DoMulti(ctx, cmds...)
	for i, res := range results {
		if err := res.Error(); err != nil {
			return &db.Error{Op: db.OpZAdd, Err: fmt.Errorf("key %s: %w", keys[i], err)}
		}
	}
	return nil
}

// LexRangeScan returns members inside r in ascending byte order via
// ZRANGEBYLEX. A limit <= 0 returns the whole range.
func (s *Store) LexRangeScan(ctx context.Context, key string, r db.LexRange, limit int) ([]string, error) {
	q := s.b().Zrangebylex().Key(key).Min(lexMin(r)).Max(lexMax(r))

	var cmd rueidis.Completed
	if limit > 0 {
		cmd = q.Limit(0, int64(limit)).Build()
	} else {
		cmd = q.Build()
	}

	members, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpZRangeByLex, Err: err}
	}
	return members, nil
}

// LexCard returns the member count of a sorted set.
func (s *Store) LexCard(ctx context.Context, key string) (int64, error) {
	cmd := s.b().Zcard().Key(key).Build()
	n, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return 0, &db.Error{Op: db.OpZCard, Err: err}
	}
	return n, nil
}

// lexMin converts the inclusive lower prefix into ZRANGEBYLEX syntax.
// "[p" admits every member whose leading bytes compare >= p, including
// members that extend p with a suffix.
func lexMin(r db.LexRange) string {
	if r.Min == "" {
		return "-"
	}
	return "[" + r.Min
}

// lexMax converts the inclusive upper prefix into ZRANGEBYLEX syntax.
// The trailing 0xff sentinel keeps members that extend the prefix (such
// as "0010|doc-7") inside the range; member suffixes never reach 0xff.
func lexMax(r db.LexRange) string {
	if r.Max == "" {
		return "+"
	}
	return "[" + r.Max + "\xff"
}
