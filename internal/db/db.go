package db

import (
	"context"
	"time"
)

// Store is the oracle database facade combining all sub-interfaces.
//
//nolint:interfacebloat // facade by design -- consumers use narrow sub-interfaces (ISP)
type Store interface {
	Pinger
	HashStore
	KVStore
	LexStore
	IndexManager
	Searcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashSetItem holds a single key+fields pair for pipelined HSET.
type HashSetItem struct {
	Key    string
	Fields map[string]string
}

// HashStore provides hash-based key-value operations.
type HashStore interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// LexAddItem holds a single key+members pair for pipelined ZADD.
type LexAddItem struct {
	Key     string
	Members []string
}

// LexRange is a closed interval over sorted-set members. Min and Max are
// value prefixes: a member matches when its leading bytes fall inside the
// interval, so fixed-width encoded values select every member they prefix.
// An empty side is unbounded.
type LexRange struct {
	Min string
	Max string
}

// LexStore is the lexicographic comparison oracle: sorted sets where every
// member has score zero, so the server orders and slices members purely by
// byte-wise comparison.
type LexStore interface {
	LexAdd(ctx context.Context, key string, members []string) error
	LexAddMulti(ctx context.Context, items []LexAddItem) error
	LexRangeScan(ctx context.Context, key string, r LexRange, limit int) ([]string, error)
	LexCard(ctx context.Context, key string) (int64, error)
}

// IndexManager provides FT index lifecycle operations.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	DropIndex(ctx context.Context, name string, dropDocs bool) error
	IndexExists(ctx context.Context, name string) (bool, error)
	IndexDocCount(ctx context.Context, name string) (int64, error)
}

// NumericFilter restricts a search to documents whose numeric field lies in
// the closed interval [Min, Max].
type NumericFilter struct {
	Field string
	Min   int64
	Max   int64
}

// SearchQuery is the input for FT.SEARCH key scans.
type SearchQuery struct {
	Index    string
	Numeric  *NumericFilter // nil matches all documents
	SortBy   string         // optional, requires a SORTABLE field
	SortDesc bool
	Offset   int
	Limit    int
}

// Searcher provides search operations over FT indexes. Results carry
// document keys only (NOCONTENT); the returned total is the full match
// count regardless of limit.
type Searcher interface {
	SearchKeys(ctx context.Context, q *SearchQuery) (keys []string, total int64, err error)
}
