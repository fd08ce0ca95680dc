package health

import "context"

// OraclePinger checks oracle connectivity.
type OraclePinger interface {
	Ping(ctx context.Context) error
}

// SearchChecker checks that the search module answers index queries.
type SearchChecker interface {
	IndexExists(ctx context.Context, name string) (bool, error)
}
