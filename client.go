package lexord

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/lexord/internal/db"
	dbRedis "github.com/kailas-cloud/lexord/internal/db/redis"
	corpusrepo "github.com/kailas-cloud/lexord/internal/repository/corpus"
	documentrepo "github.com/kailas-cloud/lexord/internal/repository/document"
	queryrepo "github.com/kailas-cloud/lexord/internal/repository/query"
	reportrepo "github.com/kailas-cloud/lexord/internal/repository/report"
	verifyuc "github.com/kailas-cloud/lexord/internal/usecase/verify"
)

// Client is the embedded-mode entry point: it owns the store connection
// and wires the fixture repositories a Corpus runs on.
type Client struct {
	store    db.Store
	logger   *zap.Logger
	corpora  *corpusrepo.Repo
	docs     *documentrepo.Repo
	queries  *queryrepo.Repo
	verifier *verifyuc.Service
}

// NewClient connects to the oracle store and wires a Client.
func NewClient(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		keyPrefix: defaultKeyPrefix,
		reportTTL: defaultReportTTL,
	}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("lexord: oracle address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("lexord: create store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("lexord: oracle not ready: %w", err)
	}

	cfg.logger.Info("connected to oracle store",
		zap.Strings("addrs", cfg.addrs),
		zap.String("key_prefix", cfg.keyPrefix),
	)

	return wireClient(store, cfg), nil
}

func wireClient(store db.Store, cfg *clientConfig) *Client {
	corpora := corpusrepo.New(store, cfg.keyPrefix)
	docs := documentrepo.New(store, cfg.keyPrefix)
	queries := queryrepo.New(store, cfg.keyPrefix)
	reports := reportrepo.New(store, cfg.keyPrefix, cfg.reportTTL)

	codecFor := func(width int, min, max int64) (verifyuc.Codec, error) {
		return New(width, min, max)
	}

	return &Client{
		store:    store,
		logger:   cfg.logger,
		corpora:  corpora,
		docs:     docs,
		queries:  queries,
		verifier: verifyuc.New(corpora, queries, reports, codecFor),
	}
}

// Ping checks oracle connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close releases the store connection.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}
