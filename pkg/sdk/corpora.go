package sdk

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// CreateCorpus creates a corpus with its field mapping.
func (c *Client) CreateCorpus(ctx context.Context, req CreateCorpusRequest) (corpus Corpus, err error) {
	start := time.Now()
	defer func() { c.obs.observe("create_corpus", start, err) }()

	err = c.do(ctx, request{
		method: http.MethodPost,
		path:   "/api/v1/corpora",
		body:   req,
	}, &corpus)
	if err != nil {
		return Corpus{}, fmt.Errorf("create corpus %q: %w", req.Name, err)
	}
	return corpus, nil
}

// ListCorpora returns all corpora.
func (c *Client) ListCorpora(ctx context.Context) (corpora []Corpus, err error) {
	start := time.Now()
	defer func() { c.obs.observe("list_corpora", start, err) }()

	var resp struct {
		Corpora []Corpus `json:"corpora"`
	}
	if err = c.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/v1/corpora",
	}, &resp); err != nil {
		return nil, fmt.Errorf("list corpora: %w", err)
	}
	return resp.Corpora, nil
}

// GetCorpus fetches one corpus, including its document count.
func (c *Client) GetCorpus(ctx context.Context, name string) (corpus Corpus, err error) {
	start := time.Now()
	defer func() { c.obs.observe("get_corpus", start, err) }()

	err = c.do(ctx, request{
		method: http.MethodGet,
		path:   corpusPath(name, ""),
	}, &corpus)
	if err != nil {
		return Corpus{}, fmt.Errorf("get corpus %q: %w", name, err)
	}
	return corpus, nil
}

// DeleteCorpus removes a corpus, its documents and its oracle sets.
func (c *Client) DeleteCorpus(ctx context.Context, name string) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("delete_corpus", start, err) }()

	if err = c.do(ctx, request{
		method: http.MethodDelete,
		path:   corpusPath(name, ""),
	}, nil); err != nil {
		return fmt.Errorf("delete corpus %q: %w", name, err)
	}
	return nil
}
