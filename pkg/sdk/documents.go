package sdk

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// BulkDocuments indexes documents into a corpus. The call succeeds when the
// server accepted the batch; per-item failures are reported in the
// BulkReport. With WithCompression the request body is zstd-compressed.
func (c *Client) BulkDocuments(ctx context.Context, corpus string, docs []Document) (report BulkReport, err error) {
	start := time.Now()
	defer func() { c.obs.observe("bulk_documents", start, err) }()

	body := struct {
		Documents []Document `json:"documents"`
	}{Documents: docs}

	err = c.do(ctx, request{
		method:   http.MethodPost,
		path:     corpusPath(corpus, "/documents"),
		body:     body,
		compress: true,
	}, &report)
	if err != nil {
		return BulkReport{}, fmt.Errorf("bulk documents into %q: %w", corpus, err)
	}
	return report, nil
}
