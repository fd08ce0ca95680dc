package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// RangeIDs returns the IDs of documents whose field value lies in the
// numeric interval, in ascending value order.
func (c *Client) RangeIDs(ctx context.Context, corpus string, rq RangeQuery) (ids []string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("range_ids", start, err) }()

	q := url.Values{}
	q.Set("field", rq.Field)
	setInt64(q, "gt", rq.Gt)
	setInt64(q, "gte", rq.Gte)
	setInt64(q, "lt", rq.Lt)
	setInt64(q, "lte", rq.Lte)
	if rq.Limit > 0 {
		q.Set("limit", strconv.Itoa(rq.Limit))
	}

	var resp struct {
		IDs   []string `json:"ids"`
		Count int      `json:"count"`
	}
	if err = c.do(ctx, request{
		method: http.MethodGet,
		path:   corpusPath(corpus, "/range"),
		query:  q,
	}, &resp); err != nil {
		return nil, fmt.Errorf("range query on %q: %w", corpus, err)
	}
	return resp.IDs, nil
}

// Verify runs the order-preservation checks for a corpus against the live
// oracle and returns the report. A report with failed checks is not an
// error; inspect Report.Passed.
func (c *Client) Verify(ctx context.Context, corpus string, opts VerifyOptions) (rep Report, err error) {
	start := time.Now()
	defer func() { c.obs.observe("verify", start, err) }()

	q := url.Values{}
	if opts.Field != "" {
		q.Set("field", opts.Field)
	}
	if opts.Samples > 0 {
		q.Set("samples", strconv.Itoa(opts.Samples))
	}
	if opts.Seed != 0 {
		q.Set("seed", strconv.FormatInt(opts.Seed, 10))
	}

	err = c.do(ctx, request{
		method: http.MethodPost,
		path:   corpusPath(corpus, "/verify"),
		query:  q,
	}, &rep)
	if err != nil {
		return Report{}, fmt.Errorf("verify %q: %w", corpus, err)
	}
	return rep, nil
}

// LastReport returns the most recent cached verification report for a
// corpus. ErrNotFound when no run has happened within the report TTL.
func (c *Client) LastReport(ctx context.Context, corpus string) (rep Report, err error) {
	start := time.Now()
	defer func() { c.obs.observe("last_report", start, err) }()

	err = c.do(ctx, request{
		method: http.MethodGet,
		path:   corpusPath(corpus, "/report"),
	}, &rep)
	if err != nil {
		return Report{}, fmt.Errorf("last report of %q: %w", corpus, err)
	}
	return rep, nil
}

func setInt64(q url.Values, key string, v *int64) {
	if v != nil {
		q.Set(key, strconv.FormatInt(*v, 10))
	}
}
