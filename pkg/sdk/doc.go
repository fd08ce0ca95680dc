// Package sdk provides a Go client for the lexord HTTP API.
//
// The client wraps every call in a request/response observer: structured
// logs via log/slog and Prometheus counters/histograms, both opt-in.
//
//	client, _ := sdk.New("http://localhost:8080",
//	    sdk.WithToken("dev-key"),
//	    sdk.WithLogger(slog.Default()),
//	)
//
//	corpus, _ := client.CreateCorpus(ctx, sdk.CreateCorpusRequest{
//	    Name: "prices",
//	    Fields: []sdk.Field{
//	        {Name: "price", Kind: sdk.FieldInteger},
//	    },
//	    NumericMirror: true,
//	})
//
//	report, _ := client.BulkDocuments(ctx, corpus.Name, docs)
//	ids, _ := client.RangeIDs(ctx, corpus.Name, sdk.RangeQuery{
//	    Field: "price",
//	    Gte:   sdk.Int64(100),
//	    Lt:    sdk.Int64(500),
//	})
//
// API errors unwrap to sentinel errors (ErrNotFound, ErrConflict,
// ErrInvalidInput, ...) and expose the wire code via *APIError.
package sdk
