package sdk

import (
	"bytes"
	"io"
	"net/http"
	"testing"

	json "github.com/goccy/go-json"
)

// --- http.RoundTripper mock ---

type mockTransport struct {
	roundTripFn func(req *http.Request) (*http.Response, error)
	lastReq     *http.Request
	lastBody    []byte
}

func (m *mockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	m.lastReq = req
	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		m.lastBody = body
	}
	return m.roundTripFn(req)
}

// jsonResponse builds an *http.Response with a JSON body.
func jsonResponse(t *testing.T, status int, v any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(raw)),
	}
}

// apiErrorResponse builds the API error envelope.
func apiErrorResponse(t *testing.T, status int, code, message string) *http.Response {
	t.Helper()
	var body errorBody
	body.Error.Code = code
	body.Error.Message = message
	return jsonResponse(t, status, body)
}

// newTestClient wires a Client onto the mock transport.
func newTestClient(t *testing.T, mt *mockTransport, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithHTTPClient(&http.Client{Transport: mt})}, opts...)
	c, err := New("http://lexord.test", opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}
