package chi

import (
	"fmt"
	"io"
	"net/http"

	"github.com/klauspost/compress/zstd"
)

// Shared decoder, safe for concurrent DecodeAll use. Allocated once because
// zstd decoder construction is expensive relative to the small fixture
// payloads it decompresses.
var zstdDecoder, _ = zstd.NewReader(nil)

// maxBodyBytes caps a single request body after decompression grows it.
const maxBodyBytes = 32 << 20

// readBody drains the request body, transparently decompressing
// zstd-encoded payloads.
func readBody(r *http.Request) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if r.Header.Get("Content-Encoding") != "zstd" {
		return raw, nil
	}

	body, err := zstdDecoder.DecodeAll(raw, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	return body, nil
}
