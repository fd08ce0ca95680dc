package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// EncodeValue encodes an integer through the server's stateless codec
// endpoint. A nil codec uses the signed 32-bit preset.
func (c *Client) EncodeValue(ctx context.Context, value int64, codec *CodecParams) (cv CodecValue, err error) {
	start := time.Now()
	defer func() { c.obs.observe("encode_value", start, err) }()

	q := url.Values{}
	q.Set("value", strconv.FormatInt(value, 10))
	setCodecParams(q, codec)

	err = c.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/v1/codec/encode",
		query:  q,
	}, &cv)
	if err != nil {
		return CodecValue{}, fmt.Errorf("encode value %d: %w", value, err)
	}
	return cv, nil
}

// DecodeValue decodes a fixed-width digit string back to its integer.
func (c *Client) DecodeValue(ctx context.Context, text string, codec *CodecParams) (cv CodecValue, err error) {
	start := time.Now()
	defer func() { c.obs.observe("decode_value", start, err) }()

	q := url.Values{}
	q.Set("text", text)
	setCodecParams(q, codec)

	err = c.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/v1/codec/decode",
		query:  q,
	}, &cv)
	if err != nil {
		return CodecValue{}, fmt.Errorf("decode %q: %w", text, err)
	}
	return cv, nil
}

func setCodecParams(q url.Values, codec *CodecParams) {
	if codec == nil {
		return
	}
	q.Set("width", strconv.Itoa(codec.Width))
	q.Set("min", strconv.FormatInt(codec.Min, 10))
	q.Set("max", strconv.FormatInt(codec.Max, 10))
}
