package corpus

import (
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"

	domcorp "github.com/kailas-cloud/lexord/internal/domain/corpus"
	"github.com/kailas-cloud/lexord/internal/domain/corpus/field"
)

// fieldRow is the JSON-serializable representation of a field for HSET.
type fieldRow struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// corpusToHash converts a domain Corpus to a map for HSET.
func corpusToHash(c domcorp.Corpus) (map[string]string, error) {
	rows := make([]fieldRow, len(c.Fields()))
	for i, f := range c.Fields() {
		rows[i] = fieldRow{Name: f.Name(), Kind: string(f.FieldKind())}
	}
	fieldsJSON, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("marshal fields: %w", err)
	}
	codec := c.Codec()
	return map[string]string{
		"name":           c.Name(),
		"fields_json":    string(fieldsJSON),
		"codec_width":    strconv.Itoa(codec.Width),
		"codec_min":      strconv.FormatInt(codec.Min, 10),
		"codec_max":      strconv.FormatInt(codec.Max, 10),
		"numeric_mirror": strconv.FormatBool(c.NumericMirror()),
		"created_at":     strconv.FormatInt(c.CreatedAt(), 10),
	}, nil
}

// corpusFromHash hydrates a domain Corpus from an HGETALL result map.
func corpusFromHash(m map[string]string) (domcorp.Corpus, error) {
	createdAt, err := strconv.ParseInt(m["created_at"], 10, 64)
	if err != nil {
		return domcorp.Corpus{}, fmt.Errorf("invalid created_at: %w", err)
	}

	var rows []fieldRow
	if fieldsJSON := m["fields_json"]; fieldsJSON != "" {
		if err := json.Unmarshal([]byte(fieldsJSON), &rows); err != nil {
			return domcorp.Corpus{}, fmt.Errorf("unmarshal fields: %w", err)
		}
	}

	fields := make([]field.Field, len(rows))
	for i, r := range rows {
		fields[i] = field.Reconstruct(r.Name, field.Kind(r.Kind))
	}

	width, err := strconv.Atoi(m["codec_width"])
	if err != nil {
		return domcorp.Corpus{}, fmt.Errorf("invalid codec_width: %w", err)
	}
	minVal, err := strconv.ParseInt(m["codec_min"], 10, 64)
	if err != nil {
		return domcorp.Corpus{}, fmt.Errorf("invalid codec_min: %w", err)
	}
	maxVal, err := strconv.ParseInt(m["codec_max"], 10, 64)
	if err != nil {
		return domcorp.Corpus{}, fmt.Errorf("invalid codec_max: %w", err)
	}

	mirror := false
	if s, ok := m["numeric_mirror"]; ok && s != "" {
		if parsed, err := strconv.ParseBool(s); err == nil {
			mirror = parsed
		}
	}

	codec := domcorp.CodecParams{Width: width, Min: minVal, Max: maxVal}
	return domcorp.Reconstruct(m["name"], fields, codec, mirror, createdAt), nil
}
