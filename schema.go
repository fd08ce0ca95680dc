package lexord

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	domcorp "github.com/kailas-cloud/lexord/internal/domain/corpus"
	"github.com/kailas-cloud/lexord/internal/domain/corpus/field"
	domdoc "github.com/kailas-cloud/lexord/internal/domain/document"
	documentrepo "github.com/kailas-cloud/lexord/internal/repository/document"
)

const tagKey = "lexord"

var timeType = reflect.TypeOf(time.Time{})

// schemaMeta holds parsed struct tag metadata, cached per Corpus.
type schemaMeta struct {
	typ   reflect.Type
	idIdx int
	specs []fieldSpec
}

// fieldSpec maps one tagged struct field to its corpus field definition.
type fieldSpec struct {
	structIdx int
	fld       field.Field
}

// parseSchema reflects on T and extracts lexord struct tag metadata.
// Tag syntax: `lexord:"name[,kind]"` with kinds id, keyword, integer,
// timestamp and date. A missing kind is inferred from the Go type.
func parseSchema[T any]() (*schemaMeta, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: type %s is not a struct", ErrInvalidSchema, t)
	}

	meta := &schemaMeta{typ: t, idIdx: -1}
	seen := make(map[string]bool)

	for i := range t.NumField() {
		f := t.Field(i)
		tag := f.Tag.Get(tagKey)
		if tag == "" || tag == "-" {
			continue
		}
		if err := applyTag(meta, seen, i, f, tag); err != nil {
			return nil, err
		}
	}

	if meta.idIdx == -1 {
		return nil, fmt.Errorf("%w: no field with `lexord:\"...,id\"` tag in %s", ErrInvalidSchema, t)
	}
	if len(meta.specs) == 0 {
		return nil, fmt.Errorf("%w: %s declares no fields besides the id", ErrInvalidSchema, t)
	}
	return meta, nil
}

// applyTag processes a single struct field's lexord tag.
func applyTag(meta *schemaMeta, seen map[string]bool, idx int, f reflect.StructField, tag string) error {
	name, kindName, _ := strings.Cut(tag, ",")
	if name == "" {
		return fmt.Errorf("%w: empty field name on %s", ErrInvalidSchema, f.Name)
	}
	if seen[name] {
		return fmt.Errorf("%w: duplicate field name %q", ErrInvalidSchema, name)
	}
	seen[name] = true

	if kindName == "id" {
		if meta.idIdx != -1 {
			return fmt.Errorf("%w: duplicate id tag on field %s", ErrInvalidSchema, f.Name)
		}
		if f.Type.Kind() != reflect.String {
			return fmt.Errorf("%w: id field %s must be a string", ErrInvalidSchema, f.Name)
		}
		meta.idIdx = idx
		return nil
	}

	kind, err := resolveKind(f, kindName)
	if err != nil {
		return err
	}

	fld, err := field.New(name, kind)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSchema, err.Error())
	}
	meta.specs = append(meta.specs, fieldSpec{structIdx: idx, fld: fld})
	return nil
}

// resolveKind maps a declared kind to the field kind, checking it against
// the Go type; an absent kind is inferred from the Go type alone.
func resolveKind(f reflect.StructField, kindName string) (field.Kind, error) {
	switch kindName {
	case "":
		return inferKind(f)
	case "keyword":
		if f.Type.Kind() != reflect.String {
			return "", fmt.Errorf("%w: keyword field %s must be a string, got %s", ErrInvalidSchema, f.Name, f.Type)
		}
		return field.Keyword, nil
	case "integer":
		if !isIntegerType(f.Type) {
			return "", fmt.Errorf("%w: integer field %s must be int, int32 or int64, got %s", ErrInvalidSchema, f.Name, f.Type)
		}
		return field.Integer, nil
	case "timestamp":
		if f.Type != timeType {
			return "", fmt.Errorf("%w: timestamp field %s must be time.Time, got %s", ErrInvalidSchema, f.Name, f.Type)
		}
		return field.Timestamp, nil
	case "date":
		if f.Type != timeType {
			return "", fmt.Errorf("%w: date field %s must be time.Time, got %s", ErrInvalidSchema, f.Name, f.Type)
		}
		return field.Date, nil
	default:
		return "", fmt.Errorf("%w: unknown kind %q on field %s", ErrInvalidSchema, kindName, f.Name)
	}
}

func inferKind(f reflect.StructField) (field.Kind, error) {
	if f.Type == timeType {
		return field.Timestamp, nil
	}
	switch f.Type.Kind() {
	case reflect.String:
		return field.Keyword, nil
	case reflect.Int, reflect.Int32, reflect.Int64:
		return field.Integer, nil
	default:
		return "", fmt.Errorf("%w: unsupported type %s on field %s", ErrInvalidSchema, f.Type, f.Name)
	}
}

func isIntegerType(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Int, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

// fields returns the corpus field definitions for index creation.
func (m *schemaMeta) fields() []field.Field {
	out := make([]field.Field, len(m.specs))
	for i, s := range m.specs {
		out[i] = s.fld
	}
	return out
}

// hasIntegerField reports whether name is declared as an integer field.
func (m *schemaMeta) hasIntegerField(name string) bool {
	for _, s := range m.specs {
		if s.fld.Name() == name && s.fld.FieldKind() == field.Integer {
			return true
		}
	}
	return false
}

// encode flattens a typed item into its storage projection: keywords raw,
// integers through the codec (plus a raw mirror copy when enabled), time
// fields through the fixed-width ISO-8601 encoders. An empty id derives a
// deterministic one from the encoded content.
func (m *schemaMeta) encode(item any, codec Codec, mirror bool) (domdoc.Encoded, error) {
	v := reflect.ValueOf(item)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	fields := make(map[string]string, len(m.specs))
	lex := make(map[string]string, len(m.specs))

	for _, s := range m.specs {
		fv := v.Field(s.structIdx)
		name := s.fld.Name()

		switch s.fld.FieldKind() {
		case field.Keyword:
			fields[name] = fv.String()
		case field.Integer:
			enc, err := codec.Encode(fv.Int())
			if err != nil {
				return domdoc.Encoded{}, fmt.Errorf("field %q: %w", name, err)
			}
			fields[name] = enc
			lex[name] = enc
			if mirror {
				fields[domcorp.MirrorName(name)] = strconv.FormatInt(fv.Int(), 10)
			}
		case field.Timestamp:
			enc, err := EncodeTime(fv.Interface().(time.Time))
			if err != nil {
				return domdoc.Encoded{}, fmt.Errorf("field %q: %w", name, err)
			}
			fields[name] = enc
			lex[name] = enc
		case field.Date:
			enc, err := EncodeDate(fv.Interface().(time.Time))
			if err != nil {
				return domdoc.Encoded{}, fmt.Errorf("field %q: %w", name, err)
			}
			fields[name] = enc
			lex[name] = enc
		}
	}

	id := v.Field(m.idIdx).String()
	if id == "" {
		id = documentrepo.DeriveID(idMaterial(fields))
	}

	return domdoc.Encoded{ID: id, Fields: fields, Lex: lex}, nil
}

// decode reconstructs a typed item from its stored hash. Absent fields
// stay zero; mirror attributes are ignored.
func (m *schemaMeta) decode(id string, stored map[string]string, codec Codec) (any, error) {
	v := reflect.New(m.typ).Elem()
	v.Field(m.idIdx).SetString(id)

	for _, s := range m.specs {
		raw, ok := stored[s.fld.Name()]
		if !ok {
			continue
		}
		fv := v.Field(s.structIdx)

		switch s.fld.FieldKind() {
		case field.Keyword:
			fv.SetString(raw)
		case field.Integer:
			n, err := codec.Decode(raw)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", s.fld.Name(), err)
			}
			fv.SetInt(n)
		case field.Timestamp:
			t, err := DecodeTime(raw)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", s.fld.Name(), err)
			}
			fv.Set(reflect.ValueOf(t))
		case field.Date:
			t, err := DecodeDate(raw)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", s.fld.Name(), err)
			}
			fv.Set(reflect.ValueOf(t))
		}
	}

	return v.Interface(), nil
}

// idMaterial renders the encoded content in a canonical order so reloading
// the same item derives the same id.
func idMaterial(fields map[string]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(fields[name])
		b.WriteByte('\n')
	}
	return b.String()
}
