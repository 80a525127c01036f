package magicsig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

var errTrailingData = errors.New("trailing data after JSON value")

type inputKind int

const (
	inputRecord inputKind = iota
	inputJSON
	inputYAML
	inputXML
)

func (k inputKind) String() string {
	switch k {
	case inputRecord:
		return "record"
	case inputJSON:
		return "json"
	case inputYAML:
		return "yaml"
	case inputXML:
		return "xml"
	default:
		return "unknown"
	}
}

// Input is the source of a structured record: either an already decoded
// record or raw text that is decoded before parsing. The zero value is an
// empty record.
type Input struct {
	kind   inputKind
	text   []byte
	record map[string]any
}

// FromRecord returns an Input over a decoded record, as produced by
// encoding/json or yaml.v3 unmarshaling into map[string]any.
func FromRecord(record map[string]any) Input {
	return Input{kind: inputRecord, record: record}
}

// FromJSON returns an Input over JSON text.
func FromJSON(text []byte) Input {
	return Input{kind: inputJSON, text: text}
}

// FromYAML returns an Input over YAML text.
func FromYAML(text []byte) Input {
	return Input{kind: inputYAML, text: text}
}

// FromXML returns an Input over XML text. XML records are not supported and
// always fail to resolve with ErrUnsupportedFormat.
func FromXML(text []byte) Input {
	return Input{kind: inputXML, text: text}
}

// Record resolves the input into a decoded record.
func (in Input) Record() (map[string]any, error) {
	var (
		doc any
		err error
	)

	switch in.kind {
	case inputRecord:
		if in.record == nil {
			return map[string]any{}, nil
		}

		return in.record, nil

	case inputJSON:
		dec := json.NewDecoder(bytes.NewReader(in.text))
		dec.UseNumber()
		err = dec.Decode(&doc)
		if err == nil {
			var extra any
			if !errors.Is(dec.Decode(&extra), io.EOF) {
				err = errTrailingData
			}
		}

	case inputYAML:
		err = yaml.Unmarshal(in.text, &doc)

	case inputXML:
		return nil, fmt.Errorf("%w: xml", ErrUnsupportedFormat)

	default:
		return nil, fmt.Errorf("%w: unknown input kind %d", ErrType, in.kind)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFormat, in.kind, err)
	}

	record, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected %s object, got %T", ErrType, in.kind, doc)
	}

	return record, nil
}

// stringField returns the string value stored under the first present key.
// Absent or null values are empty.
func stringField(record map[string]any, keys ...string) (string, error) {
	for _, key := range keys {
		v, ok := record[key]
		if !ok || v == nil {
			continue
		}

		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("%w: field %q must be a string, got %T", ErrType, key, v)
		}

		return s, nil
	}

	return "", nil
}

// asRecord converts a nested value into a record. Nested YAML mappings with
// non-string keys decode as map[any]any and are not records.
func asRecord(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, s := range m {
			out[k] = s
		}

		return out, true
	default:
		return nil, false
	}
}
