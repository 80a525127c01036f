package magicsig

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vitalvas/magicsig/b64url"
)

// Envelope wraps a base64url-encoded payload with its media type, encoding,
// signing algorithm and signatures.
//
// Data may contain whitespace; it is ignored by Payload and MessageString
// and removed when the envelope is marshaled.
type Envelope struct {
	Data       string
	DataType   string
	Encoding   string
	Algorithm  Algorithm
	Signatures []Signature
}

// envelopeRecord is the serialized field order of an envelope.
type envelopeRecord struct {
	Data     string      `json:"data" yaml:"data"`
	DataType string      `json:"data_type" yaml:"data_type"`
	Encoding string      `json:"encoding" yaml:"encoding"`
	Alg      string      `json:"alg" yaml:"alg"`
	Sigs     []Signature `json:"sigs" yaml:"sigs"`
}

func (e *Envelope) record() envelopeRecord {
	sigs := e.Signatures
	if sigs == nil {
		sigs = []Signature{}
	}

	return envelopeRecord{
		Data:     b64url.StripWhitespace(e.Data),
		DataType: e.DataType,
		Encoding: e.Encoding,
		Alg:      e.Algorithm.String(),
		Sigs:     sigs,
	}
}

// MarshalJSON writes the envelope with whitespace-free data and a sigs list
// that is never null.
func (e Envelope) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.record())
}

// UnmarshalJSON parses the envelope with ParseEnvelopeJSON.
func (e *Envelope) UnmarshalJSON(data []byte) error {
	parsed, err := ParseEnvelopeJSON(data)
	if err != nil {
		return err
	}

	*e = *parsed

	return nil
}

// MarshalYAML implements yaml.Marshaler with the same shape as MarshalJSON.
func (e Envelope) MarshalYAML() (any, error) {
	return e.record(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (e *Envelope) UnmarshalYAML(value *yaml.Node) error {
	var doc any
	if err := value.Decode(&doc); err != nil {
		return fmt.Errorf("%w: yaml: %w", ErrFormat, err)
	}

	record, ok := doc.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: expected yaml object, got %T", ErrType, doc)
	}

	parsed, err := envelopeFromRecord(record)
	if err != nil {
		return err
	}

	*e = *parsed

	return nil
}

// NewEnvelope returns an unsigned envelope over payload using the base64url
// encoding and the RSA-SHA256 algorithm.
func NewEnvelope(payload []byte, dataType string) *Envelope {
	return &Envelope{
		Data:      b64url.Encode(payload),
		DataType:  dataType,
		Encoding:  EncodingBase64URL,
		Algorithm: AlgorithmRSASHA256,
	}
}

// Payload returns the decoded payload.
func (e *Envelope) Payload() ([]byte, error) {
	return b64url.Decode(b64url.StripWhitespace(e.Data))
}

// MessageString returns the canonical text that is signed and verified:
//
//	data "." b64url(data_type) "." b64url(encoding) "." b64url(alg)
//
// where data has all whitespace removed. Signatures do not contribute.
func (e *Envelope) MessageString() string {
	return b64url.StripWhitespace(e.Data) +
		"." + b64url.Encode([]byte(e.DataType)) +
		"." + b64url.Encode([]byte(e.Encoding)) +
		"." + b64url.Encode([]byte(e.Algorithm))
}

// AddSignature appends sig to the envelope's signatures.
func (e *Envelope) AddSignature(sig Signature) {
	e.Signatures = append(e.Signatures, sig)
}

// ToRecord returns the envelope as a decoded record with whitespace removed
// from the data field. ParseEnvelope(FromRecord(e.ToRecord())) reproduces e.
func (e *Envelope) ToRecord() map[string]any {
	sigs := make([]any, 0, len(e.Signatures))
	for _, sig := range e.Signatures {
		sigs = append(sigs, map[string]any{
			"value":  sig.Value,
			"key_id": sig.KeyID,
		})
	}

	return map[string]any{
		"data":      b64url.StripWhitespace(e.Data),
		"data_type": e.DataType,
		"encoding":  e.Encoding,
		"alg":       e.Algorithm.String(),
		"sigs":      sigs,
	}
}

// ParseEnvelope parses an envelope record. The algorithm is read from "alg",
// falling back to "algorithm"; signatures from "sigs", falling back to
// "signatures". Missing fields are left empty.
func ParseEnvelope(in Input) (*Envelope, error) {
	record, err := in.Record()
	if err != nil {
		return nil, err
	}

	return envelopeFromRecord(record)
}

// ParseEnvelopeJSON parses a JSON envelope.
func ParseEnvelopeJSON(text []byte) (*Envelope, error) {
	return ParseEnvelope(FromJSON(text))
}

// ParseEnvelopeYAML parses a YAML envelope.
func ParseEnvelopeYAML(text []byte) (*Envelope, error) {
	return ParseEnvelope(FromYAML(text))
}

func envelopeFromRecord(record map[string]any) (*Envelope, error) {
	var (
		env Envelope
		err error
	)

	if env.Data, err = stringField(record, "data"); err != nil {
		return nil, err
	}

	if env.DataType, err = stringField(record, "data_type"); err != nil {
		return nil, err
	}

	if env.Encoding, err = stringField(record, "encoding"); err != nil {
		return nil, err
	}

	alg, err := stringField(record, "alg", "algorithm")
	if err != nil {
		return nil, err
	}
	env.Algorithm = Algorithm(alg)

	sigs, err := signatureList(record)
	if err != nil {
		return nil, err
	}
	env.Signatures = sigs

	return &env, nil
}

func signatureList(record map[string]any) ([]Signature, error) {
	raw, ok := record["sigs"]
	if !ok || raw == nil {
		raw = record["signatures"]
	}

	var items []any

	switch v := raw.(type) {
	case nil:
		return []Signature{}, nil
	case []any:
		items = v
	case []map[string]any:
		items = make([]any, len(v))
		for i, m := range v {
			items[i] = m
		}
	default:
		return nil, fmt.Errorf("%w: sigs must be a list, got %T", ErrType, raw)
	}

	sigs := make([]Signature, 0, len(items))
	for i, item := range items {
		m, ok := asRecord(item)
		if !ok {
			return nil, fmt.Errorf("%w: sigs[%d] must be an object, got %T", ErrType, i, item)
		}

		sig, err := signatureFromRecord(m)
		if err != nil {
			return nil, fmt.Errorf("sigs[%d]: %w", i, err)
		}

		sigs = append(sigs, *sig)
	}

	return sigs, nil
}
