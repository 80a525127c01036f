package magicsig

import (
	"fmt"

	"github.com/vitalvas/magicsig/b64url"
)

// Signature is one signature attached to an envelope. Value holds the
// base64url-encoded signature bytes and KeyID names the key that produced
// them. Neither field is validated here; a signature with an empty field
// simply fails verification.
type Signature struct {
	Value string `json:"value" yaml:"value"`
	KeyID string `json:"key_id" yaml:"key_id"`
}

// Bytes decodes the signature value.
func (s Signature) Bytes() ([]byte, error) {
	return b64url.Decode(s.Value)
}

// ParseSignature parses a signature record with "value" and "key_id"
// fields.
func ParseSignature(in Input) (*Signature, error) {
	record, err := in.Record()
	if err != nil {
		return nil, err
	}

	return signatureFromRecord(record)
}

// ParseSignatureXML always fails with ErrUnsupportedFormat: the XML
// signature serialization is not implemented.
func ParseSignatureXML(_ []byte) (*Signature, error) {
	return nil, fmt.Errorf("%w: xml signature", ErrUnsupportedFormat)
}

func signatureFromRecord(record map[string]any) (*Signature, error) {
	value, err := stringField(record, "value")
	if err != nil {
		return nil, err
	}

	keyID, err := stringField(record, "key_id", "keyid")
	if err != nil {
		return nil, err
	}

	return &Signature{Value: value, KeyID: keyID}, nil
}
