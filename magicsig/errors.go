package magicsig

import (
	"errors"

	"github.com/vitalvas/magicsig/b64url"
)

// Parse errors.
var (
	// ErrDecode is returned when a base64url field contains characters
	// outside the alphabet.
	ErrDecode = b64url.ErrDecode

	// ErrFormat is returned when magic key or record text does not match
	// the required grammar.
	ErrFormat = errors.New("magicsig: malformed input")

	// ErrKeyFormat is returned when PEM or DER key material is rejected.
	ErrKeyFormat = errors.New("magicsig: invalid key material")

	// ErrType is returned when a record has an unsupported shape, such as a
	// top-level array or a non-string field value.
	ErrType = errors.New("magicsig: unsupported record shape")

	// ErrUnsupportedFormat is returned for serializations that are not
	// implemented, currently the XML signature form.
	ErrUnsupportedFormat = errors.New("magicsig: unsupported serialization format")
)

// Signing and verification errors.
var (
	// ErrNoSigner is returned when Sign is called with a nil Signer.
	ErrNoSigner = errors.New("magicsig: signer must not be nil")

	// ErrNoResolver is returned when Verify is called with a nil KeyResolver.
	ErrNoResolver = errors.New("magicsig: key resolver must not be nil")

	// ErrNoSignatures is returned when verifying an envelope that carries
	// no signatures.
	ErrNoSignatures = errors.New("magicsig: envelope has no signatures")

	// ErrUnsupportedAlgorithm is returned when the envelope algorithm or
	// encoding does not match what the signer or verifier implements.
	ErrUnsupportedAlgorithm = errors.New("magicsig: unsupported algorithm")

	// ErrKeyNotFound is returned by a KeyResolver that has no key for the
	// requested key id. Verify skips such signatures.
	ErrKeyNotFound = errors.New("magicsig: key not found")

	// ErrSignatureInvalid is returned by a Verifier when the signature does
	// not match the message.
	ErrSignatureInvalid = errors.New("magicsig: signature verification failed")
)
