package magicsig

// Algorithm names the signing algorithm declared by an envelope.
type Algorithm string

// AlgorithmRSASHA256 is RSASSA-PKCS1-v1_5 over a SHA-256 digest of the
// message string.
const AlgorithmRSASHA256 Algorithm = "RSA-SHA256"

// EncodingBase64URL is the only data encoding defined for envelopes.
const EncodingBase64URL = "base64url"

// String returns the algorithm name as it appears in envelopes.
func (a Algorithm) String() string {
	return string(a)
}

// Signer produces the signatures attached to an envelope.
type Signer interface {
	// Sign signs the envelope message string. The digest is computed by
	// the signer, not the caller.
	Sign(message []byte) ([]byte, error)

	// Algorithm is the value the envelope's alg field must carry.
	Algorithm() Algorithm

	// KeyID is stored as the key_id of every signature this signer makes,
	// normally the magic key id of the matching public key.
	KeyID() string
}

// Verifier checks envelope signatures against a single public key.
type Verifier interface {
	// Verify checks signature over the envelope message string. A
	// mismatch is ErrSignatureInvalid; any other error means the key or
	// input could not be used.
	Verify(message, signature []byte) error

	// Algorithm is the envelope alg value this verifier accepts.
	Algorithm() Algorithm

	// KeyID is the key id of the public key behind this verifier.
	KeyID() string
}
