package magicsig

import (
	"errors"
	"fmt"

	"github.com/vitalvas/magicsig/b64url"
)

// KeyResolver returns the public key for a signature's key id. It returns an
// error wrapping ErrKeyNotFound when the id is unknown.
type KeyResolver func(keyID string) (*PublicKey, error)

// StaticKeys returns a KeyResolver over a fixed set of keys, indexed by
// their key ids at the time of the call. Nil keys are ignored.
func StaticKeys(keys ...*PublicKey) KeyResolver {
	index := make(map[string]*PublicKey, len(keys))
	for _, key := range keys {
		if key == nil {
			continue
		}

		index[key.KeyID()] = key
	}

	return func(keyID string) (*PublicKey, error) {
		key, ok := index[keyID]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, keyID)
		}

		return key, nil
	}
}

// Sign signs the envelope's message string and appends the signature. An
// empty Encoding or Algorithm is filled in before signing.
func (e *Envelope) Sign(signer Signer) error {
	if signer == nil {
		return ErrNoSigner
	}

	if e.Encoding == "" {
		e.Encoding = EncodingBase64URL
	}

	if e.Algorithm == "" {
		e.Algorithm = signer.Algorithm()
	}

	if err := e.checkAlgorithm(signer.Algorithm()); err != nil {
		return err
	}

	sig, err := signer.Sign([]byte(e.MessageString()))
	if err != nil {
		return err
	}

	e.AddSignature(Signature{
		Value: b64url.Encode(sig),
		KeyID: signer.KeyID(),
	})

	return nil
}

// Verify reports whether at least one of the envelope's signatures verifies
// against the key returned by resolver for its key id. A signature that does
// not match is a false result, not an error. Signatures whose key is not
// found are skipped.
func (e *Envelope) Verify(resolver KeyResolver) (bool, error) {
	if resolver == nil {
		return false, ErrNoResolver
	}

	if len(e.Signatures) == 0 {
		return false, ErrNoSignatures
	}

	if err := e.checkAlgorithm(AlgorithmRSASHA256); err != nil {
		return false, err
	}

	message := []byte(e.MessageString())

	for _, sig := range e.Signatures {
		key, err := resolver(sig.KeyID)
		if errors.Is(err, ErrKeyNotFound) {
			continue
		}

		if err != nil {
			return false, err
		}

		verifier, err := NewRSASHA256Verifier(key)
		if err != nil {
			return false, err
		}

		ok, err := VerifySignature(verifier, message, sig)
		if err != nil {
			return false, err
		}

		if ok {
			return true, nil
		}
	}

	return false, nil
}

// VerifySignature checks a single signature over message. Malformed
// signature encoding is an error; a mismatch is a false result.
func VerifySignature(verifier Verifier, message []byte, sig Signature) (bool, error) {
	raw, err := sig.Bytes()
	if err != nil {
		return false, fmt.Errorf("signature %q: %w", sig.KeyID, err)
	}

	switch err := verifier.Verify(message, raw); {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrSignatureInvalid):
		return false, nil
	default:
		return false, err
	}
}

func (e *Envelope) checkAlgorithm(alg Algorithm) error {
	if e.Encoding != EncodingBase64URL {
		return fmt.Errorf("%w: encoding %q", ErrUnsupportedAlgorithm, e.Encoding)
	}

	if e.Algorithm != alg {
		return fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, e.Algorithm)
	}

	return nil
}
