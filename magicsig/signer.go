package magicsig

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"errors"
	"fmt"
	"math/big"
)

// minRSAKeyBits is the smallest modulus crypto/rsa accepts under its default
// policy.
const minRSAKeyBits = 1024

// SignerOption configures a Signer.
type SignerOption func(*rsaSHA256Signer)

// WithKeyID overrides the key id recorded with each signature. By default
// the id is derived from the signer's public key.
func WithKeyID(keyID string) SignerOption {
	return func(s *rsaSHA256Signer) {
		s.keyID = keyID
	}
}

type rsaSHA256Signer struct {
	key   *rsa.PrivateKey
	keyID string
}

// NewRSASHA256Signer creates a Signer using RSASSA-PKCS1-v1_5 with SHA-256.
// Keys shorter than 1024 bits fail with ErrKeyFormat.
func NewRSASHA256Signer(key *rsa.PrivateKey, opts ...SignerOption) (Signer, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: rsa private key must not be nil", ErrKeyFormat)
	}

	if err := checkKeySize(key.N); err != nil {
		return nil, err
	}

	s := &rsaSHA256Signer{key: key}
	for _, opt := range opts {
		opt(s)
	}

	if s.keyID == "" {
		pub, err := FromRSA(&key.PublicKey)
		if err != nil {
			return nil, err
		}

		s.keyID = pub.KeyID()
	}

	return s, nil
}

func (s *rsaSHA256Signer) Sign(message []byte) ([]byte, error) {
	digest := sha256.Sum256(message)

	return rsa.SignPKCS1v15(rand.Reader, s.key, crypto.SHA256, digest[:])
}

func (s *rsaSHA256Signer) Algorithm() Algorithm { return AlgorithmRSASHA256 }
func (s *rsaSHA256Signer) KeyID() string        { return s.keyID }

type rsaSHA256Verifier struct {
	key   *rsa.PublicKey
	keyID string
}

// NewRSASHA256Verifier creates a Verifier using RSASSA-PKCS1-v1_5 with
// SHA-256. Keys shorter than 1024 bits fail with ErrKeyFormat.
func NewRSASHA256Verifier(key *PublicKey) (Verifier, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: public key must not be nil", ErrKeyFormat)
	}

	pub, err := key.RSA()
	if err != nil {
		return nil, err
	}

	if err := checkKeySize(pub.N); err != nil {
		return nil, err
	}

	return &rsaSHA256Verifier{key: pub, keyID: key.KeyID()}, nil
}

func (v *rsaSHA256Verifier) Verify(message, signature []byte) error {
	digest := sha256.Sum256(message)

	err := rsa.VerifyPKCS1v15(v.key, crypto.SHA256, digest[:], signature)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, rsa.ErrVerification):
		return ErrSignatureInvalid
	default:
		return fmt.Errorf("%w: %w", ErrKeyFormat, err)
	}
}

func (v *rsaSHA256Verifier) Algorithm() Algorithm { return AlgorithmRSASHA256 }
func (v *rsaSHA256Verifier) KeyID() string        { return v.keyID }

func checkKeySize(n *big.Int) error {
	if n == nil || n.BitLen() < minRSAKeyBits {
		return fmt.Errorf("%w: rsa key must be at least %d bits", ErrKeyFormat, minRSAKeyBits)
	}

	return nil
}
