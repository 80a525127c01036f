package magicsig

import (
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"sync"

	"github.com/vitalvas/magicsig/b64url"
)

// magicKeyPattern matches the compact RSA.<modulus>.<exponent> form.
var magicKeyPattern = regexp.MustCompile(`^RSA\.([A-Za-z0-9_-]+)\.([A-Za-z0-9_-]+)$`)

// PublicKey is an RSA public key as carried by Magic Signatures.
//
// N and E must not be modified after the key is created. The key id is
// derived lazily from the magic key text and cached; a PublicKey is safe
// for concurrent use.
type PublicKey struct {
	N *big.Int
	E *big.Int

	mu    sync.Mutex
	keyID string
}

// NewPublicKey creates a PublicKey from a modulus and exponent. The values
// are copied.
func NewPublicKey(n, e *big.Int) *PublicKey {
	return &PublicKey{
		N: new(big.Int).Set(n),
		E: new(big.Int).Set(e),
	}
}

// FromRSA creates a PublicKey from a crypto/rsa public key.
func FromRSA(key *rsa.PublicKey) (*PublicKey, error) {
	if key == nil || key.N == nil {
		return nil, fmt.Errorf("%w: rsa public key must not be nil", ErrKeyFormat)
	}

	return NewPublicKey(key.N, big.NewInt(int64(key.E))), nil
}

// String returns the magic key form RSA.<modulus>.<exponent>. A nil or
// negative component is rendered empty; MarshalText rejects such keys.
func (k *PublicKey) String() string {
	return "RSA." + componentText(k.N) + "." + componentText(k.E)
}

func componentText(n *big.Int) string {
	s, err := b64url.EncodeUint(n)
	if err != nil {
		return ""
	}

	return s
}

// MarshalText implements encoding.TextMarshaler using the magic key form.
func (k *PublicKey) MarshalText() ([]byte, error) {
	if k.N == nil || k.E == nil {
		return nil, fmt.Errorf("%w: modulus and exponent are required", ErrKeyFormat)
	}

	if k.N.Sign() < 0 || k.E.Sign() < 0 {
		return nil, fmt.Errorf("%w: %w", ErrKeyFormat, b64url.ErrNegative)
	}

	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseMagicKey.
func (k *PublicKey) UnmarshalText(text []byte) error {
	parsed, err := ParseMagicKey(string(text))
	if err != nil {
		return err
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	k.N, k.E, k.keyID = parsed.N, parsed.E, ""

	return nil
}

// KeyID returns the assigned key id, or the unpadded base64url SHA-256
// digest of the magic key form. The derived value is computed once.
func (k *PublicKey) KeyID() string {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.keyID == "" {
		sum := sha256.Sum256([]byte(k.String()))
		k.keyID = b64url.Encode(sum[:])
	}

	return k.keyID
}

// SetKeyID assigns an explicit key id, replacing the derived one.
func (k *PublicKey) SetKeyID(id string) {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.keyID = id
}

// Equal reports whether k and other have the same modulus and exponent.
// Key ids are not compared.
func (k *PublicKey) Equal(other *PublicKey) bool {
	if k == nil || other == nil {
		return k == other
	}

	return equalInt(k.N, other.N) && equalInt(k.E, other.E)
}

func equalInt(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.Cmp(b) == 0
}

// RSA returns the key as a crypto/rsa public key.
func (k *PublicKey) RSA() (*rsa.PublicKey, error) {
	if k.N == nil || k.N.Sign() <= 0 {
		return nil, fmt.Errorf("%w: modulus must be positive", ErrKeyFormat)
	}

	if k.E == nil || k.E.Sign() <= 0 || !k.E.IsInt64() || k.E.Int64() > math.MaxInt {
		return nil, fmt.Errorf("%w: exponent out of range", ErrKeyFormat)
	}

	return &rsa.PublicKey{N: k.N, E: int(k.E.Int64())}, nil
}

// ToDER returns the PKIX, ASN.1 DER form of the key.
func (k *PublicKey) ToDER() ([]byte, error) {
	pub, err := k.RSA()
	if err != nil {
		return nil, err
	}

	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyFormat, err)
	}

	return der, nil
}

// ToPEM returns the key as a PEM "PUBLIC KEY" block.
func (k *PublicKey) ToPEM() ([]byte, error) {
	der, err := k.ToDER()
	if err != nil {
		return nil, err
	}

	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), nil
}

// ParseMagicKey parses the compact RSA.<modulus>.<exponent> form.
func ParseMagicKey(text string) (*PublicKey, error) {
	m := magicKeyPattern.FindStringSubmatch(text)
	if m == nil {
		return nil, fmt.Errorf("%w: magic key must match RSA.<modulus>.<exponent>", ErrFormat)
	}

	n, err := b64url.DecodeUint(m[1])
	if err != nil {
		return nil, fmt.Errorf("%w: modulus: %w", ErrFormat, err)
	}

	e, err := b64url.DecodeUint(m[2])
	if err != nil {
		return nil, fmt.Errorf("%w: exponent: %w", ErrFormat, err)
	}

	return &PublicKey{N: n, E: e}, nil
}

// ParsePEM parses the first PEM block in data. Public keys (PKIX or
// PKCS #1), private keys (PKCS #1 or PKCS #8) and certificates are accepted
// as long as they hold an RSA key.
func ParsePEM(data []byte) (*PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrKeyFormat)
	}

	var (
		key any
		err error
	)

	switch block.Type {
	case "PUBLIC KEY":
		key, err = x509.ParsePKIXPublicKey(block.Bytes)
	case "RSA PUBLIC KEY":
		key, err = x509.ParsePKCS1PublicKey(block.Bytes)
	case "RSA PRIVATE KEY":
		key, err = x509.ParsePKCS1PrivateKey(block.Bytes)
	case "PRIVATE KEY":
		key, err = x509.ParsePKCS8PrivateKey(block.Bytes)
	case "CERTIFICATE":
		var cert *x509.Certificate
		if cert, err = x509.ParseCertificate(block.Bytes); err == nil {
			key = cert.PublicKey
		}
	default:
		return nil, fmt.Errorf("%w: unsupported PEM block type %q", ErrKeyFormat, block.Type)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyFormat, err)
	}

	return fromCryptoKey(key)
}

// ParseDER parses DER key material, trying PKIX, PKCS #1, PKCS #8 and
// X.509 certificates in turn. It accepts the same material as ParsePEM.
func ParseDER(der []byte) (*PublicKey, error) {
	if key, err := x509.ParsePKIXPublicKey(der); err == nil {
		return fromCryptoKey(key)
	}

	if key, err := x509.ParsePKCS1PublicKey(der); err == nil {
		return fromCryptoKey(key)
	}

	if key, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return fromCryptoKey(key)
	}

	if key, err := x509.ParsePKCS8PrivateKey(der); err == nil {
		return fromCryptoKey(key)
	}

	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, fmt.Errorf("%w: unrecognized DER key encoding", ErrKeyFormat)
	}

	return fromCryptoKey(cert.PublicKey)
}

func fromCryptoKey(key any) (*PublicKey, error) {
	switch k := key.(type) {
	case *rsa.PublicKey:
		return FromRSA(k)
	case *rsa.PrivateKey:
		return FromRSA(&k.PublicKey)
	default:
		return nil, fmt.Errorf("%w: key type %T is not RSA", ErrKeyFormat, key)
	}
}
