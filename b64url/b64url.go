package b64url

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"unicode"
)

var (
	// ErrDecode is returned when the input contains characters outside the
	// base64url alphabet.
	ErrDecode = errors.New("b64url: malformed base64url data")

	// ErrNegative is returned when a negative or nil integer is encoded.
	ErrNegative = errors.New("b64url: integer must be non-negative")
)

var alphabetToStd = strings.NewReplacer("-", "+", "_", "/")

// Encode returns the unpadded base64url encoding of b.
func Encode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// StripWhitespace removes every whitespace character from s.
func StripWhitespace(s string) string {
	if strings.IndexFunc(s, unicode.IsSpace) < 0 {
		return s
	}

	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}

		return r
	}, s)
}

// Decode decodes base64url text. Whitespace and trailing padding are
// ignored.
func Decode(s string) ([]byte, error) {
	s = StripWhitespace(s)
	s = strings.TrimRight(s, "=")

	b, err := base64.RawStdEncoding.DecodeString(alphabetToStd.Replace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return b, nil
}

// DecodeUint decodes base64url text into an unsigned big-endian integer.
func DecodeUint(s string) (*big.Int, error) {
	b, err := Decode(s)
	if err != nil {
		return nil, err
	}

	return new(big.Int).SetBytes(b), nil
}

// EncodeUint encodes n as base64url over its minimal big-endian bytes.
// Zero is encoded as a single zero byte.
func EncodeUint(n *big.Int) (string, error) {
	if n == nil || n.Sign() < 0 {
		return "", ErrNegative
	}

	b := n.Bytes()
	if len(b) == 0 {
		b = []byte{0}
	}

	return Encode(b), nil
}

// MustEncodeUint is like EncodeUint but panics on negative input.
func MustEncodeUint(n *big.Int) string {
	s, err := EncodeUint(n)
	if err != nil {
		panic(err)
	}

	return s
}
