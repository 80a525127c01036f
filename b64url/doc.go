// Package b64url implements the base64url codec used by Magic Signatures.
//
// Encode always produces unpadded URL-safe output. Decode is lenient: it
// ignores embedded whitespace, accepts the standard alphabet as well as the
// URL-safe one, and tolerates any amount of trailing "=" padding, including
// the extra block some producers append when the input length is already a
// multiple of four.
//
// EncodeUint and DecodeUint serialize unsigned big integers as their minimal
// big-endian byte form, which is how RSA key components appear in magic keys:
//
//	s, err := b64url.EncodeUint(big.NewInt(65537)) // "AQAB"
//	n, err := b64url.DecodeUint("AQAB")            // 65537
package b64url
