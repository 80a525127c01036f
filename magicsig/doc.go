// Package magicsig implements Magic Signatures envelopes: a payload wrapped
// with its media type and one or more RSA-SHA256 signatures, verifiable
// without any prior handshake between signer and recipient.
//
// # Message String
//
// What gets signed is not the payload but the message string, built from
// the four scalar envelope fields:
//
//	strip(data) "." b64url(data_type) "." b64url(encoding) "." b64url(alg)
//
// Whitespace inside data never changes the message string, so producers may
// wrap long base64url text freely.
//
// # Signing
//
//	signer, err := magicsig.NewRSASHA256Signer(privateKey)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	env := magicsig.NewEnvelope(entry, "application/atom+xml")
//	if err := env.Sign(signer); err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := json.Marshal(env)
//
// # Verifying
//
// Key lookup is the caller's concern. A KeyResolver maps a signature's key
// id to a PublicKey; StaticKeys builds one over known keys:
//
//	env, err := magicsig.ParseEnvelopeJSON(body)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ok, err := env.Verify(magicsig.StaticKeys(publicKey))
//
// A signature that does not match yields ok == false; errors are reserved
// for malformed envelopes and resolver failures.
//
// # Keys
//
// Public keys travel in the compact magic key form
// RSA.<b64url(modulus)>.<b64url(exponent)>. The default key id is the
// unpadded base64url SHA-256 digest of that text. PEM and DER forms are
// handled by crypto/x509.
package magicsig
