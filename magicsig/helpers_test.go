package magicsig

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testKeys = sync.OnceValues(func() ([2]*rsa.PrivateKey, error) {
	var keys [2]*rsa.PrivateKey
	for i := range keys {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			return keys, err
		}
		keys[i] = key
	}

	return keys, nil
})

// testRSAKey returns one of two cached 2048-bit keys.
func testRSAKey(t *testing.T, i int) *rsa.PrivateKey {
	t.Helper()

	keys, err := testKeys()
	require.NoError(t, err)

	return keys[i]
}

func testPublicKey(t *testing.T, i int) *PublicKey {
	t.Helper()

	pub, err := FromRSA(&testRSAKey(t, i).PublicKey)
	require.NoError(t, err)

	return pub
}

// testCertificate returns a DER self-signed certificate for key.
func testCertificate(t *testing.T, key *rsa.PrivateKey) []byte {
	t.Helper()

	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "magicsig test"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}

	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)

	return der
}
