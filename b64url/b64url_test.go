package b64url

import (
	"crypto/rand"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"empty", nil, ""},
		{"one byte", []byte{0xfb}, "-w"},
		{"two bytes", []byte{0xfb, 0xff}, "-_8"},
		{"three bytes", []byte("abc"), "YWJj"},
		{"text", []byte("Not really Atom"), "Tm90IHJlYWxseSBBdG9t"},
		{"media type", []byte("application/atom+xml"), "YXBwbGljYXRpb24vYXRvbSt4bWw"},
		{"algorithm", []byte("RSA-SHA256"), "UlNBLVNIQTI1Ng"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Encode(tt.in)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "=")
			assert.NotContains(t, got, "+")
			assert.NotContains(t, got, "/")
		})
	}
}

func TestDecode(t *testing.T) {
	t.Run("unpadded", func(t *testing.T) {
		b, err := Decode("Tm90IHJlYWxseSBBdG9t")
		require.NoError(t, err)
		assert.Equal(t, "Not really Atom", string(b))
	})

	t.Run("url safe alphabet", func(t *testing.T) {
		b, err := Decode("-_8")
		require.NoError(t, err)
		assert.Equal(t, []byte{0xfb, 0xff}, b)
	})

	t.Run("standard alphabet", func(t *testing.T) {
		b, err := Decode("+/8=")
		require.NoError(t, err)
		assert.Equal(t, []byte{0xfb, 0xff}, b)
	})

	t.Run("over padded", func(t *testing.T) {
		b, err := Decode("YWJj====")
		require.NoError(t, err)
		assert.Equal(t, "abc", string(b))

		b, err = Decode("YQ======")
		require.NoError(t, err)
		assert.Equal(t, "a", string(b))
	})

	t.Run("embedded whitespace", func(t *testing.T) {
		b, err := Decode("\t\tTm9  \t0IHJl\n  YWxseSBBdG9t\n\n\n    ")
		require.NoError(t, err)
		assert.Equal(t, "Not really Atom", string(b))
	})

	t.Run("empty", func(t *testing.T) {
		b, err := Decode("")
		require.NoError(t, err)
		assert.Empty(t, b)
	})

	t.Run("invalid characters", func(t *testing.T) {
		for _, in := range []string{"ab!d", "Tm9*", "a=bc", "A"} {
			_, err := Decode(in)
			assert.ErrorIs(t, err, ErrDecode, in)
		}
	})
}

func TestRoundTrip(t *testing.T) {
	for size := range 64 {
		b := make([]byte, size)
		_, err := rand.Read(b)
		require.NoError(t, err)

		got, err := Decode(Encode(b))
		require.NoError(t, err)
		assert.Equal(t, b, got, "size %d", size)
	}
}

func TestWhitespaceTolerance(t *testing.T) {
	b := make([]byte, 90)
	_, err := rand.Read(b)
	require.NoError(t, err)

	encoded := Encode(b)

	var wrapped strings.Builder
	separators := []string{"\n", " ", "\t", "\r\n"}
	for i, r := range encoded {
		if i > 0 && i%7 == 0 {
			wrapped.WriteString(separators[i%len(separators)])
		}
		wrapped.WriteRune(r)
	}

	want, err := Decode(encoded)
	require.NoError(t, err)

	got, err := Decode(wrapped.String())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = Decode(StripWhitespace(wrapped.String()))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStripWhitespace(t *testing.T) {
	assert.Equal(t, "abc", StripWhitespace("abc"))
	assert.Equal(t, "abcd", StripWhitespace(" a\tb\nc\r\vd\f "))
	assert.Equal(t, "", StripWhitespace(" \n\t"))
}

func TestUint(t *testing.T) {
	t.Run("known values", func(t *testing.T) {
		tests := []struct {
			n    int64
			want string
		}{
			{0, "AA"},
			{1, "AQ"},
			{255, "_w"},
			{256, "AQA"},
			{65537, "AQAB"},
		}

		for _, tt := range tests {
			got, err := EncodeUint(big.NewInt(tt.n))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			n, err := DecodeUint(tt.want)
			require.NoError(t, err)
			assert.Equal(t, tt.n, n.Int64())
		}
	})

	t.Run("leading zero bytes are stripped", func(t *testing.T) {
		n, err := DecodeUint(Encode([]byte{0, 0, 0, 1, 0}))
		require.NoError(t, err)
		assert.Equal(t, int64(256), n.Int64())

		s, err := EncodeUint(n)
		require.NoError(t, err)
		assert.Equal(t, Encode([]byte{1, 0}), s)
	})

	t.Run("empty decodes to zero", func(t *testing.T) {
		n, err := DecodeUint("")
		require.NoError(t, err)
		assert.Equal(t, 0, n.Sign())
	})

	t.Run("round trip large values", func(t *testing.T) {
		limit := new(big.Int).Lsh(big.NewInt(1), 4096)
		for range 32 {
			n, err := rand.Int(rand.Reader, limit)
			require.NoError(t, err)

			s, err := EncodeUint(n)
			require.NoError(t, err)

			got, err := DecodeUint(s)
			require.NoError(t, err)
			assert.Equal(t, 0, n.Cmp(got))
		}
	})

	t.Run("negative rejected", func(t *testing.T) {
		_, err := EncodeUint(big.NewInt(-1))
		assert.ErrorIs(t, err, ErrNegative)

		_, err = EncodeUint(nil)
		assert.ErrorIs(t, err, ErrNegative)

		assert.Panics(t, func() { MustEncodeUint(big.NewInt(-5)) })
	})

	t.Run("invalid text", func(t *testing.T) {
		_, err := DecodeUint("not~valid")
		assert.ErrorIs(t, err, ErrDecode)
	})
}
