package codec

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	inputs := [][]byte{
		{},
		[]byte("foo"),
		{0x00},
		{0xff, 0xfe, 0xfd},
		[]byte("Atraso de 40 minutos"),
	}
	for n := 1; n <= 64; n++ {
		b := make([]byte, n)
		_, err := rand.Read(b)
		require.NoError(t, err)
		inputs = append(inputs, b)
	}

	for _, in := range inputs {
		out, err := Decode(Encode(in))
		require.NoError(t, err)
		assert.Equal(t, in, out)
	}
}

func TestDecode(t *testing.T) {
	t.Run("known value", func(t *testing.T) {
		b, err := Decode("Zm9v")
		require.NoError(t, err)
		assert.Equal(t, []byte("foo"), b)
	})

	t.Run("empty", func(t *testing.T) {
		b, err := Decode("")
		require.NoError(t, err)
		assert.NotNil(t, b)
		assert.Empty(t, b)
	})

	malformed := map[string]string{
		"outside alphabet":  "Zm9v!",
		"url alphabet":      "-_-_",
		"missing padding":   "Zm8",
		"excess padding":    "Zm9v=",
		"padding in middle": "Zm=9v",
		"non-zero pad bits": "Zm9=",
		"truncated quantum": "Z",
	}
	for name, in := range malformed {
		t.Run(name, func(t *testing.T) {
			b, err := Decode(in)
			assert.ErrorIs(t, err, ErrMalformedEncoding)
			assert.Nil(t, b)
		})
	}
}
