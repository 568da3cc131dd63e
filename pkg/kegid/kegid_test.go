package kegid

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKegID_Format(t *testing.T) {
	for i := 0; i < 200; i++ {
		id := GenerateKegID()
		assert.True(t, IsValidKegID(id), "unexpected keg id %q", id)
	}
}

func TestGenerateQRCode_RoundTrip(t *testing.T) {
	for i := 0; i < 200; i++ {
		id := GenerateKegID()
		qr := GenerateQRCode(id)
		require.True(t, IsValidQRCode(qr), "unexpected qr code %q", qr)
		assert.Equal(t, id, ExtractKegIDFromQR(qr))
	}
}

func TestExtractKegIDFromQR(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "qr code", in: "SK12345678", want: "K-12345678"},
		{name: "already a keg id", in: "K-12345678", want: "K-12345678"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractKegIDFromQR(tt.in))
		})
	}
}

func TestFormatValidators(t *testing.T) {
	assert.True(t, IsValidQRCode("SK00000001"))
	assert.False(t, IsValidQRCode("SK1234567"))
	assert.False(t, IsValidQRCode("sk12345678"))
	assert.False(t, IsValidQRCode("SK12345678 "))

	assert.True(t, IsValidKegID("K-87654321"))
	assert.False(t, IsValidKegID("K-8765"))
	assert.False(t, IsValidKegID("SK87654321"))
}

func TestGenerateUniqueKegID(t *testing.T) {
	t.Run("skips taken ids", func(t *testing.T) {
		calls := 0
		id, err := GenerateUniqueKegID(func(string) bool {
			calls++
			return calls < 3
		}, 5)
		require.NoError(t, err)
		assert.True(t, IsValidKegID(id))
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up", func(t *testing.T) {
		_, err := GenerateUniqueKegID(func(string) bool { return true }, 4)
		assert.ErrorIs(t, err, ErrIDSpaceExhausted)
	})
}

func TestRenderPNG(t *testing.T) {
	png, err := RenderPNG("SK12345678", 128)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	_, err = RenderPNG("not-a-code", 128)
	assert.Error(t, err)
}
