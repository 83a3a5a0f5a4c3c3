package compress

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewCodec("", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCodec_RoundTrip(t *testing.T) {
	c := newTestCodec(t)

	random := make([]byte, 4096)
	_, err := rand.Read(random)
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"repetitive", bytes.Repeat([]byte("mutual"), 1000)},
		{"random", random},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := c.Decompress(c.Compress(tt.data))
			require.NoError(t, err)
			assert.Equal(t, len(tt.data), len(out))
			assert.True(t, bytes.Equal(tt.data, out))
		})
	}
}

func TestCodec_CompressesRepetitiveData(t *testing.T) {
	c := newTestCodec(t)
	data := bytes.Repeat([]byte{0xab}, 1<<16)

	assert.Less(t, len(c.Compress(data)), len(data)/10)
}

func TestCodec_DecompressGarbage(t *testing.T) {
	c := newTestCodec(t)

	_, err := c.Decompress([]byte("definitely not a zstd frame"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestCodec_DecodedSizeLimit(t *testing.T) {
	c, err := NewCodec("fastest", 1024)
	require.NoError(t, err)
	defer c.Close()

	frame := c.Compress(make([]byte, 1<<20))
	_, err = c.Decompress(frame)
	assert.ErrorIs(t, err, ErrTooLarge)
	// валидный кадр не должен считаться повреждённым
	assert.NotErrorIs(t, err, ErrCorrupt)
	assert.Equal(t, uint64(1024), c.MaxDecoded())
}

func TestNewCodec_DefaultLimit(t *testing.T) {
	c := newTestCodec(t)
	assert.Equal(t, uint64(DefaultMaxDecodedSize), c.MaxDecoded())
}

func TestNewCodec_UnknownLevel(t *testing.T) {
	_, err := NewCodec("ultra", 0)
	assert.Error(t, err)
}
