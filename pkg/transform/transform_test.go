package transform

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef")

func TestSealOpenRoundTrip(t *testing.T) {
	payload := []byte(strings.Repeat("the quick brown fox jumps over the lazy dog ", 50))
	for _, comp := range []string{"zstd", "gzip", "none"} {
		t.Run(comp, func(t *testing.T) {
			p, err := NewSealer(comp, testKey)
			require.NoError(t, err)

			sealed, err := p.Seal(payload)
			require.NoError(t, err)
			assert.False(t, bytes.Contains(sealed, []byte("quick brown")))

			opened, err := p.Open(sealed)
			require.NoError(t, err)
			assert.Equal(t, payload, opened)
		})
	}
}

func TestCompressionShrinksRepetitiveInput(t *testing.T) {
	payload := bytes.Repeat([]byte("A"), 4096)
	p, err := NewSealer("zstd", testKey)
	require.NoError(t, err)
	sealed, err := p.Seal(payload)
	require.NoError(t, err)
	assert.Less(t, len(sealed), len(payload)/4)
}

func TestIDEACTRUsesFreshNonce(t *testing.T) {
	tr, err := NewIDEACTRTransform(testKey)
	require.NoError(t, err)
	a, err := tr.Apply([]byte("same plaintext"))
	require.NoError(t, err)
	b, err := tr.Apply([]byte("same plaintext"))
	require.NoError(t, err)
	assert.Len(t, a, 4+len("same plaintext"))
	assert.NotEqual(t, a, b)
}

func TestIDEACTRReverseTooShort(t *testing.T) {
	tr, err := NewIDEACTRTransform(testKey)
	require.NoError(t, err)
	_, err = tr.Reverse([]byte{1, 2})
	assert.Error(t, err)
}

type failingRand struct{}

func (failingRand) Read([]byte) (int, error) { return 0, errors.New("no entropy") }

func TestIDEACTRNonceFailure(t *testing.T) {
	tr, err := NewIDEACTRTransform(testKey)
	require.NoError(t, err)
	tr.(*ideaCTRTransform).rand = failingRand{}
	_, err = tr.Apply([]byte("x"))
	assert.ErrorContains(t, err, "no entropy")
}

func TestIDEACTRShortKey(t *testing.T) {
	_, err := NewSealer("none", []byte("short"))
	assert.Error(t, err)
}

func TestUnknownCompression(t *testing.T) {
	_, err := NewCompression("lz4")
	assert.Error(t, err)
}

func TestEmptyPipelineRejected(t *testing.T) {
	_, err := NewPayloadProcessor(nil)
	assert.Error(t, err)
}

func TestCorruptCompressedInput(t *testing.T) {
	for _, comp := range []string{"zstd", "gzip"} {
		tr, err := NewCompression(comp)
		require.NoError(t, err)
		_, err = tr.Reverse([]byte("definitely not compressed"))
		assert.Error(t, err, comp)
	}
}

func TestGzipErrorsNameDirection(t *testing.T) {
	_, err := NewGzipTransform().Reverse([]byte{0x1f, 0x8b, 0x08})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open: gzip")
}
