package ctr

import (
	"bytes"
	"crypto/aes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"io"
	"math/rand/v2"
	"testing"

	"idea-go/pkg/idea"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testKey, _ = hex.DecodeString("31323334353637383930313233343536")
	testNonce  = []byte{0xde, 0xad, 0xbe, 0xef}
)

func newTestCipher(t *testing.T) *idea.Cipher {
	t.Helper()
	c, err := idea.NewCipher(testKey)
	require.NoError(t, err)
	return c
}

func randomBytes(rng *rand.Rand, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(rng.Uint32())
	}
	return b
}

func process(t *testing.T, c *idea.Cipher, nonce, data []byte) []byte {
	t.Helper()
	var out bytes.Buffer
	n, err := Process(bytes.NewReader(data), &out, c, nonce)
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), n)
	return out.Bytes()
}

func TestProcessSelfInverseAndLength(t *testing.T) {
	c := newTestCipher(t)
	rng := rand.New(rand.NewPCG(7, 7))

	for size := 0; size <= 40; size++ {
		plain := randomBytes(rng, size)
		enc := process(t, c, testNonce, plain)
		assert.Len(t, enc, size)
		dec := process(t, c, testNonce, enc)
		assert.Equal(t, plain, append([]byte{}, dec...), "size %d", size)
	}
}

func TestProcessMatchesManualKeystream(t *testing.T) {
	c := newTestCipher(t)
	plain := []byte("counter mode over IDEA, nineteen+")
	enc := process(t, c, testNonce, plain)

	for i := 0; i < len(plain); i += BlockSize {
		cb := make([]byte, BlockSize)
		copy(cb, testNonce)
		binary.BigEndian.PutUint32(cb[NonceSize:], uint32(i/BlockSize))
		c.Encrypt(cb, cb)
		end := min(i+BlockSize, len(plain))
		for j := i; j < end; j++ {
			require.Equal(t, plain[j]^cb[j-i], enc[j], "byte %d", j)
		}
	}
}

func TestProcessEmptyInput(t *testing.T) {
	c := newTestCipher(t)
	assert.Empty(t, process(t, c, testNonce, nil))
}

func TestNonceChangesKeystream(t *testing.T) {
	c := newTestCipher(t)
	plain := make([]byte, 24)
	a := process(t, c, testNonce, plain)
	b := process(t, c, []byte{0, 0, 0, 1}, plain)
	assert.NotEqual(t, a, b)
}

func TestStreamMatchesProcessAcrossSplits(t *testing.T) {
	c := newTestCipher(t)
	rng := rand.New(rand.NewPCG(3, 4))
	plain := randomBytes(rng, 1000)
	want := process(t, c, testNonce, plain)

	s, err := NewStream(c, testNonce)
	require.NoError(t, err)
	got := make([]byte, len(plain))
	for off := 0; off < len(plain); {
		n := min(1+rng.IntN(13), len(plain)-off)
		s.XORKeyStream(got[off:off+n], plain[off:off+n])
		off += n
	}
	assert.Equal(t, want, got)
	assert.Equal(t, uint32((len(plain)+BlockSize-1)/BlockSize), s.Counter())
}

func TestStreamSeek(t *testing.T) {
	c := newTestCipher(t)
	plain := make([]byte, 64)
	want := process(t, c, testNonce, plain)

	s, err := NewStream(c, testNonce)
	require.NoError(t, err)
	s.Seek(5)
	got := make([]byte, 24)
	s.XORKeyStream(got, plain[40:64])
	assert.Equal(t, want[40:64], got)
}

func TestCounterWrapsWithoutTouchingNonce(t *testing.T) {
	c := newTestCipher(t)
	s, err := NewStream(c, testNonce)
	require.NoError(t, err)
	s.Seek(0xffffffff)

	got := make([]byte, 16)
	s.XORKeyStream(got, got)

	want := make([]byte, 16)
	copy(want[0:4], testNonce)
	binary.BigEndian.PutUint32(want[4:8], 0xffffffff)
	copy(want[8:12], testNonce)
	c.Encrypt(want[0:8], want[0:8])
	c.Encrypt(want[8:16], want[8:16])
	assert.Equal(t, want, got)
	assert.Equal(t, uint32(1), s.Counter())
}

func TestParamValidation(t *testing.T) {
	c := newTestCipher(t)
	_, err := NewStream(c, []byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrNonceSize)

	a, err := aes.NewCipher(make([]byte, 16))
	require.NoError(t, err)
	_, err = Process(bytes.NewReader(nil), io.Discard, a, testNonce)
	assert.ErrorIs(t, err, ErrBlockSize)
}

type failingWriter struct{ after int }

func (f *failingWriter) Write(p []byte) (int, error) {
	if f.after <= 0 {
		return 0, errors.New("disk full")
	}
	f.after--
	return len(p), nil
}

func TestProcessWriteErrorAborts(t *testing.T) {
	c := newTestCipher(t)
	n, err := Process(bytes.NewReader(make([]byte, 40)), &failingWriter{after: 2}, c, testNonce)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, int64(16), n)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("bad sector") }

func TestProcessReadErrorAborts(t *testing.T) {
	c := newTestCipher(t)
	_, err := Process(failingReader{}, io.Discard, c, testNonce)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad sector")
}
