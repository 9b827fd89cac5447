//go:build unix

package ctr

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestProcessFileParallelFromPipe(t *testing.T) {
	rng := rand.New(rand.NewPCG(21, 22))
	plain := randomBytes(rng, 100)
	fifo := filepath.Join(t.TempDir(), "in.fifo")
	require.NoError(t, unix.Mkfifo(fifo, 0o600))

	errc := make(chan error, 1)
	go func() {
		f, err := os.OpenFile(fifo, os.O_WRONLY, 0)
		if err != nil {
			errc <- err
			return
		}
		_, err = f.Write(plain)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		errc <- err
	}()

	out := filepath.Join(t.TempDir(), "out")
	require.NoError(t, ProcessFileParallel(context.Background(), fifo, out, testKey, testNonce, 4))
	require.NoError(t, <-errc)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Len(t, got, len(plain))
	assert.Equal(t, process(t, newTestCipher(t), testNonce, plain), got)
}
