package ctr

import (
	"context"
	"crypto/cipher"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"idea-go/pkg/buffers"
	"idea-go/pkg/idea"

	"golang.org/x/sync/errgroup"
)

// ProcessParallel is the concurrent counterpart of Process for inputs that
// support random access. The input is cut into block-aligned segments; each
// worker runs its own Stream seeked to the segment's first counter and writes
// its result at the same offset, so the output equals Process's output.
//
// b is shared by all workers and must be safe for concurrent Encrypt calls,
// which *idea.Cipher is.
func ProcessParallel(ctx context.Context, r io.ReaderAt, size int64, w io.WriterAt, b cipher.Block, nonce []byte, workers int) error {
	if err := checkParams(b, nonce); err != nil {
		return err
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	pool := buffers.SegmentPool
	segment := int64(pool.Size())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for off := int64(0); off < size; off += segment {
		if gctx.Err() != nil {
			break
		}
		length := min(segment, size-off)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			buf := pool.Get()[:length]
			defer pool.Put(buf)

			n, err := r.ReadAt(buf, off)
			if int64(n) < length {
				if err == nil || errors.Is(err, io.EOF) {
					err = io.ErrUnexpectedEOF
				}
				return fmt.Errorf("ctr: read segment at %d: %w", off, err)
			}

			s, err := NewStream(b, nonce)
			if err != nil {
				return err
			}
			// Counter values wrap at 2^32 exactly as in the sequential path.
			s.Seek(uint32(off / BlockSize))
			s.XORKeyStream(buf, buf)

			if _, err := w.WriteAt(buf, off); err != nil {
				return fmt.Errorf("ctr: write segment at %d: %w", off, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// ProcessFileParallel is ProcessFile using ProcessParallel with the given
// number of workers.
func ProcessFileParallel(ctx context.Context, inPath, outPath string, key, nonce []byte, workers int) error {
	c, err := idea.NewCipher(key)
	if err != nil {
		return err
	}
	if len(nonce) != NonceSize {
		return ErrNonceSize
	}

	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("ctr: open input: %w", err)
	}
	defer in.Close()

	st, err := in.Stat()
	if err != nil {
		return fmt.Errorf("ctr: stat input: %w", err)
	}
	// Pipes and devices report no usable size and cannot be read at offsets.
	if !st.Mode().IsRegular() {
		return processOpened(in, outPath, c, nonce)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("ctr: create output: %w", err)
	}

	err = ProcessParallel(ctx, in, st.Size(), out, c, nonce, workers)
	if cerr := out.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("ctr: close output: %w", cerr)
	}
	if err != nil {
		// Segments complete out of order, so only the target size is known.
		return &PartialOutputError{Path: outPath, Written: -1, Err: err}
	}
	return nil
}
