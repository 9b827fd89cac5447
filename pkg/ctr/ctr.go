// Package ctr implements counter mode over a 64-bit block cipher.
//
// Each keystream block is the encryption of nonce || counter, where the nonce
// is 4 bytes fixed for the stream and the counter is a 32-bit big-endian value
// that starts at 0 and wraps without carrying into the nonce. The same
// operation encrypts and decrypts.
package ctr

import (
	"crypto/cipher"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	BlockSize = 8
	NonceSize = 4
)

var (
	ErrBlockSize = errors.New("ctr: block cipher must have an 8-byte block")
	ErrNonceSize = errors.New("ctr: nonce must be 4 bytes")
)

func checkParams(b cipher.Block, nonce []byte) error {
	if b.BlockSize() != BlockSize {
		return ErrBlockSize
	}
	if len(nonce) != NonceSize {
		return ErrNonceSize
	}
	return nil
}

// keystream encrypts the counter block for counter into ks.
func keystream(b cipher.Block, nonce []byte, counter uint32, ks *[BlockSize]byte) {
	copy(ks[:NonceSize], nonce)
	binary.BigEndian.PutUint32(ks[NonceSize:], counter)
	b.Encrypt(ks[:], ks[:])
}

// Stream is a cipher.Stream producing the CTR keystream. Keystream bytes left
// over from a partial block are used by the next XORKeyStream call.
type Stream struct {
	b       cipher.Block
	nonce   [NonceSize]byte
	counter uint32
	ks      [BlockSize]byte
	used    int
}

var _ cipher.Stream = (*Stream)(nil)

// NewStream returns a Stream starting at counter 0.
func NewStream(b cipher.Block, nonce []byte) (*Stream, error) {
	if err := checkParams(b, nonce); err != nil {
		return nil, err
	}
	s := &Stream{b: b, used: BlockSize}
	copy(s.nonce[:], nonce)
	return s, nil
}

// Seek positions the stream at the start of keystream block n.
func (s *Stream) Seek(n uint32) {
	s.counter = n
	s.used = BlockSize
}

// Counter returns the counter of the next keystream block to be generated.
func (s *Stream) Counter() uint32 { return s.counter }

func (s *Stream) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("ctr: output smaller than input")
	}
	for len(src) > 0 {
		if s.used == BlockSize {
			keystream(s.b, s.nonce[:], s.counter, &s.ks)
			s.counter++
			s.used = 0
		}
		n := copy(dst, src[:min(len(src), BlockSize-s.used)])
		for i := 0; i < n; i++ {
			dst[i] ^= s.ks[s.used+i]
		}
		s.used += n
		dst = dst[n:]
		src = src[n:]
	}
}

// Process reads r to the end in 8-byte chunks and writes each chunk XORed
// with its keystream block to w. A final chunk shorter than a block uses only
// the leading bytes of its keystream block, so the output has exactly the
// input's length. It returns the number of bytes written.
//
// Process never calls b.Decrypt.
func Process(r io.Reader, w io.Writer, b cipher.Block, nonce []byte) (int64, error) {
	if err := checkParams(b, nonce); err != nil {
		return 0, err
	}

	var (
		in, ks  [BlockSize]byte
		counter uint32
		written int64
	)
	for {
		n, rerr := io.ReadFull(r, in[:])
		if n > 0 {
			keystream(b, nonce, counter, &ks)
			for i := 0; i < n; i++ {
				in[i] ^= ks[i]
			}
			m, werr := w.Write(in[:n])
			written += int64(m)
			if werr != nil {
				return written, fmt.Errorf("ctr: write block %d: %w", counter, werr)
			}
			counter++
		}
		switch {
		case rerr == io.EOF || rerr == io.ErrUnexpectedEOF:
			return written, nil
		case rerr != nil:
			return written, fmt.Errorf("ctr: read block %d: %w", counter, rerr)
		}
	}
}
