package ctr

import (
	"bufio"
	"crypto/cipher"
	"fmt"
	"io"
	"os"

	"idea-go/pkg/idea"
)

// PartialOutputError reports a failure after the output file was created.
// The file at Path may hold the first Written bytes of the result; Written is
// -1 when segments were written out of order and the amount is unknown.
type PartialOutputError struct {
	Path    string
	Written int64
	Err     error
}

func (e *PartialOutputError) Error() string {
	if e.Written < 0 {
		return fmt.Sprintf("ctr: output %s is incomplete: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("ctr: output %s is incomplete after %d bytes: %v", e.Path, e.Written, e.Err)
}

func (e *PartialOutputError) Unwrap() error { return e.Err }

// ProcessFile encrypts or decrypts inPath into outPath with IDEA in counter
// mode. The output is created or truncated and always has the input's length
// on success.
func ProcessFile(inPath, outPath string, key, nonce []byte) error {
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
	return processOpened(in, outPath, c, nonce)
}

func processOpened(in io.Reader, outPath string, c cipher.Block, nonce []byte) error {
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("ctr: create output: %w", err)
	}

	bw := bufio.NewWriter(out)
	n, err := Process(bufio.NewReader(in), bw, c, nonce)
	if err == nil {
		if ferr := bw.Flush(); ferr != nil {
			err = fmt.Errorf("ctr: flush output: %w", ferr)
		}
	}
	if cerr := out.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("ctr: close output: %w", cerr)
	}
	if err != nil {
		return &PartialOutputError{Path: outPath, Written: n - int64(bw.Buffered()), Err: err}
	}
	return nil
}
