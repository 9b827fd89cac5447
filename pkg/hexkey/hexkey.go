// Package hexkey validates and decodes the hex-encoded keys, nonces and
// blocks accepted on the command line.
package hexkey

import (
	"encoding/hex"
	"fmt"
	"strings"

	"idea-go/pkg/ctr"
	"idea-go/pkg/idea"
)

// Error describes a rejected hex argument.
type Error struct {
	Field  string // "key", "nonce" or "block"
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *Error) Unwrap() error { return e.Err }

func parse(field, s string, size int) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}
	if len(s) != 2*size {
		return nil, &Error{
			Field:  field,
			Reason: fmt.Sprintf("must be %d bytes (%d hex characters), got %d characters", size, 2*size, len(s)),
		}
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, &Error{Field: field, Reason: "not valid hex", Err: err}
	}
	return b, nil
}

// ParseKey decodes a 16-byte key from 32 hex characters, with an optional
// 0x prefix.
func ParseKey(s string) ([]byte, error) { return parse("key", s, idea.KeySize) }

// ParseNonce decodes a 4-byte CTR nonce from 8 hex characters.
func ParseNonce(s string) ([]byte, error) { return parse("nonce", s, ctr.NonceSize) }

// ParseBlock decodes one 8-byte cipher block from 16 hex characters.
func ParseBlock(s string) ([]byte, error) { return parse("block", s, idea.BlockSize) }
