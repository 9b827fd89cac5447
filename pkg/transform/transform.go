// Package transform chains reversible payload transformations (compression,
// encryption) into a single pipeline.
package transform

import (
	"fmt"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Transform is one reversible step: Reverse(Apply(p)) == p.
type Transform interface {
	Apply(data []byte) ([]byte, error)
	Reverse(data []byte) ([]byte, error)
}

type noOpTransform struct{}

func NewNoOpTransform() Transform                            { return &noOpTransform{} }
func (n *noOpTransform) Apply(data []byte) ([]byte, error)   { return data, nil }
func (n *noOpTransform) Reverse(data []byte) ([]byte, error) { return data, nil }

// NewCompression returns the compression transform registered under name:
// "zstd", "gzip" or "none".
func NewCompression(name string) (Transform, error) {
	switch strings.ToLower(name) {
	case "zstd":
		return NewZstdTransform(zstd.SpeedDefault)
	case "gzip":
		return NewGzipTransform(), nil
	case "none", "":
		return NewNoOpTransform(), nil
	default:
		return nil, fmt.Errorf("transform: unknown compression %q", name)
	}
}
