package transform

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"idea-go/pkg/ctr"
	"idea-go/pkg/idea"
)

// ideaCTRTransform encrypts with IDEA in counter mode under a fresh random
// nonce, which is prepended to the output. It gives confidentiality only;
// tampering is not detected.
type ideaCTRTransform struct {
	block *idea.Cipher
	rand  io.Reader
}

func NewIDEACTRTransform(key []byte) (Transform, error) {
	block, err := idea.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("idea-ctr: %w", err)
	}
	return &ideaCTRTransform{block: block, rand: rand.Reader}, nil
}

func (e *ideaCTRTransform) Apply(plaintext []byte) ([]byte, error) {
	out := make([]byte, ctr.NonceSize+len(plaintext))
	nonce := out[:ctr.NonceSize]
	if _, err := io.ReadFull(e.rand, nonce); err != nil {
		return nil, fmt.Errorf("idea-ctr apply (encrypt): failed to generate nonce: %w", err)
	}
	s, err := ctr.NewStream(e.block, nonce)
	if err != nil {
		return nil, fmt.Errorf("idea-ctr apply (encrypt): %w", err)
	}
	s.XORKeyStream(out[ctr.NonceSize:], plaintext)
	return out, nil
}

func (e *ideaCTRTransform) Reverse(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < ctr.NonceSize {
		return nil, errors.New("idea-ctr reverse (decrypt): ciphertext too short")
	}
	nonce, body := ciphertext[:ctr.NonceSize], ciphertext[ctr.NonceSize:]
	s, err := ctr.NewStream(e.block, nonce)
	if err != nil {
		return nil, fmt.Errorf("idea-ctr reverse (decrypt): %w", err)
	}
	plaintext := make([]byte, len(body))
	s.XORKeyStream(plaintext, body)
	return plaintext, nil
}
