// Package idea implements the IDEA block cipher.
// IDEA has a block size of 8 bytes (64 bits) and a key size of 16 bytes
// (128 bits), with 8 rounds followed by an output transformation.
package idea

import (
	"crypto/cipher"
	"strconv"
)

const (
	BlockSize = 8  // bytes
	KeySize   = 16 // bytes
)

// KeySizeError is returned for keys shorter than KeySize.
type KeySizeError int

func (k KeySizeError) Error() string {
	return "idea: invalid key size " + strconv.Itoa(int(k)) + ", need at least 16 bytes"
}

// Cipher is an IDEA instance keyed with a 128-bit key.
//
// Encrypt and Decrypt only read the subkey schedules, so they may be called
// concurrently. SetKey must not run concurrently with them.
type Cipher struct {
	ek schedule
	dk schedule
}

var _ cipher.Block = (*Cipher)(nil)

// NewCipher creates a new IDEA cipher. Only the first 16 bytes of key are
// used; a shorter key returns a KeySizeError.
func NewCipher(key []byte) (*Cipher, error) {
	c := &Cipher{}
	if err := c.SetKey(key); err != nil {
		return nil, err
	}
	return c, nil
}

// SetKey replaces the key and regenerates both subkey schedules. On error the
// previous schedules are left untouched.
func (c *Cipher) SetKey(key []byte) error {
	if len(key) < KeySize {
		return KeySizeError(len(key))
	}
	ek := expandKey(key[:KeySize])
	c.ek = ek
	c.dk = invertKey(&ek)
	return nil
}

func (c *Cipher) BlockSize() int { return BlockSize }

func (c *Cipher) KeySize() int { return KeySize }

// Encrypt encrypts the 8-byte block src into dst. dst and src may overlap
// entirely.
func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize || len(dst) < BlockSize {
		panic("idea: input not full block")
	}
	crypt(dst, src, &c.ek)
}

// Decrypt decrypts the 8-byte block src into dst. dst and src may overlap
// entirely.
func (c *Cipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize || len(dst) < BlockSize {
		panic("idea: input not full block")
	}
	crypt(dst, src, &c.dk)
}

// EncryptionSubkeys returns a copy of the encryption schedule.
func (c *Cipher) EncryptionSubkeys() []uint16 {
	out := make([]uint16, NumSubkeys)
	copy(out, c.ek[:])
	return out
}

// DecryptionSubkeys returns a copy of the decryption schedule.
func (c *Cipher) DecryptionSubkeys() []uint16 {
	out := make([]uint16, NumSubkeys)
	copy(out, c.dk[:])
	return out
}
