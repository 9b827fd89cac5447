package idea

import "testing"

func TestExpandKeyWordKey(t *testing.T) {
	ek := expandKey(wordsToBytes(1, 2, 3, 4, 5, 6, 7, 8))
	want := []uint16{
		1, 2, 3, 4, 5, 6, 7, 8,
		0x0400, 0x0600, 0x0800, 0x0a00, 0x0c00, 0x0e00, 0x1000, 0x0200,
	}
	for i, w := range want {
		if ek[i] != w {
			t.Errorf("ek[%d]: expected %#04x, got %#04x", i, w, ek[i])
		}
	}
}

func TestExpandKeyRotationCrossesHalves(t *testing.T) {
	// A single set bit at the top of the upper half lands in the lower half
	// after one 25-bit rotation: bit 127 -> bit 24 of the register.
	key := make([]byte, KeySize)
	key[0] = 0x80
	ek := expandKey(key)
	for i := 8; i < 16; i++ {
		want := uint16(0)
		if i == 14 {
			// bit 24 is bit 8 of the second to last 16-bit word.
			want = 0x0100
		}
		if ek[i] != want {
			t.Errorf("ek[%d]: expected %#04x, got %#04x", i, want, ek[i])
		}
	}
}

func TestScheduleLengths(t *testing.T) {
	c, err := NewCipher(wordsToBytes(1, 2, 3, 4, 5, 6, 7, 8))
	if err != nil {
		t.Fatal(err)
	}
	if n := len(c.EncryptionSubkeys()); n != 52 {
		t.Errorf("expected 52 encryption subkeys, got %d", n)
	}
	if n := len(c.DecryptionSubkeys()); n != 52 {
		t.Errorf("expected 52 decryption subkeys, got %d", n)
	}
}

func TestInvertKeyLayout(t *testing.T) {
	ek := expandKey(wordsToBytes(1, 2, 3, 4, 5, 6, 7, 8))
	dk := invertKey(&ek)

	// First decryption round: output transformation keys, unswapped.
	if dk[0] != mulInverse(ek[48]) || dk[1] != -ek[49] || dk[2] != -ek[50] || dk[3] != mulInverse(ek[51]) {
		t.Errorf("first round keys wrong: %v", dk[0:4])
	}
	if dk[4] != ek[46] || dk[5] != ek[47] {
		t.Errorf("first round MA keys wrong: %v", dk[4:6])
	}
	// A middle round swaps the additive keys.
	if dk[7] != -ek[44] || dk[8] != -ek[43] {
		t.Errorf("second round additive keys not swapped: %v", dk[6:12])
	}
	// Last: the first encryption round's keys, unswapped.
	if dk[48] != mulInverse(ek[0]) || dk[49] != -ek[1] || dk[50] != -ek[2] || dk[51] != mulInverse(ek[3]) {
		t.Errorf("output transformation keys wrong: %v", dk[48:52])
	}
}

func TestDecryptionScheduleInvertsTwice(t *testing.T) {
	// Decrypting with the encryption schedule inverted twice must be the
	// encryption schedule again.
	ek := expandKey([]byte("0123456789abcdef"))
	dk := invertKey(&ek)
	back := invertKey(&dk)
	if back != ek {
		t.Errorf("double inversion differs:\n%v\n%v", ek, back)
	}
}
