package idea

import "testing"

func TestMul16ZeroIsTwoTo16(t *testing.T) {
	tests := []struct {
		a, b, want uint16
	}{
		{0, 0, 1},           // (-1)(-1)
		{0, 1, 0},           // 2^16 folds back to 0
		{1, 0, 0},
		{0, 2, 65535},       // -2 mod 65537
		{2, 3, 6},
		{0xffff, 0xffff, 4}, // (-2)(-2)
	}
	for _, tt := range tests {
		if got := mul16(tt.a, tt.b); got != tt.want {
			t.Errorf("mul16(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestAdd16Wraps(t *testing.T) {
	if got := add16(0xffff, 2); got != 1 {
		t.Errorf("add16 overflow: got %d", got)
	}
	if got := add16(5, addInverse(5)); got != 0 {
		t.Errorf("additive inverse: got %d", got)
	}
	if addInverse(0) != 0 {
		t.Errorf("addInverse(0) = %d", addInverse(0))
	}
}

func TestXor16(t *testing.T) {
	if got := xor16(0xff00, 0x0ff0); got != 0xf0f0 {
		t.Errorf("xor16 = %#x", got)
	}
}

func TestMulInverseAllWords(t *testing.T) {
	for v := 0; v <= 0xffff; v++ {
		inv := mulInverse(uint16(v))
		if got := mul16(uint16(v), inv); got != 1 {
			t.Fatalf("mul16(%d, mulInverse(%d)=%d) = %d", v, v, inv, got)
		}
	}
}

func TestMulInverseKnown(t *testing.T) {
	if got := mulInverse(3); got != 21846 {
		t.Errorf("mulInverse(3) = %d, want 21846", got)
	}
	if got := mulInverse(0); got != 0 {
		t.Errorf("mulInverse(0) = %d, want 0", got)
	}
}
