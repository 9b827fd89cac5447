package idea

// modulus is the prime 2^16+1 used by the multiplicative group.
const modulus = 0x10001

func add16(a, b uint16) uint16 { return a + b }

func xor16(a, b uint16) uint16 { return a ^ b }

// mul16 multiplies a and b mod 2^16+1, where the word 0 stands for 2^16.
func mul16(a, b uint16) uint16 {
	x, y := uint64(a), uint64(b)
	if x == 0 {
		x = 0x10000
	}
	if y == 0 {
		y = 0x10000
	}
	r := (x * y) % modulus
	if r == 0x10000 {
		return 0
	}
	return uint16(r)
}

// addInverse returns -v mod 2^16.
func addInverse(v uint16) uint16 { return -v }

// mulInverse returns v^-1 mod 2^16+1 using the extended Euclidean algorithm.
// The pair of Bezout identities starts as 1*x + 0*y = 65537 and
// 0*x + 1*y = v and is reduced until the remainder reaches 1; the y
// coefficient of that row is the inverse.
func mulInverse(v uint16) uint16 {
	if v <= 1 {
		// 0 stands for 2^16 = -1, and both -1 and 1 are their own inverses.
		return v
	}
	r1, r2 := int64(modulus), int64(v)
	c1, c2 := int64(0), int64(1)
	for r2 != 1 {
		q := r1 / r2
		r1, r2 = r2, r1%r2
		c1, c2 = c2, c1-q*c2
	}
	inv := c2 % modulus
	if inv < 0 {
		inv += modulus
	}
	if inv == 0x10000 {
		return 0
	}
	return uint16(inv)
}
