package idea

import "encoding/binary"

// round applies one MA round to x using k[0:6].
func round(x [4]uint16, k []uint16) [4]uint16 {
	a := mul16(x[0], k[0])
	b := add16(x[1], k[1])
	c := add16(x[2], k[2])
	d := mul16(x[3], k[3])
	e := mul16(xor16(a, c), k[4])
	f := mul16(add16(e, xor16(b, d)), k[5])
	g := add16(e, f)
	return [4]uint16{xor16(a, f), xor16(c, f), xor16(b, g), xor16(d, g)}
}

// outputTransform undoes the last round's swap of the middle words and mixes
// in k[0:4].
func outputTransform(x [4]uint16, k []uint16) [4]uint16 {
	return [4]uint16{
		mul16(x[0], k[0]),
		add16(x[2], k[1]),
		add16(x[1], k[2]),
		mul16(x[3], k[3]),
	}
}

// crypt runs the full transform over one block. The subkey cursor is local
// to the call, so every block starts again at subkey 0.
func crypt(dst, src []byte, ks *schedule) {
	x := [4]uint16{
		binary.BigEndian.Uint16(src[0:2]),
		binary.BigEndian.Uint16(src[2:4]),
		binary.BigEndian.Uint16(src[4:6]),
		binary.BigEndian.Uint16(src[6:8]),
	}

	n := 0
	for r := 0; r < rounds; r++ {
		x = round(x, ks[n:n+6])
		n += 6
	}
	x = outputTransform(x, ks[n:n+4])

	binary.BigEndian.PutUint16(dst[0:2], x[0])
	binary.BigEndian.PutUint16(dst[2:4], x[1])
	binary.BigEndian.PutUint16(dst[4:6], x[2])
	binary.BigEndian.PutUint16(dst[6:8], x[3])
}
