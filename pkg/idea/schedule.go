package idea

import "encoding/binary"

const (
	rounds = 8

	// NumSubkeys is the number of 16-bit subkeys one block transform consumes:
	// six per round plus four for the output transformation.
	NumSubkeys = 6*rounds + 4

	// rotation is the cyclic left shift applied to the key register between
	// each extraction of eight subkeys.
	rotation = 25

	// extractions is how many times eight words are read off the key
	// register; the last four words of the final pass are unused.
	extractions = 7
)

// schedule holds the subkeys for one direction, in consumption order.
type schedule [NumSubkeys]uint16

// expandKey derives the encryption subkeys from the first 16 bytes of key.
// The key is held as a 128-bit register split into two 64-bit halves; bits
// shifted out of one half feed the low end of the other.
func expandKey(key []byte) schedule {
	var words [8 * extractions]uint16

	hi := binary.BigEndian.Uint64(key[0:8])
	lo := binary.BigEndian.Uint64(key[8:16])
	for i := 0; i < extractions; i++ {
		for w := 0; w < 4; w++ {
			shift := 48 - 16*uint(w)
			words[8*i+w] = uint16(hi >> shift)
			words[8*i+4+w] = uint16(lo >> shift)
		}
		hi, lo = hi<<rotation|lo>>(64-rotation), lo<<rotation|hi>>(64-rotation)
	}

	var ek schedule
	copy(ek[:], words[:NumSubkeys])
	return ek
}

// invertKey derives the decryption subkeys from ek. Round r of decryption
// uses the subkeys of encryption round 8-r: the multiplicative keys are
// inverted mod 2^16+1, the additive keys are negated mod 2^16 (and swapped
// for every round except the first and last, since the output
// transformation undoes the round's word swap), and the MA keys come from
// the preceding encryption round unchanged.
func invertKey(ek *schedule) schedule {
	var dk schedule
	for j := 0; j < NumSubkeys; j++ {
		opp := (rounds-j/6)*6 + j%6
		switch j % 6 {
		case 0, 3:
			dk[j] = mulInverse(ek[opp])
		case 1:
			if j < 6 || j > 6*rounds-1 {
				dk[j] = addInverse(ek[opp])
			} else {
				dk[j] = addInverse(ek[opp+1])
			}
		case 2:
			if j < 6 || j > 6*rounds-1 {
				dk[j] = addInverse(ek[opp])
			} else {
				dk[j] = addInverse(ek[opp-1])
			}
		default:
			dk[j] = ek[opp-6]
		}
	}
	return dk
}
