package adaptivearray

import (
	"math/bits"
)

// WordBits is the size of one storage word. Every word holds
// WordBits/entropy lanes; the trailing WordBits mod (entropy*lanes)
// bits are padding and stay zero.
const WordBits = 32

// Storable value domain. The widest lane is WordBits-1 bits and is
// always signed (see widthFor), so the domain is that lane's range.
const (
	MaxStorable = 1<<(WordBits-2) - 1
	MinStorable = -1 << (WordBits - 2)
)

func valsPerWord(entropy int) int {
	return WordBits / entropy
}

func laneMask(entropy int) uint32 {
	// entropy <= WordBits-1, never a full-word shift
	return uint32(1)<<entropy - 1
}

// widthFor returns the minimal lane width that can hold value under the
// container's eventual sign convention, and whether storing value flips
// the container into signed mode.
//
// The unsigned width is the position of the highest set bit of |value|;
// the |1 keeps 0 and -1 at one bit instead of zero. A negative value
// needs one more bit for the sign; a non-negative value in a signed
// container needs one more bit too, so the lane's top bit stays clear.
// Anything past half a word jumps straight to WordBits-1 (and forces
// signed mode) instead of repacking one bit at a time.
func widthFor(value int32, signed bool) (width int, signSwitch bool) {
	m := value >> (WordBits - 1)
	mag := uint32((value + m) ^ m)
	width = bits.Len32(mag | 1)

	if value < 0 || signed {
		width++
		if value < 0 && !signed {
			signSwitch = true
		}
	}

	if width > WordBits/2 {
		width = WordBits - 1
		if !signed {
			signSwitch = true
		}
	}
	return width, signSwitch
}

// decodeLane interprets the raw bits of one lane as an integer.
func decodeLane(lane uint32, entropy int, signed bool) int32 {
	if signed {
		// xor-subtract sign extension off the lane's top bit
		signBit := uint32(1) << (entropy - 1)
		lane = (lane ^ signBit) - signBit
	}
	return int32(lane)
}

// getBits decodes the lane holding logical index. Callers guarantee the
// index is within allocated storage.
func getBits(words []uint32, index, entropy int, signed bool) int32 {
	vpw := valsPerWord(entropy)
	off := uint(index%vpw) * uint(entropy)
	return decodeLane((words[index/vpw]>>off)&laneMask(entropy), entropy, signed)
}

// putBits encodes the low entropy bits of value into the lane holding
// logical index. Adjacent lanes and padding bits are never touched.
// Callers guarantee the index is within allocated storage.
func putBits(words []uint32, index int, value int32, entropy int) {
	vpw := valsPerWord(entropy)
	mask := laneMask(entropy)
	off := uint(index%vpw) * uint(entropy)
	j := index / vpw
	words[j] = words[j]&^(mask<<off) | (uint32(value)&mask)<<off
}
