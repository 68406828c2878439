package adaptivearray

import (
	"math/rand"
)

// randomValues generates n values uniform in [lo, hi].
func randomValues(r *rand.Rand, n int, lo, hi int32) []int32 {
	vals := make([]int32, n)
	span := int64(hi) - int64(lo) + 1
	for i := range vals {
		vals[i] = int32(int64(lo) + r.Int63n(span))
	}
	return vals
}

// buildArray inserts vals sequentially starting at index 0.
func buildArray(vals []int32) *Array {
	a := New()
	for i, v := range vals {
		a.Insert(i, v)
	}
	return a
}

// entropySteps lists every lane width the selector can produce.
var entropySteps = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 31}

// valuesForEntropy generates n values that keep an unsigned array at
// exactly the given entropy: the first value pins the width, the rest
// stay at or below it.
func valuesForEntropy(r *rand.Rand, n, entropy int) []int32 {
	if entropy > WordBits/2 {
		vals := randomValues(r, n, 0, MaxStorable)
		vals[0] = 1 << (WordBits / 2) // forces the width cap
		return vals
	}
	top := int32(1)<<entropy - 1
	vals := randomValues(r, n, 0, top)
	vals[0] = top
	return vals
}
