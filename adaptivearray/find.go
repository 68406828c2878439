package adaptivearray

// Find returns the lowest index holding value, or -1 if no slot does.
//
// The scan tests a whole word of lanes per comparison: XOR against a
// word-wide replica of value turns matching lanes into zero lanes, and
// the "does any lane hold zero" trick from Bit Twiddling Hacks
// ("Determine if a word has a zero byte", generalized from bytes to
// entropy-bit lanes) flags them. Flagged words are a candidate filter,
// not an answer; the exact index comes from a per-lane confirm of that
// one word. Slots at or past Size are never inspected.
func (a *Array) Find(value int32) int {
	return a.findScan(value, nil)
}

// findScan is Find with an optional per-word candidate recorder,
// used to collect probe statistics.
func (a *Array) findScan(value int32, record func(wordIdx, candidates int)) int {
	ent := a.entropy
	vpw := valsPerWord(ent)
	mask := laneMask(ent)
	lane := uint32(value) & mask
	if decodeLane(lane, ent, a.signed) != value {
		// value is not representable at the current width; scanning
		// would alias its low bits onto unrelated lanes
		return -1
	}

	var pattern, notHigh uint32
	for i := 0; i < vpw; i++ {
		pattern |= lane << uint(ent*i)
		notHigh |= (mask >> 1) << uint(ent*i)
	}
	valid := ^uint32(0) >> uint(WordBits-vpw*ent)

	nWords := (a.size + vpw - 1) / vpw
	for i := 0; i < nWords; i++ {
		packed := a.words[i]
		match := packed ^ pattern
		candidates := ^(((match & notHigh) + notHigh) | match | notHigh) & valid
		if candidates == 0 {
			continue
		}
		if record != nil {
			record(i, candidateLanes(candidates, ent))
		}
		base := i * vpw
		for j := 0; j < vpw && base+j < a.size; j++ {
			if (packed>>uint(ent*j))&mask == lane {
				return base + j
			}
		}
	}
	return -1
}

func candidateLanes(candidates uint32, entropy int) int {
	n := 0
	for ; candidates != 0; candidates >>= uint(entropy) {
		if candidates&laneMask(entropy) != 0 {
			n++
		}
	}
	return n
}

// findLinear is the plain decode-every-lane search. Find must agree
// with it on every input; tests diff the two.
func (a *Array) findLinear(value int32) int {
	for i := 0; i < a.size; i++ {
		if getBits(a.words, i, a.entropy, a.signed) == value {
			return i
		}
	}
	return -1
}
