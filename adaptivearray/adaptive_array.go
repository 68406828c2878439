// Package adaptivearray implements an adaptive bit-packed integer array:
// a growable sequence of int32 values stored at the minimum fixed
// bit-width ("entropy") that can represent every value inserted so far.
// Inserting a value that needs more bits, or the first negative value,
// transparently repacks the whole array into the wider encoding.
//
// A fresh array uses one bit per value; it is a bitmap until the data
// proves otherwise.
package adaptivearray

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"adaptiva/errutil"
	"adaptiva/utils"

	"github.com/dustin/go-humanize"
	"github.com/zeebo/xxh3"
)

var debug bool

func init() {
	if os.Getenv("DEBUG") == "1" {
		debug = true
	} else {
		debug = false
	}
}

// Array is an adaptive bit-packed integer array. Not safe for
// concurrent use; callers share it under their own lock.
type Array struct {
	entropy int      // bits per lane, 1..WordBits-1, never decreases
	signed  bool     // set by the first negative value, never cleared
	size    int      // addressable slots backed by storage
	words   []uint32 // packed storage, exclusively owned
	repacks int
}

// New returns an empty array: one zero word of 1-bit unsigned slots.
func New() *Array {
	return &Array{
		entropy: 1,
		size:    WordBits,
		words:   make([]uint32, 1),
	}
}

// Reset returns the array to its fresh state, dropping all storage.
func (a *Array) Reset() {
	a.entropy = 1
	a.signed = false
	a.size = WordBits
	a.words = make([]uint32, 1)
	a.repacks = 0
}

// Size returns the number of addressable slots. Slots never written
// read as zero.
func (a *Array) Size() int {
	return a.size
}

// EntropyBits returns the current bits-per-value width.
func (a *Array) EntropyBits() int {
	return a.entropy
}

// Signed reports whether the array has entered signed mode.
func (a *Array) Signed() bool {
	return a.signed
}

// ByteSize returns the size of the packed storage in bytes.
func (a *Array) ByteSize() int {
	return len(a.words) * WordBits / 8
}

// RepackCount returns how many full re-encodings the array has done.
func (a *Array) RepackCount() int {
	return a.repacks
}

// Insert stores value at index. Writing past the current size extends
// the array (gap slots read zero); writing an existing index overwrites
// it. There is no delete and the width never shrinks.
func (a *Array) Insert(index int, value int32) {
	errutil.BugOn(index < 0, "Insert: negative index %d", index)
	errutil.BugOn(value < MinStorable || value > MaxStorable,
		"Insert: value %d outside storable domain [%d, %d]", value, MinStorable, MaxStorable)

	width, signSwitch := widthFor(value, a.signed)
	if width > a.entropy || signSwitch {
		a.repack(width, signSwitch)
	}
	if index >= a.size {
		a.grow(index)
	}
	putBits(a.words, index, value, a.entropy)

	if debug {
		a.checkArray()
	}
}

// repack re-encodes every stored value into a wider lane. The new
// buffer is fully populated before any state is replaced, so a failed
// allocation leaves the array untouched.
func (a *Array) repack(required int, signSwitch bool) {
	keep := a.entropy
	if signSwitch {
		// existing unsigned values must keep their magnitude once the
		// top lane bit becomes a sign bit
		keep++
	}
	newEntropy := required
	if keep > newEntropy {
		newEntropy = keep
	}
	if newEntropy > WordBits/2 {
		newEntropy = WordBits - 1
	}

	newWords := make([]uint32, a.size/valsPerWord(newEntropy)+1)
	for i := 0; i < a.size; i++ {
		putBits(newWords, i, getBits(a.words, i, a.entropy, a.signed), newEntropy)
	}

	a.words = newWords
	a.entropy = newEntropy
	if signSwitch {
		a.signed = true
	}
	a.repacks++
}

// grow extends storage to cover index at the current entropy. The new
// region is built and filled before it replaces the old one.
func (a *Array) grow(index int) {
	vpw := valsPerWord(a.entropy)
	newWords := make([]uint32, index/vpw+1)
	copy(newWords, a.words)
	a.words = newWords
	a.size = len(newWords) * vpw
}

// Get returns the value at index. Indices at or past Size read as
// zero, consistent with the zero-fill of growth.
func (a *Array) Get(index int) int32 {
	errutil.BugOn(index < 0, "Get: negative index %d", index)
	if index >= a.size {
		return 0
	}
	return getBits(a.words, index, a.entropy, a.signed)
}

// MaxValue returns the largest stored value, scanning all slots.
// An array of all-minimum values yields that minimum; the seed is
// below every storable value.
func (a *Array) MaxValue() int32 {
	max := int32(math.MinInt32)
	for i := 0; i < a.size; i++ {
		if v := getBits(a.words, i, a.entropy, a.signed); v > max {
			max = v
		}
	}
	return max
}

// MinValue returns the smallest stored value, scanning all slots.
func (a *Array) MinValue() int32 {
	min := int32(math.MaxInt32)
	for i := 0; i < a.size; i++ {
		if v := getBits(a.words, i, a.entropy, a.signed); v < min {
			min = v
		}
	}
	return min
}

// Stat is a point-in-time summary of the array.
type Stat struct {
	Capacity       int
	EntropyBits    int
	Signed         bool
	AllocatedBytes int
	Repacks        int
	Max            int32
	Min            int32
}

func (s Stat) String() string {
	return fmt.Sprintf("capacity %d, entropy %d bits, signed %v, allocated %s, max %d, min %d, repacks %d",
		s.Capacity, s.EntropyBits, s.Signed,
		humanize.Bytes(uint64(s.AllocatedBytes)), s.Max, s.Min, s.Repacks)
}

func (a *Array) Stat() Stat {
	return Stat{
		Capacity:       a.size,
		EntropyBits:    a.entropy,
		Signed:         a.signed,
		AllocatedBytes: a.ByteSize(),
		Repacks:        a.repacks,
		Max:            a.MaxValue(),
		Min:            a.MinValue(),
	}
}

// String dumps every slot as a comma-separated list.
func (a *Array) String() string {
	var sb strings.Builder
	it := a.Iterator()
	for it.Next() {
		if it.Index() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatInt(int64(it.Value()), 10))
	}
	return sb.String()
}

// Fingerprint hashes the decoded value stream with a size prefix.
// Arrays with equal logical contents fingerprint equal regardless of
// the entropy or sign mode they happen to be packed at.
func (a *Array) Fingerprint() uint64 {
	h := xxh3.New()

	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(a.size))
	h.Write(buf[:])

	for i := 0; i < a.size; i++ {
		binary.LittleEndian.PutUint32(buf[:], uint32(getBits(a.words, i, a.entropy, a.signed)))
		h.Write(buf[:])
	}
	return h.Sum64()
}

// MemDetailed breaks down the array's memory by component.
func (a *Array) MemDetailed() utils.MemReport {
	const headerBytes = 8 * 3 // entropy, size, repacks
	storageBytes := a.ByteSize()
	return utils.MemReport{
		Name:       "AdaptiveArray",
		TotalBytes: headerBytes + storageBytes + 1,
		Children: []utils.MemReport{
			{Name: "packed words", TotalBytes: storageBytes},
			{Name: "header", TotalBytes: headerBytes + 1},
		},
	}
}

func (a *Array) checkArray() {
	errutil.BugOn(a.entropy < 1 || a.entropy > WordBits-1,
		"entropy %d out of range", a.entropy)
	vpw := valsPerWord(a.entropy)
	errutil.BugOn(a.size > len(a.words)*vpw,
		"size %d exceeds %d allocated slots", a.size, len(a.words)*vpw)

	// padding bits of every word must stay zero
	valid := ^uint32(0) >> uint(WordBits-vpw*a.entropy)
	for i, w := range a.words {
		errutil.BugOn(w&^valid != 0, "padding bits set in word %d: %#x", i, w)
	}
	// allocated-but-unused tail slots must read zero
	for i := a.size; i < len(a.words)*vpw; i++ {
		errutil.BugOn(getBits(a.words, i, a.entropy, a.signed) != 0,
			"tail slot %d is not zero", i)
	}
}
