// entropy_study measures the adaptive array on the workloads it was
// built for: sequential counters, coin flips and small signed ranges.
// For each scenario it reports size, entropy, memory and timings, and
// optionally writes one CSV row per scenario.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"adaptiva/adaptivearray"
	"adaptiva/utils"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
)

type scenario struct {
	name string
	gen  func(r *rand.Rand, i int) int32
	find int32 // value probed after the fill, 0 disables the probe
}

type scenarioResult struct {
	scenario
	n           int
	size        int
	entropyBits int
	signed      bool
	bytes       int
	bitsPerVal  float64
	repacks     int
	insertNs    int64
	findNs      int64
	findIdx     int
	verified    bool
}

func main() {
	var (
		outPath = flag.String("out", "", "Optional output CSV path")
		n       = flag.Int("n", 65536, "Values per scenario")
		seed    = flag.Int64("seed", time.Now().UnixNano(), "RNG seed")
	)
	flag.Parse()
	if *n <= 0 {
		fail("n must be > 0")
	}

	sanityRun(*n)

	scenarios := []scenario{
		{name: "counters", gen: func(_ *rand.Rand, i int) int32 { return int32(i) }, find: int32(*n - 1)},
		{name: "negated_counters", gen: func(_ *rand.Rand, i int) int32 { return int32(-i) }, find: int32(-(*n - 1))},
		{name: "coin_flips", gen: func(r *rand.Rand, _ int) int32 { return int32(r.Intn(2)) }},
		{name: "small_positive", gen: func(r *rand.Rand, _ int) int32 { return int32(r.Intn(15)) + 1 }, find: 15},
		{name: "small_signed", gen: func(r *rand.Rand, _ int) int32 { return int32(r.Intn(511)) - 255 }, find: 255},
	}

	results := make([]scenarioResult, 0, len(scenarios))
	for idx, sc := range scenarios {
		fmt.Printf("[%d/%d] %s ...\n", idx+1, len(scenarios), sc.name)
		res := runScenario(sc, *n, *seed+int64(idx)*1_000_003)
		fmt.Printf("  %s\n", summaryLine(res))
		results = append(results, res)
	}

	if *outPath != "" {
		writeCSV(*outPath, results)
		fmt.Printf("wrote %s\n", *outPath)
	}
}

// sanityRun is the self-check the study always starts with: sequential
// counters in, counters back out, then the negated rewrite.
func sanityRun(n int) {
	fmt.Printf("sanity run, n=%d\n", n)
	a := adaptivearray.New()

	t1 := time.Now()
	for i := 0; i < n; i++ {
		a.Insert(i, int32(i))
	}
	insertTook := time.Since(t1)
	for i := 0; i < n; i++ {
		if got := a.Get(i); got != int32(i) {
			fail("sanity: get(%d) = %d", i, got)
		}
	}
	fmt.Printf("  status: %s\n", a.Stat())
	fmt.Printf("  %d inserts took %v\n", n, insertTook)

	v := int32(n - 1)
	t1 = time.Now()
	p := a.Find(v)
	findTook := time.Since(t1)
	if p < 0 || a.Get(p) != v {
		fail("sanity: failed to find %d", v)
	}
	fmt.Printf("  find took %v [%d]=%d\n", findTook, p, a.Get(p))

	for i := 0; i < n; i++ {
		a.Insert(i, int32(-i))
	}
	for i := 0; i < n; i++ {
		if got := a.Get(i); got != int32(-i) {
			fail("sanity: get(%d) = %d after negation", i, got)
		}
	}
	fmt.Printf("  status: %s\n", a.Stat())
	a.MemDetailed().Print(1)
}

func runScenario(sc scenario, n int, seed int64) scenarioResult {
	r := rand.New(rand.NewSource(seed))
	a := adaptivearray.New()

	bar := progressbar.Default(int64(n))
	t1 := time.Now()
	for i := 0; i < n; i++ {
		a.Insert(i, sc.gen(r, i))
		if (i+1)%4096 == 0 {
			_ = bar.Add(4096)
		}
	}
	insertNs := time.Since(t1).Nanoseconds()
	_ = bar.Finish()

	res := scenarioResult{
		scenario:    sc,
		n:           n,
		size:        a.Size(),
		entropyBits: a.EntropyBits(),
		signed:      a.Signed(),
		bytes:       a.ByteSize(),
		bitsPerVal:  float64(a.ByteSize()) * 8 / float64(n),
		repacks:     a.RepackCount(),
		insertNs:    insertNs,
		findIdx:     -1,
	}
	if sc.find != 0 {
		t1 = time.Now()
		res.findIdx = a.Find(sc.find)
		res.findNs = time.Since(t1).Nanoseconds()
		res.verified = res.findIdx >= 0 && a.Get(res.findIdx) == sc.find
	}
	return res
}

func summaryLine(res scenarioResult) string {
	line := fmt.Sprintf("size %d, entropy %d bits, signed %v, %s (%.2f bits/value), %d repacks, insert %v",
		res.size, res.entropyBits, res.signed,
		humanize.Bytes(uint64(res.bytes)), res.bitsPerVal, res.repacks,
		time.Duration(res.insertNs))
	if res.find != 0 {
		line += fmt.Sprintf(", find(%d) = %d in %v (verified %v)",
			res.find, res.findIdx, time.Duration(res.findNs), res.verified)
	}
	return line
}

func writeCSV(path string, results []scenarioResult) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fail("failed to create output directory: %v", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		fail("failed to create output file: %v", err)
	}
	defer f.Close()

	wr := csv.NewWriter(f)
	defer wr.Flush()

	mustWrite(wr, []string{
		"scenario", "n", "size", "entropy_bits", "signed", "bytes",
		"bits_per_value", "repacks", "insert_ns", "find_value",
		"find_index", "find_ns", "find_verified",
	})
	for _, res := range results {
		mustWrite(wr, utils.Map([]any{
			res.name, res.n, res.size, res.entropyBits, res.signed,
			res.bytes, strconv.FormatFloat(res.bitsPerVal, 'f', 3, 64),
			res.repacks, res.insertNs, res.find,
			res.findIdx, res.findNs, res.verified,
		}, func(v any) string { return fmt.Sprint(v) }))
	}
}

func mustWrite(wr *csv.Writer, record []string) {
	if err := wr.Write(record); err != nil {
		fail("failed to write CSV record: %v", err)
	}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
