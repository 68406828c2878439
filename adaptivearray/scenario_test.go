package adaptivearray

import (
	"math/rand"
	"testing"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/stretchr/testify/require"
)

const scenarioLoop = 65536

func TestScenario_SequentialCounters(t *testing.T) {
	a := New()
	for i := 0; i < scenarioLoop; i++ {
		a.Insert(i, int32(i))
	}
	for i := 0; i < scenarioLoop; i++ {
		require.EqualValues(t, i, a.Get(i), "index %d", i)
	}
	require.Equal(t, 16, a.EntropyBits(), "65535 needs 16 bits")
	require.False(t, a.Signed())

	v := int32(scenarioLoop - 1)
	p := a.Find(v)
	require.Equal(t, v, a.Get(p))
}

func TestScenario_NegatedCounters(t *testing.T) {
	a := New()
	for i := 0; i < scenarioLoop; i++ {
		a.Insert(i, int32(i))
	}
	for i := 0; i < scenarioLoop; i++ {
		a.Insert(i, int32(-i))
	}
	for i := 0; i < scenarioLoop; i++ {
		require.EqualValues(t, -i, a.Get(i), "index %d", i)
	}
	require.True(t, a.Signed())
	// the sign switch over 16-bit data lands on the capped width
	require.Equal(t, WordBits-1, a.EntropyBits())
}

func TestScenario_CoinFlips(t *testing.T) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	a := New()
	for i := 0; i < scenarioLoop; i++ {
		a.Insert(i, int32(r.Intn(2)))
	}
	require.Equal(t, 1, a.EntropyBits(), "0/1 data stays at one bit")
	require.False(t, a.Signed())
	require.Equal(t, 0, a.RepackCount())
}

func TestScenario_SmallSignedRange(t *testing.T) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	a := New()
	drew255 := false
	for i := 0; i < scenarioLoop; i++ {
		v := int32(r.Intn(511)) - 255
		if v == 255 {
			drew255 = true
		}
		a.Insert(i, v)
	}
	require.True(t, a.Signed())
	require.Equal(t, 9, a.EntropyBits(), "[-255, 255] packs at 9 signed bits")

	j := a.Find(255)
	if drew255 {
		require.EqualValues(t, 255, a.Get(j))
	} else {
		require.Equal(t, -1, j)
	}
}

func TestProperty_RoundTripRandomWorkloads(t *testing.T) {
	t.Parallel()
	const testRuns = 200
	const perRun = 2048

	bar := progressbar.Default(testRuns)
	repacks := 0
	for run := 0; run < testRuns; run++ {
		seed := time.Now().UnixNano()
		r := rand.New(rand.NewSource(seed))

		lo := int32(-(1 << r.Intn(20)))
		hi := int32(1<<r.Intn(20) - 1)
		if r.Intn(4) == 0 {
			lo = 0 // unsigned-only workload
		}
		vals := randomValues(r, perRun, lo, hi)

		// insert in a random order; later inserts never overwrite
		order := r.Perm(perRun)
		a := New()
		prevEntropy := a.EntropyBits()
		for _, i := range order {
			a.Insert(i, vals[i])
			require.GreaterOrEqual(t, a.EntropyBits(), prevEntropy, "seed %d", seed)
			prevEntropy = a.EntropyBits()
		}
		for i, v := range vals {
			require.Equal(t, v, a.Get(i), "seed %d index %d", seed, i)
		}

		probe := vals[r.Intn(perRun)]
		j := a.Find(probe)
		require.NotEqual(t, -1, j, "seed %d", seed)
		require.Equal(t, probe, a.Get(j), "seed %d", seed)
		require.Equal(t, a.findLinear(probe), j, "seed %d", seed)

		repacks += a.RepackCount()
		_ = bar.Add(1)
	}
	t.Logf("Tested %d workloads of %d values, %d repacks total (avg %.2f per workload)",
		testRuns, perRun, repacks, float64(repacks)/testRuns)
}

func TestProperty_RepackFidelityUnderWidening(t *testing.T) {
	t.Parallel()
	const testRuns = 100

	bar := progressbar.Default(testRuns)
	for run := 0; run < testRuns; run++ {
		seed := time.Now().UnixNano()
		r := rand.New(rand.NewSource(seed))

		a := New()
		written := map[int]int32{}
		// widen progressively; every step re-verifies everything
		for step, width := range []int{1, 3, 7, 12, 16} {
			lo, hi := int32(0), int32(1)<<width-1
			if step >= 3 {
				lo = -hi - 1
			}
			for k := 0; k < 512; k++ {
				idx := step*512 + k
				v := randomValues(r, 1, lo, hi)[0]
				a.Insert(idx, v)
				written[idx] = v
			}
			fpBefore := a.Fingerprint()
			for idx, v := range written {
				require.Equal(t, v, a.Get(idx), "seed %d width step %d", seed, width)
			}
			require.Equal(t, fpBefore, a.Fingerprint(), "seed %d: reads must not mutate", seed)
		}
		require.True(t, a.Signed(), "seed %d", seed)
		_ = bar.Add(1)
	}
}
