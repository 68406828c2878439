package adaptivearray

import (
	"fmt"
	"math/rand"
	"testing"
)

var benchSizes = []int{1 << 10, 1 << 13, 1 << 16, 1 << 20}

func setupArray(b *testing.B, n int, lo, hi int32) (*Array, []int32) {
	b.Helper()
	b.StopTimer()
	r := rand.New(rand.NewSource(42))
	vals := randomValues(r, n, lo, hi)
	a := buildArray(vals)
	b.StartTimer()
	return a, vals
}

func BenchmarkInsert_Sequential(b *testing.B) {
	for _, hi := range []int32{1, 15, 255, 65535, 1 << 20} {
		b.Run(fmt.Sprintf("Max=%d", hi), func(b *testing.B) {
			r := rand.New(rand.NewSource(42))
			vals := randomValues(r, b.N, 0, hi)
			a := New()
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				a.Insert(i, vals[i])
			}
			b.ReportMetric(float64(a.ByteSize())*8/float64(a.Size()), "bits_per_value")
		})
	}
}

func BenchmarkInsert_Widening(b *testing.B) {
	// one forced full repack per iteration (entropy is monotone, so
	// the array must be rebuilt between iterations)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		r := rand.New(rand.NewSource(42))
		a := buildArray(randomValues(r, 1<<13, 0, 15))
		b.StartTimer()
		a.Insert(0, -1)
	}
}

func BenchmarkGet(b *testing.B) {
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("N=%d", n), func(b *testing.B) {
			a, _ := setupArray(b, n, 0, 255)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = a.Get(i % n)
			}
		})
	}
}

func BenchmarkFind(b *testing.B) {
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("N=%d", n), func(b *testing.B) {
			a, vals := setupArray(b, n, 0, 255)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = a.Find(vals[i%n])
			}
		})
	}
}

func BenchmarkFind_Linear(b *testing.B) {
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("N=%d", n), func(b *testing.B) {
			a, vals := setupArray(b, n, 0, 255)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = a.findLinear(vals[i%n])
			}
		})
	}
}

func BenchmarkFind_Absent(b *testing.B) {
	// full scans: the probe is representable but never stored
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("N=%d", n), func(b *testing.B) {
			a, _ := setupArray(b, n, 0, 254)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = a.Find(255)
			}
		})
	}
}

func BenchmarkMemory(b *testing.B) {
	for _, hi := range []int32{1, 15, 255, 65535} {
		b.Run(fmt.Sprintf("Max=%d/N=65536", hi), func(b *testing.B) {
			r := rand.New(rand.NewSource(42))
			vals := randomValues(r, 1<<16, 0, hi)
			b.ResetTimer()
			var a *Array
			for i := 0; i < b.N; i++ {
				a = buildArray(vals)
			}
			b.ReportMetric(float64(a.ByteSize()), "total_bytes")
			b.ReportMetric(float64(a.ByteSize())*8/float64(len(vals)), "bits_per_value")
		})
	}
}
