package interval

import (
	"math/rand"
	"testing"
)

// The three stores exist as a performance exploration; these benchmarks are
// the comparison.  Ascending and descending insertion are the workloads the
// scan entry heuristic targets; the random workload shows the O(k) general
// case.

func benchStores(b *testing.B, bench func(b *testing.B, newStore func() Store)) {
	for _, sf := range storeFactories {
		b.Run(sf.name, func(b *testing.B) { bench(b, sf.new) })
	}
}

func BenchmarkUnionAscending(b *testing.B) {
	benchStores(b, func(b *testing.B, newStore func() Store) {
		s := NewRangeSetStore(newStore())
		for i := 0; i < b.N; i++ {
			start := 3*i + 1
			s.UnionWith(Range{Start: start, End: start + 1})
		}
	})
}

func BenchmarkUnionDescending(b *testing.B) {
	benchStores(b, func(b *testing.B, newStore func() Store) {
		s := NewRangeSetStore(newStore())
		for i := 0; i < b.N; i++ {
			start := 3*(b.N-i) + 1
			s.UnionWith(Range{Start: start, End: start + 1})
		}
	})
}

func BenchmarkUnionRandom(b *testing.B) {
	benchStores(b, func(b *testing.B, newStore func() Store) {
		rng := rand.New(rand.NewSource(1))
		starts := make([]int, b.N)
		for i := range starts {
			starts[i] = 1 + rng.Intn(1<<24)
		}
		b.ResetTimer()
		s := NewRangeSetStore(newStore())
		for i := 0; i < b.N; i++ {
			s.UnionWith(Range{Start: starts[i], End: starts[i] + 7})
		}
	})
}

func BenchmarkSymmetricToggle(b *testing.B) {
	benchStores(b, func(b *testing.B, newStore func() Store) {
		rng := rand.New(rand.NewSource(1))
		starts := make([]int, b.N)
		for i := range starts {
			starts[i] = 1 + rng.Intn(1<<20)
		}
		b.ResetTimer()
		s := NewRangeSetStore(newStore())
		for i := 0; i < b.N; i++ {
			s.SymmetricExceptWith(Range{Start: starts[i], End: starts[i] + 15})
		}
	})
}

func BenchmarkExceptInterior(b *testing.B) {
	benchStores(b, func(b *testing.B, newStore func() Store) {
		for i := 0; i < b.N; i++ {
			s := NewRangeSetStore(newStore())
			s.UnionWith(Range{Start: 1, End: 1 << 16})
			for start := 100; start < 1<<16; start += 64 {
				s.ExceptWith(Range{Start: start, End: start + 15})
			}
		}
	})
}
