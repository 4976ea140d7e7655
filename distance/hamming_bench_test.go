package distance

import (
	"fmt"
	"testing"

	"github.com/hupe1980/hammy/packed"
	"github.com/hupe1980/hammy/testutil"
)

func BenchmarkHamming(b *testing.B) {
	rng := testutil.NewRNG(1)
	for _, n := range []int{21, 150, 1000} {
		ra, rb := rng.Sequence(n), rng.Sequence(n)
		x, _ := packed.Encode(ra)
		y, _ := packed.Encode(rb)

		b.Run(fmt.Sprintf("packed/%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = Hamming(x, y)
			}
		})
		b.Run(fmt.Sprintf("naive/%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = Naive(ra, rb)
			}
		})
	}
}

func BenchmarkEncode(b *testing.B) {
	raw := testutil.NewRNG(1).Sequence(150)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = packed.Encode(raw)
	}
}
