package loop

import (
	"strconv"
	"testing"
)

func BenchmarkSpin(b *testing.B) {
	for _, n := range []int{1_000, 1_000_000} {
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			for b.Loop() {
				Spin(n)
			}
		})
	}
}
