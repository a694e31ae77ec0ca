package server

import (
	"strconv"
	"sync/atomic"
	"testing"
)

func BenchmarkLoginRateLimiter_Allow(b *testing.B) {
	l := NewLoginRateLimiter(1_000_000, nil)
	var n atomic.Int64

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			l.Allow("10.0.0." + strconv.FormatInt(n.Add(1)%256, 10))
		}
	})
}
