//go:build !harness && !checker

package wire_test

import (
	"math"
	"testing"

	"github.com/stealthrocket/kmc/internal/assert"
)

func TestRoundTrip(t *testing.T) {
	tests := map[string]fields{
		"zero": {},
		"max": {
			i: math.MaxInt, i64: math.MaxInt64, u64: math.MaxUint64, u32: math.MaxUint32,
			u8: math.MaxUint8, b8: 0x0F, b32: 0xFF, n: 8,
		},
		"min": {i: math.MinInt, i64: math.MinInt64},
	}

	for scenario, f := range tests {
		t.Run(scenario, func(t *testing.T) {
			for i := 0; i < f.n; i++ {
				f.buf[i] = byte('a' + i)
			}
			b := append(encode(&f), "next"...)
			got, rest, err := decode(b)
			assert.OK(t, err)
			assert.Equal(t, got, f)
			assert.Equal(t, string(rest), "next")
		})
	}
}
