package core

import (
	"math/bits"

	"github.com/holiman/uint256"
)

// S32 holds the magic constant for signed 32-bit division by a fixed
// non-power-of-two divisor magnitude g:
//
//	M = 31 + ceil(log2 g)
//	C = ceil(2^M / g)
//
// For every admissible g (not a power of two, 1 < g < 2^31) this gives
// 33 <= M <= 62 and 2^31 < C < 2^32, so C always fits an unsigned word
// with its top bit set. The pair is bound to exactly one magnitude; the
// divisor's sign is kept separately and applied at evaluation time.
type S32 struct {
	C uint32
	M uint8
}

// S64 is the 64-bit magic constant: M = 63 + ceil(log2 g), C = ceil(2^M / g),
// with 65 <= M <= 126 and 2^63 < C < 2^64.
type S64 struct {
	C uint64
	M uint8
}

// ComputeS32 synthesizes the magic constant for a signed 32-bit divisor of
// magnitude g. The caller must have routed zero and power-of-two magnitudes
// to the shift path via Classify32 first; ComputeS32 panics on either, by
// contract, rather than synthesize constants that would divide wrongly.
func ComputeS32(g uint32) S32 {
	if g == 0 {
		panic("division by zero")
	}
	if g&(g-1) == 0 {
		panic("power-of-two magnitude, use the shift path")
	}
	// ceil(log2 g) = bits.Len32(g), exactly because g is not a power of two.
	m := uint(31 + bits.Len32(g))
	// C = ceil(2^M / g). M <= 62, so 2^M + g - 1 fits a uint64 and the
	// preparation arithmetic is native and exact.
	c := ((uint64(1) << m) + uint64(g) - 1) / uint64(g)
	return S32{C: uint32(c), M: uint8(m)}
}

// ComputeS64 synthesizes the magic constant for a signed 64-bit divisor of
// magnitude g. Here 2^M reaches 2^126, beyond any native width, so the
// preparation runs on 256-bit integers: exact shift, divide, and a bump on
// a nonzero remainder to get the ceiling. Same contract as ComputeS32.
func ComputeS64(g uint64) S64 {
	if g == 0 {
		panic("division by zero")
	}
	if g&(g-1) == 0 {
		panic("power-of-two magnitude, use the shift path")
	}
	m := uint(63 + bits.Len64(g))
	pow := new(uint256.Int).Lsh(uint256.NewInt(1), m)
	q, r := new(uint256.Int).DivMod(pow, uint256.NewInt(g), new(uint256.Int))
	if !r.IsZero() {
		q.AddUint64(q, 1)
	}
	// q < 2^64 because g > 2^(ceil(log2 g) - 1).
	return S64{C: q.Uint64(), M: uint8(m)}
}

// FastDivS32 evaluates the exact truncating quotient x / d given the magic
// constant m for |d| and neg reporting whether d was negative:
//
//	p  = x * C          // 64-bit signed product, no overflow
//	s  = top bit of x   // 1 exactly for negative dividends
//	q' = (p >> M) + s   // arithmetic shift, then unified sign correction
//	q  = neg ? -q' : q'
//
// The single +s correction is exact for both dividend signs because x*C is
// never a multiple of 2^M for admissible magnitudes; no further branching
// is needed and no intermediate step can overflow.
func FastDivS32(x int32, m S32, neg bool) int32 {
	p := int64(x) * int64(m.C)
	s := int32(uint32(x) >> 31)
	q := int32(p>>uint(m.M)) + s
	if neg {
		return -q
	}
	return q
}

// FastDivS64 is the 64-bit evaluator. There is no native 128-bit product
// here, so the signed double-width multiply and the arithmetic shift by M
// are synthesized from 64-bit halves; see mulS128 and sar128.
func FastDivS64(x int64, m S64, neg bool) int64 {
	hi, lo := mulS128(x, m.C)
	s := int64(uint64(x) >> 63)
	q := sar128(hi, lo, uint(m.M)) + s
	if neg {
		return -q
	}
	return q
}

// FastRemS32 derives the truncating remainder r = x - q*d in 32-bit
// wrapping arithmetic. Given the exact truncating quotient q, |r| < |d|
// holds algebraically, so neither the multiply nor the subtract can
// overflow the word; r is zero or carries the sign of x.
func FastRemS32(x, d, q int32) int32 {
	return x - q*d
}

// FastRemS64 is the 64-bit counterpart of FastRemS32.
func FastRemS64(x, d, q int64) int64 {
	return x - q*d
}

// mulS128 returns the 128-bit signed product x * c as a signed high word
// and an unsigned low word. bits.Mul64 computes the unsigned product; when
// x < 0 its unsigned reinterpretation is x + 2^64, so the unsigned high
// word overshoots the signed one by exactly c:
//
//	(x + 2^64) * c = x*c + c*2^64
//
// Subtracting c from the high word recovers the signed product; the low
// word is unaffected.
func mulS128(x int64, c uint64) (int64, uint64) {
	hi, lo := bits.Mul64(uint64(x), c)
	if x < 0 {
		hi -= c
	}
	return int64(hi), lo
}

// sar128 arithmetically right-shifts the signed 128-bit value [hi, lo] by
// k, 0 < k < 128, and returns the low 64 bits of the result. The magic
// shifts used by FastDivS64 always have k >= 65, which discards lo
// entirely, but the helper handles the whole range.
func sar128(hi int64, lo uint64, k uint) int64 {
	if k >= 64 {
		return hi >> (k - 64)
	}
	return int64(lo>>k | uint64(hi)<<(64-k))
}
