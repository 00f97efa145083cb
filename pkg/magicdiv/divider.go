// Package magicdiv replaces runtime signed division by a compile-time-known
// divisor with an equivalent multiply-and-shift sequence. A Divider is
// prepared once, when the divisor value is known, and then evaluates exact
// truncating quotients and remainders for arbitrary dividends without a
// hardware division instruction.
//
// Power-of-two divisors are deliberately rejected: they have a cheaper
// shift-only transform, and Classify reports the shift amount for it.
package magicdiv

import (
	"errors"
	"fmt"

	"magicdivgo/internal/core"
)

// Integer is the set of word widths the transform is instantiated for.
type Integer interface {
	int32 | int64
}

var (
	// ErrDivisionByZero reports a zero divisor. The division the transform
	// stands in for is undefined; callers must not proceed.
	ErrDivisionByZero = errors.New("magicdiv: division by zero")

	// ErrPowerOfTwoDivisor reports a divisor whose magnitude is an exact
	// power of two. Such divisors belong on the arithmetic-shift path;
	// Classify returns the exponent to shift by.
	ErrPowerOfTwoDivisor = errors.New("magicdiv: power-of-two divisor, use the shift path")
)

// Class mirrors core.Class on the public surface.
type Class = core.Class

const (
	General    = core.General
	PowerOfTwo = core.PowerOfTwo
)

// Classify inspects a divisor and decides the evaluation strategy. For
// PowerOfTwo divisors the returned int is the exponent k with |d| = 2^k,
// reading the magnitude as unsigned — so the most negative divisor
// classifies PowerOfTwo with k = W-1. For General divisors it is 0.
func Classify[T Integer](d T) (Class, int, error) {
	if d == 0 {
		return General, 0, ErrDivisionByZero
	}
	switch v := any(d).(type) {
	case int32:
		class, k := core.Classify32(v)
		return class, int(k), nil
	case int64:
		class, k := core.Classify64(v)
		return class, int(k), nil
	default:
		panic(fmt.Sprintf("magicdiv: unsupported dividend type %T", d))
	}
}

// Divider holds the constants synthesized for one divisor. It is immutable
// after New and safe for concurrent use from any number of goroutines; Div,
// Mod and DivMod only read their inputs and produce fresh results.
type Divider[T Integer] struct {
	d   T      // original divisor
	c   uint64 // multiplier, 2^(W-1) < c < 2^W
	m   uint8  // shift exponent, W+1 <= m <= 2W-2
	neg bool   // divisor was negative; applied at evaluation time
}

// New classifies d and synthesizes its magic constants. A zero divisor
// fails with ErrDivisionByZero and a power-of-two one with
// ErrPowerOfTwoDivisor; both preconditions are checked once here, before
// the hot path, which is then total and error-free.
func New[T Integer](d T) (*Divider[T], error) {
	class, k, err := Classify(d)
	if err != nil {
		return nil, err
	}
	if class == PowerOfTwo {
		return nil, fmt.Errorf("%w: |%d| = 2^%d", ErrPowerOfTwoDivisor, int64(d), k)
	}
	dv := &Divider[T]{d: d, neg: d < 0}
	switch v := any(d).(type) {
	case int32:
		m := core.ComputeS32(core.Magnitude32(v))
		dv.c, dv.m = uint64(m.C), m.M
	case int64:
		m := core.ComputeS64(core.Magnitude64(v))
		dv.c, dv.m = m.C, m.M
	}
	return dv, nil
}

// Div returns the exact truncating quotient x / Divisor(), rounded toward
// zero like the native operator.
func (dv *Divider[T]) Div(x T) T {
	switch v := any(x).(type) {
	case int32:
		return T(core.FastDivS32(v, core.S32{C: uint32(dv.c), M: dv.m}, dv.neg))
	case int64:
		return T(core.FastDivS64(v, core.S64{C: dv.c, M: dv.m}, dv.neg))
	default:
		panic(fmt.Sprintf("magicdiv: unsupported dividend type %T", x))
	}
}

// Mod returns the truncating remainder x % Divisor(); zero or the sign
// of x, with |r| < |Divisor()|.
func (dv *Divider[T]) Mod(x T) T {
	_, r := dv.DivMod(x)
	return r
}

// DivMod returns quotient and remainder in one evaluation.
func (dv *Divider[T]) DivMod(x T) (q, r T) {
	q = dv.Div(x)
	switch v := any(x).(type) {
	case int32:
		return q, T(core.FastRemS32(v, int32(dv.d), int32(q)))
	case int64:
		return q, T(core.FastRemS64(int64(v), int64(dv.d), int64(q)))
	default:
		panic(fmt.Sprintf("magicdiv: unsupported dividend type %T", x))
	}
}

// Divisor returns the divisor the constants were synthesized for.
func (dv *Divider[T]) Divisor() T {
	return dv.d
}

// Constants exposes the synthesized pair (m, c), for code generators that
// emit the multiply/shift sequence directly and for verification.
func (dv *Divider[T]) Constants() (m int, c uint64) {
	return int(dv.m), dv.c
}

// String renders the divider for diagnostics.
func (dv *Divider[T]) String() string {
	return fmt.Sprintf("Divider{d: %d, m: %d, c: %d}", int64(dv.d), dv.m, dv.c)
}
