// Package core implements strength reduction for signed division by a
// constant: classifying divisors, synthesizing multiply-and-shift magic
// constants at preparation time, and evaluating exact truncating quotients
// and remainders at runtime without a hardware division instruction.
package core

import (
	"math/bits"
)

// Class tags a nonzero divisor with the evaluation strategy it needs.
type Class int

const (
	// General divisors take the magic-constant multiply/shift path
	// implemented by this package.
	General Class = iota
	// PowerOfTwo divisors take the simpler arithmetic-shift path, which is
	// external to this package. The most negative representable divisor is
	// always in this class: its magnitude, read as unsigned, is 2^(W-1).
	PowerOfTwo
)

func (c Class) String() string {
	switch c {
	case General:
		return "General"
	case PowerOfTwo:
		return "PowerOfTwo"
	default:
		return "Unknown"
	}
}

// Classify32 reports the class of a nonzero signed 32-bit divisor and, for
// PowerOfTwo, the exponent k such that |d| = 2^k as unsigned.
// Classify32 panics if d == 0; division by zero has no transform and the
// caller must not proceed.
func Classify32(d int32) (Class, uint) {
	if d == 0 {
		panic("division by zero")
	}
	g := Magnitude32(d)
	if g&(g-1) == 0 {
		return PowerOfTwo, uint(bits.TrailingZeros32(g))
	}
	return General, 0
}

// Classify64 is the 64-bit counterpart of Classify32.
func Classify64(d int64) (Class, uint) {
	if d == 0 {
		panic("division by zero")
	}
	g := Magnitude64(d)
	if g&(g-1) == 0 {
		return PowerOfTwo, uint(bits.TrailingZeros64(g))
	}
	return General, 0
}

// Magnitude32 returns |d| as unsigned. The wrapping negation is deliberate:
// for d = -2^31 it yields exactly 2^31, which has no signed representation.
func Magnitude32(d int32) uint32 {
	if d < 0 {
		return -uint32(d)
	}
	return uint32(d)
}

// Magnitude64 is the 64-bit counterpart of Magnitude32.
func Magnitude64(d int64) uint64 {
	if d < 0 {
		return -uint64(d)
	}
	return uint64(d)
}
