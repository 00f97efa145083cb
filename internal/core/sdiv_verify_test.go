package core

import (
	"fmt"
	"testing"
)

// --- Verification tests against independently computed constants ---

func TestComputeS32_Verification(t *testing.T) {
	testCases := []struct {
		g        uint32
		expected S32
	}{
		{3, S32{C: 2863311531, M: 33}},
		{5, S32{C: 3435973837, M: 34}},
		{6, S32{C: 2863311531, M: 34}},
		{7, S32{C: 2454267027, M: 34}},
		{9, S32{C: 3817748708, M: 35}},
		{10, S32{C: 3435973837, M: 35}},
		{11, S32{C: 3123612579, M: 35}},
		{25, S32{C: 2748779070, M: 36}},
		{641, S32{C: 3430613504, M: 41}},
		{1000000007, S32{C: 2305842994, M: 61}},
		{2147483647, S32{C: 2147483650, M: 62}}, // 2^31 - 1, the largest magnitude
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("g=%d", tc.g), func(t *testing.T) {
			actual := ComputeS32(tc.g)
			if actual != tc.expected {
				t.Errorf("ComputeS32(%d)\n  got: {C: %d, M: %d}\n want: {C: %d, M: %d}",
					tc.g, actual.C, actual.M, tc.expected.C, tc.expected.M)
			}
		})
	}
}

func TestComputeS64_Verification(t *testing.T) {
	testCases := []struct {
		g        uint64
		expected S64
	}{
		{3, S64{C: 12297829382473034411, M: 65}},
		{5, S64{C: 14757395258967641293, M: 66}},
		{6, S64{C: 12297829382473034411, M: 66}},
		{7, S64{C: 10540996613548315210, M: 66}},
		{9, S64{C: 16397105843297379215, M: 67}},
		{10, S64{C: 14757395258967641293, M: 67}},
		{11, S64{C: 13415813871788764812, M: 67}},
		{25, S64{C: 11805916207174113035, M: 68}},
		{641, S64{C: 14734372801465351681, M: 73}},
		{1000000007, S64{C: 9903520244958400485, M: 93}},
		{9223372036854775807, S64{C: 9223372036854775810, M: 126}}, // 2^63 - 1
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("g=%d", tc.g), func(t *testing.T) {
			actual := ComputeS64(tc.g)
			if actual != tc.expected {
				t.Errorf("ComputeS64(%d)\n  got: {C: %d, M: %d}\n want: {C: %d, M: %d}",
					tc.g, actual.C, actual.M, tc.expected.C, tc.expected.M)
			}
		})
	}
}

// The synthesized pair must satisfy W+1 <= M <= 2W-2 and 2^(W-1) < C < 2^W
// for every admissible magnitude; sweep small magnitudes plus both ends of
// the range.
func TestConstantRanges(t *testing.T) {
	for g := uint32(3); g < 4096; g++ {
		if g&(g-1) == 0 {
			continue
		}
		m := ComputeS32(g)
		if m.M < 33 || m.M > 62 {
			t.Fatalf("ComputeS32(%d): shift %d out of range [33, 62]", g, m.M)
		}
		if m.C <= 1<<31 {
			t.Fatalf("ComputeS32(%d): multiplier %d missing top bit", g, m.C)
		}
	}
	for _, g := range []uint64{3, 4095, 1<<32 - 1, 1<<62 + 1, 1<<63 - 1} {
		m := ComputeS64(g)
		if m.M < 65 || m.M > 126 {
			t.Fatalf("ComputeS64(%d): shift %d out of range [65, 126]", g, m.M)
		}
		if m.C <= 1<<63 {
			t.Fatalf("ComputeS64(%d): multiplier %d missing top bit", g, m.C)
		}
	}
}

func TestComputeRejectsPowerOfTwo(t *testing.T) {
	for _, g := range []uint32{1, 2, 8, 1 << 31} {
		g := g
		t.Run(fmt.Sprintf("g=%d", g), func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("ComputeS32(%d) did not panic", g)
				}
			}()
			ComputeS32(g)
		})
	}
	t.Run("g=8/64bit", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("ComputeS64(8) did not panic")
			}
		}()
		ComputeS64(8)
	})
}

func TestMulS128_Verification(t *testing.T) {
	testCases := []struct {
		name string
		x    int64
		c    uint64
		hi   int64
		lo   uint64
	}{
		{"1*5", 1, 5, 0, 5},
		{"-1*5", -1, 5, -1, ^uint64(0) - 4}, // -5 as a 128-bit value
		{"2^40*2^40", 1 << 40, 1 << 40, 1 << 16, 0},
		{"-2^40*2^40", -(1 << 40), 1 << 40, -(1 << 16), 0},
		{"max*max", 1<<63 - 1, ^uint64(0), 1<<63 - 2, 1<<63 + 1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			hi, lo := mulS128(tc.x, tc.c)
			if hi != tc.hi || lo != tc.lo {
				t.Errorf("mulS128(%d, %d) = (%d, %d), want (%d, %d)",
					tc.x, tc.c, hi, lo, tc.hi, tc.lo)
			}
		})
	}
}

func TestSar128(t *testing.T) {
	testCases := []struct {
		hi       int64
		lo       uint64
		k        uint
		expected int64
	}{
		{0, 1 << 10, 10, 1},
		{1, 0, 64, 1},
		{1, 0, 63, 2},
		{5, 0, 66, 1},
		{-1, 0, 70, -1},   // sign fill
		{-58, 0, 66, -15}, // floors toward negative infinity
		{3, 1 << 63, 63, 7},
	}
	for _, tc := range testCases {
		got := sar128(tc.hi, tc.lo, tc.k)
		if got != tc.expected {
			t.Errorf("sar128(%d, %d, %d) = %d, want %d", tc.hi, tc.lo, tc.k, got, tc.expected)
		}
	}
}
