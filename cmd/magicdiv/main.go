// magicdiv inspects, applies, and verifies the multiply-and-shift constants
// that replace signed division by a compile-time-known divisor.
package main

import (
	"fmt"
	"math"
	"math/big"
	"math/rand"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"magicdivgo/internal/util"
	"magicdivgo/pkg/magicdiv"
)

var (
	width   int
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "magicdiv",
		Short:         "Multiply-and-shift constants for signed division by a constant",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().IntVarP(&width, "width", "w", 64, "word width in bits (32 or 64)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	constantsCmd := &cobra.Command{
		Use:   "constants <divisor>",
		Short: "Classify a divisor and print its synthesized constants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWidth(args[0], runConstants[int32], runConstants[int64])
		},
	}

	divCmd := &cobra.Command{
		Use:   "div <divisor> <dividend>",
		Short: "Divide via the magic path and cross-check the native operators",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWidth2(args[0], args[1], runDiv[int32], runDiv[int64])
		},
	}

	var (
		checkN    int
		checkSeed int64
	)
	checkCmd := &cobra.Command{
		Use:   "check <divisor>",
		Short: "Verify random and boundary dividends against math/big",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			check32 := func(d int32) error {
				return runCheck(d, checkN, checkSeed, []int32{math.MinInt32, math.MinInt32 + 1, -1, 0, 1, math.MaxInt32})
			}
			check64 := func(d int64) error {
				return runCheck(d, checkN, checkSeed, []int64{math.MinInt64, math.MinInt64 + 1, -1, 0, 1, math.MaxInt64})
			}
			return withWidth(args[0], check32, check64)
		},
	}
	checkCmd.Flags().IntVarP(&checkN, "n", "n", 1_000_000, "number of random dividends")
	checkCmd.Flags().Int64Var(&checkSeed, "seed", 1, "random seed")

	rootCmd.AddCommand(constantsCmd, divCmd, checkCmd)

	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

// withWidth parses one signed argument at the selected word width and
// dispatches to the matching instantiation.
func withWidth(arg string, f32 func(int32) error, f64 func(int64) error) error {
	v, err := parseArg(arg)
	if err != nil {
		return err
	}
	switch width {
	case 32:
		return f32(int32(v))
	case 64:
		return f64(v)
	default:
		return fmt.Errorf("unsupported width %d (want 32 or 64)", width)
	}
}

func withWidth2(arg0, arg1 string, f32 func(int32, int32) error, f64 func(int64, int64) error) error {
	v1, err := parseArg(arg1)
	if err != nil {
		return err
	}
	return withWidth(arg0,
		func(d int32) error { return f32(d, int32(v1)) },
		func(d int64) error { return f64(d, v1) })
}

func parseArg(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 0, width)
	if err != nil {
		return 0, fmt.Errorf("bad %d-bit integer %q: %w", width, s, err)
	}
	return v, nil
}

func runConstants[T magicdiv.Integer](d T) error {
	class, k, err := magicdiv.Classify(d)
	if err != nil {
		return err
	}
	if class == magicdiv.PowerOfTwo {
		fmt.Printf("divisor %d: %v, arithmetic shift by %d\n", int64(d), class, k)
		return nil
	}
	dv, err := magicdiv.New(d)
	if err != nil {
		return err
	}
	m, c := dv.Constants()
	fmt.Printf("divisor %d: %v, m = %d, c = %d (%#x)\n", int64(d), class, m, c, c)
	return nil
}

func runDiv[T magicdiv.Integer](d, x T) error {
	dv, err := magicdiv.New(d)
	if err != nil {
		return err
	}
	q, r := dv.DivMod(x)
	fmt.Printf("%d / %d = %d, remainder %d\n", int64(x), int64(d), int64(q), int64(r))
	if q != x/d || r != x%d {
		return fmt.Errorf("mismatch against native division: q=%d r=%d", int64(x/d), int64(x%d))
	}
	util.Log(verbose, "matches native / and %%")
	return nil
}

func runCheck[T magicdiv.Integer](d T, n int, seed int64, boundary []T) error {
	dv, err := magicdiv.New(d)
	if err != nil {
		return err
	}
	m, c := dv.Constants()
	util.Log(verbose, "divisor %d: m = %d, c = %d", int64(d), m, c)

	rng := rand.New(rand.NewSource(seed))
	bd := big.NewInt(int64(d))
	refQ, refR := new(big.Int), new(big.Int)
	verify := func(x T) error {
		q, r := dv.DivMod(x)
		refQ.QuoRem(big.NewInt(int64(x)), bd, refR)
		if refQ.Int64() != int64(q) || refR.Int64() != int64(r) {
			return fmt.Errorf("x=%d: got q=%d r=%d, want q=%s r=%s", int64(x), int64(q), int64(r), refQ, refR)
		}
		return nil
	}

	for _, x := range boundary {
		if err := verify(x); err != nil {
			return err
		}
	}
	pl := util.NewProgressLogger(uint64(n), "check ", verbose)
	for i := 0; i < n; i++ {
		if err := verify(T(rng.Uint64())); err != nil {
			return err
		}
		pl.Log()
	}
	pl.Finalize()
	fmt.Printf("ok: %d boundary and %d random dividends match math/big for divisor %d\n",
		len(boundary), n, int64(d))
	return nil
}
