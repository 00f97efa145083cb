package magicdiv

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheGet(t *testing.T) {
	c := NewCache[int64](0)

	dv1, err := c.Get(7)
	require.NoError(t, err)
	dv2, err := c.Get(7)
	require.NoError(t, err)
	assert.Same(t, dv1, dv2, "repeated Get must return the cached divider")
	assert.Equal(t, 1, c.Len())

	assert.Equal(t, int64(14), dv1.Div(100))

	_, err = c.Get(0)
	assert.ErrorIs(t, err, ErrDivisionByZero)
	_, err = c.Get(8)
	assert.ErrorIs(t, err, ErrPowerOfTwoDivisor)
	assert.Equal(t, 1, c.Len(), "failed divisors must not be cached")
}

// Many goroutines hammering the same small divisor set; run with -race.
func TestCacheConcurrent(t *testing.T) {
	c := NewCache[int32](4)
	divisors := []int32{3, -3, 7, 10, 641, 1000000007}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(seed int32) {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				d := divisors[(int(seed)+i)%len(divisors)]
				dv, err := c.Get(d)
				if err != nil {
					t.Errorf("Get(%d): %v", d, err)
					return
				}
				x := seed*31 + int32(i)
				if q := dv.Div(x); q != x/d {
					t.Errorf("d=%d x=%d: got %d, want %d", d, x, q, x/d)
					return
				}
			}
		}(int32(w))
	}
	wg.Wait()

	assert.Equal(t, len(divisors), c.Len())
}
