package xretry

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedDelay(t *testing.T) {
	t.Run("Basic", func(t *testing.T) {
		s := NewFixedDelay(100 * time.Millisecond)

		// 与重试序号无关，首次重试和最后一次返回相同的值
		for i := 1; i <= 10; i++ {
			assert.Equal(t, 100*time.Millisecond, s.NextDelay(i))
		}
	})

	t.Run("NegativeDelay", func(t *testing.T) {
		s := NewFixedDelay(-100 * time.Millisecond)
		assert.Equal(t, time.Duration(0), s.NextDelay(1))
	})

	t.Run("ZeroDelay", func(t *testing.T) {
		s := NewFixedDelay(0)
		assert.Equal(t, time.Duration(0), s.NextDelay(1))
	})
}

func TestExponentialDelay(t *testing.T) {
	t.Run("Formula", func(t *testing.T) {
		s := NewExponentialDelay(100*time.Millisecond, 2.0)

		// delay = initial * multiplier^(retry-1)
		assert.Equal(t, 100*time.Millisecond, s.NextDelay(1))
		assert.Equal(t, 200*time.Millisecond, s.NextDelay(2))
		assert.Equal(t, 400*time.Millisecond, s.NextDelay(3))
		assert.Equal(t, 800*time.Millisecond, s.NextDelay(4))
	})

	t.Run("MultiplierOne", func(t *testing.T) {
		s := NewExponentialDelay(50*time.Millisecond, 1.0)

		for i := 1; i <= 5; i++ {
			assert.Equal(t, 50*time.Millisecond, s.NextDelay(i))
		}
	})

	t.Run("MultiplierBelowOneClamped", func(t *testing.T) {
		s := NewExponentialDelay(50*time.Millisecond, 0.5)
		assert.Equal(t, 50*time.Millisecond, s.NextDelay(3))
	})

	t.Run("NegativeInitialClamped", func(t *testing.T) {
		s := NewExponentialDelay(-time.Second, 2.0)
		assert.Equal(t, time.Duration(0), s.NextDelay(1))
		assert.Equal(t, time.Duration(0), s.NextDelay(10))
	})

	t.Run("RetryBelowOneClamped", func(t *testing.T) {
		s := NewExponentialDelay(100*time.Millisecond, 2.0)
		assert.Equal(t, s.NextDelay(1), s.NextDelay(0))
		assert.Equal(t, s.NextDelay(1), s.NextDelay(-5))
	})

	t.Run("OverflowClamped", func(t *testing.T) {
		s := NewExponentialDelay(time.Second, 2.0)

		// 2^1000 溢出为 +Inf，返回可表示的最大值而不是负数或 NaN
		assert.Equal(t, time.Duration(math.MaxInt64), s.NextDelay(1000))
	})
}
