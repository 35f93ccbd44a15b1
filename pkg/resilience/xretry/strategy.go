package xretry

import (
	"math"
	"time"
)

// DelayStrategy 定义重试延迟策略接口
// 计算每次重试前的等待时间
type DelayStrategy interface {
	// NextDelay 返回第 retry 次重试前的等待时间
	// retry: 重试序号（从 1 开始，首次重试为 1）
	NextDelay(retry int) time.Duration
}

// FixedDelay 固定延迟策略
// 每次重试前等待相同的时间，与重试序号无关
type FixedDelay struct {
	delay time.Duration
}

// NewFixedDelay 创建固定延迟策略
// delay < 0 归一化为 0（立即重试）
func NewFixedDelay(delay time.Duration) *FixedDelay {
	if delay < 0 {
		delay = 0
	}
	return &FixedDelay{delay: delay}
}

func (s *FixedDelay) NextDelay(_ int) time.Duration {
	return s.delay
}

// ExponentialDelay 指数退避延迟策略
// delay = initial * multiplier^(retry-1)
//
// 设计决策: 不引入抖动，也不设置延迟上限，保持公式的确定性；
// 需要上限或抖动时调用方可自行实现 DelayStrategy。
type ExponentialDelay struct {
	initial    time.Duration
	multiplier float64
}

// NewExponentialDelay 创建指数退避延迟策略
// initial < 0 归一化为 0；multiplier < 1 归一化为 1（退化为固定延迟）
func NewExponentialDelay(initial time.Duration, multiplier float64) *ExponentialDelay {
	if initial < 0 {
		initial = 0
	}
	if multiplier < 1 || math.IsNaN(multiplier) {
		multiplier = 1
	}
	return &ExponentialDelay{initial: initial, multiplier: multiplier}
}

func (s *ExponentialDelay) NextDelay(retry int) time.Duration {
	if retry < 1 {
		retry = 1
	}

	delay := float64(s.initial) * math.Pow(s.multiplier, float64(retry-1))

	// retry 极大时 math.Pow 溢出为 +Inf，超出 Duration 可表示范围。
	// Inf/NaN/越界时返回可表示的最大值。
	if math.IsNaN(delay) || delay < 0 || delay >= float64(math.MaxInt64) {
		return time.Duration(math.MaxInt64)
	}

	return time.Duration(delay)
}

// 确保实现了 DelayStrategy 接口
var (
	_ DelayStrategy = (*FixedDelay)(nil)
	_ DelayStrategy = (*ExponentialDelay)(nil)
)
