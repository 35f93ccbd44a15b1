package xretry

import "time"

// 默认策略参数
const (
	// DefaultMaxRetries 默认最大重试次数（不含首次尝试）
	DefaultMaxRetries = 3

	// DefaultFixedDelay 默认固定延迟
	DefaultFixedDelay = 2 * time.Second
)

// Policy 重试策略值对象
//
// Policy 绑定最大重试次数与延迟策略。
//
// 设计决策: Policy 是值类型，WithRetries/WithDelay 返回更新后的副本，
// 原值永不改变。链式构造不产生共享可变状态，各调用点互不影响，
// 也不存在进程级的可变默认配置。
type Policy struct {
	maxRetries int
	delay      DelayStrategy
}

// NewPolicy 创建重试策略
// maxRetries < 0 归一化为 0（只执行一次，不重试）
// delay 为 nil 时使用默认固定延迟
func NewPolicy(maxRetries int, delay DelayStrategy) Policy {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if delay == nil {
		delay = NewFixedDelay(DefaultFixedDelay)
	}
	return Policy{maxRetries: maxRetries, delay: delay}
}

// DefaultPolicy 返回默认重试策略：3 次重试，固定延迟 2s
//
// 每次调用返回独立的策略值。
// 注意：便捷入口 Do/DoWithData 在完全不传选项时使用零延迟（立即重试），
// 与本默认值不同，详见 Do 的文档说明。
func DefaultPolicy() Policy {
	return Policy{
		maxRetries: DefaultMaxRetries,
		delay:      NewFixedDelay(DefaultFixedDelay),
	}
}

// WithRetries 返回更新了最大重试次数的策略副本
// n < 0 归一化为 0
func (p Policy) WithRetries(n int) Policy {
	if n < 0 {
		n = 0
	}
	p.maxRetries = n
	return p
}

// WithDelay 返回更新了延迟策略的策略副本
// s 为 nil 时静默忽略（保持原延迟策略）
func (p Policy) WithDelay(s DelayStrategy) Policy {
	if s != nil {
		p.delay = s
	}
	return p
}

// MaxRetries 返回最大重试次数（不含首次尝试）
func (p Policy) MaxRetries() int {
	return p.maxRetries
}

// Delay 返回延迟策略；零值 Policy 返回 nil
func (p Policy) Delay() DelayStrategy {
	return p.delay
}

// maxAttempts 返回总尝试次数（首次 + 重试）
func (p Policy) maxAttempts() int {
	return p.maxRetries + 1
}

// delayStrategy 返回延迟策略，零值 Policy 回退为零延迟
func (p Policy) delayStrategy() DelayStrategy {
	if p.delay == nil {
		return NewFixedDelay(0)
	}
	return p.delay
}
