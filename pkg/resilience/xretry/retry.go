package xretry

import (
	"context"
	"time"
)

// callConfig 便捷入口的会话配置
type callConfig struct {
	retries  int
	delay    DelayStrategy
	delaySet bool
	onRetry  func(attempt int, err error)
}

// CallOption 便捷入口配置选项
type CallOption func(*callConfig)

// Retries 设置最大重试次数（不含首次尝试）
// n < 0 归一化为 0；缺省为 3
func Retries(n int) CallOption {
	return func(c *callConfig) {
		if n < 0 {
			n = 0
		}
		c.retries = n
	}
}

// Delay 设置固定延迟，等价于 WithDelayStrategy(NewFixedDelay(d))
func Delay(d time.Duration) CallOption {
	return func(c *callConfig) {
		c.delay = NewFixedDelay(d)
		c.delaySet = true
	}
}

// WithDelayStrategy 设置延迟策略
// 传入 nil 会被静默忽略
func WithDelayStrategy(s DelayStrategy) CallOption {
	return func(c *callConfig) {
		if s != nil {
			c.delay = s
			c.delaySet = true
		}
	}
}

// OnRetry 设置重试回调，在每次失败的尝试之后调用
// attempt: 已失败的尝试序号（从 1 开始）
func OnRetry(f func(attempt int, err error)) CallOption {
	return func(c *callConfig) {
		if f != nil {
			c.onRetry = f
		}
	}
}

// Do 执行带重试的操作（便捷入口）
//
// fn 为无参可失败操作；带固定参数的调用先通过 Bind 系列适配为无参闭包。
//
// 默认语义（与核心 DefaultPolicy 有意区分）：
//   - 完全不传选项：3 次重试、零延迟（立即重试）
//   - 传入任意选项后：未指定的部分回退到核心默认值
//     （重试次数缺省 3，延迟缺省固定 2s）
//
// 返回值即操作本身的结果：首个成功为 nil，预算耗尽时为最后一次的错误，
// 重试机制不引入任何额外的错误包装或错误类型。
//
// 示例:
//
//	err := xretry.Do(ctx, func() error {
//	    return ping()
//	})
//
//	err := xretry.Do(ctx, func() error {
//	    return ping()
//	}, xretry.Retries(5), xretry.Delay(100*time.Millisecond))
func Do(ctx context.Context, fn func() error, opts ...CallOption) error {
	if fn == nil {
		return ErrNilOperation
	}
	policy, execOpts := resolveCall(opts)
	op := func(context.Context) error {
		return fn()
	}
	return NewExecutor(op, policy, execOpts...).Run(ctx)
}

// DoWithData 执行带重试的操作并返回结果（泛型便捷入口）
//
// 默认语义与 Do 相同。失败时返回 T 的零值与最后一次的错误。
//
// 示例:
//
//	user, err := xretry.DoWithData(ctx, func() (User, error) {
//	    return fetchUser(id)
//	}, xretry.Retries(3))
func DoWithData[T any](ctx context.Context, fn func() (T, error), opts ...CallOption) (T, error) {
	if fn == nil {
		var zero T
		return zero, ErrNilOperation
	}
	policy, execOpts := resolveCall(opts)
	op := func(context.Context) (T, error) {
		return fn()
	}
	return NewResultExecutor(op, policy, execOpts...).Run(ctx)
}

// resolveCall 将调用点选项折算为 Policy 与执行器选项
//
// 设计决策: 无任何选项时使用零延迟而非 DefaultPolicy 的 2s 固定延迟，
// 保持"不加说明的重试就是立即重试"的调用点直觉；一旦调用方开始显式
// 配置，未指定的部分统一回退到核心默认值，避免出现第三套默认规则。
func resolveCall(opts []CallOption) (Policy, []ExecutorOption) {
	c := callConfig{retries: DefaultMaxRetries}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}

	var delay DelayStrategy
	switch {
	case c.delaySet:
		delay = c.delay
	case len(opts) == 0:
		delay = NewFixedDelay(0)
	default:
		delay = NewFixedDelay(DefaultFixedDelay)
	}

	policy := NewPolicy(c.retries, delay)

	var execOpts []ExecutorOption
	if c.onRetry != nil {
		execOpts = append(execOpts, WithOnRetry(c.onRetry))
	}
	return policy, execOpts
}
