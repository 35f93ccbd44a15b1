package xretry

import (
	"context"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	retry "github.com/avast/retry-go/v5"
)

// safeIntToUint 将 int 安全转换为 uint。
// 负数返回 0，正数直接转换。
// 用于将尝试次数 (int) 传递给 retry-go 的 Attempts (uint)。
func safeIntToUint(n int) uint {
	if n <= 0 {
		return 0
	}
	return uint(n)
}

// safeUintToInt 将 uint 安全转换为 int。
// 超过 MaxInt 的值会被截断到 MaxInt。
func safeUintToInt(n uint) int {
	if n > uint(math.MaxInt) {
		return math.MaxInt
	}
	return int(n)
}

// executorConfig 执行器的可选配置
type executorConfig struct {
	name    string
	onRetry func(attempt int, err error)
	logger  *slog.Logger
	metrics *Metrics
}

func defaultExecutorConfig() executorConfig {
	return executorConfig{name: "operation"}
}

// ExecutorOption 执行器配置选项
type ExecutorOption func(*executorConfig)

// WithName 设置操作名称，用于日志与指标标注
// 默认 "operation"；空字符串会被静默忽略
func WithName(name string) ExecutorOption {
	return func(c *executorConfig) {
		if name != "" {
			c.name = name
		}
	}
}

// WithOnRetry 设置重试回调，在每次失败的尝试之后调用
// attempt: 已失败的尝试序号（从 1 开始）
// 传入 nil 会被静默忽略
func WithOnRetry(f func(attempt int, err error)) ExecutorOption {
	return func(c *executorConfig) {
		if f != nil {
			c.onRetry = f
		}
	}
}

// WithLogger 设置日志器
// 每次失败的尝试输出一条 Warn 日志，预算耗尽时再输出一条终态 Warn 日志。
// 传入 nil 会被静默忽略（不输出日志）
func WithLogger(l *slog.Logger) ExecutorOption {
	return func(c *executorConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics 设置指标收集器，会话结束时记录尝试次数与结果
// 传入 nil 会被静默忽略
func WithMetrics(m *Metrics) ExecutorOption {
	return func(c *executorConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// Executor 重试执行器（无返回值操作）
//
// Executor 独占一个操作和一个 Policy，Run 是唯一执行入口。
// 执行器是一次性的：Run 只能调用一次，再次调用返回 ErrExecutorConsumed。
// 操作可能携带内部状态（如失败计数器），一次性语义保证不会有第二个
// 重试会话与其交错。
//
// 底层使用 avast/retry-go/v5 实现重试循环。
type Executor struct {
	op       func(ctx context.Context) error
	policy   Policy
	config   executorConfig
	consumed atomic.Bool
}

// NewExecutor 创建重试执行器
func NewExecutor(op func(ctx context.Context) error, policy Policy, opts ...ExecutorOption) *Executor {
	e := &Executor{op: op, policy: policy, config: defaultExecutorConfig()}
	for _, opt := range opts {
		opt(&e.config)
	}
	return e
}

// Run 执行重试会话，返回首个成功或最后一次失败
//
// 语义：
//   - 操作最多被调用 MaxRetries+1 次；每次都失败时恰好 MaxRetries+1 次
//   - 首次尝试之前没有延迟；每次失败后按 DelayStrategy 等待
//   - 成功立即返回 nil；预算耗尽时原样返回最后一次的错误，不做任何包装
//   - 操作内部的 panic 不会被拦截，会中止会话向上传播
//
// ctx 为 context.Background() 时行为与同步阻塞模型一致：不返回直到
// 到达终态，无论配置的延迟有多长。传入可取消的 ctx 则取消会中止会话。
func (e *Executor) Run(ctx context.Context) error {
	if e == nil {
		return ErrNilExecutor
	}
	if ctx == nil {
		return ErrNilContext
	}
	if e.op == nil {
		return ErrNilOperation
	}
	if !e.consumed.CompareAndSwap(false, true) {
		return ErrExecutorConsumed
	}

	s := newSession(e.policy, &e.config)
	err := retry.New(s.options(ctx)...).Do(func() error {
		s.attempts.Add(1)
		return e.op(ctx)
	})
	s.finish(ctx, err)
	return err
}

// ResultExecutor 带返回值的重试执行器
//
// 泛型版本的 Executor，操作返回 (T, error)。语义与 Executor 完全一致：
// 一次性、最多 MaxRetries+1 次调用、首个成功值或最后一次错误原样返回。
type ResultExecutor[T any] struct {
	op       func(ctx context.Context) (T, error)
	policy   Policy
	config   executorConfig
	consumed atomic.Bool
}

// NewResultExecutor 创建带返回值的重试执行器
func NewResultExecutor[T any](op func(ctx context.Context) (T, error), policy Policy, opts ...ExecutorOption) *ResultExecutor[T] {
	e := &ResultExecutor[T]{op: op, policy: policy, config: defaultExecutorConfig()}
	for _, opt := range opts {
		opt(&e.config)
	}
	return e
}

// Run 执行重试会话，返回首个成功值或最后一次失败
// 语义见 Executor.Run。失败时返回 T 的零值与最后一次的错误。
func (e *ResultExecutor[T]) Run(ctx context.Context) (T, error) {
	var zero T
	if e == nil {
		return zero, ErrNilExecutor
	}
	if ctx == nil {
		return zero, ErrNilContext
	}
	if e.op == nil {
		return zero, ErrNilOperation
	}
	if !e.consumed.CompareAndSwap(false, true) {
		return zero, ErrExecutorConsumed
	}

	s := newSession(e.policy, &e.config)
	result, err := retry.NewWithData[T](s.options(ctx)...).Do(func() (T, error) {
		s.attempts.Add(1)
		return e.op(ctx)
	})
	s.finish(ctx, err)
	return result, err
}

// session 一次重试会话的运行时状态
type session struct {
	policy   Policy
	config   *executorConfig
	start    time.Time
	attempts atomic.Int64
}

func newSession(policy Policy, config *executorConfig) *session {
	return &session{policy: policy, config: config, start: time.Now()}
}

// options 构建 retry-go 的选项
// 设计决策: 每次会话重建选项切片，执行器一次性语义下没有复用价值。
func (s *session) options(ctx context.Context) []retry.Option {
	delay := s.policy.delayStrategy()

	opts := make([]retry.Option, 0, 6)
	opts = append(opts, retry.Context(ctx))

	// 总尝试次数 = 首次 + MaxRetries 次重试
	opts = append(opts, retry.Attempts(safeIntToUint(s.policy.maxAttempts())))

	// 不做错误分类：任何失败都消耗重试预算。
	// 覆盖 retry-go 的默认判断，使 Unrecoverable 包装也不会短路重试。
	opts = append(opts, retry.RetryIf(func(_ error) bool {
		return true
	}))

	// retry-go v5 中 DelayType 的 n 从 1 开始，与 DelayStrategy.NextDelay 一致
	opts = append(opts, retry.DelayType(func(n uint, _ error, _ retry.DelayContext) time.Duration {
		return delay.NextDelay(safeUintToInt(n))
	}))

	// retry-go v5 中 OnRetry 的 n 从 0 开始，+1 转换为 1-based
	opts = append(opts, retry.OnRetry(func(n uint, err error) {
		attempt := safeUintToInt(n) + 1
		if s.config.logger != nil {
			s.config.logger.Warn("attempt failed",
				slog.String("operation", s.config.name),
				slog.Int("attempt", attempt),
				slog.Int("max_attempts", s.policy.maxAttempts()),
				slog.Any("error", err),
			)
		}
		if s.config.onRetry != nil {
			s.config.onRetry(attempt, err)
		}
	}))

	// 只返回最后一个错误，保证失败值原样透传
	opts = append(opts, retry.LastErrorOnly(true))

	return opts
}

// finish 记录会话终态（日志 + 指标）
func (s *session) finish(ctx context.Context, err error) {
	attempts := int(s.attempts.Load())
	elapsed := time.Since(s.start)

	if err != nil && s.config.logger != nil {
		s.config.logger.Warn("retry budget exhausted",
			slog.String("operation", s.config.name),
			slog.Int("attempts", attempts),
			slog.Duration("duration", elapsed),
			slog.Any("error", err),
		)
	}

	s.config.metrics.RecordSession(ctx, s.config.name, attempts, elapsed, err)
}
