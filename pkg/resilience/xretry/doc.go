// Package xretry 提供声明式的重试执行引擎。
//
// # 设计理念
//
// xretry 将一次重试会话拆分为三个角色：
//   - DelayStrategy：计算每次重试前的等待时间
//   - Policy：不可变的重试配置（最大重试次数 + 延迟策略）
//   - Executor / ResultExecutor：绑定一个操作与一个 Policy，执行重试循环
//
// 底层使用 [avast/retry-go/v5] 实现重试循环。
//
// # 延迟策略
//
// 内置两种延迟策略：
//   - FixedDelay：固定延迟，与重试序号无关
//   - ExponentialDelay：指数退避，delay = initial * multiplier^(retry-1)
//
// # 执行语义
//
// 对于 MaxRetries = N 的策略：
//   - 操作最多被调用 N+1 次；每次调用全部失败时恰好 N+1 次
//   - 首次尝试之前没有任何延迟；每次失败后按延迟策略等待
//   - 首个成功立即返回；预算耗尽时原样返回最后一次的失败值
//   - N = 0 表示只执行一次，结果无条件返回
//
// 执行器是一次性的：Run 只能调用一次，重复调用返回 ErrExecutorConsumed。
//
// # 使用方式
//
// 方式一：显式构造策略与执行器
//
//	policy := xretry.DefaultPolicy().
//	    WithRetries(5).
//	    WithDelay(xretry.NewExponentialDelay(100*time.Millisecond, 2))
//	exec := xretry.NewExecutor(op, policy)
//	err := exec.Run(ctx)
//
// 方式二：便捷入口（推荐用于简单场景）
//
//	err := xretry.Do(ctx, func() error {
//	    return doSomething()
//	}, xretry.Retries(3), xretry.Delay(100*time.Millisecond))
//
// 带固定参数的调用通过 Bind 系列适配为无参操作：
//
//	user, err := xretry.DoWithData(ctx, xretry.Bind1(fetchUser, userID))
//
// # 默认值
//
// 核心默认策略为 DefaultPolicy()：3 次重试，固定延迟 2s。
// 便捷入口 Do/DoWithData 在完全不传选项时使用 3 次重试、零延迟
// （立即重试）；一旦传入任何选项，未指定的部分回退到核心默认值。
// 两套默认值是有意区分的，详见 Do 的文档说明。
//
// # 失败处理
//
// xretry 不做错误分类：任何失败都被视为可重试并消耗重试预算，
// 没有把某类错误标记为立即致命的机制。操作内部的 panic 不会被拦截，
// 会中止整个会话并向上传播。
//
// [avast/retry-go/v5]: https://github.com/avast/retry-go
package xretry
