// Package xtimeit 提供简单的墙钟计时工具。
//
// 测量一次调用的耗时，并可选地以结构化日志输出。
// 常与 xretry 搭配记录整个重试会话的耗时。
//
//	elapsed := xtimeit.Measure(func() { doWork() })
//
//	elapsed, err := xtimeit.MeasureErr(func() error { return sync() })
//
//	defer xtimeit.LogElapsed(logger, "sync-catalog")()
package xtimeit

import (
	"log/slog"
	"time"
)

// Measure 执行 fn 并返回耗时
func Measure(fn func()) time.Duration {
	start := time.Now()
	fn()
	return time.Since(start)
}

// MeasureErr 执行可失败的 fn，返回耗时与 fn 的错误
func MeasureErr(fn func() error) (time.Duration, error) {
	start := time.Now()
	err := fn()
	return time.Since(start), err
}

// MeasureData 执行带返回值的 fn，返回结果、耗时与 fn 的错误
func MeasureData[T any](fn func() (T, error)) (T, time.Duration, error) {
	start := time.Now()
	v, err := fn()
	return v, time.Since(start), err
}

// LogElapsed 返回一个记录耗时的函数，适合 defer 调用：
//
//	defer xtimeit.LogElapsed(logger, "load-users")()
//
// logger 为 nil 时使用 slog.Default()
func LogElapsed(logger *slog.Logger, name string) func() {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()
	return func() {
		logger.Info("elapsed",
			slog.String("operation", name),
			slog.Duration("duration", time.Since(start)),
		)
	}
}
