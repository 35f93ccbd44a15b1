// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xtimeit: 墙钟计时工具，测量调用耗时并可结构化日志输出
//
// 设计原则：
//   - 指标遵循 OpenTelemetry 语义规范
//   - 日志基于 log/slog，调用方自带 Logger
package observability
