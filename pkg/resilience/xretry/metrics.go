package xretry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// 指标名称常量
const (
	// metricNameAttemptsTotal 尝试总数计数器
	metricNameAttemptsTotal = "xretry.attempts.total"
	// metricNameRetriesTotal 重试总数计数器（不含首次尝试）
	metricNameRetriesTotal = "xretry.retries.total"
	// metricNameExhaustedTotal 预算耗尽的会话计数器
	metricNameExhaustedTotal = "xretry.exhausted.total"
	// metricNameSessionDuration 重试会话耗时直方图
	metricNameSessionDuration = "xretry.session.duration"
)

// Metrics 重试指标收集器
// 提供 Counter 和 Histogram 类型的指标收集
type Metrics struct {
	meter           metric.Meter
	attemptsTotal   metric.Int64Counter
	retriesTotal    metric.Int64Counter
	exhaustedTotal  metric.Int64Counter
	sessionDuration metric.Float64Histogram
}

// NewMetrics 创建指标收集器
// 如果 meterProvider 为 nil，返回 nil（不收集指标）
func NewMetrics(meterProvider metric.MeterProvider) (*Metrics, error) {
	if meterProvider == nil {
		return nil, nil
	}

	meter := meterProvider.Meter("xretry",
		metric.WithInstrumentationVersion("1.0.0"),
	)

	attemptsTotal, err := meter.Int64Counter(
		metricNameAttemptsTotal,
		metric.WithDescription("操作尝试总数（含首次尝试）"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, err
	}

	retriesTotal, err := meter.Int64Counter(
		metricNameRetriesTotal,
		metric.WithDescription("重试总数（不含首次尝试）"),
		metric.WithUnit("{retry}"),
	)
	if err != nil {
		return nil, err
	}

	exhaustedTotal, err := meter.Int64Counter(
		metricNameExhaustedTotal,
		metric.WithDescription("重试预算耗尽的会话数"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, err
	}

	sessionDuration, err := meter.Float64Histogram(
		metricNameSessionDuration,
		metric.WithDescription("重试会话总耗时"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0, 30.0, 60.0,
		),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		meter:           meter,
		attemptsTotal:   attemptsTotal,
		retriesTotal:    retriesTotal,
		exhaustedTotal:  exhaustedTotal,
		sessionDuration: sessionDuration,
	}, nil
}

// RecordSession 记录一次重试会话的终态
// operation: 操作名称
// attempts: 实际执行的尝试次数
// elapsed: 会话总耗时
// err: 终态错误（nil 表示成功）
func (m *Metrics) RecordSession(ctx context.Context, operation string, attempts int, elapsed time.Duration, err error) {
	if m == nil {
		return
	}

	// 使用 context.WithoutCancel 确保即使 ctx 被取消，指标仍能记录
	metricsCtx := context.WithoutCancel(ctx)

	attrs := []attribute.KeyValue{
		attribute.String("operation", operation),
		attribute.Bool("success", err == nil),
	}

	m.attemptsTotal.Add(metricsCtx, int64(attempts), metric.WithAttributes(attrs...))
	if retries := attempts - 1; retries > 0 {
		m.retriesTotal.Add(metricsCtx, int64(retries), metric.WithAttributes(attrs...))
	}
	if err != nil {
		m.exhaustedTotal.Add(metricsCtx, 1, metric.WithAttributes(attrs...))
	}
	m.sessionDuration.Record(metricsCtx, elapsed.Seconds(), metric.WithAttributes(attrs...))
}
