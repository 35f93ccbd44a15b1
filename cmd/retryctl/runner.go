package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/urfave/cli/v3"

	"github.com/omeyang/retrykit/pkg/observability/xtimeit"
	"github.com/omeyang/retrykit/pkg/resilience/xretry"
)

// policyInput 来自命令行与配置文件的策略输入。
type policyInput struct {
	configPath        string
	retries           int
	retriesSet        bool
	delay             time.Duration
	delaySet          bool
	backoffInitial    time.Duration
	backoffInitialSet bool
	backoffMultiplier float64
}

// resolvePolicy 将输入折算为重试策略。
// 优先级：命令行选项 > 配置文件 > 核心默认值。
func resolvePolicy(in policyInput) (xretry.Policy, error) {
	if in.delaySet && in.backoffInitialSet {
		return xretry.Policy{}, &usageError{msg: "--delay 与 --backoff-initial 互斥"}
	}

	policy := xretry.DefaultPolicy()
	if in.configPath != "" {
		loaded, err := xretry.LoadPolicy(in.configPath)
		if err != nil {
			return xretry.Policy{}, err
		}
		policy = loaded
	}

	if in.retriesSet {
		policy = policy.WithRetries(in.retries)
	}
	switch {
	case in.backoffInitialSet:
		policy = policy.WithDelay(xretry.NewExponentialDelay(in.backoffInitial, in.backoffMultiplier))
	case in.delaySet:
		policy = policy.WithDelay(xretry.NewFixedDelay(in.delay))
	}

	return policy, nil
}

// runCommand 是 retryctl 的主入口 Action。
func runCommand(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		return &usageError{msg: "缺少要执行的命令，用法: retryctl [选项] -- <命令> [参数...]"}
	}

	policy, err := resolvePolicy(policyInput{
		configPath:        cmd.String("config"),
		retries:           cmd.Int("retries"),
		retriesSet:        cmd.IsSet("retries"),
		delay:             cmd.Duration("delay"),
		delaySet:          cmd.IsSet("delay"),
		backoffInitial:    cmd.Duration("backoff-initial"),
		backoffInitialSet: cmd.IsSet("backoff-initial"),
		backoffMultiplier: cmd.Float("backoff-multiplier"),
	})
	if err != nil {
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			return err
		}
		return &exitError{code: 1, err: err}
	}

	logger := newLogger(cmd.String("log-level"), cmd.Bool("quiet"))
	name := filepath.Base(args[0])

	// 子进程继承标准流，重试日志只走 stderr
	op := func(ctx context.Context) error {
		c := exec.CommandContext(ctx, args[0], args[1:]...)
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		return c.Run()
	}

	executor := xretry.NewExecutor(op, policy,
		xretry.WithName(name),
		xretry.WithLogger(logger),
	)

	elapsed, err := xtimeit.MeasureErr(func() error {
		return executor.Run(ctx)
	})
	if err != nil {
		logger.Error("command failed",
			slog.String("operation", name),
			slog.Int("max_retries", policy.MaxRetries()),
			slog.Duration("duration", elapsed),
			slog.Any("error", err),
		)
		return &exitError{code: 1, err: err}
	}

	logger.Info("command succeeded",
		slog.String("operation", name),
		slog.Duration("duration", elapsed),
	)
	return nil
}

// newLogger 创建 tint 控制台日志器。
// quiet 时只保留 Error 级别，保证命令自身的输出不被干扰。
func newLogger(level string, quiet bool) *slog.Logger {
	lvl := levelFromString(level)
	if quiet {
		lvl = slog.LevelError
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      lvl,
		TimeFormat: time.Kitchen,
	}))
}

func levelFromString(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
