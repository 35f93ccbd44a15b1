// retryctl 在重试策略下执行外部命令。
//
// 用法:
//
//	retryctl [选项] -- <命令> [参数...]
//
// 选项:
//
//	-r, --retries             最大重试次数，不含首次执行 (默认: 3)
//	-d, --delay               重试固定延迟 (默认: 2s)
//	    --backoff-initial     指数退避首次延迟，与 --delay 互斥
//	    --backoff-multiplier  指数退避乘数 (>= 1.0, 默认: 2.0)
//	-c, --config              策略配置文件 (YAML/JSON)，命令行选项优先
//	    --log-level           日志级别 (debug/info/warn/error, 默认: info)
//	-q, --quiet               只保留错误日志，不干扰命令自身的输出
//
// 退出码:
//
//	0: 命令最终执行成功
//	1: 重试预算耗尽后仍然失败（或策略配置加载失败）
//	2: 参数错误（缺少命令、互斥选项、未知 flag 等）
//
// 示例:
//
//	retryctl -- curl -fsS https://example.com/health
//	retryctl -r 5 -d 500ms -- pg_isready -h db
//	retryctl --backoff-initial 100ms --backoff-multiplier 2 -- flaky-job
//	retryctl -c policy.yaml -- make deploy
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:      "retryctl",
		Usage:     "在重试策略下执行外部命令",
		UsageText: "retryctl [选项] -- <命令> [参数...]",
		Version:   fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "retries",
				Aliases: []string{"r"},
				Usage:   "最大重试次数（不含首次执行）",
				Value:   3,
			},
			&cli.DurationFlag{
				Name:    "delay",
				Aliases: []string{"d"},
				Usage:   "重试固定延迟",
			},
			&cli.DurationFlag{
				Name:  "backoff-initial",
				Usage: "指数退避首次延迟（与 --delay 互斥）",
			},
			&cli.FloatFlag{
				Name:  "backoff-multiplier",
				Usage: "指数退避乘数（>= 1.0）",
				Value: 2.0,
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "策略配置文件（YAML/JSON），命令行选项优先",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "日志级别 (debug/info/warn/error)",
				Value: "info",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "只保留错误日志",
			},
		},
		Action: runCommand,
		// 设计决策: 禁止 urfave/cli 直接调用 os.Exit，
		// 由 run() 统一处理退出码映射，确保与文档退出码契约一致。
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(os.Stderr, err)
			}
		},
	}
}

func run() int {
	app := createApp()

	if err := app.Run(context.Background(), os.Args); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		// 剩余错误来自 CLI 解析（未知 flag 等），按参数错误处理
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		return 2
	}

	return 0
}

// exitError 携带进程退出码的错误。
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit code %d", e.code)
}

func (e *exitError) Unwrap() error {
	return e.err
}

// usageError 参数错误（退出码 2）。
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}
