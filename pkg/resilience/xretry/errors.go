package xretry

import "errors"

// 执行器相关错误。
var (
	// ErrNilExecutor 表示执行器接收者为 nil。
	ErrNilExecutor = errors.New("xretry: nil executor")

	// ErrNilOperation 表示执行器绑定的操作为 nil。
	ErrNilOperation = errors.New("xretry: nil operation")

	// ErrNilContext 表示传入的 context 为 nil。
	ErrNilContext = errors.New("xretry: nil context")

	// ErrExecutorConsumed 表示执行器已被消费（Run 只能调用一次）。
	ErrExecutorConsumed = errors.New("xretry: executor already consumed")
)

// 策略配置相关错误。
var (
	// ErrEmptyPath 表示策略配置文件路径为空。
	ErrEmptyPath = errors.New("xretry: empty config path")

	// ErrUnsupportedFormat 表示不支持的配置格式。
	ErrUnsupportedFormat = errors.New("xretry: unsupported config format")

	// ErrLoadFailed 表示策略配置加载失败。
	ErrLoadFailed = errors.New("xretry: failed to load policy config")

	// ErrParseFailed 表示策略配置解析失败。
	ErrParseFailed = errors.New("xretry: failed to parse policy config")

	// ErrUnmarshalFailed 表示策略配置反序列化失败。
	ErrUnmarshalFailed = errors.New("xretry: failed to unmarshal policy config")
)
