package xretry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Format 策略配置格式
type Format string

// 支持的配置格式
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// BackoffConfig 指数退避配置段
type BackoffConfig struct {
	// InitialDelay 首次重试延迟
	InitialDelay time.Duration `koanf:"initial_delay"`

	// Multiplier 乘数因子（>= 1.0）
	Multiplier float64 `koanf:"multiplier"`
}

// PolicyConfig 重试策略配置
//
// 缺省字段保持核心默认值（retries=3, delay=2s）。
// backoff 段存在时优先于 delay，使用指数退避。
//
// YAML 示例:
//
//	retries: 5
//	delay: 500ms
//
//	retries: 5
//	backoff:
//	  initial_delay: 100ms
//	  multiplier: 2.0
type PolicyConfig struct {
	// Retries 最大重试次数（不含首次尝试）
	Retries int `koanf:"retries"`

	// Delay 固定延迟
	Delay time.Duration `koanf:"delay"`

	// Backoff 指数退避配置，存在时覆盖 Delay
	Backoff *BackoffConfig `koanf:"backoff"`
}

// defaultPolicyConfig 返回带核心默认值的配置
func defaultPolicyConfig() PolicyConfig {
	return PolicyConfig{
		Retries: DefaultMaxRetries,
		Delay:   DefaultFixedDelay,
	}
}

// Policy 将配置折算为 Policy
func (c PolicyConfig) Policy() Policy {
	if c.Backoff != nil {
		return NewPolicy(c.Retries, NewExponentialDelay(c.Backoff.InitialDelay, c.Backoff.Multiplier))
	}
	return NewPolicy(c.Retries, NewFixedDelay(c.Delay))
}

// LoadPolicy 从配置文件加载重试策略
// 根据文件扩展名自动检测格式（.yaml/.yml 或 .json）
func LoadPolicy(path string) (Policy, error) {
	if path == "" {
		return Policy{}, ErrEmptyPath
	}

	format, err := detectFormat(path)
	if err != nil {
		return Policy{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	return LoadPolicyFromBytes(data, format)
}

// LoadPolicyFromBytes 从字节数据加载重试策略
// 需要显式指定格式，适用于内嵌配置或 K8s ConfigMap 等场景。
// 空数据返回默认策略，缺省字段保持核心默认值。
func LoadPolicyFromBytes(data []byte, format Format) (Policy, error) {
	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = yaml.Parser()
	case FormatJSON:
		parser = json.Parser()
	default:
		return Policy{}, ErrUnsupportedFormat
	}

	cfg := defaultPolicyConfig()
	if len(data) == 0 {
		return cfg.Policy(), nil
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return Policy{}, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Policy{}, fmt.Errorf("%w: %w", ErrUnmarshalFailed, err)
	}

	return cfg.Policy(), nil
}

// detectFormat 根据文件扩展名检测配置格式
func detectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown extension %s", ErrUnsupportedFormat, ext)
	}
}
