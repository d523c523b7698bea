package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/CodMac/go-treesitter-name-extractor/intt"
	"github.com/CodMac/go-treesitter-name-extractor/model"
)

// ErrInvalidConfig 配置取值非法
var ErrInvalidConfig = errors.New("invalid config")

const (
	FormatJSONL   = "jsonl"
	FormatNames   = "names"
	FormatMermaid = "mermaid"
)

type Config struct {
	Language    string          `mapstructure:"language"`
	Strategy    string          `mapstructure:"strategy"`
	Workers     int             `mapstructure:"workers"`
	Include     []string        `mapstructure:"include"`
	Exclude     []string        `mapstructure:"exclude"`
	FilterNoise bool            `mapstructure:"filter_noise"`
	Tokeniser   TokeniserConfig `mapstructure:"tokeniser"`
	Output      OutputConfig    `mapstructure:"output"`
	Log         LogConfig       `mapstructure:"log"`
}

type TokeniserConfig struct {
	CacheSize int    `mapstructure:"cache_size"`
	WordLists string `mapstructure:"word_lists"` // 词表 manifest 路径，为空时只用内置词表
}

type OutputConfig struct {
	Format string `mapstructure:"format"`
	Path   string `mapstructure:"path"` // 为空时写到标准输出
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Language: string(model.LangJava),
		Strategy: string(model.StrategyAggressive),
		Workers:  runtime.NumCPU(),
		Include:  []string{"**/*.java"},
		Exclude:  []string{},
		Tokeniser: TokeniserConfig{
			CacheSize: intt.DefaultCacheSize,
		},
		Output: OutputConfig{
			Format: FormatJSONL,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load 依次叠加默认值、配置文件和 JIM_ 前缀的环境变量
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	cfg := Default()
	v.SetDefault("language", cfg.Language)
	v.SetDefault("strategy", cfg.Strategy)
	v.SetDefault("workers", cfg.Workers)
	v.SetDefault("include", cfg.Include)
	v.SetDefault("exclude", cfg.Exclude)
	v.SetDefault("filter_noise", cfg.FilterNoise)
	v.SetDefault("tokeniser.cache_size", cfg.Tokeniser.CacheSize)
	v.SetDefault("tokeniser.word_lists", cfg.Tokeniser.WordLists)
	v.SetDefault("output.format", cfg.Output.Format)
	v.SetDefault("output.path", cfg.Output.Path)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.json", cfg.Log.JSON)

	v.SetEnvPrefix("JIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("jim")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Validate 检查取值并返回解析后的语言和切分策略
func (c *Config) Validate() (model.Language, model.Strategy, error) {
	lang := model.Language(strings.ToLower(strings.TrimSpace(c.Language)))
	if lang.Extension() == "" {
		return "", "", fmt.Errorf("%w: language %q: %w", ErrInvalidConfig, c.Language, model.ErrUnsupportedLanguage)
	}

	strategy, err := model.ParseStrategy(c.Strategy)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	switch c.Output.Format {
	case FormatJSONL, FormatNames:
	case FormatMermaid:
		if c.Output.Path == "" {
			return "", "", fmt.Errorf("%w: mermaid output needs output.path", ErrInvalidConfig)
		}
	default:
		return "", "", fmt.Errorf("%w: unknown output format %q", ErrInvalidConfig, c.Output.Format)
	}

	if c.Tokeniser.CacheSize < 0 {
		return "", "", fmt.Errorf("%w: tokeniser.cache_size must not be negative", ErrInvalidConfig)
	}

	return lang, strategy, nil
}
