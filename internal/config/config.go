package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the application configuration. Values come from defaults, an
// optional a11ypilot.yaml, and A11YPILOT_* environment variables, in
// ascending priority; CLI flags override on top of this in cmd.
type Config struct {
	LLM     LLMConfig     `mapstructure:"llm"`
	Browser BrowserConfig `mapstructure:"browser"`
	Runner  RunnerConfig  `mapstructure:"runner"`
	Log     LogConfig     `mapstructure:"log"`
}

type LLMConfig struct {
	Provider  string `mapstructure:"provider"`
	Model     string `mapstructure:"model"`
	MaxTokens int    `mapstructure:"max_tokens"`
}

type BrowserConfig struct {
	Headless   bool   `mapstructure:"headless"`
	Width      int    `mapstructure:"width"`
	Height     int    `mapstructure:"height"`
	ProfileDir string `mapstructure:"profile_dir"`
}

type RunnerConfig struct {
	StepTimeout time.Duration `mapstructure:"step_timeout"`
	MaxSteps    int           `mapstructure:"max_steps"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Load builds the configuration. A missing config file is fine; a broken
// one is not.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("llm.provider", "claude")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.max_tokens", 1024)
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.width", 1280)
	v.SetDefault("browser.height", 720)
	v.SetDefault("browser.profile_dir", "")
	v.SetDefault("runner.step_timeout", 2*time.Minute)
	v.SetDefault("runner.max_steps", 100)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetEnvPrefix("A11YPILOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("a11ypilot")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/a11ypilot")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
