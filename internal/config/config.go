package config

import (
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/viper"
)

// Config はアプリケーション全体の設定
type Config struct {
	GitHub GitHubConfig `mapstructure:"github"`
	Log    LogConfig    `mapstructure:"log"`
}

// GitHubConfig はGitHub API関連の設定
type GitHubConfig struct {
	Token   string `mapstructure:"token"`
	BaseURL string `mapstructure:"base_url"`
}

// LogConfig はログ出力の設定
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// NewConfig は新しいConfigを作成する
func NewConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			BaseURL: "https://api.github.com/",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load は設定ファイルから設定を読み込む
func (c *Config) Load(configPath string) error {
	v := viper.New()

	v.SetConfigFile(configPath)

	// 環境変数の設定
	v.SetEnvPrefix("KENSAKU")
	v.AutomaticEnv()

	// GITHUB_TOKENもサポート
	v.BindEnv("github.token", "GITHUB_TOKEN", "KENSAKU_GITHUB_TOKEN")

	// デフォルト値の設定
	v.SetDefault("github.base_url", "https://api.github.com/")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	if err := v.Unmarshal(c); err != nil {
		return err
	}

	return nil
}

// LoadOrDefault は設定ファイルを読み込み、失敗した場合はデフォルト値を使用する
func (c *Config) LoadOrDefault(configPath string) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return
	}

	_ = c.Load(configPath)
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	if c.GitHub.BaseURL == "" {
		return fmt.Errorf("github.base_url is required")
	}
	u, err := url.Parse(c.GitHub.BaseURL)
	if err != nil {
		return fmt.Errorf("github.base_url is invalid: %w", err)
	}
	if !u.IsAbs() {
		return fmt.Errorf("github.base_url must be an absolute URL: %s", c.GitHub.BaseURL)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level is invalid: %s", c.Log.Level)
	}

	return nil
}
