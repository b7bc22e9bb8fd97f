package cmd

import (
	"fmt"
	"os"

	"github.com/douhashi/kensaku/internal/config"
	"github.com/douhashi/kensaku/internal/logger"
	"github.com/douhashi/kensaku/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	verbose   bool
	rootCmd   *cobra.Command
	appLog    logger.Logger
	appConfig *config.Config
)

func init() {
	rootCmd = NewRootCmd()
}

// NewRootCmd creates a new root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := newRootCmd()
	// サブコマンドを追加
	cmd.AddCommand(newSearchCmd())
	return cmd
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kensaku",
		Short: "GitHubリポジトリ検索ツール",
		Long: `kensakuは、GitHubのリポジトリ検索APIを利用して
リポジトリを検索するCLIツールです。`,
		Version: version.Get().String(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// 設定ファイルを先に読み込む
			if err := initConfig(); err != nil {
				return fmt.Errorf("failed to initialize config: %w", err)
			}

			// ロガーの初期化
			if verbose {
				os.Setenv("DEBUG", "true")
			}
			var err error
			appLog, err = logger.NewFromEnv()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "設定ファイルのパス")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "詳細出力")

	viper.BindPFlag("config", cmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))

	return cmd
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig() error {
	appConfig = config.NewConfig()

	if cfgFile != "" {
		if _, err := os.Stat(cfgFile); err != nil {
			if os.IsNotExist(err) {
				// 設定ファイルが見つからない場合はデフォルト値を使用
				return nil
			}
			return fmt.Errorf("failed to access config file: %w", err)
		}
		if err := appConfig.Load(cfgFile); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		appConfig.LoadOrDefault(home + "/.config/kensaku/kensaku.yml")
	}

	// GITHUB_TOKENは設定ファイルがなくても拾う
	if appConfig.GitHub.Token == "" {
		appConfig.GitHub.Token = os.Getenv("GITHUB_TOKEN")
	}

	return appConfig.Validate()
}
