package main

import (
	"fmt"
	"os"
	"time"

	"gin-shopcart/client"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string
	serverURL  string
	timeout    time.Duration

	cfg    *cliConfig
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "shopctl",
	Short: "Admin client for the shop API",
	Long: `shopctl manages the shop catalog, item details and your cart from the terminal.

Log in once with "shopctl login"; the session token is kept in ~/.shopctl.yaml.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = loadConfig(configPath)
		if err != nil {
			return err
		}
		if serverURL != "" {
			cfg.Server = serverURL
		}
		logger.Debug("Loaded config", zap.String("path", configPath), zap.String("server", cfg.Server))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func newClient() *client.Client {
	return client.New(cfg.Server, client.WithToken(cfg.Token))
}

func persistSession(username, token string) error {
	cfg.Username = username
	cfg.Token = token
	return saveConfig(configPath, cfg)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath(), "Config file")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "API base URL (overrides the config file)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 15*time.Second, "Request timeout")

	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd)
	rootCmd.AddCommand(itemsCmd, detailsCmd, cartCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
