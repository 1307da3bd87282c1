package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/halcyonpartners/backdrop/internal/config"
	"github.com/halcyonpartners/backdrop/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:           "backdrop",
	Short:         "Animated background effects",
	SilenceUsage:  true,
	SilenceErrors: false,
}

var (
	verbose    bool
	configPath string
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "settings file (default ~/.config/backdrop/settings.json)")
}

func Execute() error {
	return rootCmd.Execute()
}

// setup builds the logger and loads settings for a command.
func setup() (*zap.Logger, *config.Settings, string, error) {
	log, err := logging.New(verbose)
	if err != nil {
		return nil, nil, "", err
	}

	path := configPath
	if path == "" {
		if path, err = config.SettingsPath(); err != nil {
			return nil, nil, "", fmt.Errorf("settings path: %w", err)
		}
	}
	settings, err := config.Load(path, log)
	if err != nil {
		return nil, nil, "", fmt.Errorf("load settings: %w", err)
	}
	return log, settings, path, nil
}
