// Package cmd implements the optiscalerctl command line interface.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"optiscalerctl/internal/config"
	"optiscalerctl/internal/steam"
)

var (
	cfg       config.Config
	steamPath string
)

var rootCmd = &cobra.Command{
	Use:   "optiscalerctl",
	Short: "Install OptiScaler and manage Steam launch options",
	Long: `optiscalerctl installs the OptiScaler mod into Steam games running
under Proton and edits launch options surgically, touching only the
bytes of the target field inside Steam's localconfig.vdf.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if steamPath != "" {
			cfg.SteamPath = steamPath
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&steamPath, "steam-path", "", "Steam root directory (overrides autodetection)")
}

// steamRoot resolves the Steam root from the flag, config, or probing.
func steamRoot() (string, error) {
	if cfg.SteamPath != "" {
		if _, err := os.Stat(cfg.SteamPath); err != nil {
			return "", fmt.Errorf("steam path %s: %w", cfg.SteamPath, err)
		}
		return cfg.SteamPath, nil
	}
	root, err := steam.FindRoot()
	if err != nil {
		return "", fmt.Errorf("locating steam: %w (try --steam-path)", err)
	}
	return root, nil
}

// installLogPath is where completed installs are recorded for uninstall.
func installLogPath() string {
	return filepath.Join(config.Dir(), "installations.json")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}
