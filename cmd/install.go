package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"optiscalerctl/internal/config"
	"optiscalerctl/internal/optiscaler"
	"optiscalerctl/internal/steam"
)

var (
	installArchive string
	installExeDir  int
	installFSR4DLL string
)

func init() {
	installCmd.Flags().StringVar(&installArchive, "archive", "", "Use a local OptiScaler archive instead of downloading")
	installCmd.Flags().IntVar(&installExeDir, "exe-dir", 0, "Index of the executable directory to install into (see the listed candidates)")
	installCmd.Flags().StringVar(&installFSR4DLL, "fsr4-dll", "", "Copy this amdxcffx64.dll into the game's Proton prefix")
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install <appid>",
	Short: "Install OptiScaler into a game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appID := args[0]

		root, err := steamRoot()
		if err != nil {
			return err
		}
		game, err := findGame(root, appID)
		if err != nil {
			return err
		}
		fmt.Printf("Installing OptiScaler into %s (%s)\n", color.New(color.Bold).Sprint(game.Name), game.AppID)

		locs := optiscaler.FindExecutableDirs(game.Path)
		if len(locs) == 0 {
			return fmt.Errorf("no game executables found under %s", game.Path)
		}
		if installExeDir < 0 || installExeDir >= len(locs) {
			for i, loc := range locs {
				fmt.Printf("  [%d] %s (%s)\n", i, loc.Dir, loc.ExeName)
			}
			return fmt.Errorf("--exe-dir must be between 0 and %d", len(locs)-1)
		}
		target := locs[installExeDir]
		if len(locs) > 1 {
			fmt.Printf("Target: %s (%s); %d other candidates, pick with --exe-dir\n",
				target.Dir, target.ExeName, len(locs)-1)
		}

		archive := installArchive
		if archive == "" {
			client := optiscaler.NewClient(cfg.GitHubAPI)
			fmt.Println("Downloading latest OptiScaler nightly...")
			tmp, err := os.MkdirTemp("", "optiscaler-")
			if err != nil {
				return err
			}
			defer os.RemoveAll(tmp)
			archive, err = client.DownloadNightly(cmd.Context(), tmp)
			if err != nil {
				return fmt.Errorf("downloading OptiScaler: %w", err)
			}
		}

		st := installStore()
		if err := os.MkdirAll(config.Dir(), 0o755); err != nil {
			return err
		}
		inst, err := optiscaler.Install(st, appID, game.Name, target.Dir, archive)
		if err != nil {
			return fmt.Errorf("installing into %s: %w", target.Dir, err)
		}
		color.Green("Installed OptiScaler into %s", inst.InstallPath)
		if len(inst.BackupFiles) > 0 {
			fmt.Printf("  backed up %d original DLLs\n", len(inst.BackupFiles))
		}

		dll := installFSR4DLL
		if dll == "" {
			dll = cfg.FSR4DLL
		}
		if dll != "" {
			compat, ok := steam.CompatdataPath(root, appID)
			if !ok {
				color.Yellow("No Proton prefix for app %s yet; run the game once and re-run with --fsr4-dll", appID)
			} else if err := optiscaler.CopyFSR4DLL(dll, compat); err != nil {
				color.Yellow("FSR4 DLL copy failed: %v", err)
			} else {
				inst.FSR4DLLCopied = true
				if err := st.Update(*inst); err != nil {
					return err
				}
				fmt.Println("  copied FSR4 DLL into the Proton prefix")
			}
		}

		fmt.Println("\nNext: set launch options, e.g.")
		fmt.Printf("  optiscalerctl apply %s --preset basic\n", appID)
		return nil
	},
}

// findGame resolves an app id against the installed games.
func findGame(root, appID string) (steam.Game, error) {
	if _, err := strconv.Atoi(appID); err != nil {
		return steam.Game{}, fmt.Errorf("invalid app id %q", appID)
	}
	for _, g := range steam.Games(root) {
		if g.AppID == appID {
			return g, nil
		}
	}
	return steam.Game{}, fmt.Errorf("app %s is not installed (see 'games')", appID)
}
