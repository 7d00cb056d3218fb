package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"optiscalerctl/internal/catalog"
	"optiscalerctl/internal/commit"
	"optiscalerctl/internal/steam"
)

var (
	applyPreset      string
	applyCommand     string
	applyRDNA3       bool
	applyNoReload    bool
	applyFixedBackup bool
)

func init() {
	applyCmd.Flags().StringVar(&applyPreset, "preset", "", "Preset key (see 'presets')")
	applyCmd.Flags().StringVar(&applyCommand, "command", "", "Raw launch command to set")
	applyCmd.Flags().BoolVar(&applyRDNA3, "rdna3", false, "Allow RDNA3 workaround presets")
	applyCmd.Flags().BoolVar(&applyNoReload, "no-reload", false, "Skip notifying a running Steam")
	applyCmd.Flags().BoolVar(&applyFixedBackup, "fixed-backup", false, "Use a fixed .backup name instead of timestamped backups")
	rootCmd.AddCommand(applyCmd)
}

var applyCmd = &cobra.Command{
	Use:   "apply <appid>",
	Short: "Set a game's Steam launch options",
	Long: `apply edits the game's LaunchOptions field inside the active user's
localconfig.vdf. Only the bytes of that one field change; the rest of
the file, including Steam's own formatting, is preserved. Steam should
not be running, or it will overwrite the edit on exit.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appID := args[0]

		command := applyCommand
		if applyPreset != "" {
			if command != "" {
				return fmt.Errorf("--preset and --command are mutually exclusive")
			}
			p, ok := catalog.Find(applyPreset, catalog.Options{
				RDNA3Workaround: applyRDNA3,
				IncludeMangoHUD: true,
			})
			if !ok {
				return fmt.Errorf("unknown preset %q (see 'presets')", applyPreset)
			}
			command = p.Command
		}
		if command == "" {
			return fmt.Errorf("one of --preset or --command is required")
		}

		root, err := steamRoot()
		if err != nil {
			return err
		}
		if steam.IsRunning() {
			color.Yellow("Steam is running; it may overwrite this change when it exits.")
		}

		opts := commit.Options{TimestampBackup: cfg.TimestampBackups && !applyFixedBackup}
		res, cfgPath, err := steam.ApplyLaunchOptions(root, appID, command, opts)
		if err != nil {
			if res != nil && res.BackupPath != "" {
				color.Yellow("Backup available at %s", res.BackupPath)
			}
			return err
		}

		if res.Inserted {
			fmt.Printf("Added launch options for app %s\n", appID)
		} else {
			fmt.Printf("Replaced launch options for app %s\n", appID)
		}
		fmt.Printf("  file:    %s\n", cfgPath)
		fmt.Printf("  command: %s\n", color.CyanString(command))
		if res.BackupPath != "" {
			fmt.Printf("  backup:  %s\n", res.BackupPath)
		} else if res.BackupErr != nil {
			color.Yellow("  backup failed: %v", res.BackupErr)
		}

		if !applyNoReload {
			st := steam.NotifyReload(cfgPath)
			if st.Touched || len(st.Signaled) > 0 {
				fmt.Printf("  notified steam (touched=%v, signaled=%d)\n", st.Touched, len(st.Signaled))
			} else {
				fmt.Println("  steam not notified; restart it to pick up the change")
			}
		}
		return nil
	},
}
