package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"optiscalerctl/internal/optiscaler"
	"optiscalerctl/internal/steam"
)

var uninstallKeepDLL bool

func init() {
	uninstallCmd.Flags().BoolVar(&uninstallKeepDLL, "keep-fsr4-dll", false, "Leave amdxcffx64.dll in the Proton prefix")
	rootCmd.AddCommand(uninstallCmd)
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <appid>",
	Short: "Remove OptiScaler from a game and restore its original files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appID := args[0]

		st := installStore()
		inst, ok, err := st.FindByApp(appID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no recorded OptiScaler install for app %s", appID)
		}

		if err := optiscaler.Uninstall(st, inst); err != nil {
			return fmt.Errorf("uninstalling from %s: %w", inst.InstallPath, err)
		}
		color.Green("Removed OptiScaler from %s (%s)", inst.GameName, inst.InstallPath)
		if len(inst.BackupFiles) > 0 {
			fmt.Printf("  restored %d original DLLs\n", len(inst.BackupFiles))
		}

		if inst.FSR4DLLCopied && !uninstallKeepDLL {
			root, err := steamRoot()
			if err != nil {
				return err
			}
			if compat, found := steam.CompatdataPath(root, appID); found {
				if err := optiscaler.RemoveFSR4DLL(compat); err != nil {
					color.Yellow("FSR4 DLL removal failed: %v", err)
				} else {
					fmt.Println("  removed FSR4 DLL from the Proton prefix")
				}
			}
		}
		return nil
	},
}
