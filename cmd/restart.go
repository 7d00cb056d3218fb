package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"optiscalerctl/internal/steam"
)

func init() {
	rootCmd.AddCommand(restartCmd)
}

var restartCmd = &cobra.Command{
	Use:   "restart-steam",
	Short: "Restart Steam so it reloads its configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !steam.IsRunning() {
			fmt.Println("Steam is not running; starting it.")
		}
		if err := steam.Restart(); err != nil {
			return fmt.Errorf("restarting steam: %w", err)
		}
		fmt.Println("Steam restarted.")
		return nil
	},
}
