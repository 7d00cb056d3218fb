package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"optiscalerctl/internal/catalog"
)

var (
	presetRDNA3      bool
	presetNoMangoHUD bool
)

func init() {
	presetsCmd.Flags().BoolVar(&presetRDNA3, "rdna3", false, "Include RDNA3 workaround variants")
	presetsCmd.Flags().BoolVar(&presetNoMangoHUD, "no-mangohud", false, "Hide MangoHUD overlay variants")
	rootCmd.AddCommand(presetsCmd)
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Show the launch option presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := catalog.Options{
			RDNA3Workaround: presetRDNA3,
			IncludeMangoHUD: !presetNoMangoHUD,
		}
		bold := color.New(color.Bold)
		for _, p := range catalog.Presets(opts) {
			fmt.Printf("%s (%s)\n", bold.Sprint(p.Key), p.Name)
			fmt.Printf("    %s\n", p.Description)
			fmt.Printf("    %s\n", color.CyanString(p.Command))
			fmt.Printf("    Compatibility: %s\n\n", p.Compatibility)
		}
		return nil
	},
}
