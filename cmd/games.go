package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"optiscalerctl/internal/optiscaler"
	"optiscalerctl/internal/steam"
)

func init() {
	rootCmd.AddCommand(gamesCmd)
}

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List installed Steam games",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := steamRoot()
		if err != nil {
			return err
		}
		games := steam.Games(root)
		if len(games) == 0 {
			fmt.Println("No installed games found.")
			return nil
		}

		st := installStore()
		installed := map[string]bool{}
		if installs, err := st.Load(); err == nil {
			for _, inst := range installs {
				installed[inst.AppID] = true
			}
		}

		bold := color.New(color.Bold)
		for _, g := range games {
			marker := "   "
			if installed[g.AppID] {
				marker = color.GreenString(" * ")
			}
			fmt.Printf("%s%-8s %s\n", marker, g.AppID, bold.Sprint(g.Name))
		}
		fmt.Printf("\n%d games", len(games))
		if len(installed) > 0 {
			fmt.Printf(", %s = OptiScaler installed", color.GreenString("*"))
		}
		fmt.Println()
		return nil
	},
}

func installStore() *optiscaler.Store {
	return &optiscaler.Store{Path: installLogPath()}
}
