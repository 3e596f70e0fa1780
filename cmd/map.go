package cmd

import (
	"sparsemv/internal/app"
	"sparsemv/internal/mover"

	"github.com/spf13/cobra"
)

// mapCmd represents the map command
var mapCmd = &cobra.Command{
	Use:   "map FILE",
	Short: "Show the data and hole regions of a file",
	Long: `Show the data and hole regions of a file along with the storage backing it.

Use it before and after a move to check which ranges were punched out of
the input and which ranges the output holds.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(1)(cmd, args); err != nil {
			return mover.ConfigError("arguments", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		_, consoleUI := createServices()
		return app.NewMapApp(consoleUI).Run(args[0])
	},
}

func init() {
	rootCmd.AddCommand(mapCmd)
}
