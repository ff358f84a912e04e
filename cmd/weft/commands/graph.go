package commands

import (
	"github.com/spf13/cobra"

	"go.trai.ch/weft/internal/app"
)

func (c *CLI) newGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph [dir]",
		Short: "Run the pipeline and print the task graph as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd := "."
			if len(args) == 1 {
				cwd = args[0]
			}
			return c.app.Run(cmd.Context(), cwd, app.RunOptions{DumpPath: "-"})
		},
	}
}
