package commands

import (
	"github.com/spf13/cobra"

	"go.trai.ch/weft/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	var dumpPath string

	cmd := &cobra.Command{
		Use:   "run [dir]",
		Short: "Run the pipeline declared in weft.yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd := "."
			if len(args) == 1 {
				cwd = args[0]
			}
			return c.app.Run(cmd.Context(), cwd, app.RunOptions{DumpPath: dumpPath})
		},
	}

	cmd.Flags().StringVar(&dumpPath, "dump", "", "Write the task-graph JSON to this path after the run")

	return cmd
}
