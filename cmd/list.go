package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/sjv/internal/domain"
)

const listLongDescription = `List the s-Java sources selected by the given paths together with the
number of logical lines, methods and conditional blocks of each, and the
deepest block nesting. Sources are partitioned into blocks but not checked.`

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List sources and the shape of their blocks",
		Long:  listLongDescription,
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.List(domain.ListArgs{SourceArgs: sourceArgs(args)})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
