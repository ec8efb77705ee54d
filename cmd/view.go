package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/sjv/internal/domain"
	m "github.com/mouse-blink/sjv/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View previously stored verification reports",
		Long:  "View the verification reports stored in the reports directory (see --output).",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			return workflow.View(domain.ViewArgs{Reports: m.Path(config.Reports)})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
