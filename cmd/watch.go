package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/sjv/internal/domain"
)

const watchCmdName = "watch"

const watchLongDescription = `Verify the selected sources once, then verify each source again whenever
it is written. New sources created under a watched directory are picked up.
Runs until interrupted.`

var watchVerifyFlags verifyFlags
var watchDebounceFlag time.Duration

// watchCmd represents the watch command.
var watchCmd = newWatchCmd()

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   watchCmdName + " [paths...]",
		Short: "Re-verify sources as they change",
		Long:  watchLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return workflow.Watch(ctx, domain.WatchArgs{
				VerifyArgs: verifyArgs(cmd, args, watchVerifyFlags),
				Debounce:   watchDebounceFlag,
			})
		},
	}
	cmd.Flags().IntVarP(&watchVerifyFlags.parallel, "parallel", "p", 1, "number of parallel verification workers")
	cmd.Flags().DurationVar(&watchDebounceFlag, "debounce", domain.DefaultDebounce, "quiet period after a change before verifying")

	return cmd
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
