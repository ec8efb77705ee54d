package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/sjv/internal/domain"
	m "github.com/mouse-blink/sjv/internal/model"
)

const runLongDescription = `Verify s-Java sources and write one report per source to the reports
directory (see --output). With --changed only sources whose content differs
from their stored report are verified again.`

type verifyFlags struct {
	parallel int
	shard    string
	changed  bool
}

var runVerifyFlags verifyFlags

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Verify sources and store reports",
		Long:  runLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Verify(verifyArgs(cmd, args, runVerifyFlags))
		},
	}
	addVerifyFlags(cmd, &runVerifyFlags)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func addVerifyFlags(cmd *cobra.Command, f *verifyFlags) {
	cmd.Flags().IntVarP(&f.parallel, "parallel", "p", 1, "number of parallel verification workers")
	cmd.Flags().StringVarP(&f.shard, "shard", "s", "", "shard index and total shard count in the format INDEX/TOTAL (e.g., 0/3)")
	cmd.Flags().BoolVarP(&f.changed, "changed", "c", false, "only verify sources changed since their last report")
}

func verifyArgs(cmd *cobra.Command, args []string, f verifyFlags) domain.VerifyArgs {
	threads := config.Parallel
	if cmd.Flags().Changed("parallel") {
		threads = f.parallel
	}

	shardIndex, totalShards := parseShardFlag(f.shard)

	return domain.VerifyArgs{
		SourceArgs:      sourceArgs(args),
		Reports:         m.Path(config.Reports),
		Threads:         threads,
		Changed:         f.changed,
		ShardIndex:      shardIndex,
		TotalShardCount: totalShards,
	}
}

func parseShardFlag(shard string) (int, int) {
	if shard == "" {
		return 0, 1
	}

	var index, total int

	_, err := fmt.Sscanf(shard, "%d/%d", &index, &total)
	if err != nil || total <= 0 || index < 0 || index >= total {
		return 0, 1
	}

	return index, total
}
