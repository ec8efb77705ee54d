// Package cmd provides the root command and CLI setup for sjv.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mouse-blink/sjv/internal/adapter"
	"github.com/mouse-blink/sjv/internal/controller"
	"github.com/mouse-blink/sjv/internal/domain"
	"github.com/mouse-blink/sjv/internal/domain/sjava"
	m "github.com/mouse-blink/sjv/internal/model"
)

const rootLongDescription = `sjv statically verifies s-Java sources: it checks statement syntax, block
structure, variable declarations, assignments and types, conditions, method
declarations and calls, and reports the first violation of every file.

Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./src/...      recursively scan src directory
  - a.sjava src    verify a file and the top level of a directory

Exit status is 0 when every source is valid, 1 when a source is ill-formed and
2 when a source could not be read or the command failed.`

var configLoader adapter.ConfigLoader = adapter.NewConfigLoader()

// workflow is built from the loaded configuration unless already set.
var workflow domain.Workflow
var config = adapter.DefaultConfig()

var configFlag string
var reportsOutputDirFlag string
var verboseFlag bool
var excludeFlags []string
var shadowingFlag string

var listFlag bool
var rootVerifyFlags verifyFlags

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "sjv [paths...]",
		Short:             "Static verifier for s-Java sources",
		Long:              rootLongDescription,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listFlag {
				return workflow.List(domain.ListArgs{SourceArgs: sourceArgs(args)})
			}

			return workflow.Verify(verifyArgs(cmd, args, rootVerifyFlags))
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&configFlag, "config", "", "path to a TOML configuration file (default "+adapter.DefaultConfigFile+" if present)")
	pf.StringVarP(&reportsOutputDirFlag, "output", "o", adapter.DefaultReportsDir, "directory for verification reports")
	pf.BoolVarP(&verboseFlag, "verbose", "v", false, "log progress to stderr")
	pf.StringArrayVarP(&excludeFlags, "exclude", "x", nil, "exclude files matching regex (can be repeated)")
	pf.StringVar(&shadowingFlag, "method-shadowing", "", "policy for methods declared twice in a scope: reject or last-wins")

	cmd.Flags().BoolVarP(&listFlag, "list", "l", false, "list sources and the shape of their blocks instead of verifying them")
	addVerifyFlags(cmd, &rootVerifyFlags)

	return cmd
}

// setup loads the configuration, lets flags override it and builds the
// workflow for the command about to run.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := configLoader.Load(m.Path(configFlag))
	if err != nil {
		return err
	}

	applyPersistentFlags(cmd, &cfg)

	policy, err := sjava.ParseShadowPolicy(cfg.Checker.MethodShadowing)
	if err != nil {
		return err
	}

	config = cfg

	if workflow != nil {
		return nil
	}

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	// Log lines and the watch loop would tear the interactive view apart.
	useTTY := !cfg.Verbose && cmd.Name() != watchCmdName && controller.IsTTY(os.Stdout)

	workflow = domain.NewWorkflow(
		adapter.NewLocalSourceFSAdapter(),
		adapter.NewReportStore(),
		controller.NewUI(cmd, useTTY),
		domain.NewVerifier(sjava.Options{MethodShadowing: policy}),
		logger,
	)

	return nil
}

func applyPersistentFlags(cmd *cobra.Command, cfg *adapter.Config) {
	flags := cmd.Flags()

	if flags.Changed("output") {
		cfg.Reports = reportsOutputDirFlag
	}

	if flags.Changed("verbose") {
		cfg.Verbose = verboseFlag
	}

	if flags.Changed("method-shadowing") {
		cfg.Checker.MethodShadowing = shadowingFlag
	}

	cfg.Exclude = append(cfg.Exclude, excludeFlags...)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}

	return cfg.Build()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, domain.ErrIllFormed) && !errors.Is(err, domain.ErrIO) {
		_, _ = fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}

	os.Exit(exitCode(err))
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, domain.ErrIllFormed) && !errors.Is(err, domain.ErrIO):
		return 1
	default:
		return 2
	}
}

func sourceArgs(args []string) domain.SourceArgs {
	return domain.SourceArgs{
		Paths:      parsePaths(args),
		Extensions: config.Extensions,
		Exclude:    config.Exclude,
	}
}

// parsePaths converts arguments to paths, defaulting to a recursive scan of
// the working directory.
func parsePaths(args []string) []m.Path {
	if len(args) == 0 {
		return []m.Path{"./..."}
	}

	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
