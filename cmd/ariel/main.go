package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

// options holds the flags shared by every subcommand.
type options struct {
	noColor bool
	format  string
	workers int
	verbose int
	logFile string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "ariel [file]",
		Short:         "Parse an Ariel program and print its syntax tree",
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var logPath *string
			if opts.logFile != "" {
				logPath = &opts.logFile
			}
			commonlog.Configure(opts.verbose, logPath)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return opts.compile(cmd.Context(), args[0], cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored diagnostics")
	flags.StringVarP(&opts.format, "format", "f", "tree", "output format (tree, json)")
	flags.IntVarP(&opts.workers, "workers", "j", 0, "files parsed concurrently (default: number of CPUs)")
	flags.CountVarP(&opts.verbose, "verbose", "v", "log more, repeat for even more")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newReplCmd(opts))
	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newWatchCmd(opts))
	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newGrammarCmd())

	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errHasErrors) {
			fmt.Fprintln(os.Stderr, "ariel:", err)
		}
		os.Exit(1)
	}
}
