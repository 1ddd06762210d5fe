package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/ariel/format"
	"github.com/dhamidi/ariel/lang/driver"
)

func newWatchCmd(opts *options) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Parse a program again whenever one of its files changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
			enc, err := format.New(opts.format, stdout)
			if err != nil {
				return err
			}

			w := driver.NewWatcher(opts.driver(opts.printer(stderr)), debounce)
			return w.Run(cmd.Context(), args[0], func(prog *driver.Program, err error) {
				fmt.Fprintf(stderr, "--- %s\n", time.Now().Format(time.TimeOnly))
				if err != nil {
					fmt.Fprintln(stderr, err)
					return
				}
				if err := enc.Encode(prog.ASTs); err != nil {
					fmt.Fprintln(stderr, err)
				}
			})
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", driver.DefaultDebounce, "wait this long after a change before parsing")

	return cmd
}
