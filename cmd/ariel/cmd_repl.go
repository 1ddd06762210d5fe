package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newReplCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read declarations line by line and print their syntax tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.repl(cmd, cmd.InOrStdin())
		},
	}
}

// repl parses each input line as a file of its own in a scratch directory,
// so relative imports only find files created there.
func (o *options) repl(cmd *cobra.Command, in io.Reader) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	dir, err := os.MkdirTemp("", "ariel-repl-")
	if err != nil {
		return fmt.Errorf("repl: %w", err)
	}
	defer os.RemoveAll(dir)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(stdout, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(stdout)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		path, err := writeReplFile(dir, line)
		if err != nil {
			return err
		}
		err = o.compile(cmd.Context(), path, stdout, stderr)
		os.Remove(path)
		if err != nil && !errors.Is(err, errHasErrors) {
			fmt.Fprintln(stderr, err)
		}
	}
}

func writeReplFile(dir, line string) (string, error) {
	f, err := os.CreateTemp(dir, "line-*.ar")
	if err != nil {
		return "", fmt.Errorf("repl: %w", err)
	}
	defer f.Close()
	if _, err := io.WriteString(f, line+"\n"); err != nil {
		return "", fmt.Errorf("repl: %w", err)
	}
	return f.Name(), nil
}
