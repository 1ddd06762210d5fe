package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dhamidi/ariel/lang/lexer"
	"github.com/dhamidi/ariel/lang/source"
	"github.com/dhamidi/ariel/lang/token"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the tokens of a file, one per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := source.Open(args[0])
			if err != nil {
				return err
			}
			defer buf.Close()

			w := cmd.OutOrStdout()
			for _, tok := range lexer.New(buf).All() {
				fmt.Fprintf(w, "%d:%d\t%s\t%s", tok.Pos.Line, tok.Pos.Column, tok.Kind, strconv.Quote(tok.Lexeme))
				if tok.Kind == token.Unknown {
					fmt.Fprintf(w, "\t%s", tok.Message)
				}
				fmt.Fprintln(w)
			}
			return nil
		},
	}
}
