package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dhamidi/ariel/format"
	"github.com/dhamidi/ariel/lang/diag"
	"github.com/dhamidi/ariel/lang/driver"
)

// errHasErrors is returned after the tree has been printed when any file
// of the program had syntax errors.
var errHasErrors = errors.New("the program has syntax errors")

func (o *options) printer(w io.Writer) *diag.Printer {
	if o.noColor {
		return diag.NewPrinter(w, diag.WithColor(false))
	}
	return diag.NewPrinter(w)
}

func (o *options) driver(reporter diag.Reporter) *driver.Driver {
	opts := []driver.Option{driver.WithReporter(reporter)}
	if o.workers > 0 {
		opts = append(opts, driver.WithWorkers(o.workers))
	}
	return driver.New(opts...)
}

// compile parses path with its imports, prints diagnostics to stderr and
// the merged tree to stdout.
func (o *options) compile(ctx context.Context, path string, stdout, stderr io.Writer) error {
	enc, err := format.New(o.format, stdout)
	if err != nil {
		return err
	}

	c := &diag.Collector{}
	prog, err := o.driver(diag.Tee(c, o.printer(stderr))).Parse(ctx, path)
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}

	if err := enc.Encode(prog.ASTs); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if c.HasErrors() {
		return errHasErrors
	}
	return nil
}
