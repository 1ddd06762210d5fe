// Package diag carries parser and driver diagnostics to the user.
package diag

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/muesli/termenv"

	"github.com/dhamidi/ariel/lang/token"
)

type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

type Diagnostic struct {
	Pos      token.Position
	Message  string
	Severity Severity
}

// String renders the diagnostic as `[file line:col] :: message`.
func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] :: %s", d.Pos, d.Message)
}

// Reporter receives diagnostics as they are found. Implementations must be
// safe for concurrent use: the driver reports from several workers at once.
type Reporter interface {
	Report(d Diagnostic)
}

type ReporterFunc func(d Diagnostic)

func (f ReporterFunc) Report(d Diagnostic) { f(d) }

// Discard drops every diagnostic.
var Discard Reporter = ReporterFunc(func(Diagnostic) {})

type Option func(*Printer)

// WithColor forces colored output on or off. Without it the printer asks
// the terminal behind the writer.
func WithColor(enabled bool) Option {
	return func(p *Printer) {
		if enabled {
			p.out = termenv.NewOutput(p.w, termenv.WithProfile(termenv.ANSI))
		} else {
			p.out = termenv.NewOutput(p.w, termenv.WithProfile(termenv.Ascii))
		}
	}
}

// Printer writes one line per diagnostic. Lines from concurrent reporters
// never interleave.
type Printer struct {
	mu  sync.Mutex
	w   io.Writer
	out *termenv.Output
}

func NewPrinter(w io.Writer, opts ...Option) *Printer {
	p := &Printer{w: w, out: termenv.NewOutput(w)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Printer) Report(d Diagnostic) {
	color := termenv.ANSIRed
	if d.Severity == Warning {
		color = termenv.ANSIYellow
	}
	loc := p.out.String("[" + d.Pos.String() + "]").Foreground(color).Bold()

	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "%s :: %s\n", loc, d.Message)
}

// Collector keeps every reported diagnostic in memory.
type Collector struct {
	mu    sync.Mutex
	diags []Diagnostic
}

func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diags = append(c.diags, d)
}

// Diagnostics returns a copy sorted by file, then position. Reports from
// concurrent workers arrive in no particular order.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	out := make([]Diagnostic, len(c.diags))
	copy(out, c.diags)
	c.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Pos, out[j].Pos
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
	return out
}

func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.diags)
}

func (c *Collector) HasErrors() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range c.diags {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Tee forwards every diagnostic to all reporters in order.
func Tee(reporters ...Reporter) Reporter {
	return ReporterFunc(func(d Diagnostic) {
		for _, r := range reporters {
			r.Report(d)
		}
	})
}
