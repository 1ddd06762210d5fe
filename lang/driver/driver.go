// Package driver parses a program made of several files. The root file is
// parsed first; every `import` it or its imports contain is scheduled on a
// fixed pool of workers, and each file is parsed at most once.
package driver

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/ariel/lang/ast"
	"github.com/dhamidi/ariel/lang/diag"
	"github.com/dhamidi/ariel/lang/parser"
	"github.com/dhamidi/ariel/lang/source"
	"github.com/dhamidi/ariel/lang/token"
)

type Option func(*Driver)

// WithWorkers sets the number of files parsed concurrently. Values below one
// are treated as one.
func WithWorkers(n int) Option {
	return func(d *Driver) {
		if n < 1 {
			n = 1
		}
		d.workers = n
	}
}

func WithReporter(r diag.Reporter) Option {
	return func(d *Driver) {
		d.reporter = r
	}
}

// WithVisitedSet shares a set of already parsed files across calls to
// Parse. Without it every call starts from an empty set.
func WithVisitedSet(s *VisitedSet) Option {
	return func(d *Driver) {
		d.visited = s
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(d *Driver) {
		d.log = log
	}
}

type Driver struct {
	workers  int
	reporter diag.Reporter
	visited  *VisitedSet
	log      commonlog.Logger
}

func New(opts ...Option) *Driver {
	d := &Driver{
		workers:  runtime.NumCPU(),
		reporter: diag.Discard,
		log:      commonlog.GetLogger("ariel.driver"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Program is the merged result of parsing a root file and its imports.
type Program struct {
	ASTs *ast.ASTs
	// Files lists the canonical path of every parsed file, root first.
	Files []string
	// Missing lists imports that could not be read.
	Missing []string
	// Aborted lists files whose parse stopped on an internal error. They
	// contribute no declarations.
	Aborted []string
}

// job is one file to parse. From is the path token of the import that
// named it, nil for the root file.
type job struct {
	path string
	from *token.Token
}

type result struct {
	path    string
	asts    *ast.ASTs
	err     error
	aborted bool
}

// Parse parses the file at path and everything it imports. Syntax errors
// and unreadable imports go to the reporter; the returned error is set only
// when the root file cannot be read or ctx is cancelled.
func (d *Driver) Parse(ctx context.Context, path string) (*Program, error) {
	visited := d.visited
	if visited == nil {
		visited = NewVisitedSet()
	}

	root := Canonical(path)
	if !visited.Visit(root) {
		d.log.Infof("skipping %s: already parsed", root)
		d.reporter.Report(diag.Diagnostic{
			Pos:      token.Position{File: root},
			Message:  "file already imported, skipping it.",
			Severity: diag.Warning,
		})
		return &Program{ASTs: &ast.ASTs{}}, nil
	}

	jobs := make(chan job)
	results := make(chan result)
	discovered := make(chan job)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < d.workers; i++ {
		g.Go(func() error {
			for j := range jobs {
				results <- d.parseFile(j, visited, discovered)
			}
			return nil
		})
	}

	done := d.coordinate(gctx, job{path: root}, jobs, results, discovered)
	close(jobs)
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if r := done[root]; r.err != nil {
		return nil, r.err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", root, err)
	}
	return merge(root, done), nil
}

// coordinate hands jobs to the workers until no file is queued or being
// parsed. After ctx is cancelled it stops handing out new jobs but still
// collects the results of files already in progress.
func (d *Driver) coordinate(ctx context.Context, first job, jobs chan<- job, results <-chan result, discovered <-chan job) map[string]result {
	done := make(map[string]result)
	queue := []job{first}
	inFlight := 0
	cancelled := ctx.Done()

	for len(queue) > 0 || inFlight > 0 {
		var send chan<- job
		var next job
		if len(queue) > 0 {
			send = jobs
			next = queue[0]
		}

		select {
		case send <- next:
			d.log.Debugf("dispatching %s", next.path)
			queue = queue[1:]
			inFlight++
		case j := <-discovered:
			queue = append(queue, j)
		case r := <-results:
			inFlight--
			done[r.path] = r
		case <-cancelled:
			d.log.Infof("cancelled, dropping %d queued files", len(queue))
			queue = nil
			cancelled = nil
		}

		if cancelled == nil {
			queue = nil
		}
	}
	return done
}

// parseFile parses one file. A panic in the parser is recovered and turned
// into a diagnostic; the file then contributes nothing.
func (d *Driver) parseFile(j job, visited *VisitedSet, discovered chan<- job) (res result) {
	res = result{path: j.path, asts: &ast.ASTs{}}

	defer func() {
		if r := recover(); r != nil {
			d.log.Errorf("panic while parsing %s: %v", j.path, r)
			d.reporter.Report(diag.Diagnostic{
				Pos:     token.Position{File: j.path},
				Message: fmt.Sprintf("internal error while parsing this file: %v", r),
			})
			res = result{path: j.path, asts: &ast.ASTs{}, aborted: true}
		}
	}()

	buf, err := source.Open(j.path)
	if err != nil {
		d.log.Errorf("%s", err)
		pos := token.Position{File: j.path}
		if j.from != nil {
			pos = j.from.Pos
		}
		d.reporter.Report(diag.Diagnostic{Pos: pos, Message: err.Error()})
		res.err = err
		return res
	}
	defer buf.Close()

	importer := parser.ImporterFunc(func(tok *token.Token) {
		target := resolve(j.path, tok.Lexeme)
		if !visited.Visit(target) {
			d.log.Infof("skipping %s: already imported", target)
			d.reporter.Report(diag.Diagnostic{
				Pos:      tok.Pos,
				Message:  fmt.Sprintf("%s is already imported, skipping it.", tok.Lexeme),
				Severity: diag.Warning,
			})
			return
		}
		discovered <- job{path: target, from: tok}
	})

	p := parser.New(buf, parser.WithReporter(d.reporter), parser.WithImporter(importer))
	res.asts = p.ParseFile()
	d.log.Debugf("%s: %d diagnostics", j.path, p.Reported())
	return res
}

// merge concatenates the per-file results, root file first and the rest in
// path order so that output does not depend on scheduling.
func merge(root string, done map[string]result) *Program {
	prog := &Program{ASTs: &ast.ASTs{}}

	paths := make([]string, 0, len(done))
	for path := range done {
		if path != root {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	paths = append([]string{root}, paths...)

	for _, path := range paths {
		r, ok := done[path]
		if !ok {
			continue
		}
		prog.ASTs.Merge(r.asts)
		switch {
		case r.err != nil:
			prog.Missing = append(prog.Missing, path)
		case r.aborted:
			prog.Aborted = append(prog.Aborted, path)
		default:
			prog.Files = append(prog.Files, path)
		}
	}
	return prog
}
