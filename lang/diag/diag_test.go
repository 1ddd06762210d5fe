package diag

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/dhamidi/ariel/lang/token"
)

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{
		Pos:     token.Position{File: "main.ar", Line: 2, Column: 4},
		Message: "Invalid expression",
	}
	if got, want := d.String(), "[main.ar 2:4] :: Invalid expression"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPrinterPlain(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, WithColor(false))

	p.Report(Diagnostic{Pos: token.Position{File: "a.ar", Line: 1, Column: 0}, Message: "first"})
	p.Report(Diagnostic{Pos: token.Position{File: "a.ar", Line: 3, Column: 9}, Message: "second", Severity: Warning})

	want := "[a.ar 1:0] :: first\n[a.ar 3:9] :: second\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestPrinterColor(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, WithColor(true))
	p.Report(Diagnostic{Pos: token.Position{File: "a.ar", Line: 1}, Message: "boom"})

	out := buf.String()
	if !strings.Contains(out, "\x1b[") {
		t.Errorf("output %q carries no escape sequence", out)
	}
	if !strings.HasSuffix(out, " :: boom\n") {
		t.Errorf("output %q does not end with the message", out)
	}
}

func TestPrinterConcurrentLinesDoNotInterleave(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, WithColor(false))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Report(Diagnostic{Pos: token.Position{File: "x.ar", Line: 1}, Message: "same message"})
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 50 {
		t.Fatalf("got %d lines, want 50", len(lines))
	}
	for _, line := range lines {
		if line != "[x.ar 1:0] :: same message" {
			t.Fatalf("garbled line %q", line)
		}
	}
}

func TestCollectorSortsByPosition(t *testing.T) {
	c := &Collector{}
	c.Report(Diagnostic{Pos: token.Position{File: "b.ar", Line: 1}, Message: "b"})
	c.Report(Diagnostic{Pos: token.Position{File: "a.ar", Line: 5, Column: 2}, Message: "a2"})
	c.Report(Diagnostic{Pos: token.Position{File: "a.ar", Line: 5, Column: 1}, Message: "a1"})
	c.Report(Diagnostic{Pos: token.Position{File: "a.ar", Line: 1}, Message: "a0", Severity: Warning})

	var got []string
	for _, d := range c.Diagnostics() {
		got = append(got, d.Message)
	}
	if strings.Join(got, ",") != "a0,a1,a2,b" {
		t.Errorf("order = %v", got)
	}
	if c.Len() != 4 || !c.HasErrors() {
		t.Errorf("Len() = %d, HasErrors() = %v", c.Len(), c.HasErrors())
	}
}

func TestCollectorWarningsOnly(t *testing.T) {
	c := &Collector{}
	c.Report(Diagnostic{Message: "w", Severity: Warning})
	if c.HasErrors() {
		t.Error("warnings alone reported as errors")
	}
}

func TestTee(t *testing.T) {
	a, b := &Collector{}, &Collector{}
	Tee(a, b, Discard).Report(Diagnostic{Message: "x"})
	if a.Len() != 1 || b.Len() != 1 {
		t.Errorf("lens = %d, %d, want 1, 1", a.Len(), b.Len())
	}
}
