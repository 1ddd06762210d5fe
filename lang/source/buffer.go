// Package source owns the bytes of a single Ariel source file and the cursor
// the tokenizer moves over them.
package source

import (
	"errors"
	"fmt"
	"os"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrMemoryMap    = errors.New("memory map failed")
)

// Buffer exposes byte-level cursor operations over one file. It is not safe
// for concurrent use; each file gets its own Buffer.
type Buffer struct {
	name    string
	data    []byte
	release func() error

	line    int
	column  int
	start   int
	current int

	startLine   int
	startColumn int
}

// Open maps the file at path into memory.
func Open(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", path, ErrFileNotFound, err)
	}
	defer f.Close()

	data, release, err := mapFile(f)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w: %w", path, ErrMemoryMap, err)
	}
	b := FromBytes(path, data)
	b.release = release
	return b, nil
}

// FromBytes wraps in-memory source text, e.g. an editor buffer.
func FromBytes(name string, data []byte) *Buffer {
	return &Buffer{
		name: name,
		data: data,
		line: 1,
	}
}

// Close releases the mapping. The buffer must not be used afterwards.
func (b *Buffer) Close() error {
	if b.release == nil {
		return nil
	}
	err := b.release()
	b.release = nil
	b.data = nil
	return err
}

func (b *Buffer) Name() string { return b.name }
func (b *Buffer) Len() int     { return len(b.data) }
func (b *Buffer) Line() int    { return b.line }
func (b *Buffer) Column() int  { return b.column }
func (b *Buffer) Offset() int  { return b.current }

func (b *Buffer) AtEOF() bool {
	return b.current >= len(b.data)
}

// Peek returns the byte under the cursor, or 0 at end of input.
func (b *Buffer) Peek() byte {
	return b.PeekAhead(0)
}

func (b *Buffer) PeekAhead(n int) byte {
	if b.current+n >= len(b.data) {
		return 0
	}
	return b.data[b.current+n]
}

// Advance consumes one byte and keeps line/column in step. Only '\n'
// starts a new line.
func (b *Buffer) Advance() byte {
	if b.current >= len(b.data) {
		return 0
	}
	ch := b.data[b.current]
	b.current++
	if ch == '\n' {
		b.line++
		b.column = 0
	} else {
		b.column++
	}
	return ch
}

// MarkStart records the cursor as the beginning of the next lexeme.
func (b *Buffer) MarkStart() {
	b.start = b.current
	b.startLine = b.line
	b.startColumn = b.column
}

// Lexeme returns the bytes between the last MarkStart and the cursor.
func (b *Buffer) Lexeme() []byte {
	return b.data[b.start:b.current]
}

// Start returns offset, line and column of the last MarkStart.
func (b *Buffer) Start() (offset, line, column int) {
	return b.start, b.startLine, b.startColumn
}
