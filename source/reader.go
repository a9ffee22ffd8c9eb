// Package source implements the pull-based character reader protocol the
// lexer consumes. It is an external collaborator to the core pipeline: the
// lexer only depends on the Reader interface, never on these concrete
// adapters.
package source

import (
	"bufio"
	"io"
)

// Reader yields one byte at a time, returning 0 at EOF. The contract is that
// 0 persists: callers may keep calling Next after EOF.
type Reader interface {
	Next() byte
}

// StringReader adapts an in-memory string to Reader. Useful for tests and
// for the run/emit/repl CLIs, which hold a whole file or REPL buffer in memory.
type StringReader struct {
	data []byte
	pos  int
}

func NewString(s string) *StringReader {
	return &StringReader{data: []byte(s)}
}

func (r *StringReader) Next() byte {
	if r.pos >= len(r.data) {
		return 0
	}
	b := r.data[r.pos]
	r.pos++
	return b
}

// StreamReader adapts any io.Reader (a file, stdin) to Reader via a buffered
// reader, matching the original_source FileReader's fopen/fgetc/feof shape
// but idiomatic to Go's io.Reader.
type StreamReader struct {
	br   *bufio.Reader
	done bool
}

func NewStream(r io.Reader) *StreamReader {
	return &StreamReader{br: bufio.NewReader(r)}
}

func (r *StreamReader) Next() byte {
	if r.done {
		return 0
	}
	b, err := r.br.ReadByte()
	if err != nil {
		r.done = true
		return 0
	}
	return b
}
