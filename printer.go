// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonpull

import (
	"io"
	"strings"

	"github.com/creachadair/jsonpull/internal/escape"

	"go4.org/mem"
)

// Flags control the output format of a Printer.
type Flags uint

// Constants defining the valid Flags bits.
const (
	Pretty Flags = 1 << iota // break lines and indent nested values
	ASCII                    // escape all non-ASCII characters as \uXXXX
)

// A SinkFunc receives the formatted text of a Printer in chunks.
type SinkFunc func(p *Printer, chunk string)

// A Printer writes a JSON document one value at a time, streaming the text to
// a sink as it is produced.
//
// Each Add and Start method takes the name of the member to write. Inside an
// object the name is always written, and the empty string is a valid name.
// Outside an object the name must be empty. Violations of this contract, a
// second toplevel value, an unmatched End, and closing a printer with open
// containers are programming errors and cause a panic.
//
// A Printer is not safe for concurrent use by multiple goroutines.
type Printer struct {
	sink   SinkFunc
	done   func()
	flags  Flags
	indent string
	stack  []printBlock
	buf    []byte
	err    error // sink error, see NewWriterPrinter
	closed bool
}

type printBlock struct {
	kind  blockKind
	count int // number of values written
}

// NewPrinter constructs a Printer that delivers its output to sink. If done
// is not nil, it is called exactly once, by Close.
//
// The printer initially writes compact output with an indentation unit of
// two spaces; use SetFlags and SetIndent to change these settings.
func NewPrinter(sink SinkFunc, done func()) *Printer {
	return &Printer{
		sink:   sink,
		done:   done,
		indent: "  ",
		stack:  []printBlock{{kind: toplevel}},
	}
}

// NewWriterPrinter constructs a Printer that writes its output to w.
// After a write to w fails, further output is discarded; use Err to recover
// the error.
func NewWriterPrinter(w io.Writer) *Printer {
	return NewPrinter(func(p *Printer, chunk string) {
		if p.err == nil {
			_, p.err = io.WriteString(w, chunk)
		}
	}, nil)
}

// SetFlags sets the formatting flags of p.
func (p *Printer) SetFlags(f Flags) { p.flags = f }

// Flags reports the formatting flags of p.
func (p *Printer) Flags() Flags { return p.flags }

// SetIndent sets the indentation unit of pretty-printed output to width
// spaces.
func (p *Printer) SetIndent(width int) { p.indent = strings.Repeat(" ", max(width, 0)) }

// Depth reports the number of containers started and not yet ended.
func (p *Printer) Depth() int { return len(p.stack) - 1 }

// Err reports the first error from the writer of a printer constructed by
// NewWriterPrinter.
func (p *Printer) Err() error { return p.err }

// AddBool writes a Boolean value.
func (p *Printer) AddBool(name string, v bool) {
	p.begin(name)
	if v {
		p.buf = append(p.buf, "true"...)
	} else {
		p.buf = append(p.buf, "false"...)
	}
	p.emit()
}

// AddNumber writes a number value. Non-finite values are written as null.
func (p *Printer) AddNumber(name string, v float64) {
	p.begin(name)
	p.buf = appendNumber(p.buf, v)
	p.emit()
}

// AddString writes a string value.
func (p *Printer) AddString(name, v string) {
	p.begin(name)
	p.buf = escape.AppendQuote(p.buf, mem.S(v), p.flags&ASCII != 0)
	p.emit()
}

// AddNull writes a null value.
func (p *Printer) AddNull(name string) {
	p.begin(name)
	p.buf = append(p.buf, "null"...)
	p.emit()
}

// StartObject begins an object. Subsequent values are its members until the
// matching call to End.
func (p *Printer) StartObject(name string) {
	p.begin(name)
	p.buf = append(p.buf, '{')
	p.emit()
	p.stack = append(p.stack, printBlock{kind: object})
}

// StartArray begins an array. Subsequent values are its elements until the
// matching call to End.
func (p *Printer) StartArray(name string) {
	p.begin(name)
	p.buf = append(p.buf, '[')
	p.emit()
	p.stack = append(p.stack, printBlock{kind: array})
}

// End ends the most recently started object or array.
func (p *Printer) End() {
	if len(p.stack) <= 1 {
		panic("jsonpull: End without a matching start")
	}
	b := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]

	p.buf = p.buf[:0]
	if b.count != 0 && p.flags&Pretty != 0 {
		p.newline()
	}
	p.buf = append(p.buf, closer(b.kind))
	p.emit()
}

// Close releases the printer, calling the done function given to NewPrinter.
// Close panics if any container is still open. Calls to Close after the first
// have no effect.
func (p *Printer) Close() {
	if len(p.stack) != 1 {
		panic("jsonpull: printer closed with open containers")
	}
	if !p.closed {
		p.closed = true
		if p.done != nil {
			p.done()
		}
	}
}

// begin writes the separator, line break, and member name preceding a value.
func (p *Printer) begin(name string) {
	b := &p.stack[len(p.stack)-1]
	if b.kind == toplevel && b.count != 0 {
		panic("jsonpull: multiple toplevel values")
	} else if b.kind != object && name != "" {
		panic("jsonpull: member name outside an object")
	}

	p.buf = p.buf[:0]
	if b.count != 0 {
		p.buf = append(p.buf, ',')
	}
	if b.kind != toplevel && p.flags&Pretty != 0 {
		p.newline()
	}
	if b.kind == object {
		p.buf = escape.AppendQuote(p.buf, mem.S(name), p.flags&ASCII != 0)
		if p.flags&Pretty != 0 {
			p.buf = append(p.buf, ": "...)
		} else {
			p.buf = append(p.buf, ':')
		}
	}
	b.count++
}

// newline appends a line break and the indentation for the current depth.
func (p *Printer) newline() {
	p.buf = append(p.buf, '\n')
	for range p.Depth() {
		p.buf = append(p.buf, p.indent...)
	}
}

func (p *Printer) emit() { p.sink(p, string(p.buf)) }
