// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonpull

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"go4.org/mem"
)

// Node is the type of the value at the cursor of a Parser.
type Node byte

// Constants defining the valid Node values.
const (
	None    Node = iota // no value: the container or document is exhausted
	Null                // constant: null
	Boolean             // constant: true or false
	Number              // number
	String              // quoted string
	Object              // object: { ... }
	Array               // array: [ ... ]
)

var nodeStr = [...]string{
	None:    "none",
	Null:    "null",
	Boolean: "boolean",
	Number:  "number",
	String:  "string",
	Object:  "object",
	Array:   "array",
}

func (n Node) String() string {
	if int(n) >= len(nodeStr) {
		return "invalid node"
	}
	return nodeStr[n]
}

// A Parser is a pull parser over a complete JSON document held in memory.
//
// The cursor of a parser is positioned at one value (a node) of the
// document. Next advances to the next value of the same container;
// StartObject and StartArray descend into the current value and End returns
// to the enclosing container. The parser never modifies or retains a copy of
// its input.
//
// The first error encountered is recorded and reported by Err. After a syntax
// error, all further operations report no value. Value and schema errors are
// recorded but navigation continues.
//
// A Parser is not safe for concurrent use by multiple goroutines.
type Parser struct {
	src   mem.RO
	pos   int // reader offset, 0 ≤ pos ≤ src.Len()
	stack blockStack
	err   *Error
	halt  bool // a syntax error has been recorded
}

// NewParser constructs a Parser for the document in data. The caller must
// not modify data while the parser is in use.
func NewParser(data []byte) *Parser { return newParser(mem.B(data)) }

// NewParserString constructs a Parser for the document in s.
func NewParserString(s string) *Parser { return newParser(mem.S(s)) }

func newParser(src mem.RO) *Parser {
	p := &Parser{src: src}
	p.stack.init(block{kind: toplevel, value: -1})
	p.skipSpace()
	if p.pos >= src.Len() {
		p.syntaxErrorAt(p.pos, p.pos, "unexpected end of document")
		return p
	}
	p.stack.top().value = p.pos
	p.scanValue()
	return p
}

// Err returns the first error recorded by p, or nil. A non-nil error has
// concrete type *Error.
func (p *Parser) Err() error {
	if p.err == nil {
		return nil
	}
	return p.err
}

// Node reports the type of the current value, or None if there is none.
func (p *Parser) Node() Node {
	if p.halt {
		return None
	}
	b := p.stack.top()
	if b.value < 0 {
		return None
	}
	switch p.src.At(b.value) {
	case 'n':
		return Null
	case 't', 'f':
		return Boolean
	case '"':
		return String
	case '{':
		return Object
	case '[':
		return Array
	default:
		return Number
	}
}

// Depth reports the number of containers p has entered and not yet ended.
func (p *Parser) Depth() int { return p.stack.depth() }

// Index reports the 0-based position of the current value within its
// container, or -1 if there is no current value.
func (p *Parser) Index() int {
	b := p.stack.top()
	if p.halt || b.value < 0 {
		return -1
	}
	return b.index
}

// Span returns the location span of the current value. For an object or
// array, the span covers only the opening bracket until the container has
// been ended.
func (p *Parser) Span() Span {
	b := p.stack.top()
	if p.halt || b.value < 0 {
		return Span{Pos: p.pos, End: p.pos}
	}
	return Span{Pos: b.value, End: p.pos}
}

// Location returns the complete location of the current value.
func (p *Parser) Location() Location { return locate(p.src, p.Span()) }

// Text returns the undecoded text of the current value. It returns "" if the
// current value is an object or array.
func (p *Parser) Text() string {
	switch p.Node() {
	case None, Object, Array:
		return ""
	}
	return p.current().StringCopy()
}

func (p *Parser) current() mem.RO {
	b := p.stack.top()
	return p.src.Slice(b.value, p.pos)
}

// Next advances p to the next value of the current container and reports
// whether there is one. An object or array at the cursor that has not been
// entered is skipped in full.
func (p *Parser) Next() bool {
	if p.halt || p.stack.top().value < 0 {
		return false
	}
	if !p.skipValue() {
		return false
	}
	return p.advance()
}

// StartObject enters the object at the cursor, positioning the cursor at its
// first member. It reports false if the current value is not an object.
func (p *Parser) StartObject() bool { return p.start(Object) }

// StartArray enters the array at the cursor, positioning the cursor at its
// first element. It reports false if the current value is not an array.
func (p *Parser) StartArray() bool { return p.start(Array) }

func (p *Parser) start(want Node) bool {
	if !p.expect(want) {
		return false
	}
	if !p.unentered(p.stack.top()) {
		return p.valueErrorf("%s has already been visited", want)
	}
	return p.enter()
}

// End skips any remaining values of the current container, consumes its
// closing bracket and returns the cursor to the container in the enclosing
// block. It reports false at the toplevel or after an error.
func (p *Parser) End() bool {
	if p.halt || p.stack.depth() == 0 {
		return false
	}
	for p.Next() {
	}
	if p.halt {
		return false
	}
	return p.close()
}

// MemberName reports the decoded name of the current object member. It
// reports false if the cursor is not at a member of an object.
func (p *Parser) MemberName() (string, bool) {
	b := p.stack.top()
	if p.halt || b.kind != object || b.value < 0 {
		return "", false
	}
	return p.decodeString(b.member), true
}

// BoolValue returns the value of the current Boolean. If the current value is
// not a Boolean, it records a value error and returns false.
func (p *Parser) BoolValue() bool {
	if !p.expect(Boolean) {
		return false
	}
	return p.src.At(p.stack.top().value) == 't'
}

// NumberValue returns the value of the current number. If the current value
// is not a number, or is not representable as a float64, it records a value
// error and returns 0.
func (p *Parser) NumberValue() float64 {
	if !p.expect(Number) {
		return 0
	}
	v, err := mem.ParseFloat(p.current(), 64)
	if err != nil {
		p.valueErrorf("number out of range")
		return 0
	}
	return v
}

// IntValue returns the value of the current number as an int64. If the
// current value is not an integer in range, it records a value error and
// returns 0.
func (p *Parser) IntValue() int64 {
	if !p.expect(Number) {
		return 0
	}
	v, err := mem.ParseInt(p.current(), 10, 64)
	if err != nil {
		p.numberError(err, "an integer")
		return 0
	}
	return v
}

// UintValue returns the value of the current number as a uint64. If the
// current value is not a non-negative integer in range, it records a value
// error and returns 0.
func (p *Parser) UintValue() uint64 {
	if !p.expect(Number) {
		return 0
	}
	v, err := mem.ParseUint(p.current(), 10, 64)
	if err != nil {
		p.numberError(err, "an unsigned integer")
		return 0
	}
	return v
}

func (p *Parser) numberError(err error, want string) {
	if errors.Is(err, strconv.ErrRange) {
		p.valueErrorf("number out of range")
	} else {
		p.valueErrorf("number is not %s", want)
	}
}

// StringValue returns the decoded value of the current string. If the current
// value is not a string, it records a value error and returns "".
func (p *Parser) StringValue() string {
	if !p.expect(String) {
		return ""
	}
	return p.decodeString(p.stack.top().value)
}

// FindMember advances through the members of the current object until one
// named name is at the cursor, and reports whether one was found. The search
// begins at the current member and does not revisit earlier members.
func (p *Parser) FindMember(name string) bool {
	if p.halt || p.stack.top().kind != object {
		return false
	}
	for {
		if got, ok := p.MemberName(); !ok {
			return false
		} else if got == name {
			return true
		}
		if !p.Next() {
			return false
		}
	}
}

// SelectMember returns the index in names of the name of the current object
// member, or -1 if it is not listed or the cursor is not at a member.
func (p *Parser) SelectMember(names ...string) int {
	name, ok := p.MemberName()
	if !ok {
		return -1
	}
	return slices.Index(names, name)
}

// SelectString returns the index in options of the current string value. If
// the current value is not a string, or is not listed, SelectString records a
// value error and returns -1.
func (p *Parser) SelectString(options ...string) int {
	if !p.expect(String) {
		return -1
	}
	s := p.StringValue()
	if i := slices.Index(options, s); i >= 0 {
		return i
	}
	p.valueErrorf("unexpected string %q", s)
	return -1
}

// ValueErrorf records a value error located at the current value, if no
// error has been recorded already.
func (p *Parser) ValueErrorf(msg string, args ...any) { p.valueErrorf(msg, args...) }

// SchemaErrorf records a schema error located at the current value, if no
// error has been recorded already. Use a schema error to report a document
// whose structure is valid JSON but not what the caller expects.
func (p *Parser) SchemaErrorf(msg string, args ...any) {
	p.fail(SchemaError, p.Span(), msg, args...)
}

// expect reports whether the current value has type want, and records a
// value error if not.
func (p *Parser) expect(want Node) bool {
	if p.halt {
		return false
	}
	if got := p.Node(); got != want {
		return p.valueErrorf("expected %s, found %s", want, got)
	}
	return true
}

// unentered reports whether the current value of b is an object or array
// whose contents have not been consumed. Only the opening bracket of such a
// value has been read, so the reader is immediately after it.
func (p *Parser) unentered(b *block) bool {
	if b.value < 0 || p.pos != b.value+1 {
		return false
	}
	c := p.src.At(b.value)
	return c == '{' || c == '['
}

// enter pushes a block for the unentered container at the cursor and scans
// its first value, if any.
func (p *Parser) enter() bool {
	kind := object
	if p.src.At(p.stack.top().value) == '[' {
		kind = array
	}
	b := p.stack.push(block{kind: kind, value: -1})
	p.skipSpace()
	if p.pos >= p.src.Len() {
		return p.syntaxErrorAt(p.pos, p.pos, "unexpected end of document")
	}
	if c := p.src.At(p.pos); c == closer(kind) {
		return true // empty container
	}
	if kind == object {
		return p.scanMember(b)
	}
	b.value = p.pos
	return p.scanValue()
}

// scanMember scans a "name": value pair into b.
func (p *Parser) scanMember(b *block) bool {
	if p.pos >= p.src.Len() || p.src.At(p.pos) != '"' {
		return p.unexpected(p.pos, "a member name")
	}
	b.member = p.pos
	if !p.scanString() {
		return false
	}
	p.skipSpace()
	if p.pos >= p.src.Len() || p.src.At(p.pos) != ':' {
		return p.unexpected(p.pos, `":"`)
	}
	p.pos++
	p.skipSpace()
	b.value = p.pos
	return p.scanValue()
}

// advance moves the top block to its next value without skipping the
// current one.
func (p *Parser) advance() bool {
	b := p.stack.top()
	if b.value < 0 {
		return false
	}
	p.skipSpace()
	if b.kind == toplevel {
		b.value = -1
		if p.pos < p.src.Len() {
			if p.src.At(p.pos) == 0 {
				return p.syntaxErrorAt(p.pos, p.pos+1, "unexpected NUL")
			}
			return p.syntaxErrorAt(p.pos, p.src.Len(), "data at end of document")
		}
		return false
	}

	if p.pos >= p.src.Len() {
		return p.syntaxErrorAt(p.pos, p.pos, "unexpected end of document")
	}
	switch c := p.src.At(p.pos); c {
	case closer(b.kind):
		b.value = -1
		return false
	case ',':
		p.pos++
		p.skipSpace()
		b.index++
	default:
		return p.unexpected(p.pos, fmt.Sprintf(`"," or "%c"`, closer(b.kind)))
	}
	if b.kind == object {
		return p.scanMember(b)
	}
	b.value = p.pos
	return p.scanValue()
}

// skipValue consumes the current value of the top block in full, if it is a
// container that has not been entered. Nested containers are traversed on
// the block stack, not by recursion.
func (p *Parser) skipValue() bool {
	base := p.stack.depth()
	for {
		if p.unentered(p.stack.top()) {
			if !p.enter() {
				return false
			}
			continue
		}
		if p.stack.depth() == base {
			return true
		}
		if !p.advance() {
			if p.halt || !p.close() {
				return false
			}
		}
	}
}

// close consumes the closing bracket of the exhausted container at the top of
// the stack and pops its block.
func (p *Parser) close() bool {
	want := closer(p.stack.top().kind)
	p.skipSpace()
	if p.pos >= p.src.Len() {
		return p.syntaxErrorAt(p.pos, p.pos, "unexpected end of document")
	} else if p.src.At(p.pos) != want {
		return p.unexpected(p.pos, fmt.Sprintf(`"%c"`, want))
	}
	p.pos++
	p.stack.pop()
	return true
}

func closer(kind blockKind) byte {
	if kind == object {
		return '}'
	} else if kind == array {
		return ']'
	}
	return 0
}

func (p *Parser) unexpected(pos int, want string) bool {
	if pos >= p.src.Len() {
		return p.syntaxErrorAt(pos, pos, "unexpected end of document, expected %s", want)
	} else if c := p.src.At(pos); c == 0 {
		return p.syntaxErrorAt(pos, pos+1, "unexpected NUL")
	} else if c >= 0x80 {
		_, n := mem.DecodeRune(p.src.SliceFrom(pos))
		return p.syntaxErrorAt(pos, pos+max(n, 1), "unexpected %q, expected %s",
			p.src.Slice(pos, pos+max(n, 1)).StringCopy(), want)
	} else {
		return p.syntaxErrorAt(pos, pos+1, "unexpected %q, expected %s", c, want)
	}
}

func (p *Parser) syntaxErrorAt(pos, end int, msg string, args ...any) bool {
	return p.fail(SyntaxError, Span{Pos: pos, End: min(end, p.src.Len())}, msg, args...)
}

func (p *Parser) valueErrorf(msg string, args ...any) bool {
	return p.fail(ValueError, p.Span(), msg, args...)
}

// fail records an error of the given kind, unless one is already recorded,
// and returns false. A syntax error halts the parser.
func (p *Parser) fail(kind ErrorKind, span Span, msg string, args ...any) bool {
	if kind == SyntaxError && !p.halt {
		p.halt = true
		p.stack.exhaust()
	}
	if p.err == nil {
		p.err = &Error{
			Kind:     kind,
			Location: locate(p.src, span),
			Message:  fmt.Sprintf(msg, args...),
		}
	}
	return false
}
