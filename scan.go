// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonpull

import (
	"unicode/utf8"

	"github.com/creachadair/jsonpull/internal/escape"

	"go4.org/mem"
)

// Character class flags.
const (
	whitespace    = 1 << iota // insignificant whitespace between tokens
	stringElement             // ASCII byte that stands for itself inside a string
	stringMarker              // byte that ends a run of string elements: " or \
)

// charClass maps each byte value to its class flags. NUL and the other
// control characters have no flags.
var charClass = func() (t [256]byte) {
	for _, c := range []byte(" \t\r\n") {
		t[c] |= whitespace
	}
	for c := ' '; c < utf8.RuneSelf; c++ {
		t[c] |= stringElement
	}
	for _, c := range []byte(`"\`) {
		t[c] = stringMarker
	}
	return
}()

// skipWhile returns the first offset at or after pos whose byte has no flags
// in common with mask, or the length of the input.
func (p *Parser) skipWhile(pos int, mask byte) int {
	for pos < p.src.Len() && charClass[p.src.At(pos)]&mask != 0 {
		pos++
	}
	return pos
}

// findFirst returns the first offset at or after pos whose byte has a flag in
// common with mask, or the length of the input if there is none.
func (p *Parser) findFirst(pos int, mask byte) int {
	for pos < p.src.Len() && charClass[p.src.At(pos)]&mask == 0 {
		pos++
	}
	return pos
}

func (p *Parser) skipSpace() { p.pos = p.skipWhile(p.pos, whitespace) }

func (p *Parser) skipDigits(pos int) int {
	for pos < p.src.Len() && isDigit(p.src.At(pos)) {
		pos++
	}
	return pos
}

// scanValue classifies the value beginning at the reader. Scalars are
// validated and consumed in full; for an object or array only the opening
// bracket is consumed.
func (p *Parser) scanValue() bool {
	if p.pos >= p.src.Len() {
		return p.syntaxErrorAt(p.pos, p.pos, "unexpected end of document")
	}
	switch c := p.src.At(p.pos); {
	case c == '"':
		return p.scanString()
	case c == '-' || isDigit(c):
		return p.scanNumber()
	case c == '{' || c == '[':
		p.pos++
		return true
	case c == 't':
		return p.scanLiteral("true")
	case c == 'f':
		return p.scanLiteral("false")
	case c == 'n':
		return p.scanLiteral("null")
	default:
		return p.unexpected(p.pos, "a value")
	}
}

func (p *Parser) scanLiteral(lit string) bool {
	if !mem.HasPrefix(p.src.SliceFrom(p.pos), mem.S(lit)) {
		end := p.skipWhile(p.pos, stringElement)
		return p.syntaxErrorAt(p.pos, max(end, p.pos+1), "invalid literal, expected %q", lit)
	}
	p.pos += len(lit)
	return true
}

// scanNumber validates the JSON number grammar,
//
//	-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?
//
// without computing its value.
func (p *Parser) scanNumber() bool {
	start, pos := p.pos, p.pos
	if p.src.At(pos) == '-' {
		pos++
	}
	if pos >= p.src.Len() || !isDigit(p.src.At(pos)) {
		return p.syntaxErrorAt(start, pos+1, "expected a digit")
	}
	if p.src.At(pos) == '0' {
		pos++
		if pos < p.src.Len() && isDigit(p.src.At(pos)) {
			return p.syntaxErrorAt(start, pos+1, "extra leading zeroes")
		}
	} else {
		pos = p.skipDigits(pos)
	}

	if pos < p.src.Len() && p.src.At(pos) == '.' {
		end := p.skipDigits(pos + 1)
		if end == pos+1 {
			return p.syntaxErrorAt(start, end, "no digits after decimal point")
		}
		pos = end
	}

	if pos < p.src.Len() && (p.src.At(pos) == 'e' || p.src.At(pos) == 'E') {
		pos++
		if pos < p.src.Len() && (p.src.At(pos) == '+' || p.src.At(pos) == '-') {
			pos++
		}
		end := p.skipDigits(pos)
		if end == pos {
			return p.syntaxErrorAt(start, end, "missing exponent digits")
		}
		pos = end
	}
	p.pos = pos
	return true
}

// scanString validates the string beginning at the reader, which must be a
// double quotation mark. The contents are not decoded.
func (p *Parser) scanString() bool {
	start := p.pos
	pos := start + 1
	for {
		pos = p.skipWhile(pos, stringElement)
		if pos >= p.src.Len() {
			return p.syntaxErrorAt(start, pos, "unterminated string")
		}
		switch c := p.src.At(pos); {
		case c == '"':
			p.pos = pos + 1
			return true
		case c == '\\':
			if pos = p.scanEscape(start, pos); pos < 0 {
				return false
			}
		case c == 0:
			return p.syntaxErrorAt(pos, pos+1, "unexpected NUL in string")
		case c < ' ':
			return p.syntaxErrorAt(pos, pos+1, "disallowed control character %q in string", c)
		default:
			r, n := mem.DecodeRune(p.src.SliceFrom(pos))
			if r == utf8.RuneError && n <= 1 {
				return p.syntaxErrorAt(pos, pos+1, "invalid UTF-8")
			}
			pos += n
		}
	}
}

// scanEscape validates the escape sequence at pos, within the string that
// begins at start. It returns the offset following the escape, or -1 after
// recording a syntax error.
func (p *Parser) scanEscape(start, pos int) int {
	if pos+1 >= p.src.Len() {
		p.syntaxErrorAt(start, p.src.Len(), "unterminated string")
		return -1
	}
	switch c := p.src.At(pos + 1); c {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		return pos + 2
	case 'u':
		hi, err := escape.ParseHex4(p.src.SliceFrom(pos + 2))
		if err != nil {
			p.syntaxErrorAt(pos, min(pos+6, p.src.Len()), "invalid Unicode escape")
			return -1
		}
		switch {
		case hi >= 0xD800 && hi < 0xDC00:
			// A high surrogate must be followed immediately by an escaped low
			// surrogate.
			next := p.src.SliceFrom(pos + 6)
			if next.Len() >= 6 && next.At(0) == '\\' && next.At(1) == 'u' {
				lo, err := escape.ParseHex4(next.SliceFrom(2))
				if err == nil && lo >= 0xDC00 && lo < 0xE000 {
					return pos + 12
				}
			}
			p.syntaxErrorAt(pos, pos+6, "invalid UTF-16 surrogate pair")
			return -1
		case hi >= 0xDC00 && hi < 0xE000:
			p.syntaxErrorAt(pos, pos+6, "invalid UTF-16 surrogate pair")
			return -1
		}
		return pos + 6
	default:
		p.syntaxErrorAt(pos, pos+2, "invalid %q after escape", c)
		return -1
	}
}

// decodeString returns the decoded contents of the validated string that
// begins at offset start.
func (p *Parser) decodeString(start int) string {
	pos, esc := start+1, false
	for {
		pos = p.findFirst(pos, stringMarker)
		if pos >= p.src.Len() || p.src.At(pos) == '"' {
			break
		}
		esc = true
		pos += 2
	}
	body := p.src.Slice(start+1, min(pos, p.src.Len()))
	if !esc {
		return body.StringCopy()
	}
	dec, err := escape.Unquote(body)
	if err != nil {
		return "" // not reached for scanned strings
	}
	return string(dec)
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
