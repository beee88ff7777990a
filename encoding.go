// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonpull

import (
	"fmt"

	"github.com/creachadair/jsonpull/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added. Non-ASCII characters are copied as UTF-8.
func Quote(src string) string { return string(escape.Quote(mem.S(src), false)) }

// QuoteASCII encodes src as a JSON string value like Quote, but escapes all
// non-ASCII characters so the result is plain ASCII.
func QuoteASCII(src string) string { return string(escape.Quote(mem.S(src), true)) }

// Unquote decodes a JSON string value. The input must be a complete and valid
// JSON string, optionally surrounded by whitespace. Double quotation marks are
// removed, and escape sequences are replaced with their unescaped equivalents.
func Unquote(src string) (string, error) {
	p := NewParserString(src)
	if n := p.Node(); n != String {
		if err := p.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("input is %s, not a string", n)
	}
	s := p.StringValue()
	p.Next()
	if err := p.Err(); err != nil {
		return "", err
	}
	return s, nil
}

// Valid reports whether data contains a single valid JSON document. It
// returns nil if so; otherwise it returns the *Error describing the first
// problem found.
func Valid(data []byte) error {
	p := NewParser(data)
	p.Next()
	return p.Err()
}
