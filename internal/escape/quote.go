// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// Quote encodes a string as a quoted JSON string. If ascii is true, all
// non-ASCII code points are written as \uXXXX escapes, using a UTF-16
// surrogate pair for code points outside the Basic Multilingual Plane.
func Quote(src mem.RO, ascii bool) []byte {
	return AppendQuote(make([]byte, 0, src.Len()+2), src, ascii)
}

// AppendQuote behaves as Quote, but appends the encoding to buf.
func AppendQuote(buf []byte, src mem.RO, ascii bool) []byte {
	putByte := func(bs ...byte) { buf = append(buf, bs...) }
	putU := func(r rune) {
		putByte('\\', 'u',
			hexDigit[(r>>12)&15], hexDigit[(r>>8)&15],
			hexDigit[(r>>4)&15], hexDigit[r&15])
	}

	putByte('"')
	for src.Len() != 0 {
		// Copy runs of bytes that need no escaping in one step.
		n := 0
		for n < src.Len() {
			if b := src.At(n); b < ' ' || b == '"' || b == '\\' || b >= utf8.RuneSelf {
				break
			}
			n++
		}
		if n != 0 {
			buf = mem.Append(buf, src.SliceTo(n))
			src = src.SliceFrom(n)
			continue
		}

		r, n := mem.DecodeRune(src)
		src = src.SliceFrom(n)
		switch {
		case r < ' ':
			if b := controlEsc[r]; b != 0 {
				putByte('\\', b)
			} else {
				putU(r)
			}
		case r == '\\' || r == '"':
			putByte('\\', byte(r))
		case !ascii:
			buf = utf8.AppendRune(buf, r) // invalid input is replaced by U+FFFD
		case r > 0xFFFF:
			hi, lo := utf16.EncodeRune(r)
			putU(hi)
			putU(lo)
		default:
			putU(r)
		}
	}
	putByte('"')
	return buf
}
