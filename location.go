// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonpull

import (
	"fmt"

	"go4.org/mem"
)

// A Span describes a contiguous span of a source input.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

func (s Span) String() string { return fmt.Sprintf("%d-%d", s.Pos, s.End) }

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// A Location describes the complete location of a range of source text,
// including line and column offsets.
type Location struct {
	Span
	First, Last LineCol
}

// String renders the location as "line:col-col" for a span within a single
// line, otherwise as "line:col-line:col".
func (loc Location) String() string {
	if loc.First.Line == loc.Last.Line {
		return fmt.Sprintf("%s-%d", loc.First, loc.Last.Column)
	}
	return fmt.Sprintf("%s-%s", loc.First, loc.Last)
}

// locate computes the full location of span in src.
func locate(src mem.RO, span Span) Location {
	loc := Location{Span: span, First: LineCol{Line: 1}}
	line, col := 1, 0
	for i := 0; i < span.End && i < src.Len(); i++ {
		if i == span.Pos {
			loc.First = LineCol{Line: line, Column: col}
		}
		if src.At(i) == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	if span.Pos >= span.End || span.Pos >= src.Len() {
		loc.First = LineCol{Line: line, Column: col}
	}
	loc.Last = LineCol{Line: line, Column: col}
	return loc
}
