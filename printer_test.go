// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonpull_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/creachadair/jsonpull"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
	"github.com/valyala/fastjson"
)

// printSample writes {"a":[1,2],"b":{},"c":"x\ty","d":[true,null]} to w.
func printSample(w *jsonpull.Printer) {
	w.StartObject("")
	w.StartArray("a")
	w.AddNumber("", 1)
	w.AddNumber("", 2)
	w.End()
	w.StartObject("b")
	w.End()
	w.AddString("c", "x\ty")
	w.StartArray("d")
	w.AddBool("", true)
	w.AddNull("")
	w.End()
	w.End()
}

func TestPrinter(t *testing.T) {
	tests := []struct {
		name   string
		flags  jsonpull.Flags
		indent int
		want   string
	}{
		{"Compact", 0, 2, `{"a":[1,2],"b":{},"c":"x\ty","d":[true,null]}`},
		{"Pretty", jsonpull.Pretty, 2, `{
  "a": [
    1,
    2
  ],
  "b": {},
  "c": "x\ty",
  "d": [
    true,
    null
  ]
}`},
		{"Indent4", jsonpull.Pretty, 4, `{
    "a": [
        1,
        2
    ],
    "b": {},
    "c": "x\ty",
    "d": [
        true,
        null
    ]
}`},
		{"Indent0", jsonpull.Pretty, 0, `{
"a": [
1,
2
],
"b": {},
"c": "x\ty",
"d": [
true,
null
]
}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var sb strings.Builder
			w := jsonpull.NewWriterPrinter(&sb)
			w.SetFlags(tc.flags)
			w.SetIndent(tc.indent)
			printSample(w)
			w.Close()

			if diff := cmp.Diff(tc.want, sb.String()); diff != "" {
				t.Errorf("Output (-want, +got):\n%s", diff)
			}
			if err := fastjson.Validate(sb.String()); err != nil {
				t.Errorf("Output is not valid JSON: %v", err)
			}
			if w.Depth() != 0 {
				t.Errorf("Depth: got %d, want 0", w.Depth())
			}
		})
	}
}

func TestPrinter_scalars(t *testing.T) {
	tests := []struct {
		name  string
		flags jsonpull.Flags
		print func(*jsonpull.Printer)
		want  string
	}{
		{"True", 0, func(w *jsonpull.Printer) { w.AddBool("", true) }, `true`},
		{"False", 0, func(w *jsonpull.Printer) { w.AddBool("", false) }, `false`},
		{"Null", 0, func(w *jsonpull.Printer) { w.AddNull("") }, `null`},
		{"Zero", 0, func(w *jsonpull.Printer) { w.AddNumber("", 0) }, `0`},
		{"Negative", 0, func(w *jsonpull.Printer) { w.AddNumber("", -2.5) }, `-2.5`},
		{"NaN", 0, func(w *jsonpull.Printer) { w.AddNumber("", math.NaN()) }, `null`},
		{"Inf", 0, func(w *jsonpull.Printer) { w.AddNumber("", math.Inf(-1)) }, `null`},
		{"EmptyString", 0, func(w *jsonpull.Printer) { w.AddString("", "") }, `""`},
		{"String", 0, func(w *jsonpull.Printer) { w.AddString("", "a\"b\\c\x01é") }, `"a\"b\\c\u0001é"`},
		{"ASCII", jsonpull.ASCII, func(w *jsonpull.Printer) { w.AddString("", "é😀") }, `"\u00e9\ud83d\ude00"`},
		{"PrettyScalar", jsonpull.Pretty, func(w *jsonpull.Printer) { w.AddNumber("", 17) }, `17`},
		{"EmptyObject", jsonpull.Pretty, func(w *jsonpull.Printer) {
			w.StartObject("")
			w.End()
		}, `{}`},
		{"EmptyArray", jsonpull.Pretty, func(w *jsonpull.Printer) {
			w.StartArray("")
			w.End()
		}, `[]`},
		{"EmptyName", 0, func(w *jsonpull.Printer) {
			w.StartObject("")
			w.AddNull("")
			w.End()
		}, `{"":null}`},
		{"ASCIIName", jsonpull.ASCII | jsonpull.Pretty, func(w *jsonpull.Printer) {
			w.StartObject("")
			w.AddNumber("ü", 1)
			w.End()
		}, "{\n  \"\\u00fc\": 1\n}"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var sb strings.Builder
			w := jsonpull.NewWriterPrinter(&sb)
			w.SetFlags(tc.flags)
			if got := w.Flags(); got != tc.flags {
				t.Errorf("Flags: got %v, want %v", got, tc.flags)
			}
			tc.print(w)
			w.Close()
			if got := sb.String(); got != tc.want {
				t.Errorf("Output: got %#q, want %#q", got, tc.want)
			}
		})
	}
}

func TestPrinter_sink(t *testing.T) {
	var chunks []string
	var done int
	w := jsonpull.NewPrinter(func(p *jsonpull.Printer, chunk string) {
		if p.Depth() > 2 {
			t.Errorf("Sink: unexpected depth %d", p.Depth())
		}
		chunks = append(chunks, chunk)
	}, func() { done++ })

	w.SetFlags(jsonpull.Pretty)
	w.StartArray("")
	w.AddNumber("", 1)
	w.StartObject("")
	w.AddString("k", "v")
	w.End()
	w.End()
	w.Close()
	w.Close()

	want := []string{"[", "\n  1", ",\n  {", "\n    \"k\": \"v\"", "\n  }", "\n]"}
	if diff := cmp.Diff(want, chunks); diff != "" {
		t.Errorf("Chunks (-want, +got):\n%s", diff)
	}
	if done != 1 {
		t.Errorf("Done called %d times, want 1", done)
	}
}

func TestPrinter_panics(t *testing.T) {
	newPrinter := func() *jsonpull.Printer {
		return jsonpull.NewPrinter(func(*jsonpull.Printer, string) {}, nil)
	}

	t.Run("EndAtToplevel", func(t *testing.T) {
		w := newPrinter()
		mtest.MustPanic(t, func() { w.End() })
	})
	t.Run("ExtraEnd", func(t *testing.T) {
		w := newPrinter()
		w.StartArray("")
		w.End()
		mtest.MustPanic(t, func() { w.End() })
	})
	t.Run("MultipleToplevel", func(t *testing.T) {
		w := newPrinter()
		w.AddNull("")
		mtest.MustPanic(t, func() { w.AddBool("", true) })
	})
	t.Run("NameAtToplevel", func(t *testing.T) {
		w := newPrinter()
		mtest.MustPanic(t, func() { w.AddNumber("x", 1) })
	})
	t.Run("NameInArray", func(t *testing.T) {
		w := newPrinter()
		w.StartArray("")
		mtest.MustPanic(t, func() { w.StartObject("x") })
	})
	t.Run("CloseOpen", func(t *testing.T) {
		w := newPrinter()
		w.StartObject("")
		mtest.MustPanic(t, func() { w.Close() })
	})
}

type failWriter struct{ n int }

var errWrite = errors.New("write failed")

func (f *failWriter) Write(data []byte) (int, error) {
	if f.n == 0 {
		return 0, errWrite
	}
	f.n--
	return len(data), nil
}

func TestPrinter_writeError(t *testing.T) {
	w := jsonpull.NewWriterPrinter(&failWriter{n: 2})
	printSample(w)
	w.Close()
	if err := w.Err(); !errors.Is(err, errWrite) {
		t.Errorf("Err: got %v, want %v", err, errWrite)
	}
}

func TestPrinter_depth(t *testing.T) {
	const depth = 10000

	var sb strings.Builder
	w := jsonpull.NewWriterPrinter(&sb)
	for range depth {
		w.StartArray("")
	}
	if got := w.Depth(); got != depth {
		t.Errorf("Depth: got %d, want %d", got, depth)
	}
	for range depth {
		w.End()
	}
	w.Close()

	want := strings.Repeat("[", depth) + strings.Repeat("]", depth)
	if sb.String() != want {
		t.Errorf("Output does not match (%d bytes, want %d)", sb.Len(), len(want))
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "-0"},
		{1, "1"},
		{-17, "-17"},
		{0.1, "0.1"},
		{1.5e3, "1500"},
		{123456789, "123456789"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{-1.25e30, "-1.25e+30"},
		{1e-6, "0.000001"},
		{1e-7, "1e-7"},
		{2.5e-10, "2.5e-10"},
		{1e-100, "1e-100"},
		{math.MaxFloat64, "1.7976931348623157e+308"},
		{math.SmallestNonzeroFloat64, "5e-324"},
		{math.NaN(), "null"},
		{math.Inf(1), "null"},
	}
	for _, tc := range tests {
		if got := jsonpull.FormatNumber(tc.input); got != tc.want {
			t.Errorf("FormatNumber(%v): got %q, want %q", tc.input, got, tc.want)
		}
	}
}
