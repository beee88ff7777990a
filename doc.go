// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jsonpull implements a pull parser and a streaming printer for JSON.
//
// # Parsing
//
// The Parser type implements a cursor over a JSON document held in memory.
// Construct a parser from a byte slice or a string. The cursor is initially
// positioned at the toplevel value; Node reports its type, and the Value
// methods decode scalars:
//
//	p := jsonpull.NewParserString(`{"name": "X", "n": 3}`)
//	if p.StartObject() {
//	   for ; p.Node() != jsonpull.None; p.Next() {
//	      name, _ := p.MemberName()
//	      log.Printf("%s: %v", name, p.Node())
//	   }
//	   p.End()
//	}
//	p.Next() // check for trailing data
//	if err := p.Err(); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// Next advances to the next value of the current container, skipping any
// unvisited object or array at the cursor. End skips the rest of the current
// container, so a caller need only visit the values it cares about.
//
// Nesting is tracked on an explicit stack rather than by recursion, so the
// depth of the input is limited only by memory.
//
// # Errors
//
// The parser records the first error it encounters, and callers may check Err
// once at the end rather than after each call. An error has concrete type
// *jsonpull.Error and reports its kind and location:
//
//	Kind        | Meaning
//	----------- | ----------------------------------------------------
//	SyntaxError | the input is not valid JSON; the parser stops
//	ValueError  | a value was requested as the wrong type, or is out of range
//	SchemaError | reported by the caller via SchemaErrorf
//
// After a syntax error, Node reports None and every other method reports a
// zero value. Value and schema errors do not prevent further navigation.
//
// # Printing
//
// The Printer type writes a JSON document one value at a time, delivering the
// text to a sink function or an io.Writer. The Pretty flag enables line breaks
// and indentation; the ASCII flag escapes non-ASCII text:
//
//	w := jsonpull.NewWriterPrinter(os.Stdout)
//	w.SetFlags(jsonpull.Pretty)
//	w.StartObject("")
//	w.AddString("name", "X")
//	w.AddNumber("n", 3)
//	w.End()
//
// To copy a parsed value to a printer, use Copy.
package jsonpull
