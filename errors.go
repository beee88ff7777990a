// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonpull

import "fmt"

// ErrorKind classifies the errors reported by a Parser.
type ErrorKind int

// Constants defining the valid ErrorKind values.
const (
	SyntaxError ErrorKind = iota + 1 // the input is not valid JSON
	ValueError                       // a valid value was used as the wrong type
	SchemaError                      // the document does not have the expected structure
)

var kindStr = [...]string{
	SyntaxError: "syntax error",
	ValueError:  "value error",
	SchemaError: "schema error",
}

func (k ErrorKind) String() string {
	if k <= 0 || int(k) >= len(kindStr) {
		return "unknown error"
	}
	return kindStr[k]
}

// Error is the concrete type of errors reported by a Parser.
type Error struct {
	Kind     ErrorKind
	Location Location
	Message  string
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("at %s: %s: %s", e.Location, e.Kind, e.Message)
}

// Is reports whether target is an *Error of the same kind as e. This allows
// the sentinels ErrSyntax, ErrValue and ErrSchema to be used with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Message == ""
}

// Sentinel errors for use with errors.Is.
var (
	ErrSyntax = &Error{Kind: SyntaxError}
	ErrValue  = &Error{Kind: ValueError}
	ErrSchema = &Error{Kind: SchemaError}
)
