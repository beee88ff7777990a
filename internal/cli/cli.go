// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package cli implements the shared plumbing of the jsonfmt and jsonvalidate
// command-line tools.
package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/creachadair/jsonpull"
	"github.com/tailscale/hujson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Stdin is the file name denoting standard input.
const Stdin = "-"

// Options configure reading, formatting, and checking input files.
type Options struct {
	JWCC   bool           // accept comments and trailing commas
	Flags  jsonpull.Flags // printer flags for Format
	Indent int            // indentation width for Format
	Jobs   int            // maximum concurrent checks, 0 means no limit
	Log    *zap.Logger    // if nil, logging is discarded
}

func (o Options) log() *zap.Logger {
	if o.Log == nil {
		return zap.NewNop()
	}
	return o.Log
}

// A FileError reports a failure to read or parse an input file.
type FileError struct {
	URI  string
	Open bool // the file could not be read
	Err  error
}

// Error satisfies the error interface. A parse error is reported as
//
//	URI:LINE:COL: message
//	URI:LINE:COL-LINE:COL: message
//
// with 1-based lines and columns.
func (f *FileError) Error() string {
	if f.Open {
		return fmt.Sprintf("%s: error opening file: %v", f.URI, f.Err)
	}
	var perr *jsonpull.Error
	if errors.As(f.Err, &perr) {
		return fmt.Sprintf("%s:%s: %s", f.URI, position(perr.Location), perr.Message)
	}
	return fmt.Sprintf("%s: %v", f.URI, f.Err)
}

// Unwrap supports error wrapping.
func (f *FileError) Unwrap() error { return f.Err }

// position renders loc with 1-based columns. A span of at most one byte is
// rendered as a single position.
func position(loc jsonpull.Location) string {
	first := fmt.Sprintf("%d:%d", loc.First.Line, loc.First.Column+1)
	if loc.End-loc.Pos <= 1 {
		return first
	}
	return fmt.Sprintf("%s-%d:%d", first, loc.Last.Line, loc.Last.Column)
}

// URI returns the URI naming path in diagnostics.
func URI(path string) string {
	if path == Stdin {
		return "<stdin>"
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
}

// ReadInput reads the contents of path, or of standard input if path is
// Stdin. A leading byte order mark selects UTF-8 or UTF-16 decoding and is
// removed; otherwise the contents are returned unchanged. If opt.JWCC is true,
// comments and trailing commas are removed.
func ReadInput(path string, opt Options) ([]byte, error) {
	var r io.Reader = os.Stdin
	if path != Stdin {
		f, err := os.Open(path)
		if err != nil {
			return nil, &FileError{URI: URI(path), Open: true, Err: err}
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(transform.NewReader(r, unicode.BOMOverride(encoding.Nop.NewDecoder())))
	if err != nil {
		return nil, &FileError{URI: URI(path), Open: true, Err: err}
	}
	opt.log().Debug("read input", zap.String("file", path), zap.Int("bytes", len(data)))
	if opt.JWCC {
		std, err := hujson.Standardize(data)
		if err != nil {
			return nil, &FileError{URI: URI(path), Err: err}
		}
		data = std
	}
	return data, nil
}

// Format writes the document in data to w, formatted according to opt, and
// terminated by a newline.
func Format(w io.Writer, data []byte, opt Options) error {
	var buf bytes.Buffer
	pr := jsonpull.NewWriterPrinter(&buf)
	pr.SetFlags(opt.Flags)
	pr.SetIndent(opt.Indent)

	p := jsonpull.NewParser(data)
	if err := jsonpull.Copy(pr, p); err != nil {
		return err
	}
	p.Next() // check for trailing data
	if err := p.Err(); err != nil {
		return err
	}
	pr.Close()
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

// FormatFile reads path and writes its formatted contents to w.
func FormatFile(w io.Writer, path string, opt Options) error {
	data, err := ReadInput(path, opt)
	if err != nil {
		return err
	}
	if err := Format(w, data, opt); err != nil {
		var perr *jsonpull.Error
		if errors.As(err, &perr) {
			return &FileError{URI: URI(path), Err: err}
		}
		return err
	}
	opt.log().Debug("formatted", zap.String("file", path))
	return nil
}

// CheckFile reads path and reports whether it contains a valid document.
func CheckFile(path string, opt Options) error {
	data, err := ReadInput(path, opt)
	if err != nil {
		return err
	}
	if err := jsonpull.Valid(data); err != nil {
		return &FileError{URI: URI(path), Err: err}
	}
	opt.log().Debug("valid", zap.String("file", path))
	return nil
}

// Check runs CheckFile concurrently for each of paths and returns the errors
// in the order of paths. The result has nil entries for valid files.
func Check(ctx context.Context, paths []string, opt Options) []error {
	errs := make([]error, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if opt.Jobs > 0 {
		g.SetLimit(opt.Jobs)
	}
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			errs[i] = CheckFile(path, opt)
			return nil
		})
	}
	g.Wait()
	return errs
}

// NewLogger returns a logger writing human-readable records to standard
// error. Debug records are included only if verbose is true.
func NewLogger(verbose bool) *zap.Logger {
	return newLogger(os.Stderr, verbose)
}
