// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package cli

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/creachadair/jsonpull"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opt   Options
		want  string
	}{
		{"Pretty", `{"b":[1,2],"a":"x"}`, Options{Flags: jsonpull.Pretty, Indent: 2},
			"{\n  \"b\": [\n    1,\n    2\n  ],\n  \"a\": \"x\"\n}\n"},
		{"Indent", `[true, {}]`, Options{Flags: jsonpull.Pretty, Indent: 3},
			"[\n   true,\n   {}\n]\n"},
		{"Compact", " [ 1 , 2.50 , \"é\" ] ", Options{}, "[1,2.5,\"é\"]\n"},
		{"ASCII", `"é"`, Options{Flags: jsonpull.ASCII}, "\"\\u00e9\"\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Format(&buf, []byte(tc.input), tc.opt))
			assert.Equal(t, tc.want, buf.String())
		})
	}
}

func TestFormat_error(t *testing.T) {
	var buf bytes.Buffer
	err := Format(&buf, []byte(`[1, 2`), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, jsonpull.ErrSyntax)
	assert.Zero(t, buf.Len(), "no output should be written")

	err = Format(&buf, []byte(`[[{"a" 1}]]`), Options{Flags: jsonpull.Pretty})
	assert.ErrorIs(t, err, jsonpull.ErrSyntax)
	assert.Zero(t, buf.Len(), "no output should be written")

	err = Format(&buf, []byte(`{} []`), Options{})
	assert.ErrorIs(t, err, jsonpull.ErrSyntax)
	assert.Zero(t, buf.Len(), "no output should be written")
}

func TestFormatFile(t *testing.T) {
	t.Run("JWCC", func(t *testing.T) {
		path := writeFile(t, "in.jwcc", "// header\n{\"a\": 1, /* x */ \"b\": [2,],}\n")
		var buf bytes.Buffer
		require.NoError(t, FormatFile(&buf, path, Options{JWCC: true}))
		assert.Equal(t, "{\"a\":1,\"b\":[2]}\n", buf.String())

		buf.Reset()
		err := FormatFile(&buf, path, Options{})
		var ferr *FileError
		require.ErrorAs(t, err, &ferr)
		assert.Equal(t, URI(path), ferr.URI)
		assert.False(t, ferr.Open)
	})

	t.Run("BadJWCC", func(t *testing.T) {
		path := writeFile(t, "bad.jwcc", "{\"a\": /* unterminated\n")
		err := FormatFile(&bytes.Buffer{}, path, Options{JWCC: true})
		var ferr *FileError
		require.ErrorAs(t, err, &ferr)
		assert.True(t, strings.HasPrefix(err.Error(), URI(path)+": "), "error: %v", err)
	})
}

func TestCheckFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string // error suffix, or "" for success
	}{
		{"ok", `{"a": [1, 2, {"b": null}]}`, ""},
		{"single", `[1}`, `:1:3: unexpected '}', expected "," or "]"`},
		{"multiline", "1\n2 3", ":2:1-2:3: data at end of document"},
		{"string", "[\n  \"ab\x01\"]", `:2:6: disallowed control character '\x01' in string`},
		{"empty", "", ":1:1: unexpected end of document"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, tc.name+".json", tc.content)
			err := CheckFile(path, Options{})
			if tc.want == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, URI(path)+tc.want, err.Error())
		})
	}
}

func TestCheckFile_missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonesuch.json")
	err := CheckFile(path, Options{})

	var ferr *FileError
	require.ErrorAs(t, err, &ferr)
	assert.True(t, ferr.Open)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.True(t, strings.HasPrefix(err.Error(), URI(path)+": error opening file: "), "error: %v", err)
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i, content := range []string{`[]`, `[`, "", `{"ok": true}`, `nul`} {
		path := filepath.Join(dir, string(rune('a'+i))+".json")
		if i != 2 {
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		}
		paths = append(paths, path)
	}

	errs := Check(context.Background(), paths, Options{Jobs: 2})
	require.Len(t, errs, len(paths))
	assert.NoError(t, errs[0])
	assert.ErrorIs(t, errs[1], jsonpull.ErrSyntax)
	assert.ErrorIs(t, errs[2], fs.ErrNotExist)
	assert.NoError(t, errs[3])
	assert.ErrorIs(t, errs[4], jsonpull.ErrSyntax)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, err := range Check(ctx, paths, Options{}) {
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestReadInput(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"plain", `[1]`, `[1]`},
		{"UTF8BOM", "\xef\xbb\xbf[1]", `[1]`},
		{"UTF16LE", "\xff\xfe[\x001\x00]\x00", `[1]`},
		{"UTF16BE", "\xfe\xff\x00[\x001\x00]", `[1]`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, "in.json", tc.content)
			got, err := ReadInput(path, Options{})
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(got))
		})
	}
}

func TestURI(t *testing.T) {
	assert.Equal(t, "<stdin>", URI(Stdin))

	uri := URI("some file.json")
	assert.True(t, strings.HasPrefix(uri, "file:///"), "uri: %s", uri)
	assert.True(t, strings.HasSuffix(uri, "/some%20file.json"), "uri: %s", uri)
}

func TestFileError(t *testing.T) {
	err := &FileError{URI: "file:///x", Err: errors.New("boom")}
	assert.Equal(t, "file:///x: boom", err.Error())
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, false)
	log.Debug("quiet")
	log.Warn("loud")
	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "WARN\tloud")

	buf.Reset()
	path := writeFile(t, "in.json", `{}`)
	require.NoError(t, CheckFile(path, Options{Log: newLogger(&buf, true)}))
	assert.Contains(t, buf.String(), "DEBUG\tread input")
	assert.Contains(t, buf.String(), "DEBUG\tvalid")
}
