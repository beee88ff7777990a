// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Program jsonfmt parses JSON files and writes them back out, pretty-printed
// or compacted.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/creachadair/jsonpull"
	"github.com/creachadair/jsonpull/internal/cli"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	compact bool
	ascii   bool
	indent  int
	output  string
	jwcc    bool
	verbose bool

	errFailed = errors.New("some files could not be formatted")
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "jsonfmt [flags] FILE...",
		Short:         "Reformat JSON files",
		Long:          "Parse each FILE (- for standard input) and write it to the output, pretty-printed unless --compact is set.",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCmd,
	}
	rootCmd.Flags().BoolVarP(&compact, "compact", "c", false, "Write compact output without line breaks")
	rootCmd.Flags().BoolVarP(&ascii, "ascii", "a", false, "Escape all non-ASCII characters")
	rootCmd.Flags().IntVarP(&indent, "indent", "i", 2, "Indentation width in spaces")
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "Write output to this file instead of stdout")
	rootCmd.Flags().BoolVar(&jwcc, "jwcc", false, "Accept comments and trailing commas in the input")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func runCmd(cmd *cobra.Command, args []string) error {
	log := cli.NewLogger(verbose)
	defer log.Sync()

	opt := cli.Options{JWCC: jwcc, Indent: indent, Log: log}
	if !compact {
		opt.Flags |= jsonpull.Pretty
	}
	if ascii {
		opt.Flags |= jsonpull.ASCII
	}

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	failed := false
	for _, path := range args {
		if err := cli.FormatFile(w, path, opt); err != nil {
			fmt.Fprintln(os.Stderr, err)
			log.Debug("format failed", zap.String("file", path), zap.Error(err))
			failed = true
		}
	}
	if failed {
		return errFailed
	}
	return nil
}
