// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Program jsonvalidate checks that files contain valid JSON, reporting the
// location of each error found.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/creachadair/jsonpull/internal/cli"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	jwcc    bool
	jobs    int
	verbose bool

	errFailed = errors.New("some files are not valid")
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "jsonvalidate [flags] FILE...",
		Short:         "Check JSON files for errors",
		Long:          "Parse each FILE (- for standard input) and report any syntax errors with their locations.",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCmd,
	}
	rootCmd.Flags().BoolVar(&jwcc, "jwcc", false, "Accept comments and trailing commas in the input")
	rootCmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "Maximum number of files to check concurrently (0 for no limit)")
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

	opt := cli.Options{JWCC: jwcc, Jobs: jobs, Log: log}
	errs := cli.Check(cmd.Context(), args, opt)

	var nbad int
	for i, err := range errs {
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			nbad++
		} else {
			log.Debug("ok", zap.String("file", args[i]))
		}
	}
	if nbad != 0 {
		log.Info("validation failed", zap.Int("files", len(args)), zap.Int("errors", nbad))
		return errFailed
	}
	return nil
}
