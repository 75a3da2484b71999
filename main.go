// Package main implements the entry point for a banked memory console
package main

import (
	"context"
	"errors"
	"os"

	"github.com/artunicore/memoria-ram/internal/cli"
	"github.com/artunicore/memoria-ram/internal/config"
	"github.com/artunicore/memoria-ram/internal/console"
	"github.com/artunicore/memoria-ram/internal/options"
	"github.com/artunicore/memoria-ram/internal/script"
	"github.com/artunicore/memoria-ram/internal/tui"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			script.PrintBanner(logger, opts, version, commit, date)
			if msg := usageErr.Error(); msg != "" {
				logger.Error(msg)
			}
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	if opts.TUI {
		if err := runTUI(opts); err != nil {
			config.CreateLogger(false, false).Fatal(err.Error())
		}
		return
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	script.PrintBanner(logger, opts, version, commit, date)

	files, err := script.GetFilesToProcess(&opts)
	if err != nil {
		logger.Fatal(err.Error())
	}

	for _, file := range files {
		opts.Input = file
		if opts.Batch != "" {
			opts.Output = script.GenerateOutputFilename(file)
		}

		if err := script.ProcessFile(ctx, logger, opts); err != nil {
			// Handle context cancellation (Ctrl+C) gracefully
			if errors.Is(err, context.Canceled) {
				logger.Info("Operation cancelled")
				return
			}
			logger.Error("Running script failed", log.String("file", file), log.Err(err))
		}
	}
}

// runTUI runs the terminal interface. Logging is limited to errors while the
// terminal is taken over.
func runTUI(opts options.Program) error {
	logger := config.CreateLogger(false, true)

	mem, err := config.CreateMemory(logger, opts)
	if err != nil {
		return err
	}
	return tui.New(logger, console.New(logger, mem)).Run()
}
