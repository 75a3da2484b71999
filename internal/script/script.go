// Package script handles running command scripts against a memory.
package script

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/artunicore/memoria-ram/internal/config"
	"github.com/artunicore/memoria-ram/internal/console"
	"github.com/artunicore/memoria-ram/internal/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

const interactivePrompt = "> "

// ProcessFile runs the script named in the options against a new memory.
// An empty input name runs an interactive session on stdin.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program) error {
	mem, err := config.CreateMemory(logger, opts)
	if err != nil {
		return err
	}
	session := console.New(logger, mem)

	reader, err := openInput(opts)
	if err != nil {
		return err
	}
	defer func() { _ = reader.Close() }()

	writer, err := createWriter(opts)
	if err != nil {
		return err
	}

	if opts.Input == "" {
		session.Prompt = interactivePrompt
	} else {
		logger.Info("Running script",
			log.String("file", opts.Input),
			log.String("output", outputName(opts)))
	}

	if err := session.Run(ctx, reader, writer); err != nil {
		_ = writer.Close()
		return fmt.Errorf("running script: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates output filename for a given input file
func GenerateOutputFilename(inputFile string) string {
	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + ".out"
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("memoria-ram", log.String("version", buildinfo.Version(version, commit, date)))
	logger.Info("Memory geometry",
		log.Int("banks", opts.Banks),
		log.Int("bank_size", opts.BankSize),
		log.Int("word_size", opts.WordSize),
		log.Int("pages", opts.Pages))
}

func openInput(opts options.Program) (io.ReadCloser, error) {
	if opts.Input == "" {
		return io.NopCloser(os.Stdin), nil
	}

	file, err := os.Open(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", opts.Input, err)
	}
	return file, nil
}

func createWriter(opts options.Program) (io.WriteCloser, error) {
	if opts.Output == "" {
		return &nopCloser{os.Stdout}, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

func outputName(opts options.Program) string {
	if opts.Output == "" {
		return "stdout"
	}
	return opts.Output
}

// nopCloser wraps an io.Writer to add a no-op Close method
type nopCloser struct {
	io.Writer
}

func (nc *nopCloser) Close() error {
	return nil
}
