// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/artunicore/memoria-ram/internal/options"
)

// ParseFlags parses command line flags and returns the program options.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	var opts options.Program
	readOptionFlags(flags, &opts)

	if err := flags.Parse(os.Args[1:]); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	args := flags.Args()

	if err := validateArgs(args); err != nil {
		return opts, err
	}
	if len(args) == 1 {
		if opts.Input != "" {
			return opts, &UsageError{flags: flags, msg: "script given as argument and with -i"}
		}
		opts.Input = args[0]
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}
	if err := validateOptionCombinations(opts); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: memoria-ram [options] [script]\n\n")
	if e.flags != nil {
		e.flags.SetOutput(os.Stdout)
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after script, please pass the script as last argument", arg),
			}
		}
	}
	if len(args) > 1 {
		return &UsageError{msg: fmt.Sprintf("expected one script, got %d", len(args))}
	}
	return nil
}

// normalizeOptions validates the memory geometry. The power of two checks
// are left to the memory itself.
func normalizeOptions(opts *options.Program) error {
	if opts.Banks < 1 {
		return fmt.Errorf("number of banks %d is not positive", opts.Banks)
	}
	if opts.BankSize < 1 {
		return fmt.Errorf("bank size %d is not positive", opts.BankSize)
	}
	if opts.WordSize < 1 {
		return fmt.Errorf("word size %d is not positive", opts.WordSize)
	}
	if opts.Pages < 1 {
		return fmt.Errorf("page table size %d is not positive", opts.Pages)
	}
	return nil
}

// validateOptionCombinations checks for options that exclude each other.
func validateOptionCombinations(opts options.Program) error {
	if opts.Batch != "" && opts.Output != "" {
		return errors.New("-batch writes one .out file per script and can not be combined with -o")
	}
	if !opts.TUI {
		return nil
	}
	if opts.Batch != "" || opts.Input != "" {
		return errors.New("-tui can not be combined with a script or -batch")
	}
	if opts.Output != "" {
		return errors.New("-tui can not be combined with -o")
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the command script to run, stdin if no name given")
	flags.StringVar(&opts.Output, "o", "", "name of the output file, printed on console if no name given")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask and automatically .out file naming, for example *.txt")
	flags.IntVar(&opts.Banks, "banks", options.DefaultBanks, "number of physical memory banks")
	flags.IntVar(&opts.BankSize, "bank-size", options.DefaultBankSize, "words per bank row, has to be a power of two")
	flags.IntVar(&opts.WordSize, "word-size", options.DefaultWordSize, "address bits consumed per word, has to be a power of two")
	flags.IntVar(&opts.Pages, "pages", options.DefaultPages, "number of page table entries")
	flags.BoolVar(&opts.TUI, "tui", false, "start the interactive terminal interface")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
