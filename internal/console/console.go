// Package console implements a line based command interpreter on top of the memory.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/artunicore/memoria-ram/internal/memory"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// ErrQuit is returned by Execute when the session should end.
var ErrQuit = errors.New("quit")

// ErrUnknownCommand is returned by Execute for commands that are not supported.
var ErrUnknownCommand = errors.New("unknown command")

const undefinedParameter = "Undefined parameter"

const helpText = `Commands:
  write <address> <data>   write data to a virtual address
  read <address>           read from a virtual address
  map <page> <bank>        map a virtual page to a physical bank
  unmap <page>             remove the mapping of a virtual page
  table                    show the page table
  translate <address>      show how a virtual address is translated and
                           whether its word was written in this session
  help                     show this help
  quit                     end the session`

// location identifies a word inside a bank.
type location struct {
	bank     int
	physical int
}

// Session executes commands against a memory.
type Session struct {
	logger *log.Logger
	mem    *memory.Memory

	// Prompt is written before every line that is read by Run.
	Prompt string

	written set.Set[location] // bank words written during this session
}

// New returns a new session for the memory.
func New(logger *log.Logger, mem *memory.Memory) *Session {
	return &Session{
		logger:  logger,
		mem:     mem,
		written: set.New[location](),
	}
}

// Memory returns the memory that the session operates on.
func (s *Session) Memory() *memory.Memory {
	return s.mem
}

// Run reads commands line by line from r and writes the results to w until
// the input ends, a quit command is read or the context is cancelled.
// Failing commands are reported to w and do not end the session.
// Cancellation is noticed while waiting for input, a pending read of r is
// abandoned in that case.
func (s *Session) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	next := make(chan struct{})
	go readLines(r, lines, next, readErr)
	defer close(next)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.Prompt != "" {
			if _, err := io.WriteString(w, s.Prompt); err != nil {
				return fmt.Errorf("writing prompt: %w", err)
			}
		}

		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			if err != nil {
				return fmt.Errorf("reading commands: %w", err)
			}
			return nil
		case line = <-lines:
		}

		output, err := s.Execute(line)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			s.logger.Debug("Command failed", log.String("command", line), log.Err(err))
		}
		if output != "" {
			if _, err := fmt.Fprintln(w, output); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
		}

		select {
		case next <- struct{}{}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// readLines sends one line at a time and waits for next before scanning the
// following one, so that no input is consumed after the session ended.
// The scan result is sent to readErr when the input ends.
func readLines(r io.Reader, lines chan<- string, next <-chan struct{}, readErr chan<- error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-next:
			return
		}
		if _, ok := <-next; !ok {
			return
		}
	}
	readErr <- scanner.Err()
}

// Execute runs a single command line and returns the message to show to the user.
// Blank lines and comments return an empty message.
func (s *Session) Execute(line string) (string, error) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}

	command := strings.ToLower(fields[0])
	args := fields[1:]

	switch command {
	case "write", "w":
		return s.write(args)
	case "read", "r":
		return s.read(args)
	case "map", "m":
		return s.mapPage(args)
	case "unmap":
		return s.unmapPage(args)
	case "table", "t":
		return FormatPageTable(s.mem.DumpPageTable()), nil
	case "translate":
		return s.translate(args)
	case "help", "?":
		return helpText, nil
	case "quit", "exit", "q":
		return "", ErrQuit
	default:
		return fmt.Sprintf("Unknown command '%s', type help for a list of commands.", fields[0]),
			fmt.Errorf("%s: %w", fields[0], ErrUnknownCommand)
	}
}

func (s *Session) write(args []string) (string, error) {
	values, err := parseArgs(args, "write <address> <data>", 2)
	if err != nil {
		return undefinedParameter, err
	}
	address, data := values[0], values[1]

	tr, err := s.mem.WriteTranslated(address, data)
	if err != nil {
		return errorMessage(err), err
	}
	s.written.Add(location{bank: tr.Bank, physical: tr.Physical})
	return fmt.Sprintf("Wrote %d to virtual address %d.", data, address), nil
}

func (s *Session) read(args []string) (string, error) {
	values, err := parseArgs(args, "read <address>", 1)
	if err != nil {
		return undefinedParameter, err
	}
	address := values[0]

	data, tr, err := s.mem.ReadTranslated(address)
	if err != nil {
		return errorMessage(err), err
	}
	if !s.isWritten(tr) {
		s.logger.Debug("Read of a word not written in this session",
			log.Int("address", address),
			log.Int("bank", tr.Bank),
			log.Int("physical", tr.Physical))
	}
	return fmt.Sprintf("Read %d from virtual address %d.", data, address), nil
}

func (s *Session) mapPage(args []string) (string, error) {
	values, err := parseArgs(args, "map <page> <bank>", 2)
	if err != nil {
		return undefinedParameter, err
	}
	page, bank := values[0], values[1]

	if err := s.mem.MapPage(page, bank); err != nil {
		return errorMessage(err), err
	}
	return fmt.Sprintf("Mapped virtual page %d to physical bank %d.\n%s",
		page, bank, FormatPageTable(s.mem.DumpPageTable())), nil
}

func (s *Session) unmapPage(args []string) (string, error) {
	values, err := parseArgs(args, "unmap <page>", 1)
	if err != nil {
		return undefinedParameter, err
	}
	page := values[0]

	if err := s.mem.MapPage(page, memory.Unmapped); err != nil {
		return errorMessage(err), err
	}
	return fmt.Sprintf("Unmapped virtual page %d.", page), nil
}

func (s *Session) translate(args []string) (string, error) {
	values, err := parseArgs(args, "translate <address>", 1)
	if err != nil {
		return undefinedParameter, err
	}

	tr, err := s.mem.Translate(values[0])
	if err != nil {
		return errorMessage(err), err
	}
	state := "not written"
	if s.isWritten(tr) {
		state = "written"
	}
	return fmt.Sprintf("Virtual address %d: page %d, offset %d, entry %d, bank %d, physical %d, %s in this session.",
		tr.Virtual, tr.Page, tr.Offset, tr.Entry, tr.Bank, tr.Physical, state), nil
}

// isWritten reports whether the bank word of the translation was written
// during this session.
func (s *Session) isWritten(tr memory.Translation) bool {
	return s.written.Contains(location{bank: tr.Bank, physical: tr.Physical})
}

// FormatPageTable renders the page table entries. The run of unmapped entries
// at the end of the table is summarized by its length.
func FormatPageTable(entries []int) string {
	last := len(entries) - 1
	for last >= 0 && entries[last] == memory.Unmapped {
		last--
	}

	buf := &strings.Builder{}
	buf.WriteString("Page table:")
	for i := 0; i <= last; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(buf, " %d", entries[i])
	}

	if unmapped := len(entries) - last - 1; unmapped > 0 {
		if last >= 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(buf, " (%d unmapped)", unmapped)
	}
	return buf.String()
}

// parseArgs parses exactly count integer arguments. Decimal, hex (0x), octal
// (0o or leading 0) and binary (0b) notations are accepted.
func parseArgs(args []string, usage string, count int) ([]int, error) {
	if len(args) != count {
		return nil, fmt.Errorf("usage: %s: %w", usage, memory.ErrInvalidInput)
	}

	values := make([]int, count)
	for i, arg := range args {
		value, err := strconv.ParseInt(arg, 0, strconv.IntSize)
		if err != nil {
			return nil, fmt.Errorf("parsing '%s': %w", arg, memory.ErrInvalidInput)
		}
		values[i] = int(value)
	}
	return values, nil
}

func errorMessage(err error) string {
	return "Error: " + err.Error()
}
