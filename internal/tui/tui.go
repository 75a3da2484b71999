// Package tui implements an interactive terminal interface for a console session.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/artunicore/memoria-ram/internal/console"
	"github.com/jroimartin/gocui"
	"github.com/retroenv/retrogolib/log"
)

const (
	outputView    = "output"
	pageTableView = "pagetable"
	inputView     = "input"
)

// UI shows the results of a session above an input line, with the page table
// in between.
type UI struct {
	logger  *log.Logger
	session *console.Session
}

// New returns a terminal interface for the session.
func New(logger *log.Logger, session *console.Session) *UI {
	return &UI{
		logger:  logger,
		session: session,
	}
}

// Run takes over the terminal until the user quits.
func (u *UI) Run() error {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return fmt.Errorf("creating gui: %w", err)
	}
	defer g.Close()

	g.Cursor = true
	g.SetManagerFunc(u.layout)

	if err := g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quit); err != nil {
		return fmt.Errorf("setting key binding: %w", err)
	}
	if err := g.SetKeybinding(inputView, gocui.KeyEnter, gocui.ModNone, u.submit); err != nil {
		return fmt.Errorf("setting key binding: %w", err)
	}

	if err := g.MainLoop(); err != nil && !errors.Is(err, gocui.ErrQuit) {
		return fmt.Errorf("running gui: %w", err)
	}
	return nil
}

// layout has the output on top, the page table below and the input line at the bottom.
func (u *UI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if v, err := g.SetView(outputView, 0, 0, maxX-1, maxY-8); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Title = "Memory"
		v.Autoscroll = true
		v.Wrap = true
		fmt.Fprintln(v, "Type help for a list of commands, Ctrl+C to quit.")
	}

	if v, err := g.SetView(pageTableView, 0, maxY-7, maxX-1, maxY-4); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Title = "Page table"
		v.Wrap = true
		fmt.Fprint(v, u.pageTable())
	}

	if v, err := g.SetView(inputView, 0, maxY-3, maxX-1, maxY-1); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Title = "Command"
		v.Editable = true
		if _, err := g.SetCurrentView(inputView); err != nil {
			return err
		}
	}
	return nil
}

// submit executes the content of the input line.
func (u *UI) submit(g *gocui.Gui, v *gocui.View) error {
	line := strings.TrimSpace(v.Buffer())
	v.Clear()
	if err := v.SetCursor(0, 0); err != nil {
		return err
	}
	if err := v.SetOrigin(0, 0); err != nil {
		return err
	}

	output, done := u.handleLine(line)
	if done {
		return gocui.ErrQuit
	}

	out, err := g.View(outputView)
	if err != nil {
		return err
	}
	fmt.Fprint(out, output)

	table, err := g.View(pageTableView)
	if err != nil {
		return err
	}
	table.Clear()
	fmt.Fprint(table, u.pageTable())
	return nil
}

// handleLine executes a command and returns the text to append to the output
// view, or whether the session has ended.
func (u *UI) handleLine(line string) (string, bool) {
	if line == "" {
		return "", false
	}

	result, err := u.session.Execute(line)
	if errors.Is(err, console.ErrQuit) {
		return "", true
	}
	if err != nil {
		u.logger.Debug("Command failed", log.String("command", line), log.Err(err))
	}

	output := "> " + line + "\n"
	if result != "" {
		output += result + "\n"
	}
	return output, false
}

func (u *UI) pageTable() string {
	return console.FormatPageTable(u.session.Memory().DumpPageTable())
}

func quit(_ *gocui.Gui, _ *gocui.View) error {
	return gocui.ErrQuit
}
