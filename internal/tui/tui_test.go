package tui

import (
	"testing"

	"github.com/artunicore/memoria-ram/internal/console"
	"github.com/artunicore/memoria-ram/internal/memory"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func newTestUI(t *testing.T) *UI {
	t.Helper()

	logger := log.NewTestLogger(t)
	mem, err := memory.New(logger, memory.Config{BankCount: 2, BankSize: 1024, WordSize: 16, Pages: 4})
	assert.NoError(t, err)
	return New(logger, console.New(logger, mem))
}

func TestHandleLine(t *testing.T) {
	u := newTestUI(t)

	output, done := u.handleLine("")
	assert.False(t, done)
	assert.Equal(t, "", output)

	output, done = u.handleLine("map 1 0")
	assert.False(t, done)
	assert.Equal(t, "> map 1 0\nMapped virtual page 1 to physical bank 0.\nPage table: -1, 0, (2 unmapped)\n", output)

	output, done = u.handleLine("read x")
	assert.False(t, done)
	assert.Equal(t, "> read x\nUndefined parameter\n", output)

	_, done = u.handleLine("quit")
	assert.True(t, done)
}

func TestPageTable(t *testing.T) {
	u := newTestUI(t)
	assert.Equal(t, "Page table: (4 unmapped)", u.pageTable())

	_, _ = u.handleLine("map 3 1")
	assert.Equal(t, "Page table: -1, -1, -1, 1", u.pageTable())
}
