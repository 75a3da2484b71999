package memory

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestNewTranslator(t *testing.T) {
	tests := []struct {
		name      string
		bankCount int
		bankSize  int
		wordSize  int
		wantErr   bool
		wantShift uint
	}{
		{"default geometry", 2, 1024, 16, false, 14},
		{"single word", 1, 1, 1, false, 0},
		{"bank size not power of two", 2, 1000, 16, true, 0},
		{"word size not power of two", 2, 1024, 12, true, 0},
		{"zero bank size", 2, 0, 16, true, 0},
		{"zero word size", 2, 1024, 0, true, 0},
		{"no banks", 0, 1024, 16, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := NewTranslator(tt.bankCount, tt.bankSize, tt.wordSize)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidConfiguration))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantShift, tr.Shift())
		})
	}
}

func TestTranslatorDecompose(t *testing.T) {
	tr, err := NewTranslator(2, 1024, 16)
	assert.NoError(t, err)

	tests := []struct {
		virtual    int
		wantPage   int
		wantOffset int
	}{
		{0, 0, 0},
		{5, 0, 5},
		{2000, 0, 0},
		{1<<14 + 7, 1, 7},
		{3<<14 | 0x1f, 3, 0xf},
		{-1, -1, 0xf},
	}

	for _, tt := range tests {
		page, offset := tr.Decompose(tt.virtual)
		assert.Equal(t, tt.wantPage, page)
		assert.Equal(t, tt.wantOffset, offset)
	}
}

func TestTranslatorResolve(t *testing.T) {
	tr, err := NewTranslator(2, 1024, 16)
	assert.NoError(t, err)

	got := tr.Resolve(5, 0, 5, 1)
	assert.Equal(t, Translation{Virtual: 5, Page: 0, Offset: 5, Entry: 1, Bank: 0, Physical: 1029}, got)

	// the accessed bank follows the page index, not the page table entry
	got = tr.Resolve(3<<14, 3, 0, 0)
	assert.Equal(t, 1, got.Bank)
	assert.Equal(t, 0, got.Physical)
}

func TestLog2(t *testing.T) {
	tests := []struct {
		input    int
		expected uint
	}{
		{1, 0},
		{2, 1},
		{4, 2},
		{16, 4},
		{1024, 10},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, log2(tt.input))
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	assert.True(t, isPowerOfTwo(1))
	assert.True(t, isPowerOfTwo(uint16(0x8000)))
	assert.False(t, isPowerOfTwo(0))
	assert.False(t, isPowerOfTwo(-4))
	assert.False(t, isPowerOfTwo(12))
}
