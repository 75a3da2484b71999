package memory

import (
	"fmt"
	"sync"
)

// Bank is a fixed size block of words. Access is serialized by a per bank lock.
type Bank struct {
	mu    sync.Mutex
	words []int
}

// NewBank returns a zero initialized bank of the given number of words.
func NewBank(size int) *Bank {
	return &Bank{
		words: make([]int, size),
	}
}

// Size returns the number of words of the bank.
func (b *Bank) Size() int {
	return len(b.words)
}

// Read returns the word stored at offset.
func (b *Bank) Read(offset int) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkOffset(offset); err != nil {
		return 0, err
	}
	return b.words[offset], nil
}

// Write overwrites the word stored at offset.
func (b *Bank) Write(offset, value int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkOffset(offset); err != nil {
		return err
	}
	b.words[offset] = value
	return nil
}

func (b *Bank) checkOffset(offset int) error {
	if offset < 0 || offset >= len(b.words) {
		return fmt.Errorf("offset %d outside bank of %d words: %w", offset, len(b.words), ErrOutOfRange)
	}
	return nil
}
