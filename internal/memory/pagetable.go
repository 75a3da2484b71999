package memory

import (
	"fmt"
	"sync"
)

// Unmapped marks a page table entry that does not point to any bank.
const Unmapped = -1

// DefaultPageTableSize is the number of page table entries used when the
// configuration does not set one.
const DefaultPageTableSize = 1024

// PageTable maps virtual page numbers to physical bank indexes.
type PageTable struct {
	mu        sync.RWMutex
	entries   []int
	bankCount int
}

// NewPageTable returns a page table of the given length with all entries unmapped.
// Mappings are validated against bankCount.
func NewPageTable(length, bankCount int) *PageTable {
	entries := make([]int, length)
	for i := range entries {
		entries[i] = Unmapped
	}
	return &PageTable{
		entries:   entries,
		bankCount: bankCount,
	}
}

// Len returns the number of entries of the page table.
func (p *PageTable) Len() int {
	return len(p.entries)
}

// Lookup returns the bank index that the virtual page is mapped to.
func (p *PageTable) Lookup(page int) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lookupLocked(page)
}

func (p *PageTable) lookupLocked(page int) (int, error) {
	if page < 0 || page >= len(p.entries) {
		return 0, fmt.Errorf("page %d not in table of %d entries: %w", page, len(p.entries), ErrPageIndexOutOfRange)
	}

	bank := p.entries[page]
	if bank == Unmapped {
		return 0, fmt.Errorf("page %d: %w", page, ErrUnmappedPage)
	}
	return bank, nil
}

// Map points the virtual page to the physical bank. Passing Unmapped as bank
// clears the entry.
func (p *PageTable) Map(page, bank int) error {
	if page < 0 || page >= len(p.entries) {
		return fmt.Errorf("page %d not in table of %d entries: %w", page, len(p.entries), ErrInvalidMapping)
	}
	if bank != Unmapped && (bank < 0 || bank >= p.bankCount) {
		return fmt.Errorf("bank %d not in range 0-%d: %w", bank, p.bankCount-1, ErrInvalidMapping)
	}

	p.mu.Lock()
	p.entries[page] = bank
	p.mu.Unlock()
	return nil
}

// Entries returns a copy of all page table entries.
func (p *PageTable) Entries() []int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	entries := make([]int, len(p.entries))
	copy(entries, p.entries)
	return entries
}

// Mapped returns the number of mapped entries.
func (p *PageTable) Mapped() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var n int
	for _, bank := range p.entries {
		if bank != Unmapped {
			n++
		}
	}
	return n
}
