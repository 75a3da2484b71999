package memory

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Translation is a virtual address resolved against the page table.
type Translation struct {
	Virtual  int // virtual address as passed by the caller
	Page     int // page table index governing the address
	Offset   int // low bits of the address, masked by the word size
	Entry    int // bank index stored in the page table, scales the physical address
	Bank     int // bank that is accessed, page mod bank count
	Physical int // address inside the accessed bank
}

// Translator decomposes virtual addresses for a fixed memory geometry.
//
// The offset is masked with the word size while the physical address is scaled
// with the bank size, and the bank that is accessed is selected round robin by
// page index instead of by the page table entry. Both quirks are kept as is,
// callers rely on the resulting address layout.
type Translator struct {
	bankCount  int
	bankSize   int
	offsetMask int
	shift      uint
}

// NewTranslator returns a translator for the given geometry. Bank size and
// word size have to be powers of two.
func NewTranslator(bankCount, bankSize, wordSize int) (*Translator, error) {
	if bankCount < 1 {
		return nil, fmt.Errorf("bank count %d is not positive: %w", bankCount, ErrInvalidConfiguration)
	}
	if !isPowerOfTwo(bankSize) {
		return nil, fmt.Errorf("bank size %d is not a power of two: %w", bankSize, ErrInvalidConfiguration)
	}
	if !isPowerOfTwo(wordSize) {
		return nil, fmt.Errorf("word size %d is not a power of two: %w", wordSize, ErrInvalidConfiguration)
	}

	return &Translator{
		bankCount:  bankCount,
		bankSize:   bankSize,
		offsetMask: wordSize - 1,
		shift:      log2(wordSize) + log2(bankSize),
	}, nil
}

// Shift returns the number of low address bits below the page index.
func (t *Translator) Shift() uint {
	return t.shift
}

// Decompose splits a virtual address into its page index and offset.
func (t *Translator) Decompose(virtual int) (page, offset int) {
	return virtual >> t.shift, virtual & t.offsetMask
}

// Resolve combines a decomposed address with the page table entry of its page.
// The page must be a valid, non negative page table index.
func (t *Translator) Resolve(virtual, page, offset, entry int) Translation {
	return Translation{
		Virtual:  virtual,
		Page:     page,
		Offset:   offset,
		Entry:    entry,
		Bank:     page % t.bankCount,
		Physical: entry*t.bankSize + offset,
	}
}

func isPowerOfTwo[T constraints.Integer](i T) bool {
	return i > 0 && i&(i-1) == 0
}

// log2 returns the number of doublings needed to reach i, the exact binary
// logarithm for powers of two.
func log2[T constraints.Integer](i T) uint {
	var n uint
	for p := T(1); p < i; p += p {
		n++
	}
	return n
}
