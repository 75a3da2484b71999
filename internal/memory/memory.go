// Package memory provides a banked random access memory behind a flat page table.
package memory

import (
	"fmt"
	"math"

	"github.com/retroenv/retrogolib/log"
)

// MaxBankWords is the largest number of words a single bank can hold.
const MaxBankWords = 1 << 28

// Config defines the fixed geometry of a memory.
type Config struct {
	BankCount int // number of physical banks
	BankSize  int // words per bank row, power of two
	WordSize  int // address bits consumed per word, power of two
	Pages     int // page table entries, DefaultPageTableSize if 0
}

// Memory translates virtual addresses through a page table and dispatches the
// access to one of its banks.
type Memory struct {
	logger *log.Logger
	cfg    Config

	translator *Translator
	table      *PageTable
	banks      []*Bank
}

// New creates a memory with all banks allocated and all pages unmapped.
func New(logger *log.Logger, cfg Config) (*Memory, error) {
	translator, err := NewTranslator(cfg.BankCount, cfg.BankSize, cfg.WordSize)
	if err != nil {
		return nil, err
	}

	if cfg.Pages == 0 {
		cfg.Pages = DefaultPageTableSize
	}
	if cfg.Pages < 0 {
		return nil, fmt.Errorf("page table size %d is negative: %w", cfg.Pages, ErrInvalidConfiguration)
	}

	// physical addresses are scaled by the page table entry, every bank holds
	// one row per bank index to keep them addressable
	if cfg.BankSize > math.MaxInt/cfg.BankCount || cfg.BankCount*cfg.BankSize > MaxBankWords {
		return nil, fmt.Errorf("%d banks of %d words exceed the bank limit of %d words: %w",
			cfg.BankCount, cfg.BankSize, MaxBankWords, ErrInvalidConfiguration)
	}
	span := cfg.BankCount * cfg.BankSize
	banks := make([]*Bank, cfg.BankCount)
	for i := range banks {
		banks[i] = NewBank(span)
	}

	m := &Memory{
		logger:     logger,
		cfg:        cfg,
		translator: translator,
		table:      NewPageTable(cfg.Pages, cfg.BankCount),
		banks:      banks,
	}

	logger.Debug("Memory initialized",
		log.Int("banks", cfg.BankCount),
		log.Int("bank_size", cfg.BankSize),
		log.Int("word_size", cfg.WordSize),
		log.Int("pages", cfg.Pages),
		log.Int("shift", int(translator.Shift())))

	return m, nil
}

// Config returns the geometry of the memory.
func (m *Memory) Config() Config {
	return m.cfg
}

// Shift returns the number of address bits below the page index.
func (m *Memory) Shift() uint {
	return m.translator.Shift()
}

// Translate resolves a virtual address without accessing any bank.
func (m *Memory) Translate(virtual int) (Translation, error) {
	m.table.mu.RLock()
	defer m.table.mu.RUnlock()
	return m.translateLocked(virtual)
}

// Read returns the word stored at the virtual address.
func (m *Memory) Read(virtual int) (int, error) {
	value, _, err := m.ReadTranslated(virtual)
	return value, err
}

// ReadTranslated returns the word stored at the virtual address together with
// the translation that was used to access it.
func (m *Memory) ReadTranslated(virtual int) (int, Translation, error) {
	m.table.mu.RLock()
	defer m.table.mu.RUnlock()

	tr, err := m.translateLocked(virtual)
	if err != nil {
		return 0, Translation{}, fmt.Errorf("reading virtual address %d: %w", virtual, err)
	}

	value, err := m.banks[tr.Bank].Read(tr.Physical)
	if err != nil {
		return 0, Translation{}, fmt.Errorf("reading virtual address %d from bank %d: %w", virtual, tr.Bank, err)
	}

	m.logger.Debug("Memory read",
		log.Int("virtual", virtual),
		log.Int("bank", tr.Bank),
		log.Int("physical", tr.Physical),
		log.Int("value", value))
	return value, tr, nil
}

// Write stores value at the virtual address.
func (m *Memory) Write(virtual, value int) error {
	_, err := m.WriteTranslated(virtual, value)
	return err
}

// WriteTranslated stores value at the virtual address and returns the
// translation that was used to access it.
func (m *Memory) WriteTranslated(virtual, value int) (Translation, error) {
	m.table.mu.RLock()
	defer m.table.mu.RUnlock()

	tr, err := m.translateLocked(virtual)
	if err != nil {
		return Translation{}, fmt.Errorf("writing virtual address %d: %w", virtual, err)
	}

	if err := m.banks[tr.Bank].Write(tr.Physical, value); err != nil {
		return Translation{}, fmt.Errorf("writing virtual address %d to bank %d: %w", virtual, tr.Bank, err)
	}

	m.logger.Debug("Memory write",
		log.Int("virtual", virtual),
		log.Int("bank", tr.Bank),
		log.Int("physical", tr.Physical),
		log.Int("value", value))
	return tr, nil
}

// MapPage points the virtual page to the physical bank. Mapping to Unmapped
// clears the page.
func (m *Memory) MapPage(page, bank int) error {
	if err := m.table.Map(page, bank); err != nil {
		return fmt.Errorf("mapping page %d to bank %d: %w", page, bank, err)
	}

	m.logger.Debug("Page mapped",
		log.Int("page", page),
		log.Int("bank", bank))
	return nil
}

// DumpPageTable returns a copy of the page table entries.
func (m *Memory) DumpPageTable() []int {
	return m.table.Entries()
}

// MappedPages returns the number of mapped page table entries.
func (m *Memory) MappedPages() int {
	return m.table.Mapped()
}

func (m *Memory) translateLocked(virtual int) (Translation, error) {
	page, offset := m.translator.Decompose(virtual)
	entry, err := m.table.lookupLocked(page)
	if err != nil {
		return Translation{}, err
	}
	return m.translator.Resolve(virtual, page, offset, entry), nil
}
