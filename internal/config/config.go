// Package config handles application configuration and setup
package config

import (
	"fmt"

	"github.com/artunicore/memoria-ram/internal/memory"
	"github.com/artunicore/memoria-ram/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// MemoryConfig converts the program geometry options to a memory configuration.
func MemoryConfig(opts options.Program) memory.Config {
	return memory.Config{
		BankCount: opts.Banks,
		BankSize:  opts.BankSize,
		WordSize:  opts.WordSize,
		Pages:     opts.Pages,
	}
}

// CreateMemory creates the memory described by the program options.
func CreateMemory(logger *log.Logger, opts options.Program) (*memory.Memory, error) {
	mem, err := memory.New(logger, MemoryConfig(opts))
	if err != nil {
		return nil, fmt.Errorf("creating memory: %w", err)
	}
	return mem, nil
}
