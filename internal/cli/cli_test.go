package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/artunicore/memoria-ram/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "defaults",
			args: []string{"prog"},
			want: options.Program{
				Geometry: options.Geometry{Banks: 2, BankSize: 1024, WordSize: 16, Pages: 1024},
			},
		},
		{
			name: "script argument",
			args: []string{"prog", "-q", "run.txt"},
			want: options.Program{
				Parameters: options.Parameters{Input: "run.txt"},
				Geometry:   options.Geometry{Banks: 2, BankSize: 1024, WordSize: 16, Pages: 1024},
				Flags:      options.Flags{Quiet: true},
			},
		},
		{
			name: "geometry flags",
			args: []string{"prog", "-banks", "4", "-bank-size", "256", "-word-size", "8", "-pages", "64", "-debug"},
			want: options.Program{
				Geometry: options.Geometry{Banks: 4, BankSize: 256, WordSize: 8, Pages: 64},
				Flags:    options.Flags{Debug: true},
			},
		},
		{
			name: "batch",
			args: []string{"prog", "-batch", "*.txt"},
			want: options.Program{
				Parameters: options.Parameters{Batch: "*.txt"},
				Geometry:   options.Geometry{Banks: 2, BankSize: 1024, WordSize: 16, Pages: 1024},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			got, err := ParseFlags()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantUsage bool
	}{
		{"unknown flag", []string{"prog", "-nope"}, true},
		{"flag after script", []string{"prog", "run.txt", "-q"}, true},
		{"two scripts", []string{"prog", "a.txt", "b.txt"}, true},
		{"script twice", []string{"prog", "-i", "a.txt", "b.txt"}, true},
		{"tui with script", []string{"prog", "-tui", "a.txt"}, true},
		{"batch with output", []string{"prog", "-batch", "*.txt", "-o", "out.txt"}, true},
		{"zero banks", []string{"prog", "-banks", "0"}, false},
		{"negative word size", []string{"prog", "-word-size", "-2"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			_, err := ParseFlags()
			assert.Error(t, err)

			var usageErr *UsageError
			assert.Equal(t, tt.wantUsage, errors.As(err, &usageErr))
		})
	}
}

func TestValidateOptionCombinations(t *testing.T) {
	tests := []struct {
		name        string
		opts        options.Program
		expectError bool
	}{
		{
			name:        "no conflict",
			opts:        options.Program{},
			expectError: false,
		},
		{
			name:        "tui only",
			opts:        options.Program{Flags: options.Flags{TUI: true}},
			expectError: false,
		},
		{
			name: "tui and batch conflict",
			opts: options.Program{
				Parameters: options.Parameters{Batch: "*.txt"},
				Flags:      options.Flags{TUI: true},
			},
			expectError: true,
		},
		{
			name: "batch and output conflict",
			opts: options.Program{
				Parameters: options.Parameters{Output: "out.txt", Batch: "*.txt"},
			},
			expectError: true,
		},
		{
			name: "tui and output conflict",
			opts: options.Program{
				Parameters: options.Parameters{Output: "out.txt"},
				Flags:      options.Flags{TUI: true},
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateOptionCombinations(tt.opts)
			if tt.expectError {
				assert.True(t, err != nil)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
