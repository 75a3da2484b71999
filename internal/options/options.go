// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"command script to run (default: stdin)"`
	Output string `flag:"o" usage:"output file (default: stdout)"`
	Batch  string `flag:"batch" usage:"run all scripts matching pattern (e.g. *.txt)"`
}

// Geometry contains the memory dimensions.
type Geometry struct {
	Banks    int `flag:"banks" usage:"number of physical banks" default:"2"`
	BankSize int `flag:"bank-size" usage:"words per bank row, power of two" default:"1024"`
	WordSize int `flag:"word-size" usage:"address bits per word, power of two" default:"16"`
	Pages    int `flag:"pages" usage:"page table entries" default:"1024"`
}

// Flags contains behavior options.
type Flags struct {
	TUI   bool `flag:"tui" usage:"start the interactive terminal interface"`
	Debug bool `flag:"debug" usage:"enable debug logging"`
	Quiet bool `flag:"q" usage:"quiet mode"`
}

// Program options of the memory console.
type Program struct {
	Parameters
	Geometry
	Flags
}

// Default memory geometry.
const (
	DefaultBanks    = 2
	DefaultBankSize = 1024
	DefaultWordSize = 16
	DefaultPages    = 1024
)
