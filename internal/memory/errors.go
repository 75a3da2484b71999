package memory

import "errors"

// Errors returned by the memory core. They are wrapped with context, compare them
// using errors.Is.
var (
	ErrInvalidConfiguration = errors.New("invalid memory configuration")
	ErrInvalidInput         = errors.New("invalid input")
	ErrPageIndexOutOfRange  = errors.New("page index out of range")
	ErrUnmappedPage         = errors.New("unmapped page")
	ErrOutOfRange           = errors.New("physical address out of range")
	ErrInvalidMapping       = errors.New("invalid page mapping")
)
