package domain

import (
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// OptLevel is the cross-compiler optimization level.
type OptLevel int8

const (
	// OptNone copies sources verbatim instead of compiling them.
	OptNone OptLevel = -1
	// OptLevel0 disables optimizations.
	OptLevel0 OptLevel = 0
	// OptLevel1 is the first optimization level.
	OptLevel1 OptLevel = 1
	// OptLevel2 is the second optimization level.
	OptLevel2 OptLevel = 2
	// OptLevel3 strips assertions and line numbers.
	OptLevel3 OptLevel = 3
)

// DefaultOptLevel is used when neither configuration nor flags select a level.
const DefaultOptLevel = OptLevel2

// ParseOptLevel accepts "0".."3", "O0".."O3" and "none".
func ParseOptLevel(s string) (OptLevel, error) {
	v := strings.TrimSpace(s)
	switch strings.ToLower(v) {
	case "none", "no-compile", "copy":
		return OptNone, nil
	}

	v = strings.TrimPrefix(strings.TrimPrefix(v, "O"), "o")
	n, err := strconv.Atoi(v)
	if err != nil || n < int(OptLevel0) || n > int(OptLevel3) {
		return OptNone, zerr.With(zerr.Wrap(ErrInvalidOptLevel, "failed to parse optimization level"), "value", s)
	}
	return OptLevel(n), nil
}

// Compiles reports whether sources are passed through the compiler.
func (l OptLevel) Compiles() bool {
	return l != OptNone
}

// Flag returns the compiler argument selecting this level.
func (l OptLevel) Flag() string {
	return "-O" + strconv.Itoa(int(l))
}

// String returns the string representation of the OptLevel.
func (l OptLevel) String() string {
	if l == OptNone {
		return "none"
	}
	return "O" + strconv.Itoa(int(l))
}

// CompileOptions selects the compiler executable and level for a batch.
type CompileOptions struct {
	Tool  string
	Level OptLevel
}
