// Package output creates the termenv outputs used for logs and progress lines.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// Profile returns the color profile for an output. NO_COLOR disables color.
// Interactive outputs use what the terminal advertises; the rest use plain
// ANSI so that CI logs keep their colors.
func Profile(interactive bool) termenv.Profile {
	switch {
	case os.Getenv("NO_COLOR") != "":
		return termenv.Ascii
	case interactive:
		return termenv.EnvColorProfile()
	default:
		return termenv.ANSI
	}
}

// New creates an output on w, or on stderr when w is nil.
func New(w io.Writer, interactive bool) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	return termenv.NewOutput(w, termenv.WithProfile(Profile(interactive)), termenv.WithTTY(true))
}
