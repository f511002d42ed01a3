package output_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/mpy/internal/ui/output"
)

func TestProfile_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.Equal(t, termenv.Ascii, output.Profile(true))
	assert.Equal(t, termenv.Ascii, output.Profile(false))
}

func TestProfile_NonInteractive(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	assert.Equal(t, termenv.ANSI, output.Profile(false))
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		noColor  string
		wantANSI bool
	}{
		{name: "plain with NO_COLOR", noColor: "1", wantANSI: false},
		{name: "colored without NO_COLOR", noColor: "", wantANSI: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", tt.noColor)

			var buf bytes.Buffer
			out := output.New(&buf, false)
			_, _ = out.WriteString(out.String("main.mpy").Foreground(termenv.ANSIRed).String())

			assert.Contains(t, buf.String(), "main.mpy")
			assert.Equal(t, tt.wantANSI, bytes.Contains(buf.Bytes(), []byte("\x1b[")))
		})
	}
}

func TestNew_NilWriter(t *testing.T) {
	assert.NotNil(t, output.New(nil, true))
}
