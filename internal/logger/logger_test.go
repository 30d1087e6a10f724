package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, verbose bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verbose)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestLevels_WhenVerbose(t *testing.T) {
	tests := []struct {
		name string
		log  func()
		want string
	}{
		{"debug", func() { Debug("parsed %d lines", 12) }, "[DEBUG] parsed 12 lines\n"},
		{"info", func() { Info("agent %s", "FooBot") }, "[INFO] agent FooBot\n"},
		{"warn", func() { Warn("invalid token %q", "Bot/1.0") }, "[WARN] invalid token \"Bot/1.0\"\n"},
		{"section", func() { Section("Match") }, "\n=== Match ===\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, true)
			tt.log()
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestLevels_WhenNotVerbose(t *testing.T) {
	buf := capture(t, false)

	Debug("debug")
	Info("info")
	Warn("warn")
	Section("section")
	Timed("step")()

	assert.Zero(t, buf.Len())
}

func TestTimed(t *testing.T) {
	buf := capture(t, true)

	done := Timed("parse")
	done()

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "[DEBUG] parse took "), out)
	assert.True(t, strings.HasSuffix(out, "\n"))
}
