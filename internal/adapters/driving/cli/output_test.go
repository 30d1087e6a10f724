package cli

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/robots-cli/internal/core/domain"
)

func TestUseColor(t *testing.T) {
	buf := new(bytes.Buffer)

	assert.True(t, useColor(domain.ColorAlways, buf))
	assert.False(t, useColor(domain.ColorNever, os.Stdout))
	assert.False(t, useColor(domain.ColorAuto, buf), "buffers are not terminals")
}

func TestUseColor_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, useColor(domain.ColorAuto, os.Stdout))
}

func TestFormatSignal(t *testing.T) {
	tests := []struct {
		name   string
		signal domain.ContentSignal
		want   string
	}{
		{"empty", domain.ContentSignal{}, ""},
		{"one", domain.ContentSignal{AITrain: domain.TriStateDisallow}, "ai-train=disallow"},
		{"all", domain.ContentSignal{
			AITrain: domain.TriStateDisallow,
			AIInput: domain.TriStateAllow,
			Search:  domain.TriStateAllow,
		}, "ai-train=disallow, ai-input=allow, search=allow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatSignal(&tt.signal))
		})
	}
}

func TestPrinter_Verdict(t *testing.T) {
	p := &printer{w: new(bytes.Buffer), format: domain.OutputFormatText}

	assert.Equal(t, "allowed", p.verdict(true))
	assert.Equal(t, "disallowed", p.verdict(false))
	assert.False(t, p.structured())
}
