package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/robots-cli/internal/robots"
)

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
}

func TestVersionCmd_Short(t *testing.T) {
	assert.Equal(t, "Print the version number", versionCmd.Short)
}

func TestVersionCmd_Executes(t *testing.T) {
	setupTestServices(t, "")

	// Save and restore version
	originalVersion := version
	SetVersion("test-version-1.0.0")
	defer func() { version = originalVersion }()

	out, err := run(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "robots version test-version-1.0.0")
	assert.Contains(t, out, "engine "+robots.Version)
	if robots.ContentSignalSupported {
		assert.Contains(t, out, "content-signal: enabled")
	} else {
		assert.Contains(t, out, "content-signal: not compiled in")
	}
}

func TestVersionCmd_WithoutServices(t *testing.T) {
	setupTestServices(t, "")
	SetServices(nil)

	originalVersion := version
	version = "dev"
	defer func() { version = originalVersion }()

	out, err := run(t, "version")

	require.NoError(t, err)
	assert.Equal(t, "robots version dev\n", out)
}
