package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const messyRobots = `Disallow: /orphan
User-agent: FooBot
Disalow: /typo
Crawl-delay: soon
no colon here
Sitemap: https://example.com/sitemap.xml
`

func TestLintCmd_Text(t *testing.T) {
	env := setupTestServices(t, "")
	robots := env.writeFile(t, "robots.txt", messyRobots)

	out, err := run(t, "lint", robots)

	require.NoError(t, err)
	assert.Contains(t, out, "line 1: directive outside any user-agent group, ignored")
	assert.Contains(t, out, "line 3: accepted misspelled key (Disalow)")
	assert.Contains(t, out, "line 4: value did not parse, directive dropped")
	assert.Contains(t, out, "line 5: no ':' separator, line ignored")
	assert.Contains(t, out, "1 groups, 1 sitemaps, 4 diagnostics")
}

func TestLintCmd_Fail(t *testing.T) {
	env := setupTestServices(t, "")
	messy := env.writeFile(t, "messy.txt", messyRobots)
	clean := env.writeFile(t, "clean.txt", sampleRobots)

	_, err := run(t, "lint", messy, "--fail")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "4 diagnostics")

	_, err = run(t, "lint", clean, "--fail")
	require.NoError(t, err)
}

func TestLintCmd_JSON(t *testing.T) {
	setupTestServices(t, "User-agent: *\n")

	out, err := run(t, "lint", "-", "-o", "json")
	require.NoError(t, err)

	var got lintView
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.Groups)
	assert.NotNil(t, got.Diagnostics)
	assert.Empty(t, got.Diagnostics)
	assert.Contains(t, out, `"diagnostics": []`)
}
