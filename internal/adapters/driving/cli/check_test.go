package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/robots-cli/internal/core/domain"
)

func TestCheckCmd_Use(t *testing.T) {
	assert.Equal(t, "check <robots.txt|-> <url>", checkCmd.Use)
}

func TestCheckCmd_RequiresTwoArgs(t *testing.T) {
	setupTestServices(t, "")

	_, err := run(t, "check", "robots.txt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestCheckCmd_HasAgentFlag(t *testing.T) {
	flag := checkCmd.Flags().Lookup("agent")
	require.NotNil(t, flag, "agent flag should exist")
	assert.Equal(t, "a", flag.Shorthand)
}

func TestCheckCmd_Text(t *testing.T) {
	env := setupTestServices(t, "")
	robots := env.writeFile(t, "robots.txt", sampleRobots)

	tests := []struct {
		name     string
		url      string
		agent    string
		contains []string
	}{
		{"disallowed by specific group", "https://example.com/private/x", "FooBot",
			[]string{"disallowed", `group "foobot", line 2`, "crawl-delay: 0.01s"}},
		{"allowed by longer rule", "/private/open/x", "FooBot",
			[]string{"allowed", `group "foobot", line 3`}},
		{"no rule matched", "/public", "FooBot",
			[]string{"allowed", "no rule matched /public"}},
		{"wildcard group", "/anything", "BarBot",
			[]string{"disallowed", `group "*", line 7`, "content-signal: ai-train=disallow"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, "check", robots, tt.url, "-a", tt.agent)

			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
		})
	}
}

func TestCheckCmd_Stdin(t *testing.T) {
	setupTestServices(t, "User-agent: *\nDisallow: /tmp\n")

	out, err := run(t, "check", "-", "/tmp/x", "-a", "AnyBot")

	require.NoError(t, err)
	assert.Contains(t, out, "disallowed /tmp/x")
}

func TestCheckCmd_MissingFile(t *testing.T) {
	setupTestServices(t, "")

	_, err := run(t, "check", "/nonexistent/robots.txt", "/", "-a", "FooBot")

	require.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestCheckCmd_JSON(t *testing.T) {
	env := setupTestServices(t, "")
	robots := env.writeFile(t, "robots.txt", sampleRobots)

	out, err := run(t, "check", robots, "/private/x", "-a", "FooBot", "--format", "json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "/private/x", got["url"])
	assert.Equal(t, false, got["allowed"])
	assert.EqualValues(t, 2, got["matching_line"])
	assert.Equal(t, "foobot", got["matched_agent"])
	assert.Equal(t, true, got["ever_seen_specific_agent"])
}

func TestCheckCmd_YAML(t *testing.T) {
	env := setupTestServices(t, "")
	robots := env.writeFile(t, "robots.txt", sampleRobots)

	out, err := run(t, "check", robots, "/x", "-a", "BarBot", "-o", "yaml")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "/x", got["url"])
	assert.Equal(t, false, got["allowed"])
	assert.Equal(t, "*", got["matched_agent"])
	assert.Equal(t, map[string]any{"ai_train": "disallow"}, got["content_signal"])
}

func TestCheckCmd_FormatFromSettings(t *testing.T) {
	env := setupTestServices(t, "")
	robots := env.writeFile(t, "robots.txt", sampleRobots)
	require.NoError(t, env.settings.Set("output.format", "json"))

	out, err := run(t, "check", robots, "/", "-a", "FooBot")

	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))
}

func TestCheckCmd_DefaultAgent(t *testing.T) {
	env := setupTestServices(t, "")
	robots := env.writeFile(t, "robots.txt", sampleRobots)

	_, err := run(t, "check", robots, "/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no user-agent")

	require.NoError(t, env.settings.Set("agent.default", "FooBot"))
	out, err := run(t, "check", robots, "/private")
	require.NoError(t, err)
	assert.Contains(t, out, `group "foobot"`)
}

func TestCheckCmd_MultipleAgents(t *testing.T) {
	env := setupTestServices(t, "")
	robots := env.writeFile(t, "robots.txt", sampleRobots)

	out, err := run(t, "check", robots, "/private", "-a", "OtherBot", "-a", "FooBot")

	require.NoError(t, err)
	assert.Contains(t, out, `group "foobot"`)
}

func TestCheckCmd_Strict(t *testing.T) {
	env := setupTestServices(t, "")
	robots := env.writeFile(t, "robots.txt", sampleRobots)

	_, err := run(t, "check", robots, "/", "-a", "FooBot/1.0")
	require.NoError(t, err, "lenient by default")

	_, err = run(t, "check", robots, "/", "-a", "FooBot/1.0", "--strict")
	require.ErrorIs(t, err, domain.ErrInvalidUserAgent)
}
