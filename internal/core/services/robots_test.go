package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/robots-cli/internal/core/domain"
	"github.com/custodia-labs/robots-cli/internal/robots"
)

const testRobots = `User-agent: FooBot
Disallow: /private
Allow: /private/open
Crawl-delay: 2

User-agent: *
Disallow: /
Content-Signal: ai-train=no

Sitemap: https://example.com/sitemap.xml
Dissallow: /typo
Foo: bar
`

// fakeSource is a driven.RobotsSource serving fixed content.
type fakeSource struct {
	files   map[string][]byte
	updates chan domain.SourceUpdate
}

func (f *fakeSource) Read(_ context.Context, location string) ([]byte, error) {
	body, ok := f.files[location]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSourceUnavailable, location)
	}
	return body, nil
}

func (f *fakeSource) Watch(_ context.Context, location string) (<-chan domain.SourceUpdate, error) {
	if _, ok := f.files[location]; !ok {
		return nil, domain.ErrSourceUnavailable
	}
	return f.updates, nil
}

func newTestService(t *testing.T, mutate func(*domain.AppSettings)) *RobotsService {
	t.Helper()
	settings := domain.DefaultAppSettings()
	if mutate != nil {
		mutate(&settings)
	}
	return NewRobotsService(nil, settings)
}

func TestRobotsService_Check(t *testing.T) {
	service := newTestService(t, nil)

	tests := []struct {
		name    string
		agents  []string
		url     string
		allowed bool
		line    int
		group   string
	}{
		{"specific group disallows", []string{"FooBot"}, "https://example.com/private/x", false, 2, "foobot"},
		{"longer allow wins", []string{"foobot"}, "/private/open/page", true, 3, "foobot"},
		{"no rule matches", []string{"FooBot/1.0"}, "/public", true, 0, "foobot"},
		{"wildcard fallback", []string{"BarBot"}, "/anything", false, 7, "*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := service.Check(context.Background(), domain.CheckRequest{
				Robots: []byte(testRobots),
				Agents: tt.agents,
				URL:    tt.url,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.allowed, outcome.Allowed)
			assert.Equal(t, tt.line, outcome.MatchingLine)
			assert.Equal(t, tt.group, outcome.MatchedAgent)
			assert.True(t, outcome.EverSeenSpecificAgent)
		})
	}
}

func TestRobotsService_Check_Signals(t *testing.T) {
	service := newTestService(t, nil)

	foo, err := service.Check(context.Background(), domain.CheckRequest{
		Robots: []byte(testRobots), Agents: []string{"FooBot"}, URL: "/",
	})
	require.NoError(t, err)
	require.NotNil(t, foo.CrawlDelay)
	assert.InDelta(t, 2.0, *foo.CrawlDelay, 1e-9)
	assert.Nil(t, foo.ContentSignal)
	assert.True(t, foo.AllowsAITrain())

	other, err := service.Check(context.Background(), domain.CheckRequest{
		Robots: []byte(testRobots), Agents: []string{"OtherBot"}, URL: "/",
	})
	require.NoError(t, err)
	assert.Nil(t, other.CrawlDelay)
	require.NotNil(t, other.ContentSignal)
	assert.False(t, other.AllowsAITrain())
	assert.True(t, other.AllowsSearch())
}

func TestRobotsService_Check_ContentSignalDisabled(t *testing.T) {
	service := newTestService(t, func(s *domain.AppSettings) {
		s.Parser.ContentSignal = false
	})

	outcome, err := service.Check(context.Background(), domain.CheckRequest{
		Robots: []byte(testRobots), Agents: []string{"OtherBot"}, URL: "/",
	})

	require.NoError(t, err)
	assert.Nil(t, outcome.ContentSignal)
	assert.False(t, service.Info().ContentSignalEnabled)
}

func TestRobotsService_Check_AgentValidation(t *testing.T) {
	req := domain.CheckRequest{
		Robots: []byte(testRobots),
		Agents: []string{"Foo Bot"},
		URL:    "/private",
	}

	t.Run("lenient matches anyway", func(t *testing.T) {
		service := newTestService(t, nil)

		outcome, err := service.Check(context.Background(), req)

		require.NoError(t, err)
		assert.NotNil(t, outcome)
	})

	t.Run("strict rejects", func(t *testing.T) {
		service := newTestService(t, func(s *domain.AppSettings) { s.Agent.Strict = true })

		_, err := service.Check(context.Background(), req)

		require.ErrorIs(t, err, domain.ErrInvalidUserAgent)
	})

	t.Run("no agents", func(t *testing.T) {
		service := newTestService(t, nil)

		_, err := service.Check(context.Background(), domain.CheckRequest{Robots: []byte(testRobots), URL: "/"})

		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestRobotsService_Check_CancelledContext(t *testing.T) {
	service := newTestService(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.Check(ctx, domain.CheckRequest{Agents: []string{"FooBot"}, URL: "/"})

	require.ErrorIs(t, err, context.Canceled)
}

func TestRobotsService_CheckBatch_KeepsOrder(t *testing.T) {
	service := newTestService(t, nil)

	urls := make([]string, 200)
	for i := range urls {
		if i%2 == 0 {
			urls[i] = fmt.Sprintf("/private/%d", i)
		} else {
			urls[i] = fmt.Sprintf("/public/%d", i)
		}
	}

	results, err := service.CheckBatch(context.Background(), domain.BatchRequest{
		Robots:  []byte(testRobots),
		Agents:  []string{"FooBot"},
		URLs:    urls,
		Workers: 4,
	})

	require.NoError(t, err)
	require.Len(t, results, len(urls))
	for i, r := range results {
		assert.Equal(t, urls[i], r.URL)
		assert.Equal(t, i%2 != 0, r.Outcome.Allowed, r.URL)
	}
}

func TestRobotsService_CheckBatch_MatchesCheck(t *testing.T) {
	service := newTestService(t, nil)
	urls := []string{"/", "/private", "/private/open", "http://example.com/private/open?q=1"}

	results, err := service.CheckBatch(context.Background(), domain.BatchRequest{
		Robots: []byte(testRobots),
		Agents: []string{"FooBot"},
		URLs:   urls,
	})
	require.NoError(t, err)

	for _, r := range results {
		single, err := service.Check(context.Background(), domain.CheckRequest{
			Robots: []byte(testRobots), Agents: []string{"FooBot"}, URL: r.URL,
		})
		require.NoError(t, err)
		assert.Equal(t, *single, r.Outcome, r.URL)
	}
}

func TestRobotsService_CheckBatch_Cancelled(t *testing.T) {
	service := newTestService(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.CheckBatch(ctx, domain.BatchRequest{
		Robots: []byte(testRobots),
		Agents: []string{"FooBot"},
		URLs:   []string{"/a", "/b"},
	})

	require.ErrorIs(t, err, context.Canceled)
}

func TestRobotsService_CheckBatch_Empty(t *testing.T) {
	service := newTestService(t, nil)

	results, err := service.CheckBatch(context.Background(), domain.BatchRequest{
		Robots: []byte(testRobots),
		Agents: []string{"FooBot"},
	})

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRobotsService_Parse(t *testing.T) {
	service := newTestService(t, nil)

	result, err := service.Parse(context.Background(), []byte(testRobots))

	require.NoError(t, err)
	require.Len(t, result.Groups, 2)
	assert.Equal(t, []string{"foobot"}, result.Groups[0].Agents)
	assert.Equal(t, []string{"*"}, result.Groups[1].Agents)
	assert.Equal(t, []string{"https://example.com/sitemap.xml"}, result.Sitemaps)
	assert.True(t, result.SawSpecificAgent)
}

func TestRobotsService_Lint(t *testing.T) {
	service := newTestService(t, nil)

	diags, err := service.Lint(context.Background(), []byte(testRobots))

	require.NoError(t, err)
	kinds := make([]domain.DiagnosticKind, 0, len(diags))
	for _, d := range diags {
		kinds = append(kinds, d.Kind)
	}
	assert.Contains(t, kinds, domain.DiagnosticTypo)
	assert.Contains(t, kinds, domain.DiagnosticUnknownDirective)
}

func TestRobotsService_Lint_Clean(t *testing.T) {
	service := newTestService(t, nil)

	diags, err := service.Lint(context.Background(), []byte("User-agent: *\nDisallow: /tmp\n"))

	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestRobotsService_Load(t *testing.T) {
	source := &fakeSource{files: map[string][]byte{"robots.txt": []byte(testRobots)}}
	service := NewRobotsService(source, domain.DefaultAppSettings())

	body, err := service.Load(context.Background(), "robots.txt")
	require.NoError(t, err)
	assert.Equal(t, testRobots, string(body))

	_, err = service.Load(context.Background(), "missing.txt")
	require.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestRobotsService_Watch(t *testing.T) {
	updates := make(chan domain.SourceUpdate, 1)
	source := &fakeSource{
		files:   map[string][]byte{"robots.txt": []byte(testRobots)},
		updates: updates,
	}
	service := NewRobotsService(source, domain.DefaultAppSettings())

	ch, err := service.Watch(context.Background(), "robots.txt")
	require.NoError(t, err)

	updates <- domain.SourceUpdate{Location: "robots.txt", Body: []byte("x")}
	got := <-ch
	assert.Equal(t, "x", string(got.Body))

	_, err = service.Watch(context.Background(), "missing.txt")
	require.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestRobotsService_NoSource(t *testing.T) {
	service := newTestService(t, nil)

	_, err := service.Load(context.Background(), "robots.txt")
	assert.True(t, errors.Is(err, errSourceNotConfigured))

	_, err = service.Watch(context.Background(), "robots.txt")
	assert.True(t, errors.Is(err, errSourceNotConfigured))
}

func TestRobotsService_ValidateUserAgent(t *testing.T) {
	service := newTestService(t, nil)

	assert.NoError(t, service.ValidateUserAgent("Googlebot-Image"))
	assert.ErrorIs(t, service.ValidateUserAgent("Googlebot/2.1"), domain.ErrInvalidUserAgent)
	assert.ErrorIs(t, service.ValidateUserAgent(""), domain.ErrInvalidUserAgent)
}

func TestRobotsService_Info(t *testing.T) {
	service := newTestService(t, nil)

	info := service.Info()

	assert.Equal(t, robots.Version, info.Version)
	assert.Equal(t, robots.ContentSignalSupported, info.ContentSignalSupported)
	assert.Equal(t, robots.ContentSignalSupported, info.ContentSignalEnabled)
}
