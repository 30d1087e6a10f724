package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/robots-cli/internal/core/domain"
	"github.com/custodia-labs/robots-cli/internal/core/ports/driven"
	"github.com/custodia-labs/robots-cli/internal/core/ports/driving"
	"github.com/custodia-labs/robots-cli/internal/logger"
	"github.com/custodia-labs/robots-cli/internal/robots"
)

// Ensure RobotsService implements the interface.
var _ driving.RobotsService = (*RobotsService)(nil)

// errSourceNotConfigured is returned by Load and Watch without a source.
var errSourceNotConfigured = errors.New("robots source not configured")

// RobotsService evaluates robots.txt files with the robots engine.
type RobotsService struct {
	matcher *robots.Matcher
	source  driven.RobotsSource
	strict  bool
	workers int
}

// NewRobotsService creates a robots service. Settings are read once here;
// later changes need a new service. The source is optional (can be nil).
func NewRobotsService(source driven.RobotsSource, settings domain.AppSettings) *RobotsService {
	workers := settings.Batch.Workers
	if workers < 1 {
		workers = 1
	}
	return &RobotsService{
		matcher: robots.NewMatcher(
			robots.WithContentSignal(settings.Parser.ContentSignal),
			robots.WithMaxLineLength(settings.Parser.MaxLineLength),
		),
		source:  source,
		strict:  settings.Agent.Strict,
		workers: workers,
	}
}

// Check decides whether the agents may fetch a URL.
func (s *RobotsService) Check(ctx context.Context, req domain.CheckRequest) (*domain.MatchOutcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Section("Robots Check")
	if err := s.checkAgents(req.Agents); err != nil {
		return nil, err
	}
	logger.Debug("Agents: %v", req.Agents)
	logger.Debug("URL: %q (%d bytes of robots.txt)", req.URL, len(req.Robots))

	done := logger.Timed("check")
	outcome := s.matcher.CheckAgents(req.Robots, req.Agents, req.URL)
	done()

	logOutcome(&outcome)
	return &outcome, nil
}

// CheckBatch parses the file once and checks every URL, using up to
// req.Workers goroutines (the configured default when zero).
func (s *RobotsService) CheckBatch(ctx context.Context, req domain.BatchRequest) ([]domain.BatchResult, error) {
	logger.Section("Robots Batch")
	if err := s.checkAgents(req.Agents); err != nil {
		return nil, err
	}

	workers := req.Workers
	if workers <= 0 {
		workers = s.workers
	}
	logger.Debug("URLs: %d, workers: %d", len(req.URLs), workers)

	done := logger.Timed("parse")
	parsed := s.matcher.Parse(req.Robots)
	done()
	logger.Debug("Groups: %d, diagnostics: %d", len(parsed.Result().Groups), len(parsed.Result().Diagnostics))

	results := make([]domain.BatchResult, len(req.URLs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, url := range req.URLs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = domain.BatchResult{
				URL:     url,
				Outcome: parsed.Match(req.Agents, url),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("check batch: %w", err)
	}

	logger.Info("Checked %d URLs", len(results))
	return results, nil
}

// Parse returns the grouped form of a robots.txt file.
func (s *RobotsService) Parse(ctx context.Context, body []byte) (*domain.ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result := *s.matcher.Parse(body).Result()
	logger.Debug("Parsed %d groups, %d sitemaps", len(result.Groups), len(result.Sitemaps))
	return &result, nil
}

// Lint returns the diagnostics for a robots.txt file.
func (s *RobotsService) Lint(ctx context.Context, body []byte) ([]domain.Diagnostic, error) {
	result, err := s.Parse(ctx, body)
	if err != nil {
		return nil, err
	}
	logger.Debug("Diagnostics: %d", len(result.Diagnostics))
	return result.Diagnostics, nil
}

// Load reads a robots.txt file from a location.
func (s *RobotsService) Load(ctx context.Context, location string) ([]byte, error) {
	if s.source == nil {
		return nil, errSourceNotConfigured
	}
	body, err := s.source.Read(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("load robots.txt: %w", err)
	}
	logger.Debug("Loaded %s (%d bytes)", location, len(body))
	return body, nil
}

// Watch delivers the file content every time it changes until ctx is done.
func (s *RobotsService) Watch(ctx context.Context, location string) (<-chan domain.SourceUpdate, error) {
	if s.source == nil {
		return nil, errSourceNotConfigured
	}
	updates, err := s.source.Watch(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("watch robots.txt: %w", err)
	}
	logger.Info("Watching %s", location)
	return updates, nil
}

// ValidateUserAgent checks that agent is a valid product token.
func (s *RobotsService) ValidateUserAgent(agent string) error {
	if !robots.IsValidUserAgent(agent) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidUserAgent, agent)
	}
	return nil
}

// Info describes the engine build.
func (s *RobotsService) Info() domain.EngineInfo {
	return domain.EngineInfo{
		Version:                robots.Version,
		ContentSignalSupported: robots.ContentSignalSupported,
		ContentSignalEnabled:   s.matcher.ContentSignalEnabled(),
	}
}

// checkAgents rejects an empty agent list, and invalid tokens in strict mode.
func (s *RobotsService) checkAgents(agents []string) error {
	if len(agents) == 0 {
		return fmt.Errorf("%w: no user-agent given", domain.ErrInvalidInput)
	}
	for _, agent := range agents {
		err := s.ValidateUserAgent(agent)
		if err == nil {
			continue
		}
		if s.strict {
			return err
		}
		logger.Warn("Matching anyway: %v", err)
	}
	return nil
}

func logOutcome(o *domain.MatchOutcome) {
	if !logger.IsVerbose() {
		return
	}
	logger.Debug("Path: %q", o.Path)
	if o.MatchedAgent == "" {
		logger.Debug("No group applies")
	} else {
		logger.Debug("Group: %q", o.MatchedAgent)
	}
	logger.Info("Allowed: %t (line %d)", o.Allowed, o.MatchingLine)
}
