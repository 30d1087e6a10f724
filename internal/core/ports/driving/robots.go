package driving

import (
	"context"

	"github.com/custodia-labs/robots-cli/internal/core/domain"
)

// RobotsService answers robots.txt questions.
type RobotsService interface {
	// Check decides whether the agents may fetch a URL.
	// Returns domain.ErrInvalidUserAgent in strict mode when an agent token
	// is not a valid product token.
	Check(ctx context.Context, req domain.CheckRequest) (*domain.MatchOutcome, error)

	// CheckBatch parses the file once and checks every URL.
	// Results keep the order of req.URLs.
	CheckBatch(ctx context.Context, req domain.BatchRequest) ([]domain.BatchResult, error)

	// Parse returns the grouped form of a robots.txt file.
	Parse(ctx context.Context, robots []byte) (*domain.ParseResult, error)

	// Lint returns the diagnostics for a robots.txt file.
	Lint(ctx context.Context, robots []byte) ([]domain.Diagnostic, error)

	// Load reads a robots.txt file from a location ("-" for stdin).
	Load(ctx context.Context, location string) ([]byte, error)

	// Watch delivers the file content every time it changes until ctx is done.
	Watch(ctx context.Context, location string) (<-chan domain.SourceUpdate, error)

	// ValidateUserAgent returns domain.ErrInvalidUserAgent for tokens that
	// contain anything other than letters, digits, '-' and '_'.
	ValidateUserAgent(agent string) error

	// Info describes the engine build.
	Info() domain.EngineInfo
}
