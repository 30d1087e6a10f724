package driven

import (
	"context"

	"github.com/custodia-labs/robots-cli/internal/core/domain"
)

// RobotsSource reads robots.txt content from outside the process.
type RobotsSource interface {
	// Read returns the content at location. Returns
	// domain.ErrSourceUnavailable (wrapped) when it cannot be read.
	Read(ctx context.Context, location string) ([]byte, error)

	// Watch sends the content at location once immediately and again after
	// every change. The channel is closed when ctx is done.
	Watch(ctx context.Context, location string) (<-chan domain.SourceUpdate, error)
}
