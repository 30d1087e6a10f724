package mcp

import (
	"github.com/custodia-labs/robots-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Robots evaluates robots.txt files.
	Robots driving.RobotsService

	// Settings supplies the default user-agent and exposes the settings
	// resource. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Robots == nil {
		return ErrMissingRobotsService
	}
	return nil
}
