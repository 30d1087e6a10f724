// Package mcp provides an MCP (Model Context Protocol) server adapter for the
// robots engine. It lets AI assistants ask whether a crawler may fetch a URL.
package mcp

import "errors"

// ErrMissingRobotsService is returned when the robots service is not provided.
var ErrMissingRobotsService = errors.New("mcp: robots service is required")

// errNoRobots is returned by tools given neither robots content nor a path.
var errNoRobots = errors.New("either robots or robots_path is required")
