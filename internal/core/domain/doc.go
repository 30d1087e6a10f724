// Package domain defines the core value types of the robots engine.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Directive: One parsed "key: value" line of a robots.txt file
//   - Rule: An Allow or Disallow pattern inside a group
//   - Group: The rules and signals addressed to one or more user-agents
//   - ParseResult: All groups of one robots.txt file
//   - MatchOutcome: The verdict for one (robots.txt, agent, URL) query
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
