package domain

import "fmt"

// DiagnosticKind classifies a line the parser tolerated rather than used as written.
type DiagnosticKind string

// Diagnostic kinds.
const (
	// DiagnosticTypo marks a key accepted as a known misspelling.
	DiagnosticTypo DiagnosticKind = "typo"

	// DiagnosticLineTooLong marks a line truncated at the maximum line length.
	DiagnosticLineTooLong DiagnosticKind = "line_too_long"

	// DiagnosticMissingColon marks a non-comment line without a ':' separator.
	DiagnosticMissingColon DiagnosticKind = "missing_colon"

	// DiagnosticUnknownDirective marks a key that is not a recognised directive.
	DiagnosticUnknownDirective DiagnosticKind = "unknown_directive"

	// DiagnosticInvalidValue marks a directive dropped because its value did not parse.
	DiagnosticInvalidValue DiagnosticKind = "invalid_value"

	// DiagnosticOrphanRule marks a directive that appeared before any User-agent line.
	DiagnosticOrphanRule DiagnosticKind = "orphan_rule"
)

// Description returns a human-readable description of the kind.
func (k DiagnosticKind) Description() string {
	switch k {
	case DiagnosticTypo:
		return "accepted misspelled key"
	case DiagnosticLineTooLong:
		return "line truncated"
	case DiagnosticMissingColon:
		return "no ':' separator, line ignored"
	case DiagnosticUnknownDirective:
		return "unknown directive, ignored"
	case DiagnosticInvalidValue:
		return "value did not parse, directive dropped"
	case DiagnosticOrphanRule:
		return "directive outside any user-agent group, ignored"
	default:
		return "Unknown"
	}
}

// Diagnostic reports one tolerated anomaly in a robots.txt file.
type Diagnostic struct {
	Line   int            `json:"line" yaml:"line"`
	Kind   DiagnosticKind `json:"kind" yaml:"kind"`
	Detail string         `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// String formats the diagnostic as "line N: description (detail)".
func (d Diagnostic) String() string {
	if d.Detail == "" {
		return fmt.Sprintf("line %d: %s", d.Line, d.Kind.Description())
	}
	return fmt.Sprintf("line %d: %s (%s)", d.Line, d.Kind.Description(), d.Detail)
}
