package domain

const unknownDescription = "Unknown"

// DefaultMaxLineLength is the longest robots.txt line considered, in bytes.
// Longer lines are truncated. Browsers cap URLs at 2083 bytes; eight times
// that leaves room for escapes and comments.
const DefaultMaxLineLength = 2083 * 8

// OutputFormat defines how command results are rendered.
type OutputFormat string

// Available output formats.
const (
	// OutputFormatText renders a human-readable report.
	OutputFormatText OutputFormat = "text"

	// OutputFormatJSON renders indented JSON.
	OutputFormatJSON OutputFormat = "json"

	// OutputFormatYAML renders YAML.
	OutputFormatYAML OutputFormat = "yaml"
)

// IsValid returns true if the output format is recognised.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f OutputFormat) String() string {
	return string(f)
}

// Description returns a human-readable description of the format.
func (f OutputFormat) Description() string {
	switch f {
	case OutputFormatText:
		return "Text (human-readable report)"
	case OutputFormatJSON:
		return "JSON (machine-readable)"
	case OutputFormatYAML:
		return "YAML (machine-readable)"
	default:
		return unknownDescription
	}
}

// ColorMode controls styled terminal output.
type ColorMode string

// Available colour modes.
const (
	// ColorAuto styles output only when stdout is a terminal.
	ColorAuto ColorMode = "auto"

	// ColorAlways always styles output.
	ColorAlways ColorMode = "always"

	// ColorNever never styles output.
	ColorNever ColorMode = "never"
)

// IsValid returns true if the colour mode is recognised.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m ColorMode) String() string {
	return string(m)
}

// AgentSettings holds the defaults for the requesting crawler.
type AgentSettings struct {
	// Default is the user-agent token used when a command names none.
	Default string

	// Strict rejects user-agent tokens that fail validation instead of
	// matching them anyway.
	Strict bool
}

// OutputSettings holds rendering configuration.
type OutputSettings struct {
	// Format is the default output format.
	Format OutputFormat

	// Color controls styled output.
	Color ColorMode
}

// ParserSettings holds robots.txt parsing configuration.
// These are read once at startup and passed to the engine as options.
type ParserSettings struct {
	// ContentSignal enables the Content-Signal extension. It has no effect
	// when the extension is not compiled in.
	ContentSignal bool

	// MaxLineLength is the truncation limit for a single line, in bytes.
	MaxLineLength int
}

// BatchSettings holds batch evaluation configuration.
type BatchSettings struct {
	// Workers bounds concurrent URL evaluation.
	Workers int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Agent holds user-agent defaults.
	Agent AgentSettings

	// Output holds rendering settings.
	Output OutputSettings

	// Parser holds parsing settings.
	Parser ParserSettings

	// Batch holds batch evaluation settings.
	Batch BatchSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Agent: AgentSettings{
			Default: "",
			Strict:  false,
		},
		Output: OutputSettings{
			Format: OutputFormatText,
			Color:  ColorAuto,
		},
		Parser: ParserSettings{
			ContentSignal: true,
			MaxLineLength: DefaultMaxLineLength,
		},
		Batch: BatchSettings{
			Workers: 8,
		},
	}
}

// AllOutputFormats returns all available output formats.
func AllOutputFormats() []OutputFormat {
	return []OutputFormat{
		OutputFormatText,
		OutputFormatJSON,
		OutputFormatYAML,
	}
}

// AllColorModes returns all available colour modes.
func AllColorModes() []ColorMode {
	return []ColorMode{
		ColorAuto,
		ColorAlways,
		ColorNever,
	}
}
