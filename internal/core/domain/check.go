package domain

// CheckRequest asks whether a URL may be fetched by the given agents.
type CheckRequest struct {
	// Robots is the raw robots.txt body.
	Robots []byte

	// Agents are the caller's user-agent tokens. Rules of every matching
	// group are collapsed into a single rule set.
	Agents []string

	// URL is an absolute URL or a path; only path and query are matched.
	URL string
}

// BatchRequest asks for verdicts on many URLs against one robots.txt.
type BatchRequest struct {
	Robots []byte
	Agents []string
	URLs   []string

	// Workers bounds concurrent evaluation. Zero uses the configured default.
	Workers int
}

// BatchResult pairs a URL with its outcome. Results keep request order.
type BatchResult struct {
	URL     string       `json:"url" yaml:"url"`
	Outcome MatchOutcome `json:"outcome" yaml:"outcome"`
}

// EngineInfo answers the supplementary queries about the engine build.
type EngineInfo struct {
	// Version is the opaque engine version string.
	Version string `json:"version" yaml:"version"`

	// ContentSignalSupported reports whether Content-Signal is compiled in.
	ContentSignalSupported bool `json:"content_signal_supported" yaml:"content_signal_supported"`

	// ContentSignalEnabled reports whether it is also enabled by settings.
	ContentSignalEnabled bool `json:"content_signal_enabled" yaml:"content_signal_enabled"`
}

// SourceUpdate is one observation of a watched robots.txt source.
// Exactly one of Body and Err is meaningful.
type SourceUpdate struct {
	// Location is the watched path.
	Location string

	// Body is the file content after the change.
	Body []byte

	// Err reports a failed read; the watch continues.
	Err error
}
