package domain

// DirectiveKind identifies the key of a robots.txt directive.
type DirectiveKind string

// Recognised directive kinds.
const (
	// DirectiveUserAgent starts or extends a group.
	DirectiveUserAgent DirectiveKind = "user-agent"

	// DirectiveAllow permits paths matching its pattern.
	DirectiveAllow DirectiveKind = "allow"

	// DirectiveDisallow forbids paths matching its pattern.
	DirectiveDisallow DirectiveKind = "disallow"

	// DirectiveSitemap names a sitemap URL. It belongs to the file, not a group.
	DirectiveSitemap DirectiveKind = "sitemap"

	// DirectiveCrawlDelay is the non-standard delay between requests, in seconds.
	DirectiveCrawlDelay DirectiveKind = "crawl-delay"

	// DirectiveRequestRate is the non-standard "requests/seconds" limit.
	DirectiveRequestRate DirectiveKind = "request-rate"

	// DirectiveContentSignal is the non-standard AI usage preference extension.
	DirectiveContentSignal DirectiveKind = "content-signal"

	// DirectiveUnknown is any other key. It is kept but never affects matching.
	DirectiveUnknown DirectiveKind = "unknown"
)

// IsValid returns true if the directive kind is recognised.
func (k DirectiveKind) IsValid() bool {
	switch k {
	case DirectiveUserAgent, DirectiveAllow, DirectiveDisallow, DirectiveSitemap,
		DirectiveCrawlDelay, DirectiveRequestRate, DirectiveContentSignal, DirectiveUnknown:
		return true
	default:
		return false
	}
}

// IsGroupMember returns true if the directive attaches to the current group.
// A User-agent line that follows a group member starts a new group.
func (k DirectiveKind) IsGroupMember() bool {
	switch k {
	case DirectiveAllow, DirectiveDisallow, DirectiveCrawlDelay,
		DirectiveRequestRate, DirectiveContentSignal:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k DirectiveKind) String() string {
	return string(k)
}

// Directive is one parsed "key: value" line.
// The typed payload fields are only set for the matching kind.
type Directive struct {
	// Kind is the classified key.
	Kind DirectiveKind

	// Key is the key text as written in the file, trimmed.
	Key string

	// Value is the trimmed value with any trailing comment removed.
	Value string

	// Line is the 1-based line number in the input.
	Line int

	// Typo reports that the key was an accepted misspelling (e.g. "disalow").
	Typo bool

	// CrawlDelay is the parsed value of a crawl-delay directive.
	CrawlDelay float64

	// RequestRate is the parsed value of a request-rate directive.
	RequestRate RequestRate

	// ContentSignal is the parsed value of a content-signal directive.
	ContentSignal ContentSignal
}

// Verdict is the outcome a rule asks for.
type Verdict string

// Rule verdicts.
const (
	VerdictAllow    Verdict = "allow"
	VerdictDisallow Verdict = "disallow"
)

// String returns the string representation.
func (v Verdict) String() string {
	return string(v)
}

// Rule is one Allow or Disallow pattern belonging to a group.
type Rule struct {
	// Pattern is the normalised pattern used for matching.
	Pattern string `json:"pattern" yaml:"pattern"`

	// Verdict is allow or disallow.
	Verdict Verdict `json:"verdict" yaml:"verdict"`

	// SourceLine is the 1-based line the rule was read from.
	SourceLine int `json:"source_line" yaml:"source_line"`
}

// WildcardAgent is the user-agent token addressing every crawler.
const WildcardAgent = "*"

// Group is the set of rules and signals addressed to one or more user-agents.
type Group struct {
	// Agents holds the case-folded, deduplicated agent tokens in file order.
	Agents []string `json:"agents" yaml:"agents"`

	// Rules holds the Allow/Disallow rules in file order.
	Rules []Rule `json:"rules" yaml:"rules"`

	// CrawlDelay is the crawl-delay in seconds, nil when absent.
	CrawlDelay *float64 `json:"crawl_delay,omitempty" yaml:"crawl_delay,omitempty"`

	// RequestRate is the request-rate, nil when absent.
	RequestRate *RequestRate `json:"request_rate,omitempty" yaml:"request_rate,omitempty"`

	// ContentSignal is the content-signal, nil when absent.
	ContentSignal *ContentSignal `json:"content_signal,omitempty" yaml:"content_signal,omitempty"`

	// StartLine is the line of the group's first User-agent directive.
	StartLine int `json:"start_line" yaml:"start_line"`
}

// HasAgent reports whether the group lists the given case-folded token.
func (g *Group) HasAgent(token string) bool {
	for _, a := range g.Agents {
		if a == token {
			return true
		}
	}
	return false
}

// IsWildcard reports whether the group addresses every crawler.
func (g *Group) IsWildcard() bool {
	return g.HasAgent(WildcardAgent)
}

// HasSpecificAgent reports whether the group names any crawler other than "*".
func (g *Group) HasSpecificAgent() bool {
	for _, a := range g.Agents {
		if a != WildcardAgent {
			return true
		}
	}
	return false
}

// ParseResult is the grouped form of one robots.txt file.
// It is not mutated after construction and may be shared between goroutines.
type ParseResult struct {
	// Groups preserves file order.
	Groups []Group `json:"groups" yaml:"groups"`

	// SawSpecificAgent is true iff any group names an agent other than "*".
	SawSpecificAgent bool `json:"saw_specific_agent" yaml:"saw_specific_agent"`

	// Sitemaps lists sitemap URLs in file order.
	Sitemaps []string `json:"sitemaps,omitempty" yaml:"sitemaps,omitempty"`

	// Diagnostics lists lines that were ignored, dropped or accepted as typos.
	Diagnostics []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}
