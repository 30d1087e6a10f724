package domain

import (
	"math"
	"time"
)

// MatchOutcome is the verdict for one (robots.txt, agent, URL) query.
// It is produced fresh per query.
type MatchOutcome struct {
	// Allowed is the final verdict.
	Allowed bool `json:"allowed" yaml:"allowed"`

	// MatchingLine is the line of the deciding rule, or 0 when no rule matched.
	MatchingLine int `json:"matching_line" yaml:"matching_line"`

	// EverSeenSpecificAgent reports whether the file names any crawler other
	// than "*", regardless of the group selected for this query.
	EverSeenSpecificAgent bool `json:"ever_seen_specific_agent" yaml:"ever_seen_specific_agent"`

	// CrawlDelay is the selected group's crawl-delay in seconds.
	CrawlDelay *float64 `json:"crawl_delay,omitempty" yaml:"crawl_delay,omitempty"`

	// RequestRate is the selected group's request-rate.
	RequestRate *RequestRate `json:"request_rate,omitempty" yaml:"request_rate,omitempty"`

	// ContentSignal is the selected group's content-signal.
	ContentSignal *ContentSignal `json:"content_signal,omitempty" yaml:"content_signal,omitempty"`

	// MatchedAgent is the group token that was selected: a product token,
	// "*" for the wildcard group, or empty when no group applied.
	MatchedAgent string `json:"matched_agent,omitempty" yaml:"matched_agent,omitempty"`

	// Path is the path and query the rules were matched against.
	Path string `json:"path" yaml:"path"`
}

// AllowsAITrain returns true unless the selected group disallows AI training.
func (o *MatchOutcome) AllowsAITrain() bool {
	return o.ContentSignal == nil || o.ContentSignal.AllowsAITrain()
}

// AllowsAIInput returns true unless the selected group disallows AI input use.
func (o *MatchOutcome) AllowsAIInput() bool {
	return o.ContentSignal == nil || o.ContentSignal.AllowsAIInput()
}

// AllowsSearch returns true unless the selected group disallows search indexing.
func (o *MatchOutcome) AllowsSearch() bool {
	return o.ContentSignal == nil || o.ContentSignal.AllowsSearch()
}

// MinInterval returns the minimum time between two requests asked for by the
// selected group. Crawl-delay takes precedence over request-rate. Zero means
// the file expresses no limit. Intervals too long for a time.Duration are
// capped at the largest one.
func (o *MatchOutcome) MinInterval() time.Duration {
	switch {
	case o.CrawlDelay != nil:
		return secondsToDuration(*o.CrawlDelay)
	case o.RequestRate != nil:
		return secondsToDuration(o.RequestRate.DelaySeconds())
	default:
		return 0
	}
}

func secondsToDuration(seconds float64) time.Duration {
	d := seconds * float64(time.Second)
	if d >= float64(math.MaxInt64) {
		return time.Duration(math.MaxInt64)
	}
	if d <= 0 {
		return 0
	}
	return time.Duration(d)
}
