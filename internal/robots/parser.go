package robots

import (
	"fmt"
	"iter"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/robots-cli/internal/core/domain"
)

type keyInfo struct {
	kind domain.DirectiveKind
	typo bool
}

// directiveKeys maps lower-cased keys, including common misspellings seen
// in the wild, to their directive kind.
var directiveKeys = map[string]keyInfo{
	"user-agent":     {domain.DirectiveUserAgent, false},
	"useragent":      {domain.DirectiveUserAgent, true},
	"user agent":     {domain.DirectiveUserAgent, true},
	"allow":          {domain.DirectiveAllow, false},
	"disallow":       {domain.DirectiveDisallow, false},
	"dissallow":      {domain.DirectiveDisallow, true},
	"dissalow":       {domain.DirectiveDisallow, true},
	"disalow":        {domain.DirectiveDisallow, true},
	"diasllow":       {domain.DirectiveDisallow, true},
	"disallaw":       {domain.DirectiveDisallow, true},
	"sitemap":        {domain.DirectiveSitemap, false},
	"site-map":       {domain.DirectiveSitemap, true},
	"crawl-delay":    {domain.DirectiveCrawlDelay, false},
	"crawldelay":     {domain.DirectiveCrawlDelay, true},
	"request-rate":   {domain.DirectiveRequestRate, false},
	"requestrate":    {domain.DirectiveRequestRate, true},
	"content-signal": {domain.DirectiveContentSignal, false},
	"contentsignal":  {domain.DirectiveContentSignal, true},
}

// Directives returns the directives of body in file order. Lines that do
// not form a valid directive are skipped.
func Directives(body []byte, opts ...Option) iter.Seq[domain.Directive] {
	return scan(body, newConfig(opts), nil)
}

// scan is Directives with a diagnostics callback. report may be nil.
func scan(body []byte, cfg config, report func(domain.Diagnostic)) iter.Seq[domain.Directive] {
	if report == nil {
		report = func(domain.Diagnostic) {}
	}
	return func(yield func(domain.Directive) bool) {
		for line := range scanLines(body, cfg.maxLineLength) {
			d, ok := parseLine(line, cfg, report)
			if !ok {
				continue
			}
			if !yield(d) {
				return
			}
		}
	}
}

func parseLine(line Line, cfg config, report func(domain.Diagnostic)) (domain.Directive, bool) {
	diag := func(kind domain.DiagnosticKind, detail string) {
		report(domain.Diagnostic{Line: line.Number, Kind: kind, Detail: detail})
	}

	if line.TooLong {
		diag(domain.DiagnosticLineTooLong, fmt.Sprintf("kept %d bytes", cfg.maxLineLength-1))
	}

	text := line.Text
	if i := strings.IndexByte(text, '#'); i >= 0 {
		text = text[:i]
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Directive{}, false
	}

	key, value, found := strings.Cut(text, ":")
	if !found {
		diag(domain.DiagnosticMissingColon, excerpt(text))
		return domain.Directive{}, false
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if key == "" {
		return domain.Directive{}, false
	}

	info := classifyKey(key, cfg)
	d := domain.Directive{
		Kind:  info.kind,
		Key:   key,
		Value: value,
		Line:  line.Number,
		Typo:  info.typo,
	}
	if d.Typo {
		diag(domain.DiagnosticTypo, key)
	}

	switch d.Kind {
	case domain.DirectiveUnknown:
		diag(domain.DiagnosticUnknownDirective, key)
	case domain.DirectiveCrawlDelay:
		delay, ok := parseCrawlDelay(value)
		if !ok {
			diag(domain.DiagnosticInvalidValue, key+": "+excerpt(value))
			return domain.Directive{}, false
		}
		d.CrawlDelay = delay
	case domain.DirectiveRequestRate:
		rate, ok := parseRequestRate(value)
		if !ok {
			diag(domain.DiagnosticInvalidValue, key+": "+excerpt(value))
			return domain.Directive{}, false
		}
		d.RequestRate = rate
	case domain.DirectiveContentSignal:
		signal, ok := parseContentSignal(value)
		if !ok {
			diag(domain.DiagnosticInvalidValue, key+": "+excerpt(value))
			return domain.Directive{}, false
		}
		d.ContentSignal = signal
	}
	return d, true
}

func classifyKey(key string, cfg config) keyInfo {
	info, ok := directiveKeys[strings.ToLower(key)]
	if !ok {
		return keyInfo{kind: domain.DirectiveUnknown}
	}
	if info.kind == domain.DirectiveContentSignal && !cfg.contentSignal {
		return keyInfo{kind: domain.DirectiveUnknown}
	}
	return info
}

// parseCrawlDelay accepts any non-negative finite number of seconds.
func parseCrawlDelay(value string) (float64, bool) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

// parseRequestRate accepts "N", "N/M", "Nr/Ms" and "N/Ms" with positive
// integers. A bare "N" means N requests per second.
func parseRequestRate(value string) (domain.RequestRate, bool) {
	reqPart, secPart, hasSlash := strings.Cut(strings.ToLower(value), "/")

	requests, ok := positiveInt(strings.TrimSuffix(strings.TrimSpace(reqPart), "r"))
	if !ok {
		return domain.RequestRate{}, false
	}
	if !hasSlash {
		return domain.RequestRate{Requests: requests, Seconds: 1}, true
	}
	seconds, ok := positiveInt(strings.TrimSuffix(strings.TrimSpace(secPart), "s"))
	if !ok {
		return domain.RequestRate{}, false
	}
	return domain.RequestRate{Requests: requests, Seconds: seconds}, true
}

func positiveInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// parseContentSignal reads comma-separated key=value pairs. Unknown keys
// and values are skipped; the first value given for a key wins.
func parseContentSignal(value string) (domain.ContentSignal, bool) {
	var signal domain.ContentSignal
	for _, pair := range strings.Split(value, ",") {
		k, v, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		state, ok := parseSignalValue(v)
		if !ok {
			continue
		}
		var field *domain.TriState
		switch strings.ToLower(strings.TrimSpace(k)) {
		case "ai-train":
			field = &signal.AITrain
		case "ai-input":
			field = &signal.AIInput
		case "search":
			field = &signal.Search
		default:
			continue
		}
		if !field.IsSet() {
			*field = state
		}
	}
	return signal, signal.HasAnySignal()
}

func parseSignalValue(v string) (domain.TriState, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "true", "1":
		return domain.TriStateAllow, true
	case "no", "false", "0":
		return domain.TriStateDisallow, true
	default:
		return domain.TriStateUnspecified, false
	}
}

// excerpt shortens s for use in a diagnostic.
func excerpt(s string) string {
	const maxExcerpt = 40
	if len(s) <= maxExcerpt {
		return s
	}
	cut := maxExcerpt
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
