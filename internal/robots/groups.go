package robots

import (
	"iter"
	"strings"
	"unicode"

	"github.com/custodia-labs/robots-cli/internal/core/domain"
)

// BuildGroups partitions a directive sequence into user-agent groups.
//
// Consecutive User-agent lines share one group. The first group member
// (Allow, Disallow, Crawl-delay, Request-rate or Content-Signal) seals the
// group, and the next User-agent line opens a new one. Sitemap and unknown
// directives never seal a group. Members that appear before any User-agent
// line belong to no group and are dropped.
func BuildGroups(directives iter.Seq[domain.Directive]) domain.ParseResult {
	b := newGroupBuilder()
	for d := range directives {
		b.add(d)
	}
	return b.finish()
}

type groupBuilder struct {
	result  domain.ParseResult
	current int
	sealed  bool
}

func newGroupBuilder() *groupBuilder {
	return &groupBuilder{current: -1}
}

func (b *groupBuilder) report(d domain.Diagnostic) {
	b.result.Diagnostics = append(b.result.Diagnostics, d)
}

func (b *groupBuilder) add(d domain.Directive) {
	switch d.Kind {
	case domain.DirectiveUserAgent:
		b.addAgent(d)
		return
	case domain.DirectiveSitemap:
		if d.Value != "" {
			b.result.Sitemaps = append(b.result.Sitemaps, d.Value)
		}
		return
	case domain.DirectiveUnknown:
		return
	}

	if b.current < 0 {
		b.report(domain.Diagnostic{Line: d.Line, Kind: domain.DiagnosticOrphanRule, Detail: d.Key})
		return
	}
	b.sealed = true
	g := &b.result.Groups[b.current]

	switch d.Kind {
	case domain.DirectiveAllow:
		pattern := normalizePattern(d.Value)
		g.Rules = append(g.Rules, domain.Rule{Pattern: pattern, Verdict: domain.VerdictAllow, SourceLine: d.Line})
		if alt, ok := indexAlternate(pattern); ok {
			g.Rules = append(g.Rules, domain.Rule{Pattern: alt, Verdict: domain.VerdictAllow, SourceLine: d.Line})
		}
	case domain.DirectiveDisallow:
		g.Rules = append(g.Rules, domain.Rule{
			Pattern:    normalizePattern(d.Value),
			Verdict:    domain.VerdictDisallow,
			SourceLine: d.Line,
		})
	case domain.DirectiveCrawlDelay:
		if g.CrawlDelay == nil {
			delay := d.CrawlDelay
			g.CrawlDelay = &delay
		}
	case domain.DirectiveRequestRate:
		if g.RequestRate == nil {
			rate := d.RequestRate
			g.RequestRate = &rate
		}
	case domain.DirectiveContentSignal:
		signal := d.ContentSignal
		if g.ContentSignal != nil {
			signal = g.ContentSignal.Merge(signal)
		}
		g.ContentSignal = &signal
	}
}

func (b *groupBuilder) addAgent(d domain.Directive) {
	if b.current < 0 || b.sealed {
		b.result.Groups = append(b.result.Groups, domain.Group{StartLine: d.Line})
		b.current = len(b.result.Groups) - 1
		b.sealed = false
	}

	token := agentToken(d.Value)
	if token == "" {
		return
	}
	g := &b.result.Groups[b.current]
	if !g.HasAgent(token) {
		g.Agents = append(g.Agents, token)
	}
	if token != domain.WildcardAgent {
		b.result.SawSpecificAgent = true
	}
}

func (b *groupBuilder) finish() domain.ParseResult {
	return b.result
}

// agentToken reduces a User-agent value to the token used for matching:
// "*" for the wildcard, otherwise the case-folded product token
// ("Googlebot/2.1 (+http://...)" -> "googlebot").
func agentToken(value string) string {
	if strings.HasPrefix(value, "*") {
		rest := value[1:]
		if rest == "" || unicode.IsSpace(rune(rest[0])) {
			return domain.WildcardAgent
		}
	}
	return strings.ToLower(ProductToken(value))
}

// indexAlternate returns "/dir/$" for an Allow pattern whose last segment
// starts with "index.htm", so that allowing /dir/index.html also allows /dir/.
func indexAlternate(pattern string) (string, bool) {
	slash := strings.LastIndexByte(pattern, '/')
	if slash < 0 || !strings.HasPrefix(pattern[slash:], "/index.htm") {
		return "", false
	}
	return pattern[:slash+1] + "$", true
}
