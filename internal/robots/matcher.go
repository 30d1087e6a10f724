package robots

import (
	"strings"

	"github.com/custodia-labs/robots-cli/internal/core/domain"
)

// Matcher parses robots.txt files with a fixed set of options.
// A Matcher has no mutable state and may be shared between goroutines.
type Matcher struct {
	cfg config
}

// NewMatcher creates a matcher.
func NewMatcher(opts ...Option) *Matcher {
	return &Matcher{cfg: newConfig(opts)}
}

// ContentSignalEnabled reports whether content-signal lines are parsed.
func (m *Matcher) ContentSignalEnabled() bool {
	return m.cfg.contentSignal
}

// Parse parses body. It never fails; lines it cannot use are listed in the
// result's diagnostics.
func (m *Matcher) Parse(body []byte) *Robots {
	b := newGroupBuilder()
	for d := range scan(body, m.cfg, b.report) {
		b.add(d)
	}
	return &Robots{result: b.finish()}
}

// Check parses body and matches a single agent against url.
func (m *Matcher) Check(body []byte, agent, url string) domain.MatchOutcome {
	return m.Parse(body).Match([]string{agent}, url)
}

// CheckAgents parses body and matches url for a crawler known by several
// agent names, e.g. "googlebot" and "googlebot-news". The most specific
// group across all names applies.
func (m *Matcher) CheckAgents(body []byte, agents []string, url string) domain.MatchOutcome {
	return m.Parse(body).Match(agents, url)
}

// Robots is a parsed robots.txt file.
type Robots struct {
	result domain.ParseResult
}

// Result returns the parse result. Callers must not modify it.
func (r *Robots) Result() *domain.ParseResult {
	return &r.result
}

// Match decides whether a crawler known by agents may fetch url.
//
// The groups whose agent token is the longest match for any of the agents
// apply, merged in file order when several share that length. A later tied
// group is not ignored: its rules compete with the earlier group's. Without a
// named match the "*" groups apply; without those everything is allowed.
// Within the applicable rules the longest matching pattern decides, and
// Allow wins a tie with Disallow.
func (r *Robots) Match(agents []string, url string) domain.MatchOutcome {
	path := PathFromURL(url)
	out := domain.MatchOutcome{
		Allowed:               true,
		EverSeenSpecificAgent: r.result.SawSpecificAgent,
		Path:                  path,
	}

	groups, agent := r.selectGroups(agents)
	if len(groups) == 0 {
		return out
	}
	out.MatchedAgent = agent

	normalized := normalizePath(path)
	best := noMatch
	var winner *domain.Rule
	order := 0
	for _, g := range groups {
		for i := range g.Rules {
			rule := &g.Rules[i]
			order++
			if !Match(rule.Pattern, normalized) {
				continue
			}
			rank := specificity{
				length:    len(rule.Pattern),
				preferred: rule.Verdict == domain.VerdictAllow,
				order:     order,
			}
			if rank.beats(best) {
				best = rank
				winner = rule
			}
		}
		mergeSignals(&out, g)
	}

	if winner != nil {
		// An empty pattern matches everything and restricts nothing.
		out.Allowed = winner.Verdict == domain.VerdictAllow || winner.Pattern == ""
		out.MatchingLine = winner.SourceLine
	}
	return out
}

// selectGroups returns the groups that apply to agents and the group token
// that selected them.
func (r *Robots) selectGroups(agents []string) ([]*domain.Group, string) {
	best := noMatch
	token := ""
	var selected []*domain.Group
	for i := range r.result.Groups {
		g := &r.result.Groups[i]
		rank, t := groupRank(g, i, agents)
		switch {
		case rank == noMatch:
		case rank.sameRank(best):
			selected = append(selected, g)
		case rank.beats(best):
			best, token = rank, t
			selected = []*domain.Group{g}
		}
	}
	if len(selected) > 0 {
		return selected, token
	}

	for i := range r.result.Groups {
		if g := &r.result.Groups[i]; g.IsWildcard() {
			selected = append(selected, g)
		}
	}
	if len(selected) > 0 {
		return selected, domain.WildcardAgent
	}
	return nil, ""
}

// groupRank ranks g by its longest named token that matches any agent.
func groupRank(g *domain.Group, index int, agents []string) (specificity, string) {
	rank := noMatch
	token := ""
	for _, t := range g.Agents {
		if t == domain.WildcardAgent || len(t) <= rank.length {
			continue
		}
		for _, a := range agents {
			if agentMatches(t, a) {
				rank = specificity{length: len(t), order: index}
				token = t
				break
			}
		}
	}
	return rank, token
}

// agentMatches reports whether group token matches the caller's agent: the
// agent starts with the token, ignoring case, and the token ends on a
// product-token boundary. "googlebot" matches "Googlebot" and
// "Googlebot/2.1" but not "Googlebot-Image".
func agentMatches(token, agent string) bool {
	if len(agent) < len(token) || !strings.EqualFold(agent[:len(token)], token) {
		return false
	}
	return len(agent) == len(token) || !isProductTokenChar(agent[len(token)])
}

// mergeSignals copies the auxiliary values of g into out. Values already
// taken from an earlier group are kept.
func mergeSignals(out *domain.MatchOutcome, g *domain.Group) {
	if out.CrawlDelay == nil && g.CrawlDelay != nil {
		delay := *g.CrawlDelay
		out.CrawlDelay = &delay
	}
	if out.RequestRate == nil && g.RequestRate != nil {
		rate := *g.RequestRate
		out.RequestRate = &rate
	}
	if g.ContentSignal != nil {
		signal := *g.ContentSignal
		if out.ContentSignal != nil {
			signal = out.ContentSignal.Merge(signal)
		}
		out.ContentSignal = &signal
	}
}
