package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/robots-cli/internal/core/domain"
)

// CheckInput is the input schema for the check_robots tool.
type CheckInput struct {
	Robots     string   `json:"robots,omitempty" jsonschema:"the robots.txt content"`
	RobotsPath string   `json:"robots_path,omitempty" jsonschema:"path to a local robots.txt file, used when robots is empty"`
	Agents     []string `json:"agents,omitempty" jsonschema:"user-agent product tokens of the crawler (default from settings)"`
	URLs       []string `json:"urls" jsonschema:"URLs or paths to check"`
}

// CheckOutput is the output schema for the check_robots tool.
type CheckOutput struct {
	Results []CheckResultOutput `json:"results"`
	Count   int                 `json:"count"`
}

// CheckResultOutput is the verdict for one URL.
type CheckResultOutput struct {
	URL           string                `json:"url"`
	Allowed       bool                  `json:"allowed"`
	MatchingLine  int                   `json:"matching_line"`
	MatchedAgent  string                `json:"matched_agent,omitempty"`
	CrawlDelay    *float64              `json:"crawl_delay,omitempty"`
	RequestRate   *domain.RequestRate   `json:"request_rate,omitempty"`
	ContentSignal *domain.ContentSignal `json:"content_signal,omitempty"`
}

// LintInput is the input schema for the lint_robots tool.
type LintInput struct {
	Robots     string `json:"robots,omitempty" jsonschema:"the robots.txt content"`
	RobotsPath string `json:"robots_path,omitempty" jsonschema:"path to a local robots.txt file, used when robots is empty"`
}

// LintOutput is the output schema for the lint_robots tool.
type LintOutput struct {
	Diagnostics []DiagnosticOutput `json:"diagnostics"`
	Groups      int                `json:"groups"`
	Sitemaps    []string           `json:"sitemaps,omitempty"`
}

// DiagnosticOutput is one tolerated anomaly.
type DiagnosticOutput struct {
	Line    int    `json:"line"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ValidateAgentInput is the input schema for the validate_user_agent tool.
type ValidateAgentInput struct {
	Agent string `json:"agent" jsonschema:"the user-agent product token to validate"`
}

// ValidateAgentOutput is the output schema for the validate_user_agent tool.
type ValidateAgentOutput struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "check_robots",
		Description: "Check whether a crawler may fetch URLs under a robots.txt file",
	}, s.handleCheck)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "lint_robots",
		Description: "Report lines of a robots.txt file that were ignored or corrected",
	}, s.handleLint)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "validate_user_agent",
		Description: "Check that a user-agent is a valid product token",
	}, s.handleValidateAgent)
}

// handleCheck handles the check_robots tool invocation.
func (s *Server) handleCheck(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CheckInput,
) (*mcp.CallToolResult, CheckOutput, error) {
	body, err := s.robotsBody(ctx, input.Robots, input.RobotsPath)
	if err != nil {
		return nil, CheckOutput{}, err
	}

	agents := input.Agents
	if len(agents) == 0 {
		agents = s.defaultAgents()
	}

	results, err := s.ports.Robots.CheckBatch(ctx, domain.BatchRequest{
		Robots: body,
		Agents: agents,
		URLs:   input.URLs,
	})
	if err != nil {
		return nil, CheckOutput{}, err
	}

	output := CheckOutput{
		Results: make([]CheckResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		o := &results[i].Outcome
		output.Results[i] = CheckResultOutput{
			URL:           results[i].URL,
			Allowed:       o.Allowed,
			MatchingLine:  o.MatchingLine,
			MatchedAgent:  o.MatchedAgent,
			CrawlDelay:    o.CrawlDelay,
			RequestRate:   o.RequestRate,
			ContentSignal: o.ContentSignal,
		}
	}

	return nil, output, nil
}

// handleLint handles the lint_robots tool invocation.
func (s *Server) handleLint(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LintInput,
) (*mcp.CallToolResult, LintOutput, error) {
	body, err := s.robotsBody(ctx, input.Robots, input.RobotsPath)
	if err != nil {
		return nil, LintOutput{}, err
	}

	result, err := s.ports.Robots.Parse(ctx, body)
	if err != nil {
		return nil, LintOutput{}, err
	}

	output := LintOutput{
		Diagnostics: make([]DiagnosticOutput, len(result.Diagnostics)),
		Groups:      len(result.Groups),
		Sitemaps:    result.Sitemaps,
	}
	for i, d := range result.Diagnostics {
		output.Diagnostics[i] = DiagnosticOutput{
			Line:    d.Line,
			Kind:    string(d.Kind),
			Message: d.String(),
		}
	}

	return nil, output, nil
}

// handleValidateAgent handles the validate_user_agent tool invocation.
func (s *Server) handleValidateAgent(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ValidateAgentInput,
) (*mcp.CallToolResult, ValidateAgentOutput, error) {
	if err := s.ports.Robots.ValidateUserAgent(input.Agent); err != nil {
		return nil, ValidateAgentOutput{Valid: false, Reason: err.Error()}, nil
	}
	return nil, ValidateAgentOutput{Valid: true}, nil
}

// robotsBody returns inline content, or loads path through the service.
func (s *Server) robotsBody(ctx context.Context, content, path string) ([]byte, error) {
	switch {
	case content != "":
		return []byte(content), nil
	case path != "":
		body, err := s.ports.Robots.Load(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return body, nil
	default:
		return nil, errNoRobots
	}
}

// defaultAgents returns the configured default agent, if any.
func (s *Server) defaultAgents() []string {
	if s.ports.Settings == nil {
		return nil
	}
	settings, err := s.ports.Settings.Get()
	if err != nil || settings.Agent.Default == "" {
		return nil
	}
	return []string{settings.Agent.Default}
}
