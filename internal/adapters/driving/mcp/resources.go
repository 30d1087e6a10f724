package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/robots-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for robots resources.
	uriScheme = "robots://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "engine",
		Name:        "engine",
		Description: "Engine version and Content-Signal support",
		MIMEType:    "application/json",
	}, s.handleEngineResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Current settings",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "diagnostics/{kind}",
		Name:        "diagnostic-kind",
		Description: "Explanation of a lint diagnostic kind",
		MIMEType:    "text/plain",
	}, s.handleDiagnosticResource)
}

// handleEngineResource describes the engine build.
func (s *Server) handleEngineResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.ports.Robots.Info())
}

// handleSettingsResource returns the current settings, or an empty object
// when no settings service is wired.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Settings == nil {
		return textResource(req.Params.URI, "application/json", "{}"), nil
	}

	settings, err := s.ports.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	return jsonResource(req.Params.URI, settingsView(settings))
}

// handleDiagnosticResource explains one diagnostic kind.
func (s *Server) handleDiagnosticResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	kind := extractDiagnosticKind(req.Params.URI)
	if kind == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	description := domain.DiagnosticKind(kind).Description()
	if description == "Unknown" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return textResource(req.Params.URI, "text/plain", description), nil
}

// extractDiagnosticKind extracts the kind from robots://diagnostics/{kind}.
func extractDiagnosticKind(uri string) string {
	const prefix = uriScheme + "diagnostics/"
	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	kind := strings.TrimPrefix(uri, prefix)
	if strings.Contains(kind, "/") {
		return ""
	}
	return kind
}

// settingsView flattens settings to their config keys.
func settingsView(s *domain.AppSettings) map[string]any {
	return map[string]any{
		"agent.default":          s.Agent.Default,
		"agent.strict":           s.Agent.Strict,
		"output.format":          s.Output.Format,
		"output.color":           s.Output.Color,
		"parser.content_signal":  s.Parser.ContentSignal,
		"parser.max_line_length": s.Parser.MaxLineLength,
		"batch.workers":          s.Batch.Workers,
	}
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return textResource(uri, "application/json", string(data)), nil
}

func textResource(uri, mimeType, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeType,
			Text:     text,
		}},
	}
}
