package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/robots-cli/internal/core/domain"
)

// outputFormat is the --format flag. Empty uses the output.format setting.
var outputFormat string

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "o", "", "output format: text, json or yaml")
}

// palette holds the verdict colours.
var palette = struct {
	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color
	Muted   lipgloss.Color
}{
	Success: lipgloss.Color("#A6E3A1"),
	Error:   lipgloss.Color("#F38BA8"),
	Warning: lipgloss.Color("#F9E2AF"),
	Muted:   lipgloss.Color("#6C7086"),
}

// printer renders command results in the selected format.
type printer struct {
	w      io.Writer
	format domain.OutputFormat
	styled bool

	allow lipgloss.Style
	deny  lipgloss.Style
	warn  lipgloss.Style
	muted lipgloss.Style
}

// newPrinter resolves the output format and colour mode for cmd.
func newPrinter(cmd *cobra.Command) (*printer, error) {
	settings := domain.DefaultAppSettings()
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			settings = *s
		}
	}

	format := settings.Output.Format
	if outputFormat != "" {
		format = domain.OutputFormat(strings.ToLower(outputFormat))
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, outputFormat)
	}

	w := cmd.OutOrStdout()
	p := &printer{
		w:      w,
		format: format,
		styled: useColor(settings.Output.Color, w),
	}

	r := lipgloss.NewRenderer(w)
	p.allow = r.NewStyle().Foreground(palette.Success).Bold(true)
	p.deny = r.NewStyle().Foreground(palette.Error).Bold(true)
	p.warn = r.NewStyle().Foreground(palette.Warning)
	p.muted = r.NewStyle().Foreground(palette.Muted)
	return p, nil
}

// useColor reports whether output to w should be styled.
func useColor(mode domain.ColorMode, w io.Writer) bool {
	switch mode {
	case domain.ColorAlways:
		return true
	case domain.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// structured reports whether the format is machine-readable.
func (p *printer) structured() bool {
	return p.format != domain.OutputFormatText
}

// encode writes v as JSON or YAML.
func (p *printer) encode(v any) error {
	switch p.format {
	case domain.OutputFormatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case domain.OutputFormatYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, p.format)
	}
}

func (p *printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

func (p *printer) style(s lipgloss.Style, text string) string {
	if !p.styled {
		return text
	}
	return s.Render(text)
}

// verdict renders "allowed" or "disallowed".
func (p *printer) verdict(allowed bool) string {
	if allowed {
		return p.style(p.allow, "allowed")
	}
	return p.style(p.deny, "disallowed")
}

// outcomeView is the structured form of one verdict.
type outcomeView struct {
	URL                 string `json:"url" yaml:"url"`
	domain.MatchOutcome `yaml:",inline"`
}

// printOutcome writes the text form of one verdict.
func (p *printer) printOutcome(url string, o *domain.MatchOutcome) {
	p.printf("%-10s %s\n", p.verdict(o.Allowed), url)
	p.printOutcomeDetails(o)
}

func (p *printer) printOutcomeDetails(o *domain.MatchOutcome) {
	switch {
	case o.MatchedAgent == "":
		p.printf("  %s\n", p.style(p.muted, "no group applies"))
	case o.MatchingLine == 0:
		p.printf("  %s\n", p.style(p.muted, fmt.Sprintf("group %q, no rule matched %s", o.MatchedAgent, o.Path)))
	default:
		p.printf("  %s\n", p.style(p.muted, fmt.Sprintf("group %q, line %d", o.MatchedAgent, o.MatchingLine)))
	}
	if o.CrawlDelay != nil {
		p.printf("  crawl-delay: %gs\n", *o.CrawlDelay)
	}
	if o.RequestRate != nil {
		p.printf("  request-rate: %d/%ds\n", o.RequestRate.Requests, o.RequestRate.Seconds)
	}
	if o.ContentSignal != nil {
		p.printf("  content-signal: %s\n", formatSignal(o.ContentSignal))
	}
}

// formatSignal renders the set fields of a content-signal.
func formatSignal(c *domain.ContentSignal) string {
	var parts []string
	for _, f := range []struct {
		name  string
		value domain.TriState
	}{
		{"ai-train", c.AITrain},
		{"ai-input", c.AIInput},
		{"search", c.Search},
	} {
		if f.value.IsSet() {
			parts = append(parts, f.name+"="+f.value.String())
		}
	}
	return strings.Join(parts, ", ")
}
