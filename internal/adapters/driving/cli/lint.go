package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/robots-cli/internal/core/domain"
)

var lintFail bool

var lintCmd = &cobra.Command{
	Use:   "lint <robots.txt|->",
	Short: "Report ignored and corrected lines",
	Long: `Parse a robots.txt file and report every line that was ignored,
truncated or accepted as a misspelling. Parsing never fails; lint shows
what the parser made of the file.`,
	Args: cobra.ExactArgs(1),
	RunE: runLint,
}

func init() {
	lintCmd.Flags().BoolVar(&lintFail, "fail", false, "exit with an error when any diagnostic is reported")
	rootCmd.AddCommand(lintCmd)
}

// lintView is the structured form of a lint report.
type lintView struct {
	Groups      int                 `json:"groups" yaml:"groups"`
	Sitemaps    []string            `json:"sitemaps,omitempty" yaml:"sitemaps,omitempty"`
	Diagnostics []domain.Diagnostic `json:"diagnostics" yaml:"diagnostics"`
}

func runLint(cmd *cobra.Command, args []string) error {
	if err := requireRobots(); err != nil {
		return err
	}

	p, err := newPrinter(cmd)
	if err != nil {
		return err
	}

	body, err := robotsService.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	result, err := robotsService.Parse(cmd.Context(), body)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	if p.structured() {
		view := lintView{
			Groups:      len(result.Groups),
			Sitemaps:    result.Sitemaps,
			Diagnostics: result.Diagnostics,
		}
		if view.Diagnostics == nil {
			view.Diagnostics = []domain.Diagnostic{}
		}
		if err := p.encode(view); err != nil {
			return err
		}
	} else {
		for _, d := range result.Diagnostics {
			p.printf("%s\n", p.style(p.warn, d.String()))
		}
		p.printf("%d groups, %d sitemaps, %d diagnostics\n",
			len(result.Groups), len(result.Sitemaps), len(result.Diagnostics))
	}

	if lintFail && len(result.Diagnostics) > 0 {
		return fmt.Errorf("%d diagnostics", len(result.Diagnostics))
	}
	return nil
}
