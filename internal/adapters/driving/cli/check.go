package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/robots-cli/internal/core/domain"
)

var (
	checkAgents []string
	checkStrict bool
)

var checkCmd = &cobra.Command{
	Use:   "check <robots.txt|-> <url>",
	Short: "Check whether a crawler may fetch a URL",
	Long: `Check whether a crawler may fetch a URL under a robots.txt file.

The robots.txt file is read from disk, or from stdin when given as "-".
Only the path and query of the URL are matched. Pass --agent more than
once to check a crawler that answers to several names.

Examples:
  robots check robots.txt https://example.com/private -a Googlebot
  curl -s https://example.com/robots.txt | robots check - /search -a FooBot`,
	Args: cobra.ExactArgs(2),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringSliceVarP(&checkAgents, "agent", "a", nil, "user-agent token (default agent.default)")
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "reject invalid user-agent tokens")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if err := requireRobots(); err != nil {
		return err
	}

	agents, err := resolveAgents(checkAgents, checkStrict)
	if err != nil {
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

	outcome, err := robotsService.Check(cmd.Context(), domain.CheckRequest{
		Robots: body,
		Agents: agents,
		URL:    args[1],
	})
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if p.structured() {
		return p.encode(outcomeView{URL: args[1], MatchOutcome: *outcome})
	}
	p.printOutcome(args[1], outcome)
	return nil
}

// resolveAgents returns the flag agents, or the configured default.
// With strict set every token must be a valid product token.
func resolveAgents(flagAgents []string, strict bool) ([]string, error) {
	agents := flagAgents
	if len(agents) == 0 && settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return nil, fmt.Errorf("failed to get settings: %w", err)
		}
		if settings.Agent.Default != "" {
			agents = []string{settings.Agent.Default}
		}
	}
	if len(agents) == 0 {
		return nil, errors.New("no user-agent: pass --agent or set agent.default")
	}

	if strict {
		for _, agent := range agents {
			if err := robotsService.ValidateUserAgent(agent); err != nil {
				return nil, err
			}
		}
	}
	return agents, nil
}
