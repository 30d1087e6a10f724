package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "User-agent token utilities",
}

var agentValidateCmd = &cobra.Command{
	Use:   "validate <token>...",
	Short: "Check that user-agent tokens are valid product tokens",
	Long: `Check that each token contains only letters, digits, '-' and '_'.
Exits with an error when any token is invalid.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAgentValidate,
}

func init() {
	agentCmd.AddCommand(agentValidateCmd)
	rootCmd.AddCommand(agentCmd)
}

// agentView is the structured form of one validation.
type agentView struct {
	Agent  string `json:"agent" yaml:"agent"`
	Valid  bool   `json:"valid" yaml:"valid"`
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

func runAgentValidate(cmd *cobra.Command, args []string) error {
	if err := requireRobots(); err != nil {
		return err
	}

	p, err := newPrinter(cmd)
	if err != nil {
		return err
	}

	views := make([]agentView, len(args))
	invalid := 0
	for i, agent := range args {
		views[i] = agentView{Agent: agent, Valid: true}
		if err := robotsService.ValidateUserAgent(agent); err != nil {
			views[i].Valid = false
			views[i].Reason = err.Error()
			invalid++
		}
	}

	if p.structured() {
		if err := p.encode(views); err != nil {
			return err
		}
	} else {
		for _, v := range views {
			if v.Valid {
				p.printf("%-8s %s\n", p.style(p.allow, "ok"), v.Agent)
			} else {
				p.printf("%-8s %s\n", p.style(p.deny, "invalid"), v.Agent)
			}
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d user-agents invalid", invalid, len(args))
	}
	return nil
}
