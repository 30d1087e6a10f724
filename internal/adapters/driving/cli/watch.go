package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/robots-cli/internal/core/domain"
	"github.com/custodia-labs/robots-cli/internal/logger"
)

var watchAgents []string

var watchCmd = &cobra.Command{
	Use:   "watch <robots.txt> <url>...",
	Short: "Re-check URLs every time a robots.txt file changes",
	Long: `Watch a robots.txt file and print fresh verdicts for the URLs each time
it changes. Runs until interrupted.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringSliceVarP(&watchAgents, "agent", "a", nil, "user-agent token (default agent.default)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := requireRobots(); err != nil {
		return err
	}

	agents, err := resolveAgents(watchAgents, false)
	if err != nil {
		return err
	}

	p, err := newPrinter(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	updates, err := robotsService.Watch(ctx, args[0])
	if err != nil {
		return err
	}

	urls := args[1:]
	for update := range updates {
		if update.Err != nil {
			logger.Warn("%v", update.Err)
			p.printf("%s %s\n", p.style(p.muted, stamp()), p.style(p.warn, update.Err.Error()))
			continue
		}

		results, err := robotsService.CheckBatch(ctx, domain.BatchRequest{
			Robots: update.Body,
			Agents: agents,
			URLs:   urls,
		})
		if err != nil {
			if errors.Is(err, context.Canceled) && ctx.Err() != nil {
				return nil
			}
			return err
		}

		if p.structured() {
			views := make([]outcomeView, len(results))
			for i, r := range results {
				views[i] = outcomeView{URL: r.URL, MatchOutcome: r.Outcome}
			}
			if err := p.encode(views); err != nil {
				return err
			}
			continue
		}

		p.printf("%s %s\n", p.style(p.muted, stamp()), update.Location)
		for i := range results {
			p.printOutcome(results[i].URL, &results[i].Outcome)
		}
	}
	return nil
}

func stamp() string {
	return time.Now().Format("15:04:05")
}
