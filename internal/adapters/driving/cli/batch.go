package cli

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/robots-cli/internal/core/domain"
	"github.com/custodia-labs/robots-cli/internal/pacing"
)

var (
	batchAgents       []string
	batchWorkers      int
	batchPace         bool
	batchPaceFallback time.Duration
	batchOnlyAllowed  bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <robots.txt> <urls-file|->",
	Short: "Check many URLs against one robots.txt",
	Long: `Check every URL in a file against one robots.txt file.

The URL file holds one URL or path per line; blank lines and lines
starting with '#' are skipped. Use "-" to read URLs from stdin.

With --pace, allowed URLs are printed no faster than the crawl-delay or
request-rate of the selected group, as a crawler honouring them would
fetch them.`,
	Args: cobra.ExactArgs(2),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringSliceVarP(&batchAgents, "agent", "a", nil, "user-agent token (default agent.default)")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "concurrent evaluations (default batch.workers)")
	batchCmd.Flags().BoolVar(&batchPace, "pace", false, "print allowed URLs at the pace the file asks for")
	batchCmd.Flags().DurationVar(&batchPaceFallback, "pace-fallback", 0, "interval used by --pace when the file sets none")
	batchCmd.Flags().BoolVar(&batchOnlyAllowed, "only-allowed", false, "print allowed URLs only")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	if err := requireRobots(); err != nil {
		return err
	}
	if args[0] == "-" && args[1] == "-" {
		return fmt.Errorf("%w: robots.txt and URLs cannot both come from stdin", domain.ErrInvalidInput)
	}

	agents, err := resolveAgents(batchAgents, false)
	if err != nil {
		return err
	}

	p, err := newPrinter(cmd)
	if err != nil {
		return err
	}
	if batchPace && p.structured() {
		return errors.New("--pace needs text output")
	}

	ctx := cmd.Context()
	body, err := robotsService.Load(ctx, args[0])
	if err != nil {
		return err
	}
	list, err := robotsService.Load(ctx, args[1])
	if err != nil {
		return err
	}

	urls, err := readURLs(list)
	if err != nil {
		return err
	}

	results, err := robotsService.CheckBatch(ctx, domain.BatchRequest{
		Robots:  body,
		Agents:  agents,
		URLs:    urls,
		Workers: batchWorkers,
	})
	if err != nil {
		return err
	}

	if batchOnlyAllowed {
		results = allowedOnly(results)
	}

	if p.structured() {
		views := make([]outcomeView, len(results))
		for i, r := range results {
			views[i] = outcomeView{URL: r.URL, MatchOutcome: r.Outcome}
		}
		return p.encode(views)
	}

	var limiter *pacing.Limiter
	for i := range results {
		r := &results[i]
		if batchPace && r.Outcome.Allowed {
			if limiter == nil {
				limiter = pacing.ForOutcome(&r.Outcome, batchPaceFallback)
			}
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
		}
		p.printf("%-10s %s\n", p.verdict(r.Outcome.Allowed), r.URL)
	}
	return nil
}

// maxURLLength bounds one line of a URL list.
const maxURLLength = 1024 * 1024

// readURLs splits a URL list, skipping blank lines and comments.
func readURLs(list []byte) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(bytes.NewReader(list))
	scanner.Buffer(make([]byte, 0, 64*1024), maxURLLength)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading URL %d: %w", domain.ErrInvalidInput, len(urls)+1, err)
	}
	return urls, nil
}

func allowedOnly(results []domain.BatchResult) []domain.BatchResult {
	kept := results[:0]
	for _, r := range results {
		if r.Outcome.Allowed {
			kept = append(kept, r)
		}
	}
	return kept
}
