package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/robots-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change settings stored in ~/.robots/config.toml.

Keys:
  agent.default           user-agent used when --agent is not given
  agent.strict            reject invalid user-agent tokens (true/false)
  output.format           text, json or yaml
  output.color            auto, always or never
  parser.content_signal   honour Content-Signal lines (true/false)
  parser.max_line_length  longest line considered, in bytes
  batch.workers           concurrent evaluations in batch mode`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

// settingsEntry is one key and its current value.
type settingsEntry struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	p, err := newPrinter(cmd)
	if err != nil {
		return err
	}

	values := settingValues(settings)
	entries := make([]settingsEntry, 0, len(values))
	for _, key := range settingsService.Keys() {
		entries = append(entries, settingsEntry{Key: key, Value: values[key]})
	}

	if p.structured() {
		return p.encode(entries)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()
	for _, e := range entries {
		value := e.Value
		if value == "" {
			value = p.style(p.muted, "(not set)")
		}
		cmd.Printf("  %-24s %s\n", e.Key, value)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		if errors.Is(err, domain.ErrUnknownSetting) {
			return fmt.Errorf("%w (run 'robots settings show' for keys)", err)
		}
		return err
	}

	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}

// settingValues renders settings by config key.
func settingValues(s *domain.AppSettings) map[string]string {
	return map[string]string{
		"agent.default":          s.Agent.Default,
		"agent.strict":           fmt.Sprint(s.Agent.Strict),
		"output.format":          s.Output.Format.String(),
		"output.color":           s.Output.Color.String(),
		"parser.content_signal":  fmt.Sprint(s.Parser.ContentSignal),
		"parser.max_line_length": fmt.Sprint(s.Parser.MaxLineLength),
		"batch.workers":          fmt.Sprint(s.Batch.Workers),
	}
}
