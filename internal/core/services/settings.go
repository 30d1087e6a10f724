package services

import (
	"fmt"
	"strconv"

	"github.com/custodia-labs/robots-cli/internal/core/domain"
	"github.com/custodia-labs/robots-cli/internal/core/ports/driven"
	"github.com/custodia-labs/robots-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyAgentDefault        = "agent.default"
	keyAgentStrict         = "agent.strict"
	keyOutputFormat        = "output.format"
	keyOutputColor         = "output.color"
	keyParserContentSignal = "parser.content_signal"
	keyParserMaxLineLength = "parser.max_line_length"
	keyBatchWorkers        = "batch.workers"
)

// maxWorkers bounds batch.workers.
const maxWorkers = 256

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings. Stored values that are
// missing or invalid fall back to the defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Agent: domain.AgentSettings{
			Default: s.configStore.GetString(keyAgentDefault),
			Strict:  s.getBool(keyAgentStrict, defaults.Agent.Strict),
		},
		Output: domain.OutputSettings{
			Format: s.getOutputFormat(defaults.Output.Format),
			Color:  s.getColorMode(defaults.Output.Color),
		},
		Parser: domain.ParserSettings{
			ContentSignal: s.getBool(keyParserContentSignal, defaults.Parser.ContentSignal),
			MaxLineLength: s.getInt(keyParserMaxLineLength, defaults.Parser.MaxLineLength),
		},
		Batch: domain.BatchSettings{
			Workers: s.getInt(keyBatchWorkers, defaults.Batch.Workers),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := validateSettings(settings); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyAgentDefault, settings.Agent.Default},
		{keyAgentStrict, settings.Agent.Strict},
		{keyOutputFormat, settings.Output.Format.String()},
		{keyOutputColor, settings.Output.Color.String()},
		{keyParserContentSignal, settings.Parser.ContentSignal},
		{keyParserMaxLineLength, settings.Parser.MaxLineLength},
		{keyBatchWorkers, settings.Batch.Workers},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// Set updates a single setting by its dotted key.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case keyAgentDefault:
		settings.Agent.Default = value
	case keyAgentStrict:
		settings.Agent.Strict, err = parseBool(key, value)
	case keyOutputFormat:
		settings.Output.Format = domain.OutputFormat(value)
	case keyOutputColor:
		settings.Output.Color = domain.ColorMode(value)
	case keyParserContentSignal:
		settings.Parser.ContentSignal, err = parseBool(key, value)
	case keyParserMaxLineLength:
		settings.Parser.MaxLineLength, err = parseInt(key, value)
	case keyBatchWorkers:
		settings.Batch.Workers, err = parseInt(key, value)
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnknownSetting, key)
	}
	if err != nil {
		return err
	}

	return s.Save(settings)
}

// Keys lists the settable keys in display order.
func (s *SettingsService) Keys() []string {
	return []string{
		keyAgentDefault,
		keyAgentStrict,
		keyOutputFormat,
		keyOutputColor,
		keyParserContentSignal,
		keyParserMaxLineLength,
		keyBatchWorkers,
	}
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func validateSettings(settings *domain.AppSettings) error {
	if !settings.Output.Format.IsValid() {
		return fmt.Errorf("%w: output format %q", domain.ErrInvalidInput, settings.Output.Format)
	}
	if !settings.Output.Color.IsValid() {
		return fmt.Errorf("%w: color mode %q", domain.ErrInvalidInput, settings.Output.Color)
	}
	if settings.Parser.MaxLineLength < 2 {
		return fmt.Errorf("%w: max line length must be at least 2", domain.ErrInvalidInput)
	}
	if settings.Batch.Workers < 1 || settings.Batch.Workers > maxWorkers {
		return fmt.Errorf("%w: workers must be between 1 and %d", domain.ErrInvalidInput, maxWorkers)
	}
	return nil
}

func parseBool(key, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%w: %s expects true or false, got %q", domain.ErrInvalidInput, key, value)
	}
	return b, nil
}

func parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s expects a number, got %q", domain.ErrInvalidInput, key, value)
	}
	return n, nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getOutputFormat(defaultVal domain.OutputFormat) domain.OutputFormat {
	format := domain.OutputFormat(s.configStore.GetString(keyOutputFormat))
	if !format.IsValid() {
		return defaultVal
	}
	return format
}

func (s *SettingsService) getColorMode(defaultVal domain.ColorMode) domain.ColorMode {
	mode := domain.ColorMode(s.configStore.GetString(keyOutputColor))
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}
