package driving

import "github.com/custodia-labs/robots-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates a single setting by its dotted key, e.g. "output.format".
	// Returns domain.ErrUnknownSetting for unknown keys and
	// domain.ErrInvalidInput for values that do not parse.
	Set(key, value string) error

	// Keys lists the settable keys in display order.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
