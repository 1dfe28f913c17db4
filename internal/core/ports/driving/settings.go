package driving

import "github.com/custodia-labs/apexspec-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings with defaults applied.
	Get() (*domain.AppSettings, error)

	// Set parses value for a known key and persists it.
	Set(key, value string) error

	// Keys returns every settable key, sorted.
	Keys() []string
}
