package services

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
	"github.com/custodia-labs/apexspec-cli/internal/core/ports/driven"
	"github.com/custodia-labs/apexspec-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyInstanceURL     = "salesforce.instance_url"
	keyAPIVersion      = "salesforce.api_version"
	keyOutputDir       = "paths.output"
	keyArchiveDir      = "paths.archive"
	keyQueryLimit      = "query.limit"
	keyPollInterval    = "poll.interval_seconds"
	keyPollTimeout     = "poll.timeout_seconds"
	keyContinueOnError = "poll.continue_on_error"
	keyRenderWorkers   = "render.workers"
	keyRenderVerbose   = "render.verbose"
)

// settingParser validates a raw value and returns what is stored.
type settingParser func(value string) (any, error)

var settingParsers = map[string]settingParser{
	keyInstanceURL:     parseInstanceURL,
	keyAPIVersion:      parseAPIVersion,
	keyOutputDir:       parsePath,
	keyArchiveDir:      parsePath,
	keyQueryLimit:      parseInt(1),
	keyPollInterval:    parseInt(1),
	keyPollTimeout:     parseInt(0),
	keyContinueOnError: parseBool,
	keyRenderWorkers:   parseInt(1),
	keyRenderVerbose:   parseBool,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Salesforce: domain.SalesforceSettings{
			InstanceURL: s.configStore.GetString(keyInstanceURL), // No default - every org differs
			APIVersion:  s.getString(keyAPIVersion, defaults.Salesforce.APIVersion),
		},
		Paths: domain.PathSettings{
			Output:  s.getString(keyOutputDir, defaults.Paths.Output),
			Archive: s.getString(keyArchiveDir, defaults.Paths.Archive),
		},
		Query: domain.QuerySettings{
			Limit: s.getInt(keyQueryLimit, defaults.Query.Limit),
		},
		Poll: domain.PollSettings{
			Interval:        s.getSeconds(keyPollInterval, defaults.Poll.Interval),
			Timeout:         s.getSeconds(keyPollTimeout, defaults.Poll.Timeout),
			ContinueOnError: s.getBool(keyContinueOnError, defaults.Poll.ContinueOnError),
		},
		Render: domain.RenderSettings{
			Workers: s.getInt(keyRenderWorkers, defaults.Render.Workers),
			Verbose: s.getBool(keyRenderVerbose, defaults.Render.Verbose),
		},
	}

	return settings, nil
}

// Set validates and persists one setting.
func (s *SettingsService) Set(key, value string) error {
	parse, ok := settingParsers[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	parsed, err := parse(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
	}
	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns the settable keys, sorted.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingParsers))
	for k := range settingParsers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
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

func (s *SettingsService) getSeconds(key string, defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return time.Duration(s.configStore.GetInt(key)) * time.Second
}

// Value parsers.

func parseInstanceURL(value string) (any, error) {
	u, err := url.Parse(value)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("not an absolute URL: %q", value)
	}
	return strings.TrimRight(value, "/"), nil
}

func parseAPIVersion(value string) (any, error) {
	v := strings.TrimPrefix(value, "v")
	if _, err := strconv.ParseFloat(v, 64); err != nil || !strings.Contains(v, ".") {
		return nil, fmt.Errorf("expected a version like 52.0, got %q", value)
	}
	return v, nil
}

func parsePath(value string) (any, error) {
	if value == "" {
		return nil, fmt.Errorf("path must not be empty")
	}
	return value, nil
}

func parseInt(minimum int) settingParser {
	return func(value string) (any, error) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("expected an integer, got %q", value)
		}
		if n < minimum {
			return nil, fmt.Errorf("must be at least %d", minimum)
		}
		return n, nil
	}
}

func parseBool(value string) (any, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil, fmt.Errorf("expected true or false, got %q", value)
	}
	return b, nil
}
