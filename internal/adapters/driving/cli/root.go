// Package cli is the cobra command tree of the apexspec binary.
//
// Commands read the package-level services below. PersistentPreRunE wires
// them from the config file and flags; tests replace configure and set the
// services directly.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/apexspec-cli/internal/adapters/driven/auth"
	"github.com/custodia-labs/apexspec-cli/internal/adapters/driven/config/file"
	storagefile "github.com/custodia-labs/apexspec-cli/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/apexspec-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/apexspec-cli/internal/connectors/tooling"
	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
	"github.com/custodia-labs/apexspec-cli/internal/core/ports/driven"
	"github.com/custodia-labs/apexspec-cli/internal/core/ports/driving"
	"github.com/custodia-labs/apexspec-cli/internal/core/services"
	"github.com/custodia-labs/apexspec-cli/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

// Persistent flag values.
var (
	verbose     bool
	configPath  string
	tokenFlag   string
	promptToken bool
	instanceURL string
	apiVersion  string
)

// Services used by the commands.
var (
	specService     driving.SpecService
	renderService   driving.RenderService
	queryService    driving.QueryService
	runService      driving.RunService
	settingsService driving.SettingsService
)

// apiErr explains why specService and queryService are unavailable.
var apiErr error

// closers run after the command finishes.
var closers []func() error

// configure wires the services before a command runs.
var configure = wireServices

var rootCmd = &cobra.Command{
	Use:   "apexspec",
	Short: "Generate Markdown specs for Salesforce Apex",
	Long: `apexspec compiles Apex classes and triggers check-only in a
MetadataContainer, reads their symbol tables and ApexDoc comments,
and writes one Markdown document per member.

Tokens are never stored. Pass --token, --prompt-token or set ` + auth.TokenEnvVar + `.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: preRun,
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return closeAll()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "print debug output to stderr")
	flags.StringVar(&configPath, "config", "", "config file (default ~/.apexspec/config.toml)")
	flags.StringVar(&tokenFlag, "token", "", "Salesforce access token")
	flags.BoolVar(&promptToken, "prompt-token", false, "read the access token from the terminal")
	flags.StringVar(&instanceURL, "instance-url", "", "org URL, overrides salesforce.instance_url")
	flags.StringVar(&apiVersion, "api-version", "", "API version, overrides salesforce.api_version")
}

// Execute runs the root command. An interrupt cancels the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func preRun(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if !needsServices(cmd) {
		return nil
	}
	return configure(cmd)
}

// needsServices is false for commands that only print.
func needsServices(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "gen-docs", "help", "completion":
		return false
	}
	return true
}

// wireServices builds every service from the config file and flags.
// Commands that need the API report apiErr when no token or instance URL
// is available.
func wireServices(cmd *cobra.Command) error {
	configStore, err := file.NewConfigStore(configPath)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	settingsSvc := services.NewSettingsService(configStore)
	settingsService = settingsSvc

	settings, err := settingsSvc.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	applyFlagOverrides(settings)

	store, err := sqlite.NewStore(filepath.Join(filepath.Dir(configStore.Path()), "data"))
	if err != nil {
		return fmt.Errorf("open run ledger: %w", err)
	}
	closers = append(closers, store.Close)
	runs := store.RunStore()
	runService = services.NewRunService(runs)

	archive := storagefile.NewArchive(settings.Paths.Archive)
	output := storagefile.NewArchive(settings.Paths.Output)
	renderer := services.NewRenderer(archive, output, *settings)
	renderService = renderer

	api, err := newAPI(cmd.Context(), cmd, *settings)
	if err != nil {
		apiErr = err
		specService = nil
		queryService = nil
		return nil
	}
	apiErr = nil
	specService = services.NewSpecBuilder(api, archive, runs, renderer, *settings)
	queryService = services.NewQueryService(api, settings.Query.Limit)
	return nil
}

func applyFlagOverrides(settings *domain.AppSettings) {
	if instanceURL != "" {
		settings.Salesforce.InstanceURL = strings.TrimRight(instanceURL, "/")
	}
	if apiVersion != "" {
		settings.Salesforce.APIVersion = strings.TrimPrefix(apiVersion, "v")
	}
}

// newAPI resolves the token and builds the Tooling API client.
func newAPI(ctx context.Context, cmd *cobra.Command, settings domain.AppSettings) (*tooling.API, error) {
	var prompted driven.TokenProvider
	if promptToken {
		token, err := readToken(cmd)
		if err != nil {
			return nil, err
		}
		prompted = auth.NewStaticTokenProvider(token)
	}
	provider := auth.NewChainTokenProvider(
		auth.NewStaticTokenProvider(tokenFlag),
		prompted,
		auth.NewEnvTokenProvider(""),
	)
	if !provider.IsAuthenticated() {
		return nil, fmt.Errorf("%w: use --token, --prompt-token or %s", domain.ErrAuthRequired, auth.TokenEnvVar)
	}
	token, err := provider.GetToken(ctx)
	if err != nil {
		return nil, err
	}

	authz := domain.Authorization{
		AccessToken: token,
		InstanceURL: settings.Salesforce.InstanceURL,
		APIVersion:  settings.Salesforce.APIVersion,
	}
	if err := authz.Validate(); err != nil {
		return nil, fmt.Errorf("%w (set salesforce.instance_url or pass --instance-url)", err)
	}

	var opts []tooling.TransportOption
	if strings.HasPrefix(authz.InstanceURL, "http://") {
		opts = append(opts, tooling.WithScheme("http"))
	}
	transport := tooling.NewHTTPTransport(ctx, provider, opts...)
	return tooling.NewAPI(authz, transport), nil
}

// apiUnavailable explains why the API backed services are missing.
func apiUnavailable() error {
	if apiErr != nil {
		return apiErr
	}
	return errors.New("tooling api not configured")
}

func closeAll() error {
	var errs []error
	for _, c := range closers {
		errs = append(errs, c())
	}
	closers = nil
	return errors.Join(errs...)
}

// Main runs the command tree and returns the process exit status.
func Main() int {
	err := Execute()
	if cerr := closeAll(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		return 1
	}
	return 0
}
