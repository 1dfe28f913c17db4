package domain

import "time"

// Default settings values.
const (
	DefaultAPIVersion    = "52.0"
	DefaultQueryLimit    = 50000
	DefaultPollInterval  = 3 * time.Second
	DefaultRenderWorkers = 4
	DefaultOutputDir     = "docs"
	DefaultArchiveDir    = ".apexspec/archive"
)

// SalesforceSettings identifies the org.
type SalesforceSettings struct {
	// InstanceURL is the org base URL.
	InstanceURL string

	// APIVersion is the REST API version, e.g. "52.0".
	APIVersion string
}

// PathSettings holds where generated and archived files go.
type PathSettings struct {
	// Output is the directory rendered Markdown is written under.
	Output string

	// Archive is the directory raw responses and symbol tables are written under.
	Archive string
}

// QuerySettings holds record retrieval options.
type QuerySettings struct {
	// Limit is the SOQL limit for record queries.
	Limit int
}

// PollSettings controls the compile wait loop.
type PollSettings struct {
	// Interval is the delay between status checks.
	Interval time.Duration

	// Timeout bounds the wait. Zero waits until a terminal state.
	Timeout time.Duration

	// ContinueOnError keeps polling after the server reports ErrorMsg.
	ContinueOnError bool
}

// RenderSettings controls document generation.
type RenderSettings struct {
	// Workers is the number of members rendered in parallel.
	Workers int

	// Verbose appends the Apex source body to each document.
	Verbose bool
}

// AppSettings aggregates all application settings.
type AppSettings struct {
	Salesforce SalesforceSettings
	Paths      PathSettings
	Query      QuerySettings
	Poll       PollSettings
	Render     RenderSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Salesforce: SalesforceSettings{
			APIVersion: DefaultAPIVersion,
		},
		Paths: PathSettings{
			Output:  DefaultOutputDir,
			Archive: DefaultArchiveDir,
		},
		Query: QuerySettings{
			Limit: DefaultQueryLimit,
		},
		Poll: PollSettings{
			Interval: DefaultPollInterval,
		},
		Render: RenderSettings{
			Workers: DefaultRenderWorkers,
		},
	}
}
