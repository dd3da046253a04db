package catalog

// Config holds configuration for sync runs.
type Config struct {
	// DryRun plans without executing when a trigger does not say otherwise.
	DryRun bool `mapstructure:"dry_run" default:"false"`
	// ReportPrefix is the storage prefix for archived run reports.
	ReportPrefix string `mapstructure:"report_prefix" default:"reports/"`
	// Archive enables writing full reports to storage.
	Archive bool `mapstructure:"archive" default:"true"`
	// HistoryLimit is the default number of runs returned by listings.
	HistoryLimit int `mapstructure:"history_limit" default:"20"`
	// TriggersPerMinute rate limits POST /sync. Zero disables the limit.
	TriggersPerMinute int `mapstructure:"triggers_per_minute" default:"6"`
}
