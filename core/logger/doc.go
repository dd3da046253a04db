// Package logger builds the zap logger used across catalog-sync.
//
// New reads the log section of the configuration: level (debug, info, warn, error) and
// format (json for servers, console for the CLI).
//
// Two helpers attach correlation fields:
//   - WithRayID tags a logger with the ray id set by the rayid middleware.
//   - WithRun tags a logger with a sync run id, so every action of a run can be grepped.
//
//	log, _ := logger.New(&cfg.Log)
//	l := logger.WithRun(log, report.RunID.String())
//	l.Info("Sync finished", zap.Int("failed", report.Execution.Failed))
package logger
