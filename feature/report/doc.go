// Package report persists sync run reports.
//
// Each run is stored twice: a summary row in sync_runs with one sync_outcomes row per
// planned action (Repository, gorm), and the full JSON report in the storage bucket
// (Archiver, minio). Dry runs are stored with every action in the "planned" status.
package report
