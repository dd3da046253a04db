// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL (production) or SQLite
// (local runs and tests) connections from the application's configuration.
//
// # Schema Inspection
//
// GetTableColumns lists the live columns of a table for either dialect, and
// CheckModelTable compares a GORM model with its table. The integrity feature uses
// both to verify that the run report tables were migrated.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "sync_runs")
package database
