// Package config provides configuration management for catalog-sync.
//
// It utilizes Viper for loading configuration from environment variables,
// a .env file and an optional config.yaml.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, request timeout)
//   - Database: run history database (mysql or sqlite)
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//   - Feed: feed location, format and column mapping
//   - Marketplace: marketplace provider and credentials
//   - Sync: dry-run default and report archiving
//
// Every key can be set from the environment by upper-casing it and replacing dots
// with underscores, e.g. MARKETPLACE_CLIENT_ID or FEED_PRICE_COLUMN.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
