// Package config provides configuration management for the seismic aggregation service.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file loaded through godotenv.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: MySQL/SQLite connection details
//   - Storage: S3/MinIO credentials for the raw payload archive
//   - Log: Logging level and format
//   - Providers: USGS/EMSC base URLs and timeouts
//   - Weather: upstream weather API keys
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
