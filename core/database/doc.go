// Package database handles database connections for the event store.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) that configures
// MySQL connections for deployments and SQLite connections for local runs and tests.
//
// # Connect
//
// The Connect function establishes a connection based on the configured driver.
// Error translation is enabled so unique constraint violations are reported as
// gorm.ErrDuplicatedKey by every backend, which the reconciliation logic depends on.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
