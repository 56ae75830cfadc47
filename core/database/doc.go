// Package database handles the connection of the optional run journal.
//
// It wraps GORM to open either a MySQL server or a SQLite file, based on the
// application's configuration, with pool settings and a ping bounded by the configured
// timeout.
//
// # Schema Inspection
//
// TableColumns and MissingColumns read the live columns of a table. The journal uses
// them after migrating to detect tables of the same name created by something else.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logger.Warn("Journal disabled", zap.Error(err))
//	}
package database
