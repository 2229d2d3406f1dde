package datastore

import (
	"log"
	"os"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/cwhicks/siteingest/internal/errors"
)

// slowQueryThreshold defines the duration after which a query is considered
// slow and logged by the GORM logger.
const slowQueryThreshold = 1 * time.Second

// createGormLogger configures and returns a new GORM logger instance.
// Queries are silent unless debug is enabled; slow queries and errors are
// always reported.
func createGormLogger(debug bool) gormlogger.Interface {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}

	return gormlogger.New(
		log.New(os.Stderr, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// performAutoMigration runs GORM auto-migration for all models and wraps any
// failure with database context.
func performAutoMigration(db *gorm.DB, debug bool, dbType, connectionInfo string) error {
	if err := db.AutoMigrate(&Video{}, &FetchRun{}, &City{}); err != nil {
		return errors.New(err).
			Category(errors.CategoryDatabase).
			Context("db_type", dbType).
			Context("operation", "auto-migrate").
			Build()
	}

	if debug {
		log.Printf("%s database connection initialized: %s", dbType, connectionInfo)
	}

	return nil
}
