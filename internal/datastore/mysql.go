package datastore

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/cwhicks/siteingest/internal/conf"
	"github.com/cwhicks/siteingest/internal/errors"
)

// MySQLStore implements DataStore for MySQL
type MySQLStore struct {
	DataStore
	Settings *conf.Settings
}

func validateMySQLConfig(settings *conf.Settings) error {
	mysqlConf := settings.Output.MySQL
	if mysqlConf.Host == "" || mysqlConf.Port == "" || mysqlConf.Database == "" {
		return errors.Newf("MySQL host, port and database must be configured").
			Category(errors.CategoryConfiguration).
			Build()
	}
	return nil
}

// Open sets up the MySQL database connection and runs migrations.
func (store *MySQLStore) Open() error {
	if err := validateMySQLConfig(store.Settings); err != nil {
		return err
	}

	mysqlConf := store.Settings.Output.MySQL
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		mysqlConf.Username, mysqlConf.Password, mysqlConf.Host, mysqlConf.Port, mysqlConf.Database)

	newLogger := createGormLogger(store.Settings.Debug)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return errors.New(fmt.Errorf("failed to open MySQL database: %w", err)).
			Category(errors.CategoryDatabase).
			Context("host", mysqlConf.Host).
			Context("database", mysqlConf.Database).
			Build()
	}

	store.DB = db
	connectionInfo := fmt.Sprintf("%s:%s/%s", mysqlConf.Host, mysqlConf.Port, mysqlConf.Database)
	return performAutoMigration(db, store.Settings.Debug, "MySQL", connectionInfo)
}

// Close closes the underlying MySQL database connection.
func (store *MySQLStore) Close() error {
	if store.DB == nil {
		return nil
	}
	sqlDB, err := store.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
