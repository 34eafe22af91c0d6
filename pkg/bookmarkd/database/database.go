package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect initializes the database connection for the given driver and DSN.
// Supported drivers: sqlite (the default; tests use a ":memory:" DSN) and
// postgres.
func Connect(driver, dsn string) error {
	var err error
	switch driver {
	case "", "sqlite":
		DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	case "postgres":
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		return fmt.Errorf("unsupported DB driver %q: must be sqlite or postgres", driver)
	}
	return err
}

// GetDB returns the database instance.
func GetDB() *gorm.DB {
	return DB
}
