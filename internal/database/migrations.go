package database

import (
	"fmt"

	"gorm.io/gorm"
)

// logIndexes are declared as tags on QueryLog and created by AutoMigrate.
var logIndexes = []string{"idx_logs_court", "idx_logs_timestamp"}

// Migrate creates the logs table and its indexes if they are absent. It is
// safe to run against an existing database file.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&QueryLog{}); err != nil {
		return err
	}

	for _, name := range logIndexes {
		if !db.Migrator().HasIndex(&QueryLog{}, name) {
			return fmt.Errorf("index %s missing after migration", name)
		}
	}

	return nil
}
