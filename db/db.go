package db

import (
	"attendance/config"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var Instance *gorm.DB

// Init connects to MySQL, PostgreSQL or SQLite, in that order of preference
func Init() error {
	var dialector gorm.Dialector
	if config.MYSQL_DSN != "" {
		dialector = mysql.Open(config.MYSQL_DSN)
	} else if config.POSTGRES_DSN != "" {
		dialector = postgres.Open(config.POSTGRES_DSN)
	} else if config.SQLITE_FILE != "" {
		dialector = sqlite.Open(config.SQLITE_FILE)
	} else {
		return fmt.Errorf("no database configured: set MYSQL_DSN, POSTGRES_DSN or SQLITE_FILE")
	}
	return InitWith(dialector)
}

func InitWith(dialector gorm.Dialector) error {
	logLevel := logger.Warn
	if !config.DEBUG_MODE {
		logLevel = logger.Error
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		Logger:                 logger.Default.LogMode(logLevel),
	})
	if err != nil || db == nil {
		return fmt.Errorf("database open: %w", err)
	}
	Instance = db
	return nil
}
