package db

import (
	"fmt"

	"decision-coach/internal/config"
	"decision-coach/internal/logger"
	"decision-coach/internal/store"
	"decision-coach/internal/user"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// Open connects to Postgres when postgres.dsn is set, otherwise to the
// SQLite file at sqlite.path, and migrates the schema.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, name := dialectorFor(cfg)
	conn, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	if err := Migrate(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

func dialectorFor(cfg *config.Config) (gorm.Dialector, string) {
	if cfg.Postgres.DSN != "" {
		return postgres.Open(cfg.Postgres.DSN), "postgres"
	}
	return sqlite.Open(cfg.SQLite.Path), "sqlite"
}

func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(&user.User{}); err != nil {
		return fmt.Errorf("migrate users: %w", err)
	}
	if err := conn.AutoMigrate(&store.SavedDecision{}, &store.Draft{}); err != nil {
		return fmt.Errorf("migrate decisions: %w", err)
	}
	return nil
}

// Init opens the database and publishes it as DB.
func Init(cfg *config.Config, log *logger.Logger) error {
	conn, err := Open(cfg)
	if err != nil {
		return err
	}
	DB = conn
	_, name := dialectorFor(cfg)
	log.Info("database connected and migrated", "driver", name)
	return nil
}
