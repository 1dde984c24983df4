package database

import (
	"agency/config"
	"embed"

	migrate "github.com/rubenv/sql-migrate"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

func migrationSource() *migrate.EmbedFileSystemMigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationFiles,
		Root:       "migrations",
	}
}

func dialect(driver string) string {
	if driver == config.DriverPostgres {
		return "postgres"
	}
	return "sqlite3"
}

// Migrate applies every pending schema migration and returns how many ran.
func (s *DB) Migrate() (int, error) {
	log := s.log.Function("Migrate")

	sqlDB, err := s.SQL.DB()
	if err != nil {
		return 0, log.Err("failed to get database from GORM", err)
	}

	applied, err := migrate.Exec(sqlDB, dialect(s.Driver), migrationSource(), migrate.Up)
	if err != nil {
		return applied, log.Err("failed to apply migrations", err, "driver", s.Driver)
	}

	log.Info("Applied migrations", "count", applied)
	return applied, nil
}

// Rollback reverts up to steps migrations.
func (s *DB) Rollback(steps int) (int, error) {
	log := s.log.Function("Rollback")

	sqlDB, err := s.SQL.DB()
	if err != nil {
		return 0, log.Err("failed to get database from GORM", err)
	}

	reverted, err := migrate.ExecMax(sqlDB, dialect(s.Driver), migrationSource(), migrate.Down, steps)
	if err != nil {
		return reverted, log.Err("failed to roll back migrations", err, "driver", s.Driver)
	}

	log.Info("Rolled back migrations", "count", reverted)
	return reverted, nil
}
