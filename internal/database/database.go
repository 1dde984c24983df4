package database

import (
	"agency/config"
	logg "agency/internal/logger"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/valkey-io/valkey-go"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type CacheClient valkey.Client

// Cache holds one client per logical valkey database. Any of them may be nil when the
// cache is disabled; CacheBuilder treats a nil client as a permanent miss.
type Cache struct {
	General  CacheClient
	Session  CacheClient
	Customer CacheClient
	Events   CacheClient
}

const (
	cacheDBGeneral = iota
	cacheDBSession
	cacheDBCustomer
	cacheDBEvents
)

type DB struct {
	SQL    *gorm.DB
	Cache  Cache
	Driver string
	log    logg.Logger
}

func New(cfg config.Config) (DB, error) {
	log := logg.New("database").Function("New")

	log.Info("Initializing database", "driver", cfg.DatabaseDriver)
	db := &DB{log: log, Driver: cfg.DatabaseDriver}

	err := db.initializeDB(cfg)
	if err != nil {
		return DB{}, log.Err("failed to initialize database", err)
	}

	err = db.initializeCacheDB(cfg)
	if err != nil {
		_ = db.Close()
		return DB{}, log.Err("failed to initialize cache database", err)
	}

	return *db, nil
}

func TXDefer(tx *gorm.DB, log logg.Logger) {
	if tx.Error != nil {
		log.Er("failed to commit transaction", tx.Error)
		tx.Rollback()
	} else {
		err := tx.Commit().Error
		if err != nil {
			log.Er("failed to commit transaction", err)
		} else {
			log.Debug("committed transaction")
		}
	}
}

func gormConfig() *gorm.Config {
	gormLogger := logger.New(
		slog.NewLogLogger(slog.Default().Handler(), slog.LevelInfo),
		logger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  false,
		},
	)

	return &gorm.Config{
		Logger:                                   gormLogger,
		PrepareStmt:                              true,
		DisableForeignKeyConstraintWhenMigrating: false,
		CreateBatchSize:                          100,
		NowFunc:                                  func() time.Time { return time.Now().UTC() },
	}
}

func (s *DB) initializeDB(cfg config.Config) error {
	switch cfg.DatabaseDriver {
	case "", config.DriverSQLite:
		return s.initializeSQLiteDB(gormConfig(), cfg)
	case config.DriverPostgres:
		return s.initializePostgresDB(gormConfig(), cfg)
	default:
		return s.log.Function("initializeDB").
			Error("unsupported database driver", "driver", cfg.DatabaseDriver)
	}
}

func (s *DB) initializeSQLiteDB(gormConfig *gorm.Config, cfg config.Config) error {
	log := s.log.Function("initializeSQLiteDB")

	dbPath := cfg.DatabaseDbPath
	if dbPath == "" {
		return log.Error("database path is empty", "dbPath", dbPath)
	}

	inMemory := dbPath == ":memory:"
	if !inMemory {
		dir := filepath.Dir(dbPath)
		log.Info("Creating database directory", "dir", dir)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return log.Err("failed to create database directory", err, "dir", dir)
		}
	}

	log.Info("Connecting with GORM", "dbPath", dbPath)
	db, err := gorm.Open(sqlite.Open(dbPath), gormConfig)
	if err != nil {
		return log.Err("failed to open database with GORM", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return log.Err("failed to get database from GORM", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return log.Err("failed to ping database through GORM", err)
	}

	log.Info("Successfully connected with GORM")
	if inMemory {
		// every connection to :memory: opens a separate, empty database
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	s.SQL = db
	s.Driver = config.DriverSQLite

	return nil
}

func (s *DB) initializePostgresDB(gormConfig *gorm.Config, cfg config.Config) error {
	log := s.log.Function("initializePostgresDB")

	if cfg.DatabaseHost == "" || cfg.DatabaseName == "" {
		return log.Error("database host or name is empty",
			"host", cfg.DatabaseHost, "name", cfg.DatabaseName)
	}

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=prefer",
		cfg.DatabaseHost,
		cfg.DatabasePort,
		cfg.DatabaseUser,
		cfg.DatabasePassword,
		cfg.DatabaseName,
	)

	log.Info("Connecting with GORM", "host", cfg.DatabaseHost, "database", cfg.DatabaseName)
	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return log.Err("failed to open database with GORM", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return log.Err("failed to get database from GORM", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return log.Err("failed to ping database through GORM", err)
	}

	log.Info("Successfully connected with GORM")
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	s.SQL = db
	s.Driver = config.DriverPostgres

	return nil
}

func (s *DB) initializeCacheDB(cfg config.Config) error {
	log := s.log.Function("initializeCacheDB")

	if cfg.DatabaseCacheAddress == "" {
		log.Warn("cache address is empty, running without cache")
		return nil
	}

	if cfg.DatabaseCachePort == 0 {
		return log.Error("cache port is empty", "address", cfg.DatabaseCacheAddress)
	}

	address := fmt.Sprintf("%s:%d", cfg.DatabaseCacheAddress, cfg.DatabaseCachePort)

	clients := []struct {
		target *CacheClient
		db     int
		name   string
	}{
		{&s.Cache.General, cacheDBGeneral, "General"},
		{&s.Cache.Session, cacheDBSession, "Session"},
		{&s.Cache.Customer, cacheDBCustomer, "Customer"},
		{&s.Cache.Events, cacheDBEvents, "Events"},
	}

	for _, c := range clients {
		client, err := valkey.NewClient(valkey.ClientOption{
			InitAddress: []string{address},
			SelectDB:    c.db,
		})
		if err != nil {
			return log.Err("failed to connect to cache", err, "address", address, "cache", c.name)
		}
		*c.target = client
	}

	log.Info("Successfully connected to cache", "address", address)
	return nil
}

func (s *DB) Close() (err error) {
	if s.SQL != nil {
		sqlDB, err := s.SQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				_ = s.log.Err("failed to close database", err)
			}
		}
	}

	for _, client := range s.cacheClients() {
		if client.client != nil {
			client.client.Close()
		}
	}

	return
}

func (s *DB) SQLWithContext(ctx context.Context) *gorm.DB {
	return s.SQL.WithContext(ctx)
}

type namedCache struct {
	client CacheClient
	name   string
}

func (s *DB) cacheClients() []namedCache {
	return []namedCache{
		{s.Cache.General, "General"},
		{s.Cache.Session, "Session"},
		{s.Cache.Customer, "Customer"},
		{s.Cache.Events, "Events"},
	}
}

// FlushCustomerCache drops every cached customer, used after bulk changes such as seeding.
func (s *DB) FlushCustomerCache(ctx context.Context) error {
	log := s.log.Function("FlushCustomerCache")

	client := s.Cache.Customer
	if client == nil {
		return nil
	}

	if err := client.Do(ctx, client.B().Flushdb().Build()).Error(); err != nil {
		return log.Err("failed to flush customer cache", err)
	}

	log.Info("Flushed customer cache")
	return nil
}
