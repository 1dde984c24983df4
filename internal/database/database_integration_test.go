package database

import (
	"agency/config"
	"agency/internal/logger"
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMemoryDB(t *testing.T) *DB {
	t.Helper()
	db := &DB{log: logger.New("test")}
	require.NoError(t, db.initializeSQLiteDB(&gorm.Config{}, config.Config{DatabaseDbPath: ":memory:"}))
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNew_WithoutCache(t *testing.T) {
	db, err := New(config.Config{
		DatabaseDriver: config.DriverSQLite,
		DatabaseDbPath: ":memory:",
	})
	require.NoError(t, err)
	defer db.Close()

	assert.NotNil(t, db.SQL)
	assert.Nil(t, db.Cache.General)
	assert.Nil(t, db.Cache.Customer)
	assert.Equal(t, config.DriverSQLite, db.Driver)
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(config.Config{DatabaseDriver: config.DriverSQLite})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database path is empty")

	_, err = New(config.Config{DatabaseDriver: "mysql", DatabaseDbPath: "x.db"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")

	_, err = New(config.Config{DatabaseDriver: config.DriverPostgres})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database host or name is empty")
}

func TestInitializeSQLiteDB_CreatesFile(t *testing.T) {
	db := &DB{log: logger.New("test")}
	dbPath := filepath.Join(t.TempDir(), "nested", "agency.db")

	err := db.initializeSQLiteDB(&gorm.Config{}, config.Config{DatabaseDbPath: dbPath})
	require.NoError(t, err)
	defer db.Close()

	assert.FileExists(t, dbPath)
}

func TestInitializeCacheDB_Disabled(t *testing.T) {
	db := &DB{log: logger.New("test")}

	assert.NoError(t, db.initializeCacheDB(config.Config{DatabaseCachePort: 6379}))
	assert.Nil(t, db.Cache.Session)

	err := db.initializeCacheDB(config.Config{DatabaseCacheAddress: "localhost"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache port is empty")
}

func TestMigrate(t *testing.T) {
	db := newMemoryDB(t)

	applied, err := db.Migrate()
	require.NoError(t, err)
	assert.Equal(t, 2, applied)

	for _, table := range []string{"customers", "agents", "documents", "communications", "communication_recipients", "payments"} {
		assert.True(t, db.SQL.Migrator().HasTable(table), "missing table %s", table)
	}

	applied, err = db.Migrate()
	require.NoError(t, err)
	assert.Equal(t, 0, applied)

	reverted, err := db.Rollback(1)
	require.NoError(t, err)
	assert.Equal(t, 1, reverted)
	assert.False(t, db.SQL.Migrator().HasTable("payments"))
	assert.True(t, db.SQL.Migrator().HasTable("customers"))
}

func TestClose_WithNilSQL(t *testing.T) {
	db := &DB{log: logger.New("test")}
	assert.NoError(t, db.Close())
}

func TestSQLWithContext(t *testing.T) {
	db := newMemoryDB(t)

	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "value")

	assert.Equal(t, ctx, db.SQLWithContext(ctx).Statement.Context)
}

func TestTXDefer_Commits(t *testing.T) {
	db := newMemoryDB(t)
	require.NoError(t, db.SQL.Exec("CREATE TABLE test_table (id INTEGER PRIMARY KEY, name TEXT)").Error)

	tx := db.SQL.Begin()
	require.NoError(t, tx.Error)
	require.NoError(t, tx.Exec("INSERT INTO test_table (name) VALUES (?)", "test").Error)

	TXDefer(tx, db.log)

	var count int64
	require.NoError(t, db.SQL.Table("test_table").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestTXDefer_RollsBackOnError(t *testing.T) {
	db := newMemoryDB(t)
	require.NoError(t, db.SQL.Exec("CREATE TABLE test_table (id INTEGER PRIMARY KEY, name TEXT)").Error)

	tx := db.SQL.Begin()
	require.NoError(t, tx.Exec("INSERT INTO test_table (name) VALUES (?)", "test").Error)
	tx.Error = fmt.Errorf("simulated transaction error")

	TXDefer(tx, db.log)

	var count int64
	require.NoError(t, db.SQL.Table("test_table").Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCacheBuilder_NilClient(t *testing.T) {
	var dest map[string]string

	found, err := NewCacheBuilder(nil, "customer:1").WithContext(context.Background()).Get(&dest)
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, NewCacheBuilder(nil, "customer:1").WithStruct(map[string]string{"a": "b"}).Set())
	assert.NoError(t, NewCacheBuilder(nil, "customer:1").Delete())
}

func TestFlushCustomerCache_WithoutCache(t *testing.T) {
	db := &DB{log: logger.New("test")}
	assert.NoError(t, db.FlushCustomerCache(context.Background()))
}
