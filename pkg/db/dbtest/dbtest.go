// Package dbtest opens migrated in-memory sqlite databases for repository tests.
package dbtest

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/packfinderz-pos/pkg/db"
	"github.com/angelmondragon/packfinderz-pos/pkg/migrate"
)

var seq atomic.Int64

// Open returns a fresh, fully migrated sqlite database private to the test.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:dbtest_%d?mode=memory&cache=shared", seq.Add(1))
	conn, err := db.Open(sqlite.Open(dsn))
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := migrate.Up(context.Background(), sqlDB, db.DialectSQLite); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return conn
}

// Client wraps Open in a db.Client.
func Client(t *testing.T) *db.Client {
	t.Helper()
	return db.FromConn(Open(t), db.DialectSQLite)
}
