package migrate

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"

	"github.com/angelmondragon/packfinderz-pos/pkg/db"
)

func TestEmbeddedMigrationsAreValid(t *testing.T) {
	require.NoError(t, Validate())
}

func TestValidateFSRejectsBadFiles(t *testing.T) {
	bad := fstest.MapFS{
		"migrations/1_short.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")},
	}
	assert.Error(t, ValidateFS(bad, "migrations"))

	noDown := fstest.MapFS{
		"migrations/20260101000000_x.sql": {Data: []byte("-- +goose Up\nSELECT 1;\n")},
	}
	assert.Error(t, ValidateFS(noDown, "migrations"))

	dup := fstest.MapFS{
		"migrations/20260101000000_a.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")},
		"migrations/20260101000000_b.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")},
	}
	assert.Error(t, ValidateFS(dup, "migrations"))
}

func TestUpOnSQLite(t *testing.T) {
	conn, err := db.Open(sqlite.Open("file:migrate_up?mode=memory&cache=shared"))
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	ctx := context.Background()
	require.NoError(t, Up(ctx, sqlDB, db.DialectSQLite))
	// second run is a no-op
	require.NoError(t, Up(ctx, sqlDB, db.DialectSQLite))

	version, err := Version(ctx, sqlDB, db.DialectSQLite)
	require.NoError(t, err)
	assert.Equal(t, int64(20260301090200), version)

	for _, table := range []string{"kv_entries", "catalog_items", "customers", "sales"} {
		assert.Truef(t, conn.Migrator().HasTable(table), "expected table %s", table)
	}
}

func TestRunRequiresDB(t *testing.T) {
	assert.Error(t, Run(context.Background(), nil, db.DialectSQLite, "up"))
}
