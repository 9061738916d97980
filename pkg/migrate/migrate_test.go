package migrate_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/angelmondragon/shoppingcart/pkg/config"
	"github.com/angelmondragon/shoppingcart/pkg/db"
	"github.com/angelmondragon/shoppingcart/pkg/migrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteClient(t *testing.T) *db.Client {
	t.Helper()
	client, err := db.New(context.Background(), config.DBConfig{
		Driver: config.DriverSQLite,
		DSN:    "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared",
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestUpCreatesSchema(t *testing.T) {
	client := newSQLiteClient(t)
	ctx := context.Background()

	require.NoError(t, migrate.Up(ctx, nil, client))

	for _, table := range []string{"products", "carts", "cart_items"} {
		assert.True(t, client.DB().Migrator().HasTable(table), "expected table %s", table)
	}
	assert.True(t, client.DB().Migrator().HasIndex("carts", "idx_carts_customer_name"))

	sqlDB, err := client.DB().DB()
	require.NoError(t, err)
	version, err := migrate.Version(ctx, sqlDB, client.Driver())
	require.NoError(t, err)
	assert.Equal(t, int64(20240610120000), version)

	// idempotent
	require.NoError(t, migrate.Up(ctx, nil, client))
}

func TestMigrateToVersionRollsBack(t *testing.T) {
	client := newSQLiteClient(t)
	ctx := context.Background()
	require.NoError(t, migrate.Up(ctx, nil, client))

	sqlDB, err := client.DB().DB()
	require.NoError(t, err)

	require.NoError(t, migrate.MigrateToVersion(ctx, sqlDB, client.Driver(), "0"))
	assert.False(t, client.DB().Migrator().HasTable("carts"))

	require.NoError(t, migrate.MigrateToVersion(ctx, sqlDB, client.Driver(), "20240610120000"))
	assert.True(t, client.DB().Migrator().HasTable("carts"))

	assert.Error(t, migrate.MigrateToVersion(ctx, sqlDB, client.Driver(), "latest"))
}

func TestMaybeRunHonoursFlag(t *testing.T) {
	client := newSQLiteClient(t)
	cfg := &config.Config{}

	require.NoError(t, migrate.MaybeRun(context.Background(), cfg, nil, client))
	assert.False(t, client.DB().Migrator().HasTable("carts"))

	cfg.DB.AutoMigrate = true
	require.NoError(t, migrate.MaybeRun(context.Background(), cfg, nil, client))
	assert.True(t, client.DB().Migrator().HasTable("carts"))
}

func TestRunRejectsUnknownDriver(t *testing.T) {
	client := newSQLiteClient(t)
	sqlDB, err := client.DB().DB()
	require.NoError(t, err)

	err = migrate.Run(context.Background(), sqlDB, "oracle", "up")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no migrations for driver")
	assert.Error(t, migrate.Run(context.Background(), nil, config.DriverSQLite, "up"))
}

func TestCreateAndValidate(t *testing.T) {
	root := t.TempDir()

	paths, err := migrate.CreateSQLMigration(root, "Add Cart Notes!")
	require.NoError(t, err)
	require.Len(t, paths, 3)
	for _, p := range paths {
		assert.True(t, strings.HasSuffix(p, "_add_cart_notes.sql"), p)
	}
	require.NoError(t, migrate.ValidateDir(root))

	// a migration present for one dialect only breaks parity
	require.NoError(t, os.Remove(paths[0]))
	assert.Error(t, migrate.ValidateDir(root))
}

func TestValidateRejectsBadFilenames(t *testing.T) {
	root := t.TempDir()
	for _, d := range []string{"mysql", "postgres", "sqlite"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, d), 0o755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "sqlite", "bad.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644))

	err := migrate.ValidateDir(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid migration filename")
}

func TestRepositoryMigrationsValidate(t *testing.T) {
	require.NoError(t, migrate.ValidateDir("migrations"))

	dir, err := migrate.DirFor(migrate.DefaultDir, config.DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, "pkg/migrate/migrations/sqlite", dir)
}
