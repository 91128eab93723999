package kvstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"io.winapps.moodjournal/internal/config"
	"io.winapps.moodjournal/internal/db"
	"io.winapps.moodjournal/internal/kvstore"
)

// exerciseStore checks the whole-value semantics every backend must share
func exerciseStore(t *testing.T, store kvstore.Store) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "daily_entries")
	require.ErrorIs(t, err, kvstore.ErrNotFound)

	require.NoError(t, store.Set(ctx, "daily_entries", `[{"id":1}]`))
	v, err := store.Get(ctx, "daily_entries")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, v)

	value := "[{\"text\":\"quote \\\" and\\nnewline, ünïcödé 🙂\"}]"
	require.NoError(t, store.Set(ctx, "daily_entries", value))
	v, err = store.Get(ctx, "daily_entries")
	require.NoError(t, err)
	assert.Equal(t, value, v)

	require.NoError(t, store.Set(ctx, "push_token", "ExponentPushToken[abc]"))
	v, err = store.Get(ctx, "daily_entries")
	require.NoError(t, err)
	assert.Equal(t, value, v, "writing another key must not touch the list")
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, kvstore.NewMemory())
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "journal.db")
	conn, err := db.InitSQLite(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	exerciseStore(t, kvstore.NewSQLite(conn))
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "journal.db")

	conn, err := db.InitSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, kvstore.NewSQLite(conn).Set(ctx, "daily_entries", "[]"))
	require.NoError(t, conn.Close())

	conn, err = db.InitSQLite(ctx, path)
	require.NoError(t, err)
	defer conn.Close()

	v, err := kvstore.NewSQLite(conn).Get(ctx, "daily_entries")
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	exerciseStore(t, kvstore.NewRedis(client))
	assert.Zero(t, mr.TTL("daily_entries"), "journal list must not expire")
}

func TestRedisStoreConnectionError(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { client.Close() })
	mr.Close()

	store := kvstore.NewRedis(client)
	_, err := store.Get(context.Background(), "daily_entries")
	require.Error(t, err)
	assert.NotErrorIs(t, err, kvstore.ErrNotFound)
	assert.Contains(t, err.Error(), "failed to read key daily_entries")

	err = store.Set(context.Background(), "daily_entries", "[]")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write key daily_entries")
}

func TestSQLiteStoreClosedConnection(t *testing.T) {
	ctx := context.Background()
	conn, err := db.InitSQLite(ctx, filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	store := kvstore.NewSQLite(conn)
	_, err = store.Get(ctx, "daily_entries")
	require.Error(t, err)
	assert.NotErrorIs(t, err, kvstore.ErrNotFound)
	assert.Contains(t, err.Error(), "failed to read key daily_entries")

	err = store.Set(ctx, "daily_entries", "[]")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write key daily_entries")
}

func TestPostgresStore(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := db.InitPostgres(ctx, config.PostgresConfig{URL: url})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `DELETE FROM kv_store WHERE key IN ('daily_entries', 'push_token')`)
	require.NoError(t, err)

	exerciseStore(t, kvstore.NewPostgres(pool))
}
