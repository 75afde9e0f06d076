package kv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the behaviour every Store implementation must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "outlets")
	require.True(t, errors.Is(err, ErrKeyNotFound), "expected ErrKeyNotFound, got %v", err)

	require.NoError(t, s.Set(ctx, "outlets", []byte(`[{"id":"a"}]`)))
	got, err := s.Get(ctx, "outlets")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a"}]`, string(got))

	// overwrite
	require.NoError(t, s.Set(ctx, "outlets", []byte(`[]`)))
	got, err = s.Get(ctx, "outlets")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	// keys are independent
	require.NoError(t, s.Set(ctx, "discounts", []byte(`[{"id":"d"}]`)))
	got, err = s.Get(ctx, "outlets")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	require.NoError(t, s.Delete(ctx, "outlets"))
	_, err = s.Get(ctx, "outlets")
	assert.True(t, errors.Is(err, ErrKeyNotFound))

	// deleting again is fine
	require.NoError(t, s.Delete(ctx, "outlets"))
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	exerciseStore(t, s)
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	value := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", value))
	value[0] = 'x'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[0] = 'y'
	again, _ := s.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestRedisStore(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStoreFromClient(client, "test")
	defer s.Close()

	exerciseStore(t, s)

	// keys are namespaced by the prefix
	assert.True(t, mr.Exists("test:discounts"))
	assert.False(t, mr.Exists("discounts"))
}

func TestNewRedisStorePingFailure(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = NewRedisStore(RedisConfig{Addr: addr})
	assert.Error(t, err)
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, "sqlite", s.Dialect())
	exerciseStore(t, s)
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	ctx := context.Background()

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "apiUrl", []byte(`"https://example.test"`)))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(ctx, "apiUrl")
	require.NoError(t, err)
	assert.Equal(t, `"https://example.test"`, string(got))
}

func TestMySQLStore(t *testing.T) {
	dsn := os.Getenv("MYSQL_TEST_DSN")
	if dsn == "" {
		t.Skip("MYSQL_TEST_DSN not set")
	}
	s, err := NewMySQLStore(dsn)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	s.Delete(ctx, "outlets")
	s.Delete(ctx, "discounts")
	exerciseStore(t, s)
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}
	s, err := NewPostgresStore(dsn)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	s.Delete(ctx, "outlets")
	s.Delete(ctx, "discounts")
	exerciseStore(t, s)
}
