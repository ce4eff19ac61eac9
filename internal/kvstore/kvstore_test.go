package kvstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/productcards/config"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "products")
	assert.True(t, errors.Is(err, ErrKeyNotFound), "missing key, got %v", err)

	require.NoError(t, s.Put(ctx, "products", []byte(`[{"id":1}]`)))
	got, err := s.Get(ctx, "products")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(got))

	require.NoError(t, s.Put(ctx, "products", []byte(`[]`)))
	got, err = s.Get(ctx, "products")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestMemoryStore_FailPuts(t *testing.T) {
	m := NewMemory()
	boom := errors.New("disk full")
	m.FailPuts(boom)
	assert.Equal(t, boom, m.Put(context.Background(), "k", []byte("v")))

	m.FailPuts(nil)
	assert.NoError(t, m.Put(context.Background(), "k", []byte("v")))
}

func TestMemoryStore_FailGets(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Put(context.Background(), "k", []byte("v")))
	boom := errors.New("io error")
	m.FailGets(boom)
	_, err := m.Get(context.Background(), "k")
	assert.Equal(t, boom, err)

	m.FailGets(nil)
	got, err := m.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestMemoryStore_ValuesAreCopied(t *testing.T) {
	m := NewMemory()
	buf := []byte("abc")
	require.NoError(t, m.Put(context.Background(), "k", buf))
	buf[0] = 'x'

	got, err := m.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestBoltStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.db")
	s, err := OpenBolt(path, "")
	require.NoError(t, err)
	exerciseStore(t, s)
	require.NoError(t, s.Close())

	// reopen survives restarts
	s, err = OpenBolt(path, "")
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(context.Background(), "products")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}

func TestBoltStore_CancelledContext(t *testing.T) {
	s, err := OpenBolt(filepath.Join(t.TempDir(), "cards.db"), "cards")
	require.NoError(t, err)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, s.Put(ctx, "k", []byte("v")))
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "cards.sqlite"), false)
	require.NoError(t, err)
	defer s.Close()
	exerciseStore(t, s)
}

func TestOpen(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		cfg := *config.DefaultAppConfig
		cfg.Storage.Type = "memory"
		s, err := Open(&cfg)
		require.NoError(t, err)
		assert.IsType(t, &MemoryStore{}, s)
	})

	t.Run("bolt under workdir", func(t *testing.T) {
		cfg := *config.DefaultAppConfig
		cfg.System.Workdir = filepath.Join(t.TempDir(), "nested")
		s, err := Open(&cfg)
		require.NoError(t, err)
		defer s.Close()
		assert.IsType(t, &BoltStore{}, s)
	})

	t.Run("unsupported", func(t *testing.T) {
		cfg := *config.DefaultAppConfig
		cfg.Storage.Type = "etcd"
		_, err := Open(&cfg)
		assert.Error(t, err)
	})
}
