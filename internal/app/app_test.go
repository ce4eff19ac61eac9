package app

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/productcards/config"
	"github.com/talkincode/productcards/internal/catalog"
	"github.com/talkincode/productcards/internal/domain"
	"github.com/talkincode/productcards/internal/kvstore"
)

func newTestApp(t *testing.T, mutate func(cfg *config.AppConfig)) (*Application, *kvstore.MemoryStore) {
	t.Helper()
	cfg := *config.DefaultAppConfig
	cfg.System.Workdir = t.TempDir()
	cfg.Storage.Type = "memory"
	if mutate != nil {
		mutate(&cfg)
	}
	kv := kvstore.NewMemory()
	a := NewApplication(&cfg, catalog.NewAutoPrompter(true))
	a.OverrideStorage(kv)
	require.NoError(t, a.Init(&cfg))
	t.Cleanup(a.Release)
	return a, kv
}

func TestApplication_InitEmpty(t *testing.T) {
	a, _ := newTestApp(t, nil)
	assert.NotNil(t, a.Store())
	assert.NotNil(t, a.Bus())
	assert.Empty(t, a.Store().List())
}

func TestApplication_SeedDemo(t *testing.T) {
	a, kv := newTestApp(t, func(cfg *config.AppConfig) { cfg.System.SeedDemo = true })

	list := a.Store().List()
	require.Len(t, list, len(defaultProducts))
	assert.Equal(t, "Ceramic Mug", list[0].Name)

	data, err := kv.Get(context.Background(), catalog.StorageKey)
	require.NoError(t, err)
	persisted, err := catalog.DecodeProducts(data)
	require.NoError(t, err)
	assert.Equal(t, list, persisted)

	// seeding never duplicates into a non-empty collection
	a.checkProducts()
	assert.Len(t, a.Store().List(), len(defaultProducts))
}

func TestApplication_RestoresPersistedCollection(t *testing.T) {
	kv := kvstore.NewMemory()
	saved := []domain.Product{{ID: 42, Name: "Mug", Price: 9.5}}
	data, err := catalog.EncodeProducts(saved)
	require.NoError(t, err)
	require.NoError(t, kv.Put(context.Background(), catalog.StorageKey, data))

	cfg := *config.DefaultAppConfig
	cfg.System.Workdir = t.TempDir()
	cfg.System.SeedDemo = true
	a := NewApplication(&cfg, nil)
	a.OverrideStorage(kv)
	require.NoError(t, a.Init(&cfg))
	defer a.Release()

	assert.Equal(t, saved, a.Store().List())
}

func TestApplication_RunBackupNow(t *testing.T) {
	a, _ := newTestApp(t, nil)
	_, err := a.Store().Create(context.Background(), domain.Form{Name: "Mug", Price: "9.5"})
	require.NoError(t, err)

	path, err := a.RunBackupNow()
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	products, err := catalog.DecodeProducts(data)
	require.NoError(t, err)
	assert.Equal(t, a.Store().List(), products)
}

func TestApplication_BackgroundJobs(t *testing.T) {
	a, _ := newTestApp(t, func(cfg *config.AppConfig) {
		cfg.Backup.Enabled = true
		cfg.Backup.Schedule = "@every 1h"
	})
	a.StartBackgroundJobs()
	require.NotNil(t, a.Scheduler())
	assert.Len(t, a.Scheduler().Entries(), 1)
}
