package kvstore

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/talkincode/productcards/internal/domain"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// GormStore keeps keys as rows of the kv_entry table
type GormStore struct {
	db *gorm.DB
}

// OpenSQLite opens a sqlite file through gorm
func OpenSQLite(path string, debug bool) (*GormStore, error) {
	return openGorm(sqlite.Open(path), debug)
}

// OpenPostgres connects to a postgres database through gorm
func OpenPostgres(dsn string, debug bool) (*GormStore, error) {
	return openGorm(postgres.Open(dsn), debug)
}

func openGorm(dialector gorm.Dialector, debug bool) (*GormStore, error) {
	level := logger.Silent
	if debug {
		level = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "kvstore: open %s", dialector.Name())
	}
	return NewGormStore(db)
}

// NewGormStore migrates the kv table on an existing connection
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(domain.Tables...); err != nil {
		return nil, errors.Wrap(err, "kvstore: migrate")
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var entry domain.KvEntry
	err := s.db.WithContext(ctx).Where(&domain.KvEntry{Key: key}).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "kvstore: get %s", key)
	}
	return []byte(entry.Value), nil
}

func (s *GormStore) Put(ctx context.Context, key string, value []byte) error {
	entry := domain.KvEntry{Key: key, Value: string(value), UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	return errors.Wrapf(err, "kvstore: put %s", key)
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
