package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"swiftcart/internal/models"
)

// kvEntry est une ligne de la table clé/valeur locale
type kvEntry struct {
	Key       string `gorm:"column:entry_key;primaryKey;size:128"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (kvEntry) TableName() string {
	return "kv_entries"
}

// OpenSQLite ouvre la base locale et crée la table si besoin
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("ouverture SQLite %s: %w", path, err)
	}
	if err := db.AutoMigrate(&kvEntry{}); err != nil {
		return nil, fmt.Errorf("migration kv_entries: %w", err)
	}
	return db, nil
}

// SQLiteStore persiste le panier dans une base SQLite locale
type SQLiteStore struct {
	db  *gorm.DB
	key string
	log *zap.Logger
}

func NewSQLiteStore(db *gorm.DB, key string, log *zap.Logger) *SQLiteStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &SQLiteStore{db: db, key: key, log: log}
}

func (s *SQLiteStore) Load(ctx context.Context) []models.LineItem {
	var entry kvEntry
	err := s.db.WithContext(ctx).First(&entry, "entry_key = ?", s.key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		s.log.Warn("⚠️ Lecture du panier SQLite impossible, panier vide", zap.String("key", s.key), zap.Error(err))
		return nil
	}

	items, err := Decode([]byte(entry.Value))
	if err != nil {
		s.log.Warn("⚠️ Panier SQLite illisible, panier vide", zap.String("key", s.key), zap.Error(err))
		return nil
	}
	return items
}

func (s *SQLiteStore) Save(ctx context.Context, items []models.LineItem) error {
	if len(items) == 0 {
		return s.Clear(ctx)
	}

	data, err := Encode(items)
	if err != nil {
		return err
	}

	entry := kvEntry{Key: s.key, Value: string(data), UpdatedAt: time.Now()}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("écriture panier SQLite: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Where("entry_key = ?", s.key).Delete(&kvEntry{}).Error; err != nil {
		return fmt.Errorf("suppression panier SQLite: %w", err)
	}
	return nil
}
