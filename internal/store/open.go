package store

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"swiftcart/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// Open choisit le backend configuré. Le Closer libère la connexion sous-jacente.
func Open(ctx context.Context, cfg config.Config, log *zap.Logger) (Store, io.Closer, error) {
	switch cfg.StoreBackend {
	case config.StoreRedis:
		client, err := NewRedisClient(ctx, cfg.RedisHost, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		log.Info("✅ Connecté à Redis", zap.String("addr", cfg.RedisHost), zap.String("key", cfg.StoreKey))
		return NewRedisStore(client, cfg.StoreKey, cfg.CartTTL, log), client, nil

	case config.StoreSQLite:
		db, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		log.Info("✅ Base SQLite ouverte", zap.String("path", cfg.SQLitePath), zap.String("key", cfg.StoreKey))
		return NewSQLiteStore(db, cfg.StoreKey, log), closerFunc(sqlDB.Close), nil

	case config.StoreMemory:
		log.Warn("⚠️ Stockage en mémoire : le panier ne survivra pas au redémarrage")
		return NewMemoryStore(cfg.StoreKey, log), nopCloser{}, nil

	default:
		return nil, nil, fmt.Errorf("backend de stockage inconnu: %q", cfg.StoreBackend)
	}
}
