package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"swiftcart/internal/models"
)

// Messages publiés sur le canal du panier après chaque écriture
const (
	EventUpdated = "updated"
	EventCleared = "cleared"
)

// NewRedisClient ouvre et vérifie la connexion Redis
func NewRedisClient(ctx context.Context, host, password string, db int) (*redis.Client, error) {
	if host == "" {
		return nil, errors.New("REDIS_HOST non configuré")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         host,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("impossible de se connecter à Redis: %w", err)
	}
	return client, nil
}

// RedisStore persiste le panier sous une clé Redis et notifie les abonnés
// sur le canal du même nom.
type RedisStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisStore crée le store ; ttl = 0 signifie pas d'expiration
func NewRedisStore(client *redis.Client, key string, ttl time.Duration, log *zap.Logger) *RedisStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisStore{client: client, key: key, ttl: ttl, log: log}
}

// Channel est le canal pub/sub du panier
func (s *RedisStore) Channel() string {
	return s.key
}

func (s *RedisStore) Load(ctx context.Context) []models.LineItem {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		s.log.Warn("⚠️ Lecture du panier Redis impossible, panier vide", zap.String("key", s.key), zap.Error(err))
		return nil
	}

	items, err := Decode(data)
	if err != nil {
		s.log.Warn("⚠️ Panier Redis illisible, panier vide", zap.String("key", s.key), zap.Error(err))
		return nil
	}
	return items
}

func (s *RedisStore) Save(ctx context.Context, items []models.LineItem) error {
	if len(items) == 0 {
		return s.Clear(ctx)
	}

	data, err := Encode(items)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key, data, s.ttl)
	pipe.Publish(ctx, s.Channel(), EventUpdated)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("écriture panier Redis: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key)
	pipe.Publish(ctx, s.Channel(), EventCleared)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("suppression panier Redis: %w", err)
	}
	return nil
}

// Watch relaie les événements du canal du panier à fn jusqu'à l'annulation de ctx
func (s *RedisStore) Watch(ctx context.Context, fn func(event string)) error {
	sub := s.client.Subscribe(ctx, s.Channel())
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("abonnement canal %s: %w", s.Channel(), err)
	}
	s.log.Info("📡 Abonné au canal du panier", zap.String("channel", s.Channel()))

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			fn(msg.Payload)
		}
	}
}
