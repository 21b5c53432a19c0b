package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"swiftcart/internal/models"
)

// MemoryStore garde l'entrée en mémoire (tests, ou aucun stockage durable configuré)
type MemoryStore struct {
	mu   sync.Mutex
	key  string
	data map[string][]byte
	log  *zap.Logger
}

func NewMemoryStore(key string, log *zap.Logger) *MemoryStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &MemoryStore{key: key, data: make(map[string][]byte), log: log}
}

func (s *MemoryStore) Load(_ context.Context) []models.LineItem {
	s.mu.Lock()
	raw, ok := s.data[s.key]
	s.mu.Unlock()
	if !ok {
		return nil
	}

	items, err := Decode(raw)
	if err != nil {
		s.log.Warn("⚠️ Panier stocké illisible, on repart d'un panier vide", zap.String("key", s.key), zap.Error(err))
		return nil
	}
	return items
}

func (s *MemoryStore) Save(ctx context.Context, items []models.LineItem) error {
	if len(items) == 0 {
		return s.Clear(ctx)
	}

	raw, err := Encode(items)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.data[s.key] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	delete(s.data, s.key)
	s.mu.Unlock()
	return nil
}

// Raw retourne l'entrée brute telle qu'elle est stockée
func (s *MemoryStore) Raw() ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.data[s.key]
	return raw, ok
}

// Put écrit une entrée brute (données d'un ancien client, entrée corrompue...)
func (s *MemoryStore) Put(raw []byte) {
	s.mu.Lock()
	s.data[s.key] = raw
	s.mu.Unlock()
}
