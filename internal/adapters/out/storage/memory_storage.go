package storage

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
)

// MemoryStorage is the single-process fallback when Redis is disabled. Entries are
// evicted least recently used first once size is reached.
type MemoryStorage struct {
	items *lru.Cache[string, string]
}

func NewMemoryStorage(size int) (*MemoryStorage, error) {
	items, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	return &MemoryStorage{items: items}, nil
}

func memoryKey(user domain.UserKey, key string) string {
	return user.String() + ":" + key
}

func (s *MemoryStorage) GetItem(ctx context.Context, user domain.UserKey, key string) (string, bool, error) {
	value, ok := s.items.Get(memoryKey(user, key))
	return value, ok, nil
}

func (s *MemoryStorage) SetItem(ctx context.Context, user domain.UserKey, key, value string) error {
	s.items.Add(memoryKey(user, key), value)
	return nil
}

func (s *MemoryStorage) RemoveItems(ctx context.Context, user domain.UserKey, keys ...string) error {
	for _, key := range keys {
		s.items.Remove(memoryKey(user, key))
	}
	return nil
}
