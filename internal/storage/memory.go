package storage

import (
	"github.com/debemdeboas/quote-saver/internal/cache"
)

type MemoryStore struct { // implements Store
	items *cache.Cache[string, string]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: cache.NewCache[string, string](),
	}
}

func (m *MemoryStore) Load(key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	if value, ok := m.items.Get(key); ok {
		return value, nil
	}
	return "", ErrNotFound
}

func (m *MemoryStore) Save(key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	m.items.Set(key, value)
	return nil
}

func (m *MemoryStore) Remove(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	m.items.Delete(key)
	return nil
}

func (m *MemoryStore) Clear() error {
	m.items.Clear()
	return nil
}

// keys lists the stored keys in ascending order.
func (m *MemoryStore) keys() []string {
	return cache.SortedKeys(m.items)
}

func (m *MemoryStore) Close() error {
	return nil
}
