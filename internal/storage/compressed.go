package storage

import (
	"encoding/base64"
	"fmt"

	"github.com/debemdeboas/quote-saver/internal/util/compression"
)

// CompressedStore compresses values before handing them to the wrapped store.
// Compressed bytes are base64 encoded so every backend still holds text.
type CompressedStore struct { // implements Store
	Store
	compressor compression.Compressor
}

func NewCompressedStore(inner Store, c compression.Compressor) *CompressedStore {
	return &CompressedStore{Store: inner, compressor: c}
}

func (s *CompressedStore) Load(key string) (string, error) {
	value, err := s.Store.Load(key)
	if err != nil {
		return "", err
	}

	packed, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return "", fmt.Errorf("decode compressed value: %w", err)
	}
	b, err := s.compressor.Decompress(packed)
	if err != nil {
		return "", fmt.Errorf("decompress value: %w", err)
	}
	return string(b), nil
}

func (s *CompressedStore) Save(key, value string) error {
	packed, err := s.compressor.Compress([]byte(value))
	if err != nil {
		return fmt.Errorf("compress value: %w", err)
	}
	return s.Store.Save(key, base64.StdEncoding.EncodeToString(packed))
}
