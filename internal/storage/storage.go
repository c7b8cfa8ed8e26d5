// Package storage provides the durable string-keyed stores the quote list is
// persisted to.
package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// ErrNotFound is returned by Load when the key holds no value.
var ErrNotFound = errors.New("key not found")

// ErrInvalidKey is returned for keys a backend cannot address.
var ErrInvalidKey = errors.New("invalid key")

// Store is a durable, synchronous key-value store of strings.
type Store interface {
	Load(key string) (string, error)
	Save(key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
	// Clear deletes every key held by the store.
	Clear() error
	Close() error
}

var storageLogger = zerolog.Nop()

func SetLogger(l zerolog.Logger) {
	storageLogger = l
}

func validateKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
