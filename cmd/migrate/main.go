// Command migrate copies the stored quote list from one storage backend to
// another. Each side is described by its own configuration file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/debemdeboas/quote-saver/internal/config"
	"github.com/debemdeboas/quote-saver/internal/logger"
	"github.com/debemdeboas/quote-saver/internal/quotes"
	"github.com/debemdeboas/quote-saver/internal/storage"
)

var log = zerolog.Nop()

var errSameStore = errors.New("source and destination are the same store")

func main() {
	_ = godotenv.Load()

	from := flag.String("from", "", "Configuration file of the source storage")
	to := flag.String("to", "", "Configuration file of the destination storage")
	key := flag.String("key", "", "Key to migrate (defaults to the source's storage key)")
	move := flag.Bool("move", false, "Remove the key from the source after copying")
	flag.Parse()

	if *from == "" || *to == "" {
		fmt.Fprintln(os.Stderr, "Both -from and -to flags are required")
		os.Exit(2)
	}

	srcCfg, err := config.Load(*from)
	if err != nil {
		fatal("load source config", err)
	}
	dstCfg, err := config.Load(*to)
	if err != nil {
		fatal("load destination config", err)
	}

	k := *key
	if k == "" {
		k = srcCfg.Storage.Key
	}
	if *move && srcCfg.Storage == dstCfg.Storage && srcCfg.Storage.Backend != config.BackendMemory {
		fmt.Fprintln(os.Stderr, "Source and destination are the same store; refusing to -move")
		os.Exit(2)
	}

	log = logger.New(srcCfg.Logging.Level)
	storage.SetLogger(logger.Component(log, "storage"))

	src, err := storage.Open(srcCfg.Storage)
	if err != nil {
		fatal("open source storage", err)
	}
	defer src.Close()

	dst, err := storage.Open(dstCfg.Storage)
	if err != nil {
		fatal("open destination storage", err)
	}
	defer dst.Close()

	n, err := migrate(src, dst, k, *move)
	if err != nil {
		fatal("migrate", err)
	}
	log.Info().
		Str("from", srcCfg.Storage.Backend).
		Str("to", dstCfg.Storage.Backend).
		Str("key", k).
		Int("count", n).
		Msg("Migrated quotes")
}

func fatal(what string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", what, err)
	os.Exit(1)
}

// migrate copies key from src to dst and returns the number of quotes moved.
// The value is decoded first so a corrupt list is never copied.
func migrate(src, dst storage.Store, key string, move bool) (int, error) {
	value, err := src.Load(key)
	if errors.Is(err, storage.ErrNotFound) {
		return 0, fmt.Errorf("source has no key %q", key)
	}
	if err != nil {
		return 0, err
	}

	list, err := quotes.Decode(value)
	if err != nil {
		return 0, fmt.Errorf("source value is not a quote list: %w", err)
	}

	encoded, err := quotes.Encode(list)
	if err != nil {
		return 0, err
	}
	if err := dst.Save(key, encoded); err != nil {
		return 0, fmt.Errorf("save to destination: %w", err)
	}

	if move {
		if err := src.Remove(key); err != nil {
			return len(list), fmt.Errorf("remove from source: %w", err)
		}
		// Two configs can still address the same data, e.g. one fs dir
		// spelled two ways. Put the list back if the remove took it.
		if _, err := dst.Load(key); errors.Is(err, storage.ErrNotFound) {
			if err := dst.Save(key, encoded); err != nil {
				return 0, fmt.Errorf("source and destination are the same store, restore failed: %w", err)
			}
			return 0, errSameStore
		}
	}
	return len(list), nil
}
