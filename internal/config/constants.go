package config

const (
	BackendMemory = "memory"
	BackendFS     = "fs"
	BackendSQLite = "sqlite"
	BackendS3     = "s3"
)

// Defaults mirrored from the struct tags, checked by the golden test.
const (
	DefaultVersion        = "1"
	DefaultStorageBackend = BackendFS
	DefaultStorageKey     = "quotes"
	DefaultServerHost     = "127.0.0.1"
	DefaultServerPort     = "12601"
	DefaultLogLevel       = "warn"
)
