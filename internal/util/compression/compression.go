// Package compression provides interchangeable byte compressors.
package compression

import "fmt"

type Compressor interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

const (
	None = "none"
	Gzip = "gzip"
	Zstd = "zstd"
)

// ByName returns the compressor for name, or nil for "none" and "".
func ByName(name string) (Compressor, error) {
	switch name {
	case "", None:
		return nil, nil
	case Gzip:
		return GzipCompressor{}, nil
	case Zstd:
		return ZstdCompressor{}, nil
	default:
		return nil, fmt.Errorf("unknown compression %q", name)
	}
}
