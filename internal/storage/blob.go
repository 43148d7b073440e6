package storage

import (
	"io"
	"io/fs"
)

// AssetStore serves the read-only deployment assets (certificate template,
// fonts). Keys are relative to the store root; absolute paths are used as-is.
type AssetStore interface {
	Open(key string) (io.ReadCloser, error)
	Stat(key string) (fs.FileInfo, error)
	Resolve(key string) string
}
