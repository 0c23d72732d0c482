package driver

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	"magen/internal/project"
)

// cacheSchemaVersion is bumped whenever Artifact changes shape.
const cacheSchemaVersion uint16 = 1

// DiskCache хранит сгенерированный код по хешу входов: msgpack внутри zstd.
// Entries are replaced by rename, so concurrent compilations and processes
// may share one directory.
type DiskCache struct {
	dir string
}

// Artifact is one cached compilation output.
type Artifact struct {
	Schema    uint16 `msgpack:"schema"`
	Source    string `msgpack:"source"`
	Interface string `msgpack:"interface"`
	Package   string `msgpack:"package"`
	Output    []byte `msgpack:"output"`
}

// DefaultCacheDir is $XDG_CACHE_HOME/magen, or ~/.cache/magen.
func DefaultCacheDir() (string, error) {
	if base := os.Getenv("XDG_CACHE_HOME"); base != "" {
		return filepath.Join(base, "magen"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "magen"), nil
}

// OpenDiskCache opens dir, or DefaultCacheDir when dir is empty.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultCacheDir(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key project.Digest) string {
	name := hex.EncodeToString(key[:])
	// подкаталог по первому байту
	return filepath.Join(c.dir, "gen", name[:2], name+".mpz")
}

func (c *DiskCache) Put(key project.Digest, art *Artifact) error {
	if c == nil {
		return nil
	}
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	if err != nil {
		return err
	}
	if err := msgpack.NewEncoder(zw).Encode(art); err != nil {
		_ = zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	return writeAtomic(p, buf.Bytes())
}

// Get fills out from the entry for key. A missing entry, or one written by
// another schema, is (false, nil).
func (c *DiskCache) Get(key project.Digest, out *Artifact) (bool, error) {
	if c == nil {
		return false, nil
	}
	f, err := os.Open(c.pathFor(key))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return false, err
	}
	defer zr.Close()
	if err := msgpack.NewDecoder(zr).Decode(out); err != nil {
		return false, fmt.Errorf("decode cache entry: %w", err)
	}
	return out.Schema == cacheSchemaVersion, nil
}

// DropAll removes every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	return os.RemoveAll(filepath.Join(c.dir, "gen"))
}
