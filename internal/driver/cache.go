package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"zhfmt/internal/lint"
	"zhfmt/internal/source"
)

// Current schema version - increment when CachePayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache remembers files that were already clean under a given
// configuration, so repeated checks skip them. Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachePayload is the msgpack record stored per key.
type CachePayload struct {
	Schema  uint16
	Path    string
	Clean   bool
	Changes int
	Errors  int
}

// CacheKey identifies one lint outcome: content, effective config, markup
// mode and normalization all feed it.
type CacheKey [sha256.Size]byte

// MakeCacheKey hashes everything a lint result depends on.
func MakeCacheKey(file *source.File, cfgHash string, mode lint.Mode, nfc bool) CacheKey {
	h := sha256.New()
	_, _ = h.Write(file.Hash[:])
	_, _ = h.Write([]byte(cfgHash))
	_, _ = h.Write([]byte{byte(mode), boolByte(nfc), byte(diskCacheSchemaVersion)})
	var key CacheKey
	copy(key[:], h.Sum(nil))
	return key
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// OpenDiskCache opens (creating if needed) $XDG_CACHE_HOME/app, falling
// back to ~/.cache/app.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache uses dir as the cache root.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key CacheKey) string {
	hexKey := hex.EncodeToString(key[:])
	// двухсимвольный префикс, чтобы не складывать тысячи файлов в один каталог
	return filepath.Join(c.dir, "files", hexKey[:2], hexKey+".mp")
}

// Put writes payload atomically (temp file + rename). A nil cache is a no-op.
func (c *DiskCache) Put(key CacheKey, payload *CachePayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	payload.Schema = diskCacheSchemaVersion
	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads the payload for key. A miss, a nil cache and a stale schema all
// report false without error.
func (c *DiskCache) Get(key CacheKey, out *CachePayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "files"))
}
