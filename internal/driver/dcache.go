package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"typocheck/internal/dictionary"
)

// Current schema version - increment when DictPayload format changes
const dictCacheSchemaVersion uint16 = 1

// Digest identifies one merged dictionary configuration: built-in set,
// custom file contents, and load-time ignore words.
type Digest [32]byte

// DictCache хранит слитые словарные таблицы на диске, чтобы не парсить
// большие пользовательские словари на каждом запуске.
// Thread-safe for concurrent access.
type DictCache struct {
	mu  sync.RWMutex
	dir string
}

// DictPayload is the serialized form of a merged correction table.
type DictPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Entries       map[string]dictionary.Correction
	BuiltinLoaded bool
}

func newDictPayload(t *dictionary.Table) *DictPayload {
	return &DictPayload{
		Schema:        dictCacheSchemaVersion,
		Entries:       t.Export(),
		BuiltinLoaded: t.BuiltinLoaded(),
	}
}

// restore rebuilds the table, or returns nil when the payload belongs to an
// older schema.
func (p *DictPayload) restore() *dictionary.Table {
	if p == nil || p.Schema != dictCacheSchemaVersion {
		return nil
	}
	return dictionary.Restore(p.Entries, p.BuiltinLoaded)
}

// OpenDictCache initializes and returns a dictionary cache at the standard
// location.
func OpenDictCache(app string) (*DictCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DictCache{dir: dir}, nil
}

func (c *DictCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Для удобства читаемости/очистки — подкаталог "dicts".
	return filepath.Join(c.dir, "dicts", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DictCache) Put(key Digest, payload *DictPayload) error {
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
		_ = os.Remove(f.Name())
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *DictCache) Get(key Digest, out *DictPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(key)
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DictCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим в фоне
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
