package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"playground/internal/diag"
	"playground/internal/project"
)

// Current schema version - increment when cachePayload format changes
const cacheSchemaVersion uint16 = 1

type cacheKey = project.Digest

// ResponseCache хранит ответы на диске по хешу (исходник, операция, настройки).
// Запросы детерминированы, так что повторный ответ можно брать отсюда.
// Thread-safe for concurrent access.
type ResponseCache struct {
	mu  sync.RWMutex
	dir string
}

// cachePayload is what lands on disk. Timings are never cached.
type cachePayload struct {
	Schema   uint16
	Response Response
	Stage    uint8
	Aborted  bool
	At       uint8
	Reason   uint8
	Tally    [3]int
}

// OpenResponseCache initializes the cache under $XDG_CACHE_HOME/app, or
// ~/.cache/app when the variable is unset.
func OpenResponseCache(app string) (*ResponseCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewResponseCache(filepath.Join(base, app))
}

// NewResponseCache uses dir as the cache root, creating it when missing.
func NewResponseCache(dir string) (*ResponseCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ResponseCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *ResponseCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *ResponseCache) pathFor(key cacheKey) string {
	hexKey := key.String()
	// двухсимвольный подкаталог, чтобы не копить тысячи файлов в одном месте
	return filepath.Join(c.dir, "responses", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes an outcome to the cache.
func (c *ResponseCache) Put(key cacheKey, out *Outcome) (err error) {
	if c == nil || out == nil {
		return nil
	}
	payload := cachePayload{
		Schema:   cacheSchemaVersion,
		Response: out.Response,
		Stage:    uint8(out.Stage),
		Tally:    [3]int{out.Tally.Info, out.Tally.Warnings, out.Tally.Errors},
	}
	if out.Aborted != nil {
		payload.Aborted = true
		payload.At = uint8(out.Aborted.At)
		payload.Reason = uint8(out.Aborted.Reason)
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
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(&payload); err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads an outcome back. A missing entry or one written with an older
// schema is a miss, not an error.
func (c *ResponseCache) Get(key cacheKey) (Outcome, bool, error) {
	if c == nil {
		return Outcome{}, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Outcome{}, false, nil
		}
		return Outcome{}, false, err
	}
	var payload cachePayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return Outcome{}, false, fmt.Errorf("decode cache entry: %w", err)
	}
	if payload.Schema != cacheSchemaVersion {
		return Outcome{}, false, nil
	}
	out := Outcome{
		Response: payload.Response,
		Stage:    Stage(payload.Stage),
		Tally:    diag.Tally{Info: payload.Tally[0], Warnings: payload.Tally[1], Errors: payload.Tally[2]},
	}
	if payload.Aborted {
		out.Aborted = &Aborted{At: Stage(payload.At), Reason: AbortReason(payload.Reason)}
	}
	return out, true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *ResponseCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "responses"))
}

// cacheKey hashes the source together with everything that can change the
// answer: the operation and the harness configuration.
func (h *Harness) cacheKey(op Op, src string) (cacheKey, bool) {
	if h.opts.Cache == nil {
		return cacheKey{}, false
	}
	return project.Combine(project.Of(src), project.Of(string(op)+"|"+h.fingerprint)), true
}
