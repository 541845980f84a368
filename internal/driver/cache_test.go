package driver

import (
	"os"
	"path/filepath"
	"testing"

	"playground/internal/diagfmt"
)

func TestResponseCacheRoundTrip(t *testing.T) {
	cache, err := NewResponseCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	h := NewHarness(Options{Mode: diagfmt.ModePlain, Cache: cache})

	first := h.Exec(OpInterpret, "let y = 1; 40 + 2")
	if first.Cached {
		t.Fatal("first request must not come from the cache")
	}
	second := h.Exec(OpInterpret, "let y = 1; 40 + 2")
	if !second.Cached {
		t.Fatal("second request should hit the cache")
	}
	if second.Response.Result != first.Response.Result || second.Response.Report() != first.Response.Report() {
		t.Fatalf("cached response differs: %+v vs %+v", second.Response, first.Response)
	}
	if second.Stage != first.Stage || second.Tally != first.Tally {
		t.Fatalf("cached outcome differs: %+v vs %+v", second, first)
	}

	// другая операция - другой ключ
	if out := h.Exec(OpAST, "let y = 1; 40 + 2"); out.Cached {
		t.Fatal("ast must not reuse the interpret entry")
	}
	// другие настройки - другой ключ
	other := NewHarness(Options{Mode: diagfmt.ModeANSI, Cache: cache})
	if out := other.Exec(OpInterpret, "let y = 1; 40 + 2"); out.Cached {
		t.Fatal("a harness with another mode must not reuse the entry")
	}
}

func TestResponseCacheKeepsAborts(t *testing.T) {
	cache, err := NewResponseCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	h := NewHarness(Options{Cache: cache})
	h.Exec(OpDis, "x")
	out := h.Exec(OpDis, "x")
	if !out.Cached || out.Aborted == nil || out.Aborted.Reason != AbortAnalysis {
		t.Fatalf("outcome = %+v", out)
	}
	if !out.Response.Result.IsNull() {
		t.Fatalf("result = %s, want null", out.Response.Result)
	}
}

func TestResponseCacheMissAndDrop(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewResponseCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	h := NewHarness(Options{Cache: cache})
	key, ok := h.cacheKey(OpInterpret, "1")
	if !ok {
		t.Fatal("cache key not produced")
	}
	if _, hit, err := cache.Get(key); hit || err != nil {
		t.Fatalf("empty cache: hit=%v err=%v", hit, err)
	}
	h.Exec(OpInterpret, "1")
	if _, err := os.Stat(cache.pathFor(key)); err != nil {
		t.Fatalf("entry not written: %v", err)
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "responses", "*", "tmp-*"))
	if len(matches) != 0 {
		t.Fatalf("temp files left behind: %v", matches)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := cache.Get(key); hit {
		t.Fatal("entry survived DropAll")
	}
}

func TestNilCacheIsDisabled(t *testing.T) {
	var cache *ResponseCache
	if err := cache.Put(cacheKey{}, &Outcome{}); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := cache.Get(cacheKey{}); hit || err != nil {
		t.Fatalf("hit=%v err=%v", hit, err)
	}
}
