package driver

import (
	"testing"

	"zhfmt/internal/config"
	"zhfmt/internal/lint"
	"zhfmt/internal/source"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskCache: %v", err)
	}
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("a.md", []byte("中文\n")))
	key := MakeCacheKey(file, config.Default().Hash(), lint.Markdown, false)

	var got CachePayload
	if hit, err := cache.Get(key, &got); err != nil || hit {
		t.Fatalf("expected miss, got hit=%v err=%v", hit, err)
	}
	if err := cache.Put(key, &CachePayload{Path: "a.md", Clean: true}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if hit, err := cache.Get(key, &got); err != nil || !hit {
		t.Fatalf("expected hit, got hit=%v err=%v", hit, err)
	}
	if !got.Clean || got.Path != "a.md" || got.Schema != diskCacheSchemaVersion {
		t.Errorf("unexpected payload %+v", got)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if hit, _ := cache.Get(key, &got); hit {
		t.Error("expected miss after DropAll")
	}
}

func TestCacheKeyDependsOnInputs(t *testing.T) {
	fs := source.NewFileSet()
	a := fs.Get(fs.AddVirtual("a.md", []byte("中文\n")))
	b := fs.Get(fs.AddVirtual("b.md", []byte("中文 \n")))
	hash := config.Default().Hash()

	base := MakeCacheKey(a, hash, lint.Markdown, false)
	variants := []CacheKey{
		MakeCacheKey(b, hash, lint.Markdown, false),
		MakeCacheKey(a, config.Empty().Hash(), lint.Markdown, false),
		MakeCacheKey(a, hash, lint.Plain, false),
		MakeCacheKey(a, hash, lint.Markdown, true),
	}
	for i, k := range variants {
		if k == base {
			t.Errorf("variant %d collides with base key", i)
		}
	}
	if MakeCacheKey(a, hash, lint.Markdown, false) != base {
		t.Error("key must be deterministic")
	}
}

func TestNilCache(t *testing.T) {
	var cache *DiskCache
	var p CachePayload
	if hit, err := cache.Get(CacheKey{}, &p); hit || err != nil {
		t.Errorf("nil Get = %v, %v", hit, err)
	}
	if err := cache.Put(CacheKey{}, &p); err != nil {
		t.Errorf("nil Put: %v", err)
	}
	if err := cache.DropAll(); err != nil {
		t.Errorf("nil DropAll: %v", err)
	}
}
