package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// exerciseCache runs the behaviour every backend shares.
func exerciseCache(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("v1"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v1" {
		t.Fatalf("Get(k) = %q, %v, %v", data, hit, err)
	}

	if err := c.Set(ctx, "k", []byte("v2"), time.Hour); err != nil {
		t.Fatalf("overwrite error: %v", err)
	}
	data, _, _ = c.Get(ctx, "k")
	if string(data) != "v2" {
		t.Errorf("after overwrite Get = %q, want v2", data)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry survived Delete")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("deleting a missing key: %v", err)
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("NullCache.Get = %q, %v, %v; want miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	exerciseCache(t, c)
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	_ = c.Set(ctx, "short", []byte("x"), time.Nanosecond)
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry returned")
	}
	if _, err := os.Stat(c.path("short")); !os.IsNotExist(err) {
		t.Error("expired entry not removed from disk")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	path := c.path("bad")
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "bad"); hit || err != nil {
		t.Errorf("corrupt entry: hit %v, err %v; want clean miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	for _, k := range []string{"a", "b", "c"} {
		_ = c.Set(ctx, k, []byte(k), 0)
	}
	n, err := c.Clear()
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entry survived Clear")
	}
}

func TestFileCacheStats(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, _ := NewFileCache(dir)
	_ = c.Set(ctx, "a", []byte("aaaa"), time.Hour)
	_ = c.Set(ctx, "b", []byte("bb"), 0)
	if err := os.MkdirAll(filepath.Join(dir, "zz"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "zz", "broken.json"), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}

	st, err := c.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if st.Entries != 3 || st.Expired != 1 || st.Bytes <= 0 {
		t.Errorf("Stats = %+v, want 3 entries with 1 expired", st)
	}
}

func TestMemoryCache(t *testing.T) {
	exerciseCache(t, NewMemoryCache())
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "a", []byte("1"), time.Minute)
	_ = c.Set(ctx, "b", []byte("2"), 0)
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}

	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("expired entry returned")
	}
	_ = c.Cleanup(ctx)
	if c.Len() != 1 {
		t.Errorf("Len after cleanup = %d, want 1", c.Len())
	}
}

func TestMemoryCacheCopies(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	buf := []byte("abc")
	_ = c.Set(ctx, "k", buf, 0)
	buf[0] = 'X'
	got, _, _ := c.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("stored value aliased caller's slice: %q", got)
	}
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("WORDCLOUD_TEST_REDIS")
	if addr == "" {
		t.Skip("WORDCLOUD_TEST_REDIS not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisConfig{Addr: addr, Prefix: "wordcloud-test:"})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	exerciseCache(t, c)
}

func TestRedisCacheUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := NewRedisCache(ctx, RedisConfig{Addr: "127.0.0.1:1", Retry: Backoff{Attempts: 2, Delay: time.Millisecond}})
	if err == nil {
		t.Fatal("connecting to a closed port should fail")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}

	j1, err := HashJSON(map[string]int{"猫": 2})
	if err != nil || len(j1) != 64 {
		t.Errorf("HashJSON = %q, %v", j1, err)
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	tk1 := k.TokensKey("h", TokensKeyOpts{Segmenter: "ja", MaxWords: 100})
	tk2 := k.TokensKey("h", TokensKeyOpts{Segmenter: "words", MaxWords: 100})
	if tk1 == tk2 || !strings.HasPrefix(tk1, "tokens:") {
		t.Errorf("TokensKey: %s vs %s", tk1, tk2)
	}

	lk1 := k.LayoutKey("h", LayoutKeyOpts{Width: 800, Height: 800, Seed: 1})
	lk2 := k.LayoutKey("h", LayoutKeyOpts{Width: 800, Height: 800, Seed: 2})
	if lk1 == lk2 {
		t.Error("Different seeds should produce different layout keys")
	}
	if lk1 != k.LayoutKey("h", LayoutKeyOpts{Width: 800, Height: 800, Seed: 1}) {
		t.Error("LayoutKey should be deterministic")
	}

	ak1 := k.ArtifactKey("h", ArtifactKeyOpts{Format: "svg", Palette: "Paired"})
	ak2 := k.ArtifactKey("h", ArtifactKeyOpts{Format: "png", Palette: "Paired"})
	if ak1 == ak2 {
		t.Error("Different formats should produce different keys")
	}

	if got := k.StoredKey("abc"); got != "stored:abc" {
		t.Errorf("StoredKey = %q", got)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "server:")
	if got := scoped.StoredKey("abc"); got != "server:stored:abc" {
		t.Errorf("StoredKey = %q", got)
	}
	if got := scoped.LayoutKey("h", LayoutKeyOpts{}); !strings.HasPrefix(got, "server:layout:") {
		t.Errorf("LayoutKey not prefixed: %s", got)
	}

	nilInner := NewScopedKeyer(nil, "p:")
	if got := nilInner.StoredKey("x"); got != "p:stored:x" {
		t.Errorf("nil inner StoredKey = %q", got)
	}

	// Nested scopes stack outermost first.
	nested := NewScopedKeyer(scoped, "tenant:")
	if got := nested.StoredKey("abc"); got != "tenant:server:stored:abc" {
		t.Errorf("nested StoredKey = %q", got)
	}
}

func TestVersionedKeyer(t *testing.T) {
	opts := TokensKeyOpts{Segmenter: "ja", MaxWords: 100}
	v1 := NewVersionedKeyer("v1.0.0")
	v2 := NewVersionedKeyer("v1.1.0")
	if v1.TokensKey("h", opts) == v2.TokensKey("h", opts) {
		t.Error("different versions share a tokens key")
	}
	if got := v1.StoredKey("id"); got != "v1.0.0:stored:id" {
		t.Errorf("StoredKey = %q", got)
	}
	if got := NewVersionedKeyer(" ").StoredKey("id"); got != "dev:stored:id" {
		t.Errorf("blank version StoredKey = %q", got)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}
	err := Retryable(ErrNetwork)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if !errors.Is(err, ErrNetwork) {
		t.Error("wrapped error should unwrap")
	}
	if IsRetryable(ErrNetwork) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestBackoffDo(t *testing.T) {
	ctx := context.Background()
	errPermanent := errors.New("permanent")
	b := Backoff{Attempts: 3, Delay: time.Millisecond}

	calls := 0
	err := b.Do(ctx, func() error {
		calls++
		return errPermanent
	})
	if err != errPermanent || calls != 1 {
		t.Errorf("non-retryable: err %v after %d calls", err, calls)
	}

	calls = 0
	err = b.Do(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retry then succeed: err %v after %d calls", err, calls)
	}

	calls = 0
	err = b.Do(ctx, func() error {
		calls++
		return Retryable(ErrNetwork)
	})
	if err != ErrNetwork || calls != 3 {
		t.Errorf("exhausted: err %v after %d calls, want unwrapped ErrNetwork after 3", err, calls)
	}
}

func TestBackoffDefaults(t *testing.T) {
	calls := 0
	b := Backoff{Delay: time.Millisecond, MaxDelay: time.Millisecond}
	b.Do(context.Background(), func() error {
		calls++
		return Retryable(ErrNetwork)
	})
	if calls != 3 {
		t.Errorf("default attempts = %d, want 3", calls)
	}
}

func TestBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Backoff{Delay: time.Second}.Do(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
