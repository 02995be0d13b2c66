package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/wordcloud/pkg/cache"
)

// runCLI executes the root command with args in a scratch directory and
// returns what it printed to stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	prev := stdout
	stdout = &out
	t.Cleanup(func() { stdout = prev })

	c := New(io.Discard, LogInfo)
	t.Cleanup(func() { c.Close() })
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// scratch isolates the working and cache directories of a test.
func scratch(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CACHE_HOME", dir)
	return dir
}

func TestCacheClearCommand(t *testing.T) {
	scratch(t)
	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, k := range []string{"tokens:a", "layout:b", "artifact:c"} {
		if err := fc.Set(ctx, k, []byte("x"), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	out, err := runCLI(t, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(out, "Cleared 3 cached entries") {
		t.Errorf("output = %q", out)
	}
	if _, ok, _ := fc.Get(ctx, "tokens:a"); ok {
		t.Error("entry survived cache clear")
	}
}

func TestCacheClearEmpty(t *testing.T) {
	scratch(t)
	out, err := runCLI(t, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cache is empty") {
		t.Errorf("output = %q", out)
	}
}

func TestCachePathCommand(t *testing.T) {
	scratch(t)
	want, _ := cacheDir()
	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}
}

func TestCacheInfoCommand(t *testing.T) {
	scratch(t)
	dir, _ := cacheDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	_ = fc.Set(context.Background(), "layout:x", []byte("data"), time.Hour)

	out, err := runCLI(t, "cache", "info")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "1 cached entries") || !strings.Contains(out, dir) {
		t.Errorf("output = %q", out)
	}
}

func TestHumanBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := humanBytes(tt.n); got != tt.want {
			t.Errorf("humanBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
