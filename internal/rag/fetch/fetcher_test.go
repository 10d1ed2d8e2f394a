package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFetch_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("<html><body>port guide</body></html>"))
	}))
	defer srv.Close()

	f := NewPageFetcher()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		body, err := f.Fetch(ctx, srv.URL+"/page")
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		if !strings.Contains(body, "port guide") {
			t.Errorf("body got %q", body)
		}
	})

	t.Run("Non_2xx_Status", func(t *testing.T) {
		if _, err := f.Fetch(ctx, srv.URL+"/missing"); err == nil {
			t.Error("expected an error for a 404 response")
		}
	})

	t.Run("Cancelled_Context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := f.Fetch(cancelled, srv.URL+"/page"); err == nil {
			t.Error("expected an error for a cancelled context")
		}
	})
}

func TestFetch_LocalDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("local travel notes"), 0o644); err != nil {
		t.Fatal(err)
	}

	f := NewPageFetcher()

	body, err := f.Fetch(context.Background(), path)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if !strings.Contains(body, "local travel notes") {
		t.Errorf("body got %q", body)
	}
}

func TestFetch_UnsupportedLocalType(t *testing.T) {
	f := NewPageFetcher()
	if _, err := f.Fetch(context.Background(), "/tmp/archive.zip"); err == nil {
		t.Error("expected an error for an unsupported extension")
	}
}
