// google_fonts_test.go tests spec parsing and [FontFetcher.Fetch] against a
// fake CSS API, including the on-disk cache.

package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestParseGoogleFontSpec(t *testing.T) {
	tests := []struct {
		spec           string
		family, weight string
		ok             bool
	}{
		{"google:Anton:400", "Anton", "400", true},
		{"google:Bebas Neue:400", "Bebas Neue", "400", true},
		{"google:Anton", "", "", false},
		{"local:Anton:400", "", "", false},
		{"google::400", "", "", false},
	}
	for _, tt := range tests {
		family, weight, ok := ParseGoogleFontSpec(tt.spec)
		if family != tt.family || weight != tt.weight || ok != tt.ok {
			t.Errorf("ParseGoogleFontSpec(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.spec, family, weight, ok, tt.family, tt.weight, tt.ok)
		}
	}
}

// fakeFonts serves a CSS response pointing at a TTF on the same server.
func fakeFonts(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/css2":
			if r.URL.Query().Get("family") != "Anton:wght@400" {
				http.Error(w, "bad family", http.StatusBadRequest)
				return
			}
			fmt.Fprintf(w, "@font-face { src: url(%s/anton.ttf) format('truetype'); }", srv.URL)
		case "/anton.ttf":
			w.Write(goregular.TTF)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFontFetcherFetch(t *testing.T) {
	var hits atomic.Int32
	srv := fakeFonts(t, &hits)
	cache := filepath.Join(t.TempDir(), ".cache")
	f := &FontFetcher{CSSBase: srv.URL + "/css2", CacheDir: cache, Client: srv.Client()}

	data, err := f.Fetch("google:Anton:400")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !bytes.Equal(data, goregular.TTF) {
		t.Error("fetched font differs from served bytes")
	}
	if _, err := os.Stat(filepath.Join(cache, "Anton-400.ttf")); err != nil {
		t.Errorf("font not cached: %v", err)
	}

	before := hits.Load()
	if _, err := f.Fetch("google:Anton:400"); err != nil {
		t.Fatalf("cached Fetch: %v", err)
	}
	if hits.Load() != before {
		t.Error("second Fetch should be served from cache")
	}
}

func TestFontFetcherErrors(t *testing.T) {
	var hits atomic.Int32
	srv := fakeFonts(t, &hits)
	f := &FontFetcher{CSSBase: srv.URL + "/css2", CacheDir: t.TempDir(), Client: srv.Client()}

	if _, err := f.Fetch("Anton"); err == nil {
		t.Error("expected error for malformed spec")
	}
	if _, err := f.Fetch("google:Other:700"); err == nil {
		t.Error("expected error for non-200 CSS response")
	}
}

func TestIsWOFF2(t *testing.T) {
	if !isWOFF2("x.WOFF2", nil) {
		t.Error("extension should be detected")
	}
	if !isWOFF2("x.bin", []byte("wOF2rest")) {
		t.Error("magic bytes should be detected")
	}
	if isWOFF2("x.ttf", goregular.TTF) {
		t.Error("TTF misdetected as WOFF2")
	}
}
