// Package fontcache downloads, caches and registers font binaries.
//
// Downloads are content-addressed on disk by the md5 of the source URL, so a
// concurrent duplicate download writes the same bytes to the same path and
// is self-consistent without locking the file. Registration is keyed by
// family name and happens at most once per Registry: tests construct a fresh
// Registry instead of sharing ambient process state.
package fontcache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"imprint/logger"
	"imprint/utils"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// FetchFunc downloads a font binary. The default implementation is a plain
// HTTP GET; tests and the s3/gcs/sftp backends substitute their own.
type FetchFunc func(ctx context.Context, url string) ([]byte, error)

// FontFetchError wraps any failure to obtain or register a font. Callers
// treat it as non-fatal and fall back to the default family.
type FontFetchError struct {
	URL string
	Err error
}

func (e *FontFetchError) Error() string {
	return fmt.Sprintf("font fetch failed for %s: %v", e.URL, e.Err)
}

func (e *FontFetchError) Unwrap() error { return e.Err }

// Registry is the process-owned font store.
type Registry struct {
	dir      string
	fetch    FetchFunc
	mu       sync.RWMutex
	families map[string]*truetype.Font
	fallback *truetype.Font
}

// NewRegistry creates a registry backed by the given cache directory.
func NewRegistry(dir string) *Registry {
	fallback, err := truetype.Parse(goregular.TTF)
	if err != nil {
		// The embedded Go Regular font is known-good; parse failure means a
		// broken toolchain, not a runtime condition.
		panic(fmt.Sprintf("failed to parse embedded fallback font: %v", err))
	}
	return &Registry{
		dir:      dir,
		fetch:    httpFetch,
		families: make(map[string]*truetype.Font),
		fallback: fallback,
	}
}

// SetFetcher replaces the download transport.
func (r *Registry) SetFetcher(fetch FetchFunc) {
	r.fetch = fetch
}

// Registered reports whether a family has been registered.
func (r *Registry) Registered(family string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.families[family]
	return ok
}

// EnsureRegistered makes the family available for rendering, downloading and
// caching the binary if needed. Idempotent per family name: once a family is
// registered, later calls do no network or disk work regardless of URL.
func (r *Registry) EnsureRegistered(ctx context.Context, fontURL, family string) error {
	return r.EnsureRegisteredFrom(ctx, fontURL, family, r.fetch)
}

// EnsureRegisteredFrom is EnsureRegistered with an explicit transport, used
// when fonts come from a non-HTTP storage backend. fontURL still keys the
// disk cache.
func (r *Registry) EnsureRegisteredFrom(ctx context.Context, fontURL, family string, fetch FetchFunc) error {
	if r.Registered(family) {
		return nil
	}

	data, err := r.loadOrDownload(ctx, fontURL, fetch)
	if err != nil {
		return &FontFetchError{URL: fontURL, Err: err}
	}

	parsed, err := truetype.Parse(data)
	if err != nil {
		return &FontFetchError{URL: fontURL, Err: fmt.Errorf("parse font: %w", err)}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// A concurrent request may have won the race; either way the family
	// converges to registered.
	if _, ok := r.families[family]; !ok {
		r.families[family] = parsed
		logger.Infof("Registered font family '%s' from %s", family, fontURL)
	}
	return nil
}

// loadOrDownload returns the font bytes from the disk cache, downloading and
// persisting them on a miss.
func (r *Registry) loadOrDownload(ctx context.Context, fontURL string, fetch FetchFunc) ([]byte, error) {
	cachePath := r.CachePath(fontURL)

	if data, err := os.ReadFile(cachePath); err == nil {
		logger.Debugf("Font cache hit: %s", cachePath)
		return data, nil
	}

	logger.Debugf("Font cache miss, downloading %s", fontURL)
	data, err := fetch(ctx, fontURL)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty font body")
	}

	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return nil, fmt.Errorf("create font cache dir: %w", err)
	}
	if err := os.WriteFile(cachePath, data, 0644); err != nil {
		return nil, fmt.Errorf("persist font cache file: %w", err)
	}
	return data, nil
}

// CachePath derives the on-disk cache file for a font URL:
// {dir}/{md5(url)}{ext}, extension defaulting to .ttf.
func (r *Registry) CachePath(fontURL string) string {
	name := utils.CacheKey(fontURL) + utils.FileExt(fontURL, ".ttf")
	return filepath.Join(r.dir, name)
}

// Face returns a font.Face for the family at the given pixel size, falling
// back to the embedded Go Regular face for unregistered families.
func (r *Registry) Face(family string, size float64) font.Face {
	r.mu.RLock()
	parsed, ok := r.families[family]
	r.mu.RUnlock()
	if !ok {
		parsed = r.fallback
	}
	return truetype.NewFace(parsed, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

func httpFetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
