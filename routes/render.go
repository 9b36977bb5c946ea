package routes

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"imprint/config"
	"imprint/descriptor"
	"imprint/fetch"
	"imprint/fontcache"
	"imprint/logger"
	"imprint/records"
	"imprint/render"
	"imprint/utils"
)

// baseURLKey is the reserved query key that redirects the origin backend to
// a different upstream for this request. It never binds to an element.
const baseURLKey = "baseUrl"

var fonts *fontcache.Registry

// Init hands the route layer its long-lived collaborators.
func Init(registry *fontcache.Registry) {
	fonts = registry
}

// reservedPath reports whether the path is browser machinery rather than a
// render request. These get a plain 404 before any upstream work.
func reservedPath(p string) bool {
	return strings.HasPrefix(p, "/favicon") ||
		p == "/robots.txt" ||
		strings.HasPrefix(p, "/.well-known")
}

// RenderHandler serves the catch-all render endpoint: the request path names
// the base image, the query string binds text to the descriptor's elements.
func RenderHandler(w http.ResponseWriter, r *http.Request) {
	logger.Debugf("Render request: path=%s, remoteAddr=%s", r.URL.Path, r.RemoteAddr)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if reservedPath(r.URL.Path) {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	start := time.Now()
	params, baseURL := parseRenderQuery(r.URL.RawQuery)

	desc, err := descriptor.Resolve(r.URL.Path)
	if err != nil {
		logger.Warnf("Malformed render path %s: %v", r.URL.Path, err)
		serveFailure(w, r, start, render.Failure(r.Context(), err))
		return
	}

	fetcher, err := fetch.New(config.GetFetchBackend(), baseURL)
	if err != nil {
		logger.Errorf("Fetch backend unavailable: %v", err)
		serveFailure(w, r, start, render.Failure(r.Context(), err))
		return
	}

	o := &render.Orchestrator{Fetcher: fetcher, Fonts: fonts}
	res := o.Render(r.Context(), desc, params)

	if res.Failed {
		serveFailure(w, r, start, res)
		return
	}

	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Data); err != nil {
		logger.Errorf("Failed to write render response: %v", err)
	}

	persistOutcome(r, start, res)
	logger.Debugf("Render completed: path=%s, type=%s, bytes=%d", r.URL.Path, res.ContentType, len(res.Data))
}

// serveFailure writes the error response. The body is still a decodable
// image so embedding clients never show a broken-image icon.
func serveFailure(w http.ResponseWriter, r *http.Request, start time.Time, res render.Result) {
	contentType := res.ContentType
	if contentType == "" {
		contentType = "image/png"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
	w.WriteHeader(http.StatusInternalServerError)
	if len(res.Data) > 0 {
		if _, err := w.Write(res.Data); err != nil {
			logger.Errorf("Failed to write failure response: %v", err)
		}
	}
	persistOutcome(r, start, res)
}

// persistOutcome stores the render record. Persistence problems are logged,
// never surfaced to the client.
func persistOutcome(r *http.Request, start time.Time, res render.Result) {
	rec := records.RenderRecord{
		Key:         utils.CacheKey(r.URL.Path + "?" + r.URL.RawQuery),
		Path:        r.URL.Path,
		Status:      records.StatusOK,
		ContentType: res.ContentType,
		DurationMS:  time.Since(start).Milliseconds(),
	}
	if res.Diag != nil {
		rec.Events = res.Diag.Events()
		if res.Diag.Degraded() {
			rec.Status = records.StatusDegraded
		}
	}
	if res.Failed {
		rec.Status = records.StatusFailed
		if res.Err != nil {
			rec.Error = res.Err.Error()
		}
	}
	if err := records.Store(rec); err != nil {
		logger.Warnf("Failed to persist render record for %s: %v", r.URL.Path, err)
	}
}

// parseRenderQuery splits the raw query string without percent-decoding the
// values: the text decode step owns that, and decoding here would decode
// twice. The reserved baseUrl key is decoded and returned separately.
func parseRenderQuery(rawQuery string) (map[string]string, string) {
	params := make(map[string]string)
	var baseURL string

	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		if decoded, err := url.QueryUnescape(key); err == nil {
			key = decoded
		}
		if key == baseURLKey {
			if decoded, err := url.QueryUnescape(value); err == nil {
				baseURL = decoded
			}
			continue
		}
		params[key] = value
	}
	return params, baseURL
}
