package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOriginFetcherSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/kbd/A/A.json" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"elements":[]}`))
	}))
	defer srv.Close()

	f := NewOriginFetcher(srv.URL + "/")
	data, err := f.Fetch(context.Background(), "kbd", "A/A.json")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if string(data) != `{"elements":[]}` {
		t.Errorf("Unexpected body %q", data)
	}
}

func TestOriginFetcherNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := NewOriginFetcher(srv.URL)
	_, err := f.Fetch(context.Background(), "kbd", "missing.json")
	if err == nil {
		t.Fatal("Expected error for 404 response")
	}

	var ufe *UpstreamFetchError
	if !errors.As(err, &ufe) {
		t.Fatalf("Expected UpstreamFetchError, got %T", err)
	}
	if ufe.Status != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", ufe.Status)
	}
}

func TestOriginFetcherConnectionError(t *testing.T) {
	f := NewOriginFetcher("http://127.0.0.1:1")
	_, err := f.Fetch(context.Background(), "kbd", "x/y.json")

	var ufe *UpstreamFetchError
	if !errors.As(err, &ufe) {
		t.Fatalf("Expected UpstreamFetchError, got %T", err)
	}
}

func TestObjectURLs(t *testing.T) {
	origin := NewOriginFetcher("http://cdn.example.com")
	if got := origin.ObjectURL("kbd", "A/A.json"); got != "http://cdn.example.com/kbd/A/A.json" {
		t.Errorf("Unexpected origin object URL %q", got)
	}

	s3f := &S3Fetcher{}
	if got := s3f.ObjectURL("kbd", "A/A.json"); got != "s3://kbd/A/A.json" {
		t.Errorf("Unexpected s3 object URL %q", got)
	}

	gcs := &GCSFetcher{}
	if got := gcs.ObjectURL("kbd", "A/A.json"); got != "gs://kbd/A/A.json" {
		t.Errorf("Unexpected gcs object URL %q", got)
	}
}

func TestNewSelectsBackend(t *testing.T) {
	f, err := New("origin", "")
	if err != nil {
		t.Fatalf("New(origin) failed: %v", err)
	}
	if _, ok := f.(*OriginFetcher); !ok {
		t.Errorf("Expected OriginFetcher, got %T", f)
	}

	if _, err := New("bogus", ""); err == nil {
		t.Error("Expected error for unknown backend")
	}
}

func TestNewOriginBaseURLOverride(t *testing.T) {
	f, err := New("origin", "http://override.example.com")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := f.ObjectURL("b", "k"); got != "http://override.example.com/b/k" {
		t.Errorf("baseUrl override not applied, got %q", got)
	}
}

func TestSFTPFetcherUnconfigured(t *testing.T) {
	f := &SFTPFetcher{basePath: "/srv"}
	_, err := f.Fetch(context.Background(), "b", "k")

	var ufe *UpstreamFetchError
	if !errors.As(err, &ufe) {
		t.Fatalf("Expected UpstreamFetchError, got %T", err)
	}
}
