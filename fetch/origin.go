package fetch

import (
	"context"
	"io"
	"net/http"
	"strings"

	"imprint/logger"
)

// OriginFetcher downloads objects over plain HTTP from a single origin, the
// default deployment shape where a CDN or object-storage gateway fronts the
// buckets.
type OriginFetcher struct {
	origin string
	client *http.Client
}

// NewOriginFetcher creates a fetcher rooted at origin (scheme://host[:port]).
func NewOriginFetcher(origin string) *OriginFetcher {
	return &OriginFetcher{
		origin: strings.TrimSuffix(origin, "/"),
		client: http.DefaultClient,
	}
}

func (f *OriginFetcher) ObjectURL(bucket, key string) string {
	return f.origin + "/" + bucket + "/" + key
}

func (f *OriginFetcher) Fetch(ctx context.Context, bucket, key string) ([]byte, error) {
	url := f.ObjectURL(bucket, key)
	logger.Debugf("Fetching %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &UpstreamFetchError{Bucket: bucket, Key: key, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &UpstreamFetchError{Bucket: bucket, Key: key, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamFetchError{Bucket: bucket, Key: key, Status: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamFetchError{Bucket: bucket, Key: key, Err: err}
	}
	return data, nil
}
