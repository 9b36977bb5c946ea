// Package fetch retrieves upstream objects (layout descriptors, base images,
// fonts) from the configured storage backend. Backends mirror the storage
// types the service knows how to talk to: a plain HTTP origin, S3, GCS and
// SFTP. The render path only sees the Fetcher interface.
package fetch

import (
	"context"
	"fmt"

	"imprint/config"
)

// Fetcher downloads one object from a bucket.
type Fetcher interface {
	// Fetch returns the object bytes or an UpstreamFetchError.
	Fetch(ctx context.Context, bucket, key string) ([]byte, error)
	// ObjectURL returns a stable identifier for the object, used to key the
	// font cache. It does not need to be dereferenceable for every backend.
	ObjectURL(bucket, key string) string
}

// UpstreamFetchError reports a failed config/image/font download. Fatal for
// config and base-image fetches; non-fatal (degrades) for fonts.
type UpstreamFetchError struct {
	Bucket string
	Key    string
	Status int // HTTP status when applicable, 0 otherwise
	Err    error
}

func (e *UpstreamFetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream fetch %s/%s failed with status %d", e.Bucket, e.Key, e.Status)
	}
	return fmt.Sprintf("upstream fetch %s/%s failed: %v", e.Bucket, e.Key, e.Err)
}

func (e *UpstreamFetchError) Unwrap() error { return e.Err }

// New builds the Fetcher selected by configuration. baseURL overrides the
// configured origin for the request and only applies to the origin backend.
func New(backendType, baseURL string) (Fetcher, error) {
	switch backendType {
	case "origin", "":
		origin := config.GetUpstreamOrigin()
		if baseURL != "" {
			origin = baseURL
		}
		return NewOriginFetcher(origin), nil
	case "s3":
		return NewS3Fetcher(), nil
	case "gcs":
		return NewGCSFetcher(), nil
	case "sftp":
		return NewSFTPFetcher(), nil
	default:
		return nil, fmt.Errorf("unknown fetch backend %q", backendType)
	}
}
