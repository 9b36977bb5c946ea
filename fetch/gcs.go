package fetch

import (
	"context"
	"fmt"
	"io"

	"imprint/config"
	"imprint/logger"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSFetcher downloads objects from Google Cloud Storage buckets.
type GCSFetcher struct {
	credentialsJSON string
}

// NewGCSFetcher creates a GCS fetcher using the service-account JSON from
// config when present, ambient credentials otherwise.
func NewGCSFetcher() *GCSFetcher {
	return &GCSFetcher{credentialsJSON: config.GetGCSCredentialsJSON()}
}

func (f *GCSFetcher) ObjectURL(bucket, key string) string {
	return "gs://" + bucket + "/" + key
}

func (f *GCSFetcher) Fetch(ctx context.Context, bucket, key string) ([]byte, error) {
	var opts []option.ClientOption
	if f.credentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(f.credentialsJSON)))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, &UpstreamFetchError{Bucket: bucket, Key: key, Err: fmt.Errorf("storage.NewClient: %w", err)}
	}
	defer client.Close()

	rc, err := client.Bucket(bucket).Object(key).NewReader(ctx)
	if err != nil {
		return nil, &UpstreamFetchError{Bucket: bucket, Key: key, Err: err}
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, &UpstreamFetchError{Bucket: bucket, Key: key, Err: err}
	}

	logger.Debugf("Fetched gs://%s/%s (%d bytes)", bucket, key, len(data))
	return data, nil
}
