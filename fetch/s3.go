package fetch

import (
	"context"

	"imprint/config"
	"imprint/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Fetcher downloads objects straight from S3 buckets, skipping the HTTP
// origin. Self-contained: it initializes its own client from env config.
type S3Fetcher struct {
	client *s3.Client
}

// NewS3Fetcher creates an S3 fetcher with static credentials from config.
func NewS3Fetcher() *S3Fetcher {
	creds := credentials.NewStaticCredentialsProvider(
		config.GetS3AccessKey(), config.GetS3SecretKey(), "")

	client := s3.New(s3.Options{
		Region:      config.GetS3Region(),
		Credentials: creds,
	})
	return &S3Fetcher{client: client}
}

func (f *S3Fetcher) ObjectURL(bucket, key string) string {
	return "s3://" + bucket + "/" + key
}

func (f *S3Fetcher) Fetch(ctx context.Context, bucket, key string) ([]byte, error) {
	downloader := manager.NewDownloader(f.client)
	buf := manager.NewWriteAtBuffer(nil)

	_, err := downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, &UpstreamFetchError{Bucket: bucket, Key: key, Err: err}
	}

	logger.Debugf("Fetched s3://%s/%s (%d bytes)", bucket, key, len(buf.Bytes()))
	return buf.Bytes(), nil
}
