package config

import (
	"os"
	"path/filepath"
)

// getDataDir determines the data directory path from environment or default.
// Priority: IMPRINT_DATA_DIR environment variable > "./data" default
func getDataDir() string {
	if dir := os.Getenv("IMPRINT_DATA_DIR"); dir != "" {
		return dir
	}
	return "./data"
}

// GetDataDir returns the current data directory path. The environment is
// checked at call time so tests can repoint the directory without a restart.
func GetDataDir() string {
	return getDataDir()
}

// GetFontCacheDir returns the directory where downloaded font binaries are
// cached between requests. Files are named {md5(url)}{ext}, no index file.
// Path: {DATA_DIR}/fonts
func GetFontCacheDir() string {
	if dir := os.Getenv("IMPRINT_FONT_CACHE_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(GetDataDir(), "fonts")
}

// GetRecordsDBPath returns the full path to the render records database.
// The records database tracks the outcome and diagnostics of each render.
// Path: {DATA_DIR}/records.db
func GetRecordsDBPath() string {
	return filepath.Join(GetDataDir(), "records.db")
}

// GetUpstreamOrigin returns the default origin used to fetch layout
// descriptors, base images and fonts when the request does not carry a
// baseUrl override. Only meaningful for the "origin" fetch backend.
func GetUpstreamOrigin() string {
	if origin := os.Getenv("IMPRINT_ORIGIN"); origin != "" {
		return origin
	}
	return "http://localhost:9000"
}

// GetFetchBackend selects how upstream objects are fetched.
// One of: origin (plain HTTP, default), s3, gcs, sftp.
func GetFetchBackend() string {
	if backend := os.Getenv("IMPRINT_FETCH_BACKEND"); backend != "" {
		return backend
	}
	return "origin"
}

// GetListenAddr returns the address the HTTP server binds to.
func GetListenAddr() string {
	if addr := os.Getenv("IMPRINT_LISTEN_ADDR"); addr != "" {
		return addr
	}
	return ":8080"
}

// GetS3Region returns the region for the s3 fetch backend.
func GetS3Region() string {
	if region := os.Getenv("IMPRINT_S3_REGION"); region != "" {
		return region
	}
	return "us-east-1"
}

// GetS3AccessKey returns the access key id for the s3 fetch backend.
func GetS3AccessKey() string {
	return os.Getenv("IMPRINT_S3_ACCESS_KEY")
}

// GetS3SecretKey returns the secret access key for the s3 fetch backend.
func GetS3SecretKey() string {
	return os.Getenv("IMPRINT_S3_SECRET_KEY")
}

// GetGCSCredentialsJSON returns the raw service-account JSON for the gcs
// fetch backend. Empty means ambient credentials.
func GetGCSCredentialsJSON() string {
	return os.Getenv("IMPRINT_GCS_CREDENTIALS_JSON")
}

// SFTP backend settings. Bucket names map to directories under the remote
// base path, so the same descriptor layout works across backends.

func GetSFTPHost() string { return os.Getenv("IMPRINT_SFTP_HOST") }

func GetSFTPPort() string {
	if port := os.Getenv("IMPRINT_SFTP_PORT"); port != "" {
		return port
	}
	return "22"
}

func GetSFTPUser() string { return os.Getenv("IMPRINT_SFTP_USER") }

func GetSFTPPassword() string { return os.Getenv("IMPRINT_SFTP_PASSWORD") }

func GetSFTPPrivateKey() string { return os.Getenv("IMPRINT_SFTP_PRIVATE_KEY") }

// GetSFTPBasePath returns the remote directory that holds the buckets.
func GetSFTPBasePath() string {
	if base := os.Getenv("IMPRINT_SFTP_BASE_PATH"); base != "" {
		return base
	}
	return "/srv/imprint"
}
