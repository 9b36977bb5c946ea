package utils

import (
	"crypto/md5"
	"encoding/hex"
	"path"
	"strings"
)

// CacheKey returns the hex md5 digest of s. Used to derive stable on-disk
// file names from font URLs and render record keys from request paths.
func CacheKey(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// FileExt returns the extension of the final path segment of rawURL,
// including the dot, or fallback when the URL carries none.
func FileExt(rawURL, fallback string) string {
	trimmed := rawURL
	if i := strings.IndexAny(trimmed, "?#"); i >= 0 {
		trimmed = trimmed[:i]
	}
	if ext := path.Ext(trimmed); ext != "" {
		return ext
	}
	return fallback
}
