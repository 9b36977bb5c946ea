// Package descriptor maps inbound request paths onto upstream object keys.
//
// An image at {bucket}/A/B/C/D/file.ext always has its layout descriptor at
// {bucket}/A/B/C.json: strip the file name and its immediate parent folder,
// and the parent folder name becomes the base name of the descriptor file.
package descriptor

import (
	"fmt"
	"strings"
)

// PathDescriptor locates every upstream object involved in one render.
type PathDescriptor struct {
	BucketName string
	ImagePath  string // object key of the base image within the bucket
	ConfigDir  string // may be empty when the image sits two levels deep
	FolderName string // second-to-last path segment, names the descriptor
	ConfigKey  string // {ConfigDir}/{FolderName}.json
}

// MalformedPathError reports a request path with too few segments to derive
// a bucket, an image key and a descriptor key.
type MalformedPathError struct {
	Path string
}

func (e *MalformedPathError) Error() string {
	return fmt.Sprintf("malformed resource path %q: need bucket plus at least two segments", e.Path)
}

// Resolve derives a PathDescriptor from a URL path. Pure, no I/O.
func Resolve(pathname string) (PathDescriptor, error) {
	var segments []string
	for _, seg := range strings.Split(strings.TrimPrefix(pathname, "/"), "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}

	// Need the bucket and at least folder + file below it.
	if len(segments) < 3 {
		return PathDescriptor{}, &MalformedPathError{Path: pathname}
	}

	bucket := segments[0]
	resource := segments[1:]

	configDir := strings.Join(resource[:len(resource)-2], "/")
	folderName := resource[len(resource)-2]

	configKey := folderName + ".json"
	if configDir != "" {
		configKey = configDir + "/" + configKey
	}

	return PathDescriptor{
		BucketName: bucket,
		ImagePath:  strings.Join(resource, "/"),
		ConfigDir:  configDir,
		FolderName: folderName,
		ConfigKey:  configKey,
	}, nil
}

// FontKey returns the object key of a descriptor-declared font file.
// Fonts live in a fonts/ directory next to the descriptor.
func (d PathDescriptor) FontKey(filename string) string {
	if d.ConfigDir == "" {
		return "fonts/" + filename
	}
	return d.ConfigDir + "/fonts/" + filename
}
