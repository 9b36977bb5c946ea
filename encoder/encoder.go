// Package encoder turns rendered surfaces into compressed image bytes.
// WebP is produced through the cwebp command; formats register themselves
// only when their underlying command exists, so a host without cwebp
// degrades to PNG automatically.
package encoder

import (
	"context"
	"fmt"
	"image"
	"os/exec"

	"imprint/logger"
)

// EncodeFunc is the function signature for any encoder.
type EncodeFunc func(ctx context.Context, img image.Image, opts EncodeOptions) ([]byte, error)

type EncodeOptions struct {
	Quality int
}

// DefaultQuality is used when the caller does not care.
const DefaultQuality = 80

// Registry maps format name to encoder function.
var Registry = map[string]EncodeFunc{}

// Register adds an encoder if the underlying command exists, logs status.
func Register(format string, cmdName string, fn EncodeFunc) {
	if _, err := exec.LookPath(cmdName); err != nil {
		logger.Warnf("encoder [%s] skipped: command '%s' not found in PATH", format, cmdName)
		return
	}
	Registry[format] = fn
	logger.Debugf("encoder [%s] registered (command: %s)", format, cmdName)
}

// Get looks up an encoder by format.
func Get(format string) (EncodeFunc, bool) {
	fn, ok := Registry[format]
	return fn, ok
}

// RegisterDefaults registers every encoder the host can support.
func RegisterDefaults() {
	Register("webp", "cwebp", EncodeWebP)
	RegisterPNG()
}

// EncodingError reports that no encoder produced output for a render.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("image encoding failed: %v", e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// EncodeImage encodes a rendered surface, preferring WebP and degrading to
// PNG when WebP is unavailable or fails. Returns the bytes, the content
// type actually produced, and whether the WebP path was skipped.
func EncodeImage(ctx context.Context, img image.Image) ([]byte, string, bool, error) {
	opts := EncodeOptions{Quality: DefaultQuality}

	if webp, ok := Get("webp"); ok {
		data, err := webp(ctx, img, opts)
		if err == nil {
			return data, "image/webp", false, nil
		}
		logger.Warnf("webp encoding failed, falling back to png: %v", err)
	}

	png, ok := Get("png")
	if !ok {
		return nil, "", true, &EncodingError{Err: fmt.Errorf("no encoder available")}
	}
	data, err := png(ctx, img, opts)
	if err != nil {
		return nil, "", true, &EncodingError{Err: err}
	}
	return data, "image/png", true, nil
}
