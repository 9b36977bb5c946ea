package encoder

import (
	"bytes"
	"context"
	"image"
	"image/png"

	"imprint/logger"
)

// EncodePNG encodes in-process with the stdlib encoder. Quality is ignored,
// PNG is lossless.
func EncodePNG(ctx context.Context, img image.Image, opts EncodeOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RegisterPNG registers the png encoder (no command dependency).
func RegisterPNG() {
	Registry["png"] = EncodePNG
	logger.Debugf("encoder [png] registered (no command required)")
}
