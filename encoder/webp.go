package encoder

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
)

// EncodeWebP encodes through the cwebp command: the surface is staged as a
// lossless PNG in a temp directory, converted, and read back.
func EncodeWebP(ctx context.Context, img image.Image, o EncodeOptions) ([]byte, error) {
	dir, err := os.MkdirTemp("", "imprint-webp-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.webp")

	f, err := os.Create(in)
	if err != nil {
		return nil, err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	args := []string{
		"-q", fmt.Sprint(o.Quality),
		in, "-o", out,
	}
	cmd := exec.CommandContext(ctx, "cwebp", args...)
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("cwebp: %w", err)
	}

	return os.ReadFile(out)
}
