// Package render runs the full pipeline for one request: fetch the layout
// descriptor and base image, lay out and composite every bound element, and
// encode the surface. Only the config fetch, image fetch, image decode and
// total encoder failure are fatal; everything else degrades and is recorded
// on the Diagnostics.
package render

import (
	"bytes"
	"context"
	"image"
	"path"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"imprint/descriptor"
	"imprint/encoder"
	"imprint/fetch"
	"imprint/fontcache"
	"imprint/layout"
	"imprint/logger"
	"imprint/style"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
)

// Result is the outcome of one render. Data is always a decodable image,
// even when Failed is set: failed requests carry the placeholder.
type Result struct {
	Data        []byte
	ContentType string
	Failed      bool
	Err         error
	Diag        *Diagnostics
}

// Orchestrator owns the long-lived collaborators of the render pipeline.
type Orchestrator struct {
	Fetcher fetch.Fetcher
	Fonts   *fontcache.Registry
}

type fetchResult struct {
	data []byte
	err  error
}

// Render runs one request end to end. params maps element query keys to
// their raw, still percent-encoded values from the URL query string.
func (o *Orchestrator) Render(ctx context.Context, desc descriptor.PathDescriptor, params map[string]string) Result {
	configCh := make(chan fetchResult, 1)
	imageCh := make(chan fetchResult, 1)

	go func() {
		data, err := o.Fetcher.Fetch(ctx, desc.BucketName, desc.ConfigKey)
		configCh <- fetchResult{data, err}
	}()
	go func() {
		data, err := o.Fetcher.Fetch(ctx, desc.BucketName, desc.ImagePath)
		imageCh <- fetchResult{data, err}
	}()

	configRes := <-configCh
	imageRes := <-imageCh
	if configRes.err != nil {
		return o.failure(ctx, configRes.err)
	}
	if imageRes.err != nil {
		return o.failure(ctx, imageRes.err)
	}

	doc, err := layout.Parse(configRes.data)
	if err != nil {
		return o.failure(ctx, err)
	}

	diag := &Diagnostics{}

	// Font registration overlaps with base image decoding; neither needs
	// the other and the font download may hit the network.
	var customFamily string
	fontDone := make(chan struct{})
	if doc.WantsCustomFont() {
		filename := doc.FontSettings.FontFilename
		customFamily = strings.TrimSuffix(filename, path.Ext(filename))
		go func() {
			defer close(fontDone)
			o.registerFont(ctx, desc, filename, customFamily, diag)
		}()
	} else {
		close(fontDone)
	}

	base, _, err := image.Decode(bytes.NewReader(imageRes.data))
	if err != nil {
		<-fontDone
		return o.failure(ctx, err)
	}
	<-fontDone

	surface := prepareSurface(base, doc.ImageSize)
	dc := gg.NewContextForRGBA(surface)

	for _, elem := range doc.Elements {
		raw, bound := params[elem.Query]
		if !bound {
			continue
		}
		text := layout.DecodeText(raw)
		if layout.IsBlank(text) {
			logger.Debugf("Skipping element '%s': blank text", elem.Query)
			continue
		}

		rec := style.Resolve(doc.DefaultStyle, elem.Style)
		family := rec.FontFamily
		if elem.UseCustomFont && customFamily != "" {
			family = customFamily
		}
		face := o.Fonts.Face(family, rec.FontSize)

		dc.SetFontFace(face)
		measure := func(s string) float64 {
			w, _ := dc.MeasureString(s)
			return w
		}

		box := layout.Box{X: elem.X, Y: elem.Y, Width: elem.Width, Height: elem.Height}
		res := layout.Layout(text, box, rec, measure)
		PaintElement(dc, box, rec, res, face, diag)
	}

	data, contentType, degraded, err := encoder.EncodeImage(ctx, dc.Image())
	if err != nil {
		return o.failure(ctx, err)
	}
	if degraded {
		diag.EncodeFallback()
	}

	return Result{Data: data, ContentType: contentType, Diag: diag}
}

// registerFont downloads and registers the descriptor's custom font through
// the configured storage backend. Failure is non-fatal: the render falls
// back to the default face and the degradation is recorded.
func (o *Orchestrator) registerFont(ctx context.Context, desc descriptor.PathDescriptor, filename, family string, diag *Diagnostics) {
	fontKey := desc.FontKey(filename)
	fontURL := o.Fetcher.ObjectURL(desc.BucketName, fontKey)

	err := o.Fonts.EnsureRegisteredFrom(ctx, fontURL, family, func(ctx context.Context, _ string) ([]byte, error) {
		return o.Fetcher.Fetch(ctx, desc.BucketName, fontKey)
	})
	if err != nil {
		logger.Warnf("Custom font '%s' unavailable, falling back: %v", family, err)
		diag.FontFallback(family, err)
	}
}

// prepareSurface builds the RGBA render target: the base image, scaled when
// the descriptor overrides the output dimensions.
func prepareSurface(base image.Image, size *layout.Size) *image.RGBA {
	w := base.Bounds().Dx()
	h := base.Bounds().Dy()
	if size != nil && size.Width > 0 && size.Height > 0 {
		w = size.Width
		h = size.Height
	}
	if w <= 0 || h <= 0 {
		w, h = placeholderWidth, placeholderHeight
	}

	surface := image.NewRGBA(image.Rect(0, 0, w, h))
	if base.Bounds().Dx() == w && base.Bounds().Dy() == h {
		xdraw.Draw(surface, surface.Bounds(), base, base.Bounds().Min, xdraw.Src)
	} else {
		xdraw.BiLinear.Scale(surface, surface.Bounds(), base, base.Bounds(), xdraw.Src, nil)
	}
	return surface
}

func (o *Orchestrator) failure(ctx context.Context, cause error) Result {
	return Failure(ctx, cause)
}

// Failure produces the error response body. The endpoint never returns a
// bodyless error: a failed render still carries a decodable image.
func Failure(ctx context.Context, cause error) Result {
	logger.Errorf("Render failed: %v", cause)

	diag := &Diagnostics{}
	data, contentType, degraded, err := encoder.EncodeImage(ctx, Placeholder())
	if err != nil {
		// Even the placeholder would not encode. Serve the pre-encoded
		// 1x1 PNG so the contract holds.
		return Result{Data: minimalPlaceholder, ContentType: "image/png", Failed: true, Err: cause, Diag: diag}
	}
	if degraded {
		diag.EncodeFallback()
	}
	return Result{Data: data, ContentType: contentType, Failed: true, Err: cause, Diag: diag}
}
