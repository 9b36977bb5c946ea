// compositor.go - paints one element onto the surface: background, filter,
// border, then text, in that order. Decorated elements go through an
// off-screen scratch surface sized to the element box; plain text paints
// straight onto the target.
package render

import (
	"fmt"
	"image"

	"imprint/layout"
	"imprint/logger"
	"imprint/style"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// PaintElement composites a laid-out element onto dc. face must already
// match the element's resolved font family and size.
func PaintElement(dc *gg.Context, box layout.Box, rec style.Record, res layout.Result, face font.Face, diag *Diagnostics) {
	if rec.HasDecoration() {
		paintDecoration(dc, box, rec, diag)
	}
	paintText(dc, rec, res, face)
}

// paintDecoration draws background, filter and border on a scratch surface
// and flattens it onto the target at the box origin.
func paintDecoration(dc *gg.Context, box layout.Box, rec style.Record, diag *Diagnostics) {
	w := int(box.Width)
	h := int(box.Height)
	if w <= 0 || h <= 0 {
		logger.Warnf("Skipping decoration for degenerate box %dx%d", w, h)
		return
	}
	scratch := gg.NewContext(w, h)

	// Background fill, clipped to the rounded rectangle when radius > 0.
	if rec.Background != nil {
		shapePath(scratch, 0, 0, float64(w), float64(h), rec.BorderRadius)
		rec.Background.ApplyTo(scratch)
		scratch.Fill()
	}

	// Filter pass: lift the pixels currently under the box off the target,
	// transform them, and lay them over the background. Failure degrades to
	// "no filter", never aborts the render.
	if rec.Filter != "" {
		filtered, err := filterUnderBox(dc, box, rec.Filter)
		if err != nil {
			logger.Warnf("Filter pass failed for box at (%v,%v): %v", box.X, box.Y, err)
			diag.FilterSkipped(rec.Filter, err)
		} else if rec.BorderRadius > 0 {
			// The filtered layer honors the same rounded clip as the
			// background, or it would leak past the corners.
			shapePath(scratch, 0, 0, float64(w), float64(h), rec.BorderRadius)
			scratch.Clip()
			scratch.DrawImage(filtered, 0, 0)
			scratch.ResetClip()
		} else {
			scratch.DrawImage(filtered, 0, 0)
		}
	}

	// Border stroke, inset by half the width so the stroke stays inside.
	if rec.BorderWidth > 0 {
		inset := rec.BorderWidth / 2
		shapePath(scratch, inset, inset, float64(w)-rec.BorderWidth, float64(h)-rec.BorderWidth, rec.BorderRadius)
		rec.BorderColor.ApplyTo(scratch)
		scratch.SetLineWidth(rec.BorderWidth)
		scratch.Stroke()
	}

	dc.DrawImage(scratch.Image(), int(box.X), int(box.Y))
}

// paintText draws the laid-out lines, stroking the glyph outline under the
// fill when strokeWidth > 0.
func paintText(dc *gg.Context, rec style.Record, res layout.Result, face font.Face) {
	if len(res.Lines) == 0 {
		return
	}
	dc.SetFontFace(face)
	ax := rec.TextAlign.AnchorFraction()

	// TopY is the top of the glyph box; ay=1 shifts the baseline down by
	// the text height so the glyphs hang below the anchor, not above it.
	for _, line := range res.Lines {
		if rec.StrokeWidth > 0 {
			strokeString(dc, line.Text, line.AnchorX, line.TopY, ax, rec)
		}
		rec.Fill.ApplyTo(dc)
		dc.DrawStringAnchored(line.Text, line.AnchorX, line.TopY, ax, 1)
	}
}

// strokeString approximates a glyph outline stroke by stamping the string
// at offsets within the stroke radius before the fill goes on top.
func strokeString(dc *gg.Context, s string, x, y, ax float64, rec style.Record) {
	rec.Stroke.ApplyTo(dc)
	n := int(rec.StrokeWidth + 0.5)
	if n < 1 {
		n = 1
	}
	for dy := -n; dy <= n; dy++ {
		for dx := -n; dx <= n; dx++ {
			if dx*dx+dy*dy > n*n {
				continue
			}
			dc.DrawStringAnchored(s, x+float64(dx), y+float64(dy), ax, 1)
		}
	}
}

// shapePath traces either a rounded or plain rectangle path.
func shapePath(dc *gg.Context, x, y, w, h, radius float64) {
	if radius > 0 {
		dc.DrawRoundedRectangle(x, y, w, h, radius)
	} else {
		dc.DrawRectangle(x, y, w, h)
	}
}

// filterUnderBox extracts the target pixels under box and runs the filter
// expression over them.
func filterUnderBox(dc *gg.Context, box layout.Box, expr string) (image.Image, error) {
	rgba, ok := dc.Image().(*image.RGBA)
	if !ok {
		return nil, &FilterApplicationError{Filter: expr, Err: fmt.Errorf("surface is not RGBA")}
	}

	region := image.Rect(int(box.X), int(box.Y), int(box.X+box.Width), int(box.Y+box.Height))
	region = region.Intersect(rgba.Bounds())
	if region.Empty() {
		return nil, &FilterApplicationError{Filter: expr, Err: fmt.Errorf("box outside surface bounds")}
	}

	// Copy into a zero-origin buffer so the filter and the later DrawImage
	// composite line up with the scratch surface.
	extracted := image.NewRGBA(image.Rect(0, 0, region.Dx(), region.Dy()))
	for y := 0; y < region.Dy(); y++ {
		for x := 0; x < region.Dx(); x++ {
			extracted.SetRGBA(x, y, rgba.RGBAAt(region.Min.X+x, region.Min.Y+y))
		}
	}

	return applyFilter(expr, extracted)
}
