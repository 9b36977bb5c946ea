package render

import (
	"bytes"
	"image"
	"image/png"

	"github.com/fogleman/gg"
)

// Placeholder dimensions when the failed request never got as far as
// learning the real surface size.
const (
	placeholderWidth  = 800
	placeholderHeight = 600
)

// Placeholder draws the error image returned when a render fails. The
// endpoint contract is that every response body is a displayable image, so
// embedding consumers never show a broken-image icon.
func Placeholder() image.Image {
	dc := gg.NewContext(placeholderWidth, placeholderHeight)

	dc.SetRGB255(0xee, 0xee, 0xee)
	dc.Clear()

	// Diagonal hatching so the image reads as "missing" even without text.
	dc.SetRGB255(0xcc, 0xcc, 0xcc)
	dc.SetLineWidth(2)
	for x := -placeholderHeight; x < placeholderWidth; x += 40 {
		dc.DrawLine(float64(x), 0, float64(x+placeholderHeight), placeholderHeight)
		dc.Stroke()
	}

	dc.SetRGB255(0x66, 0x66, 0x66)
	dc.DrawStringAnchored("image unavailable", placeholderWidth/2, placeholderHeight/2, 0.5, 0.5)

	return dc.Image()
}

// minimalPlaceholder is the last-resort body when even placeholder encoding
// fails: a 1x1 PNG built once at startup with the stdlib encoder.
var minimalPlaceholder = func() []byte {
	var buf bytes.Buffer
	png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1)))
	return buf.Bytes()
}()
