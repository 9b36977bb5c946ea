package layout

import (
	"net/url"
	"strings"

	"imprint/style"
)

// Box is an element's bounding box in surface coordinates.
type Box struct {
	X, Y, Width, Height float64
}

// Line is one laid-out text line. AnchorX pairs with the style's alignment
// fraction; TopY is the top of the glyph box, not the baseline.
type Line struct {
	Text    string
	AnchorX float64
	TopY    float64
}

// Result is the ordered draw plan for one element's text.
type Result struct {
	Lines       []Line
	BlockHeight float64
}

// MeasureFunc reports the rendered width of a string in pixels. The engine
// takes it as a parameter so layout stays independent of the drawing backend.
type MeasureFunc func(s string) float64

// DecodeText applies the caller-facing text transform: percent-decoding,
// underscore to space, and the literal two-character \n escape to a newline.
func DecodeText(raw string) string {
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		decoded = raw
	}
	decoded = strings.ReplaceAll(decoded, "_", " ")
	decoded = strings.ReplaceAll(decoded, `\n`, "\n")
	return decoded
}

// IsBlank reports whether decoded text carries nothing drawable.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Layout computes positioned draw lines for already-decoded text within box.
// Deterministic: the same inputs always yield the same line list.
func Layout(text string, box Box, rec style.Record, measure MeasureFunc) Result {
	contentWidth := box.Width - rec.Padding.Left - rec.Padding.Right
	contentHeight := box.Height - rec.Padding.Top - rec.Padding.Bottom

	hardLines := strings.Split(text, "\n")

	// pre and nowrap both skip re-wrapping; only pre-wrap flows words.
	var lines []string
	if rec.WhiteSpace == style.WhiteSpacePre || rec.WhiteSpace == style.WhiteSpaceNowrap {
		lines = hardLines
	} else {
		for _, hard := range hardLines {
			lines = append(lines, wrapLine(hard, contentWidth, measure)...)
		}
	}

	pitch := rec.FontSize * rec.LineHeight
	blockHeight := float64(len(lines)) * pitch

	contentTop := box.Y + rec.Padding.Top
	var startOffset float64
	switch rec.VerticalAlign {
	case style.VAlignMiddle:
		startOffset = (contentHeight - blockHeight) / 2
	case style.VAlignBottom:
		startOffset = contentHeight - blockHeight
	}
	// Overflow pins to the top edge, never negative placement.
	if startOffset < 0 {
		startOffset = 0
	}

	contentLeft := box.X + rec.Padding.Left
	var anchorX float64
	switch rec.TextAlign {
	case style.AlignCenter:
		anchorX = contentLeft + contentWidth/2
	case style.AlignRight:
		anchorX = contentLeft + contentWidth
	default:
		anchorX = contentLeft
	}

	result := Result{BlockHeight: blockHeight}
	for i, line := range lines {
		result.Lines = append(result.Lines, Line{
			Text:    line,
			AnchorX: anchorX,
			TopY:    contentTop + startOffset + float64(i)*pitch,
		})
	}
	return result
}

// wrapLine greedily packs space-separated words into lines no wider than
// maxWidth. A single word wider than the box stays on its own line; the
// non-empty check is what stops it from splitting forever.
func wrapLine(text string, maxWidth float64, measure MeasureFunc) []string {
	words := strings.Split(text, " ")

	var lines []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if current != "" && measure(candidate) > maxWidth {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	lines = append(lines, current)
	return lines
}
