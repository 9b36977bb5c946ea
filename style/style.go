// Package style resolves the loosely-typed style attributes carried by a
// layout descriptor into fully-populated numeric records. Resolution order:
// engine defaults -> descriptor defaultStyle -> element override. All string
// parsing happens here, once, at descriptor load time; the compositor only
// ever sees normalized values.
package style

import "github.com/fogleman/gg"

// Alignment of text lines within an element's content box.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// VAlign places the text block vertically within the content box.
type VAlign int

const (
	VAlignTop VAlign = iota
	VAlignMiddle
	VAlignBottom
)

// WhiteSpace controls line wrapping.
type WhiteSpace int

const (
	WhiteSpacePreWrap WhiteSpace = iota // wrap at content width (default)
	WhiteSpacePre                       // hard newlines only
	WhiteSpaceNowrap                    // hard newlines only
)

// Padding is a resolved 4-sided pixel inset.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// Attrs is the wire form of a style: every field optional, color and length
// values still strings. Present fields override the level below.
type Attrs struct {
	FontSize        *float64 `json:"fontSize,omitempty"`
	FontFamily      string   `json:"fontFamily,omitempty"`
	Fill            string   `json:"fill,omitempty"`
	Stroke          string   `json:"stroke,omitempty"`
	StrokeWidth     *float64 `json:"strokeWidth,omitempty"`
	TextAlign       string   `json:"textAlign,omitempty"`
	VerticalAlign   string   `json:"verticalAlign,omitempty"`
	LineHeight      *float64 `json:"lineHeight,omitempty"`
	FontWeight      string   `json:"fontWeight,omitempty"`
	BackgroundColor string   `json:"backgroundColor,omitempty"`
	Padding         string   `json:"padding,omitempty"`
	BorderRadius    string   `json:"borderRadius,omitempty"`
	BorderWidth     string   `json:"borderWidth,omitempty"`
	BorderColor     string   `json:"borderColor,omitempty"`
	Filter          string   `json:"filter,omitempty"`
	WhiteSpace      string   `json:"whiteSpace,omitempty"`
}

// Record is a fully-resolved style, safe to hand to the compositor.
type Record struct {
	FontSize      float64
	FontFamily    string
	Fill          Color
	Stroke        Color
	StrokeWidth   float64
	TextAlign     Align
	VerticalAlign VAlign
	LineHeight    float64
	FontWeight    string
	Background    *Color // nil = no background fill
	Padding       Padding
	BorderRadius  float64
	BorderWidth   float64
	BorderColor   Color
	Filter        string // raw filter expression, empty = none
	WhiteSpace    WhiteSpace
}

// Engine defaults, applied when neither the descriptor default nor the
// element override sets a field.
const (
	DefaultFontSize   = 24.0
	DefaultLineHeight = 1.2
	DefaultFill       = "#000000"
	DefaultFontWeight = "normal"
)

// Resolve shallow-merges an element's style attributes over the descriptor's
// defaultStyle and fills the gaps with engine defaults.
func Resolve(def, elem Attrs) Record {
	merged := def
	mergeAttrs(&merged, elem)

	rec := Record{
		FontSize:      DefaultFontSize,
		FontFamily:    merged.FontFamily,
		Fill:          ParseColor(DefaultFill),
		Stroke:        ParseColor("#000000"),
		StrokeWidth:   0,
		TextAlign:     parseAlign(merged.TextAlign),
		VerticalAlign: parseVAlign(merged.VerticalAlign),
		LineHeight:    DefaultLineHeight,
		FontWeight:    DefaultFontWeight,
		Padding:       ParsePadding(merged.Padding),
		BorderRadius:  ParsePx(merged.BorderRadius),
		BorderWidth:   ParsePx(merged.BorderWidth),
		BorderColor:   ParseColor("#000000"),
		Filter:        merged.Filter,
		WhiteSpace:    parseWhiteSpace(merged.WhiteSpace),
	}

	if merged.FontSize != nil && *merged.FontSize > 0 {
		rec.FontSize = *merged.FontSize
	}
	if merged.Fill != "" {
		rec.Fill = ParseColor(merged.Fill)
	}
	if merged.Stroke != "" {
		rec.Stroke = ParseColor(merged.Stroke)
	}
	if merged.StrokeWidth != nil && *merged.StrokeWidth > 0 {
		rec.StrokeWidth = *merged.StrokeWidth
	}
	if merged.LineHeight != nil && *merged.LineHeight > 0 {
		rec.LineHeight = *merged.LineHeight
	}
	if merged.FontWeight != "" {
		rec.FontWeight = merged.FontWeight
	}
	if merged.BackgroundColor != "" {
		bg := ParseColor(merged.BackgroundColor)
		rec.Background = &bg
	}
	if merged.BorderColor != "" {
		rec.BorderColor = ParseColor(merged.BorderColor)
	}

	return rec
}

// HasDecoration reports whether painting this element needs a scratch
// surface (anything beyond plain text on the target).
func (r Record) HasDecoration() bool {
	return r.Background != nil || r.BorderRadius > 0 || r.BorderWidth > 0 || r.Filter != ""
}

// mergeAttrs overlays element attributes onto the descriptor defaults.
// Same shape as the component-style merge: present wins, absent inherits.
func mergeAttrs(base *Attrs, over Attrs) {
	if over.FontSize != nil {
		base.FontSize = over.FontSize
	}
	if over.FontFamily != "" {
		base.FontFamily = over.FontFamily
	}
	if over.Fill != "" {
		base.Fill = over.Fill
	}
	if over.Stroke != "" {
		base.Stroke = over.Stroke
	}
	if over.StrokeWidth != nil {
		base.StrokeWidth = over.StrokeWidth
	}
	if over.TextAlign != "" {
		base.TextAlign = over.TextAlign
	}
	if over.VerticalAlign != "" {
		base.VerticalAlign = over.VerticalAlign
	}
	if over.LineHeight != nil {
		base.LineHeight = over.LineHeight
	}
	if over.FontWeight != "" {
		base.FontWeight = over.FontWeight
	}
	if over.BackgroundColor != "" {
		base.BackgroundColor = over.BackgroundColor
	}
	if over.Padding != "" {
		base.Padding = over.Padding
	}
	if over.BorderRadius != "" {
		base.BorderRadius = over.BorderRadius
	}
	if over.BorderWidth != "" {
		base.BorderWidth = over.BorderWidth
	}
	if over.BorderColor != "" {
		base.BorderColor = over.BorderColor
	}
	if over.Filter != "" {
		base.Filter = over.Filter
	}
	if over.WhiteSpace != "" {
		base.WhiteSpace = over.WhiteSpace
	}
}

func parseAlign(s string) Align {
	switch s {
	case "center":
		return AlignCenter
	case "right":
		return AlignRight
	default:
		return AlignLeft
	}
}

func parseVAlign(s string) VAlign {
	switch s {
	case "middle", "center":
		return VAlignMiddle
	case "bottom":
		return VAlignBottom
	default:
		return VAlignTop
	}
}

func parseWhiteSpace(s string) WhiteSpace {
	switch s {
	case "pre":
		return WhiteSpacePre
	case "nowrap":
		return WhiteSpaceNowrap
	default:
		return WhiteSpacePreWrap
	}
}

// AnchorFraction maps an alignment to the gg anchor fraction used by
// DrawStringAnchored: 0 left, 0.5 center, 1 right.
func (a Align) AnchorFraction() float64 {
	switch a {
	case AlignCenter:
		return 0.5
	case AlignRight:
		return 1.0
	default:
		return 0.0
	}
}

// ApplyTo sets this color as the active drawing color on a gg context.
func (c Color) ApplyTo(dc *gg.Context) {
	if c.Channels {
		dc.SetRGBA255(c.R, c.G, c.B, int(c.A*255+0.5))
		return
	}
	dc.SetHexColor(c.Token)
}
