// Package layout holds the wire model of a layout descriptor and the text
// layout engine that turns caller-supplied text into positioned draw lines.
package layout

import (
	"encoding/json"
	"fmt"

	"imprint/style"
)

// FontModeRemote is the fontSettings mode that requests a font file hosted
// next to the descriptor (in its fonts/ directory).
const FontModeRemote = "r2"

// Size overrides the output surface dimensions.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// FontSettings optionally declares a custom font shipped with the bucket.
type FontSettings struct {
	Mode         string `json:"mode"`
	FontFilename string `json:"r2FontFilename"`
}

// Element is one positioned text overlay bound to a query-parameter key.
type Element struct {
	Query         string      `json:"query"`
	X             float64     `json:"x"`
	Y             float64     `json:"y"`
	Width         float64     `json:"width"`
	Height        float64     `json:"height"`
	Style         style.Attrs `json:"style"`
	UseCustomFont bool        `json:"useR2Font"`
}

// Descriptor is the parsed layout configuration document. Element order is
// paint order: later elements draw over earlier ones and the base image.
type Descriptor struct {
	ImageSize    *Size         `json:"imageSize,omitempty"`
	DefaultStyle style.Attrs   `json:"defaultStyle"`
	Elements     []Element     `json:"elements"`
	FontSettings *FontSettings `json:"fontSettings,omitempty"`
}

// Parse decodes a descriptor document.
func Parse(data []byte) (*Descriptor, error) {
	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse layout descriptor: %w", err)
	}
	return &d, nil
}

// WantsCustomFont reports whether the descriptor declares a bucket-hosted font.
func (d *Descriptor) WantsCustomFont() bool {
	return d.FontSettings != nil && d.FontSettings.Mode == FontModeRemote && d.FontSettings.FontFilename != ""
}
