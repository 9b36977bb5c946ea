package render

import (
	"fmt"
	"image"
	"image/color"
	"regexp"
	"strconv"
	"strings"
)

// FilterApplicationError reports a failed filter pass. Non-fatal: the
// compositor logs it and paints the element without the filter layer.
type FilterApplicationError struct {
	Filter string
	Err    error
}

func (e *FilterApplicationError) Error() string {
	return fmt.Sprintf("filter %q failed: %v", e.Filter, e.Err)
}

func (e *FilterApplicationError) Unwrap() error { return e.Err }

var filterExpr = regexp.MustCompile(`^([a-z]+)(?:\(([^)]*)\))?$`)

// applyFilter evaluates a filter expression against a copy of src.
// Supported: grayscale, invert, brightness(f), blur(Npx).
func applyFilter(expr string, src *image.RGBA) (*image.RGBA, error) {
	m := filterExpr.FindStringSubmatch(strings.TrimSpace(expr))
	if m == nil {
		return nil, &FilterApplicationError{Filter: expr, Err: fmt.Errorf("unparseable expression")}
	}
	name, arg := m[1], strings.TrimSpace(m[2])

	switch name {
	case "grayscale":
		return mapPixels(src, func(c color.RGBA) color.RGBA {
			// Rec. 601 luma weights.
			y := uint8((299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000)
			return color.RGBA{y, y, y, c.A}
		}), nil
	case "invert":
		return mapPixels(src, func(c color.RGBA) color.RGBA {
			return color.RGBA{255 - c.R, 255 - c.G, 255 - c.B, c.A}
		}), nil
	case "brightness":
		f, err := strconv.ParseFloat(arg, 64)
		if err != nil || f < 0 {
			return nil, &FilterApplicationError{Filter: expr, Err: fmt.Errorf("bad brightness factor %q", arg)}
		}
		return mapPixels(src, func(c color.RGBA) color.RGBA {
			return color.RGBA{scaleChannel(c.R, f), scaleChannel(c.G, f), scaleChannel(c.B, f), c.A}
		}), nil
	case "blur":
		radius := int(parsePxArg(arg))
		if radius <= 0 {
			return nil, &FilterApplicationError{Filter: expr, Err: fmt.Errorf("bad blur radius %q", arg)}
		}
		return boxBlur(src, radius), nil
	default:
		return nil, &FilterApplicationError{Filter: expr, Err: fmt.Errorf("unknown filter %q", name)}
	}
}

func parsePxArg(s string) float64 {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func scaleChannel(v uint8, f float64) uint8 {
	scaled := float64(v) * f
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}

func mapPixels(src *image.RGBA, fn func(color.RGBA) color.RGBA) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.SetRGBA(x, y, fn(src.RGBAAt(x, y)))
		}
	}
	return dst
}

// boxBlur runs a single-pass box blur. Crude next to a gaussian but cheap
// and good enough for frosted-background overlays.
func boxBlur(src *image.RGBA, radius int) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var r, g, bl, a, n int
			for dy := -radius; dy <= radius; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					px, py := x+dx, y+dy
					if px < b.Min.X || px >= b.Max.X || py < b.Min.Y || py >= b.Max.Y {
						continue
					}
					c := src.RGBAAt(px, py)
					r += int(c.R)
					g += int(c.G)
					bl += int(c.B)
					a += int(c.A)
					n++
				}
			}
			dst.SetRGBA(x, y, color.RGBA{uint8(r / n), uint8(g / n), uint8(bl / n), uint8(a / n)})
		}
	}
	return dst
}
