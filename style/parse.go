package style

import (
	"regexp"
	"strconv"
	"strings"
)

// Color is either an rgba() value decomposed into channels or an opaque
// color token (hex or named) handed to the drawing backend untouched.
type Color struct {
	Token    string  // set when Channels is false
	R, G, B  int     // 0-255, set when Channels is true
	A        float64 // 0-1, defaults to 1 when rgba() omits alpha
	Channels bool
}

var rgbaPattern = regexp.MustCompile(`^rgba?\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*(?:,\s*([0-9]*\.?[0-9]+)\s*)?\)$`)

// ParseColor parses an rgba(r,g,b[,a]) string into channel values. Anything
// that does not match, including malformed rgba input, passes through as an
// opaque color token.
func ParseColor(s string) Color {
	s = strings.TrimSpace(s)
	m := rgbaPattern.FindStringSubmatch(s)
	if m == nil {
		return Color{Token: s, A: 1}
	}

	r, _ := strconv.Atoi(m[1])
	g, _ := strconv.Atoi(m[2])
	b, _ := strconv.Atoi(m[3])
	a := 1.0
	if m[4] != "" {
		if parsed, err := strconv.ParseFloat(m[4], 64); err == nil {
			a = parsed
		}
	}

	return Color{R: clampChannel(r), G: clampChannel(g), B: clampChannel(b), A: a, Channels: true}
}

func clampChannel(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// ParsePx parses a single "Npx" token. Absent or unparseable input yields 0.
func ParsePx(s string) float64 {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, "px") {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// ParsePadding parses CSS shorthand padding built from "Npx" tokens:
// one token = all sides, two = vertical then horizontal, four =
// top/right/bottom/left. Any other token count yields zero padding.
func ParsePadding(s string) Padding {
	fields := strings.Fields(s)
	switch len(fields) {
	case 1:
		all := ParsePx(fields[0])
		return Padding{Top: all, Right: all, Bottom: all, Left: all}
	case 2:
		v := ParsePx(fields[0])
		h := ParsePx(fields[1])
		return Padding{Top: v, Right: h, Bottom: v, Left: h}
	case 4:
		return Padding{
			Top:    ParsePx(fields[0]),
			Right:  ParsePx(fields[1]),
			Bottom: ParsePx(fields[2]),
			Left:   ParsePx(fields[3]),
		}
	default:
		return Padding{}
	}
}
