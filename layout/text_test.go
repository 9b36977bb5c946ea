package layout

import (
	"reflect"
	"testing"

	"imprint/style"
)

// fixedMeasure treats every rune as 10px wide, which makes wrap boundaries
// easy to reason about in tests.
func fixedMeasure(s string) float64 {
	return float64(len([]rune(s))) * 10
}

func resolved(attrs style.Attrs) style.Record {
	return style.Resolve(style.Attrs{}, attrs)
}

func TestDecodeText(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Hello%20World", "Hello World"},
		{"Hello_World", "Hello World"},
		{`line1\nline2`, "line1\nline2"},
		{"plain", "plain"},
		{"bad%zzescape", "bad%zzescape"}, // undecodable input passes through
	}

	for _, tt := range tests {
		if got := DecodeText(tt.raw); got != tt.want {
			t.Errorf("DecodeText(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestIsBlank(t *testing.T) {
	if !IsBlank("   \n ") {
		t.Error("Whitespace-only text should be blank")
	}
	if IsBlank("x") {
		t.Error("Non-empty text should not be blank")
	}
}

func TestLayoutSingleLine(t *testing.T) {
	box := Box{X: 10, Y: 10, Width: 200, Height: 50}
	rec := resolved(style.Attrs{TextAlign: "center"})

	res := Layout("Hello World", box, rec, fixedMeasure)

	if len(res.Lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(res.Lines))
	}
	line := res.Lines[0]
	if line.Text != "Hello World" {
		t.Errorf("Expected text preserved, got %q", line.Text)
	}
	// Centered anchor: box left + width/2.
	if line.AnchorX != 110 {
		t.Errorf("Expected anchor at 110, got %v", line.AnchorX)
	}
	// Top-aligned by default.
	if line.TopY != 10 {
		t.Errorf("Expected top at 10, got %v", line.TopY)
	}
	if res.BlockHeight != 24*1.2 {
		t.Errorf("Expected block height %v, got %v", 24*1.2, res.BlockHeight)
	}
}

func TestLayoutIdempotent(t *testing.T) {
	box := Box{X: 0, Y: 0, Width: 120, Height: 100}
	rec := resolved(style.Attrs{})

	first := Layout("several words to wrap here", box, rec, fixedMeasure)
	second := Layout("several words to wrap here", box, rec, fixedMeasure)

	if !reflect.DeepEqual(first, second) {
		t.Error("Laying out the same input twice should yield identical results")
	}
}

func TestLayoutWordWrap(t *testing.T) {
	// 100px box, 10px per rune: "aaaa bbbb" fits on one line (9 runes),
	// adding "cccc" would overflow.
	box := Box{X: 0, Y: 0, Width: 100, Height: 200}
	rec := resolved(style.Attrs{})

	res := Layout("aaaa bbbb cccc", box, rec, fixedMeasure)

	if len(res.Lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %+v", len(res.Lines), res.Lines)
	}
	if res.Lines[0].Text != "aaaa bbbb" || res.Lines[1].Text != "cccc" {
		t.Errorf("Unexpected wrap: %q / %q", res.Lines[0].Text, res.Lines[1].Text)
	}

	// No produced line is wider than the content box unless unsplittable.
	for _, line := range res.Lines {
		if fixedMeasure(line.Text) > 100 {
			t.Errorf("Line %q exceeds content width", line.Text)
		}
	}
}

func TestLayoutOversizedWordKeptWhole(t *testing.T) {
	box := Box{X: 0, Y: 0, Width: 50, Height: 100}
	rec := resolved(style.Attrs{})

	res := Layout("tiny enormousunbreakableword", box, rec, fixedMeasure)

	if len(res.Lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(res.Lines))
	}
	if res.Lines[1].Text != "enormousunbreakableword" {
		t.Errorf("Oversized word should stay whole, got %q", res.Lines[1].Text)
	}
}

func TestLayoutNowrapKeepsHardLines(t *testing.T) {
	box := Box{X: 0, Y: 0, Width: 30, Height: 100}
	rec := resolved(style.Attrs{WhiteSpace: "nowrap"})

	res := Layout("far too wide for this box\nsecond", box, rec, fixedMeasure)

	if len(res.Lines) != 2 {
		t.Fatalf("nowrap must keep hard lines intact, got %d lines", len(res.Lines))
	}
}

func TestLayoutVerticalAlignment(t *testing.T) {
	fontSize := 10.0
	one := 1.0
	attrs := style.Attrs{FontSize: &fontSize, LineHeight: &one}
	box := Box{X: 0, Y: 100, Width: 200, Height: 60}

	top := Layout("x", box, resolved(attrs), fixedMeasure)
	if top.Lines[0].TopY != 100 {
		t.Errorf("top: expected 100, got %v", top.Lines[0].TopY)
	}

	middleAttrs := attrs
	middleAttrs.VerticalAlign = "middle"
	middle := Layout("x", box, resolved(middleAttrs), fixedMeasure)
	// (60 - 10) / 2 = 25 inset.
	if middle.Lines[0].TopY != 125 {
		t.Errorf("middle: expected 125, got %v", middle.Lines[0].TopY)
	}

	bottomAttrs := attrs
	bottomAttrs.VerticalAlign = "bottom"
	bottom := Layout("x", box, resolved(bottomAttrs), fixedMeasure)
	if bottom.Lines[0].TopY != 150 {
		t.Errorf("bottom: expected 150, got %v", bottom.Lines[0].TopY)
	}
}

func TestLayoutOverflowPinsToTop(t *testing.T) {
	// Block taller than the content box: bottom alignment must pin to the
	// top edge with zero inset, never a negative offset.
	fontSize := 20.0
	one := 1.0
	attrs := style.Attrs{FontSize: &fontSize, LineHeight: &one, VerticalAlign: "bottom"}
	box := Box{X: 0, Y: 50, Width: 200, Height: 30}

	res := Layout("a\nb\nc", box, resolved(attrs), fixedMeasure)

	if res.BlockHeight != 60 {
		t.Fatalf("Expected block height 60, got %v", res.BlockHeight)
	}
	if res.Lines[0].TopY != 50 {
		t.Errorf("Expected first line pinned at 50, got %v", res.Lines[0].TopY)
	}
}

func TestLayoutPaddingShrinksContentBox(t *testing.T) {
	box := Box{X: 0, Y: 0, Width: 100, Height: 100}
	rec := resolved(style.Attrs{Padding: "10px 20px", TextAlign: "right"})

	res := Layout("hi", box, rec, fixedMeasure)

	// Content right edge: 100 - 20 = 80.
	if res.Lines[0].AnchorX != 80 {
		t.Errorf("Expected anchor at 80, got %v", res.Lines[0].AnchorX)
	}
	if res.Lines[0].TopY != 10 {
		t.Errorf("Expected top inset by padding, got %v", res.Lines[0].TopY)
	}
}
