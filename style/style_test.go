package style

import "testing"

func TestParseColorRGBA(t *testing.T) {
	c := ParseColor("rgba(255,0,0,0.5)")
	if !c.Channels {
		t.Fatal("Expected channel decomposition for rgba input")
	}
	if c.R != 255 || c.G != 0 || c.B != 0 {
		t.Errorf("Expected 255,0,0 got %d,%d,%d", c.R, c.G, c.B)
	}
	if c.A != 0.5 {
		t.Errorf("Expected alpha 0.5, got %v", c.A)
	}
}

func TestParseColorRGBADefaultAlpha(t *testing.T) {
	c := ParseColor("rgba(10, 20, 30)")
	if !c.Channels {
		t.Fatal("Expected channel decomposition for rgba input")
	}
	if c.R != 10 || c.G != 20 || c.B != 30 {
		t.Errorf("Expected 10,20,30 got %d,%d,%d", c.R, c.G, c.B)
	}
	if c.A != 1 {
		t.Errorf("Expected default alpha 1, got %v", c.A)
	}
}

func TestParseColorToken(t *testing.T) {
	c := ParseColor("#ff0000")
	if c.Channels {
		t.Error("Hex token should pass through, not decompose")
	}
	if c.Token != "#ff0000" {
		t.Errorf("Expected token preserved, got %q", c.Token)
	}
}

func TestParseColorMalformedRGBA(t *testing.T) {
	// Unparseable rgba degrades to an opaque token, not an error.
	c := ParseColor("rgba(red,green,blue)")
	if c.Channels {
		t.Error("Malformed rgba should fall back to token form")
	}
}

func TestParsePaddingShorthand(t *testing.T) {
	tests := []struct {
		input string
		want  Padding
	}{
		{"4px", Padding{4, 4, 4, 4}},
		{"12px 16px", Padding{Top: 12, Right: 16, Bottom: 12, Left: 16}},
		{"1px 2px 3px 4px", Padding{Top: 1, Right: 2, Bottom: 3, Left: 4}},
		{"1px 2px 3px", Padding{}}, // three tokens is not a valid form
		{"", Padding{}},
		{"garbage", Padding{}},
	}

	for _, tt := range tests {
		got := ParsePadding(tt.input)
		if got != tt.want {
			t.Errorf("ParsePadding(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestParsePx(t *testing.T) {
	if v := ParsePx("8px"); v != 8 {
		t.Errorf("Expected 8, got %v", v)
	}
	if v := ParsePx("8"); v != 0 {
		t.Errorf("Missing unit should yield 0, got %v", v)
	}
	if v := ParsePx(""); v != 0 {
		t.Errorf("Empty input should yield 0, got %v", v)
	}
}

func TestResolveDefaults(t *testing.T) {
	rec := Resolve(Attrs{}, Attrs{})

	if rec.FontSize != 24 {
		t.Errorf("Expected default font size 24, got %v", rec.FontSize)
	}
	if rec.LineHeight != 1.2 {
		t.Errorf("Expected default line height 1.2, got %v", rec.LineHeight)
	}
	if rec.TextAlign != AlignLeft {
		t.Error("Expected default left alignment")
	}
	if rec.VerticalAlign != VAlignTop {
		t.Error("Expected default top alignment")
	}
	if rec.WhiteSpace != WhiteSpacePreWrap {
		t.Error("Expected default pre-wrap white space")
	}
	if rec.Fill.Token != "#000000" {
		t.Errorf("Expected default black fill, got %q", rec.Fill.Token)
	}
	if rec.Background != nil {
		t.Error("Expected no background by default")
	}
	if rec.StrokeWidth != 0 {
		t.Errorf("Expected zero stroke width, got %v", rec.StrokeWidth)
	}
}

func TestResolveElementOverridesDefault(t *testing.T) {
	size := 40.0
	defSize := 18.0
	def := Attrs{FontSize: &defSize, Fill: "#112233", TextAlign: "center"}
	elem := Attrs{FontSize: &size, Fill: "rgba(1,2,3,0.25)"}

	rec := Resolve(def, elem)

	if rec.FontSize != 40 {
		t.Errorf("Element font size should win, got %v", rec.FontSize)
	}
	if !rec.Fill.Channels || rec.Fill.A != 0.25 {
		t.Errorf("Element fill should win, got %+v", rec.Fill)
	}
	// Inherited from the descriptor default where the element is silent.
	if rec.TextAlign != AlignCenter {
		t.Error("Expected center alignment inherited from default style")
	}
}

func TestResolveDecorationDetection(t *testing.T) {
	plain := Resolve(Attrs{}, Attrs{})
	if plain.HasDecoration() {
		t.Error("Plain text style should not need a scratch surface")
	}

	decorated := Resolve(Attrs{}, Attrs{BackgroundColor: "rgba(0,0,0,0.5)"})
	if !decorated.HasDecoration() {
		t.Error("Background fill should trigger a scratch surface")
	}

	bordered := Resolve(Attrs{}, Attrs{BorderWidth: "2px", BorderColor: "#ff00ff"})
	if !bordered.HasDecoration() {
		t.Error("Border should trigger a scratch surface")
	}
	if bordered.BorderWidth != 2 {
		t.Errorf("Expected border width 2, got %v", bordered.BorderWidth)
	}
}
