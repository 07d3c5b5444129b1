package sink

import (
	"bytes"
	"encoding/json"
	"image/png"
	"strings"
	"testing"

	"golang.org/x/image/colornames"

	"github.com/matzehuels/heatflow/pkg/core/diagram"
	"github.com/matzehuels/heatflow/pkg/core/geom"
	"github.com/matzehuels/heatflow/pkg/core/network"
	"github.com/matzehuels/heatflow/pkg/core/route"
	"github.com/matzehuels/heatflow/pkg/core/scene"
	"github.com/matzehuels/heatflow/pkg/errors"
)

func tropicheat(t *testing.T) scene.Scene {
	t.Helper()
	c, err := network.NewChain(
		network.Node{ID: "A", X: 2, Y: 2, Label: "Condensor"},
		network.Node{ID: "B", X: 2, Y: 1, Label: "Evaporator"},
		network.Node{ID: "C", X: 2, Y: 0, Label: "TropiCHeat"},
	)
	if err != nil {
		t.Fatal(err)
	}
	d := diagram.New(c)
	d.Configure("A", "B", route.Left, route.Valve, "")
	d.Configure("A", "B", route.Right, route.Pump, "COP: 3.04")
	return d.Scene()
}

func single(t *testing.T) scene.Scene {
	t.Helper()
	c, _ := network.NewChain(network.Node{ID: "A", X: 2, Y: 2, Label: "Solo"})
	return diagram.New(c).Scene()
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(tropicheat(t), WithTitle("TropiCHeat & co"))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	out := string(svg)

	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Errorf("missing svg root: %.60s", out)
	}
	if !strings.Contains(out, `width="800"`) {
		t.Error("default width should be 800")
	}
	if !strings.Contains(out, "<title>TropiCHeat &amp; co</title>") {
		t.Error("title not escaped or missing")
	}

	// Three boxes, four connector segments, four stubs per node and three
	// glyph triangles. The arrow marker path is written as "M0,0".
	tests := []struct {
		tag  string
		want int
	}{
		{"<rect ", 3},
		{"<line x1", 4},
		{`<line class="arrow"`, 12},
		{"<path d=\"M ", 3},
		{"COP: 3.04</text>", 1},
	}
	for _, tt := range tests {
		if got := strings.Count(out, tt.tag); got != tt.want {
			t.Errorf("count(%q) = %d, want %d", tt.tag, got, tt.want)
		}
	}
}

func TestRenderSVGBackground(t *testing.T) {
	svg, err := RenderSVG(single(t), WithBackground("white"))
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(svg), "<rect "); got != 2 {
		t.Errorf("rects = %d, want box plus background", got)
	}
}

func TestRenderSVGBackgroundEscaped(t *testing.T) {
	svg, err := RenderSVG(single(t), WithBackground(`red"/><script>alert(1)</script><rect x="`))
	if err != nil {
		t.Fatal(err)
	}
	out := string(svg)
	if strings.Contains(out, "<script>") {
		t.Errorf("background leaked markup into the document:\n%s", out)
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Errorf("background should be escaped inside the fill attribute:\n%s", out)
	}
}

func TestValidColor(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"white", true},
		{"LightSkyBlue", true},
		{" #f0F0f0 ", true},
		{"#fff", false},
		{"#gggggg", false},
		{"#+12345", false},
		{`red"/><script>`, false},
		{"url(#x)", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidColor(tt.in); got != tt.want {
			t.Errorf("ValidColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRenderSizeLimits(t *testing.T) {
	tests := []struct {
		name   string
		render func() ([]byte, error)
	}{
		{"scale above maximum", func() ([]byte, error) {
			return RenderPNG(single(t), WithScale(MaxScale+1))
		}},
		{"raster area above maximum", func() ([]byte, error) {
			return RenderPNG(single(t), WithWidth(10000), WithScale(MaxScale))
		}},
		{"svg of a very tall chain", func() ([]byte, error) {
			c, _ := network.NewChain(
				network.Node{ID: "top", X: 0, Y: 1e6, Label: "top"},
				network.Node{ID: "bottom", X: 0, Y: 0, Label: "bottom"},
			)
			return RenderSVG(diagram.New(c).Scene())
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.render()
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("err = %v, want %s", err, errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestRenderSVGEmptyScene(t *testing.T) {
	svg, err := RenderSVG(scene.Scene{})
	if err != nil {
		t.Fatalf("RenderSVG(empty): %v", err)
	}
	if !bytes.Contains(svg, []byte(`height="800"`)) {
		t.Errorf("empty scene should frame a square canvas: %s", svg)
	}
}

func TestFrameFlipsY(t *testing.T) {
	sc := tropicheat(t)
	f, err := newFrame(sc, newConfig(nil))
	if err != nil {
		t.Fatal(err)
	}
	_, yTop := f.px(geom.Point{X: 2, Y: 2})
	_, yBottom := f.px(geom.Point{X: 2, Y: 0})
	if !(yTop < yBottom) {
		t.Errorf("plot y=2 at pixel %v should be above plot y=0 at pixel %v", yTop, yBottom)
	}

	b := sc.Bounds()
	x, y := f.px(geom.Point{X: b.MinX, Y: b.MaxY})
	if x <= 0 || y <= 0 {
		t.Errorf("margin missing: top-left content at (%v, %v)", x, y)
	}
	x, y = f.px(geom.Point{X: b.MaxX, Y: b.MinY})
	if x >= float64(f.W) || y >= float64(f.H) {
		t.Errorf("content at (%v, %v) outside %dx%d canvas", x, y, f.W, f.H)
	}
}

func TestNewConfigDefaults(t *testing.T) {
	c := newConfig([]Option{WithWidth(-5), WithMargin(-1), WithScale(0)})
	if c.width != DefaultWidth || c.margin != DefaultMargin || c.scale != DefaultScale {
		t.Errorf("config = %+v, want defaults", c)
	}
}

func TestRenderPNG(t *testing.T) {
	sc := single(t)
	data, err := RenderPNG(sc, WithWidth(400), WithScale(1))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	f, _ := newFrame(sc, newConfig([]Option{WithWidth(400)}))
	if img.Bounds().Dx() != 400 || img.Bounds().Dy() != f.H {
		t.Errorf("size = %v, want 400x%d", img.Bounds().Size(), f.H)
	}

	// Inside the box, clear of the label and the outline.
	x, y := f.px(geom.Point{X: 1.85, Y: 2.15})
	r, g, b, _ := img.At(int(x), int(y)).RGBA()
	want := colornames.Lightskyblue
	if r>>8 != uint32(want.R) || g>>8 != uint32(want.G) || b>>8 != uint32(want.B) {
		t.Errorf("box pixel = (%d,%d,%d), want lightskyblue", r>>8, g>>8, b>>8)
	}

	// Corner of the canvas is background.
	r, g, b, _ = img.At(1, 1).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("background pixel = (%d,%d,%d), want white", r>>8, g>>8, b>>8)
	}
}

func TestRenderPNGScale(t *testing.T) {
	data, err := RenderPNG(single(t), WithWidth(200), WithScale(2))
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 400 {
		t.Errorf("width = %d, want 400", cfg.Width)
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(tropicheat(t), WithTitle("TropiCHeat"))
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	var out struct {
		Title  string `json:"title"`
		Width  int    `json:"width"`
		Shapes []struct {
			Type string `json:"type"`
			Path string `json:"path"`
		} `json:"shapes"`
		Annotations []struct {
			Text string `json:"text"`
		} `json:"annotations"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Title != "TropiCHeat" || out.Width != 800 {
		t.Errorf("header = %q, %d", out.Title, out.Width)
	}
	paths := 0
	for _, s := range out.Shapes {
		if s.Type == "path" {
			paths++
			if !strings.HasPrefix(s.Path, "M ") {
				t.Errorf("path shape without path string: %+v", s)
			}
		}
	}
	if len(out.Shapes) != 10 || paths != 3 {
		t.Errorf("shapes = %d (paths %d), want 10 (3)", len(out.Shapes), paths)
	}
}

func TestRenderJSONEmpty(t *testing.T) {
	data, err := RenderJSON(scene.Scene{})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"annotations": []`)) || !bytes.Contains(data, []byte(`"shapes": []`)) {
		t.Errorf("empty scene should encode empty lists: %s", data)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want [3]uint8
	}{
		{"DarkSlateGrey", [3]uint8{0x2f, 0x4f, 0x4f}},
		{"LightSkyBlue", [3]uint8{0x87, 0xce, 0xfa}},
		{"#ff8000", [3]uint8{0xff, 0x80, 0x00}},
		{"not-a-color", [3]uint8{0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, g, b, _ := parseColor(tt.in).RGBA()
			got := [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
			if got != tt.want {
				t.Errorf("parseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
