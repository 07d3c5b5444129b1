package sink

import (
	"bytes"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/heatflow/pkg/core/geom"
	"github.com/matzehuels/heatflow/pkg/core/scene"
	"github.com/matzehuels/heatflow/pkg/errors"
)

const arrowHeadSize = 4.0 // in stroke widths

var (
	regularOnce sync.Once
	regular     *truetype.Font
	regularErr  error
)

func regularFont() (*truetype.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = truetype.Parse(goregular.TTF)
	})
	return regular, regularErr
}

// pngCanvas draws a scene with every pixel quantity multiplied by scale.
type pngCanvas struct {
	dc    *gg.Context
	f     frame
	scale float64
	font  *truetype.Font
	faces map[float64]font.Face
}

// RenderPNG rasterizes the scene. The image is WithWidth pixels wide times
// the WithScale factor.
func RenderPNG(sc scene.Scene, opts ...Option) ([]byte, error) {
	c := newConfig(opts)
	f, err := newFrame(sc, c)
	if err != nil {
		return nil, err
	}
	w, h, err := f.raster(c.scale)
	if err != nil {
		return nil, err
	}
	ttf, err := regularFont()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse font")
	}

	cv := &pngCanvas{
		dc:    gg.NewContext(w, h),
		f:     f,
		scale: c.scale,
		font:  ttf,
		faces: make(map[float64]font.Face),
	}

	bg := c.background
	if bg == "" {
		bg = "white"
	}
	cv.dc.SetColor(parseColor(bg))
	cv.dc.Clear()

	for _, s := range sc.Shapes {
		cv.shape(s)
	}
	for _, a := range sc.Annotations {
		cv.annotation(a)
	}

	var buf bytes.Buffer
	if err := cv.dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "encode png")
	}
	return buf.Bytes(), nil
}

func (cv *pngCanvas) at(x, y float64) (float64, float64) {
	return x * cv.scale, y * cv.scale
}

func (cv *pngCanvas) point(p geom.Point) (float64, float64) {
	return cv.at(cv.f.px(p))
}

func (cv *pngCanvas) shape(s scene.Shape) {
	dc := cv.dc
	switch s.Kind {
	case scene.KindRect:
		x0, y0 := cv.point(s.From)
		x1, y1 := cv.point(s.To)
		dc.DrawRectangle(math.Min(x0, x1), math.Min(y0, y1), math.Abs(x1-x0), math.Abs(y1-y0))
	case scene.KindLine:
		x0, y0 := cv.point(s.From)
		x1, y1 := cv.point(s.To)
		dc.DrawLine(x0, y0, x1, y1)
	case scene.KindPath:
		if len(s.Points) == 0 {
			return
		}
		for i, p := range s.Points {
			x, y := cv.point(p)
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()
	default:
		return
	}

	if s.Fill != "" && s.Kind != scene.KindLine {
		dc.SetColor(parseColor(s.Fill))
		dc.FillPreserve()
	}
	dc.SetColor(parseColor(s.Stroke.Color))
	dc.SetLineWidth(strokeWidth(s.Stroke.Width) * cv.scale)
	dc.Stroke()
}

func (cv *pngCanvas) annotation(a scene.Annotation) {
	dc := cv.dc
	x, y := cv.point(a.At)

	if a.Arrow != nil {
		tx, ty := cv.point(a.Arrow.Tail)
		width := strokeWidth(a.Arrow.Width) * cv.scale
		dc.SetColor(parseColor(a.Arrow.Color))
		dc.SetLineWidth(width)
		dc.DrawLine(tx, ty, x, y)
		dc.Stroke()
		cv.arrowHead(tx, ty, x, y, width)
	}

	if a.Text == "" {
		return
	}
	dc.SetFontFace(cv.face(fontSize(a.Font.Size) * cv.scale))
	dc.SetColor(parseColor(textColor(a.Font.Color)))
	ax := 0.5
	if a.Anchor == scene.AnchorLeft {
		ax = 0
	}
	dc.DrawStringAnchored(a.Text, x, y, ax, 0.35)
}

func (cv *pngCanvas) arrowHead(fx, fy, tx, ty, width float64) {
	dx, dy := tx-fx, ty-fy
	length := math.Hypot(dx, dy)
	if length < 0.1 {
		return
	}
	dx, dy = dx/length, dy/length
	size := arrowHeadSize * width
	half := size / 2

	dc := cv.dc
	dc.MoveTo(tx, ty)
	dc.LineTo(tx-size*dx+half*dy, ty-size*dy-half*dx)
	dc.LineTo(tx-size*dx-half*dy, ty-size*dy+half*dx)
	dc.ClosePath()
	dc.Fill()
}

func (cv *pngCanvas) face(size float64) font.Face {
	if f, ok := cv.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(cv.font, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	cv.faces[size] = f
	return f
}
