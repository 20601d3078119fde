// Package preview rasterizes outlines into images for quick inspection.
//
// Every layer of a model is filled in its own pass, so stacked layers show
// through each other. Boundaries are drawn as bands of constant pixel width
// on top of the fills.
package preview

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/outline/model"
)

// Options configures rendering.
type Options struct {
	// Width is the image width in pixels. The height follows the aspect
	// ratio of the outline.
	Width int
	// Margin is the blank border in pixels.
	Margin int
	// StrokeWidth is the boundary width in pixels. Zero draws no boundary.
	StrokeWidth float64
	// Label is drawn in the top-left margin when not empty.
	Label string

	Background color.Color
	Fill       color.Color
	Stroke     color.Color
}

// DefaultOptions returns options suited to a terminal-sized preview.
func DefaultOptions() Options {
	return Options{
		Width:       512,
		Margin:      24,
		StrokeWidth: 1.5,
		Background:  color.White,
		Fill:        color.NRGBA{R: 0x4a, G: 0x90, B: 0xd9, A: 0x80},
		Stroke:      color.Black,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Margin < 0 || 2*o.Margin >= o.Width {
		o.Margin = d.Margin
	}
	if o.StrokeWidth < 0 {
		o.StrokeWidth = 0
	}
	if o.Background == nil {
		o.Background = d.Background
	}
	if o.Fill == nil {
		o.Fill = d.Fill
	}
	if o.Stroke == nil {
		o.Stroke = d.Stroke
	}
	return o
}

// view maps model coordinates (y up) to pixels (y down).
type view struct {
	box    model.Box
	scale  float64
	margin float64
}

func (v view) pixel(p model.Point) (float32, float32) {
	x := v.margin + (p.X-v.box.Low.X)*v.scale
	y := v.margin + (v.box.High.Y-p.Y)*v.scale
	return float32(x), float32(y)
}

// Render draws m. An empty model yields a square blank image.
func Render(m *model.Model, opts Options) *image.RGBA {
	opts = opts.withDefaults()

	if m.IsEmpty() {
		img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Width))
		draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
		drawLabel(img, opts)
		return img
	}

	box := model.Extents(m)
	inner := float64(opts.Width - 2*opts.Margin)
	v := view{
		box:    box,
		scale:  inner / math.Max(box.Width(), box.Height()),
		margin: float64(opts.Margin),
	}
	height := int(math.Ceil(box.Height()*v.scale)) + 2*opts.Margin

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	layers := model.Contours(m)
	for _, contours := range layers {
		fill(img, contours, v, opts.Fill)
	}

	if opts.StrokeWidth > 0 {
		radius := opts.StrokeWidth / 2 / v.scale
		offset := model.OffsetOptions{Tolerance: 0.25 / v.scale}
		for _, contours := range layers {
			for _, c := range contours {
				band := model.Band(c.Points, true, radius, model.JoinPointed, offset)
				for _, bc := range model.Contours(band) {
					fill(img, bc, v, opts.Stroke)
				}
			}
		}
	}

	drawLabel(img, opts)
	return img
}

// fill rasterizes one layer. Holes wind the other way and cancel out.
func fill(img *image.RGBA, contours []model.Contour, v view, c color.Color) {
	b := img.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	r.DrawOp = draw.Over
	for _, contour := range contours {
		for i, p := range contour.Points {
			x, y := v.pixel(p)
			if i == 0 {
				r.MoveTo(x, y)
			} else {
				r.LineTo(x, y)
			}
		}
		r.ClosePath()
	}
	r.Draw(img, b, image.NewUniform(c), image.Point{})
}

func drawLabel(img *image.RGBA, opts Options) {
	if opts.Label == "" {
		return
	}
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(opts.Stroke),
		Face: face,
		Dot:  fixed.P(4, 2+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(opts.Label)
}

// WritePNG renders m and encodes it as PNG.
func WritePNG(w io.Writer, m *model.Model, opts Options) error {
	return png.Encode(w, Render(m, opts))
}
