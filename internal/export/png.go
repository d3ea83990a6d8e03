package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	xdraw "golang.org/x/image/draw"

	"snappyruler/internal/engine"
	"snappyruler/internal/geometry"
)

// PNGOptions controls PNG rendering.
type PNGOptions struct {
	// Width is the output image width in pixels; height follows the
	// drawing's aspect ratio. Zero means native bounding-box size.
	Width int
	// StrokeWidth is the line thickness in canvas units.
	StrokeWidth float64
	// Background fills the canvas; nil means white.
	Background color.Color
}

// RenderPNG rasterizes the committed strokes into an RGBA image. Strokes
// are drawn at native bounding-box resolution, then resampled to the
// requested width with a bilinear scaler.
func RenderPNG(strokes []*engine.Stroke, opts PNGOptions) (*image.RGBA, error) {
	bounds, ok := ComputeBounds(strokes)
	if !ok {
		return nil, fmt.Errorf("nothing to export: canvas is empty")
	}
	if opts.StrokeWidth <= 0 {
		opts.StrokeWidth = 2
	}
	bg := opts.Background
	if bg == nil {
		bg = color.White
	}

	w := int(math.Ceil(bounds.Width()))
	h := int(math.Ceil(bounds.Height()))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fill(img, bg)

	ink := color.RGBA{A: 255}
	for _, s := range strokes {
		pts := s.Points
		if len(pts) == 1 {
			drawDot(img, toImage(pts[0], bounds), opts.StrokeWidth/2, ink)
			continue
		}
		for i := 1; i < len(pts); i++ {
			drawSegment(img, toImage(pts[i-1], bounds), toImage(pts[i], bounds), opts.StrokeWidth, ink)
		}
	}

	if opts.Width <= 0 || opts.Width == w {
		return img, nil
	}
	outH := int(math.Round(float64(opts.Width) * float64(h) / float64(w)))
	if outH < 1 {
		outH = 1
	}
	out := image.NewRGBA(image.Rect(0, 0, opts.Width, outH))
	xdraw.BiLinear.Scale(out, out.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return out, nil
}

// WritePNG renders the strokes and encodes the result to w.
func WritePNG(w io.Writer, strokes []*engine.Stroke, opts PNGOptions) error {
	img, err := RenderPNG(strokes, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// toImage maps a canvas point into image pixel space.
func toImage(p geometry.Point, b Bounds) geometry.Point {
	return geometry.Pt(p.X-b.MinX, p.Y-b.MinY)
}

func fill(img *image.RGBA, c color.Color) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}

// drawSegment draws a thick line by stamping dots along the segment at
// sub-pixel steps.
func drawSegment(img *image.RGBA, a, b geometry.Point, width float64, c color.RGBA) {
	length := a.Distance(b)
	steps := int(math.Ceil(length)) * 2
	if steps == 0 {
		drawDot(img, a, width/2, c)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		drawDot(img, geometry.Pt(a.X+(b.X-a.X)*t, a.Y+(b.Y-a.Y)*t), width/2, c)
	}
}

// drawDot fills a filled disc of the given radius.
func drawDot(img *image.RGBA, center geometry.Point, radius float64, c color.RGBA) {
	if radius < 0.5 {
		radius = 0.5
	}
	minX := int(math.Floor(center.X - radius))
	maxX := int(math.Ceil(center.X + radius))
	minY := int(math.Floor(center.Y - radius))
	maxY := int(math.Ceil(center.Y + radius))
	r2 := radius * radius
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			dx := float64(x) + 0.5 - center.X
			dy := float64(y) + 0.5 - center.Y
			if dx*dx+dy*dy <= r2 {
				img.SetRGBA(x, y, c)
			}
		}
	}
}
