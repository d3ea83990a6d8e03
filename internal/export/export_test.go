package export

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"snappyruler/internal/engine"
	"snappyruler/internal/geometry"
)

func stroke(points ...geometry.Point) *engine.Stroke {
	s := engine.NewStroke(engine.ToolFreehand, points[0])
	for _, p := range points[1:] {
		s.Append(p)
	}
	s.Finalize()
	return s
}

func TestComputeBounds(t *testing.T) {
	strokes := []*engine.Stroke{
		stroke(geometry.Pt(10, 20), geometry.Pt(110, 40)),
		stroke(geometry.Pt(-30, 60), geometry.Pt(0, 0)),
	}
	b, ok := ComputeBounds(strokes)
	if !ok {
		t.Fatal("bounds not found for non-empty strokes")
	}
	want := Bounds{
		MinX: -30 - Padding, MinY: 0 - Padding,
		MaxX: 110 + Padding, MaxY: 60 + Padding,
	}
	if b != want {
		t.Errorf("bounds = %+v, want %+v", b, want)
	}
}

func TestComputeBounds_Empty(t *testing.T) {
	if _, ok := ComputeBounds(nil); ok {
		t.Error("empty stroke list reported bounds")
	}
}

func TestRenderPNG_NativeSize(t *testing.T) {
	strokes := []*engine.Stroke{stroke(geometry.Pt(0, 0), geometry.Pt(100, 50))}
	img, err := RenderPNG(strokes, PNGOptions{})
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	// 100x50 drawing plus padding on all sides.
	wantW := int(100 + 2*Padding)
	wantH := int(50 + 2*Padding)
	if img.Bounds().Dx() != wantW || img.Bounds().Dy() != wantH {
		t.Errorf("image is %dx%d, want %dx%d",
			img.Bounds().Dx(), img.Bounds().Dy(), wantW, wantH)
	}

	// The segment midpoint must be inked, a far corner must not.
	mid := img.RGBAAt(int(50+Padding), int(25+Padding))
	if mid.R != 0 || mid.A != 255 {
		t.Errorf("midpoint pixel = %v, want black ink", mid)
	}
	corner := img.RGBAAt(1, wantH-2)
	if corner.R == 0 && corner.G == 0 && corner.B == 0 {
		t.Error("corner pixel inked; expected background")
	}
}

func TestRenderPNG_Resampled(t *testing.T) {
	strokes := []*engine.Stroke{stroke(geometry.Pt(0, 0), geometry.Pt(200, 100))}
	img, err := RenderPNG(strokes, PNGOptions{Width: 480})
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	if img.Bounds().Dx() != 480 {
		t.Errorf("width = %d, want 480", img.Bounds().Dx())
	}
	// Aspect ratio preserved: (100+40)/(200+40) of the width.
	w := 480.0
	wantH := int(w*140.0/240.0 + 0.5)
	if img.Bounds().Dy() != wantH {
		t.Errorf("height = %d, want %d", img.Bounds().Dy(), wantH)
	}
}

func TestRenderPNG_Empty(t *testing.T) {
	if _, err := RenderPNG(nil, PNGOptions{}); err == nil {
		t.Error("expected error for empty canvas")
	}
}

func TestWritePDF_SinglePointStroke(t *testing.T) {
	// A lone tap must still produce a document with ink, same as PNG.
	path := filepath.Join(t.TempDir(), "tap.pdf")
	strokes := []*engine.Stroke{stroke(geometry.Pt(5, 5))}
	if err := WritePDF(path, strokes); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Error("PDF output is empty")
	}
}

func TestWritePDF_EmptyCanvas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	if err := WritePDF(path, nil); err == nil {
		t.Error("expected error for empty canvas")
	}
}

func TestWritePNG_Encodes(t *testing.T) {
	strokes := []*engine.Stroke{stroke(geometry.Pt(0, 0), geometry.Pt(10, 10))}
	var buf bytes.Buffer
	if err := WritePNG(&buf, strokes, PNGOptions{}); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Fatalf("output is not valid PNG: %v", err)
	}
}
