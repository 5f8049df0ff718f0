package debug

import (
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func fixedCapture(dir string) *ScreenshotCapture {
	sc := NewScreenshotCapture(dir, "surface")
	sc.now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 6, 7e6, time.UTC) }
	return sc
}

func TestFlipPixels(t *testing.T) {
	// 1x2: bottom row red, top row blue as OpenGL reads them.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := FlipPixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("FlipPixels: %v", err)
	}
	if r, _, b, _ := img.At(0, 0).RGBA(); r != 0 || b == 0 {
		t.Errorf("top pixel should be blue, got r=%d b=%d", r, b)
	}
	if r, _, b, _ := img.At(0, 1).RGBA(); r == 0 || b != 0 {
		t.Errorf("bottom pixel should be red, got r=%d b=%d", r, b)
	}

	if _, err := FlipPixels(pixels, 2, 2); !errors.Is(err, ErrPixelSize) {
		t.Errorf("size mismatch error = %v, want ErrPixelSize", err)
	}
}

func TestGenerateFilename(t *testing.T) {
	sc := fixedCapture("shots")
	want := filepath.Join("shots", "surface_2024-03-09_14-05-06.007.png")
	if got := sc.GenerateFilename(); got != want {
		t.Errorf("GenerateFilename() = %q, want %q", got, want)
	}

	sc.SetFormat(FormatJPEG)
	want = filepath.Join("shots", "surface_2024-03-09_14-05-06.007.jpg")
	if got := sc.GenerateFilename(); got != want {
		t.Errorf("GenerateFilename() jpeg = %q, want %q", got, want)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatPNG, false},
		{"PNG", FormatPNG, false},
		{"jpg", FormatJPEG, false},
		{"jpeg", FormatJPEG, false},
		{"gif", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestCaptureFromPixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	sc := fixedCapture(dir)

	pixels := make([]byte, 4*3*4)
	for i := range pixels {
		pixels[i] = 200
	}
	name, err := sc.CaptureFromPixels(pixels, 4, 3)
	if err != nil {
		t.Fatalf("CaptureFromPixels: %v", err)
	}

	f, err := os.Open(name)
	if err != nil {
		t.Fatalf("open %s: %v", name, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Errorf("bounds = %v, want 4x3", img.Bounds())
	}
}

func TestCaptureJPEG(t *testing.T) {
	sc := fixedCapture(t.TempDir())
	sc.SetFormat(FormatJPEG)

	name, err := sc.CaptureFromImage(image.NewRGBA(image.Rect(0, 0, 8, 8)))
	if err != nil {
		t.Fatalf("CaptureFromImage: %v", err)
	}
	f, err := os.Open(name)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	if _, err := jpeg.Decode(f); err != nil {
		t.Errorf("jpeg decode: %v", err)
	}
}
