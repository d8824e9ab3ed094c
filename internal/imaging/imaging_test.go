package imaging_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Tiliavir/diary/internal/imaging"
)

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "photo.png")
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func decodeDataURL(t *testing.T, url string) image.Config {
	t.Helper()
	const prefix = "data:image/jpeg;base64,"
	if !strings.HasPrefix(url, prefix) {
		t.Fatalf("data URL prefix: %.40q", url)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, prefix))
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("not a JPEG: %v", err)
	}
	return cfg
}

func TestResize(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		maxWidth     int
		wantW, wantH int
	}{
		{"downscale", 400, 300, 200, 200, 150},
		{"never enlarge", 100, 50, 200, 100, 50},
		{"rounded height", 300, 101, 100, 100, 34},
		{"default max width", 1300, 100, 0, 1200, 92},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePNG(t, tt.w, tt.h)
			p, err := imaging.Resizer{MaxWidth: tt.maxWidth, Quality: 80}.Resize(context.Background(), path)
			if err != nil {
				t.Fatalf("Resize: %v", err)
			}
			if p.Name != "photo.png" {
				t.Errorf("Name = %q", p.Name)
			}
			cfg := decodeDataURL(t, p.DataURL)
			if cfg.Width != tt.wantW || cfg.Height != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", cfg.Width, cfg.Height, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestResizeRejectsNonImage(t *testing.T) {
	_, err := imaging.Resizer{}.ResizeReader(context.Background(), "notes.txt", strings.NewReader("hello"))
	if err == nil {
		t.Fatal("expected decode error")
	}
}

func TestResizeMissingFile(t *testing.T) {
	_, err := imaging.Resizer{}.Resize(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestResizeHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := imaging.Resizer{}.Resize(ctx, writePNG(t, 10, 10))
	if err == nil {
		t.Fatal("expected context error")
	}
}
