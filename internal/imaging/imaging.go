// Package imaging downscales photos before they are attached to an entry.
package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/Tiliavir/diary/internal/model"
)

const (
	DefaultMaxWidth = 1200
	DefaultQuality  = 85
)

// Resizer scales images to at most MaxWidth pixels wide and re-encodes
// them as JPEG data URLs.
type Resizer struct {
	MaxWidth int
	Quality  int
}

// Resize reads the image at path and returns it as a photo.
func (r Resizer) Resize(ctx context.Context, path string) (model.Photo, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Photo{}, fmt.Errorf("opening photo: %w", err)
	}
	defer f.Close()
	return r.ResizeReader(ctx, filepath.Base(path), f)
}

// ResizeReader decodes jpeg, png, gif or webp data from src.
func (r Resizer) ResizeReader(ctx context.Context, name string, src io.Reader) (model.Photo, error) {
	if err := ctx.Err(); err != nil {
		return model.Photo{}, err
	}
	img, _, err := image.Decode(src)
	if err != nil {
		return model.Photo{}, fmt.Errorf("decoding photo %s: %w", name, err)
	}
	if err := ctx.Err(); err != nil {
		return model.Photo{}, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, r.scale(img), &jpeg.Options{Quality: r.quality()}); err != nil {
		return model.Photo{}, fmt.Errorf("encoding photo %s: %w", name, err)
	}
	return model.Photo{
		Name:    name,
		DataURL: "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}

// scale never enlarges. Transparent areas become white since JPEG has no alpha.
func (r Resizer) scale(src image.Image) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxW := r.maxWidth(); w > maxW {
		h = int(math.Round(float64(h) * float64(maxW) / float64(w)))
		w = maxW
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func (r Resizer) maxWidth() int {
	if r.MaxWidth > 0 {
		return r.MaxWidth
	}
	return DefaultMaxWidth
}

func (r Resizer) quality() int {
	if r.Quality > 0 && r.Quality <= 100 {
		return r.Quality
	}
	return DefaultQuality
}
