package chart

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"

	svgo "github.com/ajstarks/svgo"
)

// SVG is a Surface that accumulates an SVG document. Coordinates are rounded
// to whole pixels.
type SVG struct {
	width, height float64
	body          bytes.Buffer
	canvas        *svgo.SVG
}

// NewSVG returns an empty SVG surface of the given size.
func NewSVG(width, height float64) *SVG {
	s := &SVG{width: width, height: height}
	s.canvas = svgo.New(&s.body)
	return s
}

func (s *SVG) Size() (float64, float64) { return s.width, s.height }

func (s *SVG) Clear() { s.body.Reset() }

func (s *SVG) FillRect(r Rect, color string, radius float64) {
	x, y, w, h := px(r.X), px(r.Y), px(r.W), px(r.H)
	if w <= 0 || h <= 0 {
		return
	}
	rad := px(radius)
	if limit := min(w, h) / 2; rad > limit {
		rad = limit
	}
	fill := fmt.Sprintf(`fill="%s"`, attr(color))
	if rad > 0 {
		s.canvas.Roundrect(x, y, w, h, rad, rad, fill)
		return
	}
	s.canvas.Rect(x, y, w, h, fill)
}

func (s *SVG) StrokeLine(x1, y1, x2, y2 float64, color string, width float64) {
	s.canvas.Line(px(x1), px(y1), px(x2), px(y2),
		fmt.Sprintf(`stroke="%s"`, attr(color)),
		fmt.Sprintf(`stroke-width="%d"`, max(px(width), 1)))
}

func (s *SVG) FillText(text string, x, y float64, style TextStyle) {
	anchor := "start"
	switch style.Align {
	case AlignCenter:
		anchor = "middle"
	case AlignRight:
		anchor = "end"
	}
	s.canvas.Text(px(x), px(y), text,
		fmt.Sprintf(`fill="%s"`, attr(style.Color)),
		fmt.Sprintf(`font-size="%d"`, px(style.Size)),
		fmt.Sprintf(`text-anchor="%s"`, anchor),
		`dominant-baseline="middle"`,
		`font-family="Poppins, sans-serif"`)
}

func (s *SVG) MeasureText(text string, size float64) float64 {
	return approxTextWidth(text, size)
}

// WriteTo writes the complete SVG document to w.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	var doc bytes.Buffer
	canvas := svgo.New(&doc)
	canvas.Start(px(s.width), px(s.height))
	doc.Write(s.body.Bytes())
	canvas.End()
	return doc.WriteTo(w)
}

func px(v float64) int {
	return int(math.Round(v))
}

func attr(v string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(v))
	return b.String()
}
