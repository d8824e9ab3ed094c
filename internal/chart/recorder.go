package chart

// Op is one recorded drawing call.
type Op struct {
	Kind   string // "clear", "rect", "line" or "text"
	Rect   Rect
	Color  string
	Text   string
	X, Y   float64
	Style  TextStyle
	Radius float64
}

// Recorder is a Surface that records calls instead of drawing.
type Recorder struct {
	W, H float64
	Ops  []Op
}

// NewRecorder returns a Recorder of the given size.
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) Size() (float64, float64) { return r.W, r.H }

func (r *Recorder) Clear() {
	r.Ops = append(r.Ops[:0], Op{Kind: "clear"})
}

func (r *Recorder) FillRect(rect Rect, color string, radius float64) {
	r.Ops = append(r.Ops, Op{Kind: "rect", Rect: rect, Color: color, Radius: radius})
}

func (r *Recorder) StrokeLine(x1, y1, x2, y2 float64, color string, _ float64) {
	r.Ops = append(r.Ops, Op{Kind: "line", Rect: Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}, Color: color})
}

func (r *Recorder) FillText(text string, x, y float64, style TextStyle) {
	r.Ops = append(r.Ops, Op{Kind: "text", Text: text, X: x, Y: y, Style: style, Color: style.Color})
}

func (r *Recorder) MeasureText(text string, size float64) float64 {
	return approxTextWidth(text, size)
}

// Texts returns the recorded text draws in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}

// Rects returns the recorded rectangles filled with color.
func (r *Recorder) Rects(color string) []Rect {
	var out []Rect
	for _, op := range r.Ops {
		if op.Kind == "rect" && op.Color == color {
			out = append(out, op.Rect)
		}
	}
	return out
}
