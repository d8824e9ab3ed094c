package chart

// Rect is an axis-aligned rectangle in surface coordinates (origin top-left).
type Rect struct {
	X, Y, W, H float64
}

// Align is the horizontal anchor of drawn text.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextStyle configures FillText. Text is vertically centred on y.
type TextStyle struct {
	Color string
	Size  float64
	Align Align
}

// Surface is the 2D drawing capability the renderer needs. Implementations
// report their live size so geometry follows resizes.
type Surface interface {
	Size() (w, h float64)
	Clear()
	FillRect(r Rect, color string, radius float64)
	StrokeLine(x1, y1, x2, y2 float64, color string, width float64)
	FillText(text string, x, y float64, style TextStyle)
	MeasureText(text string, size float64) float64
}

// approxTextWidth estimates the advance width of text in a proportional font.
func approxTextWidth(text string, size float64) float64 {
	return float64(len([]rune(text))) * size * 0.6
}
