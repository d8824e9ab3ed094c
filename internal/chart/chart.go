// Package chart draws stacked bar charts of aggregated diary hours.
package chart

import (
	"strconv"

	"github.com/Tiliavir/diary/internal/aggregate"
	"github.com/Tiliavir/diary/internal/i18n"
	"github.com/Tiliavir/diary/internal/model"
	"github.com/Tiliavir/diary/internal/timecalc"
)

// Default colours.
var (
	DefaultColors = map[model.Category]string{
		model.Intern:  "#7dd3fc",
		model.Holiday: "#fb7185",
		model.Study:   "#a78bfa",
	}
	BackgroundColor = "#050816"
	GridColor       = "rgba(148,163,184,0.25)"
	AxisTextColor   = "#9ca3af"
	ValueTextColor  = "#e5e7eb"
)

const (
	fontSize   = 12
	gridSteps  = 4
	barRatio   = 0.5
	segmentRad = 6
)

// Margins around the plot area, per orientation.
type Margins struct {
	Left, Right, Top, Bottom float64
}

var (
	HorizontalMargins = Margins{Left: 80, Right: 20, Top: 30, Bottom: 26}
	VerticalMargins   = Margins{Left: 40, Right: 20, Top: 30, Bottom: 40}
)

// Options configures Render. Zero values select defaults.
type Options struct {
	Printer *i18n.Printer
	Colors  map[model.Category]string
}

// Segment is one category's share of a bar.
type Segment struct {
	Category model.Category
	Value    float64
	Rect     Rect
}

// Bar is the drawn stack of one non-empty bucket.
type Bar struct {
	Index      int
	Total      float64
	Rect       Rect
	Segments   []Segment
	TotalLabel string
}

// Layout is the geometry Render computed and drew.
type Layout struct {
	Plot Rect
	Bars []Bar
}

// Render clears s and draws series as stacked bars: horizontal rows for
// monthly series, vertical columns for daily series.
func Render(s Surface, series aggregate.Series, opts Options) Layout {
	if opts.Printer == nil {
		opts.Printer = i18n.New("")
	}
	if opts.Colors == nil {
		opts.Colors = DefaultColors
	}
	s.Clear()

	var layout Layout
	if series.Period.Granularity == aggregate.Daily {
		layout = renderVertical(s, series, opts)
	} else {
		layout = renderHorizontal(s, series, opts)
	}
	renderLegend(s, layout.Plot.X, opts)
	return layout
}

func plotArea(s Surface, m Margins) Rect {
	w, h := s.Size()
	return Rect{X: m.Left, Y: m.Top, W: w - m.Left - m.Right, H: h - m.Top - m.Bottom}
}

func renderHorizontal(s Surface, series aggregate.Series, opts Options) Layout {
	plot := plotArea(s, HorizontalMargins)
	layout := Layout{Plot: plot}
	n := len(series.Buckets)
	if n == 0 || plot.W <= 0 || plot.H <= 0 {
		return layout
	}

	s.FillRect(Rect{X: plot.X - 10, Y: plot.Y - 12, W: plot.W + 20, H: plot.H + 24}, BackgroundColor, 14)
	for i := 0; i <= gridSteps; i++ {
		x := plot.X + plot.W*float64(i)/gridSteps
		s.StrokeLine(x, plot.Y, x, plot.Y+plot.H, GridColor, 1)
	}

	rowSpace := plot.H / float64(n)
	barH := rowSpace * barRatio
	for i, b := range series.Buckets {
		centerY := plot.Y + rowSpace*float64(i) + rowSpace/2
		s.FillText(opts.Printer.MonthShort(b.Start.Month()), plot.X-12, centerY,
			TextStyle{Color: AxisTextColor, Size: fontSize, Align: AlignRight})
		if b.Empty() {
			continue
		}

		totalW := b.Total / series.Max * plot.W
		bar := Bar{Index: i, Total: b.Total, Rect: Rect{X: plot.X, Y: centerY - barH/2, W: totalW, H: barH}}
		x := plot.X
		for _, c := range model.Categories {
			v := b.Value(c)
			if v <= 0 {
				continue
			}
			seg := Segment{Category: c, Value: v, Rect: Rect{X: x, Y: centerY - barH/2, W: totalW * (v / b.Total), H: barH}}
			s.FillRect(seg.Rect, opts.Colors[c], segmentRad)
			bar.Segments = append(bar.Segments, seg)
			x += seg.Rect.W
		}

		bar.TotalLabel = opts.Printer.Hours(timecalc.FormatHoursFixed(b.Total))
		s.FillText(bar.TotalLabel, plot.X+totalW+8, centerY,
			TextStyle{Color: ValueTextColor, Size: fontSize, Align: AlignLeft})
		layout.Bars = append(layout.Bars, bar)
	}
	return layout
}

func renderVertical(s Surface, series aggregate.Series, opts Options) Layout {
	plot := plotArea(s, VerticalMargins)
	layout := Layout{Plot: plot}
	n := len(series.Buckets)
	if n == 0 || plot.W <= 0 || plot.H <= 0 {
		return layout
	}

	s.FillRect(Rect{X: plot.X - 10, Y: plot.Y - 12, W: plot.W + 20, H: plot.H + 24}, BackgroundColor, 14)
	for i := 0; i <= gridSteps; i++ {
		y := plot.Y + plot.H*float64(i)/gridSteps
		s.StrokeLine(plot.X, y, plot.X+plot.W, y, GridColor, 1)
	}

	colSpace := plot.W / float64(n)
	barW := colSpace * barRatio
	baseline := plot.Y + plot.H
	labelEvery := n / 10
	if labelEvery < 1 {
		labelEvery = 1
	}
	for i, b := range series.Buckets {
		centerX := plot.X + colSpace*float64(i) + colSpace/2
		if i%labelEvery == 0 || i == n-1 {
			s.FillText(dayLabel(b, i, opts.Printer), centerX, baseline+14,
				TextStyle{Color: AxisTextColor, Size: fontSize, Align: AlignCenter})
		}
		if b.Empty() {
			continue
		}

		totalH := b.Total / series.Max * plot.H
		bar := Bar{Index: i, Total: b.Total, Rect: Rect{X: centerX - barW/2, Y: baseline - totalH, W: barW, H: totalH}}
		y := baseline
		for _, c := range model.Categories {
			v := b.Value(c)
			if v <= 0 {
				continue
			}
			h := totalH * (v / b.Total)
			seg := Segment{Category: c, Value: v, Rect: Rect{X: centerX - barW/2, Y: y - h, W: barW, H: h}}
			s.FillRect(seg.Rect, opts.Colors[c], 2)
			bar.Segments = append(bar.Segments, seg)
			y -= h
		}

		bar.TotalLabel = opts.Printer.Hours(timecalc.FormatHoursTrim(b.Total))
		s.FillText(bar.TotalLabel, centerX, baseline-totalH-8,
			TextStyle{Color: ValueTextColor, Size: fontSize - 2, Align: AlignCenter})
		layout.Bars = append(layout.Bars, bar)
	}
	return layout
}

// dayLabel names the first bucket and the first of each month with the month.
func dayLabel(b aggregate.Bucket, i int, p *i18n.Printer) string {
	day := strconv.Itoa(b.Start.Day())
	if i == 0 || b.Start.Day() == 1 {
		return p.MonthShort(b.Start.Month()) + " " + day
	}
	return day
}

func renderLegend(s Surface, left float64, opts Options) {
	_, h := s.Size()
	x := left
	y := h - 12
	for _, c := range model.Categories {
		label := opts.Printer.Category(c)
		s.FillRect(Rect{X: x, Y: y - 6, W: 18, H: 8}, opts.Colors[c], 4)
		x += 24
		s.FillText(label, x, y, TextStyle{Color: AxisTextColor, Size: fontSize, Align: AlignLeft})
		x += s.MeasureText(label, fontSize) + 18
	}
}
