package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Point is a single (x, y) sample of a curve.
type Point struct {
	X, Y float64
}

// ChartOptions controls line chart rendering.
type ChartOptions struct {
	Width, Height int
	Title         string
	XLabel        string
	YLabel        string
	// YMin and YMax fix the vertical range; equal values auto-fit the data.
	YMin, YMax float64
}

// DefaultChartOptions returns the layout used for satisfaction sweeps.
func DefaultChartOptions() ChartOptions {
	return ChartOptions{
		Width:  640,
		Height: 420,
		Title:  "Mean Satisfaction vs. p",
		XLabel: "p",
		YLabel: "Mean Satisfaction",
		YMin:   0,
		YMax:   1,
	}
}

var (
	chartBackground = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	chartAxis       = color.RGBA{R: 40, G: 40, B: 48, A: 255}
	chartGrid       = color.RGBA{R: 225, G: 225, B: 232, A: 255}
	chartLine       = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	chartText       = color.RGBA{R: 30, G: 30, B: 36, A: 255}
)

const (
	chartMarginLeft   = 64
	chartMarginRight  = 24
	chartMarginTop    = 40
	chartMarginBottom = 52
	chartTicks        = 5
)

// EncodeLineChart renders points (sorted by X by the caller) as a PNG line chart.
func EncodeLineChart(w io.Writer, points []Point, opts ChartOptions) error {
	img, err := LineChart(points, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("render: encoding png: %w", err)
	}
	return nil
}

// LineChart draws points into a new image.
func LineChart(points []Point, opts ChartOptions) (*image.RGBA, error) {
	if len(points) == 0 {
		return nil, errors.New("render: no points to plot")
	}
	if opts.Width <= chartMarginLeft+chartMarginRight || opts.Height <= chartMarginTop+chartMarginBottom {
		return nil, fmt.Errorf("render: chart %dx%d too small", opts.Width, opts.Height)
	}

	xMin, xMax := points[0].X, points[0].X
	yMin, yMax := opts.YMin, opts.YMax
	fitY := yMin == yMax
	if fitY {
		yMin, yMax = points[0].Y, points[0].Y
	}
	for _, p := range points {
		xMin = math.Min(xMin, p.X)
		xMax = math.Max(xMax, p.X)
		if fitY {
			yMin = math.Min(yMin, p.Y)
			yMax = math.Max(yMax, p.Y)
		}
	}
	if xMax == xMin {
		xMin, xMax = xMin-0.5, xMax+0.5
	}
	if yMax == yMin {
		yMin, yMax = yMin-0.5, yMax+0.5
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(chartBackground), image.Point{}, draw.Src)

	plot := image.Rect(chartMarginLeft, chartMarginTop, opts.Width-chartMarginRight, opts.Height-chartMarginBottom)
	toPixel := func(p Point) image.Point {
		fx := (p.X - xMin) / (xMax - xMin)
		fy := (p.Y - yMin) / (yMax - yMin)
		return image.Point{
			X: plot.Min.X + int(math.Round(fx*float64(plot.Dx()-1))),
			Y: plot.Max.Y - 1 - int(math.Round(fy*float64(plot.Dy()-1))),
		}
	}

	for i := 0; i <= chartTicks; i++ {
		frac := float64(i) / chartTicks
		gy := plot.Max.Y - 1 - int(math.Round(frac*float64(plot.Dy()-1)))
		drawLine(img, image.Pt(plot.Min.X, gy), image.Pt(plot.Max.X-1, gy), chartGrid)
		label := formatTick(yMin + frac*(yMax-yMin))
		drawText(img, label, plot.Min.X-8-textWidth(label), gy+4, chartText)

		gx := plot.Min.X + int(math.Round(frac*float64(plot.Dx()-1)))
		drawLine(img, image.Pt(gx, plot.Max.Y-1), image.Pt(gx, plot.Max.Y+3), chartAxis)
		label = formatTick(xMin + frac*(xMax-xMin))
		drawText(img, label, gx-textWidth(label)/2, plot.Max.Y+18, chartText)
	}

	drawLine(img, image.Pt(plot.Min.X, plot.Min.Y), image.Pt(plot.Min.X, plot.Max.Y-1), chartAxis)
	drawLine(img, image.Pt(plot.Min.X, plot.Max.Y-1), image.Pt(plot.Max.X-1, plot.Max.Y-1), chartAxis)

	prev := toPixel(points[0])
	for _, p := range points[1:] {
		cur := toPixel(p)
		drawLine(img, prev, cur, chartLine)
		prev = cur
	}
	for _, p := range points {
		drawMarker(img, toPixel(p), chartLine)
	}

	drawText(img, opts.Title, (opts.Width-textWidth(opts.Title))/2, chartMarginTop/2+4, chartText)
	drawText(img, opts.XLabel, plot.Min.X+(plot.Dx()-textWidth(opts.XLabel))/2, opts.Height-12, chartText)
	drawText(img, opts.YLabel, 6, chartMarginTop-10, chartText)
	return img, nil
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func textWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}

func drawText(dst draw.Image, s string, x, y int, col color.Color) {
	if s == "" {
		return
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// drawLine rasterizes a segment with Bresenham's algorithm.
func drawLine(img *image.RGBA, a, b image.Point, col color.RGBA) {
	dx := absInt(b.X - a.X)
	dy := -absInt(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	x, y := a.X, a.Y
	for {
		img.SetRGBA(x, y, col)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func drawMarker(img *image.RGBA, p image.Point, col color.RGBA) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			img.SetRGBA(p.X+dx, p.Y+dy, col)
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
