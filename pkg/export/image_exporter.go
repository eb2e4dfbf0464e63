package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	imageMargin    = 24
	imageLineStep  = 16
	imageBarHeight = 18
	imageCharWidth = 7
	// MaxBarWidth is the pixel width of a 100% bar.
	MaxBarWidth = 600
)

var (
	colorBackground = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorText       = color.RGBA{R: 33, G: 37, B: 41, A: 255}
	colorMuted      = color.RGBA{R: 108, G: 117, B: 125, A: 255}
	colorBar        = color.RGBA{R: 13, G: 110, B: 253, A: 255}
	colorRule       = color.RGBA{R: 206, G: 212, B: 218, A: 255}
)

// ImageExporter draws datasets onto a fixed-size PNG canvas.
type ImageExporter struct {
	width   int
	height  int
	maxRows int
}

// NewImageExporter constructs a PNG exporter; maxRows <= 0 defaults to 100.
func NewImageExporter(maxRows int) *ImageExporter {
	if maxRows <= 0 {
		maxRows = 100
	}
	return &ImageExporter{width: 1200, height: 2000, maxRows: maxRows}
}

// ContentType implements Renderer.
func (e *ImageExporter) ContentType() string { return "image/png" }

// Extension implements Renderer.
func (e *ImageExporter) Extension() string { return "png" }

// MaxRows returns the row cap applied to every image.
func (e *ImageExporter) MaxRows() int { return e.maxRows }

// Bounds returns the fixed canvas size.
func (e *ImageExporter) Bounds() image.Rectangle {
	return image.Rect(0, 0, e.width, e.height)
}

// Render paints title, summary, optional bars and up to maxRows table rows.
func (e *ImageExporter) Render(w io.Writer, data Dataset) error {
	if err := validate(data, "image"); err != nil {
		return err
	}
	canvas := image.NewRGBA(e.Bounds())
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: colorBackground}, image.Point{}, draw.Src)

	y := imageMargin + 12
	if data.Title != "" {
		e.text(canvas, imageMargin, y, strings.ToUpper(data.Title), colorText)
		y += imageLineStep
	}
	if data.GeneratedAt != "" {
		e.text(canvas, imageMargin, y, "Generated: "+data.GeneratedAt, colorMuted)
		y += imageLineStep
	}
	if len(data.Summary) > 0 {
		parts := make([]string, 0, len(data.Summary))
		for _, item := range data.Summary {
			parts = append(parts, fmt.Sprintf("%s: %s", item.Label, item.Value))
		}
		e.text(canvas, imageMargin, y, strings.Join(parts, "   "), colorText)
		y += imageLineStep
	}
	y += imageLineStep / 2

	if len(data.Bars) > 0 {
		y = e.drawBars(canvas, y, data.Bars)
		y += imageLineStep
	}

	offsets, budgets := e.columns(data)
	for i, header := range data.Headers {
		e.text(canvas, offsets[i], y, Truncate(header, budgets[i]), colorText)
	}
	e.rule(canvas, y+4)
	y += imageLineStep + 2

	limit := len(data.Rows)
	if limit > e.maxRows {
		limit = e.maxRows
	}
	for _, row := range data.Rows[:limit] {
		if y > e.height-imageMargin {
			break
		}
		for i, value := range data.Record(row) {
			e.text(canvas, offsets[i], y, Truncate(value, budgets[i]), colorText)
		}
		y += imageLineStep
	}
	if len(data.Rows) > limit && y <= e.height-imageMargin {
		e.text(canvas, imageMargin, y, fmt.Sprintf("... %d more rows not shown", len(data.Rows)-limit), colorMuted)
	}

	if err := png.Encode(w, canvas); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// BarWidth scales a percentage against MaxBarWidth.
func BarWidth(percentage int) int {
	if percentage <= 0 {
		return 0
	}
	if percentage >= 100 {
		return MaxBarWidth
	}
	return percentage * MaxBarWidth / 100
}

func (e *ImageExporter) drawBars(canvas *image.RGBA, y int, bars []Bar) int {
	labelBudget := 40
	barX := imageMargin + (labelBudget+2)*imageCharWidth
	for _, bar := range bars {
		e.text(canvas, imageMargin, y, Truncate(bar.Label, labelBudget), colorText)
		top := y - imageBarHeight + 5
		if width := BarWidth(bar.Percentage); width > 0 {
			rect := image.Rect(barX, top, barX+width, top+imageBarHeight-4)
			draw.Draw(canvas, rect, &image.Uniform{C: colorBar}, image.Point{}, draw.Src)
		}
		label := fmt.Sprintf("%d%% (%d)", bar.Percentage, bar.Count)
		e.text(canvas, barX+BarWidth(bar.Percentage)+8, y, label, colorMuted)
		y += imageBarHeight + 4
	}
	return y
}

func (e *ImageExporter) columns(data Dataset) ([]int, []int) {
	n := len(data.Headers)
	budgets := make([]int, n)
	available := (e.width - 2*imageMargin) / imageCharWidth
	for i := range budgets {
		if i < len(data.ColumnBudgets) && data.ColumnBudgets[i] > 0 {
			budgets[i] = data.ColumnBudgets[i]
		} else {
			budgets[i] = available/n - 2
		}
	}
	offsets := make([]int, n)
	x := imageMargin
	for i, budget := range budgets {
		offsets[i] = x
		x += (budget + 2) * imageCharWidth
	}
	return offsets, budgets
}

func (e *ImageExporter) text(canvas *image.RGBA, x, y int, s string, c color.Color) {
	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func (e *ImageExporter) rule(canvas *image.RGBA, y int) {
	rect := image.Rect(imageMargin, y, e.width-imageMargin, y+1)
	draw.Draw(canvas, rect, &image.Uniform{C: colorRule}, image.Point{}, draw.Src)
}
