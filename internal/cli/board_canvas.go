package cli

import (
	"math"
	"strings"

	"github.com/alexanderramin/pinboard/internal/board"
	"github.com/alexanderramin/pinboard/internal/cli/formatter"
	"github.com/alexanderramin/pinboard/internal/geometry"
	"github.com/charmbracelet/lipgloss"
)

// A terminal cell covers cellPx by rowPx container pixels, which keeps
// cards roughly square on screen.
const (
	cellPx = 10.0
	rowPx  = 20.0
)

const selectionColor = lipgloss.Color("#D97706")

// cellCenter is the container pixel at the middle of a cell.
func cellCenter(col, row int) geometry.Point {
	return geometry.Point{X: (float64(col) + 0.5) * cellPx, Y: (float64(row) + 0.5) * rowPx}
}

func pixelCell(p geometry.Point) (col, row int) {
	return int(math.Floor(p.X / cellPx)), int(math.Floor(p.Y / rowPx))
}

// cellSpan is an inclusive range of cells.
type cellSpan struct {
	x0, y0, x1, y1 int
}

func (s cellSpan) contains(col, row int) bool {
	return col >= s.x0 && col <= s.x1 && row >= s.y0 && row <= s.y1
}

// rectCells maps a board-percentage rectangle onto the cells it covers.
func rectCells(v board.View, r geometry.Rect) cellSpan {
	tl := v.Viewport.FromPercent(geometry.Point{X: r.Left(), Y: r.Top()}, v.BoardSize)
	br := v.Viewport.FromPercent(geometry.Point{X: r.Right(), Y: r.Bottom()}, v.BoardSize)
	s := cellSpan{
		x0: int(math.Floor(tl.X / cellPx)),
		y0: int(math.Floor(tl.Y / rowPx)),
		x1: int(math.Ceil(br.X/cellPx)) - 1,
		y1: int(math.Ceil(br.Y/rowPx)) - 1,
	}
	s.x1 = max(s.x1, s.x0)
	s.y1 = max(s.y1, s.y0)
	return s
}

// canvas is a grid of runes with one style per cell. Styles are stored by
// index so runs of equal style render as one segment.
type canvas struct {
	w, h   int
	runes  []rune
	styles []int
	table  []lipgloss.Style
}

func newCanvas(w, h int) *canvas {
	c := &canvas{
		w:      w,
		h:      h,
		runes:  make([]rune, w*h),
		styles: make([]int, w*h),
		table:  []lipgloss.Style{lipgloss.NewStyle()},
	}
	for i := range c.runes {
		c.runes[i] = ' '
	}
	return c
}

func (c *canvas) style(s lipgloss.Style) int {
	c.table = append(c.table, s)
	return len(c.table) - 1
}

func (c *canvas) set(col, row int, r rune, style int) {
	if col < 0 || row < 0 || col >= c.w || row >= c.h {
		return
	}
	c.runes[row*c.w+col] = r
	c.styles[row*c.w+col] = style
}

func (c *canvas) at(col, row int) rune {
	if col < 0 || row < 0 || col >= c.w || row >= c.h {
		return 0
	}
	return c.runes[row*c.w+col]
}

func (c *canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.h; row++ {
		start := 0
		for col := 1; col <= c.w; col++ {
			i := row*c.w + col
			if col < c.w && c.styles[i] == c.styles[i-1] {
				continue
			}
			seg := string(c.runes[row*c.w+start : row*c.w+col])
			if st := c.styles[row*c.w+start]; st == 0 {
				b.WriteString(seg)
			} else {
				b.WriteString(c.table[st].Render(seg))
			}
			start = col
		}
		if row < c.h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// drawBoard paints v: area outside the board, connectors, cards in z order
// and the alignment guides of an active drag.
func drawBoard(v board.View, w, h int) *canvas {
	c := newCanvas(w, h)

	outside := c.style(formatter.StyleDim)
	area := rectCells(v, geometry.Rect{W: 100, H: 100})
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			if !area.contains(col, row) {
				c.set(col, row, '·', outside)
			}
		}
	}

	for _, r := range v.Routes {
		fg := lipgloss.Color(r.Color)
		ch := '·'
		if r.ConnectionID == v.SelectedConnectionID {
			fg, ch = selectionColor, '•'
		}
		drawCurve(c, v, r.Path.Curve, ch, c.style(lipgloss.NewStyle().Foreground(fg)))
	}

	for _, cv := range v.Cards {
		drawCardCells(c, v, cv)
	}

	guide := c.style(lipgloss.NewStyle().Foreground(selectionColor))
	for _, x := range v.Guides.Vertical {
		col, _ := pixelCell(v.Viewport.FromPercent(geometry.Point{X: x}, v.BoardSize))
		for row := 0; row < h; row++ {
			if c.at(col, row) == ' ' || c.at(col, row) == '·' {
				c.set(col, row, '┊', guide)
			}
		}
	}
	for _, y := range v.Guides.Horizontal {
		_, row := pixelCell(v.Viewport.FromPercent(geometry.Point{Y: y}, v.BoardSize))
		for col := 0; col < w; col++ {
			if c.at(col, row) == ' ' || c.at(col, row) == '·' {
				c.set(col, row, '┄', guide)
			}
		}
	}
	return c
}

func drawCurve(c *canvas, v board.View, curve geometry.QuadCurve, ch rune, style int) {
	a := v.Viewport.FromPercent(curve.Start, v.BoardSize)
	b := v.Viewport.FromPercent(curve.End, v.BoardSize)
	steps := int(geometry.Dist(a, b)/cellPx)*2 + 8
	for i := 0; i <= steps; i++ {
		p := curve.At(float64(i) / float64(steps))
		col, row := pixelCell(v.Viewport.FromPercent(p, v.BoardSize))
		c.set(col, row, ch, style)
	}
}

func drawCardCells(c *canvas, v board.View, cv board.CardView) {
	span := rectCells(v, cv.Display)
	body := c.style(formatter.CardStyle(cv.Card.Color))
	for row := span.y0; row <= span.y1; row++ {
		for col := span.x0; col <= span.x1; col++ {
			c.set(col, row, ' ', body)
		}
	}

	inner := span
	if border := cardBorder(cv); border != "" {
		drawFrame(c, span, c.style(formatter.CardStyle(cv.Card.Color).Foreground(lipgloss.Color(border)).Bold(true)))
		inner = cellSpan{x0: span.x0 + 1, y0: span.y0 + 1, x1: span.x1 - 1, y1: span.y1 - 1}
	}

	width := inner.x1 - inner.x0 + 1
	if width <= 0 || inner.y1 < inner.y0 {
		return
	}
	lines := wrapLines(cv.Card.Content, width)
	for i, line := range lines {
		row := inner.y0 + i
		if row > inner.y1 {
			break
		}
		for j, r := range []rune(line) {
			if inner.x0+j > inner.x1 {
				break
			}
			c.set(inner.x0+j, row, r, body)
		}
	}
}

// cardBorder returns the frame color for a card, or "" for none.
func cardBorder(cv board.CardView) string {
	switch {
	case cv.ConnectSource:
		return string(formatter.ColorGreen)
	case cv.Selected || cv.Active:
		return string(selectionColor)
	default:
		return ""
	}
}

func drawFrame(c *canvas, s cellSpan, style int) {
	for col := s.x0; col <= s.x1; col++ {
		c.set(col, s.y0, '─', style)
		c.set(col, s.y1, '─', style)
	}
	for row := s.y0; row <= s.y1; row++ {
		c.set(s.x0, row, '│', style)
		c.set(s.x1, row, '│', style)
	}
	c.set(s.x0, s.y0, '╭', style)
	c.set(s.x1, s.y0, '╮', style)
	c.set(s.x0, s.y1, '╰', style)
	c.set(s.x1, s.y1, '◢', style)
}

// wrapLines word-wraps text to width cells.
func wrapLines(text string, width int) []string {
	if strings.TrimSpace(text) == "" || width <= 0 {
		return nil
	}
	wrapped := lipgloss.NewStyle().Width(width).Render(text)
	lines := strings.Split(wrapped, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}
