// Package render draws a board snapshot to a raster image.
package render

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/alexanderramin/pinboard/internal/board"
	"github.com/alexanderramin/pinboard/internal/router"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// Stroke and marker sizes in board-percentage units.
const (
	connectionWidth = 0.2
	selectedWidth   = 0.4
	endpointRadius  = 0.4
	cardRadius      = 0.6
	cardPadding     = 0.8
)

const selectionColor = "#D97706"

type Options struct {
	// Size is the width and height of the output in pixels.
	Size       int
	FontSize   float64
	Background string
	// Guides draws the alignment guides of an active drag.
	Guides bool
}

func DefaultOptions() Options {
	return Options{Size: 1200, FontSize: 14, Background: "#FFFBEB"}
}

// Draw renders v at opts.Size pixels square. Connections go under cards,
// cards are drawn in z order.
func Draw(v board.View, opts Options) (image.Image, error) {
	if opts.Size <= 0 {
		return nil, fmt.Errorf("image size must be positive, got %d", opts.Size)
	}
	if opts.FontSize <= 0 {
		opts.FontSize = DefaultOptions().FontSize
	}

	face, err := monoFace(opts.FontSize)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(opts.Size, opts.Size)
	dc.SetColor(parseHex(opts.Background, color.White))
	dc.Clear()
	dc.SetFontFace(face)

	// px converts board percent to output pixels.
	px := float64(opts.Size) / 100

	for _, r := range v.Routes {
		drawRoute(dc, r.Path, r.Color, r.ConnectionID == v.SelectedConnectionID, px)
	}
	for _, c := range v.Cards {
		drawCard(dc, c, px)
	}
	if opts.Guides {
		drawGuides(dc, v, px)
	}
	return dc.Image(), nil
}

// WritePNG encodes the rendered board to w.
func WritePNG(w io.Writer, v board.View, opts Options) error {
	img, err := Draw(v, opts)
	if err != nil {
		return err
	}
	return gg.NewContextForImage(img).EncodePNG(w)
}

// SavePNG writes the rendered board to path.
func SavePNG(path string, v board.View, opts Options) error {
	img, err := Draw(v, opts)
	if err != nil {
		return err
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func monoFace(size float64) (font.Face, error) {
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

func drawRoute(dc *gg.Context, p router.Path, hex string, selected bool, px float64) {
	width := connectionWidth
	stroke := parseHex(hex, color.Black)
	if selected {
		width = selectedWidth
		stroke = parseHex(selectionColor, color.Black)
	}

	dc.SetColor(stroke)
	dc.SetLineWidth(width * px)
	dc.SetLineCapRound()
	dc.MoveTo(p.Start.X*px, p.Start.Y*px)
	dc.QuadraticTo(p.Control.X*px, p.Control.Y*px, p.End.X*px, p.End.Y*px)
	dc.Stroke()

	if selected {
		dc.DrawCircle(p.Start.X*px, p.Start.Y*px, endpointRadius*px)
		dc.DrawCircle(p.End.X*px, p.End.Y*px, endpointRadius*px)
		dc.Fill()
	}
}

func drawCard(dc *gg.Context, c board.CardView, px float64) {
	r := c.Display
	x, y, w, h := r.X*px, r.Y*px, r.W*px, r.H*px

	dc.SetColor(parseHex(c.Card.Color, color.White))
	dc.DrawRoundedRectangle(x, y, w, h, cardRadius*px)
	dc.Fill()

	var border color.Color = color.RGBA{R: 0xD6, G: 0xD3, B: 0xD1, A: 0xFF}
	lineWidth := 1.0
	switch {
	case c.ConnectSource:
		border = color.RGBA{R: 0x25, G: 0x63, B: 0xEB, A: 0xFF}
		lineWidth = 3
	case c.Selected:
		border = parseHex(selectionColor, color.Black)
		lineWidth = 2
	}
	dc.SetColor(border)
	dc.SetLineWidth(lineWidth)
	dc.DrawRoundedRectangle(x, y, w, h, cardRadius*px)
	dc.Stroke()

	pad := cardPadding * px
	textW := w - 2*pad
	if textW <= 0 {
		return
	}
	dc.SetColor(color.RGBA{R: 0x29, G: 0x25, B: 0x24, A: 0xFF})
	lineH := dc.FontHeight() * 1.3
	maxLines := int((h - 2*pad) / lineH)
	lines := dc.WordWrap(c.Card.Content, textW)
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		if maxLines > 0 {
			lines[maxLines-1] = ellipsize(dc, lines[maxLines-1], textW)
		}
	}
	for i, line := range lines {
		dc.DrawStringAnchored(line, x+pad, y+pad+float64(i)*lineH, 0, 1)
	}
}

// ellipsize trims line until it fits width with a trailing ellipsis.
func ellipsize(dc *gg.Context, line string, width float64) string {
	runes := []rune(strings.TrimRight(line, " "))
	for len(runes) > 0 {
		candidate := string(runes) + "…"
		if w, _ := dc.MeasureString(candidate); w <= width {
			return candidate
		}
		runes = runes[:len(runes)-1]
	}
	return "…"
}

func drawGuides(dc *gg.Context, v board.View, px float64) {
	dc.SetColor(color.RGBA{R: 0xEC, G: 0x48, B: 0x99, A: 0xFF})
	dc.SetLineWidth(1)
	dc.SetDash(4, 4)
	for _, x := range v.Guides.Vertical {
		dc.DrawLine(x*px, 0, x*px, 100*px)
		dc.Stroke()
	}
	for _, y := range v.Guides.Horizontal {
		dc.DrawLine(0, y*px, 100*px, y*px)
		dc.Stroke()
	}
	dc.SetDash()
}

// parseHex decodes #RRGGBB, returning fallback for anything else.
func parseHex(s string, fallback color.Color) color.Color {
	if len(s) != 7 || s[0] != '#' {
		return fallback
	}
	n, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return fallback
	}
	return color.RGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xFF}
}
