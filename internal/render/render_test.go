package render

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexanderramin/pinboard/internal/board"
	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/alexanderramin/pinboard/internal/router"
	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testView() board.View {
	a := domain.Card{ID: "a", X: 50, Y: 50, Width: 20, Height: 10, Color: "#DBEAFE"}
	b := domain.Card{ID: "b", X: 10, Y: 10, Width: 15, Height: 10, Color: "#FEF3C7", Content: "a note that is long enough to wrap over several lines"}
	conn := domain.Connection{ID: "k", FromCardID: "a", ToCardID: "b", Color: domain.DefaultConnectionColor}
	return board.View{
		Cards: []board.CardView{
			{Card: b, Display: b.Rect()},
			{Card: a, Display: a.Rect(), Selected: true},
		},
		Connections: []domain.Connection{conn},
		Routes:      router.RouteAll([]domain.Connection{conn}, router.CardRects([]domain.Card{a, b})),
	}
}

func rgba(t *testing.T, c color.Color) color.RGBA {
	t.Helper()
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func TestDraw_FillsCardsAndBackground(t *testing.T) {
	img, err := Draw(testView(), Options{Size: 200, FontSize: 10, Background: "#FFFFFF"})
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())

	// Card a spans pixels 100..140 x 100..120.
	assert.Equal(t, color.RGBA{R: 0xDB, G: 0xEA, B: 0xFE, A: 0xFF}, rgba(t, img.At(120, 112)))
	assert.Equal(t, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, rgba(t, img.At(190, 5)))
}

func TestDraw_RejectsBadSize(t *testing.T) {
	_, err := Draw(board.View{}, Options{Size: 0})
	assert.Error(t, err)
}

func TestWritePNG_Decodes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, testView(), DefaultOptions()))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions().Size, img.Bounds().Dx())
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.png")
	v := testView()
	v.Guides.Vertical = []float64{50}
	require.NoError(t, SavePNG(path, v, Options{Size: 300, Guides: true}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestParseHex(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xFF}, parseHex("#123456", color.Black))
	assert.Equal(t, color.Black, parseHex("red", color.Black))
	assert.Equal(t, color.Black, parseHex("#12345G", color.Black))
}

func TestEllipsizeFitsWidth(t *testing.T) {
	face, err := monoFace(10)
	require.NoError(t, err)
	dc := gg.NewContext(10, 10)
	dc.SetFontFace(face)

	out := ellipsize(dc, "a rather long line of text", 40)
	w, _ := dc.MeasureString(out)
	assert.LessOrEqual(t, w, 40.0)
	assert.True(t, strings.HasSuffix(out, "…"))
}
