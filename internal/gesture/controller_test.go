package gesture

import (
	"math/rand"
	"testing"

	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/alexanderramin/pinboard/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var unitScale = Scale{BoardSize: 3000, Zoom: 1}

func testCard(id string, x, y, w, h float64, z int) domain.Card {
	return domain.Card{ID: id, BoardID: "b", X: x, Y: y, Width: w, Height: h, ZIndex: z, Color: domain.DefaultCardColor}
}

func TestDrag_MovesByPercentDelta(t *testing.T) {
	c := NewController()
	card := testCard("a", 10, 10, 15, 10, 1)

	patches, ok := c.BeginDrag(card, geometry.Point{}, []domain.Card{card})
	require.True(t, ok)
	assert.Equal(t, []ZPatch{{CardID: "a", ZIndex: 2}}, patches)
	assert.Equal(t, Dragging, c.State())

	preview, _ := c.MoveDrag(geometry.Point{X: 300, Y: 150}, nil, unitScale, 0)
	assert.InDelta(t, 20, preview.X, 1e-9)
	assert.InDelta(t, 15, preview.Y, 1e-9)
	assert.Equal(t, preview, c.DisplayRect(&card))

	commit, ok := c.EndDrag(geometry.Point{X: 300, Y: 150}, nil, unitScale, Options{})
	require.True(t, ok)
	assert.Equal(t, "a", commit.CardID)
	assert.Equal(t, Dragging, commit.Kind)
	assert.Equal(t, card.Rect(), commit.Before)
	assert.InDelta(t, 20, commit.After.X, 1e-9)
	assert.True(t, commit.Changed())
	assert.Equal(t, Idle, c.State())
	assert.Equal(t, card.Rect(), c.DisplayRect(&card))
}

func TestDrag_ZoomScalesDelta(t *testing.T) {
	c := NewController()
	card := testCard("a", 10, 10, 15, 10, 1)
	c.BeginDrag(card, geometry.Point{}, nil)

	commit, _ := c.EndDrag(geometry.Point{X: 300}, nil, Scale{BoardSize: 3000, Zoom: 2}, Options{})
	assert.InDelta(t, 15, commit.After.X, 1e-9)
}

func TestDrag_ClampsToBoard(t *testing.T) {
	c := NewController()
	card := testCard("a", 10, 10, 15, 10, 1)
	c.BeginDrag(card, geometry.Point{}, nil)

	commit, _ := c.EndDrag(geometry.Point{X: 9000, Y: 9000}, nil, unitScale, Options{})
	assert.Equal(t, geometry.Point{X: 85, Y: 90}, commit.After.Origin())

	c.BeginDrag(card, geometry.Point{}, nil)
	commit, _ = c.EndDrag(geometry.Point{X: -9000, Y: -9000}, nil, unitScale, Options{})
	assert.Equal(t, geometry.Point{X: 0, Y: 0}, commit.After.Origin())
}

func TestDrag_GuidesDuringMoveButPreviewUnsnapped(t *testing.T) {
	c := NewController()
	card := testCard("a", 10, 10, 15, 10, 1)
	others := []geometry.Rect{{X: 40, Y: 50, W: 20, H: 10}}
	c.BeginDrag(card, geometry.Point{}, nil)

	// 444px → 14.8%, so the right edge sits at 39.8.
	preview, guides := c.MoveDrag(geometry.Point{X: 444}, others, unitScale, 0)
	assert.InDelta(t, 24.8, preview.X, 1e-9)
	assert.Equal(t, []float64{40}, guides.Vertical)
	assert.Empty(t, guides.Horizontal)
	assert.Equal(t, guides, c.Guides())
}

func TestDrag_EndAlwaysAppliesAlignment(t *testing.T) {
	others := []geometry.Rect{{X: 40, Y: 50, W: 20, H: 10}}
	card := testCard("a", 10, 10, 15, 10, 1)

	for _, grid := range []bool{false, true} {
		c := NewController()
		c.BeginDrag(card, geometry.Point{}, nil)
		commit, _ := c.EndDrag(geometry.Point{X: 444}, others, unitScale, Options{Grid: grid, GridPercent: 1})
		assert.Equal(t, 25.0, commit.After.X, "right edge aligned exactly to 40, grid %v", grid)
		assert.Equal(t, 10.0, commit.After.Y)
		assert.True(t, c.Guides().Empty(), "guides cleared at gesture end")
	}
}

func TestDrag_EndWithoutNearbyCardKeepsPosition(t *testing.T) {
	others := []geometry.Rect{{X: 70, Y: 70, W: 20, H: 10}}
	c := NewController()
	c.BeginDrag(testCard("a", 10, 10, 15, 10, 1), geometry.Point{}, nil)

	commit, _ := c.EndDrag(geometry.Point{X: 444}, others, unitScale, Options{})
	assert.InDelta(t, 24.8, commit.After.X, 1e-9)
	assert.InDelta(t, 10.0, commit.After.Y, 1e-9)
}

func TestDrag_EndAppliesGridAfterAlignment(t *testing.T) {
	c := NewController()
	card := testCard("a", 10, 10, 15, 10, 1)
	c.BeginDrag(card, geometry.Point{}, nil)

	commit, _ := c.EndDrag(geometry.Point{X: 66, Y: 90}, nil, unitScale, Options{Grid: true, GridPercent: 5})
	assert.InDelta(t, 10, commit.After.X, 1e-9)
	assert.InDelta(t, 15, commit.After.Y, 1e-9)
}

func TestDrag_BoundsProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 500; trial++ {
		w := domain.MinCardWidth + rng.Float64()*(domain.MaxCardWidth-domain.MinCardWidth)
		h := domain.MinCardHeight + rng.Float64()*(domain.MaxCardHeight-domain.MinCardHeight)
		card := testCard("a", rng.Float64()*(100-w), rng.Float64()*(100-h), w, h, 1)
		others := []geometry.Rect{{X: rng.Float64() * 90, Y: rng.Float64() * 90, W: 15, H: 10}}
		pointer := geometry.Point{X: (rng.Float64() - 0.5) * 8000, Y: (rng.Float64() - 0.5) * 8000}
		opts := Options{Grid: rng.Intn(2) == 0, GridPercent: float64(10*(1+rng.Intn(3))) / 30}
		sc := Scale{BoardSize: 3000, Zoom: 0.25 + rng.Float64()*1.75}

		c := NewController()
		c.BeginDrag(card, geometry.Point{}, nil)
		commit, ok := c.EndDrag(pointer, others, sc, opts)
		require.True(t, ok)

		r := commit.After
		assert.GreaterOrEqual(t, r.X, 0.0, "trial %d", trial)
		assert.GreaterOrEqual(t, r.Y, 0.0, "trial %d", trial)
		assert.LessOrEqual(t, r.X+r.W, 100+1e-9, "trial %d", trial)
		assert.LessOrEqual(t, r.Y+r.H, 100+1e-9, "trial %d", trial)
		assert.Equal(t, card.Size(), r.Size(), "trial %d: drag never resizes", trial)
	}
}

func TestResize_ClampsToBounds(t *testing.T) {
	card := testCard("a", 10, 10, 15, 10, 1)

	c := NewController()
	require.True(t, c.BeginResize(card, geometry.Point{}))
	preview := c.MoveResize(geometry.Point{X: 150, Y: 60}, unitScale)
	assert.InDelta(t, 20, preview.W, 1e-9)
	assert.InDelta(t, 12, preview.H, 1e-9)
	assert.Equal(t, card.Position(), preview.Origin(), "resize keeps the origin")

	commit, ok := c.EndResize(geometry.Point{X: 9000, Y: 9000}, unitScale)
	require.True(t, ok)
	assert.Equal(t, Resizing, commit.Kind)
	assert.Equal(t, geometry.Size{Width: 50, Height: 50}, commit.After.Size())

	c.BeginResize(card, geometry.Point{})
	commit, _ = c.EndResize(geometry.Point{X: -9000, Y: -9000}, unitScale)
	assert.Equal(t, geometry.Size{Width: 10, Height: 5}, commit.After.Size())
}

func TestResize_BoundsProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 500; trial++ {
		card := testCard("a", 10, 10, 10+rng.Float64()*40, 5+rng.Float64()*45, 1)
		c := NewController()
		c.BeginResize(card, geometry.Point{X: 100, Y: 100})
		sc := Scale{BoardSize: 3000, Zoom: 0.25 + rng.Float64()*1.75}
		var r geometry.Rect
		for step := 0; step < 5; step++ {
			p := geometry.Point{X: (rng.Float64() - 0.5) * 4000, Y: (rng.Float64() - 0.5) * 4000}
			r = c.MoveResize(p, sc)
		}
		assert.GreaterOrEqual(t, r.W, domain.MinCardWidth, "trial %d", trial)
		assert.LessOrEqual(t, r.W, domain.MaxCardWidth, "trial %d", trial)
		assert.GreaterOrEqual(t, r.H, domain.MinCardHeight, "trial %d", trial)
		assert.LessOrEqual(t, r.H, domain.MaxCardHeight, "trial %d", trial)
	}
}

func TestController_OneGestureAtATime(t *testing.T) {
	a := testCard("a", 10, 10, 15, 10, 1)
	b := testCard("b", 40, 40, 15, 10, 2)

	c := NewController()
	_, ok := c.BeginDrag(a, geometry.Point{}, nil)
	require.True(t, ok)

	_, ok = c.BeginDrag(b, geometry.Point{}, nil)
	assert.False(t, ok)
	assert.False(t, c.BeginResize(b, geometry.Point{}))
	assert.Equal(t, "a", c.CardID())

	_, ok = c.EndResize(geometry.Point{}, unitScale)
	assert.False(t, ok, "resize end while dragging is ignored")
	assert.Equal(t, Dragging, c.State())
}

func TestController_Cancel(t *testing.T) {
	a := testCard("a", 10, 10, 15, 10, 1)
	c := NewController()
	c.BeginDrag(a, geometry.Point{}, nil)
	c.MoveDrag(geometry.Point{X: 300}, []geometry.Rect{{X: 30, Y: 10, W: 10, H: 10}}, unitScale, 0)

	c.Cancel()
	assert.Equal(t, Idle, c.State())
	assert.True(t, c.Guides().Empty())
	assert.Equal(t, a.Rect(), c.DisplayRect(&a))
	_, ok := c.EndDrag(geometry.Point{}, nil, unitScale, Options{})
	assert.False(t, ok)
}

func TestPromote(t *testing.T) {
	cards := []domain.Card{
		testCard("a", 0, 0, 15, 10, 3),
		testCard("b", 0, 0, 15, 10, 7),
	}
	assert.Equal(t, []ZPatch{{CardID: "a", ZIndex: 8}}, Promote("a", cards))
}

func TestPromote_CompactsPastLimit(t *testing.T) {
	cards := []domain.Card{
		testCard("a", 0, 0, 15, 10, MaxZIndex),
		testCard("b", 0, 0, 15, 10, 5),
		testCard("c", 0, 0, 15, 10, MaxZIndex-1),
		testCard("d", 0, 0, 15, 10, 1),
	}
	patches := Promote("b", cards)

	assert.Equal(t, []ZPatch{
		{CardID: "c", ZIndex: 2},
		{CardID: "a", ZIndex: 3},
		{CardID: "b", ZIndex: 4},
	}, patches, "d already holds 1 and is left alone")
}

func TestCreationAnchor(t *testing.T) {
	board := geometry.Rect{X: 0, Y: 0, W: 3000, H: 3000}

	tests := []struct {
		name  string
		click geometry.Point
		want  geometry.Point
	}{
		{"centre", geometry.Point{X: 1500, Y: 1500}, geometry.Point{X: 42.5, Y: 45}},
		{"top-left corner", geometry.Point{X: 0, Y: 0}, geometry.Point{X: 0, Y: 0}},
		{"bottom-right corner", geometry.Point{X: 3000, Y: 3000}, geometry.Point{X: 85, Y: 90}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CreationAnchor(tt.click, board))
		})
	}

	// board scrolled and zoomed out: bounds are the on-screen rect
	got := CreationAnchor(geometry.Point{X: 475, Y: 475}, geometry.Rect{X: 100, Y: 100, W: 750, H: 750})
	assert.Equal(t, geometry.Point{X: 42.5, Y: 45}, got)

	assert.Equal(t, geometry.Point{}, CreationAnchor(geometry.Point{X: 5}, geometry.Rect{}))
}
