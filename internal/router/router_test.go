package router

import (
	"math/rand"
	"testing"

	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/alexanderramin/pinboard/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoute_SideBySide(t *testing.T) {
	a := geometry.Rect{X: 10, Y: 10, W: 20, H: 10}
	b := geometry.Rect{X: 50, Y: 10, W: 20, H: 10}

	p := Route(a, b)

	assert.Equal(t, geometry.Point{X: 30, Y: 15}, p.Start)
	assert.Equal(t, geometry.Point{X: 50, Y: 15}, p.End)
	assert.Equal(t, geometry.EdgeRight, p.StartEdge)
	assert.Equal(t, geometry.EdgeLeft, p.EndEdge)
	// length 20 → offset min(4, 5) = 4 along (0, 1)
	assert.Equal(t, "M 30 15 Q 40 19 50 15", p.Command)
}

func TestRoute_DeterministicAndSymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 300; trial++ {
		a := geometry.Rect{X: rng.Float64() * 80, Y: rng.Float64() * 80, W: 10 + rng.Float64()*20, H: 5 + rng.Float64()*20}
		b := geometry.Rect{X: float64(rng.Intn(80)), Y: float64(rng.Intn(80)), W: 15, H: 10}

		ab := Route(a, b)
		assert.Equal(t, ab, Route(a, b), "trial %d: routing must be deterministic", trial)

		ba := Route(b, a)
		assert.Equal(t, ab.Start, ba.End, "trial %d", trial)
		assert.Equal(t, ab.End, ba.Start, "trial %d", trial)
		assert.Equal(t, ab.Curve.Control, ba.Curve.Control, "trial %d: same shape", trial)
	}
}

func TestRoute_SymmetricWithTies(t *testing.T) {
	// Identical rects tie everywhere.
	r := geometry.Rect{X: 20, Y: 20, W: 20, H: 10}
	ab := Route(r, r)
	ba := Route(r, r)
	assert.Equal(t, ab, ba)

	// Diagonal placement ties bottom→left and right→top.
	a := geometry.Rect{X: 0, Y: 0, W: 20, H: 20}
	b := geometry.Rect{X: 30, Y: 30, W: 20, H: 20}
	p1 := Route(a, b)
	p2 := Route(b, a)
	assert.Equal(t, p1.Start, p2.End)
	assert.Equal(t, p1.End, p2.Start)
}

func TestPath_Hit(t *testing.T) {
	p := Route(geometry.Rect{X: 10, Y: 10, W: 20, H: 10}, geometry.Rect{X: 50, Y: 10, W: 20, H: 10})

	assert.True(t, p.Hit(p.Curve.At(0.5), 0))
	assert.True(t, p.Hit(geometry.Point{X: 30.2, Y: 15}, 0))
	assert.False(t, p.Hit(geometry.Point{X: 40, Y: 30}, 0))
	assert.False(t, p.Hit(geometry.Point{X: 40, Y: 15}, 0.5), "straight chord misses the bowed curve")
}

func TestRouteAll_SkipsDangling(t *testing.T) {
	cards := []domain.Card{
		{ID: "a", X: 10, Y: 10, Width: 20, Height: 10},
		{ID: "b", X: 50, Y: 10, Width: 20, Height: 10},
	}
	conns := []domain.Connection{
		{ID: "k1", FromCardID: "a", ToCardID: "b", Color: "#92400E"},
		{ID: "k2", FromCardID: "a", ToCardID: "gone"},
	}

	routes := RouteAll(conns, CardRects(cards))

	require.Len(t, routes, 1)
	assert.Equal(t, "k1", routes[0].ConnectionID)
	assert.Equal(t, "#92400E", routes[0].Color)

	id, ok := HitTest(routes, routes[0].Path.Curve.At(0.3), 0)
	assert.True(t, ok)
	assert.Equal(t, "k1", id)
	_, ok = HitTest(routes, geometry.Point{X: 90, Y: 90}, 0)
	assert.False(t, ok)
}

func TestAffected(t *testing.T) {
	conns := []domain.Connection{
		{ID: "k1", FromCardID: "a", ToCardID: "b"},
		{ID: "k2", FromCardID: "c", ToCardID: "a"},
		{ID: "k3", FromCardID: "b", ToCardID: "c"},
	}
	got := Affected(conns, "a")
	require.Len(t, got, 2)
	assert.Equal(t, "k1", got[0].ID)
	assert.Equal(t, "k2", got[1].ID)
	assert.Empty(t, Affected(conns, "z"))
}
