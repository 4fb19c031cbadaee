package domain

import (
	"testing"

	"github.com/alexanderramin/pinboard/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCard() *Card {
	c := &Card{BoardID: "b1", X: 10, Y: 10}
	c.ApplyDefaults()
	return c
}

func TestCard_ApplyDefaults(t *testing.T) {
	c := &Card{}
	c.ApplyDefaults()
	assert.Equal(t, DefaultCardWidth, c.Width)
	assert.Equal(t, DefaultCardHeight, c.Height)
	assert.Equal(t, DefaultCardColor, c.Color)
}

func TestCard_Validate(t *testing.T) {
	require.NoError(t, validCard().Validate())

	cases := []struct {
		name   string
		mutate func(*Card)
		want   string
	}{
		{"no board", func(c *Card) { c.BoardID = "" }, "board"},
		{"off board", func(c *Card) { c.X = 101 }, "outside"},
		{"too narrow", func(c *Card) { c.Width = 9.9 }, "width"},
		{"too tall", func(c *Card) { c.Height = 50.1 }, "height"},
		{"bad color", func(c *Card) { c.Color = "red" }, "color"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := validCard()
			tc.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestClampSize(t *testing.T) {
	assert.Equal(t, geometry.Size{Width: 10, Height: 5}, ClampSize(geometry.Size{Width: -3, Height: 0}))
	assert.Equal(t, geometry.Size{Width: 50, Height: 50}, ClampSize(geometry.Size{Width: 80, Height: 51}))
	assert.Equal(t, geometry.Size{Width: 22, Height: 7}, ClampSize(geometry.Size{Width: 22, Height: 7}))
}

func TestCard_Rect(t *testing.T) {
	c := Card{X: 1, Y: 2, Width: 30, Height: 40}
	assert.Equal(t, geometry.Rect{X: 1, Y: 2, W: 30, H: 40}, c.Rect())
	assert.Equal(t, geometry.Point{X: 1, Y: 2}, c.Position())
}

func TestMaxZIndex(t *testing.T) {
	assert.Equal(t, 0, MaxZIndex(nil))
	assert.Equal(t, 7, MaxZIndex([]Card{{ZIndex: 3}, {ZIndex: 7}, {ZIndex: 1}}))
}

func TestConnection_Links(t *testing.T) {
	c := Connection{FromCardID: "a", ToCardID: "b"}
	assert.True(t, c.Links("a", "b"))
	assert.True(t, c.Links("b", "a"))
	assert.False(t, c.Links("a", "c"))
	assert.True(t, c.Touches("b"))
	assert.Equal(t, "a", c.Other("b"))
	assert.True(t, HasLink([]Connection{c}, "b", "a"))
}

func TestConnection_Validate(t *testing.T) {
	c := Connection{BoardID: "b", FromCardID: "x", ToCardID: "x"}
	c.ApplyDefaults()
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "itself")

	c.ToCardID = "y"
	assert.NoError(t, c.Validate())
}

func TestBoard_Validate(t *testing.T) {
	assert.Error(t, (&Board{Name: "   "}).Validate())
	assert.NoError(t, (&Board{Name: "Sprint"}).Validate())
}

func TestValidColor(t *testing.T) {
	assert.True(t, ValidColor("#a1B2c3"))
	assert.False(t, ValidColor("#a1B2c"))
	assert.False(t, ValidColor("a1B2c3"))
	for _, c := range Palette {
		assert.True(t, ValidColor(c), c)
	}
}
