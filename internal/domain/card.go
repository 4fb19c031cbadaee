package domain

import (
	"fmt"
	"time"

	"github.com/alexanderramin/pinboard/internal/geometry"
)

// Card bounds and defaults, in board-percentage units.
const (
	MinCardWidth  = 10.0
	MaxCardWidth  = 50.0
	MinCardHeight = 5.0
	MaxCardHeight = 50.0

	DefaultCardWidth  = 15.0
	DefaultCardHeight = 10.0
	DefaultCardX      = 10.0
	DefaultCardY      = 10.0
)

type Card struct {
	ID      string
	BoardID string
	Content string

	// Rectangle in board-percentage space.
	X      float64
	Y      float64
	Width  float64
	Height float64

	Color  string
	ZIndex int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Rect returns the card's rectangle.
func (c Card) Rect() geometry.Rect {
	return geometry.Rect{X: c.X, Y: c.Y, W: c.Width, H: c.Height}
}

// Position returns the card's top-left corner.
func (c Card) Position() geometry.Point {
	return geometry.Point{X: c.X, Y: c.Y}
}

// Size returns the card's dimensions.
func (c Card) Size() geometry.Size {
	return geometry.Size{Width: c.Width, Height: c.Height}
}

// ClampSize limits a size to the card bounds.
func ClampSize(s geometry.Size) geometry.Size {
	return geometry.Size{
		Width:  geometry.Clamp(s.Width, MinCardWidth, MaxCardWidth),
		Height: geometry.Clamp(s.Height, MinCardHeight, MaxCardHeight),
	}
}

// ApplyDefaults fills zero-valued geometry and color with the defaults.
func (c *Card) ApplyDefaults() {
	if c.Width == 0 {
		c.Width = DefaultCardWidth
	}
	if c.Height == 0 {
		c.Height = DefaultCardHeight
	}
	if c.Color == "" {
		c.Color = DefaultCardColor
	}
}

// Validate checks the card against the bounds the store accepts.
func (c *Card) Validate() error {
	if c.BoardID == "" {
		return fmt.Errorf("card must belong to a board")
	}
	if c.X < 0 || c.X > 100 || c.Y < 0 || c.Y > 100 {
		return fmt.Errorf("card position (%.2f, %.2f) is outside the board", c.X, c.Y)
	}
	if c.Width < MinCardWidth || c.Width > MaxCardWidth {
		return fmt.Errorf("card width %.2f outside [%.0f, %.0f]", c.Width, MinCardWidth, MaxCardWidth)
	}
	if c.Height < MinCardHeight || c.Height > MaxCardHeight {
		return fmt.Errorf("card height %.2f outside [%.0f, %.0f]", c.Height, MinCardHeight, MaxCardHeight)
	}
	if !ValidColor(c.Color) {
		return fmt.Errorf("invalid card color %q", c.Color)
	}
	return nil
}

// MaxZIndex returns the highest z-index among cards, or 0 when empty.
func MaxZIndex(cards []Card) int {
	maxZ := 0
	for _, c := range cards {
		if c.ZIndex > maxZ {
			maxZ = c.ZIndex
		}
	}
	return maxZ
}
