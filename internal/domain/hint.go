package domain

import "time"

// BoardHint remembers which board the CLI opens by default and how it was
// last viewed.
type BoardHint struct {
	BoardID     string
	ViewportX   float64
	ViewportY   float64
	Zoom        float64
	GridSize    int
	SnapEnabled bool
	UpdatedAt   *time.Time
}

// HasBoard reports whether a default board is set.
func (h *BoardHint) HasBoard() bool {
	return h != nil && h.BoardID != ""
}
