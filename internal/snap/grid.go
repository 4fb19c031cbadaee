package snap

import "math"

// DefaultGridSize is the grid size, in pixel-equivalents, used when none or
// an unsupported one is configured.
const DefaultGridSize = 20

// GridSizes lists the selectable grid sizes in pixel-equivalents.
var GridSizes = []int{10, 20, 40}

// ValidGridSize reports whether px is one of GridSizes.
func ValidGridSize(px int) bool {
	for _, g := range GridSizes {
		if g == px {
			return true
		}
	}
	return false
}

// GridPercent converts a grid size in pixel-equivalents into board-percentage
// units for a board of nominal size boardSize. Unsupported sizes fall back to
// DefaultGridSize.
func GridPercent(px int, boardSize float64) float64 {
	if !ValidGridSize(px) {
		px = DefaultGridSize
	}
	if boardSize <= 0 {
		return 0
	}
	return float64(px) / boardSize * 100
}

// SnapToGrid rounds value to the nearest multiple of gridPct. A non-positive
// grid leaves value untouched.
func SnapToGrid(value, gridPct float64) float64 {
	if gridPct <= 0 {
		return value
	}
	return math.Round(value/gridPct) * gridPct
}
