package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	DefaultCardColor       = "#FEF3C7"
	DefaultConnectionColor = "#92400E"

	maxBoardNameLen = 255
)

// Palette is the set of card colors offered by the color picker.
var Palette = []string{
	"#FEF3C7", // amber
	"#FCE7F3", // pink
	"#DBEAFE", // blue
	"#D1FAE5", // green
	"#EDE9FE", // violet
	"#FEE2E2", // red
	"#F3F4F6", // gray
	"#FFEDD5", // orange
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidColor reports whether s is a #RRGGBB hex color.
func ValidColor(s string) bool {
	return hexColor.MatchString(s)
}

type Board struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b *Board) Validate() error {
	name := strings.TrimSpace(b.Name)
	if name == "" {
		return fmt.Errorf("board name is required")
	}
	if len(name) > maxBoardNameLen {
		return fmt.Errorf("board name exceeds %d characters", maxBoardNameLen)
	}
	return nil
}

// BoardDetail is a board with everything drawn on it.
type BoardDetail struct {
	Board       Board
	Cards       []Card
	Connections []Connection
}
