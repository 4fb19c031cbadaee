package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/spf13/pflag"
)

// paletteNames maps friendly names onto domain.Palette.
var paletteNames = map[string]string{
	"amber":  domain.Palette[0],
	"pink":   domain.Palette[1],
	"blue":   domain.Palette[2],
	"green":  domain.Palette[3],
	"violet": domain.Palette[4],
	"red":    domain.Palette[5],
	"gray":   domain.Palette[6],
	"orange": domain.Palette[7],
}

// parseColor accepts a palette name or a #RRGGBB value and returns the
// upper-case hex form.
func parseColor(s string) (string, error) {
	s = strings.TrimSpace(s)
	if hex, ok := paletteNames[strings.ToLower(s)]; ok {
		return hex, nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if !domain.ValidColor(s) {
		return "", fmt.Errorf("invalid color %q (want #RRGGBB or one of %s)", s, strings.Join(colorNames(), ", "))
	}
	return strings.ToUpper(s), nil
}

func colorNames() []string {
	names := make([]string, 0, len(paletteNames))
	for n := range paletteNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// colorValue is a pflag.Value holding a validated hex color.
type colorValue struct {
	hex string
}

var _ pflag.Value = (*colorValue)(nil)

func (c *colorValue) String() string { return c.hex }

func (c *colorValue) Set(s string) error {
	hex, err := parseColor(s)
	if err != nil {
		return err
	}
	c.hex = hex
	return nil
}

func (c *colorValue) Type() string { return "color" }
