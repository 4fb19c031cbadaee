package formatter

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/alexanderramin/pinboard/internal/domain"
)

const excerptWidth = 32

// BoardListEntry is one row of the board list.
type BoardListEntry struct {
	Board       *domain.Board
	Cards       int
	Connections int
	Default     bool
}

// FormatBoardList renders boards inside a bordered box. The default board is
// marked with a star.
func FormatBoardList(entries []BoardListEntry) string {
	if len(entries) == 0 {
		return RenderBox("Boards", Dim("No boards yet. Create one with 'pinboard board create'."))
	}

	headers := []string{"", "ID", "NAME", "CARDS", "LINKS", "UPDATED"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		mark := " "
		if e.Default {
			mark = StyleHeader.Render("★")
		}
		rows = append(rows, []string{
			mark,
			TruncID(e.Board.ID),
			Bold(e.Board.Name),
			strconv.Itoa(e.Cards),
			strconv.Itoa(e.Connections),
			Dim(HumanTimestamp(e.Board.UpdatedAt)),
		})
	}
	return RenderBox("Boards", RenderTable(headers, rows))
}

// FormatBoardDetail renders a board with its cards in draw order and its
// connections.
func FormatBoardDetail(d *domain.BoardDetail, isDefault bool) string {
	var b strings.Builder

	title := Bold(d.Board.Name)
	if isDefault {
		title += " " + StyleHeader.Render("★")
	}
	b.WriteString(title + "\n")
	fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render("ID     "), TruncID(d.Board.ID))
	fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render("CARDS  "), StyleFg.Render(strconv.Itoa(len(d.Cards))))
	fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render("LINKS  "), StyleFg.Render(strconv.Itoa(len(d.Connections))))
	fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render("UPDATED"), StyleFg.Render(HumanTimestamp(d.Board.UpdatedAt)))

	if len(d.Cards) > 0 {
		b.WriteString("\n" + Header("Cards") + "\n")
		b.WriteString(FormatCardTable(d.Cards))
	}
	if len(d.Connections) > 0 {
		b.WriteString("\n" + Header("Connections") + "\n")
		b.WriteString(FormatConnectionTable(d.Connections, d.Cards))
	}
	return RenderBox("", strings.TrimRight(b.String(), "\n"))
}

// FormatCardTable lists cards bottom to top.
func FormatCardTable(cards []domain.Card) string {
	sorted := slices.Clone(cards)
	slices.SortStableFunc(sorted, func(a, b domain.Card) int { return a.ZIndex - b.ZIndex })

	headers := []string{"ID", "CONTENT", "POSITION", "SIZE", "COLOR", "Z"}
	rows := make([][]string, 0, len(sorted))
	for _, c := range sorted {
		content := Excerpt(c.Content, excerptWidth)
		if content == "" {
			content = Dim("(empty)")
		}
		rows = append(rows, []string{
			TruncID(c.ID),
			content,
			Percent(c.X) + ", " + Percent(c.Y),
			Percent(c.Width) + " × " + Percent(c.Height),
			Swatch(c.Color),
			strconv.Itoa(c.ZIndex),
		})
	}
	return RenderTable(headers, rows)
}

// FormatConnectionTable lists connections with their endpoints labelled by
// card content.
func FormatConnectionTable(conns []domain.Connection, cards []domain.Card) string {
	labels := make(map[string]string, len(cards))
	for _, c := range cards {
		labels[c.ID] = cardLabel(c)
	}
	label := func(id string) string {
		if l, ok := labels[id]; ok {
			return l
		}
		return StyleRed.Render(ShortID(id) + " (missing)")
	}

	headers := []string{"ID", "FROM", "TO", "COLOR"}
	rows := make([][]string, 0, len(conns))
	for _, c := range conns {
		rows = append(rows, []string{
			TruncID(c.ID),
			label(c.FromCardID),
			label(c.ToCardID),
			Swatch(c.Color),
		})
	}
	return RenderTable(headers, rows)
}

// FormatCard renders a single card summary.
func FormatCard(c *domain.Card) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render("ID      "), StyleFg.Render(c.ID))
	fmt.Fprintf(&b, "%s  %s, %s\n", StyleDim.Render("POSITION"), Percent(c.X), Percent(c.Y))
	fmt.Fprintf(&b, "%s  %s × %s\n", StyleDim.Render("SIZE    "), Percent(c.Width), Percent(c.Height))
	fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render("COLOR   "), Swatch(c.Color))
	fmt.Fprintf(&b, "%s  %d\n", StyleDim.Render("Z       "), c.ZIndex)
	if c.Content != "" {
		b.WriteString("\n" + c.Content)
	}
	return RenderBox("Card", strings.TrimRight(b.String(), "\n"))
}

func cardLabel(c domain.Card) string {
	if text := Excerpt(c.Content, 20); text != "" {
		return text
	}
	return ShortID(c.ID)
}
