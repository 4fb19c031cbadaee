package cli

import "github.com/charmbracelet/bubbles/key"

// boardKeyMap holds the board view's key bindings.
type boardKeyMap struct {
	Up, Down, Left, Right key.Binding
	FarUp, FarDown        key.Binding
	FarLeft, FarRight     key.Binding
	Next, Prev            key.Binding
	New                   key.Binding
	Edit                  key.Binding
	Confirm               key.Binding
	Color                 key.Binding
	Grow, Shrink          key.Binding
	Delete                key.Binding
	Connect               key.Binding
	Snap                  key.Binding
	Grid                  key.Binding
	Undo, Redo            key.Binding
	ZoomIn, ZoomOut       key.Binding
	ResetView             key.Binding
	Escape                key.Binding
	Help                  key.Binding
	Quit                  key.Binding
}

func newBoardKeyMap() boardKeyMap {
	return boardKeyMap{
		Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑↓←→", "nudge card / pan")),
		Down:      key.NewBinding(key.WithKeys("down")),
		Left:      key.NewBinding(key.WithKeys("left")),
		Right:     key.NewBinding(key.WithKeys("right")),
		FarUp:     key.NewBinding(key.WithKeys("shift+up"), key.WithHelp("shift+↑↓←→", "nudge 5%")),
		FarDown:   key.NewBinding(key.WithKeys("shift+down")),
		FarLeft:   key.NewBinding(key.WithKeys("shift+left")),
		FarRight:  key.NewBinding(key.WithKeys("shift+right")),
		Next:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next card")),
		Prev:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous card")),
		New:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new card")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit text")),
		Confirm:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "pick in link mode")),
		Color:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "next color")),
		Grow:      key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "grow")),
		Shrink:    key.NewBinding(key.WithKeys("["), key.WithHelp("[", "shrink")),
		Delete:    key.NewBinding(key.WithKeys("x", "delete", "backspace"), key.WithHelp("x", "delete")),
		Connect:   key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "link mode")),
		Snap:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "snap")),
		Grid:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "grid size")),
		Undo:      key.NewBinding(key.WithKeys("u", "ctrl+z"), key.WithHelp("u", "undo")),
		Redo:      key.NewBinding(key.WithKeys("r", "ctrl+y"), key.WithHelp("r", "redo")),
		ZoomIn:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "zoom out")),
		ResetView: key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset view")),
		Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "deselect")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Edit, k.Connect, k.Delete, k.Undo, k.Redo, k.Help, k.Quit}
}

func (k boardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.FarUp, k.Next, k.Prev, k.Grow, k.Shrink},
		{k.New, k.Edit, k.Color, k.Delete, k.Connect, k.Confirm},
		{k.Snap, k.Grid, k.ZoomIn, k.ZoomOut, k.ResetView},
		{k.Undo, k.Redo, k.Escape, k.Help, k.Quit},
	}
}
