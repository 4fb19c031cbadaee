package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/alexanderramin/pinboard/internal/board"
	"github.com/alexanderramin/pinboard/internal/cli/formatter"
	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/alexanderramin/pinboard/internal/gesture"
	"github.com/alexanderramin/pinboard/internal/geometry"
	"github.com/alexanderramin/pinboard/internal/snap"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	headerRows = 1
	nudgeStep  = 1.0
	farStep    = 5.0
	resizeStep = 1.0
	panCells   = 4
)

// boardModel is the interactive board view. It translates terminal input
// into board.Session calls and paints Session snapshots.
type boardModel struct {
	ctx  context.Context
	app  *App
	ob   *openedBoard
	s    *board.Session
	keys boardKeyMap
	help help.Model

	editor  textinput.Model
	editing string

	width, height int
	pointer       geometry.Point
	hasPointer    bool

	status    string
	statusErr bool
	saveErr   error
	quitting  bool
}

func newBoardModel(ctx context.Context, app *App, ob *openedBoard) boardModel {
	ti := textinput.New()
	ti.Prompt = "✎ "
	ti.CharLimit = 2000

	return boardModel{
		ctx:    ctx,
		app:    app,
		ob:     ob,
		s:      ob.session,
		keys:   newBoardKeyMap(),
		help:   help.New(),
		editor: ti,
		width:  80,
		height: 24,
	}
}

func (m boardModel) Init() tea.Cmd {
	return nil
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.editor.Width = max(msg.Width-4, 10)
		return m, nil

	case tea.MouseMsg:
		if m.editing != "" {
			return m, nil
		}
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		if m.editing != "" {
			return m.updateEditor(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

// ── Keyboard ─────────────────────────────────────────────────────────────────

func (m boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status, m.statusErr = "", false
	v := m.s.Snapshot()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Escape):
		m.s.Escape()

	case key.Matches(msg, m.keys.Up):
		m.nudge(v, 0, -nudgeStep)
	case key.Matches(msg, m.keys.Down):
		m.nudge(v, 0, nudgeStep)
	case key.Matches(msg, m.keys.Left):
		m.nudge(v, -nudgeStep, 0)
	case key.Matches(msg, m.keys.Right):
		m.nudge(v, nudgeStep, 0)
	case key.Matches(msg, m.keys.FarUp):
		m.nudge(v, 0, -farStep)
	case key.Matches(msg, m.keys.FarDown):
		m.nudge(v, 0, farStep)
	case key.Matches(msg, m.keys.FarLeft):
		m.nudge(v, -farStep, 0)
	case key.Matches(msg, m.keys.FarRight):
		m.nudge(v, farStep, 0)

	case key.Matches(msg, m.keys.Next):
		m.cycleSelection(v, 1)
	case key.Matches(msg, m.keys.Prev):
		m.cycleSelection(v, -1)

	case key.Matches(msg, m.keys.New):
		c, err := m.s.CreateCardAt(m.ctx, m.newCardPointer())
		if err != nil {
			m.fail(err)
			break
		}
		if c != nil {
			m.s.SelectCard(c.ID)
			return m.startEditing(*c)
		}

	case key.Matches(msg, m.keys.Edit):
		if c, ok := m.s.Card(v.SelectedCardID); ok {
			return m.startEditing(c)
		}

	case key.Matches(msg, m.keys.Confirm):
		if v.ConnectMode && v.SelectedCardID != "" {
			m.report(m.s.ConnectClick(m.ctx, v.SelectedCardID))
		}

	case key.Matches(msg, m.keys.Color):
		if c, ok := m.s.Card(v.SelectedCardID); ok {
			m.report(m.s.Recolor(m.ctx, c.ID, nextColor(c.Color)))
		}

	case key.Matches(msg, m.keys.Grow):
		m.resizeSelected(v, resizeStep)
	case key.Matches(msg, m.keys.Shrink):
		m.resizeSelected(v, -resizeStep)

	case key.Matches(msg, m.keys.Delete):
		m.report(m.s.DeleteSelected(m.ctx))

	case key.Matches(msg, m.keys.Connect):
		if m.s.ToggleConnectMode() {
			m.status = "Link mode: pick two cards"
		}

	case key.Matches(msg, m.keys.Snap):
		if m.s.ToggleSnap() {
			m.status = "Snap on"
		} else {
			m.status = "Snap off"
		}

	case key.Matches(msg, m.keys.Grid):
		m.s.SetGridSize(nextGridSize(v.GridSize))

	case key.Matches(msg, m.keys.Undo):
		ok, err := m.s.Undo(m.ctx)
		m.report(err)
		if !ok {
			m.status = "Nothing to undo"
		}

	case key.Matches(msg, m.keys.Redo):
		ok, err := m.s.Redo(m.ctx)
		m.report(err)
		if !ok {
			m.status = "Nothing to redo"
		}

	case key.Matches(msg, m.keys.ZoomIn):
		m.s.ZoomIn()
	case key.Matches(msg, m.keys.ZoomOut):
		m.s.ZoomOut()
	case key.Matches(msg, m.keys.ResetView):
		m.s.ResetView()
	}
	return m, nil
}

// nudge moves the selected card by a percentage step, or pans the view
// when nothing is selected.
func (m *boardModel) nudge(v board.View, dx, dy float64) {
	if c, ok := m.s.Card(v.SelectedCardID); ok {
		m.report(m.s.MoveCard(m.ctx, c.ID, c.X+dx, c.Y+dy))
		return
	}
	m.s.Pan(-sign(dx)*panCells*cellPx, -sign(dy)*panCells*rowPx)
}

func (m *boardModel) resizeSelected(v board.View, step float64) {
	if c, ok := m.s.Card(v.SelectedCardID); ok {
		m.report(m.s.ResizeCard(m.ctx, c.ID, c.Width+step, c.Height+step))
	}
}

// cycleSelection walks the cards in draw order.
func (m *boardModel) cycleSelection(v board.View, dir int) {
	if len(v.Cards) == 0 {
		return
	}
	i := slices.IndexFunc(v.Cards, func(cv board.CardView) bool { return cv.Card.ID == v.SelectedCardID })
	switch {
	case i < 0 && dir > 0:
		i = 0
	case i < 0:
		i = len(v.Cards) - 1
	default:
		i = (i + dir + len(v.Cards)) % len(v.Cards)
	}
	m.s.SelectCard(v.Cards[i].Card.ID)
}

// newCardPointer is the last pointer position, or the middle of the canvas.
func (m *boardModel) newCardPointer() geometry.Point {
	if m.hasPointer {
		return m.pointer
	}
	w, h := m.canvasSize()
	return cellCenter(w/2, h/2)
}

func (m boardModel) quit() (tea.Model, tea.Cmd) {
	m.s.CancelGesture()
	m.saveErr = m.app.Boards.SaveHint(m.ctx, m.ob.hint())
	m.quitting = true
	return m, tea.Quit
}

// ── Text editing ─────────────────────────────────────────────────────────────

func (m boardModel) startEditing(c domain.Card) (tea.Model, tea.Cmd) {
	m.editing = c.ID
	m.editor.SetValue(c.Content)
	m.editor.CursorEnd()
	return m, m.editor.Focus()
}

func (m boardModel) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		id := m.editing
		m.editing = ""
		m.editor.Blur()
		m.report(m.s.EditContent(m.ctx, id, m.editor.Value()))
		return m, nil
	case tea.KeyEsc:
		m.editing = ""
		m.editor.Blur()
		return m, nil
	case tea.KeyCtrlC:
		return m.quit()
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// ── Mouse ────────────────────────────────────────────────────────────────────

func (m *boardModel) handleMouse(msg tea.MouseMsg) {
	col, row := msg.X, msg.Y-headerRows
	if _, h := m.canvasSize(); row < 0 || row >= h {
		return
	}
	p := cellCenter(col, row)
	m.pointer, m.hasPointer = p, true

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.s.ZoomAt(p, -1)
	case msg.Button == tea.MouseButtonWheelDown:
		m.s.ZoomAt(p, 1)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.press(p, col, row)
	case msg.Action == tea.MouseActionMotion:
		switch m.s.Snapshot().Gesture {
		case gesture.Dragging:
			m.s.MoveDrag(p)
		case gesture.Resizing:
			m.s.MoveResize(p)
		}
	case msg.Action == tea.MouseActionRelease:
		switch m.s.Snapshot().Gesture {
		case gesture.Dragging:
			m.report(m.s.EndDrag(m.ctx, p))
		case gesture.Resizing:
			m.report(m.s.EndResize(m.ctx, p))
		}
	}
}

// press starts a gesture on the card under the pointer. The bottom-right
// cell of a card is its resize handle. In link mode a press picks cards.
func (m *boardModel) press(p geometry.Point, col, row int) {
	m.status, m.statusErr = "", false
	v := m.s.Snapshot()
	id, onCard := m.s.CardAt(m.s.PointerToPercent(p))

	if v.ConnectMode {
		if onCard {
			m.report(m.s.ConnectClick(m.ctx, id))
		}
		return
	}
	if !onCard {
		if conn, ok := m.s.ConnectionAt(m.s.PointerToPercent(p)); ok {
			m.s.SelectConnection(conn)
			return
		}
		m.s.ClearSelection()
		return
	}

	for _, cv := range v.Cards {
		if cv.Card.ID != id {
			continue
		}
		span := rectCells(v, cv.Display)
		if col == span.x1 && row == span.y1 {
			m.s.BeginResize(id, p)
			return
		}
	}
	_, err := m.s.BeginDrag(m.ctx, id, p)
	m.report(err)
}

// ── Status ───────────────────────────────────────────────────────────────────

func (m *boardModel) report(err error) {
	if err != nil {
		m.fail(err)
	}
}

func (m *boardModel) fail(err error) {
	m.status, m.statusErr = err.Error(), true
}

// ── View ─────────────────────────────────────────────────────────────────────

func (m *boardModel) footer() string {
	if m.editing != "" {
		return m.editor.View() + "\n" + formatter.Dim("enter: save  esc: cancel")
	}
	return m.statusLine() + "\n" + m.help.View(m.keys)
}

func (m *boardModel) canvasSize() (int, int) {
	footer := strings.Count(m.footer(), "\n") + 1
	return max(m.width, 10), max(m.height-headerRows-footer, 1)
}

func (m boardModel) View() string {
	if m.quitting {
		return ""
	}
	w, h := m.canvasSize()
	v := m.s.Snapshot()
	return m.header(v) + "\n" + drawBoard(v, w, h).String() + "\n" + m.footer()
}

func (m *boardModel) header(v board.View) string {
	parts := []string{
		formatter.StyleHeader.Render("PINBOARD"),
		formatter.Bold(m.ob.detail.Board.Name),
		formatter.Dim(fmt.Sprintf("zoom %d%%", int(v.Viewport.Zoom*100+0.5))),
	}
	if v.SnapEnabled {
		parts = append(parts, formatter.StyleGreen.Render(fmt.Sprintf("snap %dpx", v.GridSize)))
	} else {
		parts = append(parts, formatter.Dim(fmt.Sprintf("snap off (%dpx)", v.GridSize)))
	}
	if v.ConnectMode {
		parts = append(parts, formatter.StyleYellow.Render("LINK"))
	}
	return strings.Join(parts, "  ")
}

func (m *boardModel) statusLine() string {
	if m.status != "" {
		if m.statusErr {
			return formatter.StyleRed.Render(m.status)
		}
		return formatter.StyleFg.Render(m.status)
	}
	v := m.s.Snapshot()
	line := fmt.Sprintf("%d cards  %d links", len(v.Cards), len(v.Connections))
	if c, ok := m.s.Card(v.SelectedCardID); ok {
		line += fmt.Sprintf("  selected %s at %s, %s", formatter.ShortID(c.ID), formatter.Percent(c.X), formatter.Percent(c.Y))
	}
	if v.CanUndo {
		line += "  undo ✓"
	}
	if v.CanRedo {
		line += "  redo ✓"
	}
	return formatter.Dim(line)
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func nextColor(current string) string {
	i := slices.IndexFunc(domain.Palette, func(c string) bool { return strings.EqualFold(c, current) })
	return domain.Palette[(i+1)%len(domain.Palette)]
}

func nextGridSize(current int) int {
	i := slices.Index(snap.GridSizes, current)
	return snap.GridSizes[(i+1)%len(snap.GridSizes)]
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
