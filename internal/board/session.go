// Package board is the interaction engine for one board. A Session owns the
// cards, connections, viewport, selection, modes, gesture state and undo log
// of a single open board. It is a single-writer reducer: callers change state
// only through Session methods and read it through Snapshot.
//
// Local state is updated first and the Mutator is called afterwards. Mutator
// failures are reported to the Observer and returned, never retried.
package board

import (
	"context"
	"fmt"
	"slices"

	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/alexanderramin/pinboard/internal/gesture"
	"github.com/alexanderramin/pinboard/internal/geometry"
	"github.com/alexanderramin/pinboard/internal/history"
	"github.com/alexanderramin/pinboard/internal/router"
	"github.com/alexanderramin/pinboard/internal/snap"
	"github.com/alexanderramin/pinboard/internal/viewport"
	"github.com/google/uuid"
)

type Config struct {
	BoardSize    float64
	GridSize     int
	SnapEnabled  bool
	UndoCapacity int
	Threshold    float64
}

func DefaultConfig() Config {
	return Config{
		BoardSize:    viewport.DefaultBoardSize,
		GridSize:     snap.DefaultGridSize,
		UndoCapacity: history.DefaultCapacity,
		Threshold:    snap.DefaultThreshold,
	}
}

type Option func(*Session)

func WithObserver(o Observer) Option {
	return func(s *Session) {
		if o != nil {
			s.obs = o
		}
	}
}

// WithIDGenerator replaces the id source used for new cards and connections.
func WithIDGenerator(fn func() string) Option {
	return func(s *Session) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithViewport restores a saved viewport.
func WithViewport(vp viewport.Viewport) Option {
	return func(s *Session) {
		vp.Zoom = viewport.ClampZoom(vp.Zoom)
		s.vp = vp
	}
}

type Session struct {
	boardID string
	cfg     Config
	mut     Mutator
	obs     Observer
	newID   func() string

	cards []domain.Card
	conns []domain.Connection

	vp            viewport.Viewport
	snapOn        bool
	gridSize      int
	connectMode   bool
	connectSource string
	selectedCard  string
	selectedConn  string

	gesture *gesture.Controller
	log     *history.Log
}

// NewSession opens detail for interaction. Zero config fields take their
// defaults.
func NewSession(detail domain.BoardDetail, m Mutator, cfg Config, opts ...Option) *Session {
	def := DefaultConfig()
	if cfg.BoardSize <= 0 {
		cfg.BoardSize = def.BoardSize
	}
	if !snap.ValidGridSize(cfg.GridSize) {
		cfg.GridSize = def.GridSize
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = def.Threshold
	}

	s := &Session{
		boardID:  detail.Board.ID,
		cfg:      cfg,
		mut:      m,
		obs:      NoopObserver{},
		newID:    uuid.NewString,
		cards:    slices.Clone(detail.Cards),
		conns:    slices.Clone(detail.Connections),
		vp:       viewport.New(),
		snapOn:   cfg.SnapEnabled,
		gridSize: cfg.GridSize,
		gesture:  gesture.NewController(),
		log:      history.NewLog(cfg.UndoCapacity),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) BoardID() string { return s.boardID }

func (s *Session) Viewport() viewport.Viewport { return s.vp }

// History exposes the undo log for inspection.
func (s *Session) History() *history.Log { return s.log }

// Card returns a copy of the card with id.
func (s *Session) Card(id string) (domain.Card, bool) {
	if i := s.cardIndex(id); i >= 0 {
		return s.cards[i], true
	}
	return domain.Card{}, false
}

func (s *Session) Connection(id string) (domain.Connection, bool) {
	if i := s.connIndex(id); i >= 0 {
		return s.conns[i], true
	}
	return domain.Connection{}, false
}

// Viewport

func (s *Session) Pan(dx, dy float64) {
	s.vp.Pan(dx, dy)
}

// ZoomAt applies one wheel notch around cursor (container pixels).
func (s *Session) ZoomAt(cursor geometry.Point, wheelDelta float64) bool {
	return s.vp.ZoomAt(cursor, wheelDelta)
}

func (s *Session) SetZoom(z float64) { s.vp.SetZoom(z) }
func (s *Session) ZoomIn() { s.vp.ZoomIn() }
func (s *Session) ZoomOut() { s.vp.ZoomOut() }
func (s *Session) ResetView() { s.vp.Reset() }

// PointerToPercent maps a container pixel to board-percentage space.
func (s *Session) PointerToPercent(p geometry.Point) geometry.Point {
	return s.vp.ToPercent(p, s.cfg.BoardSize)
}

// BoardRect is the board's on-screen bounds in container pixels.
func (s *Session) BoardRect() geometry.Rect {
	side := s.cfg.BoardSize * s.vp.Zoom
	return geometry.Rect{X: s.vp.X, Y: s.vp.Y, W: side, H: side}
}

// Modes

// ToggleSnap flips snapping and returns the new state.
func (s *Session) ToggleSnap() bool {
	s.snapOn = !s.snapOn
	return s.snapOn
}

// SetGridSize selects one of snap.GridSizes. Other sizes are refused.
func (s *Session) SetGridSize(px int) bool {
	if !snap.ValidGridSize(px) {
		return false
	}
	s.gridSize = px
	return true
}

// ToggleConnectMode enters or leaves connect mode. Either way the pending
// source and the selected connection are cleared.
func (s *Session) ToggleConnectMode() bool {
	s.connectMode = !s.connectMode
	s.connectSource = ""
	s.selectedConn = ""
	return s.connectMode
}

// Selection

func (s *Session) SelectCard(id string) bool {
	if s.cardIndex(id) < 0 {
		return false
	}
	s.selectedCard = id
	s.selectedConn = ""
	return true
}

func (s *Session) SelectConnection(id string) bool {
	if s.connIndex(id) < 0 {
		return false
	}
	s.selectedConn = id
	s.selectedCard = ""
	return true
}

func (s *Session) ClearSelection() {
	s.selectedCard = ""
	s.selectedConn = ""
	s.connectSource = ""
}

// Escape leaves connect mode if active, otherwise clears the selection. An
// in-flight gesture is not affected.
func (s *Session) Escape() {
	if s.connectMode {
		s.ToggleConnectMode()
		return
	}
	s.ClearSelection()
}

// Hit testing, in board-percentage space.

// CardAt returns the topmost card under p.
func (s *Session) CardAt(p geometry.Point) (string, bool) {
	var (
		hit   string
		found bool
		topZ  int
	)
	for i := range s.cards {
		c := &s.cards[i]
		if !s.gesture.DisplayRect(c).Contains(p) {
			continue
		}
		if !found || c.ZIndex >= topZ {
			hit, topZ, found = c.ID, c.ZIndex, true
		}
	}
	return hit, found
}

// ConnectionAt returns the connector under p. Cards are drawn above
// connectors, so callers should test CardAt first.
func (s *Session) ConnectionAt(p geometry.Point) (string, bool) {
	return router.HitTest(s.routes(), p, router.DefaultHitTolerance)
}

// Gestures

func (s *Session) scale() gesture.Scale {
	return gesture.Scale{BoardSize: s.cfg.BoardSize, Zoom: s.vp.Zoom}
}

func (s *Session) snapOptions() gesture.Options {
	return gesture.Options{
		Grid:        s.snapOn,
		GridPercent: snap.GridPercent(s.gridSize, s.cfg.BoardSize),
		Threshold:   s.cfg.Threshold,
	}
}

func (s *Session) otherRects(id string) []geometry.Rect {
	out := make([]geometry.Rect, 0, len(s.cards))
	for i := range s.cards {
		if s.cards[i].ID != id {
			out = append(out, s.cards[i].Rect())
		}
	}
	return out
}

// BeginDrag starts dragging a card from pointer (container pixels). The card
// is selected and raised to the top. Dragging is unavailable in connect mode
// and while another gesture is active.
func (s *Session) BeginDrag(ctx context.Context, cardID string, pointer geometry.Point) (bool, error) {
	if s.connectMode {
		return false, nil
	}
	i := s.cardIndex(cardID)
	if i < 0 {
		return false, nil
	}
	patches, ok := s.gesture.BeginDrag(s.cards[i], pointer, s.cards)
	if !ok {
		return false, nil
	}
	s.SelectCard(cardID)

	var firstErr error
	for _, p := range patches {
		if j := s.cardIndex(p.CardID); j >= 0 {
			s.cards[j].ZIndex = p.ZIndex
		}
		if _, err := s.mut.UpdateCard(ctx, ZIndexPatch(p.CardID, p.ZIndex)); err != nil && firstErr == nil {
			firstErr = s.failed(ctx, "raise", p.CardID, err)
		}
	}
	return true, firstErr
}

// MoveDrag updates the drag preview and the alignment guides.
func (s *Session) MoveDrag(pointer geometry.Point) geometry.Rect {
	if s.gesture.State() != gesture.Dragging {
		return geometry.Rect{}
	}
	r, _ := s.gesture.MoveDrag(pointer, s.otherRects(s.gesture.CardID()), s.scale(), s.cfg.Threshold)
	return r
}

// EndDrag commits the drag as a single card_move. A drag that ends where it
// started records nothing.
func (s *Session) EndDrag(ctx context.Context, pointer geometry.Point) error {
	if s.gesture.State() != gesture.Dragging {
		return nil
	}
	commit, _ := s.gesture.EndDrag(pointer, s.otherRects(s.gesture.CardID()), s.scale(), s.snapOptions())
	i := s.cardIndex(commit.CardID)
	if i < 0 || !commit.Changed() {
		return nil
	}

	to := commit.After.Origin()
	s.log.Push(history.CardMove(s.boardID, commit.CardID, commit.Before.Origin(), to))
	s.cards[i].X, s.cards[i].Y = to.X, to.Y
	s.committed(ctx, history.ActionCardMove, commit.CardID)

	if _, err := s.mut.UpdateCard(ctx, MovePatch(commit.CardID, to.X, to.Y)); err != nil {
		return s.failed(ctx, string(history.ActionCardMove), commit.CardID, err)
	}
	return nil
}

// BeginResize starts resizing a card from its bottom-right handle.
func (s *Session) BeginResize(cardID string, pointer geometry.Point) bool {
	i := s.cardIndex(cardID)
	if i < 0 {
		return false
	}
	if !s.gesture.BeginResize(s.cards[i], pointer) {
		return false
	}
	s.SelectCard(cardID)
	return true
}

func (s *Session) MoveResize(pointer geometry.Point) geometry.Rect {
	return s.gesture.MoveResize(pointer, s.scale())
}

// EndResize commits the resize as a single card_resize.
func (s *Session) EndResize(ctx context.Context, pointer geometry.Point) error {
	commit, ok := s.gesture.EndResize(pointer, s.scale())
	if !ok {
		return nil
	}
	i := s.cardIndex(commit.CardID)
	if i < 0 || !commit.Changed() {
		return nil
	}

	to := commit.After.Size()
	s.log.Push(history.CardResize(s.boardID, commit.CardID, commit.Before.Size(), to))
	s.cards[i].Width, s.cards[i].Height = to.Width, to.Height
	s.committed(ctx, history.ActionCardResize, commit.CardID)

	if _, err := s.mut.UpdateCard(ctx, ResizePatch(commit.CardID, to.Width, to.Height)); err != nil {
		return s.failed(ctx, string(history.ActionCardResize), commit.CardID, err)
	}
	return nil
}

// CancelGesture drops an in-flight drag or resize without committing.
func (s *Session) CancelGesture() {
	s.gesture.Cancel()
}

// MoveCard places a card at (x, y) without a pointer gesture, as keyboard
// nudges and the command line do. The position is clamped to the board and
// recorded as one card_move.
func (s *Session) MoveCard(ctx context.Context, cardID string, x, y float64) error {
	i := s.cardIndex(cardID)
	if i < 0 {
		return nil
	}
	s.gesture.Cancel()
	from := s.cards[i].Position()
	to := geometry.ClampOrigin(geometry.Point{X: x, Y: y}, s.cards[i].Size())
	if to == from {
		return nil
	}

	s.log.Push(history.CardMove(s.boardID, cardID, from, to))
	s.cards[i].X, s.cards[i].Y = to.X, to.Y
	s.committed(ctx, history.ActionCardMove, cardID)

	if _, err := s.mut.UpdateCard(ctx, MovePatch(cardID, to.X, to.Y)); err != nil {
		return s.failed(ctx, string(history.ActionCardMove), cardID, err)
	}
	return nil
}

// ResizeCard sets a card's size within the card bounds.
func (s *Session) ResizeCard(ctx context.Context, cardID string, w, h float64) error {
	i := s.cardIndex(cardID)
	if i < 0 {
		return nil
	}
	s.gesture.Cancel()
	from := s.cards[i].Size()
	to := domain.ClampSize(geometry.Size{Width: w, Height: h})
	if to == from {
		return nil
	}

	s.log.Push(history.CardResize(s.boardID, cardID, from, to))
	s.cards[i].Width, s.cards[i].Height = to.Width, to.Height
	s.committed(ctx, history.ActionCardResize, cardID)

	if _, err := s.mut.UpdateCard(ctx, ResizePatch(cardID, to.Width, to.Height)); err != nil {
		return s.failed(ctx, string(history.ActionCardResize), cardID, err)
	}
	return nil
}

// Cards

// CreateCardAt creates a default card centred on pointer (container pixels),
// as a double-click on empty board does. Ignored in connect mode.
func (s *Session) CreateCardAt(ctx context.Context, pointer geometry.Point) (*domain.Card, error) {
	if s.connectMode {
		return nil, nil
	}
	at := gesture.CreationAnchor(pointer, s.BoardRect())
	return s.CreateCard(ctx, CardDraft{X: at.X, Y: at.Y})
}

// CreateCard creates a card from d. Out-of-range geometry is clamped, an
// invalid color falls back to the default and the card is placed on top.
// The card is added locally once the Mutator has accepted it.
func (s *Session) CreateCard(ctx context.Context, d CardDraft) (*domain.Card, error) {
	d.BoardID = s.boardID
	if d.ID == "" {
		d.ID = s.newID()
	}
	if d.ZIndex == 0 {
		d.ZIndex = domain.MaxZIndex(s.cards) + 1
	}
	if d.Color != "" && !domain.ValidColor(d.Color) {
		d.Color = ""
	}
	card := d.Card()
	size := domain.ClampSize(card.Size())
	origin := geometry.ClampOrigin(card.Position(), size)
	d.X, d.Y, d.Width, d.Height, d.Color = origin.X, origin.Y, size.Width, size.Height, card.Color

	created, err := s.mut.CreateCard(ctx, d)
	if err != nil {
		return nil, s.failed(ctx, string(history.ActionCardCreate), d.ID, err)
	}
	s.cards = append(s.cards, created)
	s.log.Push(history.CardCreate(s.boardID, created))
	s.committed(ctx, history.ActionCardCreate, created.ID)
	return &created, nil
}

// EditContent replaces a card's text.
func (s *Session) EditContent(ctx context.Context, cardID, content string) error {
	i := s.cardIndex(cardID)
	if i < 0 || s.cards[i].Content == content {
		return nil
	}
	s.log.Push(history.CardContent(s.boardID, cardID, s.cards[i].Content, content))
	s.cards[i].Content = content
	s.committed(ctx, history.ActionCardContent, cardID)

	if _, err := s.mut.UpdateCard(ctx, ContentPatch(cardID, content)); err != nil {
		return s.failed(ctx, string(history.ActionCardContent), cardID, err)
	}
	return nil
}

// Recolor changes a card's color.
func (s *Session) Recolor(ctx context.Context, cardID, color string) error {
	if !domain.ValidColor(color) {
		return fmt.Errorf("invalid color %q", color)
	}
	i := s.cardIndex(cardID)
	if i < 0 || s.cards[i].Color == color {
		return nil
	}
	s.log.Push(history.CardColor(s.boardID, cardID, s.cards[i].Color, color))
	s.cards[i].Color = color
	s.committed(ctx, history.ActionCardColor, cardID)

	if _, err := s.mut.UpdateCard(ctx, ColorPatch(cardID, color)); err != nil {
		return s.failed(ctx, string(history.ActionCardColor), cardID, err)
	}
	return nil
}

// DeleteCard removes a card and every connection touching it. The undo
// record keeps both so they can be restored together.
func (s *Session) DeleteCard(ctx context.Context, cardID string) error {
	i := s.cardIndex(cardID)
	if i < 0 {
		return nil
	}
	card := s.cards[i]
	severed := router.Affected(s.conns, cardID)
	s.log.Push(history.CardDelete(s.boardID, card, severed))
	s.removeCard(cardID)
	s.ClearSelection()
	s.committed(ctx, history.ActionCardDelete, cardID)

	if err := s.mut.DeleteCard(ctx, cardID); err != nil {
		return s.failed(ctx, string(history.ActionCardDelete), cardID, err)
	}
	return nil
}

// Connections

// ConnectClick handles a card click in connect mode: the first click picks
// the source, clicking it again clears it, clicking another card connects
// the two and clears the source.
func (s *Session) ConnectClick(ctx context.Context, cardID string) error {
	if !s.connectMode || s.cardIndex(cardID) < 0 {
		return nil
	}
	switch s.connectSource {
	case "":
		s.connectSource = cardID
		return nil
	case cardID:
		s.connectSource = ""
		return nil
	}
	from := s.connectSource
	s.connectSource = ""
	_, err := s.Connect(ctx, from, cardID)
	return err
}

// Connect links two cards. Self connections, unknown cards and pairs that
// are already linked in either direction are rejected silently with a nil
// result.
func (s *Session) Connect(ctx context.Context, fromID, toID string) (*domain.Connection, error) {
	if reason := s.connectRejection(fromID, toID); reason != "" {
		s.obs.ObserveBoard(ctx, Event{Kind: EventConnectRejected, BoardID: s.boardID, CardID: fromID, Reason: reason})
		return nil, nil
	}
	d := ConnectionDraft{
		ID:         s.newID(),
		BoardID:    s.boardID,
		FromCardID: fromID,
		ToCardID:   toID,
		Color:      domain.DefaultConnectionColor,
	}
	created, err := s.mut.CreateConnection(ctx, d)
	if err != nil {
		return nil, s.failed(ctx, string(history.ActionConnectionCreate), fromID, err)
	}
	s.conns = append(s.conns, created)
	s.log.Push(history.ConnectionCreate(s.boardID, created))
	s.committed(ctx, history.ActionConnectionCreate, fromID)
	return &created, nil
}

func (s *Session) connectRejection(fromID, toID string) string {
	switch {
	case fromID == toID:
		return "self connection"
	case s.cardIndex(fromID) < 0 || s.cardIndex(toID) < 0:
		return "unknown card"
	case domain.HasLink(s.conns, fromID, toID):
		return "duplicate connection"
	}
	return ""
}

// RecolorConnection changes a connector's color. It is not recorded for undo.
func (s *Session) RecolorConnection(ctx context.Context, id, color string) error {
	if !domain.ValidColor(color) {
		return fmt.Errorf("invalid color %q", color)
	}
	i := s.connIndex(id)
	if i < 0 || s.conns[i].Color == color {
		return nil
	}
	s.conns[i].Color = color
	if _, err := s.mut.UpdateConnection(ctx, id, color); err != nil {
		return s.failed(ctx, "connection_color", id, err)
	}
	return nil
}

func (s *Session) DeleteConnection(ctx context.Context, id string) error {
	i := s.connIndex(id)
	if i < 0 {
		return nil
	}
	s.log.Push(history.ConnectionDelete(s.boardID, s.conns[i]))
	s.conns = slices.Delete(s.conns, i, i+1)
	if s.selectedConn == id {
		s.selectedConn = ""
	}
	s.committed(ctx, history.ActionConnectionDelete, "")

	if err := s.mut.DeleteConnection(ctx, id); err != nil {
		return s.failed(ctx, string(history.ActionConnectionDelete), "", err)
	}
	return nil
}

// DeleteSelected deletes the selected connection, or failing that the
// selected card.
func (s *Session) DeleteSelected(ctx context.Context) error {
	switch {
	case s.selectedConn != "":
		return s.DeleteConnection(ctx, s.selectedConn)
	case s.selectedCard != "":
		return s.DeleteCard(ctx, s.selectedCard)
	}
	return nil
}

// internals

func (s *Session) cardIndex(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.cards, func(c domain.Card) bool { return c.ID == id })
}

func (s *Session) connIndex(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.conns, func(c domain.Connection) bool { return c.ID == id })
}

// removeCard drops a card and its connections from local state.
func (s *Session) removeCard(id string) {
	s.cards = slices.DeleteFunc(s.cards, func(c domain.Card) bool { return c.ID == id })
	s.conns = slices.DeleteFunc(s.conns, func(c domain.Connection) bool { return c.Touches(id) })
	if s.gesture.Active() && s.gesture.CardID() == id {
		s.gesture.Cancel()
	}
	if s.connectSource == id {
		s.connectSource = ""
	}
	if s.selectedCard == id {
		s.selectedCard = ""
	}
	if s.selectedConn != "" && s.connIndex(s.selectedConn) < 0 {
		s.selectedConn = ""
	}
}

func (s *Session) committed(ctx context.Context, t history.ActionType, cardID string) {
	s.obs.ObserveBoard(ctx, Event{Kind: EventCommit, BoardID: s.boardID, Action: string(t), CardID: cardID})
}

func (s *Session) failed(ctx context.Context, action, cardID string, err error) error {
	s.obs.ObserveBoard(ctx, Event{Kind: EventMutatorFailed, BoardID: s.boardID, Action: action, CardID: cardID, Err: err})
	return fmt.Errorf("%s: %w", action, err)
}
