package cli

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/pinboard/internal/config"
	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/alexanderramin/pinboard/internal/repository"
	"github.com/alexanderramin/pinboard/internal/service"
	"github.com/alexanderramin/pinboard/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	db := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(db)

	return &App{
		Boards: service.NewBoardService(
			repository.NewSQLiteBoardRepo(db),
			repository.NewSQLiteCardRepo(db),
			repository.NewSQLiteConnectionRepo(db),
			repository.NewSQLiteHintRepo(db),
			uow,
		),
		Mutator:       service.NewMutatorService(uow),
		Config:        config.DefaultConfig(t.TempDir()),
		IsInteractive: func() bool { return false },
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func mustExec(t *testing.T, app *App, args ...string) string {
	t.Helper()
	out, err := executeCmd(t, app, args...)
	require.NoError(t, err, out)
	return out
}

// seedBoard creates a default board with two cards.
func seedBoard(t *testing.T, app *App) (*domain.Board, []domain.Card) {
	t.Helper()
	mustExec(t, app, "board", "create", "Research")
	mustExec(t, app, "card", "add", "first", "--x", "10", "--y", "10")
	mustExec(t, app, "card", "add", "second", "--x", "50", "--y", "40", "--color", "blue")
	return loadDefault(t, app)
}

func loadDefault(t *testing.T, app *App) (*domain.Board, []domain.Card) {
	t.Helper()
	ctx := context.Background()
	b, err := app.Boards.Resolve(ctx, "")
	require.NoError(t, err)
	detail, err := app.Boards.Load(ctx, b.ID)
	require.NoError(t, err)
	return b, detail.Cards
}

func cardByContent(t *testing.T, cards []domain.Card, content string) domain.Card {
	t.Helper()
	for _, c := range cards {
		if c.Content == content {
			return c
		}
	}
	t.Fatalf("no card with content %q", content)
	return domain.Card{}
}

// --- board ---

func TestBoardCreate_FirstBoardBecomesDefault(t *testing.T) {
	app := testApp(t)

	out := mustExec(t, app, "board", "create", "Research")
	assert.Contains(t, out, "Created board")
	mustExec(t, app, "board", "create", "Ideas")

	b, err := app.Boards.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Research", b.Name)

	out = mustExec(t, app, "board", "list")
	assert.Contains(t, out, "Research")
	assert.Contains(t, out, "Ideas")
	assert.Contains(t, out, "★")
}

func TestBoardCreate_UseFlag(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "board", "create", "Research")
	mustExec(t, app, "board", "create", "Ideas", "--use")

	b, err := app.Boards.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Ideas", b.Name)
}

func TestBoardCreate_NameRequiredWithoutTerminal(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "board", "create")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestBoardRenameAndUse(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "board", "create", "Research")
	mustExec(t, app, "board", "create", "Ideas")

	out := mustExec(t, app, "board", "rename", "ideas", "Brainstorm")
	assert.Contains(t, out, "Brainstorm")

	mustExec(t, app, "board", "use", "brainstorm")
	b, err := app.Boards.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Brainstorm", b.Name)
}

func TestBoardDelete_RequiresYesWithoutTerminal(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "board", "create", "Research")

	_, err := executeCmd(t, app, "board", "delete", "Research")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")

	mustExec(t, app, "board", "delete", "Research", "--yes")
	_, err = app.Boards.Resolve(context.Background(), "Research")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBoardShow(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)

	out := mustExec(t, app, "board", "show")
	assert.Contains(t, out, "Research")
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "second")
	assert.Contains(t, out, "#DBEAFE")
}

func TestBoardShow_NoDefault(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "board", "show")
	assert.ErrorIs(t, err, service.ErrNoDefaultBoard)
}

// --- card ---

func TestCardAdd_ClampsAndDefaults(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "board", "create", "Research")

	mustExec(t, app, "card", "add", "edge", "--x", "95", "--y=-3", "--width", "80")
	_, cards := loadDefault(t, app)
	require.Len(t, cards, 1)

	c := cards[0]
	assert.Equal(t, domain.MaxCardWidth, c.Width)
	assert.Equal(t, 100-domain.MaxCardWidth, c.X)
	assert.Equal(t, 0.0, c.Y)
	assert.Equal(t, domain.DefaultCardColor, c.Color)
	assert.Equal(t, 1, c.ZIndex)
}

func TestCardAdd_RejectsBadColor(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "board", "create", "Research")

	_, err := executeCmd(t, app, "card", "add", "x", "--color", "#12")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid color")
}

func TestCardMoveResizeEditColor(t *testing.T) {
	app := testApp(t)
	_, cards := seedBoard(t, app)
	first := cardByContent(t, cards, "first")
	ref := first.ID[:8]

	mustExec(t, app, "card", "move", ref, "30", "35")
	mustExec(t, app, "card", "resize", ref, "5", "60")
	mustExec(t, app, "card", "edit", ref, "renamed")
	mustExec(t, app, "card", "color", ref, "green")

	_, cards = loadDefault(t, app)
	got := cardByContent(t, cards, "renamed")
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, 30.0, got.X)
	assert.Equal(t, 35.0, got.Y)
	assert.Equal(t, domain.MinCardWidth, got.Width)
	assert.Equal(t, domain.MaxCardHeight, got.Height)
	assert.Equal(t, "#D1FAE5", got.Color)
}

func TestCardEdit_TextRequiredWithoutTerminal(t *testing.T) {
	app := testApp(t)
	_, cards := seedBoard(t, app)

	_, err := executeCmd(t, app, "card", "edit", cards[0].ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "text is required")
}

func TestCardMove_UnknownCard(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)

	_, err := executeCmd(t, app, "card", "move", "nope-nope", "1", "1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCardCopy(t *testing.T) {
	app := testApp(t)
	var copied string
	app.CopyText = func(s string) error {
		copied = s
		return nil
	}
	_, cards := seedBoard(t, app)

	out := mustExec(t, app, "card", "copy", cardByContent(t, cards, "second").ID)
	assert.Equal(t, "second", copied)
	assert.Contains(t, out, "Copied 6 characters")
}

func TestCardDelete_SeversConnections(t *testing.T) {
	app := testApp(t)
	b, cards := seedBoard(t, app)
	first := cardByContent(t, cards, "first")
	second := cardByContent(t, cards, "second")

	mustExec(t, app, "connect", first.ID, second.ID)
	out := mustExec(t, app, "card", "delete", first.ID)
	assert.Contains(t, out, "1 connection")

	detail, err := app.Boards.Load(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Cards, 1)
	assert.Empty(t, detail.Connections)
}

func TestCardCommands_BoardFlag(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "board", "create", "Research")
	mustExec(t, app, "board", "create", "Ideas")

	mustExec(t, app, "card", "add", "elsewhere", "--board", "Ideas")

	ctx := context.Background()
	ideas, err := app.Boards.Resolve(ctx, "Ideas")
	require.NoError(t, err)
	detail, err := app.Boards.Load(ctx, ideas.ID)
	require.NoError(t, err)
	require.Len(t, detail.Cards, 1)
	assert.Equal(t, "elsewhere", detail.Cards[0].Content)

	_, cards := loadDefault(t, app)
	assert.Empty(t, cards)
}

// --- connect ---

func TestConnect_RejectsSelfAndDuplicates(t *testing.T) {
	app := testApp(t)
	b, cards := seedBoard(t, app)
	first := cardByContent(t, cards, "first")
	second := cardByContent(t, cards, "second")

	_, err := executeCmd(t, app, "connect", first.ID, first.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "itself")

	mustExec(t, app, "connect", first.ID, second.ID, "--color", "#112233")

	_, err = executeCmd(t, app, "connect", second.ID, first.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already connected")

	detail, err := app.Boards.Load(context.Background(), b.ID)
	require.NoError(t, err)
	require.Len(t, detail.Connections, 1)
	assert.Equal(t, "#112233", detail.Connections[0].Color)
}

func TestDisconnect(t *testing.T) {
	app := testApp(t)
	b, cards := seedBoard(t, app)
	first := cardByContent(t, cards, "first")
	second := cardByContent(t, cards, "second")

	_, err := executeCmd(t, app, "disconnect", first.ID, second.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not connected")

	mustExec(t, app, "connect", first.ID, second.ID)
	mustExec(t, app, "disconnect", second.ID, first.ID)

	detail, err := app.Boards.Load(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.Connections)
}

// --- export / open ---

func TestExport_WritesPNG(t *testing.T) {
	app := testApp(t)
	_, cards := seedBoard(t, app)
	mustExec(t, app, "connect", cards[0].ID, cards[1].ID)

	path := filepath.Join(t.TempDir(), "board.png")
	out := mustExec(t, app, "export", "Research", path, "--size", "300")
	assert.Contains(t, out, "Exported")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
}

func TestExport_RequiresPNGExtension(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)

	_, err := executeCmd(t, app, "export", filepath.Join(t.TempDir(), "board.jpg"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".png")
}

func TestOpen_RequiresTerminal(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)

	_, err := executeCmd(t, app, "open")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

func TestOpen_RunsBoardViewAndSavesHint(t *testing.T) {
	app := testApp(t)
	b, _ := seedBoard(t, app)
	app.IsInteractive = func() bool { return true }

	var ran bool
	app.RunProgram = func(m tea.Model) (tea.Model, error) {
		ran = true
		bm := m.(boardModel)
		bm.s.ZoomOut()
		final, _ := bm.quit()
		return final, nil
	}
	mustExec(t, app, "open", "Research")
	assert.True(t, ran)

	h, err := app.Boards.Hint(context.Background())
	require.NoError(t, err)
	assert.Equal(t, b.ID, h.BoardID)
	assert.InDelta(t, 0.9, h.Zoom, 1e-9)
}

// --- colors ---

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"#fef3c7", "#FEF3C7", false},
		{"DBEAFE", "#DBEAFE", false},
		{"Blue", "#DBEAFE", false},
		{" violet ", "#EDE9FE", false},
		{"#12345", "", true},
		{"chartreuse", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
