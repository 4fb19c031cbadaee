package cli

import (
	"context"
	"log/slog"

	"github.com/alexanderramin/pinboard/internal/board"
	"github.com/alexanderramin/pinboard/internal/config"
	"github.com/alexanderramin/pinboard/internal/service"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// LevelOff is above every slog level, so a LevelVar set to it silences
// the log observers.
const LevelOff = slog.Level(12)

// App holds the services and settings used by CLI commands.
type App struct {
	Boards  service.BoardService
	Mutator board.Mutator
	Config  config.Config

	// Observer receives board session events. Nil means no logging.
	Observer board.Observer
	// LogLevel gates the log observers; --verbose lowers it to debug.
	LogLevel *slog.LevelVar

	// IsInteractive reports whether prompts may be shown.
	IsInteractive func() bool
	// CopyText writes to the system clipboard.
	CopyText func(string) error
	// RunProgram runs an interactive bubbletea model. Tests replace it.
	RunProgram func(m tea.Model) (tea.Model, error)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) copyText(s string) error {
	if a.CopyText != nil {
		return a.CopyText(s)
	}
	return clipboard.WriteAll(s)
}

func (a *App) runProgram(m tea.Model) (tea.Model, error) {
	if a.RunProgram != nil {
		return a.RunProgram(m)
	}
	return tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
}

func (a *App) observer() board.Observer {
	if a.Observer == nil {
		return board.NoopObserver{}
	}
	return a.Observer
}

// NewRootCmd creates the top-level "pinboard" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "pinboard",
		Short:         "Cards and connectors on a pannable board",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose && app.LogLevel != nil {
				app.LogLevel.Set(slog.LevelDebug)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log store and board events to stderr")

	root.AddCommand(
		newBoardCmd(app),
		newCardCmd(app),
		newConnectCmd(app),
		newDisconnectCmd(app),
		newExportCmd(app),
		newOpenCmd(app),
	)
	return root
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
