package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/pinboard/internal/board"
	"github.com/alexanderramin/pinboard/internal/cli"
	"github.com/alexanderramin/pinboard/internal/config"
	"github.com/alexanderramin/pinboard/internal/db"
	"github.com/alexanderramin/pinboard/internal/repository"
	"github.com/alexanderramin/pinboard/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Observers are built before flags are parsed, so they share a level
	// that --verbose can lower later.
	level := new(slog.LevelVar)
	level.Set(cli.LevelOff)
	if l, ok, err := cfg.Level(); err != nil {
		return err
	} else if ok {
		level.Set(l)
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	uow := db.NewSQLiteUnitOfWork(database)
	useCases := service.NewLogUseCaseObserver(os.Stderr, level)

	app := &cli.App{
		Boards: service.NewBoardService(
			repository.NewSQLiteBoardRepo(database),
			repository.NewSQLiteCardRepo(database),
			repository.NewSQLiteConnectionRepo(database),
			repository.NewSQLiteHintRepo(database),
			uow,
			useCases,
		),
		Mutator:  service.NewMutatorService(uow, useCases),
		Config:   cfg,
		Observer: board.NewLogObserver(os.Stderr, level),
		LogLevel: level,
	}

	// Prompts and the board view need a terminal on both ends.
	app.IsInteractive = func() bool {
		return isTerminal(os.Stdin) && isTerminal(os.Stdout)
	}

	return cli.NewRootCmd(app).Execute()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
