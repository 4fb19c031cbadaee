package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pinboard/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Manage boards",
	}

	cmd.AddCommand(
		newBoardListCmd(app),
		newBoardCreateCmd(app),
		newBoardRenameCmd(app),
		newBoardDeleteCmd(app),
		newBoardShowCmd(app),
		newBoardUseCmd(app),
	)
	return cmd
}

func newBoardListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List boards",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			summaries, err := app.Boards.List(ctx)
			if err != nil {
				return err
			}
			hint, err := app.Boards.Hint(ctx)
			if err != nil {
				return err
			}

			entries := make([]formatter.BoardListEntry, 0, len(summaries))
			for _, s := range summaries {
				entries = append(entries, formatter.BoardListEntry{
					Board:       s.Board,
					Cards:       s.CardCount,
					Connections: s.ConnectionCount,
					Default:     hint.BoardID == s.Board.ID,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBoardList(entries))
			return nil
		},
	}
}

func newBoardCreateCmd(app *App) *cobra.Command {
	var use bool

	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a board",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			}
			if strings.TrimSpace(name) == "" {
				if !app.interactive() {
					return fmt.Errorf("board name is required")
				}
				if err := boardNameForm("Board name", &name).Run(); err != nil {
					return err
				}
			}

			ctx := cmdContext(cmd)
			b, err := app.Boards.Create(ctx, name)
			if err != nil {
				return err
			}
			if use {
				if err := app.Boards.Use(ctx, b.ID); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created board %s %s\n", formatter.Bold(b.Name), formatter.TruncID(b.ID))
			return nil
		},
	}

	cmd.Flags().BoolVar(&use, "use", false, "Make the new board the default")
	return cmd
}

func newBoardRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <board> <name>",
		Short: "Rename a board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			b, err := app.Boards.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			old := b.Name
			b, err = app.Boards.Rename(ctx, b.ID, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", old, formatter.Bold(b.Name))
			return nil
		},
	}
}

func newBoardDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <board>",
		Aliases: []string{"rm"},
		Short:   "Delete a board with all its cards and connections",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			b, err := app.Boards.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			if !yes {
				if !app.interactive() {
					return fmt.Errorf("refusing to delete %q without --yes", b.Name)
				}
				confirmed := false
				if err := confirmForm(fmt.Sprintf("Delete board %q?", b.Name), &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
			}
			if err := app.Boards.Delete(ctx, b.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted board %s\n", b.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func newBoardShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [board]",
		Short: "Show a board's cards and connections",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			b, err := app.Boards.Resolve(ctx, optionalArg(args))
			if err != nil {
				return err
			}
			detail, err := app.Boards.Load(ctx, b.ID)
			if err != nil {
				return err
			}
			hint, err := app.Boards.Hint(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBoardDetail(detail, hint.BoardID == b.ID))
			return nil
		},
	}
}

func newBoardUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <board>",
		Short: "Set the default board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			b, err := app.Boards.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Boards.Use(ctx, b.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Using board %s\n", formatter.Bold(b.Name))
			return nil
		},
	}
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
