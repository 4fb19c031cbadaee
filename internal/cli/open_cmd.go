package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newOpenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open [board]",
		Short: "Open a board in the interactive terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("open needs an interactive terminal")
			}
			ctx := cmdContext(cmd)
			ob, err := openBoard(ctx, app, optionalArg(args))
			if err != nil {
				return err
			}

			final, err := app.runProgram(newBoardModel(ctx, app, ob))
			if err != nil {
				return err
			}
			if m, ok := final.(boardModel); ok && m.saveErr != nil {
				return fmt.Errorf("saving view: %w", m.saveErr)
			}
			return nil
		},
	}
}
