package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/pinboard/internal/board"
	"github.com/alexanderramin/pinboard/internal/cli/formatter"
	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/spf13/cobra"
)

func newCardCmd(app *App) *cobra.Command {
	var boardRef string

	cmd := &cobra.Command{
		Use:   "card",
		Short: "Add and change cards",
	}
	cmd.PersistentFlags().StringVarP(&boardRef, "board", "b", "", "Board id or name (default board if empty)")

	cmd.AddCommand(
		newCardAddCmd(app, &boardRef),
		newCardMoveCmd(app, &boardRef),
		newCardResizeCmd(app, &boardRef),
		newCardEditCmd(app, &boardRef),
		newCardColorCmd(app, &boardRef),
		newCardDeleteCmd(app, &boardRef),
		newCardCopyCmd(app, &boardRef),
	)
	return cmd
}

func newCardAddCmd(app *App, boardRef *string) *cobra.Command {
	var (
		x, y, width, height float64
		color               colorValue
	)

	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Add a card",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			ob, err := openBoard(ctx, app, *boardRef)
			if err != nil {
				return err
			}

			d := board.CardDraft{
				Content: optionalArg(args),
				X:       domain.DefaultCardX,
				Y:       domain.DefaultCardY,
				Width:   width,
				Height:  height,
				Color:   color.hex,
			}
			if cmd.Flags().Changed("x") {
				d.X = x
			}
			if cmd.Flags().Changed("y") {
				d.Y = y
			}

			c, err := ob.session.CreateCard(ctx, d)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCard(c))
			return nil
		},
	}

	cmd.Flags().Float64Var(&x, "x", domain.DefaultCardX, "Left edge in percent of the board")
	cmd.Flags().Float64Var(&y, "y", domain.DefaultCardY, "Top edge in percent of the board")
	cmd.Flags().Float64Var(&width, "width", domain.DefaultCardWidth, "Width in percent of the board")
	cmd.Flags().Float64Var(&height, "height", domain.DefaultCardHeight, "Height in percent of the board")
	cmd.Flags().Var(&color, "color", "Card color (#RRGGBB or a palette name)")
	return cmd
}

func newCardMoveCmd(app *App, boardRef *string) *cobra.Command {
	return &cobra.Command{
		Use:   "move <card> <x> <y>",
		Short: "Move a card, in percent of the board",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, err := parsePair(args[1], args[2])
			if err != nil {
				return err
			}
			ctx := cmdContext(cmd)
			ob, err := openBoard(ctx, app, *boardRef)
			if err != nil {
				return err
			}
			c, err := ob.card(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := ob.session.MoveCard(ctx, c.ID, x, y); err != nil {
				return err
			}
			moved, _ := ob.session.Card(c.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s, %s\n",
				formatter.TruncID(c.ID), formatter.Percent(moved.X), formatter.Percent(moved.Y))
			return nil
		},
	}
}

func newCardResizeCmd(app *App, boardRef *string) *cobra.Command {
	return &cobra.Command{
		Use:   "resize <card> <width> <height>",
		Short: "Resize a card, in percent of the board",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, h, err := parsePair(args[1], args[2])
			if err != nil {
				return err
			}
			ctx := cmdContext(cmd)
			ob, err := openBoard(ctx, app, *boardRef)
			if err != nil {
				return err
			}
			c, err := ob.card(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := ob.session.ResizeCard(ctx, c.ID, w, h); err != nil {
				return err
			}
			resized, _ := ob.session.Card(c.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Resized %s to %s × %s\n",
				formatter.TruncID(c.ID), formatter.Percent(resized.Width), formatter.Percent(resized.Height))
			return nil
		},
	}
}

func newCardEditCmd(app *App, boardRef *string) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <card> [text]",
		Short: "Replace a card's text",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			ob, err := openBoard(ctx, app, *boardRef)
			if err != nil {
				return err
			}
			c, err := ob.card(ctx, app, args[0])
			if err != nil {
				return err
			}

			text := c.Content
			switch {
			case len(args) == 2:
				text = args[1]
			case app.interactive():
				if err := cardTextForm(&text).Run(); err != nil {
					return err
				}
			default:
				return fmt.Errorf("card text is required")
			}

			if err := ob.session.EditContent(ctx, c.ID, text); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", formatter.TruncID(c.ID))
			return nil
		},
	}
}

func newCardColorCmd(app *App, boardRef *string) *cobra.Command {
	return &cobra.Command{
		Use:   "color <card> <color>",
		Short: "Change a card's color",
		Long:  "Change a card's color. Colors are #RRGGBB values or one of: " + strings.Join(colorNames(), ", ") + ".",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hex, err := parseColor(args[1])
			if err != nil {
				return err
			}
			ctx := cmdContext(cmd)
			ob, err := openBoard(ctx, app, *boardRef)
			if err != nil {
				return err
			}
			c, err := ob.card(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := ob.session.Recolor(ctx, c.ID, hex); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Colored %s %s\n", formatter.TruncID(c.ID), formatter.Swatch(hex))
			return nil
		},
	}
}

func newCardDeleteCmd(app *App, boardRef *string) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <card>",
		Aliases: []string{"rm"},
		Short:   "Delete a card and its connections",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			ob, err := openBoard(ctx, app, *boardRef)
			if err != nil {
				return err
			}
			c, err := ob.card(ctx, app, args[0])
			if err != nil {
				return err
			}
			severed := 0
			for _, conn := range ob.detail.Connections {
				if conn.Touches(c.ID) {
					severed++
				}
			}
			if err := ob.session.DeleteCard(ctx, c.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted card %s", formatter.TruncID(c.ID))
			if severed > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), " and %d connection(s)", severed)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}

func newCardCopyCmd(app *App, boardRef *string) *cobra.Command {
	return &cobra.Command{
		Use:   "copy <card>",
		Short: "Copy a card's text to the clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			b, err := app.Boards.Resolve(ctx, *boardRef)
			if err != nil {
				return err
			}
			c, err := app.Boards.ResolveCard(ctx, b.ID, args[0])
			if err != nil {
				return err
			}
			if err := app.copyText(c.Content); err != nil {
				return fmt.Errorf("copying to clipboard: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Copied %d characters\n", len([]rune(c.Content)))
			return nil
		},
	}
}

func parsePair(a, b string) (float64, float64, error) {
	x, err := strconv.ParseFloat(a, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid number %q", a)
	}
	y, err := strconv.ParseFloat(b, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid number %q", b)
	}
	return x, y, nil
}
