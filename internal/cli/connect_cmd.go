package cli

import (
	"fmt"

	"github.com/alexanderramin/pinboard/internal/cli/formatter"
	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/spf13/cobra"
)

func newConnectCmd(app *App) *cobra.Command {
	var (
		boardRef string
		color    colorValue
	)

	cmd := &cobra.Command{
		Use:   "connect <card> <card>",
		Short: "Connect two cards",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			ob, err := openBoard(ctx, app, boardRef)
			if err != nil {
				return err
			}
			from, err := ob.card(ctx, app, args[0])
			if err != nil {
				return err
			}
			to, err := ob.card(ctx, app, args[1])
			if err != nil {
				return err
			}
			if from.ID == to.ID {
				return fmt.Errorf("cannot connect a card to itself")
			}
			if domain.HasLink(ob.session.Connections(), from.ID, to.ID) {
				return fmt.Errorf("cards %s and %s are already connected", formatter.ShortID(from.ID), formatter.ShortID(to.ID))
			}

			conn, err := ob.session.Connect(ctx, from.ID, to.ID)
			if err != nil {
				return err
			}
			if conn == nil {
				return fmt.Errorf("cards could not be connected")
			}
			if color.hex != "" {
				if err := ob.session.RecolorConnection(ctx, conn.ID, color.hex); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Connected %s → %s %s\n",
				formatter.TruncID(from.ID), formatter.TruncID(to.ID), formatter.Dim("("+formatter.ShortID(conn.ID)+")"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&boardRef, "board", "b", "", "Board id or name (default board if empty)")
	cmd.Flags().Var(&color, "color", "Connector color (#RRGGBB or a palette name)")
	return cmd
}

func newDisconnectCmd(app *App) *cobra.Command {
	var boardRef string

	cmd := &cobra.Command{
		Use:   "disconnect <card> <card>",
		Short: "Remove the connection between two cards",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			ob, err := openBoard(ctx, app, boardRef)
			if err != nil {
				return err
			}
			a, err := ob.card(ctx, app, args[0])
			if err != nil {
				return err
			}
			b, err := ob.card(ctx, app, args[1])
			if err != nil {
				return err
			}

			for _, conn := range ob.session.Connections() {
				if !conn.Links(a.ID, b.ID) {
					continue
				}
				if err := ob.session.DeleteConnection(ctx, conn.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Disconnected %s and %s\n", formatter.TruncID(a.ID), formatter.TruncID(b.ID))
				return nil
			}
			return fmt.Errorf("cards %s and %s are not connected", formatter.ShortID(a.ID), formatter.ShortID(b.ID))
		},
	}

	cmd.Flags().StringVarP(&boardRef, "board", "b", "", "Board id or name (default board if empty)")
	return cmd
}
