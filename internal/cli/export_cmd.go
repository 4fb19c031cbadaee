package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/pinboard/internal/cli/formatter"
	"github.com/alexanderramin/pinboard/internal/render"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	opts := render.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "export [board] <file.png>",
		Short: "Render a board to a PNG image",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, path := "", args[0]
			if len(args) == 2 {
				ref, path = args[0], args[1]
			}
			if !strings.EqualFold(filepath.Ext(path), ".png") {
				return fmt.Errorf("export path must end in .png, got %q", path)
			}

			ctx := cmdContext(cmd)
			ob, err := openBoard(ctx, app, ref)
			if err != nil {
				return err
			}
			if err := render.SavePNG(path, ob.session.Snapshot(), opts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s %s\n",
				formatter.Bold(ob.detail.Board.Name), path, formatter.Dim(fmt.Sprintf("(%dpx)", opts.Size)))
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Size, "size", opts.Size, "Image width and height in pixels")
	cmd.Flags().Float64Var(&opts.FontSize, "font-size", opts.FontSize, "Card text size in points")
	cmd.Flags().StringVar(&opts.Background, "background", opts.Background, "Background color")
	return cmd
}
