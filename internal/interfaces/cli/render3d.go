package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wikimol/wikimolgen/internal/application/render"
)

// NewRender3DCmd creates the render3d subcommand.
func NewRender3DCmd() *cobra.Command {
	var (
		style    string
		xDeg     float64
		yDeg     float64
		zDeg     float64
		noOrient bool
		store    bool
		outPath  string
	)

	cmd := &cobra.Command{
		Use:   "render3d <identifier>",
		Short: "Render a 3D stick-model PNG",
		Long: "Fetches the PubChem 3D conformer (falling back to the 2D record\n" +
			"when none exists), frames it along its principal axes, and writes\n" +
			"a depth-sorted stick render.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := requireCLIContext(cmd)
			if err != nil {
				return err
			}

			res, err := cliCtx.Render.Render3D(cmd.Context(), render.Render3DRequest{
				Identifier: args[0],
				Style:      style,
				XDeg:       xDeg,
				YDeg:       yDeg,
				ZDeg:       zDeg,
				SkipOrient: noOrient,
				Store:      store,
			})
			if err != nil {
				return err
			}

			path := outPath
			if path == "" {
				path = fmt.Sprintf("%d_3d.png", res.CID)
			}
			if err := os.WriteFile(path, res.PNG, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}

			return printRenderResult(cmd, cliCtx, res, path)
		},
	}

	f := cmd.Flags()
	f.StringVar(&style, "style", "", "style preset name or JSON file path")
	f.Float64Var(&xDeg, "x", 0, "X rotation in degrees (offset, or absolute with --no-orient)")
	f.Float64Var(&yDeg, "y", 0, "Y rotation in degrees (offset, or absolute with --no-orient)")
	f.Float64Var(&zDeg, "z", 0, "Z rotation in degrees (offset, or absolute with --no-orient)")
	f.BoolVar(&noOrient, "no-orient", false, "skip principal-axis framing, use the given angles as-is")
	f.BoolVar(&store, "store", false, "also persist the PNG to the artifact store")
	f.StringVar(&outPath, "out", "", "output PNG path (default: <cid>_3d.png)")

	return cmd
}
