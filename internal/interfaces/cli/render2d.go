package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wikimol/wikimolgen/internal/application/render"
)

// NewRender2DCmd creates the render2d subcommand.
func NewRender2DCmd() *cobra.Command {
	var (
		style    string
		angleDeg float64
		noOrient bool
		store    bool
		outPath  string
	)

	cmd := &cobra.Command{
		Use:   "render2d <identifier>",
		Short: "Render a 2D skeletal structure PNG",
		Long: "Resolves the identifier (CID, name, or SMILES) against PubChem,\n" +
			"canonicalizes the depiction orientation, and writes a PNG.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := requireCLIContext(cmd)
			if err != nil {
				return err
			}

			res, err := cliCtx.Render.Render2D(cmd.Context(), render.Render2DRequest{
				Identifier: args[0],
				Style:      style,
				AngleDeg:   angleDeg,
				SkipOrient: noOrient,
				Store:      store,
			})
			if err != nil {
				return err
			}

			path := outPath
			if path == "" {
				path = fmt.Sprintf("%d_2d.png", res.CID)
			}
			if err := os.WriteFile(path, res.PNG, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}

			return printRenderResult(cmd, cliCtx, res, path)
		},
	}

	f := cmd.Flags()
	f.StringVar(&style, "style", "", "style preset name or JSON file path")
	f.Float64Var(&angleDeg, "angle", 0, "extra rotation in degrees, applied after orientation")
	f.BoolVar(&noOrient, "no-orient", false, "skip canonical orientation")
	f.BoolVar(&store, "store", false, "also persist the PNG to the artifact store")
	f.StringVar(&outPath, "out", "", "output PNG path (default: <cid>_2d.png)")

	return cmd
}

// printRenderResult reports a finished render on stdout in the chosen format.
func printRenderResult(cmd *cobra.Command, cliCtx *CLIContext, res *render.Result, path string) error {
	if cliCtx.OutputFormat == "json" {
		return printJSON(cmd, struct {
			*render.Result
			File string `json:"file"`
		}{res, path})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s  CID %d  (%s, %s)  -> %s\n",
		res.Name, res.CID, res.Mode, res.Style, path)
	if res.Orientation != nil && res.Orientation.Branch != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "orientation: %s (applied: %t)\n",
			res.Orientation.Branch, res.Orientation.Succeeded)
	}
	if res.ArtifactKey != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "stored as: %s\n", res.ArtifactKey)
	}
	return nil
}
