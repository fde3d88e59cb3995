package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wikimol/wikimolgen/internal/application/render"
	"github.com/wikimol/wikimolgen/internal/infrastructure/pubchem"
)

// NewOrientCmd creates the orient subcommand, which reports the orientation
// decision for a compound without rendering it.
func NewOrientCmd() *cobra.Command {
	var record string

	cmd := &cobra.Command{
		Use:   "orient <identifier>",
		Short: "Show the orientation decision for a compound",
		Long: "Resolves the identifier and reports which canonicalization rule\n" +
			"applies: phenethylamine scaffold, first amine, or principal-axis\n" +
			"alignment. For 3D records the view angles and zoom are reported.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := requireCLIContext(cmd)
			if err != nil {
				return err
			}

			res, err := cliCtx.Render.Orient(cmd.Context(), render.OrientRequest{
				Identifier: args[0],
				Record:     pubchem.RecordType(record),
			})
			if err != nil {
				return err
			}

			if cliCtx.OutputFormat == "json" {
				return printJSON(cmd, res)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "CID %d (%s record)\n", res.CID, res.Record)
			if res.Record == string(pubchem.Record3D) {
				fmt.Fprintf(out, "view: x=%.2f° y=%.2f° z=%.2f°\n", res.XDeg, res.YDeg, res.ZDeg)
				fmt.Fprintf(out, "zoom buffer: %.1f (aspect ratio %.2f)\n", res.ZoomBuffer, res.AspectRatio)
				return nil
			}
			fmt.Fprintf(out, "branch: %s (applied: %t)\n", res.Branch, res.Succeeded)
			if res.Pivot >= 0 {
				fmt.Fprintf(out, "pivot atom %d -> reference atom %d, target %.1f°\n",
					res.Pivot, res.Reference, res.AngleDeg)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&record, "record", "2d", "structure record to analyze (2d, 3d)")
	return cmd
}
