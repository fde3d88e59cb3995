package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wikimol/wikimolgen/internal/application/compound"
	"github.com/wikimol/wikimolgen/internal/domain/infobox"
)

// NewInfoboxCmd creates the infobox subcommand.
func NewInfoboxCmd() *cobra.Command {
	var (
		kind    string
		image   string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "infobox <identifier>",
		Short: "Generate infobox wikitext for a compound",
		Long: "Resolves the identifier and emits Drugbox or Chembox wikitext\n" +
			"built from the compound's PubChem metadata.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := requireCLIContext(cmd)
			if err != nil {
				return err
			}

			res, err := cliCtx.Compound.Infobox(cmd.Context(), compound.InfoboxRequest{
				Identifier:    args[0],
				Kind:          infobox.Kind(kind),
				ImageFilename: image,
			})
			if err != nil {
				return err
			}

			if outPath != "" {
				if err := os.WriteFile(outPath, []byte(res.Wikitext), 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", outPath, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s infobox for CID %d -> %s\n",
					res.Kind, res.CID, outPath)
				return nil
			}

			if cliCtx.OutputFormat == "json" {
				return printJSON(cmd, res)
			}
			fmt.Fprint(cmd.OutOrStdout(), res.Wikitext)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&kind, "kind", "drugbox", "infobox kind (drugbox, chembox)")
	f.StringVar(&image, "image", "", "image filename to reference in the infobox")
	f.StringVar(&outPath, "out", "", "write wikitext to a file instead of stdout")

	return cmd
}
