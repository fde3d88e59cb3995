// wikimol is the command-line depiction tool: 2D/3D structure renders,
// orientation diagnostics, and infobox wikitext, straight to local files.
package main

import "github.com/wikimol/wikimolgen/internal/interfaces/cli"

func main() {
	cli.Execute()
}
