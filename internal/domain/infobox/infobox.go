// Package infobox renders Wikipedia infobox markup (Drugbox and Chembox)
// from resolved compound metadata.
package infobox

import (
	"strings"
	"text/template"

	"github.com/wikimol/wikimolgen/pkg/errors"
)

// Kind selects the infobox template family.
type Kind string

const (
	KindDrugbox Kind = "drugbox"
	KindChembox Kind = "chembox"
)

// Data is the metadata an infobox draws from.  Only IUPACName or SMILES is
// required; empty optional fields are omitted from the markup.
type Data struct {
	Name             string
	IUPACName        string
	CID              int64
	SMILES           string
	InChI            string
	InChIKey         string
	MolecularFormula string
	MolecularWeight  float64
	Synonyms         []string
	CASNumber        string
	ImageFilename    string
}

// PrimaryName picks the display name: common name first, IUPAC as fallback.
func (d Data) PrimaryName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.IUPACName
}

// Image returns the image filename with the conventional placeholder.
func (d Data) Image() string {
	if d.ImageFilename != "" {
		return d.ImageFilename
	}
	return "Example.png"
}

// SynonymLine joins up to three synonyms, matching Wikipedia convention of
// not flooding the box.
func (d Data) SynonymLine() string {
	n := len(d.Synonyms)
	if n > 3 {
		n = 3
	}
	return strings.Join(d.Synonyms[:n], "; ")
}

const drugboxTemplate = `{{"{{"}}Drugbox
| Verifiedfields = changed
| Watchedfields = changed
| IUPAC_name = {{.IUPACName}}
| image = {{.Image}}
| alt = Chemical structure of {{.PrimaryName}}
| caption = Chemical structure
{{- if .CID}}
| PubChem = {{.CID}}{{end}}
{{- if .SynonymLine}}
| synonyms = {{.SynonymLine}}{{end}}
| chemical_formula = {{.MolecularFormula}}
{{- if .MolecularWeight}}
| molecular_weight = {{.MolecularWeight}} g/mol{{end}}
| SMILES = {{.SMILES}}
| StdInChI = {{.InChI}}
| StdInChIKey = {{.InChIKey}}
{{- if .CASNumber}}
| CAS_number = {{.CASNumber}}{{end}}
{{"}}"}}
`

const chemboxTemplate = `{{"{{"}}Chembox
| Verifiedfields = changed
| Watchedfields = changed
| Name = {{.PrimaryName}}
| ImageFile = {{.Image}}
| IUPACName = {{.IUPACName}}
{{- if .SynonymLine}}
| OtherNames = {{.SynonymLine}}{{end}}
|Section1={{"{{"}}Chembox Identifiers
{{- if .CASNumber}}
| CASNo = {{.CASNumber}}{{end}}
{{- if .CID}}
| PubChem = {{.CID}}{{end}}
| SMILES = {{.SMILES}}
| StdInChI = {{.InChI}}
| StdInChIKey = {{.InChIKey}}
{{"}}"}}
|Section2={{"{{"}}Chembox Properties
| Formula = {{.MolecularFormula}}
{{- if .MolecularWeight}}
| MolarMass = {{.MolecularWeight}} g/mol{{end}}
{{"}}"}}
{{"}}"}}
`

var templates = template.Must(template.New("drugbox").Parse(drugboxTemplate))

func init() {
	template.Must(templates.New("chembox").Parse(chemboxTemplate))
}

// Generate renders the infobox markup for kind.
func Generate(kind Kind, data Data) (string, error) {
	if data.IUPACName == "" && data.SMILES == "" {
		return "", errors.New(errors.ErrCodeInfoboxDataMissing,
			"infobox needs at least an IUPAC name or SMILES")
	}

	var name string
	switch kind {
	case KindDrugbox, "":
		name = "drugbox"
	case KindChembox:
		name = "chembox"
	default:
		return "", errors.New(errors.ErrCodeInfoboxRenderFailed, "unknown infobox kind").
			WithDetail("kind=" + string(kind))
	}

	var sb strings.Builder
	if err := templates.ExecuteTemplate(&sb, name, data); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInfoboxRenderFailed, "infobox template failed")
	}
	return sb.String(), nil
}
