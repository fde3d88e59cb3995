// Package rendering draws molecule graphs to PNG: a 2D skeletal depiction
// renderer and a 3D stick-projection renderer.
package rendering

import (
	"bytes"
	"image/png"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/wikimol/wikimolgen/internal/config"
	"github.com/wikimol/wikimolgen/internal/domain/molgraph"
	"github.com/wikimol/wikimolgen/internal/rendering/style"
	"github.com/wikimol/wikimolgen/pkg/errors"
)

// labelFont draws atom labels.  Go Regular ships as bytes inside x/image, so
// no font file needs bundling and the derived label size actually takes
// effect instead of gg's fixed 13px fallback face.
var labelFont, _ = truetype.Parse(goregular.TTF)

// Renderer2D draws skeletal structure diagrams.
type Renderer2D struct {
	cfg config.Render2DConfig
}

func NewRenderer2D(cfg config.Render2DConfig) *Renderer2D {
	return &Renderer2D{cfg: cfg}
}

// Render draws mol at the given positions and returns PNG bytes.  Carbon
// atoms are drawn as bare vertices; heteroatoms get element labels with bond
// endpoints pulled back so lines never cross the text.
func (r *Renderer2D) Render(mol *molgraph.Molecule, positions []molgraph.Vec2, sty style.Style) ([]byte, error) {
	if mol == nil || len(mol.Atoms) == 0 {
		return nil, errors.New(errors.ErrCodeRenderFailed, "nothing to render")
	}
	if len(positions) != len(mol.Atoms) {
		return nil, errors.New(errors.ErrCodeRenderFailed, "position count does not match atom count")
	}

	minX, minY, maxX, maxY := bounds2(positions)
	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX <= 0 && rangeY <= 0 {
		// Single atom or fully degenerate layout: draw a unit cell around it.
		rangeX, rangeY = 1, 1
		minX -= 0.5
		minY -= 0.5
	}
	if rangeX <= 0 {
		rangeX = rangeY
	}
	if rangeY <= 0 {
		rangeY = rangeX
	}

	maxSide := float64(r.cfg.Width)
	if float64(r.cfg.Height) < maxSide {
		maxSide = float64(r.cfg.Height)
	}
	scale := math.Min(maxSide/rangeX, maxSide/rangeY) * r.cfg.Scale

	fontSize := r.cfg.FontSize
	if fontSize <= 0 {
		avgBond := avgBondLength2(mol, positions)
		fontSize = avgBond / 1.8 * scale
		if fontSize > maxSide/16 {
			fontSize = maxSide / 16
		}
	}

	margin := float64(r.cfg.Margin) + fontSize
	width := int(rangeX*scale + 2*margin)
	height := int(rangeY*scale + 2*margin)

	dc := gg.NewContext(width, height)
	if labelFont != nil {
		dc.SetFontFace(truetype.NewFace(labelFont, &truetype.Options{Size: fontSize}))
	}
	if !sty.Transparent {
		dc.SetRGB(sty.Background.R, sty.Background.G, sty.Background.B)
		dc.Clear()
	}

	lineWidth := r.cfg.LineWidth
	if lineWidth <= 0 {
		lineWidth = fontSize / 12
	}
	dc.SetLineWidth(lineWidth)

	// Canvas transform: molfile Y grows up, image Y grows down.
	toCanvas := func(p molgraph.Vec2) (float64, float64) {
		return margin + scale*(p.X-minX), float64(height) - margin - scale*(p.Y-minY)
	}

	// Pass 1: labels and their bond-clearance padding.
	pad := make([]labelPad, len(mol.Atoms))
	for i, atom := range mol.Atoms {
		if atom.Element == "C" && atom.Charge == 0 {
			continue
		}
		label := atomLabel(atom)
		x, y := toCanvas(positions[i])
		w, _ := dc.MeasureString(label)
		pad[i] = labelPad{left: w / 2, right: w / 2, top: fontSize / 2, bottom: fontSize / 2}

		c := sty.ElementColor(atom.Element)
		dc.SetRGB(c.R, c.G, c.B)
		dc.DrawStringAnchored(label, x, y, 0.5, 0.5)
	}

	// Pass 2: bonds, endpoints confined outside label boxes.
	dc.SetRGB(sty.BondColor.R, sty.BondColor.G, sty.BondColor.B)
	for _, bond := range mol.Bonds {
		x1, y1 := toCanvas(positions[bond.From])
		x2, y2 := toCanvas(positions[bond.To])
		p1 := confineEndpoint(x1, y1, x2, y2, pad[bond.From])
		p2 := confineEndpoint(x2, y2, x1, y1, pad[bond.To])

		rad := math.Atan2(y2-y1, x2-x1)
		offset := fontSize / 6
		dxOff := math.Sin(rad) * offset
		dyOff := -math.Cos(rad) * offset

		switch bond.Order {
		case molgraph.BondDouble:
			dc.DrawLine(p1.x+dxOff/2, p1.y+dyOff/2, p2.x+dxOff/2, p2.y+dyOff/2)
			dc.DrawLine(p1.x-dxOff/2, p1.y-dyOff/2, p2.x-dxOff/2, p2.y-dyOff/2)
		case molgraph.BondTriple:
			dc.DrawLine(p1.x, p1.y, p2.x, p2.y)
			dc.DrawLine(p1.x+dxOff, p1.y+dyOff, p2.x+dxOff, p2.y+dyOff)
			dc.DrawLine(p1.x-dxOff, p1.y-dyOff, p2.x-dxOff, p2.y-dyOff)
		default:
			dc.DrawLine(p1.x, p1.y, p2.x, p2.y)
		}
		dc.Stroke()
	}

	img := dc.Image()
	if r.cfg.Margin >= 0 {
		img = AutoCrop(img, r.cfg.Margin, sty)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeRenderFailed, "failed to encode depiction")
	}
	return buf.Bytes(), nil
}

type labelPad struct {
	left, right, top, bottom float64
}

type point struct{ x, y float64 }

// atomLabel renders an element symbol with its formal charge suffix.
func atomLabel(atom molgraph.Atom) string {
	label := atom.Element
	switch {
	case atom.Charge == 1:
		label += "+"
	case atom.Charge == -1:
		label += "-"
	case atom.Charge > 1:
		label += "+" + string(rune('0'+atom.Charge))
	case atom.Charge < -1:
		label += "-" + string(rune('0'-atom.Charge))
	}
	return label
}

// confineEndpoint pulls a bond endpoint out of the label box at (x, y) toward
// (x2, y2).
func confineEndpoint(x, y, x2, y2 float64, pad labelPad) point {
	w := pad.right
	if x2 <= x {
		w = pad.left
	}
	h := pad.top
	if y2 < y {
		h = pad.bottom
	}
	if w == 0 && h == 0 {
		return point{x, y}
	}
	k := math.Atan2(h, w)
	sigX := math.Copysign(1, x2-x)
	sigY := math.Copysign(1, y2-y)
	absRad := math.Atan2(math.Abs(y2-y), math.Abs(x2-x))
	if absRad > k {
		return point{x: x + sigX*h/math.Tan(absRad), y: y + sigY*h}
	}
	return point{x: x + sigX*w, y: y + sigY*w*math.Tan(absRad)}
}

// avgBondLength2 measures mean bond length in the supplied layout, which may
// differ from the coordinates stored on the molecule after reorientation.
func avgBondLength2(mol *molgraph.Molecule, positions []molgraph.Vec2) float64 {
	if len(mol.Bonds) == 0 {
		return 1
	}
	var sum float64
	n := 0
	for _, b := range mol.Bonds {
		if b.From < 0 || b.From >= len(positions) || b.To < 0 || b.To >= len(positions) {
			continue
		}
		sum += math.Hypot(positions[b.From].X-positions[b.To].X, positions[b.From].Y-positions[b.To].Y)
		n++
	}
	if n == 0 {
		return 1
	}
	return sum / float64(n)
}

func bounds2(positions []molgraph.Vec2) (minX, minY, maxX, maxY float64) {
	minX, minY = math.MaxFloat64, math.MaxFloat64
	maxX, maxY = -math.MaxFloat64, -math.MaxFloat64
	for _, p := range positions {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return minX, minY, maxX, maxY
}
