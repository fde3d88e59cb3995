package rendering

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"sort"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/wikimol/wikimolgen/internal/config"
	"github.com/wikimol/wikimolgen/internal/domain/molgraph"
	"github.com/wikimol/wikimolgen/internal/domain/orient"
	"github.com/wikimol/wikimolgen/internal/rendering/style"
	"github.com/wikimol/wikimolgen/pkg/errors"
)

// Renderer3D projects a conformer to a stick-and-sphere PNG.  The camera is a
// fixed orthographic projection down the Z axis: callers shape the view by
// rotating coordinates first, which keeps the projection itself trivial and
// deterministic.
type Renderer3D struct {
	cfg config.Render3DConfig
}

func NewRenderer3D(cfg config.Render3DConfig) *Renderer3D {
	return &Renderer3D{cfg: cfg}
}

// View carries the orientation a 3D render applies before projecting.
type View struct {
	XDeg, YDeg, ZDeg float64
	ZoomBuffer       float64
}

// AutoView derives a View from the conformer's principal axes.
func AutoView(positions []molgraph.Vec3, opts orient.Options) View {
	x, y, z := orient.SpatialAlignmentAngles(positions, opts)
	return View{
		XDeg:       x,
		YDeg:       y,
		ZDeg:       z,
		ZoomBuffer: orient.ZoomBuffer(positions, opts),
	}
}

// Render rotates the conformer by the view angles, projects it, and draws
// depth-sorted sticks and spheres.
func (r *Renderer3D) Render(mol *molgraph.Molecule, positions []molgraph.Vec3, view View, sty style.Style) ([]byte, error) {
	if mol == nil || len(mol.Atoms) == 0 {
		return nil, errors.New(errors.ErrCodeRenderFailed, "nothing to render")
	}
	if len(positions) != len(mol.Atoms) {
		return nil, errors.New(errors.ErrCodeRenderFailed, "position count does not match atom count")
	}

	rotated := orient.ApplyEulerRotations(positions, view.XDeg, view.YDeg, view.ZDeg)

	minX, minY := math.MaxFloat64, math.MaxFloat64
	maxX, maxY := -math.MaxFloat64, -math.MaxFloat64
	for _, p := range rotated {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	buffer := view.ZoomBuffer
	if buffer <= 0 {
		buffer = 1.0
	}
	rangeX := maxX - minX + 2*buffer
	rangeY := maxY - minY + 2*buffer

	// Antialiasing is done by supersampling: draw at a multiple of the target
	// size, then downscale with a Catmull-Rom filter.
	ss := r.cfg.Antialias
	if ss < 0 {
		ss = 0
	}
	if ss > 4 {
		ss = 4
	}
	factor := ss + 1

	width, height := r.cfg.Width*factor, r.cfg.Height*factor
	scale := math.Min(float64(width)/rangeX, float64(height)/rangeY)

	// Center the projection on the canvas; image Y is flipped.
	offsetX := (float64(width) - (maxX-minX)*scale) / 2
	offsetY := (float64(height) - (maxY-minY)*scale) / 2
	project := func(p molgraph.Vec3) (float64, float64) {
		return offsetX + (p.X-minX)*scale, float64(height) - offsetY - (p.Y-minY)*scale
	}

	dc := gg.NewContext(width, height)
	if !sty.Transparent {
		dc.SetRGB(sty.Background.R, sty.Background.G, sty.Background.B)
		dc.Clear()
	}

	stickRadius := r.cfg.StickRadius * scale
	atomRadius := r.cfg.AtomRadius * scale
	if r.cfg.SphereScale > 0 {
		atomRadius *= r.cfg.SphereScale
	}

	// Lambert-ish shading without a real light: faces get ambient+direct,
	// sphere rims fall off to ambient, and a white cap stands in for the
	// specular term.  A config with no lighting set draws flat colors.
	lit := r.cfg.Ambient + r.cfg.Direct
	if lit <= 0 {
		lit = 1
	}
	if lit > 1 {
		lit = 1
	}
	rim := r.cfg.Ambient
	if rim <= 0 {
		rim = lit
	}

	// Painter's algorithm over bonds and atoms together so near geometry
	// occludes far geometry.
	type drawable struct {
		depth float64
		draw  func()
	}
	items := make([]drawable, 0, len(mol.Bonds)+len(mol.Atoms))

	for _, bond := range mol.Bonds {
		from, to := rotated[bond.From], rotated[bond.To]
		x1, y1 := project(from)
		x2, y2 := project(to)
		fc := sty.ElementColor(mol.Atoms[bond.From].Element)
		tc := sty.ElementColor(mol.Atoms[bond.To].Element)
		items = append(items, drawable{
			depth: (from.Z + to.Z) / 2,
			draw: func() {
				mx, my := (x1+x2)/2, (y1+y2)/2
				dc.SetLineWidth(stickRadius * 2)
				dc.SetLineCapRound()
				dc.SetRGB(fc.R*lit, fc.G*lit, fc.B*lit)
				dc.DrawLine(x1, y1, mx, my)
				dc.Stroke()
				dc.SetRGB(tc.R*lit, tc.G*lit, tc.B*lit)
				dc.DrawLine(mx, my, x2, y2)
				dc.Stroke()
			},
		})
	}

	for i, atom := range mol.Atoms {
		x, y := project(rotated[i])
		c := sty.ElementColor(atom.Element)
		radius := atomRadius
		if atom.Element == "H" {
			radius *= 0.6
		}
		items = append(items, drawable{
			depth: rotated[i].Z,
			draw: func() {
				hx, hy := x-radius/3, y-radius/3
				grad := gg.NewRadialGradient(hx, hy, 0, x, y, radius)
				grad.AddColorStop(0, rgb(c.R*lit, c.G*lit, c.B*lit))
				grad.AddColorStop(1, rgb(c.R*rim, c.G*rim, c.B*rim))
				dc.SetFillStyle(grad)
				dc.DrawCircle(x, y, radius)
				dc.Fill()
				if r.cfg.Specular > 0 {
					dc.SetRGBA(1, 1, 1, r.cfg.Specular)
					dc.DrawCircle(hx, hy, radius/4)
					dc.Fill()
				}
			},
		})
	}

	sort.SliceStable(items, func(a, b int) bool { return items[a].depth < items[b].depth })
	for _, item := range items {
		item.draw()
	}

	img := dc.Image()
	if factor > 1 {
		dst := image.NewRGBA(image.Rect(0, 0, r.cfg.Width, r.cfg.Height))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeRenderFailed, "failed to encode projection")
	}
	return buf.Bytes(), nil
}

// rgb converts unit-range components to an opaque color, clamping overshoot
// from the lighting math.
func rgb(r, g, b float64) color.RGBA {
	clamp := func(v float64) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return color.RGBA{R: clamp(r), G: clamp(g), B: clamp(b), A: 255}
}
