// Package render implements the 2D and 3D depiction pipelines: resolve the
// compound, fetch its structure record, canonicalize the orientation, draw a
// PNG, and optionally persist the artifact.
package render

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wikimol/wikimolgen/internal/config"
	"github.com/wikimol/wikimolgen/internal/domain/molgraph"
	"github.com/wikimol/wikimolgen/internal/domain/orient"
	"github.com/wikimol/wikimolgen/internal/infrastructure/monitoring/logging"
	"github.com/wikimol/wikimolgen/internal/infrastructure/monitoring/prometheus"
	"github.com/wikimol/wikimolgen/internal/infrastructure/pubchem"
	"github.com/wikimol/wikimolgen/internal/infrastructure/storage"
	"github.com/wikimol/wikimolgen/internal/rendering"
	"github.com/wikimol/wikimolgen/internal/rendering/style"
	"github.com/wikimol/wikimolgen/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Service interface and DTOs
// ─────────────────────────────────────────────────────────────────────────────

// Service runs the depiction pipelines end to end.
type Service interface {
	Render2D(ctx context.Context, req Render2DRequest) (*Result, error)
	Render3D(ctx context.Context, req Render3DRequest) (*Result, error)

	// Orient reports which canonicalization decision would apply to a
	// compound without rendering anything. Diagnostic surface for the CLI.
	Orient(ctx context.Context, req OrientRequest) (*OrientResult, error)
}

// Render2DRequest describes a 2D depiction job. Canonical orientation is
// applied unless SkipOrient is set; AngleDeg is an extra rotation applied on
// top of whatever orientation was chosen.
type Render2DRequest struct {
	Identifier string  `json:"identifier"`
	Style      string  `json:"style,omitempty"` // preset name or JSON file path
	AngleDeg   float64 `json:"angle_deg,omitempty"`
	SkipOrient bool    `json:"skip_orient,omitempty"`
	Store      bool    `json:"store,omitempty"`
}

// Validate checks the request before any network work happens.
func (r *Render2DRequest) Validate() error {
	if strings.TrimSpace(r.Identifier) == "" {
		return errors.InvalidParam("identifier is required")
	}
	if math.IsNaN(r.AngleDeg) || math.IsInf(r.AngleDeg, 0) {
		return errors.InvalidParam("angle_deg must be finite")
	}
	return nil
}

// Render3DRequest describes a 3D stick depiction job. With SkipOrient unset
// the view comes from principal-axis alignment and the X/Y/Z degrees are
// added as offsets; with SkipOrient set they are the whole view.
type Render3DRequest struct {
	Identifier string  `json:"identifier"`
	Style      string  `json:"style,omitempty"`
	XDeg       float64 `json:"x_deg,omitempty"`
	YDeg       float64 `json:"y_deg,omitempty"`
	ZDeg       float64 `json:"z_deg,omitempty"`
	SkipOrient bool    `json:"skip_orient,omitempty"`
	Store      bool    `json:"store,omitempty"`
}

// Validate checks the request before any network work happens.
func (r *Render3DRequest) Validate() error {
	if strings.TrimSpace(r.Identifier) == "" {
		return errors.InvalidParam("identifier is required")
	}
	for _, v := range []float64{r.XDeg, r.YDeg, r.ZDeg} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.InvalidParam("view angles must be finite")
		}
	}
	return nil
}

// Orientation records the decision the orientation engine made for a render.
type Orientation struct {
	Branch    string  `json:"branch,omitempty"`
	Succeeded bool    `json:"succeeded,omitempty"`
	AngleDeg  float64 `json:"angle_deg,omitempty"`

	// 3D view, populated by Render3D only.
	XDeg       float64 `json:"x_deg,omitempty"`
	YDeg       float64 `json:"y_deg,omitempty"`
	ZDeg       float64 `json:"z_deg,omitempty"`
	ZoomBuffer float64 `json:"zoom_buffer,omitempty"`
}

// Result is a finished depiction. PNG always holds the image bytes;
// ArtifactKey and URL are set only when the job asked for storage.
type Result struct {
	JobID       string       `json:"job_id"`
	CID         int64        `json:"cid"`
	Name        string       `json:"name"`
	Mode        string       `json:"mode"`
	Style       string       `json:"style"`
	PNG         []byte       `json:"-"`
	ArtifactKey string       `json:"artifact_key,omitempty"`
	URL         string       `json:"url,omitempty"`
	Orientation *Orientation `json:"orientation,omitempty"`
}

// OrientRequest asks for the orientation decision for a compound.
type OrientRequest struct {
	Identifier string             `json:"identifier"`
	Record     pubchem.RecordType `json:"record,omitempty"` // defaults to 2d
}

// Validate checks the request before any network work happens.
func (r *OrientRequest) Validate() error {
	if strings.TrimSpace(r.Identifier) == "" {
		return errors.InvalidParam("identifier is required")
	}
	switch r.Record {
	case "", pubchem.Record2D, pubchem.Record3D:
	default:
		return errors.InvalidParam("record must be 2d or 3d")
	}
	return nil
}

// OrientResult reports the orientation decision. The branch fields apply to
// 2D records, the view fields to 3D records.
type OrientResult struct {
	CID       int64   `json:"cid"`
	Record    string  `json:"record"`
	Branch    string  `json:"branch,omitempty"`
	Succeeded bool    `json:"succeeded,omitempty"`
	Pivot     int     `json:"pivot,omitempty"`
	Reference int     `json:"reference,omitempty"`
	AngleDeg  float64 `json:"angle_deg,omitempty"`

	XDeg        float64 `json:"x_deg,omitempty"`
	YDeg        float64 `json:"y_deg,omitempty"`
	ZDeg        float64 `json:"z_deg,omitempty"`
	ZoomBuffer  float64 `json:"zoom_buffer,omitempty"`
	AspectRatio float64 `json:"aspect_ratio,omitempty"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Implementation
// ─────────────────────────────────────────────────────────────────────────────

type service struct {
	resolver pubchem.Resolver
	store    storage.ArtifactStore // nil means render-only
	r2       *rendering.Renderer2D
	r3       *rendering.Renderer3D

	orientOpts orient.Options
	style2D    string
	style3D    string
	metrics    *prometheus.AppMetrics
	logger     logging.Logger
}

// NewService wires the depiction pipelines. store and metrics may be nil.
func NewService(
	cfg *config.Config,
	resolver pubchem.Resolver,
	store storage.ArtifactStore,
	metrics *prometheus.AppMetrics,
	logger logging.Logger,
) Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &service{
		resolver:   resolver,
		store:      store,
		r2:         rendering.NewRenderer2D(cfg.Render2D),
		r3:         rendering.NewRenderer3D(cfg.Render3D),
		orientOpts: orientOptions(cfg.Orientation),
		style2D:    cfg.Render2D.DefaultStyle,
		style3D:    cfg.Render3D.DefaultStyle,
		metrics:    metrics,
		logger:     logger.Named("render"),
	}
}

// orientOptions maps the configuration block onto the domain options,
// falling back to the built-in defaults for unset fields.  The angle fields
// are pointers so a configured 0° overrides the default rather than
// disappearing into the zero value.
func orientOptions(cfg config.OrientationConfig) orient.Options {
	opts := orient.DefaultOptions()
	if cfg.TargetAngleDeg != nil {
		opts.TargetAngleDeg = *cfg.TargetAngleDeg
	}
	if cfg.TiltXDeg != nil {
		opts.TiltXDeg = *cfg.TiltXDeg
	}
	if cfg.TiltYDeg != nil {
		opts.TiltYDeg = *cfg.TiltYDeg
	}
	if cfg.ZoomLargeExtent != 0 {
		opts.ZoomLargeExtent = cfg.ZoomLargeExtent
	}
	if cfg.ZoomMediumExtent != 0 {
		opts.ZoomMediumExtent = cfg.ZoomMediumExtent
	}
	if cfg.ZoomLargeBuffer != 0 {
		opts.ZoomLargeBuffer = cfg.ZoomLargeBuffer
	}
	if cfg.ZoomMediumBuffer != 0 {
		opts.ZoomMediumBuffer = cfg.ZoomMediumBuffer
	}
	if cfg.ZoomSmallBuffer != 0 {
		opts.ZoomSmallBuffer = cfg.ZoomSmallBuffer
	}
	return opts
}

func (s *service) Render2D(ctx context.Context, req Render2DRequest) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	styleName, sty, err := s.resolveStyle(req.Style, s.style2D)
	if err != nil {
		return nil, err
	}

	compound, mol, _, err := s.fetchMolecule(ctx, req.Identifier, pubchem.Record2D)
	if err != nil {
		return nil, err
	}

	pos := mol.Positions2D()
	var info *Orientation
	if !req.SkipOrient {
		var rep orient.Report
		pos, rep = orient.Canonicalize(mol, pos, s.orientOpts)
		prometheus.RecordOrientation(s.metrics, string(rep.Branch), rep.Succeeded)
		info = &Orientation{
			Branch:    string(rep.Branch),
			Succeeded: rep.Succeeded,
			AngleDeg:  rep.AngleDeg,
		}
	}
	if req.AngleDeg != 0 {
		pos = orient.Rotate2D(pos, req.AngleDeg*math.Pi/180)
	}

	start := time.Now()
	png, err := s.r2.Render(mol, pos, sty)
	prometheus.RecordRender(s.metrics, "2d", styleName, err == nil, time.Since(start), len(png))
	if err != nil {
		prometheus.RecordError(s.metrics, "render2d", string(errors.GetCode(err)))
		return nil, err
	}

	res := &Result{
		JobID:       uuid.NewString(),
		CID:         compound.CID,
		Name:        compound.Name,
		Mode:        "2d",
		Style:       styleName,
		PNG:         png,
		Orientation: info,
	}
	if err := s.persist(ctx, req.Store, res); err != nil {
		return nil, err
	}

	s.logger.Info("2d render complete",
		logging.Int("cid", int(compound.CID)),
		logging.String("style", styleName),
		logging.Int("bytes", len(png)))
	return res, nil
}

func (s *service) Render3D(ctx context.Context, req Render3DRequest) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	styleName, sty, err := s.resolveStyle(req.Style, s.style3D)
	if err != nil {
		return nil, err
	}

	compound, mol, _, err := s.fetchMolecule(ctx, req.Identifier, pubchem.Record3D)
	if err != nil {
		return nil, err
	}

	pos := mol.Positions3D()
	var view rendering.View
	if req.SkipOrient {
		view = rendering.View{
			XDeg:       req.XDeg,
			YDeg:       req.YDeg,
			ZDeg:       req.ZDeg,
			ZoomBuffer: orient.ZoomBuffer(pos, s.orientOpts),
		}
	} else {
		view = rendering.AutoView(pos, s.orientOpts)
		view.XDeg += req.XDeg
		view.YDeg += req.YDeg
		view.ZDeg += req.ZDeg
	}

	start := time.Now()
	png, err := s.r3.Render(mol, pos, view, sty)
	prometheus.RecordRender(s.metrics, "3d", styleName, err == nil, time.Since(start), len(png))
	if err != nil {
		prometheus.RecordError(s.metrics, "render3d", string(errors.GetCode(err)))
		return nil, err
	}

	res := &Result{
		JobID: uuid.NewString(),
		CID:   compound.CID,
		Name:  compound.Name,
		Mode:  "3d",
		Style: styleName,
		PNG:   png,
		Orientation: &Orientation{
			XDeg:       view.XDeg,
			YDeg:       view.YDeg,
			ZDeg:       view.ZDeg,
			ZoomBuffer: view.ZoomBuffer,
		},
	}
	if err := s.persist(ctx, req.Store, res); err != nil {
		return nil, err
	}

	s.logger.Info("3d render complete",
		logging.Int("cid", int(compound.CID)),
		logging.String("style", styleName),
		logging.Int("bytes", len(png)))
	return res, nil
}

func (s *service) Orient(ctx context.Context, req OrientRequest) (*OrientResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	record := req.Record
	if record == "" {
		record = pubchem.Record2D
	}

	// fetchMolecule may have served the 2D record when no 3D conformer
	// exists; the result must reflect the coordinates actually analyzed.
	compound, mol, record, err := s.fetchMolecule(ctx, req.Identifier, record)
	if err != nil {
		return nil, err
	}

	res := &OrientResult{CID: compound.CID, Record: string(record)}
	if record == pubchem.Record3D {
		pos := mol.Positions3D()
		res.XDeg, res.YDeg, res.ZDeg = orient.SpatialAlignmentAngles(pos, s.orientOpts)
		res.ZoomBuffer = orient.ZoomBuffer(pos, s.orientOpts)
		res.AspectRatio = orient.AspectRatio(pos)
		return res, nil
	}

	_, rep := orient.Canonicalize(mol, mol.Positions2D(), s.orientOpts)
	res.Branch = string(rep.Branch)
	res.Succeeded = rep.Succeeded
	res.Pivot = rep.Pivot
	res.Reference = rep.Reference
	res.AngleDeg = rep.AngleDeg
	return res, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Shared pipeline steps
// ─────────────────────────────────────────────────────────────────────────────

func (s *service) resolveStyle(requested, fallback string) (string, style.Style, error) {
	name := requested
	if name == "" {
		name = fallback
	}
	if name == "" {
		name = style.DefaultStyleName
	}
	sty, err := style.Resolve(name)
	if err != nil {
		return "", style.Style{}, err
	}
	return sty.Name, sty, nil
}

// fetchMolecule resolves the identifier and parses the requested structure
// record. A compound whose 3D conformer PubChem never computed falls back to
// the always-present 2D record rather than failing the render; the returned
// record type is the one actually fetched so callers can report it honestly.
func (s *service) fetchMolecule(ctx context.Context, identifier string, record pubchem.RecordType) (*pubchem.Compound, *molgraph.Molecule, pubchem.RecordType, error) {
	kind := molgraph.ClassifyIdentifier(identifier).String()
	start := time.Now()
	compound, err := s.resolver.Resolve(ctx, identifier)
	prometheus.RecordResolve(s.metrics, kind, err == nil, time.Since(start))
	if err != nil {
		prometheus.RecordError(s.metrics, "resolver", string(errors.GetCode(err)))
		return nil, nil, record, err
	}

	sdf, err := s.resolver.FetchSDF(ctx, compound.CID, record)
	if err != nil && record == pubchem.Record3D && errors.IsCode(err, errors.ErrCodeRecordUnavailable) {
		s.logger.Warn("3d record unavailable, falling back to 2d",
			logging.Int("cid", int(compound.CID)))
		record = pubchem.Record2D
		sdf, err = s.resolver.FetchSDF(ctx, compound.CID, record)
	}
	if err != nil {
		prometheus.RecordError(s.metrics, "resolver", string(errors.GetCode(err)))
		return nil, nil, record, err
	}

	mol, err := molgraph.ParseFirstSDFRecord(sdf)
	if err != nil {
		return nil, nil, record, errors.Wrap(err, errors.ErrCodeRenderFailed,
			fmt.Sprintf("structure record for CID %d could not be parsed", compound.CID))
	}
	return compound, mol, record, nil
}

// persist uploads the finished PNG when asked and a store is wired, filling
// in the artifact key and, where the backend supports it, a download URL.
func (s *service) persist(ctx context.Context, requested bool, res *Result) error {
	if !requested || s.store == nil {
		return nil
	}

	key := fmt.Sprintf("renders/%s/%d-%s.png", res.Mode, res.CID, res.Style)
	art, err := s.store.Put(ctx, key, res.PNG, storage.ContentTypePNG)
	if err != nil {
		if s.metrics != nil {
			s.metrics.ArtifactUploadsTotal.WithLabelValues("failure").Inc()
		}
		return err
	}
	if s.metrics != nil {
		s.metrics.ArtifactUploadsTotal.WithLabelValues("success").Inc()
		s.metrics.ArtifactUploadBytes.WithLabelValues().Observe(float64(art.Size))
	}

	res.ArtifactKey = art.Key
	url, err := s.store.PresignedURL(ctx, art.Key, 0)
	if err != nil {
		// The artifact is stored; a URL failure only degrades the response.
		s.logger.Warn("presigned url failed", logging.String("key", art.Key), logging.Err(err))
		return nil
	}
	res.URL = url
	return nil
}
