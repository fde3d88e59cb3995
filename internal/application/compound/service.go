// Package compound exposes the compound-lookup and infobox application
// services: thin orchestration between the PubChem resolver and the wiki
// markup generator.
package compound

import (
	"context"
	"strings"
	"time"

	"github.com/wikimol/wikimolgen/internal/domain/infobox"
	"github.com/wikimol/wikimolgen/internal/domain/molgraph"
	"github.com/wikimol/wikimolgen/internal/infrastructure/monitoring/logging"
	"github.com/wikimol/wikimolgen/internal/infrastructure/monitoring/prometheus"
	"github.com/wikimol/wikimolgen/internal/infrastructure/pubchem"
	"github.com/wikimol/wikimolgen/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Service interface
// ─────────────────────────────────────────────────────────────────────────────

// Service resolves compound identifiers to metadata and infobox wikitext.
type Service interface {
	// Get resolves a CID, name, or SMILES identifier to compound metadata.
	Get(ctx context.Context, identifier string) (*pubchem.Compound, error)

	// Infobox resolves the identifier and renders infobox wikitext from the
	// compound's metadata.
	Infobox(ctx context.Context, req InfoboxRequest) (*InfoboxResult, error)
}

// InfoboxRequest carries the parameters for an infobox generation.
type InfoboxRequest struct {
	Identifier    string       `json:"identifier"`
	Kind          infobox.Kind `json:"kind,omitempty"`
	ImageFilename string       `json:"image_filename,omitempty"`
}

// Validate checks the request before any network work happens.
func (r *InfoboxRequest) Validate() error {
	if strings.TrimSpace(r.Identifier) == "" {
		return errors.InvalidParam("identifier is required")
	}
	switch r.Kind {
	case "", infobox.KindDrugbox, infobox.KindChembox:
	default:
		return errors.InvalidParam("kind must be drugbox or chembox")
	}
	return nil
}

// InfoboxResult is the generated markup plus the compound it was built from.
type InfoboxResult struct {
	CID      int64        `json:"cid"`
	Name     string       `json:"name"`
	Kind     infobox.Kind `json:"kind"`
	Wikitext string       `json:"wikitext"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Implementation
// ─────────────────────────────────────────────────────────────────────────────

type service struct {
	resolver pubchem.Resolver
	metrics  *prometheus.AppMetrics
	logger   logging.Logger
}

// NewService builds the compound service. metrics may be nil.
func NewService(resolver pubchem.Resolver, metrics *prometheus.AppMetrics, logger logging.Logger) Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &service{
		resolver: resolver,
		metrics:  metrics,
		logger:   logger.Named("compound"),
	}
}

func (s *service) Get(ctx context.Context, identifier string) (*pubchem.Compound, error) {
	if strings.TrimSpace(identifier) == "" {
		return nil, errors.InvalidParam("identifier is required")
	}

	kind := molgraph.ClassifyIdentifier(identifier).String()
	start := time.Now()
	c, err := s.resolver.Resolve(ctx, identifier)
	prometheus.RecordResolve(s.metrics, kind, err == nil, time.Since(start))
	if err != nil {
		prometheus.RecordError(s.metrics, "resolver", string(errors.GetCode(err)))
		return nil, err
	}

	s.logger.Debug("compound resolved",
		logging.String("identifier", identifier),
		logging.String("kind", kind),
		logging.Int("cid", int(c.CID)))
	return c, nil
}

func (s *service) Infobox(ctx context.Context, req InfoboxRequest) (*InfoboxResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.Get(ctx, req.Identifier)
	if err != nil {
		return nil, err
	}

	kind := req.Kind
	if kind == "" {
		kind = infobox.KindDrugbox
	}

	text, err := infobox.Generate(kind, infobox.Data{
		Name:             c.Name,
		IUPACName:        c.IUPACName,
		CID:              c.CID,
		SMILES:           c.CanonicalSMILES,
		InChI:            c.InChI,
		InChIKey:         c.InChIKey,
		MolecularFormula: c.MolecularFormula,
		MolecularWeight:  c.MolecularWeight,
		ImageFilename:    req.ImageFilename,
	})
	if err != nil {
		prometheus.RecordError(s.metrics, "infobox", string(errors.GetCode(err)))
		return nil, err
	}

	return &InfoboxResult{
		CID:      c.CID,
		Name:     c.Name,
		Kind:     kind,
		Wikitext: text,
	}, nil
}
