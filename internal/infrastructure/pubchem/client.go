// Package pubchem implements the structure resolver on the PubChem PUG REST
// API: identifier resolution (CID, compound name, SMILES), compound property
// lookup, and SDF record retrieval for 2D and 3D geometry.
package pubchem

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/wikimol/wikimolgen/internal/config"
	"github.com/wikimol/wikimolgen/internal/domain/molgraph"
	"github.com/wikimol/wikimolgen/internal/infrastructure/monitoring/logging"
	"github.com/wikimol/wikimolgen/pkg/errors"
)

// RecordType selects which geometry record an SDF fetch returns.
type RecordType string

const (
	Record2D RecordType = "2d"
	Record3D RecordType = "3d"
)

// Compound is the resolver's output: identity plus the metadata the infobox
// generator consumes.
type Compound struct {
	CID              int64   `json:"cid"`
	Name             string  `json:"name"`
	IUPACName        string  `json:"iupac_name,omitempty"`
	CanonicalSMILES  string  `json:"canonical_smiles"`
	MolecularFormula string  `json:"molecular_formula,omitempty"`
	MolecularWeight  float64 `json:"molecular_weight,omitempty"`
	InChI            string  `json:"inchi,omitempty"`
	InChIKey         string  `json:"inchi_key,omitempty"`
}

// compoundProperties is the set requested from the property endpoint.
const compoundProperties = "IUPACName,CanonicalSMILES,MolecularFormula,MolecularWeight,InChI,InChIKey"

// Client talks to the PUG REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	maxRetries int
	backoff    time.Duration
	logger     logging.Logger
}

// NewClient builds a resolver client from configuration.
func NewClient(cfg config.ResolverConfig, log logging.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		userAgent:  cfg.UserAgent,
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.RetryBackoff,
		logger:     log.Named("pubchem"),
	}
}

// Resolve interprets an identifier by trying, in order: PubChem CID when the
// string is numeric, compound-name lookup, and finally the string as a raw
// SMILES.  The ladder means a wrong guess costs a lookup, not a failure; when
// every rung misses the error is a catchable not-found, never a nil result.
func (c *Client) Resolve(ctx context.Context, identifier string) (*Compound, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, errors.InvalidParam("identifier cannot be empty")
	}

	if cid, err := strconv.ParseInt(identifier, 10, 64); err == nil {
		// Numeric identifiers are CIDs; a miss here is terminal, matching the
		// "digits are never a name" convention.
		return c.ResolveCID(ctx, cid)
	}

	if com, err := c.ResolveName(ctx, identifier); err == nil {
		return com, nil
	} else if !errors.IsNotFound(err) {
		return nil, err
	}

	if molgraph.ValidateSMILES(identifier) == nil {
		if com, err := c.ResolveSMILES(ctx, identifier); err == nil {
			return com, nil
		} else if !errors.IsNotFound(err) && !errors.IsCode(err, errors.ErrCodeInvalidSMILES) {
			return nil, err
		}
	}

	return nil, errors.New(errors.ErrCodeCompoundNotFound,
		"identifier is not a known CID, compound name, or valid SMILES").
		WithDetail(fmt.Sprintf("identifier=%s", identifier))
}

// ResolveCID fetches compound properties for a PubChem CID.
func (c *Client) ResolveCID(ctx context.Context, cid int64) (*Compound, error) {
	path := fmt.Sprintf("/compound/cid/%d/property/%s/JSON", cid, compoundProperties)
	com, err := c.fetchProperties(ctx, path)
	if err != nil {
		return nil, err
	}
	if com.Name == "" {
		com.Name = fmt.Sprintf("CID_%d", cid)
	}
	return com, nil
}

// ResolveName fetches compound properties by compound name.
func (c *Client) ResolveName(ctx context.Context, name string) (*Compound, error) {
	path := fmt.Sprintf("/compound/name/%s/property/%s/JSON", url.PathEscape(name), compoundProperties)
	com, err := c.fetchProperties(ctx, path)
	if err != nil {
		return nil, err
	}
	if com.IUPACName == "" {
		com.Name = name
	}
	return com, nil
}

// ResolveSMILES canonicalizes a raw SMILES through PubChem.  Notation the
// server rejects surfaces as an invalid-SMILES error, distinct from
// not-found.
func (c *Client) ResolveSMILES(ctx context.Context, smiles string) (*Compound, error) {
	if err := molgraph.ValidateSMILES(smiles); err != nil {
		return nil, err
	}
	path := fmt.Sprintf("/compound/smiles/%s/property/%s/JSON", url.PathEscape(smiles), compoundProperties)
	com, err := c.fetchProperties(ctx, path)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.New(errors.ErrCodeInvalidSMILES, "SMILES not accepted by resolver").
				WithDetail(fmt.Sprintf("smiles=%s", smiles))
		}
		return nil, err
	}
	if com.Name == "" {
		com.Name = "custom_smiles"
	}
	return com, nil
}

// FetchSDF retrieves the SDF record for a CID.  Requesting the 3D record for
// a compound without a computed conformer yields a record-unavailable error
// the render pipeline treats as "fall back to 2D".
func (c *Client) FetchSDF(ctx context.Context, cid int64, record RecordType) (string, error) {
	path := fmt.Sprintf("/compound/cid/%d/SDF?record_type=%s", cid, record)
	body, status, err := c.do(ctx, path)
	if err != nil {
		return "", err
	}
	switch {
	case status == http.StatusOK:
		return string(body), nil
	case status == http.StatusNotFound:
		return "", errors.New(errors.ErrCodeRecordUnavailable, "no such structure record").
			WithDetail(fmt.Sprintf("cid=%d record_type=%s", cid, record))
	default:
		return "", errors.New(errors.ErrCodeResolverUnavailable, "unexpected resolver response").
			WithDetail(fmt.Sprintf("status=%d", status))
	}
}

// propertyTableResponse mirrors the PUG REST property envelope.
type propertyTableResponse struct {
	PropertyTable struct {
		Properties []struct {
			CID              int64   `json:"CID"`
			IUPACName        string  `json:"IUPACName"`
			CanonicalSMILES  string  `json:"CanonicalSMILES"`
			MolecularFormula string  `json:"MolecularFormula"`
			MolecularWeight  float64 `json:"MolecularWeight,string"`
			InChI            string  `json:"InChI"`
			InChIKey         string  `json:"InChIKey"`
		} `json:"Properties"`
	} `json:"PropertyTable"`
}

func (c *Client) fetchProperties(ctx context.Context, path string) (*Compound, error) {
	body, status, err := c.do(ctx, path)
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusOK:
	case status == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeCompoundNotFound, "compound not found")
	case status == http.StatusBadRequest:
		return nil, errors.New(errors.ErrCodeAmbiguousNotation, "resolver rejected identifier")
	default:
		return nil, errors.New(errors.ErrCodeResolverUnavailable, "unexpected resolver response").
			WithDetail(fmt.Sprintf("status=%d", status))
	}

	var resp propertyTableResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeResolverUnavailable, "malformed resolver response")
	}
	props := resp.PropertyTable.Properties
	if len(props) == 0 {
		return nil, errors.New(errors.ErrCodeCompoundNotFound, "resolver returned no properties")
	}

	p := props[0]
	return &Compound{
		CID:              p.CID,
		Name:             p.IUPACName,
		IUPACName:        p.IUPACName,
		CanonicalSMILES:  p.CanonicalSMILES,
		MolecularFormula: p.MolecularFormula,
		MolecularWeight:  p.MolecularWeight,
		InChI:            p.InChI,
		InChIKey:         p.InChIKey,
	}, nil
}

// do issues a GET with retry on transport errors and 5xx responses.
func (c *Client) do(ctx context.Context, path string) (body []byte, status int, err error) {
	u := c.baseURL + path

	for attempt := 0; ; attempt++ {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if reqErr != nil {
			return nil, 0, errors.Wrap(reqErr, errors.ErrCodeInternal, "failed to build resolver request")
		}
		if c.userAgent != "" {
			req.Header.Set("User-Agent", c.userAgent)
		}

		resp, doErr := c.httpClient.Do(req)
		if doErr == nil {
			body, err = io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				return nil, 0, errors.Wrap(err, errors.ErrCodeResolverUnavailable, "failed to read resolver response")
			}
			if resp.StatusCode < 500 {
				return body, resp.StatusCode, nil
			}
			c.logger.Warn("resolver returned server error",
				logging.String("url", u),
				logging.Int("status", resp.StatusCode),
				logging.Int("attempt", attempt+1))
		} else {
			c.logger.Warn("resolver request failed",
				logging.String("url", u),
				logging.Int("attempt", attempt+1),
				logging.Err(doErr))
		}

		if attempt >= c.maxRetries {
			if doErr != nil {
				return nil, 0, errors.Wrap(doErr, errors.ErrCodeResolverUnavailable, "resolver unreachable")
			}
			return nil, 0, errors.New(errors.ErrCodeResolverUnavailable, "resolver kept failing").
				WithDetail(fmt.Sprintf("attempts=%d", attempt+1))
		}

		select {
		case <-ctx.Done():
			return nil, 0, errors.Wrap(ctx.Err(), errors.ErrCodeTimeout, "resolver request cancelled")
		case <-time.After(c.backoff * time.Duration(attempt+1)):
		}
	}
}
