package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wikimol/wikimolgen/internal/application/compound"
	"github.com/wikimol/wikimolgen/internal/domain/infobox"
	"github.com/wikimol/wikimolgen/internal/infrastructure/monitoring/logging"
)

// CompoundHandler exposes compound metadata and infobox generation.
type CompoundHandler struct {
	svc    compound.Service
	logger logging.Logger
}

// NewCompoundHandler creates a CompoundHandler.
func NewCompoundHandler(svc compound.Service, logger logging.Logger) *CompoundHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &CompoundHandler{svc: svc, logger: logger.Named("http.compound")}
}

// Get handles GET /api/v1/compounds/{identifier}.
func (h *CompoundHandler) Get(w http.ResponseWriter, r *http.Request) {
	identifier := chi.URLParam(r, "identifier")

	c, err := h.svc.Get(r.Context(), identifier)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Infobox handles GET /api/v1/compounds/{identifier}/infobox. The box kind
// and image filename come from query parameters.
func (h *CompoundHandler) Infobox(w http.ResponseWriter, r *http.Request) {
	req := compound.InfoboxRequest{
		Identifier:    chi.URLParam(r, "identifier"),
		Kind:          infobox.Kind(r.URL.Query().Get("kind")),
		ImageFilename: r.URL.Query().Get("image"),
	}

	res, err := h.svc.Infobox(r.Context(), req)
	if err != nil {
		writeAppError(w, err)
		return
	}

	// text/plain by request, JSON envelope otherwise.
	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(res.Wikitext))
		return
	}
	writeJSON(w, http.StatusOK, res)
}
