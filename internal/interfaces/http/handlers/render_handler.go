package handlers

import (
	"encoding/base64"
	"net/http"

	"github.com/wikimol/wikimolgen/internal/application/render"
	"github.com/wikimol/wikimolgen/internal/infrastructure/monitoring/logging"
)

// RenderHandler exposes the 2D and 3D depiction pipelines.
type RenderHandler struct {
	svc    render.Service
	logger logging.Logger
}

// NewRenderHandler creates a RenderHandler.
func NewRenderHandler(svc render.Service, logger logging.Logger) *RenderHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &RenderHandler{svc: svc, logger: logger.Named("http.render")}
}

// RenderResponse is the JSON shape of a finished depiction. The image rides
// along base64-encoded; clients that asked for storage get the artifact key
// and, on backends that support it, a presigned URL instead of re-downloading.
type RenderResponse struct {
	JobID       string              `json:"job_id"`
	CID         int64               `json:"cid"`
	Name        string              `json:"name"`
	Mode        string              `json:"mode"`
	Style       string              `json:"style"`
	PNGBase64   string              `json:"png_base64,omitempty"`
	ArtifactKey string              `json:"artifact_key,omitempty"`
	URL         string              `json:"url,omitempty"`
	Orientation *render.Orientation `json:"orientation,omitempty"`
}

func toRenderResponse(res *render.Result, includeImage bool) RenderResponse {
	out := RenderResponse{
		JobID:       res.JobID,
		CID:         res.CID,
		Name:        res.Name,
		Mode:        res.Mode,
		Style:       res.Style,
		ArtifactKey: res.ArtifactKey,
		URL:         res.URL,
		Orientation: res.Orientation,
	}
	if includeImage {
		out.PNGBase64 = base64.StdEncoding.EncodeToString(res.PNG)
	}
	return out
}

// wantsRawPNG reports whether the client asked for the image itself rather
// than the JSON envelope.
func wantsRawPNG(r *http.Request) bool {
	if r.URL.Query().Get("format") == "png" {
		return true
	}
	return r.Header.Get("Accept") == "image/png"
}

func (h *RenderHandler) respond(w http.ResponseWriter, r *http.Request, res *render.Result) {
	if wantsRawPNG(r) {
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(res.PNG)
		return
	}
	writeJSON(w, http.StatusOK, toRenderResponse(res, true))
}

// Render2D handles POST /api/v1/render/2d.
func (h *RenderHandler) Render2D(w http.ResponseWriter, r *http.Request) {
	var req render.Render2DRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, err)
		return
	}

	res, err := h.svc.Render2D(r.Context(), req)
	if err != nil {
		h.logger.Warn("2d render failed",
			logging.String("identifier", req.Identifier), logging.Err(err))
		writeAppError(w, err)
		return
	}
	h.respond(w, r, res)
}

// Render3D handles POST /api/v1/render/3d.
func (h *RenderHandler) Render3D(w http.ResponseWriter, r *http.Request) {
	var req render.Render3DRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, err)
		return
	}

	res, err := h.svc.Render3D(r.Context(), req)
	if err != nil {
		h.logger.Warn("3d render failed",
			logging.String("identifier", req.Identifier), logging.Err(err))
		writeAppError(w, err)
		return
	}
	h.respond(w, r, res)
}
