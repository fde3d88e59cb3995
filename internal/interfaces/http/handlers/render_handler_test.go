package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wikimol/wikimolgen/internal/application/render"
	"github.com/wikimol/wikimolgen/pkg/errors"
)

type fakeRenderService struct {
	result *render.Result
	err    error

	last2D render.Render2DRequest
	last3D render.Render3DRequest
}

func (f *fakeRenderService) Render2D(_ context.Context, req render.Render2DRequest) (*render.Result, error) {
	f.last2D = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeRenderService) Render3D(_ context.Context, req render.Render3DRequest) (*render.Result, error) {
	f.last3D = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeRenderService) Orient(_ context.Context, _ render.OrientRequest) (*render.OrientResult, error) {
	return nil, errors.New(errors.ErrCodeInternal, "not used over http")
}

func sampleResult() *render.Result {
	return &render.Result{
		JobID: "job-1",
		CID:   2244,
		Name:  "aspirin",
		Mode:  "2d",
		Style: "wikipedia-bw",
		PNG:   []byte("png-bytes"),
	}
}

func postJSON(t *testing.T, h http.HandlerFunc, body string, query string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/render"+query, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestRenderHandler_Render2D(t *testing.T) {
	fake := &fakeRenderService{result: sampleResult()}
	h := NewRenderHandler(fake, nil)

	rec := postJSON(t, h.Render2D, `{"identifier":"aspirin","style":"dark"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp RenderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "job-1", resp.JobID)
	assert.Equal(t, int64(2244), resp.CID)

	decoded, err := base64.StdEncoding.DecodeString(resp.PNGBase64)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), decoded)

	assert.Equal(t, "aspirin", fake.last2D.Identifier)
	assert.Equal(t, "dark", fake.last2D.Style)
}

func TestRenderHandler_Render2D_RawPNG(t *testing.T) {
	h := NewRenderHandler(&fakeRenderService{result: sampleResult()}, nil)

	rec := postJSON(t, h.Render2D, `{"identifier":"aspirin"}`, "?format=png")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, []byte("png-bytes"), rec.Body.Bytes())
}

func TestRenderHandler_Render2D_BadJSON(t *testing.T) {
	h := NewRenderHandler(&fakeRenderService{result: sampleResult()}, nil)

	rec := postJSON(t, h.Render2D, `{"identifier": `, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRenderHandler_Render2D_UnknownField(t *testing.T) {
	h := NewRenderHandler(&fakeRenderService{result: sampleResult()}, nil)

	rec := postJSON(t, h.Render2D, `{"identifier":"x","rotate":90}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRenderHandler_NotFoundMapsTo404(t *testing.T) {
	h := NewRenderHandler(&fakeRenderService{
		err: errors.New(errors.ErrCodeCompoundNotFound, "no such compound"),
	}, nil)

	rec := postJSON(t, h.Render2D, `{"identifier":"unobtainium"}`, "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "RES_001", resp.Code)
}

func TestRenderHandler_InternalErrorIsMasked(t *testing.T) {
	h := NewRenderHandler(&fakeRenderService{
		err: errors.New(errors.ErrCodeRenderFailed, "gg blew up: secret path /srv/fonts"),
	}, nil)

	rec := postJSON(t, h.Render2D, `{"identifier":"aspirin"}`, "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "internal server error", resp.Message)
	assert.NotContains(t, rec.Body.String(), "secret path")
}

func TestRenderHandler_Render3D(t *testing.T) {
	res := sampleResult()
	res.Mode = "3d"
	res.Orientation = &render.Orientation{XDeg: 10, YDeg: 20, ZoomBuffer: 1.5}
	fake := &fakeRenderService{result: res}
	h := NewRenderHandler(fake, nil)

	rec := postJSON(t, h.Render3D, `{"identifier":"2244","x_deg":15}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp RenderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "3d", resp.Mode)
	require.NotNil(t, resp.Orientation)
	assert.Equal(t, 1.5, resp.Orientation.ZoomBuffer)
	assert.Equal(t, 15.0, fake.last3D.XDeg)
}
