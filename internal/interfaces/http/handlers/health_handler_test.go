package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wikimol/wikimolgen/pkg/errors"
)

func TestHealthHandler_Liveness(t *testing.T) {
	h := NewHealthHandler("1.2.3", nil)

	rec := httptest.NewRecorder()
	h.Liveness(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp LivenessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alive", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
}

func TestHealthHandler_Readiness_NoCheckers(t *testing.T) {
	h := NewHealthHandler("dev", nil)

	rec := httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthHandler_Readiness_AllHealthy(t *testing.T) {
	h := NewHealthHandler("dev", nil,
		CheckerFunc{ComponentName: "cache", Fn: func(context.Context) error { return nil }},
		CheckerFunc{ComponentName: "storage", Fn: func(context.Context) error { return nil }},
	)

	rec := httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ready", resp.Status)
	assert.Equal(t, "healthy", resp.Components["cache"].Status)
	assert.Equal(t, "healthy", resp.Components["storage"].Status)
}

func TestHealthHandler_Readiness_Degraded(t *testing.T) {
	h := NewHealthHandler("dev", nil,
		CheckerFunc{ComponentName: "cache", Fn: func(context.Context) error { return nil }},
		CheckerFunc{ComponentName: "storage", Fn: func(context.Context) error {
			return errors.New(errors.ErrCodeStorageError, "bucket unreachable")
		}},
	)

	rec := httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "unhealthy", resp.Components["storage"].Status)
	assert.Contains(t, resp.Components["storage"].Error, "bucket unreachable")
}
