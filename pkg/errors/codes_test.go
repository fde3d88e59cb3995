package errors_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wikimol/wikimolgen/pkg/errors"
)

func TestHTTPStatusForCode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		code errors.ErrorCode
		want int
	}{
		{"compound not found", errors.ErrCodeCompoundNotFound, http.StatusNotFound},
		{"invalid smiles", errors.ErrCodeInvalidSMILES, http.StatusBadRequest},
		{"resolver unavailable", errors.ErrCodeResolverUnavailable, http.StatusServiceUnavailable},
		{"no coordinates", errors.ErrCodeNoCoordinates, http.StatusUnprocessableEntity},
		{"render failed", errors.ErrCodeRenderFailed, http.StatusInternalServerError},
		{"unmapped code", errors.ErrorCode("BOGUS_999"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, errors.HTTPStatusForCode(tc.code))
		})
	}
}

func TestDefaultMessageForCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "compound not found", errors.DefaultMessageForCode(errors.ErrCodeCompoundNotFound))
	assert.Equal(t, "unknown error", errors.DefaultMessageForCode(errors.ErrorCode("BOGUS_999")))
}

func TestClientServerErrorClassification(t *testing.T) {
	t.Parallel()

	assert.True(t, errors.IsClientError(errors.ErrCodeInvalidSMILES))
	assert.False(t, errors.IsServerError(errors.ErrCodeInvalidSMILES))
	assert.True(t, errors.IsServerError(errors.ErrCodeRenderFailed))
	assert.False(t, errors.IsClientError(errors.ErrCodeRenderFailed))
}

func TestModuleForCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "RES", errors.ModuleForCode(errors.ErrCodeCompoundNotFound))
	assert.Equal(t, "GEO", errors.ModuleForCode(errors.ErrCodeNoCoordinates))
	assert.Equal(t, "RND", errors.ModuleForCode(errors.ErrCodeRenderFailed))
	assert.Equal(t, "COMMON", errors.ModuleForCode(errors.CodeInternal))
}
