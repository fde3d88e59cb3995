// Package errors_test provides unit tests for the AppError type, factory
// functions, and error-chain helpers defined in pkg/errors/errors.go.
package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wikimol/wikimolgen/pkg/errors"
)

func TestNew_FieldsAreSetCorrectly(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		code    errors.ErrorCode
		message string
	}{
		{"internal error", errors.CodeInternal, "unexpected failure"},
		{"compound not found", errors.ErrCodeCompoundNotFound, "compound 'dopamina' not found"},
		{"invalid param", errors.CodeInvalidParam, "SMILES must not be empty"},
		{"no coordinates", errors.ErrCodeNoCoordinates, "2D layout has not run"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ae := errors.New(tc.code, tc.message)

			require.NotNil(t, ae)
			assert.Equal(t, tc.code, ae.Code)
			assert.Equal(t, tc.message, ae.Message)
			assert.Empty(t, ae.Detail, "Detail should be empty for bare New()")
			assert.Nil(t, ae.Cause, "Cause should be nil for bare New()")
		})
	}
}

func TestWrap_NilReturnsNil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, errors.Wrap(nil, errors.CodeInternal, "should be nil"))
}

func TestWrap_PreservesCauseAndChain(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("connection refused")
	ae := errors.Wrap(cause, errors.ErrCodeResolverUnavailable, "pubchem request failed")

	require.NotNil(t, ae)
	assert.Equal(t, errors.ErrCodeResolverUnavailable, ae.Code)
	assert.ErrorIs(t, ae, cause)
}

func TestWrap_UnknownCodeInheritsFromInnerAppError(t *testing.T) {
	t.Parallel()

	inner := errors.New(errors.ErrCodeCompoundNotFound, "not found")
	outer := errors.Wrap(inner, errors.CodeUnknown, "resolution failed")

	assert.Equal(t, errors.ErrCodeCompoundNotFound, outer.Code)
}

func TestError_Formatting(t *testing.T) {
	t.Parallel()

	ae := errors.New(errors.ErrCodeInvalidSMILES, "invalid SMILES notation")
	assert.Equal(t, "[RES_002] invalid SMILES notation", ae.Error())

	withDetail := ae.WithDetail("smiles=C1CC")
	assert.Equal(t, "[RES_002] invalid SMILES notation: smiles=C1CC", withDetail.Error())
	// WithDetail must not mutate the receiver.
	assert.Empty(t, ae.Detail)
}

func TestWithDetail_NilReceiver(t *testing.T) {
	t.Parallel()

	var ae *errors.AppError
	assert.Nil(t, ae.WithDetail("detail"))
}

func TestIsCode_TraversesChain(t *testing.T) {
	t.Parallel()

	inner := errors.New(errors.ErrCodeRecordUnavailable, "no 3D record")
	mid := fmt.Errorf("fetch sdf: %w", inner)
	outer := errors.Wrap(mid, errors.ErrCodeRenderFailed, "3D render failed")

	assert.True(t, errors.IsCode(outer, errors.ErrCodeRecordUnavailable))
	assert.True(t, errors.IsCode(outer, errors.ErrCodeRenderFailed))
	assert.False(t, errors.IsCode(outer, errors.ErrCodeCompoundNotFound))
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"generic not found", errors.NotFound("nope"), true},
		{"compound not found", errors.New(errors.ErrCodeCompoundNotFound, "x"), true},
		{"record unavailable", errors.New(errors.ErrCodeRecordUnavailable, "x"), true},
		{"template not found", errors.New(errors.ErrCodeTemplateNotFound, "x"), true},
		{"internal", errors.Internal("boom"), false},
		{"plain error", stderrors.New("plain"), false},
		{"nil", nil, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, errors.IsNotFound(tc.err))
		})
	}
}

func TestIsValidation(t *testing.T) {
	t.Parallel()

	assert.True(t, errors.IsValidation(errors.InvalidParam("bad")))
	assert.True(t, errors.IsValidation(errors.New(errors.ErrCodeInvalidSMILES, "bad smiles")))
	assert.True(t, errors.IsValidation(errors.New(errors.ErrCodeInvalidStyle, "bad style")))
	assert.False(t, errors.IsValidation(errors.Internal("boom")))
}

func TestGetCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
	assert.Equal(t, errors.CodeUnknown, errors.GetCode(stderrors.New("plain")))
	assert.Equal(t, errors.ErrCodeRenderFailed,
		errors.GetCode(errors.New(errors.ErrCodeRenderFailed, "x")))
}
