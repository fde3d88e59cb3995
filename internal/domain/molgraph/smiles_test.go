package molgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wikimol/wikimolgen/pkg/errors"
)

func TestValidateSMILES(t *testing.T) {
	tests := []struct {
		name    string
		smiles  string
		wantErr bool
	}{
		{"ethanol", "CCO", false},
		{"benzene aromatic", "c1ccccc1", false},
		{"phenethylamine", "c1ccccc1CCN", false},
		{"charged", "[NH4+]", false},
		{"stereo", "C[C@H](N)C(=O)O", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"invalid characters", "CC O!", true},
		{"unclosed paren", "CC(C", true},
		{"unmatched bracket", "C]C", true},
		{"crossed brackets", "C([N)]", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSMILES(tt.smiles)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidSMILES))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClassifyIdentifier(t *testing.T) {
	tests := []struct {
		input string
		want  IdentifierKind
	}{
		{"241", IdentifierCID},
		{"  702  ", IdentifierCID},
		{"c1ccccc1CCN", IdentifierSMILES},
		{"CC(=O)Oc1ccccc1C(=O)O", IdentifierSMILES},
		{"aspirin", IdentifierName},
		{"2-phenylethylamine", IdentifierName},
		{"caffeine", IdentifierName},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyIdentifier(tt.input))
		})
	}
}

func TestIdentifierKindString(t *testing.T) {
	assert.Equal(t, "cid", IdentifierCID.String())
	assert.Equal(t, "smiles", IdentifierSMILES.String())
	assert.Equal(t, "name", IdentifierName.String())
	assert.Equal(t, "unknown", IdentifierKind(42).String())
}
