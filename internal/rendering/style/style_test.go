package style

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wikimol/wikimolgen/pkg/errors"
)

func TestGet_DefaultsToMonochrome(t *testing.T) {
	s, err := Get("")
	require.NoError(t, err)
	assert.Equal(t, "wikipedia-bw", s.Name)
	assert.True(t, s.Transparent)
}

func TestGet_CaseInsensitive(t *testing.T) {
	s, err := Get("CPK-Standard")
	require.NoError(t, err)
	assert.Equal(t, "cpk-standard", s.Name)
	assert.True(t, s.UseElementColors)
}

func TestLoadFromFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.json")
	template := `{
		"name": "print",
		"background": {"r": 1, "g": 1, "b": 1},
		"bond_color": {"r": 0.1, "g": 0.1, "b": 0.1},
		"use_element_colors": true,
		"element_colors": {"N": {"r": 0, "g": 0.2, "b": 0.8}}
	}`
	require.NoError(t, os.WriteFile(path, []byte(template), 0o644))

	s, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "print", s.Name)
	assert.Equal(t, RGB{R: 0, G: 0.2, B: 0.8}, s.ElementColor("N"))
	// Elements absent from the override fall through to the default palette.
	assert.Equal(t, RGB{R: 1, G: 0, B: 0}, s.ElementColor("O"))
}

func TestLoadFromFile_MissingName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anon.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"transparent": true}`), 0o644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidStyle))
}

func TestResolve_NameVersusPath(t *testing.T) {
	s, err := Resolve("dark")
	require.NoError(t, err)
	assert.Equal(t, "dark", s.Name)

	_, err = Resolve(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
