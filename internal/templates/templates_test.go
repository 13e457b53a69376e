package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinTemplatesCarryMarkers(t *testing.T) {
	loader := NewLoader()

	for name, load := range map[string]func(string) (string, error){
		"operational": loader.Operational,
		"domain":      loader.Domain,
	} {
		t.Run(name, func(t *testing.T) {
			text, err := load("")
			require.NoError(t, err)
			assert.Contains(t, text, "$handlerName$")
			assert.Contains(t, text, "$id$")
			assert.Contains(t, text, "$uid$")
			assert.Contains(t, text, "$gavArtifactId$")
			assert.Contains(t, text, "$gavVersion$")
		})
	}
}

func TestOverrideTemplateIsReadFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"title": "$handlerName$"}`), 0o600))

	loader := NewLoader()
	text, err := loader.Operational(path)
	require.NoError(t, err)
	assert.Equal(t, `{"title": "$handlerName$"}`, text)
}

func TestOverrideTemplateMissing(t *testing.T) {
	loader := NewLoader()
	_, err := loader.Domain(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestLoadIsCachedUntilPurge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.json")
	require.NoError(t, os.WriteFile(path, []byte("first"), 0o600))

	loader := NewLoader()
	text, err := loader.Operational(path)
	require.NoError(t, err)
	assert.Equal(t, "first", text)

	require.NoError(t, os.WriteFile(path, []byte("second"), 0o600))

	text, err = loader.Operational(path)
	require.NoError(t, err)
	assert.Equal(t, "first", text)

	loader.Purge()

	text, err = loader.Operational(path)
	require.NoError(t, err)
	assert.Equal(t, "second", text)
}
