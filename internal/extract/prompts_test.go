package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfiles(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadProfiles(t *testing.T) {
	t.Parallel()

	path := writeProfiles(t, `
profiles:
  research:
    instruction: "Extract methodology insights and cited tooling."
    temperature: 0.1
  casual:
    instruction: "Pull out the most shareable one-liners."
`)

	profiles, err := LoadProfiles(path)
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	research := profiles["research"]
	assert.Equal(t, "Extract methodology insights and cited tooling.", research.Instruction)
	require.NotNil(t, research.Temperature)
	assert.Equal(t, 0.1, *research.Temperature)

	casual := profiles["casual"]
	assert.Nil(t, casual.Temperature)
}

func TestLoadProfiles_EmptyInstructionInheritsDefault(t *testing.T) {
	t.Parallel()

	path := writeProfiles(t, `
profiles:
  bare:
    temperature: 0.3
`)

	profiles, err := LoadProfiles(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultPrompt, profiles["bare"].Instruction)
}

func TestLoadProfiles_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadProfiles(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read profiles")
}

func TestLoadProfiles_MalformedYAML(t *testing.T) {
	t.Parallel()

	path := writeProfiles(t, "profiles: [not a map")
	_, err := LoadProfiles(path)
	require.Error(t, err)
}
