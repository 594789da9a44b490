package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSceneOverridesDefaults(t *testing.T) {
	scene, err := DecodeScene([]byte(`
paintings = ["a.png", "b.png"]

[message]
subtitle = "Sam"
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png", "b.png"}, scene.Paintings)
	assert.Equal(t, "Sam", scene.Message.Subtitle)
	assert.Equal(t, "Happy Birthday!", scene.Message.Title)
	assert.Equal(t, 25.0, scene.Radius)
}

func TestDecodeSceneInvalid(t *testing.T) {
	_, err := DecodeScene([]byte("paintings = ["))
	assert.Error(t, err)
}

func TestLoadSceneEmptyPathUsesDefaults(t *testing.T) {
	scene, err := LoadScene("")
	require.NoError(t, err)
	assert.Equal(t, DefaultScene(), scene)
}

func TestLoadSceneMissingFileFails(t *testing.T) {
	scene, err := LoadScene(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, DefaultScene(), scene)
}

func TestLoadSceneFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte("radius = 30\n"), 0o644))
	scene, err := LoadScene(path)
	require.NoError(t, err)
	assert.Equal(t, 30.0, scene.Radius)
	assert.Len(t, scene.Paintings, 5)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("BIRTHDAY_TEST_KEY", "set")
	assert.Equal(t, "set", GetEnv("BIRTHDAY_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("BIRTHDAY_TEST_MISSING", "fallback"))
}
