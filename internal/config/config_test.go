package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(LoadOptions{Dir: t.TempDir(), WorkDir: t.TempDir()})
	require.NoError(t, err)

	assert.Equal(t, DefaultFile, cfg.File)
	assert.False(t, cfg.Strict)
	assert.False(t, cfg.Quiet)
	assert.NotNil(t, cfg.Logger)
	assert.Empty(t, cfg.Sources)
}

func TestLoad_ProjectOverridesUser(t *testing.T) {
	userDir := t.TempDir()
	workDir := t.TempDir()

	writeFile(t, filepath.Join(userDir, UserConfigFile), "file = \"/data/all.json\"\nstrict = true\n")
	writeFile(t, filepath.Join(workDir, ProjectConfigFile), "file = \"/data/project.json\"\n")

	cfg, err := Load(LoadOptions{Dir: userDir, WorkDir: workDir})
	require.NoError(t, err)

	assert.Equal(t, "/data/project.json", cfg.File)
	assert.True(t, cfg.Strict, "strict from user file should survive a project file that does not set it")
	assert.Len(t, cfg.Sources, 2)
}

func TestLoad_RelativeFileResolvedAgainstConfigDir(t *testing.T) {
	workDir := t.TempDir()
	writeFile(t, filepath.Join(workDir, ProjectConfigFile), "file = \"data/tasks.json\"\n")

	cfg, err := Load(LoadOptions{Dir: t.TempDir(), WorkDir: workDir})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(workDir, "data", "tasks.json"), cfg.File)
}

func TestLoad_ExplicitPathSkipsOtherLayers(t *testing.T) {
	userDir := t.TempDir()
	writeFile(t, filepath.Join(userDir, UserConfigFile), "quiet = true\n")

	explicit := filepath.Join(t.TempDir(), "custom.toml")
	writeFile(t, explicit, "strict = true\n")

	cfg, err := Load(LoadOptions{Path: explicit, Dir: userDir})
	require.NoError(t, err)

	assert.True(t, cfg.Strict)
	assert.False(t, cfg.Quiet)
	assert.Equal(t, DefaultFile, cfg.File)
	assert.Equal(t, []string{explicit}, cfg.Sources)
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	_, err := Load(LoadOptions{Path: filepath.Join(t.TempDir(), "nope.toml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.toml")
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown key", "colour = \"red\"\n", "unknown keys: colour"},
		{"empty file path", "file = \"  \"\n", "file must not be empty"},
		{"wrong type", "strict = \"yes\"\n", "loading config file"},
		{"invalid toml", "file = \n", "loading config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workDir := t.TempDir()
			writeFile(t, filepath.Join(workDir, ProjectConfigFile), tt.content)

			_, err := Load(LoadOptions{Dir: t.TempDir(), WorkDir: workDir})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	assert.Equal(t, filepath.Join(xdg, AppName), DefaultConfigDir())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("TODO_TEST_DIR", "/srv/todo")

	assert.Equal(t, "", expandPath(""))
	assert.Equal(t, home, expandPath("~"))
	assert.Equal(t, filepath.Join(home, "tasks.json"), expandPath("~/tasks.json"))
	assert.Equal(t, "/srv/todo/tasks.json", expandPath("$TODO_TEST_DIR/tasks.json"))
	assert.Equal(t, "plain.json", expandPath("plain.json"))
}
