package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/designpreview/internal/foundation/errors"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(DefaultPath, false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(DefaultPath, true)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestLoad_FileOverridesDefaultsAndExpandsEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("DESIGNS_ROOT", "/srv/designs")

	path := filepath.Join(dir, "designpreview.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
root: ${DESIGNS_ROOT}
title: Mockups
output: out/manifest.json
server:
  port: 9000
  metrics: false
publish:
  interval: 30s
`), 0o644))

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, "/srv/designs", cfg.Root)
	assert.Equal(t, "Mockups", cfg.Title)
	assert.Equal(t, "HTML design documents", cfg.Description)
	assert.Equal(t, "out/manifest.json", cfg.Output)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.False(t, cfg.Server.Metrics)
	assert.Equal(t, 30*time.Second, cfg.Publish.Interval)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr())
}

func TestLoad_DotEnvDoesNotOverrideProcessEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("DP_TITLE", "from-process")
	t.Setenv("DP_DESCRIPTION", "")
	require.NoError(t, os.Unsetenv("DP_DESCRIPTION"))

	require.NoError(t, os.WriteFile(".env", []byte("DP_TITLE=from-dotenv\nDP_DESCRIPTION=from-dotenv\n"), 0o644))
	require.NoError(t, os.WriteFile(DefaultPath, []byte("title: ${DP_TITLE}\ndescription: ${DP_DESCRIPTION}\n"), 0o644))

	cfg, err := Load(DefaultPath, true)
	require.NoError(t, err)
	assert.Equal(t, "from-process", cfg.Title)
	assert.Equal(t, "from-dotenv", cfg.Description)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, os.WriteFile(DefaultPath, []byte("server: [not, a, map]\n"), 0o644))
	_, err := Load(DefaultPath, true)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))

	require.NoError(t, os.WriteFile(DefaultPath, []byte("server:\n  port: 70000\n"), 0o644))
	_, err = Load(DefaultPath, true)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))

	require.NoError(t, os.WriteFile(DefaultPath, []byte("root: \"\"\n"), 0o644))
	_, err = Load(DefaultPath, true)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, DefaultPath)

	require.NoError(t, Init(path, false))
	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	err = Init(path, false)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))

	require.NoError(t, Init(path, true))
}
