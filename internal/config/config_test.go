package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeblew999/plat-rows/internal/network"
	"github.com/joeblew999/plat-rows/internal/rows"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, network.DefaultOptions(), cfg.Options())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "custom.yaml", `
spacing_m: 12.5
start_letter: b
start_num: 3
zero_pad: false
dest_side: b
turn_b:
  template: turns/u.geojson
  attach: true
  rotation_offset: -45
  flip_vertical: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	opts := cfg.Options()
	assert.Equal(t, 12.5, opts.SpacingM)
	assert.Equal(t, "b", opts.StartLetter)
	assert.Equal(t, 3, opts.StartNum)
	assert.False(t, opts.ZeroPad)
	assert.True(t, opts.KeepStartLetter)
	assert.Equal(t, rows.SideB, opts.DestSide)
	assert.Equal(t, "turns/u.geojson", cfg.TurnB.Template)
	assert.True(t, opts.TurnB.Attach)
	assert.Equal(t, -45.0, opts.TurnB.RotationOffset)
	assert.True(t, opts.TurnB.FlipVertical)
	assert.False(t, opts.TurnA.Attach)
}

func TestLoadSearchPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "configs"), 0o755))
	writeFile(t, filepath.Join(dir, "configs"), "rows.yaml", "spacing_m: 9\n")
	t.Chdir(dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9.0, cfg.SpacingM)
}

func TestLoadEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ROWS_SPACING_M", "4.5")
	t.Setenv("ROWS_DUAL_ZONE", "true")
	t.Setenv("ROWS_TURN_A_ATTACH", "true")
	t.Setenv("ROWS_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 4.5, cfg.SpacingM)
	assert.True(t, cfg.DualZone)
	assert.True(t, cfg.TurnA.Attach)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.SpacingM = -1
	cfg.LogLevel = "loud"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
	assert.Contains(t, err.Error(), "spacing")

	cfg.SpacingM = 6
	cfg.LogLevel = "warn"
	cfg.DestSide = "C"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dest_side")
}
