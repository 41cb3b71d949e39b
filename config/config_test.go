package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miosa/tunes/ui/window"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	t.Parallel()

	cfg := Load(t.TempDir())
	assert.Equal(t, Defaults(), cfg)
	assert.Empty(t, cfg.Theme, "theme follows the terminal until one is saved")
}

func TestLoad_MalformedFileGivesDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(Path(dir), []byte("theme = [unterminated"), 0o644))
	assert.Equal(t, Defaults(), Load(dir))
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	body := `
theme = "light"
library_dir = "/music"

[lists.tracks]
threshold = 50
reset_window = "2s"
`
	require.NoError(t, os.WriteFile(Path(dir), []byte(body), 0o644))

	cfg := Load(dir)
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, "/music", cfg.LibraryDir)
	assert.Equal(t, 50, cfg.Lists.Tracks.Threshold)
	assert.Equal(t, Duration(2*time.Second), cfg.Lists.Tracks.ResetWindow)
	assert.Equal(t, Rows(8), cfg.Lists.Tracks.OverscanRows, "untouched keys keep defaults")
	assert.Equal(t, Defaults().Lists.Albums, cfg.Lists.Albums)
}

func TestSaveLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir() + "/nested/profile"
	cfg := Defaults()
	cfg.ServerURL = "http://localhost:8089"
	cfg.Lists.Gallery.ResetWindow = Duration(1500 * time.Millisecond)

	require.NoError(t, Save(dir, cfg))
	assert.Equal(t, cfg, Load(dir))
}

func TestListTuning_WindowConfig(t *testing.T) {
	t.Parallel()

	cfg := ListTuning{OverscanRows: Rows(6), MinRowHeight: 3, ResetWindow: Duration(time.Second)}.WindowConfig()
	assert.Equal(t, 6, cfg.OverscanRows)
	assert.Equal(t, window.DefaultConfig().RetentionRows, cfg.RetentionRows, "absent keeps the built-in value")
	assert.Equal(t, 3, cfg.MinRowHeight)
	assert.Equal(t, 3, cfg.DefaultRowHeight, "default row height never below the minimum")
	assert.Equal(t, time.Second, cfg.ResetWindow)
	assert.Equal(t, 120, cfg.Threshold, "zero keeps the built-in value")
	assert.Equal(t, 3, cfg.ResetThreshold)
}

func TestLoad_ZeroRowBuffers(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	body := `
[lists.albums]
overscan_rows = 0
retention_rows = 0
`
	require.NoError(t, os.WriteFile(Path(dir), []byte(body), 0o644))

	cfg := Load(dir)
	wc := cfg.Lists.Albums.WindowConfig()
	assert.Zero(t, wc.OverscanRows)
	assert.Zero(t, wc.RetentionRows)
	assert.Equal(t, Rows(2), cfg.Lists.Gallery.OverscanRows, "other lists keep their defaults")

	require.NoError(t, Save(dir, cfg))
	assert.Equal(t, cfg, Load(dir), "zero survives a save")
}

func TestDuration_RejectsGarbage(t *testing.T) {
	t.Parallel()

	var d Duration
	assert.Error(t, d.UnmarshalText([]byte("soon")))
}
