package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaultsAndOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("start_day_of_year: 45\nuse_simulation: true\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 45, c.StartDayOfYear)
	assert.True(t, c.Toggles.Nuclear, "expected default toggles to remain on when not overridden")
}

func TestValidateRejectsReplayWithoutDay(t *testing.T) {
	c := Default()
	c.UseSimulation = false
	c.Day = ""
	assert.Error(t, c.Validate(), "expected validation error when replay selected with no day")
}

func TestValidateRejectsMalformedDay(t *testing.T) {
	c := Default()
	c.UseSimulation = false
	c.Day = "03/15/2024"
	assert.Error(t, c.Validate(), "expected validation error for a non-ISO day")
}

func TestReplayDayDirJoinsBaseAndDay(t *testing.T) {
	c := Default()
	c.ReplayBaseDir = "/data/replays"
	c.Day = "2024-03-15"
	assert.Equal(t, "/data/replays/2024-03-15", c.ReplayDayDir())
}

func TestLoadUncheckedReturnsLoadErrorOnMissingFile(t *testing.T) {
	_, err := LoadUnchecked("/nonexistent/path/run.yaml")
	assert.Error(t, err, "expected an error for a missing config file")
}
