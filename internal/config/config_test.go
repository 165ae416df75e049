package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bartleby2718/DieOrDareOfflineCLI/engine"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, engine.Rules{RequiredPoints: 5, MaxDie: 3, MaxDraw: 3}, cfg.Rules())
}

func TestLoadOverlaysYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dod.yaml")
	body := `
required_points: 3
pace:
  action_window: 2.5
red_keys:
  idle: t
  dare: q
  die: w
  done: e
  draw: r
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint8(3), cfg.RequiredPoints)
	assert.Equal(t, uint8(3), cfg.MaxDie, "untouched knobs keep their defaults")
	assert.Equal(t, TopLeftKeys(), cfg.RedKeys)
	assert.Equal(t, 2500*time.Millisecond, cfg.Delay(engine.PaceActionWindow))
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dod.yaml")
	require.NoError(t, os.WriteFile(path, []byte("required_points: 3\n"), 0o644))
	t.Setenv("DOD_REQUIRED_POINTS", "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint8(7), cfg.RequiredPoints)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidateRejectsBadKeys(t *testing.T) {
	cfg := Default()
	cfg.RedKeys.Die = "X"
	assert.Error(t, cfg.Validate(), "uppercase keys are rejected")

	cfg = Default()
	cfg.RedKeys.Die = cfg.RedKeys.Dare
	assert.Error(t, cfg.Validate(), "duplicate keys are rejected")

	cfg = Default()
	cfg.RequiredPoints = 10
	assert.Error(t, cfg.Validate(), "more points than duels is unwinnable")
}

func TestKeyBindingsAction(t *testing.T) {
	keys := BottomLeftKeys()
	assert.Equal(t, engine.ActionDie, keys.Action("x"))
	assert.Equal(t, engine.ActionDraw, keys.Action("v"))
	assert.Equal(t, engine.ActionNone, keys.Action("?"))
}

func TestQuietCollapsesDelays(t *testing.T) {
	cfg := Default()
	cfg.Quiet = true
	assert.Equal(t, time.Duration(0), cfg.Delay(engine.PaceActionWindow))
}
