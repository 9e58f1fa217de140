package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "nope.json"), zap.NewNop())
	assert.Equal(t, Default(), cfg)
}

func TestLoadMalformedFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	cfg := Load(path, zap.NewNop())
	assert.Equal(t, Default(), cfg)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"current_scale":"C_Major","echo_enabled":true}`), 0644))

	cfg := Load(path, zap.NewNop())
	assert := assert.New(t)
	assert.Equal("C_Major", cfg.CurrentScale)
	assert.True(cfg.EchoEnabled)
	assert.Equal(Default().SustainTime, cfg.SustainTime)
	assert.Equal(Default().VelocityMultiplier, cfg.VelocityMultiplier)
}

func TestLoadClampsOutOfRangeValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wild.json")
	body := `{"velocity_multiplier":9.5,"sustain_time":-2,"pinch_threshold":0,"screen_width":-1,"current_instrument":400}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg := Load(path, zap.NewNop())
	assert := assert.New(t)
	assert.Equal(2.0, cfg.VelocityMultiplier)
	assert.Equal(0.8, cfg.SustainTime)
	assert.Equal(30.0, cfg.PinchThreshold)
	assert.Equal(1280, cfg.ScreenWidth)
	assert.Equal(0, cfg.CurrentInstrument)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")

	want := Default()
	want.CurrentScale = "Pentatonic"
	want.VelocityMultiplier = 1.3
	require.NoError(t, Save(path, want))

	got := Load(path, zap.NewNop())
	assert.Equal(t, want, got)
}
