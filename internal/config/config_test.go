package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONTOUR_WORKSPACE_ROOT", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "visualization/davis", cfg.VisualizationDir)
	assert.Equal(t, "masks", cfg.MaskDir)
	assert.Equal(t, 30.0, cfg.DefaultFPS)
	assert.Equal(t, 1.0, cfg.CannyLowThreshold)
	assert.Equal(t, 256.0, cfg.CannyHighThreshold)
	assert.Equal(t, "mp4v", cfg.FourCC)
	assert.Equal(t, "Contoured_", cfg.OutputPrefix)
	assert.Equal(t, 1, cfg.OverlayThickness)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CONTOUR_WORKSPACE_ROOT", t.TempDir())
	t.Setenv("CONTOUR_DEFAULT_FPS", "24")
	t.Setenv("CONTOUR_OVERLAY_COLOR", "0,0,255")
	t.Setenv("CONTOUR_OVERLAY_THICKNESS", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 24.0, cfg.DefaultFPS)
	assert.Equal(t, 3, cfg.OverlayThickness)

	b, g, r, err := cfg.ParseOverlayColor()
	require.NoError(t, err)
	assert.Equal(t, uint8(0), b)
	assert.Equal(t, uint8(0), g)
	assert.Equal(t, uint8(255), r)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]struct {
		key   string
		value string
	}{
		"zero fps":           {"CONTOUR_DEFAULT_FPS", "0"},
		"inverted canny":     {"CONTOUR_CANNY_HIGH", "0.5"},
		"zero thickness":     {"CONTOUR_OVERLAY_THICKNESS", "0"},
		"short fourcc":       {"CONTOUR_FOURCC", "mp4"},
		"bad color shape":    {"CONTOUR_OVERLAY_COLOR", "255,255"},
		"color out of range": {"CONTOUR_OVERLAY_COLOR", "300,0,0"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("CONTOUR_WORKSPACE_ROOT", t.TempDir())
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestParseOverlayColorTolerantOfSpaces(t *testing.T) {
	cfg := &Config{OverlayColor: "10, 20, 30"}

	b, g, r, err := cfg.ParseOverlayColor()
	require.NoError(t, err)
	assert.Equal(t, uint8(10), b)
	assert.Equal(t, uint8(20), g)
	assert.Equal(t, uint8(30), r)
}
