package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds every tunable of the contouring pipeline. All values come from
// the environment with defaults matching the original tool's behavior; the
// workspace root is an explicit value rather than a baked-in path.
type Config struct {
	WorkspaceRoot    string  `env:"CONTOUR_WORKSPACE_ROOT"`
	VisualizationDir string  `env:"CONTOUR_VISUALIZATION_DIR" envDefault:"visualization/davis"`
	MaskDir          string  `env:"CONTOUR_MASK_DIR"          envDefault:"masks"`
	DefaultFPS       float64 `env:"CONTOUR_DEFAULT_FPS"       envDefault:"30"`

	CannyLowThreshold  float64 `env:"CONTOUR_CANNY_LOW"  envDefault:"1"`
	CannyHighThreshold float64 `env:"CONTOUR_CANNY_HIGH" envDefault:"256"`

	OverlayColor     string `env:"CONTOUR_OVERLAY_COLOR"     envDefault:"255,255,255"`
	OverlayThickness int    `env:"CONTOUR_OVERLAY_THICKNESS" envDefault:"1"`

	FourCC       string `env:"CONTOUR_FOURCC"        envDefault:"mp4v"`
	OutputPrefix string `env:"CONTOUR_OUTPUT_PREFIX" envDefault:"Contoured_"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.WorkspaceRoot == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory for workspace root: %w", err)
		}
		cfg.WorkspaceRoot = filepath.Join(home, "Cutie", "workspace")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DefaultFPS <= 0 {
		return fmt.Errorf("default FPS must be positive, got %v", c.DefaultFPS)
	}
	if c.CannyLowThreshold < 0 || c.CannyHighThreshold <= c.CannyLowThreshold {
		return fmt.Errorf("invalid Canny thresholds: low=%v high=%v",
			c.CannyLowThreshold, c.CannyHighThreshold)
	}
	if c.OverlayThickness < 1 {
		return fmt.Errorf("overlay thickness must be at least 1, got %d", c.OverlayThickness)
	}
	if len(c.FourCC) != 4 {
		return fmt.Errorf("fourcc must be exactly 4 characters, got %q", c.FourCC)
	}
	if _, _, _, err := c.ParseOverlayColor(); err != nil {
		return err
	}
	return nil
}

// ParseOverlayColor decodes the "B,G,R" overlay color string into channel
// values. Channel order follows OpenCV convention.
func (c *Config) ParseOverlayColor() (b, g, r uint8, err error) {
	parts := strings.Split(c.OverlayColor, ",")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("overlay color must be B,G,R triple, got %q", c.OverlayColor)
	}

	channels := make([]uint8, 3)
	for i, part := range parts {
		v, convErr := strconv.Atoi(strings.TrimSpace(part))
		if convErr != nil || v < 0 || v > 255 {
			return 0, 0, 0, fmt.Errorf("overlay color channel %d out of range in %q", i, c.OverlayColor)
		}
		channels[i] = uint8(v)
	}

	return channels[0], channels[1], channels[2], nil
}
