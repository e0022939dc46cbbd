package server

import (
	"encoding/json"
	"os"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// BoundingBox is the workspace rectangle.
type BoundingBox struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

func (b BoundingBox) bound() orb.Bound {
	return orb.Bound{Min: orb.Point{b.MinX, b.MinY}, Max: orb.Point{b.MaxX, b.MaxY}}
}

// Config holds the planning service settings. Zero values are replaced by
// defaults when the config is loaded.
type Config struct {
	Addr           string      `json:"addr"`
	Bounds         BoundingBox `json:"bounds"`
	NoFlyZoneDir   string      `json:"noFlyZoneDir,omitempty"`
	AllowedOrigins []string    `json:"allowedOrigins,omitempty"`

	// Planner defaults; requests may override them.
	ExtendLength float64 `json:"extendLength"`
	MaxTries     int     `json:"maxTries"`
	SmoothTries  int     `json:"smoothTries"`
	Seed         int64   `json:"seed"`

	// SimplifyEpsilon is the Douglas-Peucker tolerance applied to loaded
	// zones. Zero disables simplification, a negative value picks one from
	// the zone count.
	SimplifyEpsilon float64 `json:"simplifyEpsilon,omitempty"`

	// Geographic marks coordinates as longitude/latitude degrees, which adds
	// a great-circle distance in meters to plan responses.
	Geographic bool `json:"geographic,omitempty"`
}

// DefaultConfig returns a config for a longitude/latitude workspace.
func DefaultConfig() Config {
	cfg := Config{Geographic: true}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.Bounds == (BoundingBox{}) {
		c.Bounds = BoundingBox{MinX: -180, MinY: -90, MaxX: 180, MaxY: 90}
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if c.ExtendLength == 0 {
		c.ExtendLength = 0.01
	}
	if c.MaxTries == 0 {
		c.MaxTries = 5000
	}
	if c.SmoothTries == 0 {
		c.SmoothTries = 200
	}
	if c.Seed == 0 {
		c.Seed = 1
	}
}

// Validate reports the first unusable setting.
func (c *Config) Validate() error {
	if !(c.Bounds.MinX < c.Bounds.MaxX && c.Bounds.MinY < c.Bounds.MaxY) {
		return errors.Errorf("bounds %+v are empty", c.Bounds)
	}
	if !(c.ExtendLength > 0) {
		return errors.Errorf("extendLength must be positive, got %v", c.ExtendLength)
	}
	if c.MaxTries < 0 || c.SmoothTries < 0 {
		return errors.New("maxTries and smoothTries must not be negative")
	}
	return nil
}

// LoadConfig reads a JSON config file, fills in defaults and validates it.
func LoadConfig(path string) (*Config, error) {
	//nolint:gosec
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return &cfg, nil
}
