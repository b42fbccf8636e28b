package atmosphere

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"GopherSky/internal/engine"
	"GopherSky/internal/logger"

	"go.uber.org/zap"
)

var (
	ErrInvalidSkyRadius = errors.New("atmosphere: sky radius must be positive and finite")
	ErrInvalidMaterial  = errors.New("atmosphere: invalid material")
)

// Config is the on-disk form of the plugin settings plus an optional starting material
type Config struct {
	Plugin
	Material *Material `json:"material,omitempty"`
}

func DefaultConfig() Config {
	return Config{Plugin: DefaultPlugin()}
}

// LoadConfig reads a JSON config. A missing file yields the defaults; fields absent
// from the file keep their default values, including those of a partial material.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Log.Info("No atmosphere config found, using defaults", zap.String("path", path))
			return cfg, nil
		}
		return cfg, fmt.Errorf("atmosphere: read config %s: %w", path, err)
	}

	var raw struct {
		Plugin
		Material json.RawMessage `json:"material"`
	}
	raw.Plugin = cfg.Plugin
	if err := json.Unmarshal(data, &raw); err != nil {
		return DefaultConfig(), fmt.Errorf("atmosphere: parse config %s: %w", path, err)
	}
	cfg.Plugin = raw.Plugin

	if len(raw.Material) > 0 && string(raw.Material) != "null" {
		m := DefaultMaterial()
		if err := json.Unmarshal(raw.Material, &m); err != nil {
			return DefaultConfig(), fmt.Errorf("atmosphere: parse material in %s: %w", path, err)
		}
		cfg.Material = &m
	}

	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// SaveConfig writes cfg as indented JSON
func SaveConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("atmosphere: encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("atmosphere: write config %s: %w", path, err)
	}
	return nil
}

// Validate rejects settings that would fail at spawn. Odd but finite material
// values are allowed; they only look wrong.
func (c Config) Validate() error {
	if !finite(c.SkyRadius) || c.SkyRadius <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidSkyRadius, c.SkyRadius)
	}
	if c.Material != nil {
		if err := c.Material.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate reports the first non-finite parameter, in field order
func (m Material) Validate() error {
	fields := []struct {
		name   string
		values []float32
	}{
		{"sun_position", m.SunPosition[:]},
		{"ray_origin", m.RayOrigin[:]},
		{"sun_intensity", []float32{m.SunIntensity}},
		{"planet_radius", []float32{m.PlanetRadius}},
		{"atmosphere_radius", []float32{m.AtmosphereRadius}},
		{"rayleigh_coefficient", m.RayleighCoefficient[:]},
		{"mie_coefficient", []float32{m.MieCoefficient}},
		{"rayleigh_scale_height", []float32{m.RayleighScaleHeight}},
		{"mie_scale_height", []float32{m.MieScaleHeight}},
		{"mie_direction", []float32{m.MieDirection}},
	}
	for _, f := range fields {
		for _, v := range f.values {
			if !finite(v) {
				return fmt.Errorf("%w: %s is %v", ErrInvalidMaterial, f.name, f.values)
			}
		}
	}
	return nil
}

// Install validates c, seeds the shared material if one is set and adds the plugin
func (c Config) Install(app *engine.App) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Material != nil {
		InsertSharedMaterial(app, *c.Material)
	}
	app.AddPlugin(c.Plugin)
	return nil
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
