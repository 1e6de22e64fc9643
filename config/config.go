// Package config loads a router configuration (level styles and sinks) from
// a YAML file and the environment and applies it to a pipelog.Router.
//
// Layers, later ones win:
//  1. Defaults: default level styles on, no sinks
//  2. Config file: optional YAML file
//  3. Environment: PIPELOG_DEFAULT_STYLES, PIPELOG_STYLES_<LEVEL>
//
// Example file:
//
//	default_styles: true
//	styles:
//	  ERROR: "bold+bright_red"
//	sinks:
//	  - type: stdout
//	    filters:
//	      - levels: [INFO, WARNING, ERROR]
//	  - type: file
//	    path: logs/db.log
//	    filters:
//	      - sources: [db]
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/abyssdigger/pipelog"
	"github.com/abyssdigger/pipelog/colors"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "PIPELOG_"

// Sink types.
const (
	SinkStdout = "stdout"
	SinkStderr = "stderr"
	SinkFile   = "file"
)

// Filter is one filter registration entry of a sink.
type Filter struct {
	Sources []string `koanf:"sources"`
	Levels  []string `koanf:"levels"`
}

// Sink describes one sink to register. Path is required for (and only
// allowed with) file sinks. No filters means every message is accepted.
type Sink struct {
	Type    string   `koanf:"type" validate:"required,oneof=stdout stderr file"`
	Path    string   `koanf:"path" validate:"required_if=Type file,excluded_unless=Type file"`
	Filters []Filter `koanf:"filters"`
}

// Config is the full router configuration.
type Config struct {
	DefaultStyles bool              `koanf:"default_styles"`
	Styles        map[string]string `koanf:"styles" validate:"dive,keys,required,endkeys,required"`
	Sinks         []Sink            `koanf:"sinks" validate:"dive"`
}

var validate = validator.New()

func defaultConfig() Config {
	return Config{DefaultStyles: true}
}

// Load reads the configuration from the YAML file at path (skipped when path
// is empty) on top of the defaults, applies environment overrides and
// validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// PIPELOG_DEFAULT_STYLES -> default_styles
	// PIPELOG_STYLES_ERROR   -> styles.ERROR
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// envTransformFunc maps environment variable names to config paths. Level
// names keep their case; unknown variables are dropped.
func envTransformFunc(key string) string {
	key = strings.TrimPrefix(key, EnvPrefix)
	if strings.EqualFold(key, "DEFAULT_STYLES") {
		return "default_styles"
	}
	section, level, found := strings.Cut(key, "_")
	if found && level != "" && strings.EqualFold(section, "STYLES") {
		return "styles." + level
	}
	return ""
}

// Validate checks the struct constraints and that every style spec parses.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	var errs []error
	p := colors.NewPalette(true)
	for level, spec := range c.Styles {
		if _, err := p.Style(spec); err != nil {
			errs = append(errs, fmt.Errorf("style of level %s: %w", level, err))
		}
	}
	return errors.Join(errs...)
}

// Apply registers the configured styles and sinks on r, in order. It stops
// at the first sink that can't be registered.
func Apply(r *pipelog.Router, cfg *Config) error {
	if cfg.DefaultStyles {
		r.ApplyDefaultStyles()
	}
	p := colors.NewPalette(true)
	for level, spec := range cfg.Styles {
		mode, err := p.Style(spec)
		if err != nil {
			return fmt.Errorf("style of level %s: %w", level, err)
		}
		r.SetLevelStyle(level, mode.String())
	}
	for i, s := range cfg.Sinks {
		filters := s.filterSpecs()
		switch s.Type {
		case SinkStdout:
			r.AddStdoutSink(filters...)
		case SinkStderr:
			r.AddStderrSink(filters...)
		case SinkFile:
			if err := r.AddFileSink(s.Path, filters...); err != nil {
				return fmt.Errorf("sink #%d: %w", i, err)
			}
		default:
			return fmt.Errorf("sink #%d: unknown type %q", i, s.Type)
		}
	}
	return nil
}

// LoadAndApply is Load followed by Apply.
func LoadAndApply(r *pipelog.Router, path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return cfg, Apply(r, cfg)
}

// filterSpecs converts the sink filters. A sink configured without filters
// accepts every message.
func (s Sink) filterSpecs() []pipelog.FilterSpec {
	if len(s.Filters) == 0 {
		return []pipelog.FilterSpec{{}}
	}
	specs := make([]pipelog.FilterSpec, 0, len(s.Filters))
	for _, f := range s.Filters {
		specs = append(specs, pipelog.FilterSpec{Sources: f.Sources, Levels: f.Levels})
	}
	return specs
}
