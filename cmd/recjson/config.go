package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unsafe"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/recjson/descriptor"
	"github.com/wippyai/recjson/errors"
)

const envPrefix = "RECJSON"

// LogSettings selects the zap logger.
type LogSettings struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Settings is the CLI configuration. Precedence, lowest first: defaults,
// YAML file, RECJSON_* environment, flags.
type Settings struct {
	Log        LogSettings `yaml:"log"`
	Mode       string      `yaml:"mode"`
	Type       string      `yaml:"type"`
	Input      string      `yaml:"input"`
	Namer      string      `yaml:"namer"` // declared or json
	Iterations int         `yaml:"iterations"`
	MaxDepth   int         `yaml:"max_depth"`
	Strict     bool        `yaml:"strict"`
	Color      bool        `yaml:"color"`
	Metrics    bool        `yaml:"metrics"`
}

func defaultSettings() Settings {
	return Settings{
		Log:        LogSettings{Level: "warn"},
		Mode:       "encode",
		Type:       "complex",
		Input:      "-",
		Namer:      "json",
		Iterations: 10000,
		Color:      true,
	}
}

// loadSettings reads path, when set, over the defaults and applies environment
// overrides.
func loadSettings(path string) (Settings, error) {
	cfg := defaultSettings()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "read config "+path)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "parse config "+path)
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv walks the config's own descriptor: RECJSON_<FIELD> for top-level
// fields and RECJSON_<SECTION>_<FIELD> for nested ones.
func applyEnv(cfg *Settings, lookup func(string) (string, bool)) error {
	d, err := descriptor.Of[Settings]()
	if err != nil {
		return err
	}
	return applyEnvRecord(d, unsafe.Pointer(cfg), envPrefix, lookup)
}

func applyEnvRecord(d *descriptor.Descriptor, rec unsafe.Pointer, prefix string, lookup func(string) (string, bool)) error {
	for i := range d.Fields {
		f := &d.Fields[i]
		if !f.Serialized() {
			continue
		}
		key := prefix + "_" + strings.ToUpper(f.Name)

		if f.Type.Tag == descriptor.TagRecord {
			if err := applyEnvRecord(f.Type.Record, descriptor.Pointer(rec, f), key, lookup); err != nil {
				return err
			}
			continue
		}

		raw, ok := lookup(key)
		if !ok || raw == "" {
			continue
		}
		if err := setFromEnv(f, descriptor.Pointer(rec, f), raw); err != nil {
			return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "environment "+key)
		}
	}
	return nil
}

func setFromEnv(f *descriptor.Field, p unsafe.Pointer, raw string) error {
	switch f.Type.Tag {
	case descriptor.TagString:
		*(*string)(p) = raw
	case descriptor.TagBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		*(*bool)(p) = v
	case descriptor.TagInt:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return err
		}
		*(*int)(p) = v
	default:
		return fmt.Errorf("field %s cannot be set from the environment", f.Name)
	}
	return nil
}

func (c Settings) validate() error {
	switch c.Mode {
	case "describe", "encode", "decode", "wit", "bench":
	default:
		return errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("unknown mode %q", c.Mode))
	}
	if _, ok := samples[c.Type]; !ok {
		return errors.NotFound(errors.PhaseConfig, "sample type", c.Type)
	}
	if c.Namer != "declared" && c.Namer != "json" {
		return errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("unknown namer %q", c.Namer))
	}
	if c.Iterations <= 0 {
		return errors.InvalidInput(errors.PhaseConfig, "iterations must be positive")
	}
	return nil
}

// namer returns the descriptor naming strategy.
func (c Settings) namer() descriptor.Namer {
	if c.Namer == "json" {
		return descriptor.TagNamer{Key: "json"}
	}
	return descriptor.DeclaredNamer{}
}

// newLogger builds the zap logger described by c.Log.
func (c Settings) newLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "log level")
	}

	zc := zap.NewProductionConfig()
	if c.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}
