// Package config holds the settings shared by the command line tool and the HTTP server.
package config

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/goccy/go-json"
	reflect "github.com/goccy/go-reflect"
	"github.com/goccy/go-yaml"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

type Mode string

const (
	// ExpressionMode parses a sequence of bare expressions.
	ExpressionMode Mode = "expression"
	// ProgramMode parses `;`-terminated declarations with error recovery.
	ProgramMode Mode = "program"
)

type Format string

const (
	SExprFormat  Format = "sexpr"
	SourceFormat Format = "source"
	JSONFormat   Format = "json"
	YAMLFormat   Format = "yaml"
	TokensFormat Format = "tokens"
)

var (
	validModes   = []Mode{ExpressionMode, ProgramMode}
	validFormats = []Format{SExprFormat, SourceFormat, JSONFormat, YAMLFormat, TokensFormat}
)

type Config struct {
	Mode           Mode   `json:"mode" mapstructure:"mode" env:"LOX_FRONTEND_MODE"`
	Format         Format `json:"format" mapstructure:"format" env:"LOX_FRONTEND_FORMAT"`
	Debug          bool   `json:"debug" mapstructure:"debug" env:"LOX_FRONTEND_DEBUG"`
	Listen         string `json:"listen" mapstructure:"listen" env:"LOX_FRONTEND_LISTEN"`
	MaxSourceBytes int    `json:"max_source_bytes" mapstructure:"max_source_bytes" env:"LOX_FRONTEND_MAX_SOURCE_BYTES"`
}

func Default() Config {
	return Config{
		Mode:           ProgramMode,
		Format:         SExprFormat,
		MaxSourceBytes: 1 << 20,
	}
}

// Load reads a YAML (or JSON) document over the defaults. Unknown keys are rejected.
func Load(r io.Reader) (Config, error) {
	yamlBytes, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("io.ReadAll: %w", err)
	}

	jsonBytes, err := yaml.YAMLToJSON(yamlBytes)
	if err != nil {
		return Config{}, fmt.Errorf("yaml.YAMLToJSON: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(jsonBytes, &raw); err != nil {
		return Config{}, fmt.Errorf("json.Unmarshal: %w", err)
	}

	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &cfg,
		ErrorUnused: true,
	})
	if err != nil {
		return Config{}, fmt.Errorf("mapstructure.NewDecoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("mapstructure.Decode: %w", err)
	}
	return cfg, nil
}

func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("os.Open(%q): %w", path, err)
	}
	defer f.Close()

	return Load(f)
}

// ApplyEnv overrides fields that carry an `env` tag with the values lookup finds.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		key := t.Field(i).Tag.Get("env")
		if key == "" {
			continue
		}
		s, ok := lookup(key)
		if !ok {
			continue
		}

		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(s)
		case reflect.Bool:
			b, err := strconv.ParseBool(s)
			if err != nil {
				return fmt.Errorf("%s=%q: %w", key, s, err)
			}
			field.SetBool(b)
		case reflect.Int:
			n, err := strconv.Atoi(s)
			if err != nil {
				return fmt.Errorf("%s=%q: %w", key, s, err)
			}
			field.SetInt(int64(n))
		default:
			panic(fmt.Sprintf("should not reach here: unsupported config field kind %s", field.Kind()))
		}
	}
	return nil
}

func (c Config) Validate() error {
	if !lo.Contains(validModes, c.Mode) {
		return fmt.Errorf("unknown mode %q: must be one of %v", c.Mode, validModes)
	}
	if !lo.Contains(validFormats, c.Format) {
		return fmt.Errorf("unknown format %q: must be one of %v", c.Format, validFormats)
	}
	if c.MaxSourceBytes <= 0 {
		return fmt.Errorf("max_source_bytes must be positive: %d", c.MaxSourceBytes)
	}
	return nil
}
