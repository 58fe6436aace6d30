package config_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/karupanerura/lox-frontend/internal/config"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name      string
		source    string
		expected  config.Config
		expectErr bool
	}{
		{
			name:     "empty document keeps defaults",
			source:   "{}",
			expected: config.Default(),
		},
		{
			name:   "yaml",
			source: "mode: expression\nformat: json\ndebug: true\nmax_source_bytes: 1024\n",
			expected: config.Config{
				Mode:           config.ExpressionMode,
				Format:         config.JSONFormat,
				Debug:          true,
				MaxSourceBytes: 1024,
			},
		},
		{
			name:   "json",
			source: `{"listen": ":8080"}`,
			expected: config.Config{
				Mode:           config.ProgramMode,
				Format:         config.SExprFormat,
				Listen:         ":8080",
				MaxSourceBytes: 1 << 20,
			},
		},
		{
			name:      "unknown key",
			source:    "colour: true\n",
			expectErr: true,
		},
		{
			name:      "type mismatch",
			source:    "debug: [1, 2]\n",
			expectErr: true,
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := config.Load(strings.NewReader(tt.source))
			if err != nil {
				if tt.expectErr {
					t.Logf("expected error: %v", err)
					return
				}
				t.Fatal(err)
			}
			if tt.expectErr {
				t.Fatal("should be error")
			}
			if diff := cmp.Diff(tt.expected, cfg); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"LOX_FRONTEND_MODE":             "expression",
		"LOX_FRONTEND_DEBUG":            "1",
		"LOX_FRONTEND_MAX_SOURCE_BYTES": "42",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := config.Default()
	if err := config.ApplyEnv(&cfg, lookup); err != nil {
		t.Fatal(err)
	}

	expected := config.Config{
		Mode:           config.ExpressionMode,
		Format:         config.SExprFormat,
		Debug:          true,
		MaxSourceBytes: 42,
	}
	if diff := cmp.Diff(expected, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	env["LOX_FRONTEND_DEBUG"] = "maybe"
	if err := config.ApplyEnv(&cfg, lookup); err == nil {
		t.Error("should be error for an invalid bool")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	if err := config.Default().Validate(); err != nil {
		t.Errorf("default config must be valid: %v", err)
	}

	cfg := config.Default()
	cfg.Mode = "statement"
	if err := cfg.Validate(); err == nil {
		t.Error("should reject unknown mode")
	}

	cfg = config.Default()
	cfg.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Error("should reject unknown format")
	}

	cfg = config.Default()
	cfg.MaxSourceBytes = 0
	if err := cfg.Validate(); err == nil {
		t.Error("should reject non-positive max_source_bytes")
	}
}
