package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"RECJSON_MODE":            "decode",
		"RECJSON_MAXDEPTH":        "8",
		"RECJSON_STRICT":          "true",
		"RECJSON_LOG_LEVEL":       "debug",
		"RECJSON_LOG_DEVELOPMENT": "1",
		"RECJSON_TYPE":            "",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := defaultSettings()
	if err := applyEnv(&cfg, lookup); err != nil {
		t.Fatalf("applyEnv: %v", err)
	}

	if cfg.Mode != "decode" {
		t.Errorf("Mode = %q, want decode", cfg.Mode)
	}
	if cfg.MaxDepth != 8 {
		t.Errorf("MaxDepth = %d, want 8", cfg.MaxDepth)
	}
	if !cfg.Strict {
		t.Error("Strict not set")
	}
	if cfg.Log.Level != "debug" || !cfg.Log.Development {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Type != "complex" {
		t.Errorf("empty variable overrode Type: %q", cfg.Type)
	}
}

func TestApplyEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad int", "RECJSON_ITERATIONS", "many"},
		{"bad bool", "RECJSON_COLOR", "sometimes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultSettings()
			err := applyEnv(&cfg, func(key string) (string, bool) {
				if key == tt.key {
					return tt.val, true
				}
				return "", false
			})
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.key) {
				t.Errorf("error %q does not name %s", err, tt.key)
			}
		})
	}
}

func TestLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recjson.yaml")
	yaml := "mode: wit\ntype: inner\nnamer: declared\nlog:\n  level: info\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RECJSON_ITERATIONS", "7")

	cfg, err := loadSettings(path)
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if cfg.Mode != "wit" || cfg.Type != "inner" || cfg.Namer != "declared" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
	if cfg.Iterations != 7 {
		t.Errorf("environment did not override: Iterations = %d", cfg.Iterations)
	}
	if !cfg.Color {
		t.Error("default Color lost")
	}
}

func TestLoadSettings_Errors(t *testing.T) {
	if _, err := loadSettings(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("mode: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadSettings(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{"defaults", func(*Settings) {}, ""},
		{"unknown mode", func(s *Settings) { s.Mode = "print" }, "unknown mode"},
		{"unknown type", func(s *Settings) { s.Type = "nope" }, "nope"},
		{"unknown namer", func(s *Settings) { s.Namer = "yaml" }, "unknown namer"},
		{"zero iterations", func(s *Settings) { s.Iterations = 0 }, "iterations"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultSettings()
			tt.mutate(&cfg)
			err := cfg.validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestSettings_NewLogger(t *testing.T) {
	cfg := defaultSettings()
	if _, err := cfg.newLogger(); err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	cfg.Log.Level = "loud"
	if _, err := cfg.newLogger(); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestPrettyJSON(t *testing.T) {
	got, err := prettyJSON([]byte(`{"a":[1,2.5],"b":{},"c":"x\"y"}`), false)
	if err != nil {
		t.Fatalf("prettyJSON: %v", err)
	}
	want := `{
  "a": [
    1,
    2.5
  ],
  "b": {},
  "c": "x\"y"
}
`
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}

	colored, err := prettyJSON([]byte(`{"k":true}`), true)
	if err != nil {
		t.Fatalf("prettyJSON color: %v", err)
	}
	if !strings.Contains(colored, ansiKey+`"k"`+ansiReset) || !strings.Contains(colored, ansiLit+"true"+ansiReset) {
		t.Errorf("missing color codes: %q", colored)
	}

	if _, err := prettyJSON([]byte(`{"k":}`), false); err == nil {
		t.Error("expected parse error")
	}
}

func TestApp_Actions(t *testing.T) {
	a := newApp(defaultSettings())
	inner := samples["inner"]

	data, err := a.encode(inner)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(data) != `{"id":42,"label":"answer"}` {
		t.Errorf("encode = %s", data)
	}

	text, err := a.describe(inner)
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if !strings.Contains(text, "label") {
		t.Errorf("describe missing field:\n%s", text)
	}

	text, err = a.wit(inner)
	if err != nil {
		t.Fatalf("wit: %v", err)
	}
	if !strings.Contains(text, "record inner {") || !strings.Contains(text, "canonical ABI") {
		t.Errorf("wit output:\n%s", text)
	}

	text, err = a.decode(inner, []byte(`{"id":"x","label":"ok","extra":1}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, want := range []string{"dropped:", "unknown key: extra", `{"id":0,"label":"ok"}`} {
		if !strings.Contains(text, want) {
			t.Errorf("decode output missing %q:\n%s", want, text)
		}
	}

	text, err = a.bench(inner, 3)
	if err != nil {
		t.Fatalf("bench: %v", err)
	}
	if !strings.Contains(text, "3 iterations") {
		t.Errorf("bench output:\n%s", text)
	}

	var metrics strings.Builder
	if err := a.writeMetrics(&metrics); err != nil {
		t.Fatalf("writeMetrics: %v", err)
	}
	if !strings.Contains(metrics.String(), "recjson_encode_total") {
		t.Errorf("metrics missing encode counter:\n%s", metrics.String())
	}
}

func TestApp_StrictDecode(t *testing.T) {
	cfg := defaultSettings()
	cfg.Strict = true
	a := newApp(cfg)

	if _, err := a.decode(samples["inner"], []byte(`{"id":"x"}`)); err == nil {
		t.Error("strict decode accepted a mismatch")
	}
	if _, err := a.decode(samples["inner"], []byte(`{"id":1,"other":2}`)); err != nil {
		t.Errorf("unknown key failed strict decode: %v", err)
	}
}

func TestSampleNames(t *testing.T) {
	got := strings.Join(sampleNames(), ",")
	if got != "complex,config,inner" {
		t.Errorf("sampleNames = %s", got)
	}
}
