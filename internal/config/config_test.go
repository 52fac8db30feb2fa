package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/funvibe/corecalc/internal/ast"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("{}\n"), "corecalc.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Color != ColorAuto {
		t.Errorf("color = %q, want %q", cfg.Color, ColorAuto)
	}
	if cfg.Jobs != DefaultJobs {
		t.Errorf("jobs = %d, want %d", cfg.Jobs, DefaultJobs)
	}
	if cfg.Trace {
		t.Error("trace should default to false")
	}
	if len(cfg.Prelude) != 0 {
		t.Errorf("prelude = %v, want empty", cfg.Prelude)
	}
}

func TestParseConfig_Full(t *testing.T) {
	yaml := `
color: never
jobs: 2
trace: true
prelude:
  two:
    type: F64
    value: 2
  Num:
    type: {U: 1}
    value: F64
`
	cfg, err := ParseConfig([]byte(yaml), "corecalc.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Color != ColorNever {
		t.Errorf("color = %q, want never", cfg.Color)
	}
	if cfg.Jobs != 2 {
		t.Errorf("jobs = %d, want 2", cfg.Jobs)
	}
	if !cfg.Trace {
		t.Error("expected trace to be true")
	}

	if got, want := cfg.PreludeNames(), []string{"Num", "two"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("PreludeNames() = %v, want %v", got, want)
	}
	two := cfg.Prelude["two"]
	if !ast.Equal(two.Type.Expr, &ast.F64{}) {
		t.Errorf("two.type = %s, want F64", two.Type.Expr)
	}
	if !ast.Equal(two.Value.Expr, &ast.F64Lit{Value: 2}) {
		t.Errorf("two.value = %s, want 2", two.Value.Expr)
	}
	if !ast.Equal(cfg.Prelude["Num"].Type.Expr, &ast.U{Level: 1}) {
		t.Errorf("Num.type = %s, want U(1)", cfg.Prelude["Num"].Type.Expr)
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"unknown color", "color: sometimes\n", `unknown mode "sometimes"`},
		{"negative jobs", "jobs: -1\n", "jobs must not be negative"},
		{"missing type", "prelude:\n  x:\n    value: 1\n", "prelude.x: type is required"},
		{"missing value", "prelude:\n  x:\n    type: F64\n", "prelude.x: value is required"},
		{"bad expression", "prelude:\n  x:\n    type: {U: [1]}\n    value: 1\n", "U expects a level"},
		{"not a map", "- 1\n", "parsing corecalc.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml), "corecalc.yaml")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Color != ColorAuto || cfg.Jobs != DefaultJobs {
		t.Errorf("Default() = %+v", cfg)
	}
}

func TestFindConfig(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfgPath := filepath.Join(root, "a", "corecalc.yml")
	if err := os.WriteFile(cfgPath, []byte("jobs: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	found, err := FindConfig(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != cfgPath {
		t.Errorf("FindConfig() = %q, want %q", found, cfgPath)
	}

	cfg, err := LoadConfig(found)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Jobs != 1 {
		t.Errorf("jobs = %d, want 1", cfg.Jobs)
	}
}

func TestFindConfig_PrefersYaml(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"corecalc.yml", "corecalc.yaml"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	found, err := FindConfig(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(found) != "corecalc.yaml" {
		t.Errorf("FindConfig() = %q, want corecalc.yaml", found)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "reading config") {
		t.Errorf("error = %v, want reading config failure", err)
	}
}
