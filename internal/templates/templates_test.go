package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vango-dev/rendr/internal/config"
	"github.com/vango-dev/rendr/internal/errors"
	"github.com/vango-dev/rendr/internal/fixture"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"minimal", false},
		{"fixtures", false},
		{"nonexistent", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Get(tt.name)
			if tt.wantErr {
				if !errors.HasCode(err, "E172") {
					t.Errorf("error = %v, want E172", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tmpl.Name != tt.name {
				t.Errorf("Name = %q, want %q", tmpl.Name, tt.name)
			}
		})
	}
}

func TestList(t *testing.T) {
	names := List()
	if len(names) != 2 || names[0] != "fixtures" || names[1] != "minimal" {
		t.Errorf("List() = %v, want [fixtures minimal]", names)
	}
}

func TestCreateFixtures(t *testing.T) {
	dir := t.TempDir()
	tmpl, _ := Get("fixtures")
	if err := tmpl.Create(dir, Config{ProjectName: "site", Addr: "localhost:9001"}); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("generated rendr.yaml does not load: %v", err)
	}
	if cfg.Name != "site" {
		t.Errorf("Name = %q, want %q", cfg.Name, "site")
	}
	if cfg.Serve.Addr != "localhost:9001" && os.Getenv(config.EnvAddr) == "" {
		t.Errorf("Serve.Addr = %q, want %q", cfg.Serve.Addr, "localhost:9001")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want default info", cfg.Log.Level)
	}

	for _, name := range []string{"before.yaml", "after.yaml", "page.yaml"} {
		path := filepath.Join(dir, "fixtures", name)
		if _, err := fixture.ParseFile(path); err != nil {
			t.Errorf("%s does not parse: %v", name, err)
		}
	}
}

func TestCreateMinimal(t *testing.T) {
	dir := t.TempDir()
	tmpl, _ := Get("minimal")
	if err := tmpl.Create(dir, Config{ProjectName: "bare"}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "fixtures")); !os.IsNotExist(err) {
		t.Error("minimal template should not write fixtures")
	}
	if _, err := config.Load(dir); err != nil {
		t.Errorf("generated rendr.yaml does not load: %v", err)
	}
}
