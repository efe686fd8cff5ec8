package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadFrom(t *testing.T) {
	t.Run("full file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		writeFile(t, path, `skip_confirm = true
audit = false
audit_file = "renames.log"
log_level = "DEBUG"

[layout]
descriptor_ext = "vbproj"
metadata_file = "My Project/AssemblyInfo.vb"
`)

		cfg, err := LoadFrom(path)
		if err != nil {
			t.Fatalf("LoadFrom returned error: %v", err)
		}
		if !cfg.SkipConfirm {
			t.Error("expected skip_confirm=true")
		}
		if cfg.AuditEnabled() {
			t.Error("expected audit disabled")
		}
		if got := cfg.GetLogLevel(); got != "debug" {
			t.Errorf("log level = %q, want debug", got)
		}
		if cfg.Layout.DescriptorExt != "vbproj" {
			t.Errorf("descriptor_ext = %q", cfg.Layout.DescriptorExt)
		}
		if cfg.Layout.ManifestGlob != "" {
			t.Errorf("manifest_glob should be unset, got %q", cfg.Layout.ManifestGlob)
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		writeFile(t, path, "skip_confrim = true\n")

		_, err := LoadFrom(path)
		if err == nil || !strings.Contains(err.Error(), "skip_confrim") {
			t.Fatalf("expected unknown key error, got %v", err)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		writeFile(t, path, "skip_confirm = \n")

		if _, err := LoadFrom(path); err == nil {
			t.Fatal("expected parse error")
		}
	})
}

func TestLoadAllowMissing(t *testing.T) {
	cfg, err := LoadAllowMissing(filepath.Join(t.TempDir(), "nope", "config.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SkipConfirm || !cfg.AuditEnabled() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if got := cfg.GetLogLevel(); got != DefaultLogLevel {
		t.Errorf("log level = %q, want %q", got, DefaultLogLevel)
	}
}

func TestResolveAuditPath(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	abs := filepath.Join(dir, "elsewhere", "history.log")

	tests := []struct {
		name string
		file string
		want string
	}{
		{"default", "", filepath.Join(dir, DefaultAuditFile)},
		{"relative", "logs/renames.log", filepath.Join(dir, "logs", "renames.log")},
		{"absolute", abs, abs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{AuditFile: tt.file}
			if got := cfg.ResolveAuditPath(configPath); got != tt.want {
				t.Errorf("ResolveAuditPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveConfigPath(t *testing.T) {
	if got := ResolveConfigPath("  /tmp/x.toml "); got != "/tmp/x.toml" {
		t.Errorf("explicit path = %q", got)
	}
	if got := ResolveConfigPath(""); got != DefaultPath() {
		t.Errorf("empty path = %q, want %q", got, DefaultPath())
	}
}

func TestCreateDefaultAt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projrename", "config.toml")

	created, err := CreateDefaultAt(path)
	if err != nil {
		t.Fatalf("CreateDefaultAt returned error: %v", err)
	}
	if !created {
		t.Fatal("expected file to be created")
	}

	// Every line of the template is commented, so it loads as defaults.
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("default config does not parse: %v", err)
	}
	if cfg.SkipConfirm || cfg.Layout != (LayoutConfig{}) {
		t.Errorf("expected empty config, got %+v", cfg)
	}

	writeFile(t, path, "skip_confirm = true\n")
	created, err = CreateDefaultAt(path)
	if err != nil {
		t.Fatalf("second CreateDefaultAt returned error: %v", err)
	}
	if created {
		t.Error("expected existing file to be kept")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "skip_confirm = true\n" {
		t.Errorf("existing file overwritten: %q", data)
	}
}

func TestLayoutOver(t *testing.T) {
	base := LayoutConfig{DescriptorExt: "csproj", MetadataFile: "Properties/AssemblyInfo.cs", ManifestGlob: "*.sln"}

	got := LayoutConfig{DescriptorExt: ".fsproj", MetadataFile: "  "}.Over(base)
	want := LayoutConfig{DescriptorExt: "fsproj", MetadataFile: "Properties/AssemblyInfo.cs", ManifestGlob: "*.sln"}
	if got != want {
		t.Errorf("Over() = %+v, want %+v", got, want)
	}
}
