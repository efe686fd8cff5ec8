package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/projrename/internal/atomicfile"
)

type persistedConfig struct {
	SkipConfirm *bool            `toml:"skip_confirm,omitempty"`
	Audit       *bool            `toml:"audit,omitempty"`
	AuditFile   *string          `toml:"audit_file,omitempty"`
	LogLevel    *string          `toml:"log_level,omitempty"`
	Layout      *persistedLayout `toml:"layout,omitempty"`
}

type persistedLayout struct {
	DescriptorExt *string `toml:"descriptor_ext,omitempty"`
	MetadataFile  *string `toml:"metadata_file,omitempty"`
	ManifestGlob  *string `toml:"manifest_glob,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// SaveTo writes the global config to a specific path atomically.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	out := persistedConfig{
		Audit:     cfg.Audit,
		AuditFile: nonEmptyPtr(cfg.AuditFile),
		LogLevel:  nonEmptyPtr(cfg.LogLevel),
	}
	if cfg.SkipConfirm {
		skip := true
		out.SkipConfirm = &skip
	}

	layout := persistedLayout{
		DescriptorExt: nonEmptyPtr(cfg.Layout.DescriptorExt),
		MetadataFile:  nonEmptyPtr(cfg.Layout.MetadataFile),
		ManifestGlob:  nonEmptyPtr(cfg.Layout.ManifestGlob),
	}
	if layout.DescriptorExt != nil || layout.MetadataFile != nil || layout.ManifestGlob != nil {
		out.Layout = &layout
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := atomicfile.WriteFile(path, buf.Bytes(), atomicfile.DefaultPerm); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}

	return nil
}
