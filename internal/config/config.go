// Package config handles global projrename configuration and per-solution
// layout overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/projrename/internal/atomicfile"
)

const (
	appDir         = "projrename"
	configFileName = "config.toml"

	// DefaultAuditFile is the audit log file name used when audit_file is unset.
	DefaultAuditFile = "audit.log"

	// DefaultLogLevel is used when log_level is unset.
	DefaultLogLevel = "warn"
)

// Config represents the global projrename configuration.
type Config struct {
	// SkipConfirm skips the interactive backup prompt.
	SkipConfirm bool `toml:"skip_confirm"`

	// Audit enables the rename history log. Nil means enabled.
	Audit *bool `toml:"audit"`

	// AuditFile overrides the history log location. Relative paths are
	// resolved against the config file's directory.
	AuditFile string `toml:"audit_file"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// Layout overrides the built-in project layout.
	Layout LayoutConfig `toml:"layout"`
}

// LayoutConfig names the files a rename touches. Empty fields fall through
// to the next layer.
type LayoutConfig struct {
	DescriptorExt string `toml:"descriptor_ext" yaml:"descriptor_ext,omitempty"`
	MetadataFile  string `toml:"metadata_file" yaml:"metadata_file,omitempty"`
	ManifestGlob  string `toml:"manifest_glob" yaml:"manifest_glob,omitempty"`
}

// Over returns base with every non-empty field of l applied on top.
func (l LayoutConfig) Over(base LayoutConfig) LayoutConfig {
	if v := strings.TrimSpace(l.DescriptorExt); v != "" {
		base.DescriptorExt = strings.TrimPrefix(v, ".")
	}
	if v := strings.TrimSpace(l.MetadataFile); v != "" {
		base.MetadataFile = v
	}
	if v := strings.TrimSpace(l.ManifestGlob); v != "" {
		base.ManifestGlob = v
	}
	return base
}

// AuditEnabled reports whether renames should be recorded.
func (c *Config) AuditEnabled() bool {
	return c.Audit == nil || *c.Audit
}

// ResolveAuditPath returns the audit log path for a config loaded from
// configPath.
func (c *Config) ResolveAuditPath(configPath string) string {
	dir := filepath.Dir(configPath)
	file := strings.TrimSpace(c.AuditFile)
	if file == "" {
		return filepath.Join(dir, DefaultAuditFile)
	}
	if strings.HasPrefix(file, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, file[2:])
		}
	}
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(dir, file)
}

// GetLogLevel returns the configured log level or the default.
func (c *Config) GetLogLevel() string {
	if lvl := strings.TrimSpace(c.LogLevel); lvl != "" {
		return strings.ToLower(lvl)
	}
	return DefaultLogLevel
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	return LoadAllowMissing(DefaultPath())
}

// LoadAllowMissing loads path, returning an empty config when the file does
// not exist.
func LoadAllowMissing(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	md, err := toml.DecodeFile(path, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %q in config %s", undecoded[0].String(), path)
	}
	return &config, nil
}

// ResolveConfigPath returns explicit when set, otherwise DefaultPath.
func ResolveConfigPath(explicit string) string {
	if p := strings.TrimSpace(explicit); p != "" {
		return p
	}
	return DefaultPath()
}

// DefaultPath returns the default config file path.
// Checks ~/.config/projrename/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if xdgPath, err := XDGPath(); err == nil {
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, appDir, configFileName)
	}

	return filepath.Join(".", configFileName)
}

// XDGPath returns the XDG-style config path (~/.config/projrename/config.toml).
func XDGPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appDir, configFileName), nil
}

const defaultConfig = `# projrename configuration

# Skip the "make a backup" prompt (same as --skip-confirm).
# skip_confirm = false

# Record renames in a JSON-lines history log.
# audit = true
# audit_file = "audit.log"

# One of debug, info, warn, error.
# log_level = "warn"

# Files touched by a rename. A projrename.yaml in the solution
# directory overrides these for that solution.
# [layout]
# descriptor_ext = "csproj"
# metadata_file = "Properties/AssemblyInfo.cs"
# manifest_glob = "*.sln"
`

// CreateDefaultAt writes a commented default config to path unless a file
// already exists there. It reports whether a file was created.
func CreateDefaultAt(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := atomicfile.WriteString(path, defaultConfig, atomicfile.DefaultPerm); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}

	return true, nil
}
