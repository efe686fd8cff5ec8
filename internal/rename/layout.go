package rename

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aidanlsb/projrename/internal/paths"
)

// Layout describes where a project keeps the files the rename touches.
type Layout struct {
	// DescriptorExt is the project file extension without the dot.
	DescriptorExt string
	// MetadataFile is relative to the project folder, slash separated.
	MetadataFile string
	// ManifestGlob selects the solution file inside the solution directory.
	ManifestGlob string
}

// DefaultLayout is the classic .NET Framework project layout.
func DefaultLayout() Layout {
	return Layout{
		DescriptorExt: "csproj",
		MetadataFile:  "Properties/AssemblyInfo.cs",
		ManifestGlob:  "*.sln",
	}
}

// WithDefaults fills empty fields from DefaultLayout.
func (l Layout) WithDefaults() Layout {
	def := DefaultLayout()
	if strings.TrimSpace(l.DescriptorExt) == "" {
		l.DescriptorExt = def.DescriptorExt
	}
	if strings.TrimSpace(l.MetadataFile) == "" {
		l.MetadataFile = def.MetadataFile
	}
	if strings.TrimSpace(l.ManifestGlob) == "" {
		l.ManifestGlob = def.ManifestGlob
	}
	return l
}

// Validate rejects layouts that would make the rename escape the project
// folder or match nothing sensible.
func (l Layout) Validate() error {
	if l.DescriptorExt == "" {
		return fmt.Errorf("descriptor extension is empty")
	}
	if strings.ContainsAny(l.DescriptorExt, ".") || paths.HasInvalidFileNameChars(l.DescriptorExt) {
		return fmt.Errorf("descriptor extension %q must be a bare extension like \"csproj\"", l.DescriptorExt)
	}
	if !paths.IsLocalRel(l.MetadataFile) {
		return fmt.Errorf("metadata file %q must be relative to the project folder", l.MetadataFile)
	}
	if l.ManifestGlob == "" || strings.ContainsAny(l.ManifestGlob, paths.Separators) {
		return fmt.Errorf("manifest glob %q must be a file name pattern", l.ManifestGlob)
	}
	if _, err := filepath.Match(l.ManifestGlob, ""); err != nil {
		return fmt.Errorf("manifest glob %q: %w", l.ManifestGlob, err)
	}
	return nil
}

func (l Layout) descriptorName(project string) string {
	return project + "." + l.DescriptorExt
}

func (l Layout) metadataPath(base, project string) string {
	return filepath.Join(base, project, paths.Native(l.MetadataFile))
}
