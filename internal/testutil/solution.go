// Package testutil provides reusable test utilities for projrename
// integration tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CSharpProjectType is the solution type GUID of a C# project.
const CSharpProjectType = "{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}"

// TestSolution represents a temporary on-disk solution for testing.
type TestSolution struct {
	Path       string
	ConfigPath string

	t            *testing.T
	solutionName string
	projects     []string
	files        map[string]string
	config       string
}

// NewTestSolution creates a new solution builder.
// Call Build() to create the actual directory.
func NewTestSolution(t *testing.T) *TestSolution {
	t.Helper()
	return &TestSolution{
		t:            t,
		solutionName: "App.sln",
		files:        make(map[string]string),
	}
}

// WithProject adds a project whose folder, project file and AssemblyInfo all
// use name, plus its entry in the solution file.
func (s *TestSolution) WithProject(name string) *TestSolution {
	s.projects = append(s.projects, name)
	s.files[filepath.Join(name, name+".csproj")] = ProjectFile(name)
	s.files[filepath.Join(name, "Properties", "AssemblyInfo.cs")] = AssemblyInfoFile(name)
	return s
}

// WithFile adds a file relative to the solution directory.
func (s *TestSolution) WithFile(path, content string) *TestSolution {
	s.files[filepath.FromSlash(path)] = content
	return s
}

// WithSolutionName changes the solution file name (default App.sln).
func (s *TestSolution) WithSolutionName(name string) *TestSolution {
	s.solutionName = name
	return s
}

// WithConfig sets the global config.toml content used by RunCLI.
func (s *TestSolution) WithConfig(toml string) *TestSolution {
	s.config = toml
	return s
}

// Build creates the solution directory, its files and a config file in a
// separate directory.
func (s *TestSolution) Build() *TestSolution {
	s.t.Helper()

	s.Path = s.t.TempDir()
	s.ConfigPath = filepath.Join(s.t.TempDir(), "config.toml")

	if s.solutionName != "" {
		s.writeFile(s.solutionName, SolutionFile(s.projects...))
	}
	for path, content := range s.files {
		s.writeFile(path, content)
	}
	writeFile(s.t, s.ConfigPath, s.config)

	return s
}

// ProjectPath returns the absolute path of a project folder.
func (s *TestSolution) ProjectPath(name string) string {
	return filepath.Join(s.Path, name)
}

func (s *TestSolution) writeFile(relPath, content string) {
	s.t.Helper()
	writeFile(s.t, filepath.Join(s.Path, relPath), content)
}

func writeFile(t *testing.T, fullPath, content string) {
	t.Helper()
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create directory %s: %v", dir, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", fullPath, err)
	}
}

// ReadFile reads a file relative to the solution directory.
func (s *TestSolution) ReadFile(relPath string) string {
	s.t.Helper()
	fullPath := filepath.Join(s.Path, filepath.FromSlash(relPath))
	content, err := os.ReadFile(fullPath)
	if err != nil {
		s.t.Fatalf("failed to read file %s: %v", fullPath, err)
	}
	return string(content)
}

// ProjectGUID returns the stable project GUID used for the i-th project.
func ProjectGUID(i int) string {
	return fmt.Sprintf("{%08X-0000-4000-8000-%012X}", i+1, i+1)
}

// SolutionEntry returns the Project line for name.
func SolutionEntry(name, guid string) string {
	return fmt.Sprintf(`Project("%s") = "%s", "%s\%s.csproj", "%s"`, CSharpProjectType, name, name, name, guid)
}

// SolutionFile returns a minimal solution listing projects in order.
func SolutionFile(projects ...string) string {
	var b strings.Builder
	b.WriteString("\r\nMicrosoft Visual Studio Solution File, Format Version 12.00\r\n")
	b.WriteString("# Visual Studio 14\r\n")
	for i, name := range projects {
		b.WriteString(SolutionEntry(name, ProjectGUID(i)))
		b.WriteString("\r\nEndProject\r\n")
	}
	b.WriteString("Global\r\nEndGlobal\r\n")
	return b.String()
}

// ProjectFile returns a minimal .csproj for name.
func ProjectFile(name string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<Project ToolsVersion="14.0" xmlns="http://schemas.microsoft.com/developer/msbuild/2003">
  <PropertyGroup>
    <OutputType>Library</OutputType>
    <RootNamespace>%s</RootNamespace>
    <AssemblyName>%s</AssemblyName>
  </PropertyGroup>
  <ItemGroup>
    <Compile Include="Properties\AssemblyInfo.cs" />
  </ItemGroup>
</Project>
`, name, name)
}

// AssemblyInfoFile returns a minimal AssemblyInfo.cs for name.
func AssemblyInfoFile(name string) string {
	return fmt.Sprintf(`using System.Reflection;

[assembly: AssemblyTitle("%s")]
[assembly: AssemblyDescription("")]
[assembly: AssemblyProduct("%s")]
[assembly: AssemblyVersion("1.0.0.0")]
`, name, name)
}
