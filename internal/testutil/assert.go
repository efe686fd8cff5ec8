package testutil

import (
	"os"
	"path/filepath"
	"strings"
)

// AssertFileExists fails the test if the file does not exist.
func (s *TestSolution) AssertFileExists(relPath string) {
	s.t.Helper()
	info, err := os.Stat(s.abs(relPath))
	if err != nil {
		s.t.Errorf("expected file to exist: %s", relPath)
		return
	}
	if info.IsDir() {
		s.t.Errorf("expected %s to be a file, but it's a directory", relPath)
	}
}

// AssertNotExists fails the test if anything exists at relPath.
func (s *TestSolution) AssertNotExists(relPath string) {
	s.t.Helper()
	if _, err := os.Stat(s.abs(relPath)); err == nil {
		s.t.Errorf("expected %s to not exist", relPath)
	}
}

// AssertDirExists fails the test if the directory does not exist.
func (s *TestSolution) AssertDirExists(relPath string) {
	s.t.Helper()
	info, err := os.Stat(s.abs(relPath))
	if os.IsNotExist(err) {
		s.t.Errorf("expected directory to exist: %s", relPath)
		return
	}
	if err == nil && !info.IsDir() {
		s.t.Errorf("expected %s to be a directory, but it's a file", relPath)
	}
}

// AssertFileContains fails the test if the file does not contain the substring.
func (s *TestSolution) AssertFileContains(relPath, substr string) {
	s.t.Helper()
	content := s.ReadFile(relPath)
	if !strings.Contains(content, substr) {
		s.t.Errorf("expected file %s to contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertFileNotContains fails the test if the file contains the substring.
func (s *TestSolution) AssertFileNotContains(relPath, substr string) {
	s.t.Helper()
	content := s.ReadFile(relPath)
	if strings.Contains(content, substr) {
		s.t.Errorf("expected file %s to not contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertProjectNamed checks that every identity key of the project folder
// name reads name.
func (s *TestSolution) AssertProjectNamed(name string) {
	s.t.Helper()
	descriptor := name + "/" + name + ".csproj"
	info := name + "/Properties/AssemblyInfo.cs"

	s.AssertFileExists(descriptor)
	s.AssertFileExists(info)
	s.AssertFileContains(descriptor, "<RootNamespace>"+name+"</RootNamespace>")
	s.AssertFileContains(descriptor, "<AssemblyName>"+name+"</AssemblyName>")
	s.AssertFileContains(info, `[assembly: AssemblyTitle("`+name+`")]`)
	s.AssertFileContains(info, `[assembly: AssemblyProduct("`+name+`")]`)
}

func (s *TestSolution) abs(relPath string) string {
	return filepath.Join(s.Path, filepath.FromSlash(relPath))
}
