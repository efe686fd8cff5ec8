package rename

import (
	"testing"

	"github.com/aidanlsb/projrename/internal/fsys"
)

const (
	basePath            = "/foo/bar"
	solutionDir         = "/foo/bar/pasta"
	slnPath             = "/foo/bar/pasta/fake.sln"
	originalProjDir     = "/foo/bar/pasta/way2.proj1"
	newProjDir          = "/foo/bar/pasta/way2.proj2"
	originalProjPath    = "/foo/bar/pasta/way2.proj1/way2.proj1.csproj"
	newProjPath         = "/foo/bar/pasta/way2.proj2/way2.proj2.csproj"
	assemblyInfoPath    = "/foo/bar/pasta/way2.proj1/Properties/AssemblyInfo.cs"
	newAssemblyInfoPath = "/foo/bar/pasta/way2.proj2/Properties/AssemblyInfo.cs"
)

const slnContent = `
Project("{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}") = "way2.proj1", "way2.proj1\way2.proj1.csproj", "{A9444A77-69FA-43B1-A321-835DDD8D1D8F}"
EndProject
`

const slnResult = `
Project("{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}") = "way2.proj2", "way2.proj2\way2.proj2.csproj", "{A9444A77-69FA-43B1-A321-835DDD8D1D8F}"
EndProject
`

const projContent = `
<Project>
<RootNamespace>way2.proj1</RootNamespace>
<AssemblyName>way2.proj1</AssemblyName>
</Project>
`

const projResult = `
<Project>
<RootNamespace>way2.proj2</RootNamespace>
<AssemblyName>way2.proj2</AssemblyName>
</Project>
`

const assemblyInfoContent = `
[assembly: AssemblyTitle("way2.proj1")]
[assembly: AssemblyDescription("")]
[assembly: AssemblyProduct("way2.proj1")]
`

const assemblyInfoResult = `
[assembly: AssemblyTitle("way2.proj2")]
[assembly: AssemblyDescription("")]
[assembly: AssemblyProduct("way2.proj2")]
`

// newFixture returns a solution at /foo/bar/pasta holding way2.proj1, with
// /foo/bar as the working directory.
func newFixture() *fsys.Mem {
	m := fsys.NewMem(basePath)
	m.AddFile(slnPath, slnContent)
	m.AddFile(originalProjPath, projContent)
	m.AddFile(assemblyInfoPath, assemblyInfoContent)
	return m
}

func mustResolve(t *testing.T, original, newName string) *Context {
	t.Helper()
	c, ok := Resolve([]string{original, newName})
	if !ok {
		t.Fatalf("Resolve(%q, %q) failed", original, newName)
	}
	return c
}

func defaultContext(t *testing.T) *Context {
	t.Helper()
	return mustResolve(t, `pasta\way2.proj1`, "way2.proj2")
}

func mustRead(t *testing.T, fs fsys.FileSystem, path string) string {
	t.Helper()
	text, err := fs.ReadAllText(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return text
}
