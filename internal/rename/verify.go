package rename

import (
	"fmt"
	"path/filepath"

	"github.com/aidanlsb/projrename/internal/fsys"
)

// Verifier checks that a Context describes a project that can be renamed.
type Verifier struct {
	engine
}

// NewVerifier returns a Verifier reading through fs.
func NewVerifier(fs fsys.FileSystem, opts ...Option) *Verifier {
	return &Verifier{engine: newEngine(fs, opts)}
}

// checkFunc returns a non-empty reason when the precondition does not hold.
// An error means the check could not be evaluated at all.
type checkFunc func(v *Verifier, c *Context) (reason string, err error)

var checklist = []struct {
	id  Check
	run checkFunc
}{
	{CheckRelativePath, (*Verifier).checkRelativePath},
	{CheckOriginalName, (*Verifier).checkOriginalName},
	{CheckNewName, (*Verifier).checkNewName},
	{CheckBaseDirectory, (*Verifier).checkBaseDirectory},
	{CheckSingleSolution, (*Verifier).checkSingleSolution},
	{CheckDescriptorExists, (*Verifier).checkDescriptorExists},
	{CheckNewFolderAbsent, (*Verifier).checkNewFolderAbsent},
	{CheckNewDescriptorAbsent, (*Verifier).checkNewDescriptorAbsent},
	{CheckMetadataExists, (*Verifier).checkMetadataExists},
	{CheckSolutionReference, (*Verifier).checkSolutionReference},
	{CheckRootNamespace, (*Verifier).checkRootNamespace},
	{CheckAssemblyName, (*Verifier).checkAssemblyName},
	{CheckAssemblyTitle, (*Verifier).checkAssemblyTitle},
	{CheckAssemblyProduct, (*Verifier).checkAssemblyProduct},
}

// Verify runs every check in order and stops at the first one that fails,
// recording its message in c.FailureReason. Derived paths are filled in as
// checks pass. It returns true only when all checks pass.
func (v *Verifier) Verify(c *Context) bool {
	c.resetDerived()

	for _, chk := range checklist {
		reason, err := chk.run(v, c)
		if err != nil {
			c.FailedCheck = chk.id
			c.FailureReason = fmt.Sprintf("unable to verify %s: %v", chk.id, err)
			v.logger.Error("check aborted", "check", chk.id, "err", err)
			return false
		}
		if reason != "" {
			c.FailedCheck = chk.id
			c.FailureReason = reason
			v.logger.Debug("check failed", "check", chk.id, "reason", reason)
			return false
		}
		v.logger.Debug("check passed", "check", chk.id)
	}

	c.verified = true
	return true
}

func (v *Verifier) checkRelativePath(c *Context) (string, error) {
	if v.fs.PathHasInvalidChars(c.RelativePath) {
		return fmt.Sprintf("Relative path is not valid: %s", c.RelativePath), nil
	}
	return "", nil
}

func (v *Verifier) checkOriginalName(c *Context) (string, error) {
	if !v.validName(c.OriginalName) {
		return fmt.Sprintf("Original project name is not valid: %s", c.OriginalName), nil
	}
	return "", nil
}

func (v *Verifier) checkNewName(c *Context) (string, error) {
	if !v.validName(c.NewName) {
		return fmt.Sprintf("New project name is not valid: %s", c.NewName), nil
	}
	return "", nil
}

// validName rejects names that would not stay a single folder under the
// solution directory once joined.
func (v *Verifier) validName(name string) bool {
	switch name {
	case "", ".", "..":
		return false
	}
	return !v.fs.FilenameHasInvalidChars(name)
}

func (v *Verifier) checkBaseDirectory(c *Context) (string, error) {
	full, err := v.fs.ResolveFullPath(c.RelativePath)
	if err != nil {
		return "", err
	}
	c.BasePath = full
	if !v.fs.DirectoryExists(full) {
		return fmt.Sprintf("Solution directory does not exist: %s", full), nil
	}
	return "", nil
}

func (v *Verifier) checkSingleSolution(c *Context) (string, error) {
	files, err := v.fs.ListFiles(c.BasePath, v.layout.ManifestGlob)
	if err != nil {
		return "", err
	}
	if len(files) != 1 {
		return fmt.Sprintf("Solution directory does not contain exactly 1 %s file (found %d): %s",
			v.layout.ManifestGlob, len(files), c.BasePath), nil
	}
	c.SolutionPath = files[0]
	return "", nil
}

func (v *Verifier) checkDescriptorExists(c *Context) (string, error) {
	c.OriginalDescriptorPath = filepath.Join(c.BasePath, c.OriginalName, v.layout.descriptorName(c.OriginalName))
	if !v.fs.FileExists(c.OriginalDescriptorPath) {
		return fmt.Sprintf("Project file does not exist: %s", c.OriginalDescriptorPath), nil
	}
	return "", nil
}

func (v *Verifier) checkNewFolderAbsent(c *Context) (string, error) {
	out := filepath.Join(c.BasePath, c.NewName)
	// A plain file in the way would make the folder move fail just the same.
	if v.fs.DirectoryExists(out) || v.fs.FileExists(out) {
		return fmt.Sprintf("Output project folder already exists: %s", out), nil
	}
	return "", nil
}

func (v *Verifier) checkNewDescriptorAbsent(c *Context) (string, error) {
	c.NewDescriptorPath = filepath.Join(c.BasePath, c.NewName, v.layout.descriptorName(c.NewName))
	if v.fs.FileExists(c.NewDescriptorPath) {
		return fmt.Sprintf("Output project file already exists: %s", c.NewDescriptorPath), nil
	}
	return "", nil
}

func (v *Verifier) checkMetadataExists(c *Context) (string, error) {
	c.MetadataPath = v.layout.metadataPath(c.BasePath, c.OriginalName)
	if !v.fs.FileExists(c.MetadataPath) {
		return fmt.Sprintf("AssemblyInfo file does not exist: %s", c.MetadataPath), nil
	}
	return "", nil
}

func (v *Verifier) checkSolutionReference(c *Context) (string, error) {
	text, err := v.fs.ReadAllText(c.SolutionPath)
	if err != nil {
		return "", err
	}
	re, err := manifestEntry(c.OriginalName, v.layout.DescriptorExt)
	if err != nil {
		return "", err
	}
	if !re.MatchString(text) {
		return fmt.Sprintf("Solution file does not reference project: %s", c.SolutionPath), nil
	}
	return "", nil
}

func (v *Verifier) checkRootNamespace(c *Context) (string, error) {
	return v.requireText(c.OriginalDescriptorPath, rootNamespaceTag(c.OriginalName),
		"Project file has an unexpected RootNamespace: %s")
}

func (v *Verifier) checkAssemblyName(c *Context) (string, error) {
	return v.requireText(c.OriginalDescriptorPath, assemblyNameTag(c.OriginalName),
		"Project file has an unexpected AssemblyName: %s")
}

func (v *Verifier) checkAssemblyTitle(c *Context) (string, error) {
	return v.requireText(c.MetadataPath, assemblyTitleAttr(c.OriginalName),
		"AssemblyInfo file has an unexpected AssemblyTitle: %s")
}

func (v *Verifier) checkAssemblyProduct(c *Context) (string, error) {
	return v.requireText(c.MetadataPath, assemblyProductAttr(c.OriginalName),
		"AssemblyInfo file has an unexpected AssemblyProduct: %s")
}

func (v *Verifier) requireText(path, text, reasonFormat string) (string, error) {
	ok, err := v.fileContains(path, text)
	if err != nil {
		return "", err
	}
	if !ok {
		return fmt.Sprintf(reasonFormat, path), nil
	}
	return "", nil
}
