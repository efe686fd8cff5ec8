package rename

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aidanlsb/projrename/internal/fsys"
)

// Executor performs the rename on a verified Context.
type Executor struct {
	engine
}

// NewExecutor returns an Executor writing through fs. Use the same layout as
// the Verifier that checked the Context.
func NewExecutor(fs fsys.FileSystem, opts ...Option) *Executor {
	return &Executor{engine: newEngine(fs, opts)}
}

// PlannedStep describes one mutation Execute will perform.
type PlannedStep struct {
	Step        Step   `json:"step"`
	Description string `json:"description"`
	Path        string `json:"path"`
	Target      string `json:"target,omitempty"`
}

// Plan lists the mutations Execute would perform on c, in order. It does not
// touch the filesystem.
func (e *Executor) Plan(c *Context) []PlannedStep {
	return []PlannedStep{
		{
			Step:        StepRewriteMetadata,
			Description: fmt.Sprintf("Set AssemblyTitle and AssemblyProduct to %q", c.NewName),
			Path:        c.MetadataPath,
		},
		{
			Step:        StepRewriteDescriptor,
			Description: fmt.Sprintf("Set RootNamespace and AssemblyName to %q", c.NewName),
			Path:        c.OriginalDescriptorPath,
		},
		{
			Step:        StepRenameDescriptor,
			Description: "Rename project file",
			Path:        c.OriginalDescriptorPath,
			Target:      e.renamedDescriptorPath(c),
		},
		{
			Step:        StepMoveFolder,
			Description: "Rename project folder",
			Path:        e.originalFolder(c),
			Target:      e.newFolder(c),
		},
		{
			Step:        StepRewriteSolution,
			Description: fmt.Sprintf("Point the solution entry at %q", c.NewName),
			Path:        c.SolutionPath,
		},
	}
}

// Execute rewrites the identity metadata, renames the descriptor and the
// project folder, and updates the solution entry, in that order. The first
// failure stops the sequence, records c.FailedStep and returns false; nothing
// already done is undone.
//
// Execute panics if c has not passed Verify.
func (e *Executor) Execute(c *Context) bool {
	if !c.verified {
		panic("rename: Execute called with a Context that has not passed Verify")
	}
	c.FailedStep = StepNone

	steps := []struct {
		id  Step
		run func(*Context) error
	}{
		{StepRewriteMetadata, e.rewriteMetadata},
		{StepRewriteDescriptor, e.rewriteDescriptor},
		{StepRenameDescriptor, e.renameDescriptor},
		{StepMoveFolder, e.moveFolder},
		{StepRewriteSolution, e.rewriteSolution},
	}

	for _, s := range steps {
		if err := s.run(c); err != nil {
			c.FailedStep = s.id
			e.logger.Error("rename step failed", "step", s.id, "err", err)
			return false
		}
		e.logger.Debug("rename step done", "step", s.id)
	}
	return true
}

func (e *Executor) rewriteMetadata(c *Context) error {
	return e.replaceInFile(c.MetadataPath,
		assemblyTitleAttr(c.OriginalName), assemblyTitleAttr(c.NewName),
		assemblyProductAttr(c.OriginalName), assemblyProductAttr(c.NewName),
	)
}

func (e *Executor) rewriteDescriptor(c *Context) error {
	return e.replaceInFile(c.OriginalDescriptorPath,
		rootNamespaceTag(c.OriginalName), rootNamespaceTag(c.NewName),
		assemblyNameTag(c.OriginalName), assemblyNameTag(c.NewName),
	)
}

// renameDescriptor renames the file inside the still original folder, so the
// folder move that follows carries it to its final path.
func (e *Executor) renameDescriptor(c *Context) error {
	return e.fs.MoveFile(c.OriginalDescriptorPath, e.renamedDescriptorPath(c))
}

func (e *Executor) moveFolder(c *Context) error {
	return e.fs.MoveDirectory(e.originalFolder(c), e.newFolder(c))
}

func (e *Executor) rewriteSolution(c *Context) error {
	text, err := e.fs.ReadAllText(c.SolutionPath)
	if err != nil {
		return err
	}
	out, n, err := replaceManifestEntries(text, c.OriginalName, c.NewName, e.layout.DescriptorExt)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no entry for %q in %s", c.OriginalName, c.SolutionPath)
	}
	return e.fs.WriteAllText(c.SolutionPath, out)
}

// replaceInFile applies the old/new pairs and writes the result back.
func (e *Executor) replaceInFile(path string, oldnew ...string) error {
	text, err := e.fs.ReadAllText(path)
	if err != nil {
		return err
	}
	return e.fs.WriteAllText(path, strings.NewReplacer(oldnew...).Replace(text))
}

func (e *Executor) originalFolder(c *Context) string {
	return filepath.Join(c.BasePath, c.OriginalName)
}

func (e *Executor) newFolder(c *Context) string {
	return filepath.Join(c.BasePath, c.NewName)
}

func (e *Executor) renamedDescriptorPath(c *Context) string {
	return filepath.Join(e.originalFolder(c), e.layout.descriptorName(c.NewName))
}
