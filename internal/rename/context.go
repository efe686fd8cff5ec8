// Package rename verifies and performs an in-place rename of a project that
// belongs to a solution: the project folder, its descriptor file, the
// identity metadata inside both, and the solution's entry for the project.
//
// The flow is Resolve -> Verifier.Verify -> Executor.Execute, threading one
// *Context through all three. All storage access goes through fsys.FileSystem.
package rename

import "fmt"

// Context carries everything one rename needs. Create it with Resolve, pass
// it to Verify, then to Execute. It is not reused across renames.
type Context struct {
	OriginalName string
	NewName      string
	RelativePath string

	// Populated by Verify as checks pass.
	BasePath               string
	SolutionPath           string
	OriginalDescriptorPath string
	NewDescriptorPath      string
	MetadataPath           string

	// FailureReason is the message of the first failed check, empty when
	// verification has not failed.
	FailureReason string
	FailedCheck   Check
	FailedStep    Step

	verified bool
}

// Verified reports whether the last Verify call on c succeeded.
func (c *Context) Verified() bool { return c.verified }

func (c *Context) resetDerived() {
	c.BasePath = ""
	c.SolutionPath = ""
	c.OriginalDescriptorPath = ""
	c.NewDescriptorPath = ""
	c.MetadataPath = ""
	c.FailureReason = ""
	c.FailedCheck = CheckNone
	c.FailedStep = StepNone
	c.verified = false
}

// Check identifies one precondition, in evaluation order.
type Check int

const (
	CheckNone Check = iota
	CheckRelativePath
	CheckOriginalName
	CheckNewName
	CheckBaseDirectory
	CheckSingleSolution
	CheckDescriptorExists
	CheckNewFolderAbsent
	CheckNewDescriptorAbsent
	CheckMetadataExists
	CheckSolutionReference
	CheckRootNamespace
	CheckAssemblyName
	CheckAssemblyTitle
	CheckAssemblyProduct
)

var checkNames = [...]string{
	CheckNone:                "none",
	CheckRelativePath:        "relative_path",
	CheckOriginalName:        "original_name",
	CheckNewName:             "new_name",
	CheckBaseDirectory:       "base_directory",
	CheckSingleSolution:      "single_solution",
	CheckDescriptorExists:    "descriptor_exists",
	CheckNewFolderAbsent:     "new_folder_absent",
	CheckNewDescriptorAbsent: "new_descriptor_absent",
	CheckMetadataExists:      "metadata_exists",
	CheckSolutionReference:   "solution_reference",
	CheckRootNamespace:       "root_namespace",
	CheckAssemblyName:        "assembly_name",
	CheckAssemblyTitle:       "assembly_title",
	CheckAssemblyProduct:     "assembly_product",
}

func (c Check) String() string {
	if c < 0 || int(c) >= len(checkNames) {
		return "unknown"
	}
	return checkNames[c]
}

// Step identifies one mutation performed by Execute, in execution order.
type Step int

const (
	StepNone Step = iota
	StepRewriteMetadata
	StepRewriteDescriptor
	StepRenameDescriptor
	StepMoveFolder
	StepRewriteSolution
)

var stepNames = [...]string{
	StepNone:              "none",
	StepRewriteMetadata:   "rewrite_metadata",
	StepRewriteDescriptor: "rewrite_descriptor",
	StepRenameDescriptor:  "rename_descriptor",
	StepMoveFolder:        "move_folder",
	StepRewriteSolution:   "rewrite_solution",
}

func (s Step) String() string {
	if s < 0 || int(s) >= len(stepNames) {
		return "unknown"
	}
	return stepNames[s]
}

// MarshalText encodes the check by name.
func (c Check) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText decodes a check name.
func (c *Check) UnmarshalText(b []byte) error {
	i, err := lookupName(checkNames[:], string(b), "check")
	*c = Check(i)
	return err
}

// MarshalText encodes the step by name.
func (s Step) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a step name.
func (s *Step) UnmarshalText(b []byte) error {
	i, err := lookupName(stepNames[:], string(b), "step")
	*s = Step(i)
	return err
}

func lookupName(names []string, name, kind string) (int, error) {
	for i, n := range names {
		if n == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", kind, name)
}
