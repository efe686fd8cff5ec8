package cli

import (
	"fmt"
	"path/filepath"

	"github.com/aidanlsb/projrename/internal/audit"
	"github.com/aidanlsb/projrename/internal/config"
	"github.com/aidanlsb/projrename/internal/fsys"
	"github.com/aidanlsb/projrename/internal/refscan"
	"github.com/aidanlsb/projrename/internal/rename"
	"github.com/aidanlsb/projrename/internal/shellquote"
	"github.com/aidanlsb/projrename/internal/ui"
)

const (
	backupPrompt   = "Make a backup before renaming. Continue?"
	partialFailure = "Rename failed partway through. Restore from your backup."

	warnStaleReference = "STALE_PROJECT_REFERENCE"
)

var (
	skipConfirm bool
	dryRun      bool
)

type renameOptions struct {
	skipConfirm bool
	dryRun      bool
	checkOnly   bool
}

type renameResult struct {
	OriginalName string               `json:"original_name"`
	NewName      string               `json:"new_name"`
	RelativePath string               `json:"relative_path"`
	BasePath     string               `json:"base_path"`
	SolutionPath string               `json:"solution_path"`
	DryRun       bool                 `json:"dry_run,omitempty"`
	Applied      bool                 `json:"applied"`
	Steps        []rename.PlannedStep `json:"steps,omitempty"`
}

func runRename(args []string, opts renameOptions) error {
	c, ok := rename.Resolve(args)
	if !ok {
		return printUsage(len(args))
	}

	if !isJSONOutput() {
		fmt.Println(ui.Field("Original name", ui.Name(c.OriginalName)))
		fmt.Println(ui.Field("New name", ui.Name(c.NewName)))
		fmt.Println(ui.Field("Relative path", ui.FilePath(c.RelativePath)))
	}

	fs := newFileSystem()
	layout, err := effectiveLayout(fs, c.RelativePath)
	if err != nil {
		return handleError(ErrConfigInvalid, err, "Check the [layout] table in config.toml and "+config.SolutionConfigFile)
	}

	ropts := []rename.Option{rename.WithLayout(layout), rename.WithLogger(logger)}
	verifier := rename.NewVerifier(fs, ropts...)
	if !verifier.Verify(c) {
		return handleErrorWithDetails(ErrPreconditionFailed,
			"Precondition check failed: "+c.FailureReason,
			"",
			map[string]interface{}{
				"check":  c.FailedCheck,
				"reason": c.FailureReason,
			})
	}

	executor := rename.NewExecutor(fs, ropts...)
	result := renameResult{
		OriginalName: c.OriginalName,
		NewName:      c.NewName,
		RelativePath: c.RelativePath,
		BasePath:     c.BasePath,
		SolutionPath: c.SolutionPath,
		Steps:        executor.Plan(c),
	}

	if opts.checkOnly {
		result.Steps = nil
		if isJSONOutput() {
			outputSuccess(result, nil)
			return nil
		}
		fmt.Println(ui.Success("All preconditions hold"))
		return nil
	}

	warnings := staleReferenceWarnings(fs, c, layout)

	if opts.dryRun {
		result.DryRun = true
		if isJSONOutput() {
			outputSuccessWithWarnings(result, warnings, &Meta{Count: len(result.Steps)})
			return nil
		}
		fmt.Println(ui.Header("Planned changes"))
		printSteps(result.Steps)
		printWarnings(warnings)
		fmt.Println(ui.Hint("Dry run: nothing was changed."))
		return nil
	}

	if !opts.skipConfirm && !getConfig().SkipConfirm {
		if !shouldPromptForConfirm() {
			return handleErrorMsg(ErrConfirmationRequired,
				"refusing to rename without confirmation",
				"Make a backup, then run: "+shellquote.Join(append([]string{"projrename", "--skip-confirm"}, args...)...))
		}
		if !promptForConfirm(backupPrompt) {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	history := auditLogger()
	if !executor.Execute(c) {
		if err := history.LogRenameFailed(c.OriginalName, c.NewName, c.SolutionPath, c.BasePath, c.FailedStep.String()); err != nil {
			logger.Warn("could not record failed rename", "err", err)
		}
		return handleErrorWithDetails(ErrRenameFailed, partialFailure, "",
			map[string]interface{}{"step": c.FailedStep})
	}
	result.Applied = true

	if err := history.LogRename(c.OriginalName, c.NewName, c.SolutionPath, c.BasePath); err != nil {
		logger.Warn("could not record rename", "err", err)
		warnings = append(warnings, Warning{Code: ErrAuditError, Message: err.Error()})
	}

	if isJSONOutput() {
		outputSuccessWithWarnings(result, warnings, &Meta{Count: len(result.Steps)})
		return nil
	}
	for _, step := range result.Steps {
		fmt.Println(ui.Success(describeStep(step)))
	}
	printWarnings(warnings)
	fmt.Println("Success!")
	return nil
}

// staleReferenceWarnings lists other projects whose ProjectReference still
// names the original project. They are reported, never rewritten.
func staleReferenceWarnings(fs fsys.FileSystem, c *rename.Context, layout rename.Layout) []Warning {
	tree, ok := fsys.TreeOf(fs)
	if !ok {
		return nil
	}
	refs, err := refscan.Scan(tree, c.BasePath, c.OriginalName, layout.DescriptorExt, refscan.Options{
		Exclude: filepath.Join(c.BasePath, c.OriginalName),
		OnSkip: func(path string, err error) {
			logger.Debug("reference scan skipped file", "path", path, "err", err)
		},
	})
	if err != nil {
		logger.Debug("reference scan skipped", "base", c.BasePath, "err", err)
		return nil
	}

	var warnings []Warning
	for _, ref := range refs {
		warnings = append(warnings, Warning{
			Code:    warnStaleReference,
			Message: ref.String() + "; update it to " + c.NewName,
		})
	}
	return warnings
}

func printWarnings(warnings []Warning) {
	for _, w := range warnings {
		fmt.Println(ui.Warning(w.Message))
	}
}

// effectiveLayout merges defaults, the global config and the solution's
// projrename.yaml. The solution file is only consulted when the relative
// path resolves to an existing directory; otherwise verification reports
// the problem.
func effectiveLayout(fs fsys.FileSystem, relativePath string) (rename.Layout, error) {
	def := rename.DefaultLayout()
	defaults := config.LayoutConfig{
		DescriptorExt: def.DescriptorExt,
		MetadataFile:  def.MetadataFile,
		ManifestGlob:  def.ManifestGlob,
	}

	var solution *config.SolutionConfig
	if !fs.PathHasInvalidChars(relativePath) {
		if base, err := fs.ResolveFullPath(relativePath); err == nil && fs.DirectoryExists(base) {
			solution, err = config.LoadSolutionConfig(base)
			if err != nil {
				return rename.Layout{}, err
			}
		}
	}

	merged := config.EffectiveLayout(defaults, getConfig(), solution)
	layout := rename.Layout{
		DescriptorExt: merged.DescriptorExt,
		MetadataFile:  merged.MetadataFile,
		ManifestGlob:  merged.ManifestGlob,
	}
	if err := layout.Validate(); err != nil {
		return rename.Layout{}, fmt.Errorf("invalid layout: %w", err)
	}
	return layout, nil
}

func auditLogger() *audit.Logger {
	c := getConfig()
	return audit.New(c.ResolveAuditPath(getConfigPath()), c.AuditEnabled())
}

func printSteps(steps []rename.PlannedStep) {
	for i, step := range steps {
		fmt.Println(ui.Step(i+1, describeStep(step)))
	}
}

func describeStep(step rename.PlannedStep) string {
	if step.Target != "" {
		return fmt.Sprintf("%s: %s -> %s", step.Description,
			ui.FilePath(filepath.Base(step.Path)), ui.FilePath(filepath.Base(step.Target)))
	}
	return fmt.Sprintf("%s in %s", step.Description, ui.FilePath(step.Path))
}
