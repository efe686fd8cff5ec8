package cli

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aidanlsb/projrename/internal/audit"
	"github.com/aidanlsb/projrename/internal/config"
	"github.com/aidanlsb/projrename/internal/fsys"
	"github.com/aidanlsb/projrename/internal/testutil"
)

func renameArgs(s *testutil.TestSolution, from, to string) []string {
	return []string{filepath.Join(s.Path, from), to}
}

func TestRenameWrongArgCountPrintsUsage(t *testing.T) {
	isolateCLI(t)

	t.Run("text", func(t *testing.T) {
		var err error
		out := captureStdout(t, func() {
			err = runRename([]string{"OnlyOne"}, renameOptions{})
		})
		if err != nil {
			t.Fatalf("expected usage without error, got %v", err)
		}
		if strings.TrimSpace(out) == "" {
			t.Fatal("expected usage text")
		}
	})

	t.Run("json", func(t *testing.T) {
		jsonOutput = true
		t.Cleanup(func() { jsonOutput = false })

		var err error
		out := captureStdout(t, func() {
			err = runRename([]string{"a", "b", "c"}, renameOptions{})
		})
		if err != nil {
			t.Fatalf("expected usage without error, got %v", err)
		}
		resp := decodeEnvelope(t, out)
		if resp.OK || resp.Error.Code != ErrInvalidInput {
			t.Fatalf("expected %s, got %s", ErrInvalidInput, out)
		}
		if !strings.Contains(errorDetail(t, resp, "usage"), "## Assumptions") {
			t.Errorf("expected usage guide in details")
		}
	})
}

func TestRenameJSONSuccess(t *testing.T) {
	isolateCLI(t)
	jsonOutput = true

	s := testutil.NewTestSolution(t).
		WithProject("Way2.Core").
		WithProject("Way2.Core.Tests").
		Build()

	var err error
	out := captureStdout(t, func() {
		err = runRename(renameArgs(s, "Way2.Core", "Way2.Kernel"), renameOptions{skipConfirm: true})
	})
	if err != nil {
		t.Fatalf("runRename: %v", err)
	}

	resp := decodeEnvelope(t, out)
	if !resp.OK {
		t.Fatalf("expected ok=true; out=%s", out)
	}
	var data renameResult
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if !data.Applied || data.DryRun {
		t.Errorf("applied=%v dry_run=%v", data.Applied, data.DryRun)
	}
	if len(data.Steps) != 5 || resp.Meta == nil || resp.Meta.Count != 5 {
		t.Errorf("expected 5 steps, got %d", len(data.Steps))
	}
	if data.SolutionPath != filepath.Join(s.Path, "App.sln") {
		t.Errorf("solution_path = %q", data.SolutionPath)
	}

	s.AssertNotExists("Way2.Core")
	s.AssertProjectNamed("Way2.Kernel")
	s.AssertProjectNamed("Way2.Core.Tests")
	s.AssertFileContains("App.sln", testutil.SolutionEntry("Way2.Kernel", testutil.ProjectGUID(0)))
	s.AssertFileContains("App.sln", testutil.SolutionEntry("Way2.Core.Tests", testutil.ProjectGUID(1)))

	entries, err := audit.New(getConfig().ResolveAuditPath(resolvedConfigPath), true).Recent(0)
	if err != nil {
		t.Fatalf("read audit log: %v", err)
	}
	if len(entries) != 1 || entries[0].Operation != audit.OpRename || entries[0].To != "Way2.Kernel" {
		t.Fatalf("unexpected audit entries %+v", entries)
	}
}

func TestRenameTextSuccess(t *testing.T) {
	isolateCLI(t)
	s := testutil.NewTestSolution(t).WithProject("proj1").Build()

	var err error
	out := captureStdout(t, func() {
		err = runRename(renameArgs(s, "proj1", "proj2"), renameOptions{skipConfirm: true})
	})
	if err != nil {
		t.Fatalf("runRename: %v", err)
	}
	for _, want := range []string{"Original name", "proj1", "New name", "proj2", "Relative path", "Success!"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	s.AssertProjectNamed("proj2")
}

func TestRenamePreconditionFailure(t *testing.T) {
	isolateCLI(t)
	s := testutil.NewTestSolution(t).WithProject("proj1").Build()
	s.AssertFileExists("proj1/Properties/AssemblyInfo.cs")
	if err := (fsys.OS{}).MoveFile(filepath.Join(s.Path, "proj1", "Properties", "AssemblyInfo.cs"), filepath.Join(s.Path, "AssemblyInfo.cs")); err != nil {
		t.Fatalf("move AssemblyInfo aside: %v", err)
	}

	t.Run("text", func(t *testing.T) {
		var err error
		captureStdout(t, func() {
			err = runRename(renameArgs(s, "proj1", "proj2"), renameOptions{skipConfirm: true})
		})
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.HasPrefix(err.Error(), "Precondition check failed: AssemblyInfo file does not exist") {
			t.Errorf("unexpected message %q", err.Error())
		}
		if errorCode(err) != ErrPreconditionFailed {
			t.Errorf("code = %q", errorCode(err))
		}
	})

	t.Run("json", func(t *testing.T) {
		jsonOutput = true
		t.Cleanup(func() { jsonOutput = false })

		var err error
		out := captureStdout(t, func() {
			err = runRename(renameArgs(s, "proj1", "proj2"), renameOptions{skipConfirm: true})
		})
		var ee *exitError
		if !errors.As(err, &ee) {
			t.Fatalf("expected silent exit error, got %v", err)
		}
		resp := decodeEnvelope(t, out)
		if resp.OK || resp.Error.Code != ErrPreconditionFailed {
			t.Fatalf("expected %s; out=%s", ErrPreconditionFailed, out)
		}
		if got := errorDetail(t, resp, "check"); got != "metadata_exists" {
			t.Errorf("check = %q, want metadata_exists", got)
		}
	})

	s.AssertDirExists("proj1")
	s.AssertNotExists("proj2")
}

func TestRenameDryRunChangesNothing(t *testing.T) {
	isolateCLI(t)
	jsonOutput = true
	s := testutil.NewTestSolution(t).WithProject("proj1").Build()
	before := s.ReadFile("App.sln")

	var err error
	out := captureStdout(t, func() {
		err = runRename(renameArgs(s, "proj1", "proj2"), renameOptions{dryRun: true})
	})
	if err != nil {
		t.Fatalf("runRename: %v", err)
	}

	var data renameResult
	if err := json.Unmarshal(decodeEnvelope(t, out).Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if !data.DryRun || data.Applied || len(data.Steps) != 5 {
		t.Fatalf("unexpected dry run result %+v", data)
	}
	s.AssertProjectNamed("proj1")
	s.AssertNotExists("proj2")
	if after := s.ReadFile("App.sln"); after != before {
		t.Errorf("solution changed during dry run")
	}
}

func TestRenameConfirmation(t *testing.T) {
	t.Run("non-interactive without skip refuses", func(t *testing.T) {
		isolateCLI(t)
		s := testutil.NewTestSolution(t).WithProject("proj1").Build()

		var err error
		captureStdout(t, func() {
			err = runRename(renameArgs(s, "proj1", "proj2"), renameOptions{})
		})
		if errorCode(err) != ErrConfirmationRequired {
			t.Fatalf("expected %s, got %v", ErrConfirmationRequired, err)
		}
		var ce *cliError
		if !errors.As(err, &ce) || !strings.Contains(ce.suggestion, "projrename --skip-confirm ") {
			t.Errorf("expected a re-run suggestion, got %+v", ce)
		}
		s.AssertProjectNamed("proj1")
	})

	t.Run("declined", func(t *testing.T) {
		isolateCLI(t)
		isInteractive = func() bool { return true }
		confirmInput = strings.NewReader("n\n")
		s := testutil.NewTestSolution(t).WithProject("proj1").Build()

		var err error
		out := captureStdout(t, func() {
			err = runRename(renameArgs(s, "proj1", "proj2"), renameOptions{})
		})
		if err != nil {
			t.Fatalf("runRename: %v", err)
		}
		if !strings.Contains(out, backupPrompt) || !strings.Contains(out, "Cancelled.") {
			t.Errorf("unexpected output:\n%s", out)
		}
		s.AssertProjectNamed("proj1")
	})

	t.Run("accepted", func(t *testing.T) {
		isolateCLI(t)
		isInteractive = func() bool { return true }
		confirmInput = strings.NewReader("yes\n")
		s := testutil.NewTestSolution(t).WithProject("proj1").Build()

		var err error
		captureStdout(t, func() {
			err = runRename(renameArgs(s, "proj1", "proj2"), renameOptions{})
		})
		if err != nil {
			t.Fatalf("runRename: %v", err)
		}
		s.AssertProjectNamed("proj2")
	})

	t.Run("config skip_confirm", func(t *testing.T) {
		isolateCLI(t)
		cfg = &config.Config{SkipConfirm: true}
		s := testutil.NewTestSolution(t).WithProject("proj1").Build()

		var err error
		captureStdout(t, func() {
			err = runRename(renameArgs(s, "proj1", "proj2"), renameOptions{})
		})
		if err != nil {
			t.Fatalf("runRename: %v", err)
		}
		s.AssertProjectNamed("proj2")
	})
}

func TestRenameExecutionFailure(t *testing.T) {
	isolateCLI(t)
	jsonOutput = true

	mem := fsys.NewMem("/work")
	mem.AddFile("/sol/App.sln", testutil.SolutionFile("proj1"))
	mem.AddFile("/sol/proj1/proj1.csproj", testutil.ProjectFile("proj1"))
	mem.AddFile("/sol/proj1/Properties/AssemblyInfo.cs", testutil.AssemblyInfoFile("proj1"))
	mem.Fail("movedir", "/sol/proj1", errors.New("access denied"))
	newFileSystem = func() fsys.FileSystem { return mem }

	var err error
	out := captureStdout(t, func() {
		err = runRename([]string{"/sol/proj1", "proj2"}, renameOptions{skipConfirm: true})
	})
	if errorCode(err) != ErrRenameFailed {
		t.Fatalf("expected %s, got %v", ErrRenameFailed, err)
	}

	resp := decodeEnvelope(t, out)
	if resp.Error.Message != partialFailure {
		t.Errorf("message = %q", resp.Error.Message)
	}
	if got := errorDetail(t, resp, "step"); got != "move_folder" {
		t.Errorf("step = %q, want move_folder", got)
	}

	// Steps before the failure stay applied.
	if !mem.FileExists("/sol/proj1/proj2.csproj") {
		t.Error("expected descriptor to be renamed before the failing step")
	}

	entries, err := audit.New(getConfig().ResolveAuditPath(resolvedConfigPath), true).Recent(0)
	if err != nil {
		t.Fatalf("read audit log: %v", err)
	}
	if len(entries) != 1 || entries[0].Operation != audit.OpRenameFailed || entries[0].Step != "move_folder" {
		t.Fatalf("unexpected audit entries %+v", entries)
	}
}

func TestRenameSolutionLayoutOverride(t *testing.T) {
	isolateCLI(t)
	s := testutil.NewTestSolution(t).
		WithFile("Legacy/Legacy.vbproj", "<RootNamespace>Legacy</RootNamespace><AssemblyName>Legacy</AssemblyName>").
		WithFile("Legacy/My Project/AssemblyInfo.vb", `[assembly: AssemblyTitle("Legacy")] [assembly: AssemblyProduct("Legacy")]`).
		WithFile("App.sln", `Project("{F184B08F-C81C-45F6-A57F-5ABD9991F28F}") = "Legacy", "Legacy\Legacy.vbproj", "{11111111-2222-3333-4444-555555555555}"`+"\r\nEndProject\r\n").
		WithSolutionName("").
		WithFile(config.SolutionConfigFile, "layout:\n  descriptor_ext: vbproj\n  metadata_file: My Project/AssemblyInfo.vb\n").
		Build()

	var err error
	captureStdout(t, func() {
		err = runRename(renameArgs(s, "Legacy", "Modern"), renameOptions{skipConfirm: true})
	})
	if err != nil {
		t.Fatalf("runRename: %v", err)
	}

	s.AssertFileExists("Modern/Modern.vbproj")
	s.AssertFileContains("Modern/My Project/AssemblyInfo.vb", `AssemblyTitle("Modern")`)
	s.AssertFileContains("App.sln", `"Modern", "Modern\Modern.vbproj", "{11111111-2222-3333-4444-555555555555}"`)
}

func TestRenameInvalidLayout(t *testing.T) {
	isolateCLI(t)
	cfg = &config.Config{Layout: config.LayoutConfig{ManifestGlob: "sub/*.sln"}}
	s := testutil.NewTestSolution(t).WithProject("proj1").Build()

	var err error
	captureStdout(t, func() {
		err = runRename(renameArgs(s, "proj1", "proj2"), renameOptions{skipConfirm: true})
	})
	if errorCode(err) != ErrConfigInvalid {
		t.Fatalf("expected %s, got %v", ErrConfigInvalid, err)
	}
	s.AssertProjectNamed("proj1")
}

func TestCheckCommand(t *testing.T) {
	isolateCLI(t)
	s := testutil.NewTestSolution(t).WithProject("proj1").Build()

	var err error
	out := captureStdout(t, func() {
		err = checkCmd.RunE(checkCmd, renameArgs(s, "proj1", "proj2"))
	})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "All preconditions hold") {
		t.Errorf("unexpected output:\n%s", out)
	}
	s.AssertProjectNamed("proj1")

	captureStdout(t, func() {
		err = checkCmd.RunE(checkCmd, renameArgs(s, "proj9", "proj2"))
	})
	if errorCode(err) != ErrPreconditionFailed {
		t.Fatalf("expected %s, got %v", ErrPreconditionFailed, err)
	}
}

func TestRenameWarnsAboutProjectReferences(t *testing.T) {
	isolateCLI(t)
	jsonOutput = true

	web := strings.Replace(testutil.ProjectFile("App.Web"), "<ItemGroup>",
		"<ItemGroup>\n    <ProjectReference Include=\"..\\App.Core\\App.Core.csproj\" />", 1)
	s := testutil.NewTestSolution(t).
		WithProject("App.Core").
		WithProject("App.Web").
		WithFile("App.Web/App.Web.csproj", web).
		Build()

	var err error
	out := captureStdout(t, func() {
		err = runRename(renameArgs(s, "App.Core", "App.Domain"), renameOptions{skipConfirm: true})
	})
	if err != nil {
		t.Fatalf("runRename: %v", err)
	}

	resp := decodeEnvelope(t, out)
	if len(resp.Warnings) != 1 || resp.Warnings[0].Code != warnStaleReference {
		t.Fatalf("expected one stale reference warning, got %+v", resp.Warnings)
	}
	if !strings.Contains(resp.Warnings[0].Message, "App.Web/App.Web.csproj") {
		t.Errorf("warning does not name the referencing file: %q", resp.Warnings[0].Message)
	}
	s.AssertProjectNamed("App.Domain")
	if got := s.ReadFile("App.Web/App.Web.csproj"); got != web {
		t.Errorf("referencing project was modified:\n%s", got)
	}
}

func TestRenameWarnsAboutProjectReferencesInMemory(t *testing.T) {
	isolateCLI(t)
	jsonOutput = true

	mem := fsys.NewMem("/work")
	mem.AddFile("/sol/App.sln", testutil.SolutionFile("proj1"))
	mem.AddFile("/sol/proj1/proj1.csproj", testutil.ProjectFile("proj1"))
	mem.AddFile("/sol/proj1/Properties/AssemblyInfo.cs", testutil.AssemblyInfoFile("proj1"))
	mem.AddFile("/sol/Web/Web.csproj", `<ProjectReference Include="..\proj1\proj1.csproj" />`)
	newFileSystem = func() fsys.FileSystem { return mem }

	var err error
	out := captureStdout(t, func() {
		err = runRename([]string{"/sol/proj1", "proj2"}, renameOptions{dryRun: true})
	})
	if err != nil {
		t.Fatalf("runRename: %v", err)
	}

	resp := decodeEnvelope(t, out)
	if len(resp.Warnings) != 1 || resp.Warnings[0].Code != warnStaleReference {
		t.Fatalf("expected one stale reference warning, got %+v", resp.Warnings)
	}
	if !strings.Contains(resp.Warnings[0].Message, "Web/Web.csproj:1") {
		t.Errorf("warning does not name the referencing file: %q", resp.Warnings[0].Message)
	}
}
