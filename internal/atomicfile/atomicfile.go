// Package atomicfile replaces file contents without leaving a torn file
// behind when the process dies mid-write.
package atomicfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultPerm is used for new files when no mode is given.
const DefaultPerm fs.FileMode = 0o644

// WriteFile writes data to a temporary file next to path and renames it into
// place. The parent directory must already exist.
//
// A symlink is followed: the file it points to is replaced and the link
// stays. If perm is 0 the mode of the file being replaced is kept, falling
// back to DefaultPerm for new files.
func WriteFile(path string, data []byte, perm fs.FileMode) error {
	path, err := resolveTarget(path)
	if err != nil {
		return err
	}
	if perm == 0 {
		perm = existingPerm(path)
	}

	tmpPath, err := writeTemp(filepath.Dir(path), filepath.Base(path), data, perm)
	if err != nil {
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// resolveTarget follows symlinks in path. A path that does not exist yet is
// returned unchanged.
func resolveTarget(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return path, nil
	}
	return "", err
}

// WriteString is WriteFile for text content.
func WriteString(path, text string, perm fs.FileMode) error {
	return WriteFile(path, []byte(text), perm)
}

func existingPerm(path string) fs.FileMode {
	st, err := os.Stat(path)
	if err != nil {
		return DefaultPerm
	}
	return st.Mode().Perm()
}

func writeTemp(dir, base string, data []byte, perm fs.FileMode) (string, error) {
	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	fail := func(step string, err error) (string, error) {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("%s temp file: %w", step, err)
	}

	// Some filesystems reject chmod; the content still matters more.
	_ = tmp.Chmod(perm)

	if _, err := tmp.Write(data); err != nil {
		return fail("write", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("sync", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return tmpPath, nil
}
