package fsys

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/aidanlsb/projrename/internal/atomicfile"
	"github.com/aidanlsb/projrename/internal/paths"
)

// OS is the FileSystem backed by real storage.
type OS struct{}

var _ FileSystem = OS{}

// Tree returns the host filesystem as an afero tree.
func (OS) Tree() afero.Fs { return afero.NewOsFs() }

func (OS) ResolveFullPath(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", errors.New("path is empty")
	}
	return filepath.Abs(paths.Native(p))
}

func (OS) PathHasInvalidChars(p string) bool { return paths.HasInvalidPathChars(p) }

func (OS) FilenameHasInvalidChars(name string) bool { return paths.HasInvalidFileNameChars(name) }

func (OS) DirectoryExists(p string) bool {
	st, err := os.Stat(p)
	return err == nil && st.IsDir()
}

func (OS) FileExists(p string) bool {
	st, err := os.Stat(p)
	return err == nil && st.Mode().IsRegular()
}

func (OS) ListFiles(dir, pattern string) ([]string, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		ok, err := filepath.Match(pattern, e.Name())
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	return out, nil
}

func (OS) ReadAllText(p string) (string, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (OS) WriteAllText(p, text string) error {
	return atomicfile.WriteString(p, text, 0)
}

func (o OS) MoveFile(src, dst string) error {
	if !o.FileExists(src) {
		return &fs.PathError{Op: "move", Path: src, Err: fs.ErrNotExist}
	}
	if err := refuseExisting(dst); err != nil {
		return err
	}
	return os.Rename(src, dst)
}

func (o OS) MoveDirectory(src, dst string) error {
	if !o.DirectoryExists(src) {
		return &fs.PathError{Op: "move", Path: src, Err: fs.ErrNotExist}
	}
	if err := refuseExisting(dst); err != nil {
		return err
	}
	return os.Rename(src, dst)
}

func refuseExisting(dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return &fs.PathError{Op: "move", Path: dst, Err: fs.ErrExist}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
