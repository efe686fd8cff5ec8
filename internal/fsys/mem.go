package fsys

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/aidanlsb/projrename/internal/paths"
)

const (
	memDirPerm  fs.FileMode = 0o755
	memFilePerm fs.FileMode = 0o644
)

// Mem is an in-memory FileSystem for tests, backed by afero.MemMapFs.
//
// Relative paths resolve against the working directory given to NewMem.
// Backslashes are treated as separators. Every file's ancestors are always
// present as directories.
type Mem struct {
	cwd   string
	fs    afero.Fs
	fails map[string]error
}

var _ FileSystem = (*Mem)(nil)

// NewMem returns an empty tree whose working directory (and its ancestors)
// already exist.
func NewMem(cwd string) *Mem {
	m := &Mem{
		fs:    afero.NewMemMapFs(),
		fails: make(map[string]error),
	}
	m.cwd = cleanAbs(string(filepath.Separator), cwd)
	_ = m.fs.MkdirAll(m.cwd, memDirPerm)
	return m
}

// Tree returns the backing afero tree.
func (m *Mem) Tree() afero.Fs { return m.fs }

// AddFile creates or replaces a file, creating missing parent directories.
func (m *Mem) AddFile(p, content string) {
	key := m.key(p)
	_ = m.fs.MkdirAll(filepath.Dir(key), memDirPerm)
	_ = afero.WriteFile(m.fs, key, []byte(content), memFilePerm)
}

// AddDirectory creates a directory and its ancestors.
func (m *Mem) AddDirectory(p string) {
	_ = m.fs.MkdirAll(m.key(p), memDirPerm)
}

// RemoveFile deletes a file if present.
func (m *Mem) RemoveFile(p string) {
	key := m.key(p)
	if m.isFile(key) {
		_ = m.fs.Remove(key)
	}
}

// Fail makes the next call of op ("read", "write", "movefile", "movedir")
// on p return err. The failure fires once.
func (m *Mem) Fail(op, p string, err error) {
	m.fails[op+"\x00"+m.key(p)] = err
}

func (m *Mem) injected(op, key string) error {
	k := op + "\x00" + key
	if err, ok := m.fails[k]; ok {
		delete(m.fails, k)
		return err
	}
	return nil
}

func (m *Mem) ResolveFullPath(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", errors.New("path is empty")
	}
	return m.key(p), nil
}

func (m *Mem) PathHasInvalidChars(p string) bool { return paths.HasInvalidPathChars(p) }

func (m *Mem) FilenameHasInvalidChars(name string) bool {
	return paths.HasInvalidFileNameChars(name)
}

func (m *Mem) DirectoryExists(p string) bool { return m.isDir(m.key(p)) }

func (m *Mem) FileExists(p string) bool { return m.isFile(m.key(p)) }

func (m *Mem) ListFiles(dir, pattern string) ([]string, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	dkey := m.key(dir)
	if !m.isDir(dkey) {
		return nil, &fs.PathError{Op: "list", Path: dir, Err: fs.ErrNotExist}
	}

	infos, err := afero.ReadDir(m.fs, dkey)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		if ok, _ := filepath.Match(pattern, info.Name()); ok {
			out = append(out, filepath.Join(dkey, info.Name()))
		}
	}
	return out, nil
}

func (m *Mem) ReadAllText(p string) (string, error) {
	key := m.key(p)
	if err := m.injected("read", key); err != nil {
		return "", err
	}
	if !m.isFile(key) {
		return "", &fs.PathError{Op: "read", Path: p, Err: fs.ErrNotExist}
	}
	b, err := afero.ReadFile(m.fs, key)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (m *Mem) WriteAllText(p, text string) error {
	key := m.key(p)
	if err := m.injected("write", key); err != nil {
		return err
	}
	if !m.isDir(filepath.Dir(key)) {
		return &fs.PathError{Op: "write", Path: p, Err: fs.ErrNotExist}
	}
	if m.isDir(key) {
		return &fs.PathError{Op: "write", Path: p, Err: errors.New("is a directory")}
	}
	return afero.WriteFile(m.fs, key, []byte(text), memFilePerm)
}

func (m *Mem) MoveFile(src, dst string) error {
	skey, dkey := m.key(src), m.key(dst)
	if err := m.injected("movefile", skey); err != nil {
		return err
	}
	if !m.isFile(skey) {
		return &fs.PathError{Op: "move", Path: src, Err: fs.ErrNotExist}
	}
	if err := m.checkDest(dst, dkey); err != nil {
		return err
	}
	return m.fs.Rename(skey, dkey)
}

// MoveDirectory recreates the tree under dst file by file and then removes
// src, so the result does not depend on how MemMapFs renames directories.
func (m *Mem) MoveDirectory(src, dst string) error {
	skey, dkey := m.key(src), m.key(dst)
	if err := m.injected("movedir", skey); err != nil {
		return err
	}
	if !m.isDir(skey) {
		return &fs.PathError{Op: "move", Path: src, Err: fs.ErrNotExist}
	}
	if err := m.checkDest(dst, dkey); err != nil {
		return err
	}
	if strings.HasPrefix(dkey, skey+string(filepath.Separator)) {
		return &fs.PathError{Op: "move", Path: dst, Err: errors.New("destination is inside source")}
	}

	var dirs, files []string
	err := afero.Walk(m.fs, skey, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			dirs = append(dirs, p)
		} else {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, d := range dirs {
		if err := m.fs.MkdirAll(dkey+strings.TrimPrefix(d, skey), memDirPerm); err != nil {
			return err
		}
	}
	for _, f := range files {
		if err := m.fs.Rename(f, dkey+strings.TrimPrefix(f, skey)); err != nil {
			return err
		}
	}
	// Walk visits parents first; remove the emptied directories deepest first.
	for i := len(dirs) - 1; i >= 0; i-- {
		if err := m.fs.Remove(dirs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *Mem) checkDest(dst, dkey string) error {
	if ok, _ := afero.Exists(m.fs, dkey); ok {
		return &fs.PathError{Op: "move", Path: dst, Err: fs.ErrExist}
	}
	if !m.isDir(filepath.Dir(dkey)) {
		return &fs.PathError{Op: "move", Path: dst, Err: fs.ErrNotExist}
	}
	return nil
}

func (m *Mem) isDir(key string) bool {
	ok, err := afero.DirExists(m.fs, key)
	return err == nil && ok
}

func (m *Mem) isFile(key string) bool {
	st, err := m.fs.Stat(key)
	return err == nil && !st.IsDir()
}

func (m *Mem) key(p string) string {
	return cleanAbs(m.cwd, p)
}

// cleanAbs resolves p against cwd and returns a clean native path.
func cleanAbs(cwd, p string) string {
	p = paths.ToSlash(p)
	if !strings.HasPrefix(p, "/") {
		p = path.Join(paths.ToSlash(cwd), p)
	}
	return filepath.FromSlash(path.Clean(p))
}
