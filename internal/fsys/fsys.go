// Package fsys is the filesystem seam for the rename engine.
//
// The engine never touches storage directly; it is handed a FileSystem. The
// CLI binds OS, tests bind Mem.
package fsys

import "github.com/spf13/afero"

// FileSystem is the set of operations the rename engine needs.
//
// Move operations never overwrite: a destination that already exists is an
// error. WriteAllText requires the parent directory to exist.
type FileSystem interface {
	// ResolveFullPath turns a possibly relative path into an absolute one.
	ResolveFullPath(path string) (string, error)
	// PathHasInvalidChars reports characters that are illegal anywhere in a path.
	PathHasInvalidChars(path string) bool
	// FilenameHasInvalidChars reports characters that are illegal in a single name.
	FilenameHasInvalidChars(name string) bool

	DirectoryExists(path string) bool
	FileExists(path string) bool

	// ListFiles returns the regular files directly inside dir whose base name
	// matches pattern (filepath.Match syntax), sorted by name.
	ListFiles(dir, pattern string) ([]string, error)

	ReadAllText(path string) (string, error)
	WriteAllText(path, text string) error

	MoveFile(src, dst string) error
	MoveDirectory(src, dst string) error
}

// Walker is implemented by filesystems that can expose their tree for
// read-only walks, such as scanning a solution for references.
type Walker interface {
	Tree() afero.Fs
}

// TreeOf returns a read-only view of fsys's tree, or false when fsys cannot
// be walked.
func TreeOf(fsys FileSystem) (afero.Fs, bool) {
	w, ok := fsys.(Walker)
	if !ok {
		return nil, false
	}
	return afero.NewReadOnlyFs(w.Tree()), true
}
