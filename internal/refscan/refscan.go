// Package refscan finds project files that point at another project through
// a ProjectReference. The solution entry is rewritten by a rename; these
// references are not, so callers report them.
package refscan

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"
)

// maxLineSize bounds a single line of a project file. Generated descriptors
// can carry long single-line item groups.
const maxLineSize = 16 * 1024 * 1024

// Ref is one ProjectReference to the scanned project.
type Ref struct {
	Path         string `json:"path"`
	RelativePath string `json:"relative_path"`
	Line         int    `json:"line"`
	Include      string `json:"include"`
}

func (r Ref) String() string {
	return fmt.Sprintf("%s:%d references %s", r.RelativePath, r.Line, r.Include)
}

// Build output and package caches never hold project sources.
var skipDirs = map[string]bool{
	"bin":          true,
	"obj":          true,
	"packages":     true,
	"node_modules": true,
}

// Options narrows a scan.
type Options struct {
	// Exclude is a directory whose contents are not scanned, typically the
	// project being renamed.
	Exclude string

	// OnSkip, when set, is called for each matching file that could not be
	// read to the end.
	OnSkip func(path string, err error)
}

// Scan walks root in tree for files ending in "."+ext and returns every
// ProjectReference whose Include ends in name/name.ext (either separator).
// Hidden directories and build output are skipped. Unreadable files are
// skipped and reported to opts.OnSkip; only a failure to walk root itself is
// returned.
func Scan(tree afero.Fs, root, name, ext string, opts Options) ([]Ref, error) {
	re, err := referencePattern(name, ext)
	if err != nil {
		return nil, err
	}
	exclude := ""
	if opts.Exclude != "" {
		exclude = filepath.Clean(opts.Exclude)
	}

	var refs []Ref
	err = afero.Walk(tree, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}

		if info.IsDir() {
			if path == root {
				return nil
			}
			dirName := info.Name()
			if strings.HasPrefix(dirName, ".") || skipDirs[strings.ToLower(dirName)] || filepath.Clean(path) == exclude {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.EqualFold(filepath.Ext(path), "."+ext) {
			return nil
		}

		found, err := scanFile(tree, path, re)
		if err != nil {
			if opts.OnSkip != nil {
				opts.OnSkip(path, err)
			}
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		for _, f := range found {
			f.Path = path
			f.RelativePath = filepath.ToSlash(rel)
			refs = append(refs, f)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return refs, nil
}

func referencePattern(name, ext string) (*regexp.Regexp, error) {
	file := regexp.QuoteMeta(name) + `\.` + regexp.QuoteMeta(ext)
	return regexp.Compile(`<ProjectReference\s+Include="((?:[^"]*[\\/])?` +
		regexp.QuoteMeta(name) + `[\\/]` + file + `)"`)
}

func scanFile(tree afero.Fs, path string, re *regexp.Regexp) ([]Ref, error) {
	f, err := tree.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var refs []Ref
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	line := 0
	for scanner.Scan() {
		line++
		for _, m := range re.FindAllStringSubmatch(scanner.Text(), -1) {
			refs = append(refs, Ref{Line: line, Include: m[1]})
		}
	}
	return refs, scanner.Err()
}
