// Package paths provides canonical helpers for the path strings projrename
// accepts on the command line and finds inside solution manifests.
//
// Manifests always use '\' between the project folder and the descriptor,
// while shells on Unix hand us '/'. Both are treated as separators here so the
// rest of the code can stay separator-agnostic.
package paths

import (
	"path/filepath"
	"strings"
)

// Separators lists every character accepted as a path separator in user input.
const Separators = `/\`

// invalidPathChars mirrors the characters Windows refuses anywhere in a path.
// Control characters 0x00-0x1F are checked separately.
const invalidPathChars = `"<>|`

// invalidNameChars are additionally refused inside a single path segment.
const invalidNameChars = `:*?\/`

// SplitLast splits arg at its last separator.
//
// Examples:
// - "proj1"              -> "", "proj1", false
// - `src\proj1`          -> "src", "proj1", true
// - "a/b/proj1"          -> "a/b", "proj1", true
// - "/proj1"             -> "", "proj1", true
func SplitLast(arg string) (dir, name string, found bool) {
	i := strings.LastIndexAny(arg, Separators)
	if i < 0 {
		return "", arg, false
	}
	return arg[:i], arg[i+1:], true
}

// ToSlash converts both separator styles to '/'.
func ToSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// Native converts a user or manifest supplied path to the OS form.
func Native(p string) string {
	return filepath.FromSlash(ToSlash(p))
}

// HasInvalidPathChars reports whether p contains a character that is never
// legal in a path.
func HasInvalidPathChars(p string) bool {
	for _, r := range p {
		if r < 0x20 || strings.ContainsRune(invalidPathChars, r) {
			return true
		}
	}
	return false
}

// HasInvalidFileNameChars reports whether name contains a character that is
// not legal in a single file or directory name.
func HasInvalidFileNameChars(name string) bool {
	if HasInvalidPathChars(name) {
		return true
	}
	return strings.ContainsAny(name, invalidNameChars)
}

// IsLocalRel reports whether rel is a relative, slash separated path that
// stays below the directory it is joined to.
func IsLocalRel(rel string) bool {
	rel = ToSlash(strings.TrimSpace(rel))
	if rel == "" || strings.HasPrefix(rel, "/") || filepath.VolumeName(rel) != "" {
		return false
	}
	for _, seg := range strings.Split(rel, "/") {
		if seg == ".." {
			return false
		}
	}
	return true
}
