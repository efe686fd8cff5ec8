package rename

import (
	"github.com/aidanlsb/projrename/internal/paths"
)

// CurrentDir is the RelativePath used when the first argument has no
// directory part.
const CurrentDir = "."

// Resolve builds a Context from exactly two arguments:
// "[relative-path/]original-name" and "new-name".
//
// Both '/' and '\' separate the relative path from the name. Names are not
// validated here; Verify does that. ok is false for any other argument count.
func Resolve(args []string) (c *Context, ok bool) {
	if len(args) != 2 {
		return nil, false
	}
	defer func() {
		if recover() != nil {
			c, ok = nil, false
		}
	}()

	dir, name, found := paths.SplitLast(args[0])
	rel := CurrentDir
	if found {
		rel = dir
		if rel == "" {
			// "/proj" names a project directly under the root.
			rel = args[0][:1]
		}
	}

	return &Context{
		OriginalName: name,
		NewName:      args[1],
		RelativePath: rel,
	}, true
}
