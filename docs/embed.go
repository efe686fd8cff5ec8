// Package docs bundles the long-form usage guide with the binary.
package docs

import _ "embed"

// Usage is the Markdown guide shown when projrename is run with the wrong
// number of arguments.
//
//go:embed usage.md
var Usage string
