// Package shellquote renders argument lists as POSIX shell words, for
// printing commands a user can paste back into a terminal.
package shellquote

import "strings"

// special holds characters that change meaning when unquoted.
const special = " \t\n#[]()|&;<>!\"'$`\\*?~{}"

// Quote wraps s in single quotes, escaping any internal single quotes.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// QuoteIfNeeded quotes s only when a shell would otherwise split or expand it.
func QuoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, special) {
		return Quote(s)
	}
	return s
}

// Join quotes each argument as needed and joins them with spaces.
func Join(args ...string) string {
	words := make([]string, len(args))
	for i, a := range args {
		words[i] = QuoteIfNeeded(a)
	}
	return strings.Join(words, " ")
}
