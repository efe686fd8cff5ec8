package rename

import (
	"regexp"
	"strings"
)

// Literal identity keys looked up in the descriptor and metadata files.
func rootNamespaceTag(name string) string {
	return "<RootNamespace>" + name + "</RootNamespace>"
}

func assemblyNameTag(name string) string {
	return "<AssemblyName>" + name + "</AssemblyName>"
}

func assemblyTitleAttr(name string) string {
	return `[assembly: AssemblyTitle("` + name + `")]`
}

func assemblyProductAttr(name string) string {
	return `[assembly: AssemblyProduct("` + name + `")]`
}

const guidPattern = `\{[0-9A-Fa-f]{8}-[0-9A-Fa-f]{4}-[0-9A-Fa-f]{4}-[0-9A-Fa-f]{4}-[0-9A-Fa-f]{12}\}`

// manifestEntry matches a solution line declaring project name whose folder
// and descriptor carry the same name:
//
//	Project("{TYPE-GUID}") = "name", "name\name.ext", "{PROJECT-GUID}"
//
// Group 1 is the type GUID, group 2 the project GUID.
func manifestEntry(name, ext string) (*regexp.Regexp, error) {
	n := regexp.QuoteMeta(name)
	return regexp.Compile(`Project\("(` + guidPattern + `)"\) = "` + n + `", "` +
		n + `\\` + n + `\.` + regexp.QuoteMeta(ext) + `", "(` + guidPattern + `)"`)
}

// replaceManifestEntries rewrites every entry for oldName to newName and
// returns the new text and the number of entries rewritten. GUIDs are copied
// from the match, never from the names.
func replaceManifestEntries(text, oldName, newName, ext string) (string, int, error) {
	re, err := manifestEntry(oldName, ext)
	if err != nil {
		return "", 0, err
	}
	n := len(re.FindAllStringIndex(text, -1))
	if n == 0 {
		return text, 0, nil
	}
	nn := escapeTemplate(newName)
	tmpl := `Project("${1}") = "` + nn + `", "` + nn + `\` + nn + `.` + escapeTemplate(ext) + `", "${2}"`
	return re.ReplaceAllString(text, tmpl), n, nil
}

func escapeTemplate(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}
