package fileext

import "strings"

// supportedExtensions is the fixed set of file extensions this tool recognises. It is defined once and never
// mutated; matching is a case-sensitive literal suffix comparison, so ".JSON" is not the same as ".json".
var supportedExtensions = []string{
	".json",
	".yaml",
	".txt",
}

// Extensions returns the supported extensions in a stable order. It returns a copy so that callers cannot
// mutate the registry.
func Extensions() []string {
	out := make([]string, len(supportedExtensions))
	copy(out, supportedExtensions)
	return out
}

// CheckFileExtension reports whether a filename ends with any supported extension. Any string is a legal
// input - there is no failure case. An extension on its own is a valid match (".json" ends with ".json").
func CheckFileExtension(filename string) bool {
	for _, ext := range supportedExtensions {
		if strings.HasSuffix(filename, ext) {
			return true
		}
	}

	return false
}
