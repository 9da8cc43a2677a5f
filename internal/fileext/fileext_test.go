package fileext

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckFileExtension(t *testing.T) {
	cases := []struct {
		filename string
		expected bool
	}{
		{"config.yaml", true},
		{"notes.txt", true},
		{"data.json", true},
		{"script.sh", false},
		{"archive.tar.gz", false},

		// matching is case-sensitive
		{"data.JSON", false},
		{"config.YAML", false},

		// an extension on its own is a valid match
		{".json", true},
		{".yaml", true},
		{".txt", true},

		// no extension at all
		{"", false},
		{"README", false},
		{"json", false},

		// multiple dots - only the trailing characters matter
		{"backup.json.old", false},
		{"backup.old.json", true},
	}

	for _, c := range cases {
		t.Run(c.filename, func(t *testing.T) {
			require.Equal(t, c.expected, CheckFileExtension(c.filename))
		})
	}
}

func TestCheckFileExtension_AppendedExtensionAlwaysMatches(t *testing.T) {
	prefixes := []string{"", "a", "some/path/file", "weird name with spaces", "trailing.dot."}
	for _, prefix := range prefixes {
		for _, ext := range Extensions() {
			require.True(t, CheckFileExtension(prefix+ext), "expected %q to be supported", prefix+ext)
		}
	}
}

func TestCheckFileExtension_Idempotent(t *testing.T) {
	inputs := []string{"config.yaml", "script.sh", ""}
	for _, input := range inputs {
		first := CheckFileExtension(input)
		second := CheckFileExtension(input)
		require.Equal(t, first, second)
	}
}

func TestExtensions_ReturnsACopy(t *testing.T) {
	exts := Extensions()
	require.NotEmpty(t, exts)
	for _, ext := range exts {
		require.True(t, len(ext) > 1)
		require.Equal(t, byte('.'), ext[0])
	}

	// mutating the returned slice must not affect the registry
	original := exts[0]
	exts[0] = ".exe"
	require.Equal(t, original, Extensions()[0])
}
