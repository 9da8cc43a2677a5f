package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func cleanupAutoStorage(t *testing.T, conf *FilecheckConfig) {
	t.Helper()
	if conf != nil && conf.RepoStoragePathWasAutoCreated {
		require.NoError(t, os.RemoveAll(conf.RepoStoragePath))
	}
}

func TestLoadFilecheckConfig(t *testing.T) {
	path := writeConfigFile(t, t.TempDir(), "filecheck.yml", `
sources:
  - type: static
    filenames:
      - config.yaml
      - script.sh
ignorePatterns:
  - "^vendor/"
failOnUnsupported: true
`)

	conf, err := LoadFilecheckConfig(path)
	require.NoError(t, err)
	defer cleanupAutoStorage(t, conf)

	require.Len(t, conf.Sources, 1)
	require.Equal(t, SourceTypeStatic, conf.Sources[0].Type)
	require.Equal(t, []string{"config.yaml", "script.sh"}, conf.Sources[0].Filenames)
	require.True(t, conf.FailOnUnsupported)

	require.True(t, conf.Ignores("vendor/modules.txt"))
	require.False(t, conf.Ignores("src/vendor.txt"))

	// repo storage path defaults to an auto-created temp dir
	require.True(t, conf.RepoStoragePathWasAutoCreated)
	require.DirExists(t, conf.RepoStoragePath)
}

func TestLoadFilecheckConfig_RejectsUnknownFields(t *testing.T) {
	path := writeConfigFile(t, t.TempDir(), "filecheck.yml", `
sources: []
notARealField: true
`)

	_, err := LoadFilecheckConfig(path)
	require.Error(t, err)
}

func TestLoadFilecheckConfig_RejectsNonYamlJsonFiles(t *testing.T) {
	path := writeConfigFile(t, t.TempDir(), "filecheck.toml", `sources = []`)

	_, err := LoadFilecheckConfig(path)
	require.ErrorContains(t, err, "Unacceptable file format")
}

func TestLoadFilecheckConfig_RejectsBadIgnorePattern(t *testing.T) {
	path := writeConfigFile(t, t.TempDir(), "filecheck.yml", `
ignorePatterns:
  - "["
`)

	_, err := LoadFilecheckConfig(path)
	require.ErrorContains(t, err, "ignore pattern")
}

func TestLoadFilecheckConfig_RejectsInvalidSources(t *testing.T) {
	cases := map[string]string{
		"unknown type":         "sources:\n  - type: carrier-pigeon\n",
		"static with no files": "sources:\n  - type: static\n",
		"dir with no path":     "sources:\n  - type: dir\n",
		"repo with no url":     "sources:\n  - type: repo\n",
		"manifest with no url": "sources:\n  - type: manifest\n",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeConfigFile(t, t.TempDir(), "filecheck.yml", content)
			_, err := LoadFilecheckConfig(path)
			require.Error(t, err)
		})
	}
}

func TestLoadFilecheckConfig_Extends(t *testing.T) {
	dir := t.TempDir()

	writeConfigFile(t, dir, "base.yml", `
sources:
  - type: static
    filenames:
      - base.json
ignorePatterns:
  - "^ignored-by-base/"
failOnUnsupported: true
`)

	path := writeConfigFile(t, dir, "filecheck.yml", `
extends:
  - base.yml
sources:
  - type: static
    filenames:
      - child.txt
`)

	conf, err := LoadFilecheckConfig(path)
	require.NoError(t, err)
	defer cleanupAutoStorage(t, conf)

	// parent sources are applied first, then the child's
	require.Len(t, conf.Sources, 2)
	require.Equal(t, []string{"base.json"}, conf.Sources[0].Filenames)
	require.Equal(t, []string{"child.txt"}, conf.Sources[1].Filenames)

	// scalar and accumulating settings survive the merge
	require.True(t, conf.FailOnUnsupported)
	require.True(t, conf.Ignores("ignored-by-base/file.txt"))
}

func TestLoadFilecheckConfig_ExtendsLoopDoesNotHang(t *testing.T) {
	dir := t.TempDir()

	writeConfigFile(t, dir, "a.yml", `
extends:
  - b.yml
sources:
  - type: static
    filenames:
      - a.json
`)

	writeConfigFile(t, dir, "b.yml", `
extends:
  - a.yml
sources:
  - type: static
    filenames:
      - b.json
`)

	conf, err := LoadFilecheckConfig(filepath.Join(dir, "a.yml"))
	require.NoError(t, err)
	defer cleanupAutoStorage(t, conf)

	require.Len(t, conf.Sources, 2)
}

func TestLoadFilecheckConfig_DiamondExtendsAppliesSharedParentOnce(t *testing.T) {
	dir := t.TempDir()

	writeConfigFile(t, dir, "shared.yml", `
sources:
  - type: static
    filenames:
      - shared.json
`)

	writeConfigFile(t, dir, "left.yml", `
extends:
  - shared.yml
sources:
  - type: static
    filenames:
      - left.json
`)

	writeConfigFile(t, dir, "right.yml", `
extends:
  - shared.yml
sources:
  - type: static
    filenames:
      - right.json
`)

	path := writeConfigFile(t, dir, "filecheck.yml", `
extends:
  - left.yml
  - right.yml
sources:
  - type: static
    filenames:
      - child.json
`)

	conf, err := LoadFilecheckConfig(path)
	require.NoError(t, err)
	defer cleanupAutoStorage(t, conf)

	// the shared grandparent must not be applied once per path to it
	require.Len(t, conf.Sources, 4)

	sharedCount := 0
	for _, source := range conf.Sources {
		if len(source.Filenames) == 1 && source.Filenames[0] == "shared.json" {
			sharedCount++
		}
	}
	require.Equal(t, 1, sharedCount)
}

func TestDiscoverConfigFile(t *testing.T) {
	dir := t.TempDir()

	_, ok := DiscoverConfigFile(dir)
	require.False(t, ok)

	expected := writeConfigFile(t, dir, "filecheck.yaml", "sources: []\n")

	found, ok := DiscoverConfigFile(dir)
	require.True(t, ok)
	require.Equal(t, expected, found)
}
