package schema

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/markormesher/filecheck/internal/logging"
	"github.com/markormesher/filecheck/internal/utils"
	"gopkg.in/yaml.v3"
)

var l = logging.Logger

// FilecheckConfig is passed to the filecheck executable to control its behaviour.
type FilecheckConfig struct {
	// Extends defines paths to other config files that this one builds on. Parents are applied first, so
	// values in this file win. Paths are resolved relative to the file that names them.
	Extends []string `json:"extends,omitempty" yaml:"extends,omitempty"`

	// Sources defines where filenames to check are gathered from.
	Sources []SourceConfig `json:"sources,omitempty" yaml:"sources,omitempty"`

	// IgnorePatternsRaw specifies a list of Go regexes; filenames that match any pattern are skipped
	// before checking.
	IgnorePatternsRaw []string `json:"ignorePatterns,omitempty" yaml:"ignorePatterns,omitempty"`
	IgnorePatterns    []*regexp.Regexp

	// RepoStoragePath defines the path on disk where repo sources should be cloned. If blank a temporary
	// folder will be created.
	RepoStoragePath               string `json:"repoStoragePath,omitempty" yaml:"repoStoragePath,omitempty"`
	RepoStoragePathWasAutoCreated bool

	// FailOnUnsupported makes the exit code non-zero when any checked file has an unsupported extension.
	FailOnUnsupported bool `json:"failOnUnsupported,omitempty" yaml:"failOnUnsupported,omitempty"`
}

// ---

func LoadFilecheckConfig(configFilePath string) (*FilecheckConfig, error) {
	conf, err := resolveConfig(configFilePath)
	if err != nil {
		return nil, err
	}

	err = conf.CompileIgnorePatterns()
	if err != nil {
		return nil, fmt.Errorf("Error compiling ignore patterns in configuration: %v", err)
	}

	for i := range conf.Sources {
		err := conf.Sources[i].Validate()
		if err != nil {
			return nil, fmt.Errorf("Error validating source configuration: %w", err)
		}
	}

	// apply defaults

	if conf.RepoStoragePath == "" {
		conf.RepoStoragePathWasAutoCreated = true
		conf.RepoStoragePath, err = os.MkdirTemp("", "filecheck")
		if err != nil {
			return nil, fmt.Errorf("Failed to create a temporary directory for repo storage: %v", err)
		}
	}

	return conf, nil
}

// CleanupStorage removes the repo storage directory if it was auto-created. Storage supplied by the user
// is left alone.
func (conf *FilecheckConfig) CleanupStorage() error {
	if !conf.RepoStoragePathWasAutoCreated {
		return nil
	}

	err := os.RemoveAll(conf.RepoStoragePath)
	if err != nil {
		return fmt.Errorf("Error cleaning up storage: %w", err)
	}

	return nil
}

// DiscoverConfigFile returns the first filecheck.{yml,yaml,json} file that exists in the given directory.
func DiscoverConfigFile(dir string) (string, bool) {
	for _, candidate := range utils.AddYamlJsonExtensions(filepath.Join(dir, "filecheck")) {
		_, err := os.Stat(candidate)
		if err == nil {
			return candidate, true
		}
	}

	return "", false
}

// resolveConfig reads a config file, recursively follows its "extends" paths, and merges the whole chain
// into one config, with later files overriding earlier ones.
func resolveConfig(configFilePath string) (*FilecheckConfig, error) {
	// approach:
	// - starting from the target file, follow "extends" paths depth-first
	// - build a LIFO stack of configs to apply, ending with the parents
	// - initialise a blank config, then merge it with every element in the stack

	var configsToMerge utils.Stack[FilecheckConfig]

	pathsVisited := map[string]bool{}
	var pathsToVisit utils.Queue[string]
	pathsToVisit.Push(configFilePath)
	for {
		path, ok := pathsToVisit.Pop()
		if !ok {
			break
		}

		// a path can be queued more than once before its first visit, e.g. when two configs extend the
		// same parent - only apply it once
		if pathsVisited[path] {
			continue
		}
		pathsVisited[path] = true

		conf, err := readConfigFile(path)
		if err != nil {
			return nil, err
		}

		for _, extendsPath := range conf.Extends {
			if !filepath.IsAbs(extendsPath) {
				extendsPath = filepath.Join(filepath.Dir(path), extendsPath)
			}

			if pathsVisited[extendsPath] {
				l.Warn("Loop detected in config extension - saw a path for the second time", "path", extendsPath)
			} else {
				pathsToVisit.Push(extendsPath)
			}
		}

		configsToMerge.Push(*conf)
	}

	var mergedConfig FilecheckConfig
	for {
		config, ok := configsToMerge.Pop()
		if !ok {
			break
		}

		mergedConfig = mergeConfigs(mergedConfig, config)
	}

	return &mergedConfig, nil
}

func readConfigFile(configFilePath string) (*FilecheckConfig, error) {
	configFileContent, err := os.ReadFile(configFilePath)
	if err != nil {
		return nil, fmt.Errorf("Error reading configuration file: %v", err)
	}

	if !utils.IsYamlOrJsonFile(configFilePath) {
		return nil, fmt.Errorf("Unacceptable file format: %s", configFilePath)
	}

	var conf FilecheckConfig
	decoder := yaml.NewDecoder(bytes.NewReader(configFileContent))
	decoder.KnownFields(true)
	err = decoder.Decode(&conf)
	if err != nil {
		return nil, fmt.Errorf("Error parsing configuration file: %v", err)
	}

	return &conf, nil
}

func mergeConfigs(a, b FilecheckConfig) FilecheckConfig {
	// merging rules:
	// - don't copy "extends" paths, because this happens after they have been explored
	// - sources and ignore patterns accumulate
	// - scalar settings from B win when set

	merged := FilecheckConfig{}

	merged.Sources = append(merged.Sources, a.Sources...)
	merged.Sources = append(merged.Sources, b.Sources...)

	merged.IgnorePatternsRaw = append(merged.IgnorePatternsRaw, a.IgnorePatternsRaw...)
	merged.IgnorePatternsRaw = append(merged.IgnorePatternsRaw, b.IgnorePatternsRaw...)

	merged.RepoStoragePath = a.RepoStoragePath
	if b.RepoStoragePath != "" {
		merged.RepoStoragePath = b.RepoStoragePath
	}

	merged.FailOnUnsupported = a.FailOnUnsupported || b.FailOnUnsupported

	return merged
}

func (conf *FilecheckConfig) CompileIgnorePatterns() error {
	if len(conf.IgnorePatternsRaw) == 0 {
		conf.IgnorePatterns = nil
		return nil
	}

	conf.IgnorePatterns = make([]*regexp.Regexp, len(conf.IgnorePatternsRaw))
	for i, p := range conf.IgnorePatternsRaw {
		r, err := regexp.Compile(p)
		if err != nil {
			return fmt.Errorf("Error compiling ignore pattern regex: %w", err)
		}

		conf.IgnorePatterns[i] = r
	}

	return nil
}

func (conf *FilecheckConfig) Ignores(filename string) bool {
	for i := range conf.IgnorePatterns {
		// loop by index to avoid copying the regexp object
		if conf.IgnorePatterns[i].MatchString(filename) {
			return true
		}
	}

	return false
}
