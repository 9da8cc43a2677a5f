package sources

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/markormesher/filecheck/internal/logging"
	"github.com/markormesher/filecheck/internal/schema"
)

var l = logging.Logger

type Source interface {
	Init(conf *schema.FilecheckConfig) error
	Deinit() error

	// Describe returns a short human-readable origin label for filenames from this source.
	Describe() string

	Filenames() ([]string, error)
}

func FromConfig(conf *schema.FilecheckConfig, sourceConfig *schema.SourceConfig) (Source, error) {
	switch sourceConfig.Type {
	case schema.SourceTypeStatic:
		return staticSourceFromConfig(sourceConfig), nil

	case schema.SourceTypeDir:
		return dirSourceFromConfig(sourceConfig), nil

	case schema.SourceTypeRepo:
		s, err := repoSourceFromConfig(conf, sourceConfig)
		if err != nil {
			return nil, fmt.Errorf("Error building repo source: %w", err)
		}
		return s, nil

	case schema.SourceTypeManifest:
		s, err := manifestSourceFromConfig(sourceConfig)
		if err != nil {
			return nil, fmt.Errorf("Error building manifest source: %w", err)
		}
		return s, nil
	}

	return nil, fmt.Errorf("Unrecognised source type: %s", sourceConfig.Type)
}

// walkFiles lists every regular file under root, as a path relative to root.
func walkFiles(root string, skipDirs ...string) ([]string, error) {
	var output []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			for _, skip := range skipDirs {
				if d.Name() == skip {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		output = append(output, relPath)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("Error walking directory: %w", err)
	}

	return output, nil
}
