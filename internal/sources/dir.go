package sources

import (
	"fmt"
	"os"

	"github.com/markormesher/filecheck/internal/schema"
)

type DirSource struct {
	path string
}

func dirSourceFromConfig(sourceConfig *schema.SourceConfig) *DirSource {
	return &DirSource{
		path: sourceConfig.Path,
	}
}

// interface methods

func (s *DirSource) Init(conf *schema.FilecheckConfig) error {
	info, err := os.Stat(s.path)
	if err != nil {
		return fmt.Errorf("Error checking dir source path: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("Dir source path is not a directory: %s", s.path)
	}

	return nil
}

func (s *DirSource) Deinit() error {
	return nil
}

func (s *DirSource) Describe() string {
	return "dir: " + s.path
}

func (s *DirSource) Filenames() ([]string, error) {
	return walkFiles(s.path)
}
