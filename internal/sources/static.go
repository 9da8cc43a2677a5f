package sources

import "github.com/markormesher/filecheck/internal/schema"

type StaticSource struct {
	filenames []string
}

func staticSourceFromConfig(sourceConfig *schema.SourceConfig) *StaticSource {
	return &StaticSource{
		filenames: sourceConfig.Filenames,
	}
}

// interface methods

func (s *StaticSource) Init(conf *schema.FilecheckConfig) error {
	return nil
}

func (s *StaticSource) Deinit() error {
	return nil
}

func (s *StaticSource) Describe() string {
	return "static"
}

func (s *StaticSource) Filenames() ([]string, error) {
	return s.filenames, nil
}
