package sources

import (
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/markormesher/filecheck/internal/schema"
	"github.com/markormesher/filecheck/internal/utils"
)

// ManifestSource fetches a filename list from an HTTP endpoint. The endpoint returns a JSON document of
// the form {"files": [...]}; long lists may be paginated with a Link header carrying a rel="next" URL.
type ManifestSource struct {
	url  string
	auth *schema.AuthConfig

	// private state
	authHeader string
}

func manifestSourceFromConfig(sourceConfig *schema.SourceConfig) (*ManifestSource, error) {
	return &ManifestSource{
		url:  sourceConfig.Url,
		auth: sourceConfig.Auth,
	}, nil
}

// interface methods

func (s *ManifestSource) Init(conf *schema.FilecheckConfig) error {
	if s.auth == nil {
		return nil
	}

	if s.auth.Token != "" {
		s.authHeader = fmt.Sprintf("Bearer %s", s.auth.Token)
		return nil
	}

	if s.auth.ClientId != "" {
		jwt, err := s.auth.GenerateJwt()
		if err != nil {
			return fmt.Errorf("Error generating JWT for manifest source: %w", err)
		}

		s.authHeader = fmt.Sprintf("Bearer %s", jwt)
	}

	return nil
}

func (s *ManifestSource) Deinit() error {
	return nil
}

func (s *ManifestSource) Describe() string {
	return "manifest: " + s.url
}

func (s *ManifestSource) Filenames() ([]string, error) {
	var output []string

	pageUrl := s.url
	pagesSeen := map[string]bool{}
	for pageUrl != "" {
		if pagesSeen[pageUrl] {
			return nil, fmt.Errorf("Loop detected in manifest pagination: %s", pageUrl)
		}
		pagesSeen[pageUrl] = true

		var manifest struct {
			Files []string `json:"files"`
		}

		_, req := s.authedRequest()
		req.SetResult(&manifest)

		response, err := req.Get(pageUrl)
		if err != nil {
			return nil, fmt.Errorf("Error making manifest request: %v", err)
		}

		if response.IsError() {
			return nil, fmt.Errorf("Error making manifest request, status: %v", response.Status())
		}

		output = append(output, manifest.Files...)

		links := utils.ParseLinkHeader(response.Header().Get("Link"))
		pageUrl = links["next"]
	}

	return output, nil
}

// ---

func (s *ManifestSource) authedRequest() (client *resty.Client, request *resty.Request) {
	client = resty.New()
	request = client.NewRequest()
	if s.authHeader != "" {
		request.SetHeader("Authorization", s.authHeader)
	}
	return
}
