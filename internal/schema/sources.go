package schema

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	SourceTypeStatic   = "static"
	SourceTypeDir      = "dir"
	SourceTypeRepo     = "repo"
	SourceTypeManifest = "manifest"
)

// SourceConfig defines one place that filenames to check are gathered from.
type SourceConfig struct {
	Type string `json:"type" yaml:"type"`

	// static sources
	Filenames []string `json:"filenames,omitempty" yaml:"filenames,omitempty"`

	// dir sources
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// repo sources
	CloneUrl string `json:"cloneUrl,omitempty" yaml:"cloneUrl,omitempty"`
	Branch   string `json:"branch,omitempty" yaml:"branch,omitempty"`

	// manifest sources
	Url string `json:"url,omitempty" yaml:"url,omitempty"`

	// repo and manifest sources
	Auth *AuthConfig `json:"auth,omitempty" yaml:"auth,omitempty"`
}

func (sc *SourceConfig) Validate() error {
	switch sc.Type {
	case SourceTypeStatic:
		if len(sc.Filenames) == 0 {
			return fmt.Errorf("Static source has no filenames")
		}

	case SourceTypeDir:
		if sc.Path == "" {
			return fmt.Errorf("Dir source has no path")
		}

	case SourceTypeRepo:
		if sc.CloneUrl == "" {
			return fmt.Errorf("Repo source has no clone URL")
		}

	case SourceTypeManifest:
		if sc.Url == "" {
			return fmt.Errorf("Manifest source has no URL")
		}

	default:
		return fmt.Errorf("Unrecognised source type: %s", sc.Type)
	}

	return nil
}

// AuthConfig defines how to authenticate with a repo host or manifest endpoint.
type AuthConfig struct {
	// plain bearer token
	Token string `json:"token,omitempty" yaml:"token,omitempty"`

	// JWT for endpoints that expect a signed app token
	ClientId         string `json:"clientId,omitempty" yaml:"clientId,omitempty"`
	PrivateKeyString string `json:"privateKeyString,omitempty" yaml:"privateKeyString,omitempty"`
	PrivateKeyFile   string `json:"privateKeyFile,omitempty" yaml:"privateKeyFile,omitempty"`
}

func (ac *AuthConfig) GenerateJwt() (string, error) {
	if ac.ClientId == "" {
		return "", fmt.Errorf("Error generating JWT: client ID is missing")
	}

	if ac.PrivateKeyFile == "" && ac.PrivateKeyString == "" {
		return "", fmt.Errorf("Error generating JWT: private key is missing")
	}

	var privateKeyBytes []byte
	var err error
	if ac.PrivateKeyString != "" {
		privateKeyBytes = []byte(ac.PrivateKeyString)
	} else {
		privateKeyBytes, err = os.ReadFile(ac.PrivateKeyFile)
		if err != nil {
			return "", fmt.Errorf("Error reading private key: %w", err)
		}

		// persist as a string so the file is only read once
		ac.PrivateKeyString = string(privateKeyBytes)
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyBytes)
	if err != nil {
		return "", fmt.Errorf("Error parsing private key: %w", err)
	}

	// manifest endpoints only ever see short-lived tokens - a fresh one is signed each time a source
	// is initialised
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    ac.ClientId,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(5 * time.Minute)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signedToken, err := token.SignedString(privateKey)
	if err != nil {
		return "", fmt.Errorf("Error signing JWT: %w", err)
	}

	return signedToken, nil
}
