package sources

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/markormesher/filecheck/internal/schema"
	"github.com/markormesher/filecheck/internal/utils"
)

type RepoSource struct {
	cloneUrl string
	branch   string
	auth     *schema.AuthConfig

	// private state
	pathOnDisk string
}

func repoSourceFromConfig(conf *schema.FilecheckConfig, sourceConfig *schema.SourceConfig) (*RepoSource, error) {
	return &RepoSource{
		cloneUrl:   sourceConfig.CloneUrl,
		branch:     sourceConfig.Branch,
		auth:       sourceConfig.Auth,
		pathOnDisk: filepath.Join(conf.RepoStoragePath, utils.Sha256String(sourceConfig.CloneUrl)),
	}, nil
}

// interface methods

func (s *RepoSource) Init(conf *schema.FilecheckConfig) error {
	err := s.cloneOrUpdate()
	if err != nil {
		return err
	}

	if s.branch != "" {
		err = s.checkoutBranch()
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *RepoSource) Deinit() error {
	return nil
}

func (s *RepoSource) Describe() string {
	return "repo: " + s.cloneUrl
}

func (s *RepoSource) Filenames() ([]string, error) {
	isPresent, err := s.isPresentOnDisk()
	if err != nil {
		return nil, fmt.Errorf("Error checking before listing files from repo: %w", err)
	}

	if !isPresent {
		return nil, fmt.Errorf("Cannot list files from a repo that is not present on disk")
	}

	return walkFiles(s.pathOnDisk, ".git")
}

// ---

func (s *RepoSource) cloneOrUpdate() error {
	isPresent, err := s.isPresentOnDisk()
	if err != nil {
		return fmt.Errorf("Error checking whether repo is already present on disk: %w", err)
	}

	if isPresent {
		return s.update()
	}

	return s.clone()
}

func (s *RepoSource) clone() error {
	l.Info("Cloning repo", "url", s.cloneUrl)

	err := os.MkdirAll(s.pathOnDisk, os.ModePerm)
	if err != nil {
		return fmt.Errorf("Error creating repo storage: %v", err)
	}

	_, err = git.PlainClone(s.pathOnDisk, false, &git.CloneOptions{
		URL:  s.cloneUrl,
		Auth: s.repoAuth(),
	})
	if err != nil {
		return fmt.Errorf("Error cloning repo: %w", err)
	}

	return nil
}

func (s *RepoSource) update() error {
	l.Info("Updating repo", "url", s.cloneUrl)

	_, worktree, err := s.openRepo()
	if err != nil {
		return err
	}

	err = worktree.Pull(&git.PullOptions{
		Auth: s.repoAuth(),
	})
	if err != nil {
		if errors.Is(err, git.NoErrAlreadyUpToDate) {
			l.Debug("Repo has no changes")
		} else {
			return fmt.Errorf("Error pulling repo updates: %w", err)
		}
	}

	return nil
}

func (s *RepoSource) checkoutBranch() error {
	l.Info("Checking out branch", "branch", s.branch)

	_, worktree, err := s.openRepo()
	if err != nil {
		return err
	}

	err = worktree.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(s.branch),
	})
	if err != nil {
		return fmt.Errorf("Error checking out branch: %w", err)
	}

	return nil
}

func (s *RepoSource) repoAuth() transport.AuthMethod {
	if s.auth == nil {
		return nil
	}

	if s.auth.Token != "" {
		return &http.TokenAuth{
			Token: s.auth.Token,
		}
	}

	return nil
}

func (s *RepoSource) openRepo() (*git.Repository, *git.Worktree, error) {
	repo, err := git.PlainOpen(s.pathOnDisk)
	if err != nil {
		return nil, nil, fmt.Errorf("Error opening repo: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, nil, fmt.Errorf("Error accessing repo work tree: %w", err)
	}

	return repo, worktree, nil
}

func (s *RepoSource) isPresentOnDisk() (bool, error) {
	if s.pathOnDisk == "" {
		return false, fmt.Errorf("Repo does not have a disk path set")
	}

	// check whether the directory this repo is cloned to exists
	_, repoDirErr := os.Stat(s.pathOnDisk)
	if repoDirErr != nil {
		if os.IsNotExist(repoDirErr) {
			return false, nil
		} else {
			return false, fmt.Errorf("Error checking whether repo exists on disk: %w", repoDirErr)
		}
	}

	// check whether the directory this repo is cloned to contains a .git folder
	_, gitDirErr := os.Stat(filepath.Join(s.pathOnDisk, ".git"))
	if gitDirErr != nil {
		if os.IsNotExist(gitDirErr) {
			return false, nil
		} else {
			return false, fmt.Errorf("Error checking whether repo exists on disk: %w", gitDirErr)
		}
	}

	return true, nil
}
