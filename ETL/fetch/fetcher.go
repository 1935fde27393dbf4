package fetch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	git "github.com/go-git/go-git/v5"

	"github.com/jaanu-oss/Phonepae/ETL/config"
	"github.com/jaanu-oss/Phonepae/ETL/utils"
)

// Fetcher obtains a local copy of the Pulse data repository.
// It clones on the first run and pulls on subsequent runs.
type Fetcher struct {
	repoURL  string
	cloneDir string
	logger   *utils.ETLLogger
}

// NewFetcher creates a new Fetcher
func NewFetcher(cfg config.ETLConfig, logger *utils.ETLLogger) *Fetcher {
	return &Fetcher{
		repoURL:  cfg.RepoURL,
		cloneDir: cfg.CloneDir,
		logger:   logger,
	}
}

// Fetch ensures a local copy of the repository exists and is current.
// It returns the path of the data directory inside the clone.
//
// A pull failure over an existing copy is not fatal: the previous
// snapshot is still usable and the pipeline proceeds over it.
func (f *Fetcher) Fetch() (string, error) {
	startTime := time.Now()

	if err := os.MkdirAll(filepath.Dir(f.cloneDir), 0755); err != nil {
		return "", fmt.Errorf("failed to create clone parent directory: %w", err)
	}

	if f.repoExists() {
		f.logger.Info("Repository already exists at %s, pulling latest changes...", f.cloneDir)

		if err := f.pull(); err != nil {
			f.logger.Error("Pull failed, continuing with the existing copy: %v", err)
		} else {
			f.logger.Info("Repository updated. Duration: %v", time.Since(startTime))
		}
	} else {
		f.logger.Info("Cloning repository from %s...", f.repoURL)

		_, err := git.PlainClone(f.cloneDir, false, &git.CloneOptions{
			URL:   f.repoURL,
			Depth: 1,
		})
		if err != nil {
			return "", fmt.Errorf("failed to clone repository %s: %w", f.repoURL, err)
		}

		f.logger.Info("Repository cloned to %s. Duration: %v", f.cloneDir, time.Since(startTime))
	}

	return filepath.Join(f.cloneDir, "data"), nil
}

// repoExists reports whether the clone directory already holds a git repository
func (f *Fetcher) repoExists() bool {
	info, err := os.Stat(filepath.Join(f.cloneDir, ".git"))
	return err == nil && info.IsDir()
}

// pull fast-forwards the existing clone; already-up-to-date is success
func (f *Fetcher) pull() error {
	repo, err := git.PlainOpen(f.cloneDir)
	if err != nil {
		return fmt.Errorf("failed to open repository at %s: %w", f.cloneDir, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}

	err = worktree.Pull(&git.PullOptions{RemoteName: "origin"})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to pull repository: %w", err)
	}

	return nil
}
