package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// FetchStdlib clones the standard library pinned by src and installs its
// checkout as <home>/std, replacing any previous install. It returns the
// commit that was checked out.
func FetchStdlib(ctx context.Context, src *StdlibSource, home string) (string, error) {
	if src == nil || src.Git == "" {
		return "", errors.New("stdlib: git URL required")
	}
	if home == "" {
		return "", errors.New("stdlib: home directory required")
	}
	if err := os.MkdirAll(home, 0o755); err != nil {
		return "", err
	}

	tmpDir, err := os.MkdirTemp(home, "std-fetch-*")
	if err != nil {
		return "", err
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }
	// PlainClone creates the directory itself.
	if err := os.RemoveAll(tmpDir); err != nil {
		return "", err
	}

	repo, err := git.PlainCloneContext(ctx, tmpDir, false, &git.CloneOptions{URL: src.Git})
	if err != nil {
		cleanup()
		return "", fmt.Errorf("git clone %s: %w", src.Git, err)
	}

	revision := stdlibRevision(src)
	hash, err := repo.ResolveRevision(revision)
	if err != nil {
		cleanup()
		return "", fmt.Errorf("resolve revision %s: %w", revision, err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		cleanup()
		return "", err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		cleanup()
		return "", fmt.Errorf("git checkout %s: %w", revision, err)
	}

	if err := installStd(tmpDir, filepath.Join(home, "std")); err != nil {
		cleanup()
		return "", err
	}
	return hash.String(), nil
}

// installStd moves checkout to target. A previous install is kept aside
// until the swap succeeds and put back if it fails.
func installStd(checkout, target string) error {
	backup := target + ".old"
	if err := os.RemoveAll(backup); err != nil {
		return err
	}
	hadPrevious := false
	if _, err := os.Stat(target); err == nil {
		if err := os.Rename(target, backup); err != nil {
			return fmt.Errorf("stdlib: move previous install aside: %w", err)
		}
		hadPrevious = true
	}
	if err := os.Rename(checkout, target); err != nil {
		if hadPrevious {
			if restoreErr := os.Rename(backup, target); restoreErr != nil {
				return errors.Join(fmt.Errorf("stdlib: install: %w", err), restoreErr)
			}
		}
		return fmt.Errorf("stdlib: install: %w", err)
	}
	if hadPrevious {
		return os.RemoveAll(backup)
	}
	return nil
}

func stdlibRevision(src *StdlibSource) plumbing.Revision {
	switch {
	case src.Rev != "":
		return plumbing.Revision(src.Rev)
	case src.Tag != "":
		return plumbing.Revision("refs/tags/" + src.Tag)
	case src.Branch != "":
		return plumbing.Revision("refs/remotes/origin/" + src.Branch)
	default:
		return plumbing.Revision(plumbing.HEAD)
	}
}
