package cli

import (
	"context"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
)

// Checkout describes the commit of a local git repository to be tested.
type Checkout struct {
	Owner    string
	RepoName string
	Branch   string
	CommitID types.CommitSHA
	TreeID   types.TreeSHA
}

// AutoDetectCheckout fills unset fields of checkout from the git repository
// at dir.
func AutoDetectCheckout(ctx context.Context, dir string, checkout *Checkout) error {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return goerr.Wrap(err, "failed to open git repository", goerr.V("dir", dir))
	}

	if checkout.CommitID == "" || checkout.Branch == "" || checkout.TreeID == "" {
		head, err := repo.Head()
		if err != nil {
			return goerr.Wrap(err, "failed to get HEAD")
		}

		if checkout.CommitID == "" {
			checkout.CommitID = types.CommitSHA(head.Hash().String())
		}

		if checkout.Branch == "" && head.Name().IsBranch() {
			checkout.Branch = head.Name().Short()
		}

		if checkout.TreeID == "" {
			commit, err := repo.CommitObject(head.Hash())
			if err != nil {
				return goerr.Wrap(err, "failed to get HEAD commit", goerr.V("commit", head.Hash().String()))
			}
			checkout.TreeID = types.TreeSHA(commit.TreeHash.String())
		}
	}

	if checkout.Owner == "" || checkout.RepoName == "" {
		remote, err := repo.Remote("origin")
		if err != nil {
			return goerr.Wrap(err, "failed to get remote origin")
		}

		if len(remote.Config().URLs) == 0 {
			return goerr.New("no remote URL found")
		}

		url := remote.Config().URLs[0]
		owner, repoName := ParseRemoteURL(url)
		if owner == "" || repoName == "" {
			return goerr.New("failed to parse GitHub owner/repo from git remote URL", goerr.V("url", url))
		}

		if checkout.Owner == "" {
			checkout.Owner = owner
		}
		if checkout.RepoName == "" {
			checkout.RepoName = repoName
		}
	}

	return nil
}

// ParseRemoteURL extracts owner and repository name from a GitHub remote
// such as git@github.com:owner/repo.git or https://github.com/owner/repo.git.
func ParseRemoteURL(url string) (owner, repoName string) {
	var path string
	switch {
	case strings.HasPrefix(url, "git@github.com:"):
		path = strings.TrimPrefix(url, "git@github.com:")
	case strings.Contains(url, "github.com/"):
		parts := strings.SplitN(url, "github.com/", 2)
		path = parts[1]
	default:
		return "", ""
	}

	path = strings.TrimSuffix(strings.TrimSuffix(path, "/"), ".git")
	ownerRepo := strings.Split(path, "/")
	if len(ownerRepo) != 2 {
		return "", ""
	}
	return ownerRepo[0], ownerRepo[1]
}
