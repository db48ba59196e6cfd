package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
)

type GitHubRepo struct {
	Owner    string `json:"owner"`
	RepoName string `json:"repo_name"`
}

// ParseGitHubRepo splits a full repository name such as "owner/name".
func ParseGitHubRepo(fullName string) (GitHubRepo, error) {
	parts := strings.Split(fullName, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return GitHubRepo{}, goerr.Wrap(types.ErrValidationFailed, "invalid repository full name",
			goerr.V("repository", fullName),
		)
	}
	return GitHubRepo{Owner: parts[0], RepoName: parts[1]}, nil
}

func (x GitHubRepo) FullName() string {
	return x.Owner + "/" + x.RepoName
}

func (x *GitHubRepo) Validate() error {
	if x.Owner == "" {
		return goerr.Wrap(types.ErrValidationFailed, "repository owner is empty")
	}
	if x.RepoName == "" {
		return goerr.Wrap(types.ErrValidationFailed, "repository name is empty")
	}
	return nil
}

// NormalizeRef strips the refs/heads/ prefix so that "refs/heads/main" and
// "main" address the same branch.
func NormalizeRef(v string) string {
	if ref := strings.SplitN(v, "/", 3); len(ref) == 3 && ref[0] == "refs" && ref[1] == "heads" {
		return ref[2]
	}
	return v
}

// Tree is a snapshot of repository files resolved from a tree identifier.
type Tree struct {
	SHA       types.TreeSHA
	Entries   []*TreeEntry
	Truncated bool
}

type TreeEntry struct {
	Path string
	SHA  string
	Size int
}

// CommitStatus is one update pushed to the commit status API.
type CommitStatus struct {
	State       string
	Context     string
	Description string
	TargetURL   string
}
