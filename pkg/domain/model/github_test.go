package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/scanhook/pkg/domain/model"
)

func TestGitHubRepoValidate(t *testing.T) {
	t.Run("valid repo passes validation", func(t *testing.T) {
		repo := &model.GitHubRepo{Owner: "test-owner", RepoName: "test-repo"}
		gt.NoError(t, repo.Validate())
	})

	t.Run("missing owner fails validation", func(t *testing.T) {
		repo := &model.GitHubRepo{RepoName: "test-repo"}
		gt.Error(t, repo.Validate())
	})

	t.Run("missing repo name fails validation", func(t *testing.T) {
		repo := &model.GitHubRepo{Owner: "test-owner"}
		gt.Error(t, repo.Validate())
	})
}

func TestParseGitHubRepo(t *testing.T) {
	repo, err := model.ParseGitHubRepo("secmon-lab/scanhook")
	gt.NoError(t, err)
	gt.V(t, repo.Owner).Equal("secmon-lab")
	gt.V(t, repo.RepoName).Equal("scanhook")
	gt.V(t, repo.FullName()).Equal("secmon-lab/scanhook")

	for _, v := range []string{"", "owner", "owner/", "/repo", "a/b/c"} {
		_, err := model.ParseGitHubRepo(v)
		gt.Error(t, err)
	}
}

func TestNormalizeRef(t *testing.T) {
	t.Run("strips refs/heads/ prefix", func(t *testing.T) {
		gt.V(t, model.NormalizeRef("refs/heads/main")).Equal("main")
	})

	t.Run("handles nested branch names", func(t *testing.T) {
		gt.V(t, model.NormalizeRef("refs/heads/feature/my-branch")).Equal("feature/my-branch")
	})

	t.Run("returns original if not refs/heads", func(t *testing.T) {
		gt.V(t, model.NormalizeRef("refs/tags/v1.0.0")).Equal("refs/tags/v1.0.0")
	})

	t.Run("handles plain branch name", func(t *testing.T) {
		gt.V(t, model.NormalizeRef("main")).Equal("main")
	})
}
