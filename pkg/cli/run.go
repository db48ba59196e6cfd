package cli

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/secmon-lab/scanhook/pkg/cli/config"
	"github.com/secmon-lab/scanhook/pkg/domain/model"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
	"github.com/secmon-lab/scanhook/pkg/infra"
	"github.com/secmon-lab/scanhook/pkg/usecase"
	"github.com/secmon-lab/scanhook/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

var errTestFailed = goerr.New("test run found issues above the severity threshold")

func runCommand() *cli.Command {
	var (
		dir      string
		sid      string
		checkout Checkout

		provider  config.TestProvider
		githubApp config.GitHubApp
		pipeline  config.Pipeline
	)

	return &cli.Command{
		Name:    "run",
		Aliases: []string{"r"},
		Usage:   "Run static analysis for the HEAD of a local checkout and report commit statuses",
		Flags: slice.Flatten([]cli.Flag{
			&cli.StringFlag{
				Name:        "dir",
				Aliases:     []string{"d"},
				Usage:       "Path to the git repository",
				Value:       ".",
				Destination: &dir,
			},
			&cli.StringFlag{
				Name:        "sid",
				Usage:       "Session ID of the test provider",
				Sources:     cli.EnvVars("SCANHOOK_SID"),
				Destination: &sid,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "github-owner",
				Usage:       "GitHub repository owner (auto-detect from git if not specified)",
				Sources:     cli.EnvVars("SCANHOOK_GITHUB_OWNER"),
				Destination: &checkout.Owner,
			},
			&cli.StringFlag{
				Name:        "github-repo",
				Usage:       "GitHub repository name (auto-detect from git if not specified)",
				Sources:     cli.EnvVars("SCANHOOK_GITHUB_REPO"),
				Destination: &checkout.RepoName,
			},
			&cli.StringFlag{
				Name:        "github-commit-id",
				Usage:       "Commit ID (auto-detect from git if not specified)",
				Sources:     cli.EnvVars("SCANHOOK_GITHUB_COMMIT_ID"),
				Destination: (*string)(&checkout.CommitID),
			},
			&cli.StringFlag{
				Name:        "github-tree-id",
				Usage:       "Tree ID (auto-detect from git if not specified)",
				Sources:     cli.EnvVars("SCANHOOK_GITHUB_TREE_ID"),
				Destination: (*string)(&checkout.TreeID),
			},
		}, provider.Flags(), githubApp.Flags(), pipeline.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := AutoDetectCheckout(ctx, dir, &checkout); err != nil {
				return err
			}

			ucOptions, err := pipeline.Options()
			if err != nil {
				return err
			}
			providerClient, err := provider.New()
			if err != nil {
				return err
			}
			ghClient, err := githubApp.New()
			if err != nil {
				return err
			}

			uc := usecase.New(infra.New(
				infra.WithTestProvider(providerClient),
				infra.WithGitHub(ghClient),
			), ucOptions...)

			return runTest(ctx, uc, types.SessionID(sid), checkout)
		},
	}
}

func runTest(ctx context.Context, uc *usecase.UseCase, sid types.SessionID, checkout Checkout) error {
	identity, err := uc.VerifyIdentity(ctx, sid, "")
	if err != nil {
		return err
	}
	if !identity.CanDrive() {
		return goerr.Wrap(types.ErrUnauthorized, "session can not drive a test run")
	}

	logging.From(ctx).Info("starting test run",
		slog.String("owner", checkout.Owner),
		slog.String("repo", checkout.RepoName),
		slog.Any("commit", checkout.CommitID),
		slog.Any("tree", checkout.TreeID),
		slog.Any("identity", identity.Public()),
	)

	output, err := uc.RunTest(ctx, &model.TestRunInput{
		Identity: identity,
		Repo: model.GitHubRepo{
			Owner:    checkout.Owner,
			RepoName: checkout.RepoName,
		},
		CommitID: checkout.CommitID,
		TreeID:   checkout.TreeID,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output); err != nil {
		return goerr.Wrap(err, "failed to write test output")
	}

	if output.Verdict == model.VerdictFailure {
		return goerr.Wrap(errTestFailed, "test failed", goerr.V("matrix", output.Matrix))
	}
	return nil
}
