package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/secmon-lab/scanhook/pkg/domain/interfaces"
	"github.com/secmon-lab/scanhook/pkg/domain/model"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
	"github.com/secmon-lab/scanhook/pkg/utils/logging"
	"github.com/secmon-lab/scanhook/pkg/utils/tracing"
)

// Consecutive status polling errors tolerated before the run is abandoned.
const maxPollErrors = 3

// RunTest drives one test run through its four stages and reports each of
// them as a commit status.
func (x *UseCase) RunTest(ctx context.Context, input *model.TestRunInput) (*model.TestRunOutput, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	reporter := x.newStatusReporter(githubAuth(input), input.Repo, input.CommitID)
	return x.runTest(ctx, input, reporter)
}

func githubAuth(input *model.TestRunInput) interfaces.GitHubAuth {
	return interfaces.GitHubAuth{
		Token:     input.Identity.ProviderToken,
		InstallID: input.InstallationID,
	}
}

// stageError turns a collaborator error into a RunError of the stage.
// Rejections by the provider are expected negatives, anything else is a
// transport failure.
func stageError(stage model.Stage, reason string, err error) *model.RunError {
	if runErr, ok := model.AsRunError(err); ok {
		return runErr
	}
	if errors.Is(err, types.ErrUnauthorized) || errors.Is(err, types.ErrProviderResponse) {
		return &model.RunError{Stage: stage, Reason: reason, Err: err}
	}
	return model.NewTransportError(stage, reason, err)
}

func (x *UseCase) runTest(ctx context.Context, input *model.TestRunInput, reporter *StatusReporter) (*model.TestRunOutput, error) {
	ctx, span := tracing.Start(ctx, "usecase.RunTest")
	defer span.End()

	ctx = logging.WithAttrs(ctx,
		slog.String("repo", input.Repo.FullName()),
		slog.Any("tree_id", input.TreeID),
		slog.Any("commit_id", input.CommitID),
	)
	startedAt := time.Now()

	// The terminal status is posted even when the run was canceled.
	fail := func(runErr *model.RunError) (*model.TestRunOutput, error) {
		reporter.Report(context.WithoutCancel(ctx), runErr.Stage, runErr.ReportState(), nil)
		return nil, runErr
	}

	// setup
	reporter.Report(ctx, model.StageSetup, model.StatePending, nil)
	tree, err := x.clients.GitHub().GetTree(ctx, githubAuth(input), input.Repo, input.TreeID)
	if err != nil {
		return fail(stageError(model.StageSetup, "failed to get tree", err))
	}
	if tree == nil || len(tree.Entries) == 0 {
		return fail(model.NewRunError(model.StageSetup, "empty tree"))
	}
	if tree.Truncated {
		return fail(model.NewRunError(model.StageSetup, "tree is truncated"))
	}
	reporter.Report(ctx, model.StageSetup, model.StateSuccess, nil)

	// uploading
	reporter.Report(ctx, model.StageUploading, model.StatePending, nil)
	if err := x.uploadTree(ctx, input, tree); err != nil {
		return fail(stageError(model.StageUploading, "failed to upload tree", err))
	}
	reporter.Report(ctx, model.StageUploading, model.StateSuccess, nil)

	// testing
	reporter.Report(ctx, model.StageTesting, model.StatePending, nil)
	sid := input.Identity.SessionID
	testID, err := x.clients.TestProvider().RunTests(ctx, sid, &model.RunTestsInput{
		Project:  input.Repo.FullName(),
		TreeID:   tree.SHA,
		CommitID: string(input.CommitID),
	})
	if err != nil {
		return fail(stageError(model.StageTesting, "failed to start test run", err))
	}
	if testID == "" {
		return fail(model.NewRunError(model.StageTesting, "no test ID"))
	}
	ctx = logging.WithAttrs(ctx, slog.Any("test_id", testID))

	status, err := x.waitTest(ctx, sid, testID, reporter)
	if err != nil {
		return fail(stageError(model.StageTesting, "failed to poll test status", err))
	}
	if status.State == model.TestRunFailed {
		return fail(model.NewRunError(model.StageTesting, "test run failed"))
	}
	reporter.Report(ctx, model.StageTesting, model.StateSuccess, &model.StageExtra{TestID: string(testID)})

	// results
	reporter.Report(ctx, model.StageResults, model.StatePending, nil)
	results, err := x.clients.TestProvider().FetchResults(ctx, sid, testID)
	if err != nil {
		return fail(stageError(model.StageResults, "failed to fetch results", err))
	}
	if results == nil {
		return fail(model.NewRunError(model.StageResults, "no results"))
	}

	matrix, verdict := x.policy.Evaluate(results.Findings)
	if verdict == model.VerdictFailure {
		reporter.Report(ctx, model.StageResults, model.StateFailure, &model.StageExtra{
			Hits: matrix.Summary(x.policy),
		})
	} else {
		reporter.Report(ctx, model.StageResults, model.StateSuccess, &model.StageExtra{
			Severity: x.policy.Threshold(),
		})
	}

	duration := status.Duration()
	if duration == 0 {
		duration = int64(time.Since(startedAt) / time.Second)
	}
	logging.From(ctx).Info("Test run completed",
		slog.Any("verdict", verdict),
		slog.Int("findings", len(results.Findings)),
		slog.Int64("duration_sec", duration),
	)

	return &model.TestRunOutput{
		TestID:       testID,
		ResolvedTree: tree.SHA,
		Results:      results.Findings,
		Matrix:       matrix,
		Verdict:      verdict,
		Duration:     duration,
	}, nil
}

// uploadTree fetches every blob of the tree and synchronizes them to the
// test provider. Files above the size limit are skipped, and a tree whose
// remaining files exceed the upload cap is rejected before any download.
func (x *UseCase) uploadTree(ctx context.Context, input *model.TestRunInput, tree *model.Tree) error {
	entries := make([]*model.TreeEntry, 0, len(tree.Entries))
	var total int64
	for _, entry := range tree.Entries {
		if x.maxFileSize > 0 && entry.Size > x.maxFileSize {
			logging.From(ctx).Debug("Skip large file",
				slog.String("path", entry.Path),
				slog.Int("size", entry.Size),
			)
			continue
		}
		entries = append(entries, entry)
		total += int64(entry.Size)
	}
	if x.maxUploadSize > 0 && total > x.maxUploadSize {
		logging.From(ctx).Warn("Tree exceeds upload size limit",
			slog.Int64("total", total),
			slog.Int64("limit", x.maxUploadSize),
		)
		return model.NewRunError(model.StageUploading, "tree exceeds upload size limit")
	}

	var (
		mu    sync.Mutex
		files = make([]*model.UploadFile, 0, len(entries))
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(x.uploadConcurrency)

	for _, entry := range entries {
		eg.Go(func() error {
			data, err := x.clients.GitHub().GetBlob(egCtx, githubAuth(input), input.Repo, entry.SHA)
			if err != nil {
				return goerr.Wrap(err, "failed to get blob", goerr.V("path", entry.Path))
			}

			mu.Lock()
			files = append(files, &model.UploadFile{
				Path:    entry.Path,
				SHA:     entry.SHA,
				Content: data,
			})
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return err
	}

	return x.clients.TestProvider().UploadFromTree(ctx, input.Identity.SessionID, &model.UploadInput{
		Project: input.Repo.FullName(),
		TreeID:  tree.SHA,
		Files:   files,
	})
}

// waitTest polls the test status until it is terminal or the poll timeout
// expires.
func (x *UseCase) waitTest(ctx context.Context, sid types.SessionID, testID types.TestID, reporter *StatusReporter) (*model.TestStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, x.pollTimeout)
	defer cancel()

	ticker := time.NewTicker(x.pollInterval)
	defer ticker.Stop()

	lastPercent := -1
	pollErrors := 0

	for {
		status, err := x.clients.TestProvider().PollStatus(ctx, sid, testID)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				break
			}
			pollErrors++
			logging.From(ctx).Warn("Failed to poll test status",
				slog.Any("error", err),
				slog.Int("attempt", pollErrors),
			)
			if pollErrors >= maxPollErrors {
				return nil, err
			}

		case status == nil:
			return nil, goerr.Wrap(types.ErrProviderResponse, "empty test status")

		case status.State.Terminal():
			return status, nil

		default:
			pollErrors = 0
			if status.PercentComplete != lastPercent && status.PercentComplete > 0 {
				lastPercent = status.PercentComplete
				reporter.Report(ctx, model.StageTesting, model.StatePendingWithProgress, &model.StageExtra{
					PercentComplete: status.PercentComplete,
					TestID:          string(testID),
				})
			}
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, model.NewRunError(model.StageTesting, model.RunErrorReasonTimeout)
			}
			return nil, goerr.Wrap(ctx.Err(), "test polling canceled")
		case <-ticker.C:
		}
	}
}
