package usecase

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/secmon-lab/scanhook/pkg/domain/model"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
	"github.com/secmon-lab/scanhook/pkg/utils/errutil"
	"github.com/secmon-lab/scanhook/pkg/utils/logging"
)

// HandleWebhook records an inbound event and selects the subscriber that
// drives its test run. It returns a job when a run must be executed; the
// caller is expected to pass it to ExecuteJob.
func (x *UseCase) HandleWebhook(ctx context.Context, channel types.Channel, event *model.WebhookEvent) (*model.WebhookResult, error) {
	if channel != types.ChannelGitHub {
		return nil, goerr.Wrap(types.ErrUnsupportedChannel, "channel is not supported", goerr.V("channel", channel))
	}

	if !event.Actionable() {
		logging.From(ctx).Debug("Drop event without comparison or tree", slog.Any("kind", event.Kind))
		return &model.WebhookResult{}, nil
	}
	if err := event.Validate(); err != nil {
		logging.From(ctx).Warn("Drop invalid event", slog.Any("error", err))
		return &model.WebhookResult{}, nil
	}

	ctx = logging.WithAttrs(ctx,
		slog.String("compare", event.Compare),
		slog.String("repo", event.Repo.FullName()),
		slog.String("ref", event.Ref),
	)

	record := model.NewScanRecord(channel, event, logging.CtxTime(ctx))
	existed, err := x.clients.ScanLedger().UpsertRawEvent(ctx, record)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to record event")
	}
	if existed {
		logging.From(ctx).Info("Duplicate event, skip")
		return &model.WebhookResult{Actionable: true, Duplicate: true}, nil
	}

	partition := model.Partition{
		Channel:     channel,
		Ref:         event.Ref,
		Repository:  event.Repo.FullName(),
		Environment: x.environment,
	}.Normalize()

	subscribers, err := x.clients.SubscriptionRegistry().ListByPartition(ctx, partition)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list subscriptions", goerr.V("partition", partition))
	}
	result := &model.WebhookResult{Actionable: true, Subscribers: len(subscribers)}
	if len(subscribers) == 0 {
		logging.From(ctx).Info("No subscriber")
		return result, nil
	}

	driver, identity := x.selectDriver(ctx, subscribers)
	if driver == nil {
		logging.From(ctx).Warn("No subscriber can drive the test run", slog.Int("subscribers", len(subscribers)))
		return result, nil
	}

	// Without a configured environment every environment was notified, and
	// the scan reference goes to the partition of the driver.
	if partition.Environment == "" {
		partition.Environment = driver.Environment
	}

	result.Job = &model.TestRunJob{
		ScanID:         record.ID,
		Compare:        record.Compare,
		Partition:      partition,
		Repo:           event.Repo,
		CommitID:       event.HeadCommitID,
		TreeID:         event.TreeID,
		InstallationID: event.InstallationID,
		DriverEmail:    identity.Email,
		Credential:     x.clients.TokenStore().Put(identity),
	}

	logging.From(ctx).Info("Test run scheduled",
		slog.Any("scan_id", record.ID),
		slog.Any("driver", identity.Email),
	)
	return result, nil
}

// selectDriver verifies every subscriber concurrently and returns the
// first one in registry order whose identity can drive a run. Verification
// failures only exclude the subscriber.
func (x *UseCase) selectDriver(ctx context.Context, subscribers []*model.Subscription) (*model.Subscription, *model.VerifiedIdentity) {
	identities := make([]*model.VerifiedIdentity, len(subscribers))

	var eg errgroup.Group
	for i, sub := range subscribers {
		eg.Go(func() error {
			identity, err := x.VerifyIdentity(ctx, sub.SessionID, sub.Email)
			if err != nil {
				logging.From(ctx).Warn("Failed to verify subscriber",
					slog.Any("email", sub.Email),
					slog.Any("error", err),
				)
				return nil
			}
			identities[i] = identity
			return nil
		})
	}
	_ = eg.Wait()

	for i, identity := range identities {
		if identity.CanDrive() {
			return subscribers[i], identity
		}
	}
	return nil, nil
}

// ExecuteJob runs the test of a scheduled job and stores its outcome. An
// operational failure of the run is stored on the scan record and is not
// returned; only storage failures are.
func (x *UseCase) ExecuteJob(ctx context.Context, job *model.TestRunJob) error {
	identity := x.clients.TokenStore().Take(job.Credential)
	if identity == nil {
		return goerr.Wrap(types.ErrNoVerifiedIdentity, "credential of job is not available",
			goerr.V("scan_id", job.ScanID),
		)
	}

	ctx = logging.WithAttrs(ctx,
		slog.Any("scan_id", job.ScanID),
		slog.String("compare", job.Compare),
	)

	input := &model.TestRunInput{
		Identity:       identity,
		Repo:           job.Repo,
		CommitID:       job.CommitID,
		TreeID:         job.TreeID,
		InstallationID: job.InstallationID,
	}
	if err := input.Validate(); err != nil {
		return err
	}

	reporter := x.newStatusReporter(githubAuth(input), job.Repo, job.CommitID)
	output, runErr := x.runTest(ctx, input, reporter)

	outcome := &model.RunOutcome{
		TreeID:    job.TreeID,
		UpdatedAt: logging.CtxTime(ctx),
	}
	if runErr != nil {
		logging.From(ctx).Warn("Test run failed", slog.Any("error", runErr))
		outcome.Verdict = model.VerdictError
		outcome.Error = runErr.Error()
	} else {
		outcome.TreeID = output.ResolvedTree
		outcome.TestID = output.TestID
		outcome.Results = output.Results
		outcome.Matrix = output.Matrix
		outcome.Verdict = output.Verdict
	}

	// A canceled run still records its outcome so the scan is not left
	// without a verdict.
	ctx = context.WithoutCancel(ctx)
	ok, err := x.clients.ScanLedger().AttachResults(ctx, job.Compare, outcome)
	if err != nil {
		return goerr.Wrap(err, "failed to attach results")
	}
	if !ok {
		logging.From(ctx).Warn("Scan record is gone, results are not stored")
		return nil
	}

	n, err := x.clients.SubscriptionRegistry().AttachScanReference(ctx, job.Partition, job.ScanID)
	if err != nil {
		return goerr.Wrap(err, "failed to attach scan reference", goerr.V("partition", job.Partition))
	}

	logging.From(ctx).Info("Scan completed",
		slog.Any("verdict", outcome.Verdict),
		slog.Int("subscriptions", n),
	)

	var duration int64
	if output != nil {
		duration = output.Duration
	}
	if err := x.exportScan(ctx, job, outcome, n, duration); err != nil {
		errutil.HandleError(ctx, "failed to export scan", err)
	}

	return nil
}
