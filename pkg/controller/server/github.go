package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/scanhook/pkg/domain/interfaces"
	"github.com/secmon-lab/scanhook/pkg/domain/model"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
	"github.com/secmon-lab/scanhook/pkg/utils/errutil"
	"github.com/secmon-lab/scanhook/pkg/utils/logging"
)

// handleWebhook answers as soon as the event is recorded. The test run
// continues on the runner after the response is sent.
func handleWebhook(uc interfaces.UseCase, cfg *config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		channel := channelOf(r)
		if channel != types.ChannelGitHub {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown channel"})
			return
		}

		payload, err := github.ValidatePayload(r, []byte(cfg.ghSecret))
		if err != nil {
			logging.From(ctx).Warn("invalid webhook signature", slog.Any("error", err))
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid signature"})
			return
		}

		event, err := parseGitHubEvent(github.WebHookType(r), payload)
		if err != nil {
			logging.From(ctx).Warn("fail to parse webhook", slog.Any("error", err))
			writeJSON(w, http.StatusOK, map[string]string{"result": "ok"})
			return
		}

		result, err := uc.HandleWebhook(ctx, channel, event)
		if err != nil {
			errutil.HandleError(ctx, "fail to handle webhook", err)
			writeJSON(w, http.StatusOK, map[string]string{"result": "ok"})
			return
		}

		if result.Job != nil {
			job := result.Job
			cfg.runner.Go(ctx, "execute_job", func(ctx context.Context) error {
				return uc.ExecuteJob(ctx, job)
			})
		}

		writeJSON(w, http.StatusOK, map[string]string{"result": "ok"})
	}
}

// parseGitHubEvent normalizes a GitHub webhook. Events other than push are
// returned with their kind only, so that they are dropped as not actionable.
func parseGitHubEvent(eventType string, payload []byte) (*model.WebhookEvent, error) {
	raw, err := github.ParseWebHook(eventType, payload)
	if err != nil {
		return nil, goerr.Wrap(err, "parsing webhook", goerr.V("type", eventType))
	}

	ev, ok := raw.(*github.PushEvent)
	if !ok {
		return &model.WebhookEvent{Kind: eventType}, nil
	}

	repo := model.GitHubRepo{
		Owner:    ev.GetRepo().GetOwner().GetLogin(),
		RepoName: ev.GetRepo().GetName(),
	}
	if parsed, err := model.ParseGitHubRepo(ev.GetRepo().GetFullName()); err == nil {
		repo = parsed
	}

	return &model.WebhookEvent{
		Kind:           model.EventKindPush,
		Compare:        ev.GetCompare(),
		Ref:            ev.GetRef(),
		Repo:           repo,
		HeadCommitID:   types.CommitSHA(ev.GetHeadCommit().GetID()),
		TreeID:         types.TreeSHA(ev.GetHeadCommit().GetTreeID()),
		InstallationID: types.GitHubAppInstallID(ev.GetInstallation().GetID()),
		Payload:        payload,
	}, nil
}
