package usecase

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/secmon-lab/scanhook/pkg/domain/interfaces"
	"github.com/secmon-lab/scanhook/pkg/domain/model"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
	"github.com/secmon-lab/scanhook/pkg/utils/logging"
)

// GitHub rejects longer status descriptions.
const maxDescriptionLength = 140

var stageDescriptions = map[model.Stage]map[model.StageState]string{
	model.StageSetup: {
		model.StatePending: "Setting up static analysis...",
		model.StateError:   "ERROR Setting up static analysis",
		model.StateFailure: "FAILED to set up static analysis",
		model.StateSuccess: "COMPLETED Setting up static analysis",
	},
	model.StageUploading: {
		model.StatePending: "Synchronizing repository with the test provider...",
		model.StateError:   "ERROR Synchronizing repository with the test provider",
		model.StateFailure: "FAILED Synchronizing repository with the test provider",
		model.StateSuccess: "COMPLETED Synchronization of repository",
	},
	model.StageTesting: {
		model.StatePending:             "Performing static analysis testing...",
		model.StatePendingWithProgress: "Static analysis testing (%percent%% complete)...",
		model.StateError:               "ERROR Performing static analysis testing",
		model.StateFailure:             "FAILURE Performing static analysis testing",
		model.StateSuccess:             "COMPLETED Static analysis testing",
	},
	model.StageResults: {
		model.StatePending: "Fetching test results...",
		model.StateError:   "ERROR Getting test results",
		model.StateFailure: "Found possible issues (%hits%)",
		model.StateSuccess: `PASSED all tests with "%severity%" severity threshold`,
	},
}

// StatusReport is one status update as it was sent.
type StatusReport struct {
	Stage       model.Stage
	State       model.StageState
	Description string
	TargetURL   string
}

// StatusReporter posts stage updates of one run as commit statuses. It
// never fails: transport errors are logged and dropped so that reporting
// cannot abort a run.
type StatusReporter struct {
	github     interfaces.GitHub
	auth       interfaces.GitHubAuth
	repo       model.GitHubRepo
	commit     types.CommitSHA
	context    string
	resultsURL string

	mu      sync.Mutex
	testID  string
	history []StatusReport
}

func (x *UseCase) newStatusReporter(auth interfaces.GitHubAuth, repo model.GitHubRepo, commit types.CommitSHA) *StatusReporter {
	return &StatusReporter{
		github:     x.clients.GitHub(),
		auth:       auth,
		repo:       repo,
		commit:     commit,
		context:    x.statusContext,
		resultsURL: x.resultsURL,
	}
}

func describe(stage model.Stage, state model.StageState, extra *model.StageExtra) string {
	desc := stageDescriptions[stage][state]
	if desc == "" {
		desc = string(stage) + ": " + string(state)
	}

	if extra != nil {
		desc = strings.NewReplacer(
			"%percent%", strconv.Itoa(extra.PercentComplete),
			"%hits%", extra.Hits,
			"%severity%", string(extra.Severity),
		).Replace(desc)
	}
	desc = strings.ReplaceAll(desc, "%%", "%")

	if len(desc) > maxDescriptionLength {
		desc = desc[:maxDescriptionLength-3] + "..."
	}
	return desc
}

// Report posts one status update. extra may be nil.
func (x *StatusReporter) Report(ctx context.Context, stage model.Stage, state model.StageState, extra *model.StageExtra) {
	x.mu.Lock()
	if extra != nil && extra.TestID != "" {
		x.testID = extra.TestID
	}
	report := StatusReport{
		Stage:       stage,
		State:       state,
		Description: describe(stage, state, extra),
	}
	if x.testID != "" && x.resultsURL != "" {
		report.TargetURL = x.resultsURL + x.testID
	}
	x.history = append(x.history, report)
	x.mu.Unlock()

	logger := logging.From(ctx).With(
		slog.Any("stage", stage),
		slog.Any("state", state),
	)
	logger.Info("Stage status", slog.String("description", report.Description))

	if x.github == nil || x.commit == "" {
		return
	}

	if err := x.github.CreateStatus(ctx, x.auth, x.repo, x.commit, &model.CommitStatus{
		State:       state.GitHubState(),
		Context:     x.context,
		Description: report.Description,
		TargetURL:   report.TargetURL,
	}); err != nil {
		logger.Warn("Failed to post commit status", slog.Any("error", err))
	}
}

// History returns every update reported so far, in order.
func (x *StatusReporter) History() []StatusReport {
	x.mu.Lock()
	defer x.mu.Unlock()
	return append([]StatusReport(nil), x.history...)
}
