package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
)

const EventKindPush = "push"

// WebhookEvent is the normalized form of an inbound source-control event.
type WebhookEvent struct {
	Kind           string
	Compare        string
	Ref            string
	Repo           GitHubRepo
	HeadCommitID   types.CommitSHA
	TreeID         types.TreeSHA
	InstallationID types.GitHubAppInstallID
	Payload        []byte
}

// Actionable reports whether the event can drive a test run. Push events
// without a comparison or tree identifier are dropped without side effects.
func (x *WebhookEvent) Actionable() bool {
	if x == nil || x.Kind != EventKindPush {
		return false
	}
	return x.Compare != "" && x.TreeID != ""
}

func (x *WebhookEvent) Validate() error {
	if !x.Actionable() {
		return goerr.Wrap(types.ErrValidationFailed, "event is not actionable",
			goerr.V("kind", x.Kind),
			goerr.V("compare", x.Compare),
		)
	}
	if err := x.Repo.Validate(); err != nil {
		return err
	}
	return nil
}

// TestRunJob carries everything the asynchronous tail needs. The driving
// identity's credentials stay in the token store; the job only has a handle.
type TestRunJob struct {
	ScanID         types.ScanID
	Compare        string
	Partition      Partition
	Repo           GitHubRepo
	CommitID       types.CommitSHA
	TreeID         types.TreeSHA
	InstallationID types.GitHubAppInstallID
	DriverEmail    types.Email
	Credential     types.TokenHandle
}

// WebhookResult is the synchronous outcome of an inbound event.
type WebhookResult struct {
	Actionable  bool
	Duplicate   bool
	Subscribers int
	Job         *TestRunJob
}
