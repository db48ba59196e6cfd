package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
)

// TestRunInput is what the orchestrator needs to drive one run.
type TestRunInput struct {
	Identity       *VerifiedIdentity
	Repo           GitHubRepo
	CommitID       types.CommitSHA
	TreeID         types.TreeSHA
	InstallationID types.GitHubAppInstallID
}

func (x *TestRunInput) Validate() error {
	if !x.Identity.CanDrive() {
		return goerr.Wrap(types.ErrNoVerifiedIdentity, "identity cannot drive a test run")
	}
	if err := x.Repo.Validate(); err != nil {
		return err
	}
	if x.TreeID == "" {
		return goerr.Wrap(types.ErrValidationFailed, "tree ID is empty")
	}
	return nil
}

// TestRunOutput is a completed run.
type TestRunOutput struct {
	TestID       types.TestID
	ResolvedTree types.TreeSHA
	Results      []*Finding
	Matrix       SeverityMatrix
	Verdict      Verdict
	Duration     int64
}

// UploadFile is one file synchronized to the test provider.
type UploadFile struct {
	Path    string `json:"path"`
	SHA     string `json:"sha"`
	Content []byte `json:"content"`
}

type UploadInput struct {
	Project string        `json:"project"`
	TreeID  types.TreeSHA `json:"tree_id"`
	Files   []*UploadFile `json:"files"`
}

type RunTestsInput struct {
	Project  string        `json:"project"`
	TreeID   types.TreeSHA `json:"tree_id"`
	CommitID string        `json:"commit_id,omitempty"`
}
