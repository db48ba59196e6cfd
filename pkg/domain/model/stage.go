package model

import (
	"errors"
	"fmt"
)

type Stage string

const (
	StageSetup     Stage = "setup"
	StageUploading Stage = "uploading"
	StageTesting   Stage = "testing"
	StageResults   Stage = "results"
)

// Stages lists the reporting stages in execution order.
var Stages = []Stage{StageSetup, StageUploading, StageTesting, StageResults}

type StageState string

const (
	StatePending             StageState = "pending"
	StatePendingWithProgress StageState = "pending-with-progress"
	StateSuccess             StageState = "success"
	StateFailure             StageState = "failure"
	StateError               StageState = "error"
)

// Terminal reports whether no further update of the stage follows.
func (x StageState) Terminal() bool {
	return x == StateSuccess || x == StateFailure || x == StateError
}

// GitHubState maps a stage state onto the commit status API vocabulary.
func (x StageState) GitHubState() string {
	if x == StatePendingWithProgress {
		return string(StatePending)
	}
	return string(x)
}

// StageExtra carries values substituted into status descriptions.
type StageExtra struct {
	PercentComplete int
	Hits            string
	Severity        Severity
	TestID          string
}

// RunError is an expected operational failure of one stage. Transport is
// set when the failure came from an unexpected error of a collaborator.
type RunError struct {
	Stage     Stage
	Reason    string
	Transport bool
	Err       error
}

const RunErrorReasonTimeout = "timeout"

func NewRunError(stage Stage, reason string) *RunError {
	return &RunError{Stage: stage, Reason: reason}
}

func NewTransportError(stage Stage, reason string, err error) *RunError {
	return &RunError{Stage: stage, Reason: reason, Transport: true, Err: err}
}

func (x *RunError) Error() string {
	if x.Err != nil {
		return fmt.Sprintf("%s: %s: %v", x.Stage, x.Reason, x.Err)
	}
	return fmt.Sprintf("%s: %s", x.Stage, x.Reason)
}

func (x *RunError) Unwrap() error {
	return x.Err
}

// ReportState is the terminal stage state the failure is reported with.
// Each stage gets exactly one terminal status, so a transport failure is
// reported as error in place of failure rather than as a second status
// after it. Both states fail the commit check.
func (x *RunError) ReportState() StageState {
	if x.Transport {
		return StateError
	}
	return StateFailure
}

// AsRunError extracts a RunError from an error chain, including goerr wraps.
func AsRunError(err error) (*RunError, bool) {
	var runErr *RunError
	if errors.As(err, &runErr) {
		return runErr, true
	}
	return nil, false
}
