package model

import (
	"encoding/json"
	"time"

	"github.com/secmon-lab/scanhook/pkg/domain/types"
)

// Finding is one hit reported by the test provider.
type Finding struct {
	ID       string          `json:"id,omitempty" firestore:"ID"`
	Title    string          `json:"title,omitempty" firestore:"Title"`
	File     string          `json:"file,omitempty" firestore:"File"`
	Line     int             `json:"line,omitempty" firestore:"Line"`
	Severity Severity        `json:"severity" firestore:"Severity"`
	Raw      json.RawMessage `json:"raw,omitempty" firestore:"Raw"`
}

type TestRunState string

const (
	TestRunQueued    TestRunState = "queued"
	TestRunRunning   TestRunState = "running"
	TestRunCompleted TestRunState = "completed"
	TestRunFailed    TestRunState = "failed"
)

func (x TestRunState) Terminal() bool {
	return x == TestRunCompleted || x == TestRunFailed
}

// TestStatus is one answer of the provider's status polling endpoint.
type TestStatus struct {
	ID              types.TestID
	State           TestRunState
	PercentComplete int
	Start           time.Time
	End             time.Time
}

// Duration is the run time in whole seconds, zero when unknown.
func (x *TestStatus) Duration() int64 {
	if x == nil || x.Start.IsZero() || x.End.IsZero() || x.End.Before(x.Start) {
		return 0
	}
	return int64(x.End.Sub(x.Start) / time.Second)
}

// TestResults is the finished run's findings payload.
type TestResults struct {
	TestID   types.TestID
	Findings []*Finding
}
