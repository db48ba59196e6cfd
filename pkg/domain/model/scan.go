package model

import (
	"encoding/json"
	"time"

	"github.com/secmon-lab/scanhook/pkg/domain/types"
)

type Verdict string

const (
	VerdictSuccess Verdict = "success"
	VerdictFailure Verdict = "failure"
	VerdictError   Verdict = "error"
)

// ScanRecord is the ledger entry of one comparison identifier.
type ScanRecord struct {
	ID         types.ScanID    `json:"id" firestore:"ID"`
	Compare    string          `json:"compare" firestore:"Compare"`
	Channel    types.Channel   `json:"channel" firestore:"Channel"`
	Ref        string          `json:"ref" firestore:"Ref"`
	Repository string          `json:"repository" firestore:"Repository"`
	CommitID   types.CommitSHA `json:"commit_id" firestore:"CommitID"`
	Payload    json.RawMessage `json:"payload,omitempty" firestore:"Payload"`
	TreeID     types.TreeSHA   `json:"tree_id" firestore:"TreeID"`
	TestID     types.TestID    `json:"test_id,omitempty" firestore:"TestID"`
	Results    []*Finding      `json:"results" firestore:"Results"`
	Matrix     SeverityMatrix  `json:"matrix,omitempty" firestore:"Matrix"`
	Verdict    Verdict         `json:"verdict,omitempty" firestore:"Verdict"`
	Error      string          `json:"error,omitempty" firestore:"Error"`
	CreatedAt  time.Time       `json:"created_at" firestore:"CreatedAt"`
	UpdatedAt  time.Time       `json:"updated_at" firestore:"UpdatedAt"`
}

// NewScanRecord builds the first-sighting record of an event.
func NewScanRecord(channel types.Channel, ev *WebhookEvent, now time.Time) *ScanRecord {
	return &ScanRecord{
		ID:         types.NewScanID(ev.Compare),
		Compare:    ev.Compare,
		Channel:    channel,
		Ref:        NormalizeRef(ev.Ref),
		Repository: ev.Repo.FullName(),
		CommitID:   ev.HeadCommitID,
		Payload:    json.RawMessage(ev.Payload),
		TreeID:     ev.TreeID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Completed reports whether results were attached to the record.
func (x *ScanRecord) Completed() bool {
	return x.Verdict != ""
}

// Reusable reports whether the record holds a verdict computed on results.
// Errored runs produced no results and can not stand in for a fresh run.
func (x *ScanRecord) Reusable() bool {
	return x.Verdict == VerdictSuccess || x.Verdict == VerdictFailure
}

// RunOutcome is what the asynchronous tail attaches to a ScanRecord.
type RunOutcome struct {
	TreeID    types.TreeSHA
	TestID    types.TestID
	Results   []*Finding
	Matrix    SeverityMatrix
	Verdict   Verdict
	Error     string
	UpdatedAt time.Time
}

// Apply copies the outcome into the record.
func (x *RunOutcome) Apply(rec *ScanRecord) {
	if x.TreeID != "" {
		rec.TreeID = x.TreeID
	}
	rec.TestID = x.TestID
	rec.Results = x.Results
	rec.Matrix = x.Matrix
	rec.Verdict = x.Verdict
	rec.Error = x.Error
	rec.UpdatedAt = x.UpdatedAt
}
