package model

import (
	"sort"
	"time"
)

// ScanSummary is the flat row exported to the analytics table.
type ScanSummary struct {
	ScanID      string          `json:"scan_id" bigquery:"scan_id"`
	Compare     string          `json:"compare" bigquery:"compare"`
	Channel     string          `json:"channel" bigquery:"channel"`
	Repository  string          `json:"repository" bigquery:"repository"`
	Ref         string          `json:"ref" bigquery:"ref"`
	CommitID    string          `json:"commit_id" bigquery:"commit_id"`
	TreeID      string          `json:"tree_id" bigquery:"tree_id"`
	TestID      string          `json:"test_id" bigquery:"test_id"`
	Verdict     string          `json:"verdict" bigquery:"verdict"`
	Error       string          `json:"error" bigquery:"error"`
	Threshold   string          `json:"threshold" bigquery:"threshold"`
	Findings    int             `json:"findings" bigquery:"findings"`
	Matrix      []SeverityCount `json:"matrix" bigquery:"matrix"`
	Subscribers int             `json:"subscribers" bigquery:"subscribers"`
	DurationSec int64           `json:"duration_sec" bigquery:"duration_sec"`
	Timestamp   time.Time       `json:"timestamp" bigquery:"timestamp"`
}

type SeverityCount struct {
	Severity string `json:"severity" bigquery:"severity"`
	Count    int    `json:"count" bigquery:"count"`
}

// Counts flattens the matrix into a list ordered by severity label.
func (x SeverityMatrix) Counts() []SeverityCount {
	counts := make([]SeverityCount, 0, len(x))
	for sev, n := range x {
		counts = append(counts, SeverityCount{Severity: string(sev), Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		return counts[i].Severity < counts[j].Severity
	})
	return counts
}
