package model

import (
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// SeverityPolicy is an ordinal table of severity labels, lowest first, and
// the threshold from which findings fail a run (inclusive).
type SeverityPolicy struct {
	levels    []Severity
	rank      map[Severity]int
	threshold Severity
}

// DefaultSeverityPolicy is low < medium < high with a medium threshold.
func DefaultSeverityPolicy() *SeverityPolicy {
	policy, _ := NewSeverityPolicy([]Severity{SeverityLow, SeverityMedium, SeverityHigh}, SeverityMedium)
	return policy
}

func NewSeverityPolicy(levels []Severity, threshold Severity) (*SeverityPolicy, error) {
	if len(levels) == 0 {
		return nil, goerr.Wrap(types.ErrInvalidOption, "severity levels are empty")
	}

	rank := make(map[Severity]int, len(levels))
	normalized := make([]Severity, 0, len(levels))
	for i, lv := range levels {
		lv = Severity(strings.ToLower(strings.TrimSpace(string(lv))))
		if lv == "" {
			return nil, goerr.Wrap(types.ErrInvalidOption, "empty severity level", goerr.V("index", i))
		}
		if _, dup := rank[lv]; dup {
			return nil, goerr.Wrap(types.ErrInvalidOption, "duplicated severity level", goerr.V("level", lv))
		}
		rank[lv] = i
		normalized = append(normalized, lv)
	}

	threshold = Severity(strings.ToLower(strings.TrimSpace(string(threshold))))
	if _, ok := rank[threshold]; !ok {
		return nil, goerr.Wrap(types.ErrInvalidOption, "severity threshold is not a known level",
			goerr.V("threshold", threshold),
			goerr.V("levels", normalized),
		)
	}

	return &SeverityPolicy{
		levels:    normalized,
		rank:      rank,
		threshold: threshold,
	}, nil
}

func (x *SeverityPolicy) Threshold() Severity { return x.threshold }

func (x *SeverityPolicy) Levels() []Severity {
	return append([]Severity(nil), x.levels...)
}

// Known reports whether sev is part of the ordinal table.
func (x *SeverityPolicy) Known(sev Severity) bool {
	_, ok := x.rank[sev]
	return ok
}

// Fails reports whether a finding of the given severity fails the run.
// Labels outside the table always fail.
func (x *SeverityPolicy) Fails(sev Severity) bool {
	r, ok := x.rank[sev]
	if !ok {
		return true
	}
	return r >= x.rank[x.threshold]
}

// Passes is the negation of Fails.
func (x *SeverityPolicy) Passes(sev Severity) bool {
	return !x.Fails(sev)
}

// SeverityMatrix counts findings per severity label.
type SeverityMatrix map[Severity]int

// Evaluate builds the matrix and the verdict of a finished run.
func (x *SeverityPolicy) Evaluate(findings []*Finding) (SeverityMatrix, Verdict) {
	matrix := make(SeverityMatrix, len(x.levels))
	for _, lv := range x.levels {
		matrix[lv] = 0
	}

	verdict := VerdictSuccess
	for _, f := range findings {
		if f == nil {
			continue
		}
		sev := Severity(strings.ToLower(string(f.Severity)))
		matrix[sev]++
		if x.Fails(sev) {
			verdict = VerdictFailure
		}
	}

	return matrix, verdict
}

// Total is the number of counted findings.
func (x SeverityMatrix) Total() int {
	var n int
	for _, c := range x {
		n += c
	}
	return n
}

// Summary renders counts from the highest level down, e.g. "1 high, 0 medium, 0 low".
func (x SeverityMatrix) Summary(policy *SeverityPolicy) string {
	levels := policy.Levels()
	parts := make([]string, 0, len(x))
	for i := len(levels) - 1; i >= 0; i-- {
		parts = append(parts, fmt.Sprintf("%d %s", x[levels[i]], levels[i]))
	}
	for sev, n := range x {
		if !policy.Known(sev) {
			parts = append(parts, fmt.Sprintf("%d %s", n, sev))
		}
	}
	return strings.Join(parts, ", ")
}
