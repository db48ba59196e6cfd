package usecase_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/scanhook/pkg/domain/model"
	"github.com/secmon-lab/scanhook/pkg/usecase"
)

func TestDescribe(t *testing.T) {
	testCases := map[string]struct {
		stage model.Stage
		state model.StageState
		extra *model.StageExtra
		want  string
	}{
		"pending": {
			stage: model.StageSetup,
			state: model.StatePending,
			want:  "Setting up static analysis...",
		},
		"progress": {
			stage: model.StageTesting,
			state: model.StatePendingWithProgress,
			extra: &model.StageExtra{PercentComplete: 42},
			want:  "Static analysis testing (42% complete)...",
		},
		"hits": {
			stage: model.StageResults,
			state: model.StateFailure,
			extra: &model.StageExtra{Hits: "2 high, 1 medium, 0 low"},
			want:  "Found possible issues (2 high, 1 medium, 0 low)",
		},
		"threshold": {
			stage: model.StageResults,
			state: model.StateSuccess,
			extra: &model.StageExtra{Severity: model.SeverityHigh},
			want:  `PASSED all tests with "high" severity threshold`,
		},
		"unknown combination": {
			stage: model.StageUploading,
			state: model.StatePendingWithProgress,
			want:  "uploading: pending-with-progress",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			gt.V(t, usecase.DescribeForTest(tc.stage, tc.state, tc.extra)).Equal(tc.want)
		})
	}

	t.Run("long description is truncated", func(t *testing.T) {
		desc := usecase.DescribeForTest(model.StageResults, model.StateFailure, &model.StageExtra{
			Hits: strings.Repeat("x", 300),
		})
		gt.V(t, len(desc)).Equal(140)
		gt.True(t, strings.HasSuffix(desc, "..."))
	})
}
