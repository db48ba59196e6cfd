package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/scanhook/pkg/domain/model"
)

func findings(sevs ...model.Severity) []*model.Finding {
	var out []*model.Finding
	for _, s := range sevs {
		out = append(out, &model.Finding{Severity: s})
	}
	return out
}

func TestSeverityPolicyOrdering(t *testing.T) {
	levels := []model.Severity{model.SeverityLow, model.SeverityMedium, model.SeverityHigh}

	t.Run("medium threshold fails medium and high", func(t *testing.T) {
		p := gt.R1(model.NewSeverityPolicy(levels, model.SeverityMedium)).NoError(t)
		gt.V(t, p.Fails(model.SeverityLow)).Equal(false)
		gt.True(t, p.Fails(model.SeverityMedium))
		gt.True(t, p.Fails(model.SeverityHigh))
	})

	t.Run("high threshold fails only high", func(t *testing.T) {
		p := gt.R1(model.NewSeverityPolicy(levels, model.SeverityHigh)).NoError(t)
		gt.True(t, p.Passes(model.SeverityLow))
		gt.True(t, p.Passes(model.SeverityMedium))
		gt.True(t, p.Fails(model.SeverityHigh))
	})

	t.Run("unknown label fails", func(t *testing.T) {
		p := model.DefaultSeverityPolicy()
		gt.True(t, p.Fails("critical"))
	})

	t.Run("custom ordinal table", func(t *testing.T) {
		p := gt.R1(model.NewSeverityPolicy([]model.Severity{"info", "Low", "critical"}, "critical")).NoError(t)
		gt.True(t, p.Passes("low"))
		gt.True(t, p.Fails("critical"))
		gt.V(t, p.Levels()).Equal([]model.Severity{"info", "low", "critical"})
	})
}

func TestNewSeverityPolicyErrors(t *testing.T) {
	_, err := model.NewSeverityPolicy(nil, "low")
	gt.Error(t, err)

	_, err = model.NewSeverityPolicy([]model.Severity{"low", "low"}, "low")
	gt.Error(t, err)

	_, err = model.NewSeverityPolicy([]model.Severity{"low", "high"}, "medium")
	gt.Error(t, err)
}

func TestSeverityPolicyEvaluate(t *testing.T) {
	p := model.DefaultSeverityPolicy()

	t.Run("one high finding fails with medium threshold", func(t *testing.T) {
		matrix, verdict := p.Evaluate(findings(model.SeverityHigh))
		gt.V(t, verdict).Equal(model.VerdictFailure)
		gt.V(t, matrix).Equal(model.SeverityMatrix{"low": 0, "medium": 0, "high": 1})
		gt.V(t, matrix.Summary(p)).Equal("1 high, 0 medium, 0 low")
	})

	t.Run("only low findings pass", func(t *testing.T) {
		matrix, verdict := p.Evaluate(findings(model.SeverityLow, model.SeverityLow))
		gt.V(t, verdict).Equal(model.VerdictSuccess)
		gt.V(t, matrix[model.SeverityLow]).Equal(2)
		gt.V(t, matrix.Total()).Equal(2)
	})

	t.Run("no findings pass", func(t *testing.T) {
		matrix, verdict := p.Evaluate(nil)
		gt.V(t, verdict).Equal(model.VerdictSuccess)
		gt.V(t, matrix.Total()).Equal(0)
	})

	t.Run("labels are case-insensitive", func(t *testing.T) {
		matrix, verdict := p.Evaluate(findings("HIGH"))
		gt.V(t, verdict).Equal(model.VerdictFailure)
		gt.V(t, matrix[model.SeverityHigh]).Equal(1)
	})
}
