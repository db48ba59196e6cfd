package bq_test

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/bqs"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/scanhook/pkg/domain/interfaces"
	"github.com/secmon-lab/scanhook/pkg/domain/model"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
	"github.com/secmon-lab/scanhook/pkg/infra/bq"
	"github.com/secmon-lab/scanhook/pkg/utils/testutil"
	"google.golang.org/api/impersonate"
	"google.golang.org/api/option"
)

func TestClient(t *testing.T) {
	projectID := testutil.GetEnvOrSkip(t, "TEST_BIGQUERY_PROJECT_ID")
	datasetID := testutil.GetEnvOrSkip(t, "TEST_BIGQUERY_DATASET_ID")

	ctx := context.Background()

	tblName := types.BQTableID(time.Now().Format("insert_test_20060102_150405"))
	client, err := bq.New(ctx, types.GoogleProjectID(projectID), types.BQDatasetID(datasetID), tblName)
	gt.NoError(t, err)

	var schema bigquery.Schema

	t.Run("Create table at first", func(t *testing.T) {
		md, err := client.GetMetadata(ctx)
		gt.NoError(t, err)
		gt.True(t, md == nil)

		schema = gt.R1(bqs.Infer(model.ScanSummary{})).NoError(t)
		gt.NoError(t, client.CreateTable(ctx, &bigquery.TableMetadata{
			Name:   tblName.String(),
			Schema: schema,
		}))
	})

	t.Run("Insert summary", func(t *testing.T) {
		row := &model.ScanSummary{
			ScanID:     string(types.NewScanID("compare-1")),
			Compare:    "compare-1",
			Channel:    "github",
			Repository: "acme/widgets",
			Ref:        "main",
			Verdict:    "failure",
			Threshold:  "medium",
			Findings:   1,
			Matrix: model.SeverityMatrix{
				model.SeverityHigh: 1, model.SeverityMedium: 0, model.SeverityLow: 0,
			}.Counts(),
			Timestamp: time.Now().UTC(),
		}
		gt.NoError(t, client.Insert(ctx, schema, row, interfaces.WithInsertID(row.ScanID)))
	})
}

func TestImpersonation(t *testing.T) {
	projectID := testutil.GetEnvOrSkip(t, "TEST_BIGQUERY_PROJECT_ID")
	datasetID := testutil.GetEnvOrSkip(t, "TEST_BIGQUERY_DATASET_ID")
	serviceAccount := testutil.GetEnvOrSkip(t, "TEST_BIGQUERY_IMPERSONATE_SERVICE_ACCOUNT")

	ctx := context.Background()

	ts, err := impersonate.CredentialsTokenSource(ctx, impersonate.CredentialsConfig{
		TargetPrincipal: serviceAccount,
		Scopes: []string{
			"https://www.googleapis.com/auth/bigquery",
			"https://www.googleapis.com/auth/cloud-platform",
		},
	})
	gt.NoError(t, err)

	tblName := types.BQTableID(time.Now().Format("impersonation_test_20060102_150405"))
	client, err := bq.New(ctx, types.GoogleProjectID(projectID), types.BQDatasetID(datasetID), tblName, option.WithTokenSource(ts))
	gt.NoError(t, err)

	msg := struct {
		Msg string
	}{
		Msg: "Hello, BigQuery: " + time.Now().String(),
	}

	schema := gt.R1(bqs.Infer(msg)).NoError(t)

	gt.NoError(t, client.CreateTable(ctx, &bigquery.TableMetadata{
		Name:   tblName.String(),
		Schema: schema,
	}))

	gt.NoError(t, client.Insert(ctx, schema, &msg))
}
