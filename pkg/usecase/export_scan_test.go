package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/scanhook/pkg/domain/interfaces"
	"github.com/secmon-lab/scanhook/pkg/domain/mock"
	"github.com/secmon-lab/scanhook/pkg/domain/model"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
	"github.com/secmon-lab/scanhook/pkg/infra"
	"github.com/secmon-lab/scanhook/pkg/repository/memory"
	"github.com/secmon-lab/scanhook/pkg/usecase"
)

func TestExportScan(t *testing.T) {
	f := newFixture(t)

	var (
		insertedID   string
		insertedData *model.ScanSummary
		archivePath  string
		archive      []byte
	)
	mockBQ := &mock.BigQueryMock{
		GetMetadataFunc: func(ctx context.Context) (*bigquery.TableMetadata, error) {
			return nil, nil
		},
		CreateTableFunc: func(ctx context.Context, md *bigquery.TableMetadata) error {
			return nil
		},
		InsertFunc: func(ctx context.Context, schema bigquery.Schema, data any, opts ...interfaces.BigQueryInsertOption) error {
			var cfg interfaces.BigQueryInsertConfig
			for _, opt := range opts {
				opt(&cfg)
			}
			insertedID = cfg.InsertID
			insertedData = data.(*model.ScanSummary)
			return nil
		},
	}
	mockStorage := &mock.ObjectStorageMock{
		PutFunc: func(ctx context.Context, path string, contentType string, r io.Reader) error {
			archivePath = path
			raw, err := io.ReadAll(r)
			archive = raw
			return err
		},
	}

	repo := memory.New()
	f.repo = repo
	f.uc = usecase.New(infra.New(
		infra.WithTestProvider(f.provider),
		infra.WithGitHub(f.github),
		infra.WithScanLedger(repo),
		infra.WithSubscriptionRegistry(repo),
		infra.WithBigQuery(mockBQ),
		infra.WithObjectStorage(mockStorage),
	), usecase.WithEnvironment("prod"))
	f.subscribe(t, "alice@example.com", "sid-alice", "prod")

	result, err := f.uc.HandleWebhook(t.Context(), types.ChannelGitHub, newPushEvent("cmp-export"))
	gt.NoError(t, err)
	gt.NoError(t, f.uc.ExecuteJob(t.Context(), result.Job))

	gt.V(t, len(mockBQ.CreateTableCalls())).Equal(1)
	gt.V(t, insertedID).Equal(result.Job.ScanID.String())
	gt.V(t, insertedData.Verdict).Equal("failure")
	gt.V(t, insertedData.Repository).Equal("acme/widgets")
	gt.V(t, insertedData.Findings).Equal(1)
	gt.V(t, insertedData.Subscribers).Equal(1)

	gt.V(t, archivePath).Equal("scans/acme/widgets/" + result.Job.ScanID.String() + ".json")
	var decoded struct {
		Summary model.ScanSummary `json:"summary"`
		Results []*model.Finding  `json:"results"`
	}
	gt.NoError(t, json.Unmarshal(archive, &decoded))
	gt.V(t, decoded.Summary.TestID).Equal("t1")
	gt.V(t, len(decoded.Results)).Equal(1)
}

func TestExportFailureDoesNotFailJob(t *testing.T) {
	f := newFixture(t)
	mockStorage := &mock.ObjectStorageMock{
		PutFunc: func(ctx context.Context, path string, contentType string, r io.Reader) error {
			return errors.New("bucket not found")
		},
	}
	repo := memory.New()
	f.repo = repo
	f.uc = usecase.New(infra.New(
		infra.WithTestProvider(f.provider),
		infra.WithGitHub(f.github),
		infra.WithScanLedger(repo),
		infra.WithSubscriptionRegistry(repo),
		infra.WithObjectStorage(mockStorage),
	), usecase.WithEnvironment("prod"))
	f.subscribe(t, "alice@example.com", "sid-alice", "prod")

	result, err := f.uc.HandleWebhook(t.Context(), types.ChannelGitHub, newPushEvent("cmp-export-fail"))
	gt.NoError(t, err)
	gt.NoError(t, f.uc.ExecuteJob(t.Context(), result.Job))
	gt.V(t, len(mockStorage.PutCalls())).Equal(1)
}

func TestCreateOrUpdateBigQueryTable(t *testing.T) {
	summary := &model.ScanSummary{ScanID: "s1"}

	t.Run("table is created and then kept", func(t *testing.T) {
		var created bigquery.Schema
		mockBQ := &mock.BigQueryMock{}
		mockBQ.GetMetadataFunc = func(ctx context.Context) (*bigquery.TableMetadata, error) {
			if created == nil {
				return nil, nil
			}
			return &bigquery.TableMetadata{Schema: created}, nil
		}
		mockBQ.CreateTableFunc = func(ctx context.Context, md *bigquery.TableMetadata) error {
			created = md.Schema
			return nil
		}

		schema, err := usecase.CreateOrUpdateBigQueryTableForTest(t.Context(), mockBQ, summary)
		gt.NoError(t, err)
		gt.True(t, len(schema) > 0)

		_, err = usecase.CreateOrUpdateBigQueryTableForTest(t.Context(), mockBQ, summary)
		gt.NoError(t, err)
		gt.V(t, len(mockBQ.CreateTableCalls())).Equal(1)
		gt.V(t, len(mockBQ.UpdateTableCalls())).Equal(0)
	})

	t.Run("table schema is merged", func(t *testing.T) {
		mockBQ := &mock.BigQueryMock{}
		mockBQ.GetMetadataFunc = func(ctx context.Context) (*bigquery.TableMetadata, error) {
			return &bigquery.TableMetadata{
				Schema: bigquery.Schema{{Name: "scan_id", Type: bigquery.StringFieldType}},
				ETag:   "etag1",
			}, nil
		}
		mockBQ.UpdateTableFunc = func(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error {
			gt.V(t, eTag).Equal("etag1")
			return nil
		}

		schema, err := usecase.CreateOrUpdateBigQueryTableForTest(t.Context(), mockBQ, summary)
		gt.NoError(t, err)
		gt.True(t, len(schema) > 1)
		gt.V(t, len(mockBQ.UpdateTableCalls())).Equal(1)
	})

	t.Run("metadata error", func(t *testing.T) {
		mockBQ := &mock.BigQueryMock{}
		mockBQ.GetMetadataFunc = func(ctx context.Context) (*bigquery.TableMetadata, error) {
			return nil, errors.New("permission denied")
		}

		_, err := usecase.CreateOrUpdateBigQueryTableForTest(t.Context(), mockBQ, summary)
		gt.Error(t, err)
	})
}

func TestArchivePath(t *testing.T) {
	gt.V(t, usecase.ArchivePathForTest(&model.ScanSummary{
		ScanID:     "s1",
		Repository: "acme/widgets",
	})).Equal("scans/acme/widgets/s1.json")
}
