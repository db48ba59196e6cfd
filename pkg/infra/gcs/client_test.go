package gcs_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
	"github.com/secmon-lab/scanhook/pkg/infra/gcs"
	"github.com/secmon-lab/scanhook/pkg/utils/testutil"
)

func TestNewWithoutBucket(t *testing.T) {
	_, err := gcs.New(context.Background(), "", "prefix/")
	gt.Error(t, err)
}

func TestPut(t *testing.T) {
	bucket := testutil.GetEnvOrSkip(t, "TEST_GCS_BUCKET")

	ctx := context.Background()
	client, err := gcs.New(ctx, types.GCSBucket(bucket), "scanhook-test/")
	gt.NoError(t, err)
	defer client.Close()

	path := time.Now().Format("20060102_150405") + ".json"
	gt.NoError(t, client.Put(ctx, path, "application/json", strings.NewReader(`{"ok":true}`)))
}
