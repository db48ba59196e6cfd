package errutil_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/scanhook/pkg/utils/errutil"
	"github.com/secmon-lab/scanhook/pkg/utils/logging"
)

func TestHandleError(t *testing.T) {
	newCtx := func(t *testing.T) (context.Context, *bytes.Buffer) {
		var buf bytes.Buffer
		logger := gt.R1(logging.New(&buf, "json", "info")).NoError(t)
		_, ctx := logging.CtxRequestID(logging.With(t.Context(), logger))
		return ctx, &buf
	}

	t.Run("error is logged", func(t *testing.T) {
		ctx, buf := newCtx(t)
		errutil.HandleError(ctx, "export failed", errors.New("boom"))
		gt.True(t, bytes.Contains(buf.Bytes(), []byte("export failed")))
		gt.True(t, bytes.Contains(buf.Bytes(), []byte("boom")))
	})

	t.Run("nil error is ignored", func(t *testing.T) {
		ctx, buf := newCtx(t)
		errutil.HandleError(ctx, "nothing", nil)
		gt.V(t, buf.Len()).Equal(0)
	})
}
