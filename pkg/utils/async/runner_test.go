package async_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/scanhook/pkg/utils/async"
)

func TestRunner(t *testing.T) {
	t.Run("task survives caller cancellation", func(t *testing.T) {
		runner := async.New()
		ctx, cancel := context.WithCancel(context.Background())

		started := make(chan struct{})
		release := make(chan struct{})
		var ctxErr atomic.Value

		runner.Go(ctx, "job", func(ctx context.Context) error {
			close(started)
			<-release
			ctxErr.Store(fmt.Sprint(ctx.Err()))
			return nil
		})

		<-started
		cancel()
		close(release)
		runner.Wait()

		gt.V(t, ctxErr.Load()).Equal("<nil>")
	})

	t.Run("errors and panics are contained", func(t *testing.T) {
		runner := async.New()
		var calls atomic.Int32

		runner.Go(context.Background(), "fails", func(ctx context.Context) error {
			calls.Add(1)
			return errors.New("boom")
		})
		runner.Go(context.Background(), "panics", func(ctx context.Context) error {
			calls.Add(1)
			panic("boom")
		})
		runner.Wait()

		gt.V(t, calls.Load()).Equal(int32(2))
	})
}

func TestRunnerShutdown(t *testing.T) {
	t.Run("finished tasks shut down cleanly", func(t *testing.T) {
		runner := async.New()
		runner.Go(context.Background(), "quick", func(ctx context.Context) error {
			return nil
		})

		gt.NoError(t, runner.Shutdown(t.Context()))
	})

	t.Run("running tasks are canceled at the deadline", func(t *testing.T) {
		runner := async.New()
		started := make(chan struct{})
		var canceled atomic.Bool

		runner.Go(context.Background(), "blocking", func(ctx context.Context) error {
			close(started)
			<-ctx.Done()
			canceled.Store(true)
			return ctx.Err()
		})
		<-started

		ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
		defer cancel()

		gt.Error(t, runner.Shutdown(ctx))
		gt.True(t, canceled.Load())
	})
}
