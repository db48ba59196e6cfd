package async

import (
	"context"
	"fmt"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scanhook/pkg/utils/errutil"
	"github.com/secmon-lab/scanhook/pkg/utils/logging"
)

// Runner executes work that must outlive the request that started it.
// Errors and panics are reported through errutil and never reach the caller.
type Runner struct {
	wg   sync.WaitGroup
	stop context.Context
	halt context.CancelFunc
}

func New() *Runner {
	stop, halt := context.WithCancel(context.Background())
	return &Runner{stop: stop, halt: halt}
}

// Go runs fn on a context detached from ctx. The context is canceled only
// by Shutdown.
func (x *Runner) Go(ctx context.Context, name string, fn func(ctx context.Context) error) {
	bgCtx, cancel := context.WithCancel(logging.WithAttrs(logging.Detach(ctx), "task", name))
	stopTask := context.AfterFunc(x.stop, cancel)

	x.wg.Add(1)
	go func() {
		defer x.wg.Done()
		defer cancel()
		defer stopTask()
		defer func() {
			if r := recover(); r != nil {
				errutil.HandleError(bgCtx, "panic in background task",
					goerr.New(fmt.Sprintf("%v", r), goerr.V("task", name)))
			}
		}()

		if err := fn(bgCtx); err != nil {
			errutil.HandleError(bgCtx, "background task failed", err)
		}
	}()
}

// Wait blocks until every started task has returned.
func (x *Runner) Wait() {
	x.wg.Wait()
}

// Shutdown waits for running tasks until ctx is done. Tasks still running
// at that point are canceled and awaited, and ctx's error is returned.
func (x *Runner) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		x.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		logging.From(ctx).Warn("canceling background tasks")
		x.halt()
		<-done
		return goerr.Wrap(ctx.Err(), "background tasks were canceled at shutdown")
	}
}
