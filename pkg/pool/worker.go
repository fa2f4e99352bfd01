package pool

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mandelsoft/logging"
)

// worker processes the requests of the pool's workqueue
// in a single go routine.
type worker struct {
	logging.UnboundLogger
	pool *Pool
}

func newWorker(p *Pool, number int) *worker {
	return &worker{
		UnboundLogger: logging.DynamicLogger(logging.DefaultContext(), REALM,
			logging.NewAttribute("pool", p.name),
			logging.NewAttribute("worker", strconv.Itoa(number)),
		),
		pool: p,
	}
}

func (w *worker) Run(ctx context.Context) {
	w.Debug("starting worker")
	for w.processNextWorkItem(ctx) {
	}
	w.Debug("exit worker")
}

func (w *worker) processNextWorkItem(ctx context.Context) bool {
	obj, shutdown := w.pool.workqueue.Get()
	if shutdown {
		return false
	}
	defer w.pool.workqueue.Done(obj)

	key, ok := obj.(string)
	if !ok {
		w.LogError(fmt.Errorf("expected string in workqueue but got %#v", obj), "internal error")
		w.pool.workqueue.Forget(obj)
		return true
	}

	w.Debug("request {{key}}", "key", key)
	err := catch(func() error { return w.pool.action(ctx, key) })
	if err == nil {
		w.pool.workqueue.Forget(obj)
		return true
	}
	retries := w.pool.workqueue.NumRequeues(obj)
	if w.pool.maxRetries >= 0 && retries >= w.pool.maxRetries {
		w.Error("request {{key}} failed finally: {{error}}", "key", key, "error", err)
		w.pool.workqueue.Forget(obj)
		return true
	}
	w.Warn("request {{key}} failed, retrying: {{error}}", "key", key, "error", err)
	w.pool.workqueue.AddRateLimited(obj)
	return true
}

func catch(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("action panicked: %v", r)
		}
	}()
	return f()
}
