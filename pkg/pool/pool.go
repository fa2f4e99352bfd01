// Package pool provides a worker pool processing string keys
// queued for background actions, for example the renumbering of
// sibling lists.
package pool

import (
	"context"
	"sync"

	"k8s.io/client-go/util/workqueue"

	"github.com/mandelsoft/datacontainer/pkg/server"
)

// DefaultMaxRetries is the number of rate limited retries for
// a failing key.
const DefaultMaxRetries = 5

// Action processes a queued key.
type Action func(ctx context.Context, key string) error

type Pool struct {
	name       string
	size       int
	maxRetries int
	action     Action
	workqueue  workqueue.RateLimitingInterface

	lock    sync.Mutex
	syncher server.Syncher
}

func NewPool(name string, size int, action Action) *Pool {
	if size <= 0 {
		size = 1
	}
	log.Info("created pool {{name}} with {{size}} workers", "name", name, "size", size)
	return &Pool{
		name:       name,
		size:       size,
		maxRetries: DefaultMaxRetries,
		action:     action,
		workqueue: workqueue.NewRateLimitingQueueWithConfig(workqueue.DefaultControllerRateLimiter(), workqueue.RateLimitingQueueConfig{
			Name: name,
		}),
	}
}

func (p *Pool) GetName() string {
	return p.name
}

// SetMaxRetries sets the number of retries for a failing key.
// A negative number retries forever.
func (p *Pool) SetMaxRetries(n int) *Pool {
	p.maxRetries = n
	return p
}

func (p *Pool) QueueLength() int {
	return p.workqueue.Len()
}

// Enqueue adds a key. Keys already waiting in the queue are
// processed only once.
func (p *Pool) Enqueue(key string) {
	p.workqueue.Add(key)
}

// Start runs the workers until the context is done. The returned
// Syncher waits for all workers to finish.
func (p *Pool) Start(ctx context.Context) server.Syncher {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.syncher != nil {
		return p.syncher
	}
	wg := &sync.WaitGroup{}
	p.syncher = server.Sync(wg)

	log.Info("starting worker pool {{name}}", "name", p.name)
	for i := 0; i < p.size; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			newWorker(p, n).Run(ctx)
		}(i)
	}
	go func() {
		<-ctx.Done()
		log.Info("shutdown worker pool {{name}}", "name", p.name)
		p.workqueue.ShutDown()
	}()
	return p.syncher
}
