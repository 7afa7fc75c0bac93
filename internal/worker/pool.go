package worker

import (
	"sync"

	"github.com/baharkarakas/payment-reconciler/internal/metrics"
)

type task func()

// Pool runs submitted tasks on a fixed number of goroutines.
type Pool struct {
	wg   sync.WaitGroup
	jobs chan task
}

func NewPool(n int) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{jobs: make(chan task, 1024)}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				metrics.WorkerQueueDepth.Set(float64(len(p.jobs)))
				job()
			}
		}()
	}
	return p
}

func (p *Pool) Submit(f task) {
	p.jobs <- f
	metrics.WorkerQueueDepth.Set(float64(len(p.jobs)))
}

func (p *Pool) Stop() { close(p.jobs); p.wg.Wait() }

// Batch groups tasks so a caller can wait for just its own work.
type Batch struct {
	p  *Pool
	wg sync.WaitGroup
}

func (p *Pool) Batch() *Batch { return &Batch{p: p} }

func (b *Batch) Go(f func()) {
	b.wg.Add(1)
	b.p.Submit(func() {
		defer b.wg.Done()
		f()
	})
}

func (b *Batch) Wait() { b.wg.Wait() }
