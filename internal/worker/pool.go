package worker

import (
	"context"
	"sort"
	"sync"
)

// Func processes one input
type Func[T, R any] func(ctx context.Context, in T) (R, error)

// Outcome is the result of one submitted input. Index is the submission order.
type Outcome[T, R any] struct {
	Index int
	Input T
	Value R
	Err   error
}

type task[T any] struct {
	index int
	input T
}

// Pool runs a fixed number of workers over submitted inputs
type Pool[T, R any] struct {
	workers    int
	fn         Func[T, R]
	jobQueue   chan task[T]
	results    chan Outcome[T, R]
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeOnce  sync.Once

	mu   sync.Mutex
	next int

	collected []Outcome[T, R]
	collectWG sync.WaitGroup
}

// NewPool creates a pool bound to ctx; cancelling ctx stops the workers
func NewPool[T, R any](ctx context.Context, workers int, fn Func[T, R]) *Pool[T, R] {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Pool[T, R]{
		workers:    workers,
		fn:         fn,
		jobQueue:   make(chan task[T], workers*2),
		results:    make(chan Outcome[T, R], workers*2),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start launches the workers and the result collector
func (p *Pool[T, R]) Start() {
	p.collectWG.Add(1)
	go func() {
		defer p.collectWG.Done()
		for o := range p.results {
			p.collected = append(p.collected, o)
		}
	}()

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool[T, R]) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case t, ok := <-p.jobQueue:
			if !ok {
				return
			}
			value, err := p.fn(p.ctx, t.input)
			select {
			case p.results <- Outcome[T, R]{Index: t.index, Input: t.input, Value: value, Err: err}:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues an input. It returns false if the pool was shut down.
func (p *Pool[T, R]) Submit(in T) bool {
	if p.ctx.Err() != nil {
		return false
	}

	p.mu.Lock()
	idx := p.next
	p.next++
	p.mu.Unlock()

	select {
	case <-p.ctx.Done():
		return false
	case p.jobQueue <- task[T]{index: idx, input: in}:
		return true
	}
}

// Wait closes the queue, waits for the workers and returns outcomes in submission order.
// Submit must not be called after Wait.
func (p *Pool[T, R]) Wait() []Outcome[T, R] {
	close(p.jobQueue)
	p.wg.Wait()
	p.closeResults()
	p.collectWG.Wait()

	outcomes := p.collected
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].Index < outcomes[j].Index })

	p.cancelFunc()
	return outcomes
}

// Shutdown stops the pool immediately; queued inputs are dropped
func (p *Pool[T, R]) Shutdown() {
	p.cancelFunc()
	p.wg.Wait()
	p.closeResults()
	p.collectWG.Wait()
}

func (p *Pool[T, R]) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}

// Run is a convenience wrapper: process all inputs with the given concurrency
func Run[T, R any](ctx context.Context, workers int, inputs []T, fn Func[T, R]) []Outcome[T, R] {
	if len(inputs) == 0 {
		return []Outcome[T, R]{}
	}

	pool := NewPool(ctx, workers, fn)
	pool.Start()

	for _, in := range inputs {
		if !pool.Submit(in) {
			break
		}
	}

	return pool.Wait()
}
