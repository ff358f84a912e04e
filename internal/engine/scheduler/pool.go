package scheduler

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"go.trai.ch/weft/internal/core/ports"
	"go.trai.ch/zerr"
)

// Pool runs ready task nodes on a fixed set of worker goroutines feeding
// from a FIFO policy.
type Pool struct {
	policy *FIFO
	probe  ports.Probe
	log    ports.Logger
	eg     *errgroup.Group
	cancel context.CancelFunc
}

// NewPool creates a worker pool over the given policy.
func NewPool(policy *FIFO, probe ports.Probe, log ports.Logger) *Pool {
	return &Pool{policy: policy, probe: probe, log: log}
}

// Start launches workers workers; zero or negative means GOMAXPROCS. The
// pool drains the queue until Stop is called or ctx is cancelled.
func (p *Pool) Start(ctx context.Context, workers int) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	// The watcher lives outside the group: it closes the queue on
	// cancellation so blocked workers wake up, and exits once Stop cancels.
	go func() {
		<-ctx.Done()
		p.policy.Close()
	}()
	eg := new(errgroup.Group)
	p.eg = eg
	for i := 0; i < workers; i++ {
		eg.Go(func() error {
			p.worker(ctx)
			return nil
		})
	}
}

// Stop closes the ready queue, lets the workers drain it and waits for them
// to exit.
func (p *Pool) Stop() error {
	p.policy.Close()
	var err error
	if p.eg != nil {
		err = p.eg.Wait()
	}
	if p.cancel != nil {
		p.cancel()
	}
	return err
}

func (p *Pool) worker(ctx context.Context) {
	for {
		next, ok := p.policy.Next()
		if !ok {
			return
		}
		p.runOne(ctx, next)
	}
}

// runOne executes one ready node: acquire its pool gates in id order, run
// the work, release the gates and finish the node. The node finishes even
// when the work fails or panics so its successors always drain.
func (p *Pool) runOne(ctx context.Context, s ports.Schedulable) {
	gates := s.Gates()
	for i, g := range gates {
		if err := g.Acquire(ctx); err != nil {
			for j := i - 1; j >= 0; j-- {
				gates[j].Release()
			}
			s.Finish(zerr.Wrap(err, "gate acquisition interrupted"))
			return
		}
	}

	s.MarkRunning()
	work := s.Work()
	p.probe.TaskBegin(s.ID(), work.Description())
	err := runWork(ctx, work)
	p.probe.TaskEnd(s.ID(), err)
	if err != nil {
		p.log.Error(zerr.With(zerr.With(err, "task", s.ID()), "work", work.Description()))
	}

	for i := len(gates) - 1; i >= 0; i-- {
		gates[i].Release()
	}
	s.Finish(err)
}

// runWork shields the worker from panicking user work. An aborting task is
// still finished so the graph keeps draining.
func runWork(ctx context.Context, w ports.WorkDescriptor) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = zerr.With(zerr.New("task work panicked"), "panic", fmt.Sprint(r))
		}
	}()
	return w.Run(ctx)
}
