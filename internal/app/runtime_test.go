package app_test

import (
	"context"
	"slices"
	"sync"
	"testing"
	"testing/synctest"

	"go.trai.ch/weft/internal/app"
	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
)

const base = uint64(0x1000)

type nopProbe struct{}

func (nopProbe) EdgeCreated(_, _ uint64, _ domain.Edge)        {}
func (nopProbe) StateChanged(_ uint64, _, _ domain.TaskStatus) {}
func (nopProbe) TaskBegin(_ uint64, _ string)                  {}
func (nopProbe) TaskEnd(_ uint64, _ error)                     {}

type nopLogger struct{}

func (nopLogger) Info(_ string, _ ...any) {}
func (nopLogger) Warn(_ string, _ ...any) {}
func (nopLogger) Error(_ error)           {}

// orderedWork appends its name to a shared log when it runs.
type orderedWork struct {
	name  string
	mu    *sync.Mutex
	order *[]string
	err   error
}

func (w *orderedWork) Description() string { return w.name }

func (w *orderedWork) Run(_ context.Context) error {
	w.mu.Lock()
	*w.order = append(*w.order, w.name)
	w.mu.Unlock()
	return w.err
}

func (w *orderedWork) PredecessorFinished(_ ports.WorkDescriptor) {}
func (w *orderedWork) Size() uint64                               { return 0 }

func TestRuntime_DependentTasksRunInOrder(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx := context.Background()
		rt := app.NewRuntime(ports.Settings{Workers: 4}, nopProbe{}, nopLogger{})
		rt.Start(ctx)

		var mu sync.Mutex
		var order []string
		submit := func(name string, accesses ...domain.Access) {
			t.Helper()
			w := &orderedWork{name: name, mu: &mu, order: &order}
			if _, err := rt.Submit(ctx, w, accesses); err != nil {
				t.Fatalf("submit %s: %v", name, err)
			}
		}

		submit("producer", domain.NewAccess(base, 64, domain.AccessOutput))
		submit("left", domain.NewAccess(base, 64, domain.AccessInput))
		submit("right", domain.NewAccess(base+32, 32, domain.AccessInput))
		submit("rewriter", domain.NewAccess(base, 64, domain.AccessOutput))

		if err := rt.Taskwait(ctx); err != nil {
			t.Fatalf("taskwait: %v", err)
		}

		mu.Lock()
		got := slices.Clone(order)
		mu.Unlock()

		if len(got) != 4 {
			t.Fatalf("ran %d tasks, want 4: %v", len(got), got)
		}
		idx := func(name string) int { return slices.Index(got, name) }
		if idx("producer") != 0 {
			t.Errorf("producer must run first: %v", got)
		}
		if idx("rewriter") != 3 {
			t.Errorf("rewriter must run last: %v", got)
		}

		if err := rt.Shutdown(ctx); err != nil {
			t.Fatalf("shutdown: %v", err)
		}
	})
}

func TestRuntime_TaskErrorSurfacesOnHandle(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx := context.Background()
		rt := app.NewRuntime(ports.Settings{Workers: 1}, nopProbe{}, nopLogger{})
		rt.Start(ctx)

		var mu sync.Mutex
		var order []string
		w := &orderedWork{name: "fails", mu: &mu, order: &order, err: context.DeadlineExceeded}
		h, err := rt.Submit(ctx, w, []domain.Access{domain.NewAccess(base, 64, domain.AccessOutput)})
		if err != nil {
			t.Fatalf("submit: %v", err)
		}

		if werr := h.Wait(ctx); werr == nil {
			t.Fatal("expected the task error from Wait")
		}
		if !h.Aborted() {
			t.Fatal("handle should report abort")
		}

		// A failing task does not poison the graph: a successor still runs.
		w2 := &orderedWork{name: "successor", mu: &mu, order: &order}
		h2, err := rt.Submit(ctx, w2, []domain.Access{domain.NewAccess(base, 64, domain.AccessInput)})
		if err != nil {
			t.Fatalf("submit successor: %v", err)
		}
		if werr := h2.Wait(ctx); werr != nil {
			t.Fatalf("successor failed: %v", werr)
		}

		if err := rt.Shutdown(ctx); err != nil {
			t.Fatalf("shutdown: %v", err)
		}
	})
}

func TestRuntime_BarrierDrainsAllDomains(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx := context.Background()
		rt := app.NewRuntime(ports.Settings{Workers: 2}, nopProbe{}, nopLogger{})
		rt.Start(ctx)

		var mu sync.Mutex
		var order []string

		if _, err := rt.Submit(ctx, &orderedWork{name: "default", mu: &mu, order: &order},
			[]domain.Access{domain.NewAccess(base, 64, domain.AccessOutput)}); err != nil {
			t.Fatalf("submit: %v", err)
		}

		second := rt.OpenDomain()
		o := second.NewTask(&orderedWork{name: "second", mu: &mu, order: &order})
		if err := second.Submit(o, []domain.Access{domain.NewAccess(base, 64, domain.AccessOutput)}); err != nil {
			t.Fatalf("submit to second domain: %v", err)
		}

		if err := rt.Barrier(ctx); err != nil {
			t.Fatalf("barrier: %v", err)
		}

		mu.Lock()
		n := len(order)
		mu.Unlock()
		if n != 2 {
			t.Fatalf("barrier returned with %d of 2 tasks run", n)
		}

		if err := rt.Shutdown(ctx); err != nil {
			t.Fatalf("shutdown: %v", err)
		}
	})
}

func TestRuntime_SubmitAfterShutdownFails(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx := context.Background()
		rt := app.NewRuntime(ports.Settings{Workers: 1}, nopProbe{}, nopLogger{})
		rt.Start(ctx)
		if err := rt.Shutdown(ctx); err != nil {
			t.Fatalf("shutdown: %v", err)
		}

		var mu sync.Mutex
		var order []string
		_, err := rt.Submit(ctx, &orderedWork{name: "late", mu: &mu, order: &order},
			[]domain.Access{domain.NewAccess(base, 64, domain.AccessOutput)})
		if err == nil {
			t.Fatal("submit after shutdown must fail")
		}
	})
}
