package app

import (
	"context"
	"errors"
	"os"

	"go.trai.ch/weft/internal/adapters/metrics"
	"go.trai.ch/weft/internal/adapters/shell"
	"go.trai.ch/weft/internal/adapters/telemetry/progrock"
	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
	"go.trai.ch/zerr"
)

// bufferBase is the first synthetic address assigned to pipeline buffers.
// Zero stays reserved so a nil base always means an invalid access.
const bufferBase uint64 = 0x1000

// App runs a loaded pipeline through a runtime: buffers become registered
// memory objects, tasks become command work ordered purely by buffer
// overlap.
type App struct {
	loader ports.ConfigLoader
	probe  ports.Probe
	log    ports.Logger
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, probe ports.Probe, log ports.Logger) *App {
	return &App{loader: loader, probe: probe, log: log}
}

// RunOptions controls one pipeline run.
type RunOptions struct {
	// DumpPath writes the task-graph JSON after the run; "-" means stdout.
	DumpPath string
}

// Run loads the pipeline from cwd, submits every task in declaration order
// and waits for the graph to drain.
func (a *App) Run(ctx context.Context, cwd string, opts RunOptions) error {
	pipeline, err := a.loader.Load(cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load pipeline")
	}

	rt := NewRuntime(pipeline.Settings, a.probeFor(pipeline.Settings.Probe), a.log)
	rt.Start(ctx)

	regions := layoutBuffers(pipeline.Buffers)
	regionList := make([]domain.Region, 0, len(regions))
	for _, b := range pipeline.Buffers {
		regionList = append(regionList, regions[b.Name])
	}
	if err := rt.RegisterObject(regionList); err != nil {
		return errors.Join(err, rt.Shutdown(ctx))
	}

	var handles []*TaskHandle
	for _, t := range pipeline.Tasks {
		accesses := make([]domain.Access, 0, len(t.Accesses))
		var size uint64
		for _, ba := range t.Accesses {
			r := regions[ba.Buffer]
			accesses = append(accesses, domain.NewAccess(r.Start, r.Len(), ba.Mode))
			size += r.Len()
		}
		work := shell.NewCommandWork(t.Name, t.Command, size, a.log)
		h, err := rt.Submit(ctx, work, accesses)
		if err != nil {
			// Submit-time failures unwind synchronously at the submitter.
			return errors.Join(zerr.With(err, "task", t.Name), rt.Shutdown(ctx))
		}
		handles = append(handles, h)
	}

	errs := rt.Taskwait(ctx)
	for i, h := range handles {
		if werr := h.Wait(ctx); werr != nil {
			errs = errors.Join(errs, zerr.With(werr, "task", pipeline.Tasks[i].Name))
		}
	}

	if opts.DumpPath != "" {
		errs = errors.Join(errs, a.dump(rt, opts.DumpPath))
	}

	return errors.Join(errs, rt.Shutdown(ctx))
}

func (a *App) dump(rt *Runtime, path string) error {
	if path == "-" {
		return rt.Dump(os.Stdout)
	}
	f, err := os.Create(path) //nolint:gosec // path is provided by user
	if err != nil {
		return zerr.Wrap(err, "failed to create dump file")
	}
	defer f.Close() //nolint:errcheck // best effort close in defer
	return rt.Dump(f)
}

// probeFor maps the pipeline's probe setting to an adapter. Unknown values
// fall back to the injected default.
func (a *App) probeFor(name string) ports.Probe {
	switch name {
	case "progress":
		return progrock.New()
	case "prometheus":
		return metrics.New(nil)
	default:
		return a.probe
	}
}

// layoutBuffers assigns page-aligned synthetic base addresses to the
// pipeline's buffers, in the order of the given slice (the config loader
// sorts it by name).
func layoutBuffers(buffers []ports.Buffer) map[string]domain.Region {
	out := make(map[string]domain.Region, len(buffers))
	next := bufferBase
	for _, b := range buffers {
		size := b.Size
		if size == 0 {
			size = 1
		}
		out[b.Name] = domain.NewRegion(next, size)
		next += (size + 0xfff) &^ uint64(0xfff)
	}
	return out
}
