package assets

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/castle-showcase/internal/engine/timer"
	"github.com/Faultbox/castle-showcase/internal/events"
	"github.com/Faultbox/castle-showcase/internal/logger"
	"github.com/Faultbox/castle-showcase/pkg/math"
)

// ErrNotLoaded is returned by Loader.Asset for names with no decoded asset.
var ErrNotLoaded = errors.New("asset not loaded")

// Options tune a Loader.
type Options struct {
	// Watchdog forces completion when loading takes longer than this.
	Watchdog time.Duration
	// EmptyDelay delays completion when nothing is registered.
	EmptyDelay time.Duration
	// ByteWeight is the share of progress driven by bytes read; the rest is
	// driven by the number of finished assets.
	ByteWeight float64
	// Parallel bounds concurrent fetches.
	Parallel int
	// Kinds limits which registered kinds are loaded. Empty means all.
	Kinds []Kind
}

// DefaultOptions returns the stock loader tuning.
func DefaultOptions() Options {
	return Options{
		Watchdog:   20 * time.Second,
		EmptyDelay: 500 * time.Millisecond,
		ByteWeight: 0.4,
		Parallel:   4,
	}
}

// Result is the outcome of one fetch: Asset is set when loaded, Err when failed.
type Result struct {
	Descriptor Descriptor
	Asset      Asset
	Err        error
}

// Failed reports whether the fetch failed.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Summary is handed to the completion callback.
type Summary struct {
	Loaded   []Result
	Failed   []Result
	TimedOut bool
	Elapsed  time.Duration
}

// OK reports whether every asset loaded before the deadline.
func (s Summary) OK() bool {
	return len(s.Failed) == 0 && !s.TimedOut
}

// LoadState is a point-in-time view of a loading run.
type LoadState struct {
	Total     int
	Completed int
	Done      bool
	TimedOut  bool
	Percent   float64
}

type outcome struct {
	run    *Run
	result Result
}

// Run tracks a single StartLoading call.
type Run struct {
	id         uint64
	total      int
	completed  int
	done       bool
	timedOut   bool
	started    time.Duration
	bytesTotal int64
	bytesRead  atomic.Int64
	results    []Result
	summary    Summary
	onLoad     func(Summary)
	deadline   timer.Handle
	cancel     context.CancelFunc
	byteWeight float64
}

// State returns the run's progress. Safe to call from the main loop only.
func (r *Run) State() LoadState {
	return LoadState{
		Total:     r.total,
		Completed: r.completed,
		Done:      r.done,
		TimedOut:  r.timedOut,
		Percent:   r.percent(),
	}
}

// Done reports whether the run completed or was forced complete.
func (r *Run) Done() bool {
	return r.done
}

// Summary returns the completion summary; it is empty until Done.
func (r *Run) Summary() Summary {
	return r.summary
}

// percent blends byte progress with completed-count progress. The blend
// smooths the bar; only Completed is guaranteed monotonic.
func (r *Run) percent() float64 {
	if r.done {
		return 100
	}
	if r.total == 0 {
		return 0
	}
	countFrac := float64(r.completed) / float64(r.total)
	byteFrac := countFrac
	if r.bytesTotal > 0 {
		byteFrac = math.Clamp01(float64(r.bytesRead.Load()) / float64(r.bytesTotal))
	}
	p := r.byteWeight*byteFrac + (1-r.byteWeight)*countFrac
	return 100 * math.Clamp01(p)
}

// Loader fetches registered assets on worker goroutines and applies their
// outcomes on the main loop via Poll.
type Loader struct {
	registry *Registry
	fetcher  Fetcher
	timers   *timer.Queue
	bus      *events.Bus
	opts     Options
	log      *zap.Logger

	cache    *Cache
	outcomes chan outcome

	mu      sync.Mutex // guards runs and closed; load state is main-loop only
	runs    []*Run
	nextID  uint64
	latest  *Run
	closed  bool
	workers sync.WaitGroup
}

// NewLoader creates a loader. bus may be nil.
func NewLoader(registry *Registry, fetcher Fetcher, timers *timer.Queue, bus *events.Bus, opts Options) *Loader {
	if opts.Parallel <= 0 {
		opts.Parallel = 1
	}
	return &Loader{
		registry: registry,
		fetcher:  fetcher,
		timers:   timers,
		bus:      bus,
		opts:     opts,
		log:      logger.Named("assets"),
		cache:    NewCache(),
		outcomes: make(chan outcome, 64),
	}
}

// StartLoading fetches every selected asset. onLoad is called exactly once
// for this run, from Poll or a timer callback on the main loop, when every
// asset finished (loaded or failed), when nothing was registered after
// EmptyDelay, or when the watchdog fires.
func (l *Loader) StartLoading(ctx context.Context, onLoad func(Summary)) *Run {
	descs := l.registry.Select(l.opts.Kinds...)

	l.mu.Lock()
	l.nextID++
	runCtx, cancel := context.WithCancel(ctx)
	run := &Run{
		id:         l.nextID,
		total:      len(descs),
		started:    l.timers.Now(),
		onLoad:     onLoad,
		cancel:     cancel,
		byteWeight: l.opts.ByteWeight,
	}
	l.runs = append(l.runs, run)
	l.latest = run
	closed := l.closed
	l.mu.Unlock()

	l.log.Info("loading started", zap.Uint64("run", run.id), zap.Int("assets", run.total))
	l.publish(events.Event{Kind: events.LoadStarted, Total: run.total})

	if closed {
		cancel()
	}

	if run.total == 0 {
		run.deadline = l.timers.After(l.opts.EmptyDelay, func() { l.finish(run) })
		return run
	}

	run.deadline = l.timers.After(l.opts.Watchdog, func() {
		if run.done {
			return
		}
		run.timedOut = true
		l.log.Warn("loading watchdog fired",
			zap.Uint64("run", run.id),
			zap.Int("completed", run.completed),
			zap.Int("total", run.total))
		l.finish(run)
	})

	for _, d := range descs {
		run.bytesTotal += l.fetcher.Size(d)
	}

	l.workers.Add(1)
	go l.dispatch(runCtx, run, descs)
	return run
}

// dispatch runs fetches with bounded parallelism. Errors never abort the
// group: a failed asset is reported as a Result like any other.
func (l *Loader) dispatch(ctx context.Context, run *Run, descs []Descriptor) {
	defer l.workers.Done()

	g := new(errgroup.Group)
	g.SetLimit(l.opts.Parallel)

	for _, d := range descs {
		g.Go(func() error {
			res := Result{Descriptor: d}
			res.Asset, res.Err = l.fetcher.Fetch(ctx, d, func(n int64) {
				run.bytesRead.Add(n)
			})
			if res.Err == nil && res.Asset == nil {
				res.Err = ErrNotLoaded
			}
			select {
			case l.outcomes <- outcome{run: run, result: res}:
			case <-ctx.Done():
			}
			return nil
		})
	}
	_ = g.Wait()
}

// Poll applies fetch outcomes that arrived since the last call and returns
// how many were applied. Call it once per frame from the main loop.
func (l *Loader) Poll() int {
	applied := 0
	for {
		select {
		case o := <-l.outcomes:
			l.apply(o.run, o.result)
			applied++
		default:
			return applied
		}
	}
}

func (l *Loader) apply(run *Run, res Result) {
	if run.completed < run.total {
		run.completed++
	}
	run.results = append(run.results, res)

	if res.Err != nil {
		l.log.Warn("asset failed to load",
			zap.String("name", res.Descriptor.Name),
			zap.String("path", res.Descriptor.Path),
			zap.Error(res.Err))
		l.publish(events.Event{Kind: events.LoadError, Asset: res.Descriptor.Name, Err: res.Err})
	} else {
		l.cache.Set(res.Descriptor.Name, res.Asset)
		l.log.Debug("asset loaded",
			zap.String("name", res.Descriptor.Name),
			zap.String("kind", res.Descriptor.Kind.String()))
	}

	l.publish(events.Event{
		Kind:      events.LoadProgress,
		Asset:     res.Descriptor.Name,
		Completed: run.completed,
		Total:     run.total,
		Percent:   run.percent(),
	})

	if !run.done && run.completed == run.total {
		l.finish(run)
	}
}

func (l *Loader) finish(run *Run) {
	if run.done {
		return
	}
	run.done = true
	l.timers.Cancel(run.deadline)
	// Fetches still running after a forced completion are abandoned.
	run.cancel()

	sum := Summary{TimedOut: run.timedOut, Elapsed: l.timers.Now() - run.started}
	for _, r := range run.results {
		if r.Failed() {
			sum.Failed = append(sum.Failed, r)
		} else {
			sum.Loaded = append(sum.Loaded, r)
		}
	}
	run.summary = sum

	l.log.Info("loading complete",
		zap.Uint64("run", run.id),
		zap.Int("loaded", len(sum.Loaded)),
		zap.Int("failed", len(sum.Failed)),
		zap.Bool("timed_out", sum.TimedOut),
		zap.Duration("elapsed", sum.Elapsed))

	l.publish(events.Event{
		Kind:      events.LoadComplete,
		Completed: run.completed,
		Total:     run.total,
		Percent:   100,
		TimedOut:  run.timedOut,
	})

	if run.onLoad != nil {
		run.onLoad(sum)
	}
}

func (l *Loader) publish(ev events.Event) {
	if l.bus != nil {
		l.bus.Publish(ev)
	}
}

// State returns the progress of the most recent run.
func (l *Loader) State() LoadState {
	l.mu.Lock()
	run := l.latest
	l.mu.Unlock()
	if run == nil {
		return LoadState{}
	}
	return run.State()
}

// Asset returns a decoded asset by name.
func (l *Loader) Asset(name string) (Asset, error) {
	if a, ok := l.cache.Get(name); ok {
		return a, nil
	}
	return nil, ErrNotLoaded
}

// Model returns a decoded model by name.
func (l *Loader) Model(name string) (*Model, bool) {
	a, err := l.Asset(name)
	if err != nil {
		return nil, false
	}
	m, ok := a.(*Model)
	return m, ok
}

// Audio returns decoded audio by name.
func (l *Loader) Audio(name string) (*Audio, bool) {
	a, err := l.Asset(name)
	if err != nil {
		return nil, false
	}
	au, ok := a.(*Audio)
	return au, ok
}

// Close cancels in-flight fetches and waits for workers to exit.
func (l *Loader) Close() error {
	l.mu.Lock()
	l.closed = true
	runs := l.runs
	l.mu.Unlock()

	for _, r := range runs {
		r.cancel()
	}
	l.workers.Wait()
	return nil
}
