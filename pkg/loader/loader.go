package loader

import (
	"context"
	"sync"

	"github.com/convox/logger"
	"github.com/pkg/errors"
)

var ErrClosed = errors.New("loader is closed")

// Loader runs option fetches for one form instance. Each key holds at most one
// current fetch; starting a new one on the same key cancels the previous one
// and only the latest result is applied.
type Loader struct {
	Logger *logger.Logger

	cancel  context.CancelFunc
	closed  bool
	ctx     context.Context
	keys    map[string]*entry
	lock    sync.Mutex
	pending sync.WaitGroup
}

type entry struct {
	cancel     context.CancelFunc
	generation uint64
}

func New(ctx context.Context) *Loader {
	ctx, cancel := context.WithCancel(ctx)

	return &Loader{
		Logger: logger.New("ns=loader"),
		cancel: cancel,
		ctx:    ctx,
		keys:   map[string]*entry{},
	}
}

// Load fetches a value in the background and hands it to apply if it is still
// the latest load for key when it finishes. A failed fetch applies the zero
// value of T so the form shows an empty list. apply runs with the loader
// locked and must not start another load.
func Load[T any](l *Loader, key string, fetch func(ctx context.Context) (T, error), apply func(T)) {
	ctx, generation, ok := l.begin(key)
	if !ok {
		return
	}

	go func() {
		defer l.pending.Done()

		v, err := fetch(ctx)
		if err != nil {
			if ctx.Err() == nil {
				l.Logger.At("load").Logf("key=%s state=error error=%q", key, err)
			}
			var zero T
			v = zero
		}

		l.finish(key, generation, func() { apply(v) })
	}()
}

// Run is Load for callers that need the value before going on. The fetch is
// cancelled by ctx or by Close. A failed fetch applies the zero value unless
// ctx was cancelled, in which case Run returns the context error. Run returns
// ErrClosed when the loader closed before the value could be applied.
func Run[T any](ctx context.Context, l *Loader, key string, fetch func(ctx context.Context) (T, error), apply func(T)) error {
	lctx, generation, ok := l.begin(key)
	if !ok {
		return ErrClosed
	}
	defer l.pending.Done()

	fctx, cancel := context.WithCancel(lctx)
	defer cancel()

	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	v, err := fetch(fctx)
	if err != nil {
		if ctx.Err() != nil {
			l.finish(key, generation, func() {})
			return ctx.Err()
		}
		if lctx.Err() == nil {
			l.Logger.At("run").Logf("key=%s state=error error=%q", key, err)
		}
		var zero T
		v = zero
	}

	if !l.finish(key, generation, func() { apply(v) }) && l.Closed() {
		return ErrClosed
	}

	return nil
}

// Do runs fn with the loader locked unless the loader is closed, and reports
// whether it ran. fn must not start a load.
func (l *Loader) Do(fn func()) bool {
	l.lock.Lock()
	defer l.lock.Unlock()

	if l.closed {
		return false
	}

	fn()

	return true
}

func (l *Loader) Closed() bool {
	l.lock.Lock()
	defer l.lock.Unlock()

	return l.closed
}

// Close cancels every fetch and waits for them to return. No apply runs after
// Close returns.
func (l *Loader) Close() {
	l.lock.Lock()
	l.closed = true
	l.lock.Unlock()

	l.cancel()
	l.pending.Wait()
}

// Current reports whether a load for key is still in flight.
func (l *Loader) Current(key string) bool {
	l.lock.Lock()
	defer l.lock.Unlock()

	e, ok := l.keys[key]

	return ok && e.cancel != nil
}

func (l *Loader) begin(key string) (context.Context, uint64, bool) {
	l.lock.Lock()
	defer l.lock.Unlock()

	if l.closed {
		return nil, 0, false
	}

	e, ok := l.keys[key]
	if !ok {
		e = &entry{}
		l.keys[key] = e
	}

	if e.cancel != nil {
		e.cancel()
	}

	ctx, cancel := context.WithCancel(l.ctx)

	e.cancel = cancel
	e.generation++

	l.pending.Add(1)

	return ctx, e.generation, true
}

func (l *Loader) finish(key string, generation uint64, apply func()) bool {
	l.lock.Lock()
	defer l.lock.Unlock()

	e := l.keys[key]

	if l.closed || e == nil || e.generation != generation {
		return false
	}

	e.cancel()
	e.cancel = nil

	apply()

	return true
}
