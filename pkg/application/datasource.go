package application

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/convox/logger"
	"github.com/deckops/deck/pkg/structs"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

const DefaultRefreshTimeout = 1 * time.Minute

// DataSource holds the latest normalized snapshot of one kind of application
// resource. Concurrent refreshes share a single fetch.
type DataSource[T any] struct {
	Logger  *logger.Logger
	Timeout time.Duration

	copy      func(*T) *T
	data      []T
	fetch     func(ctx context.Context) ([]T, error)
	flight    singleflight.Group
	kind      string
	listeners map[int]func()
	loaded    bool
	lock      sync.Mutex
	next      int
	normalize func(*T) *T
}

func NewDataSource[T any](kind string, fetch func(ctx context.Context) ([]T, error), normalize, copy func(*T) *T) *DataSource[T] {
	return &DataSource[T]{
		Logger:    logger.New("ns=application").Namespace("kind=%s", kind),
		Timeout:   DefaultRefreshTimeout,
		copy:      copy,
		fetch:     fetch,
		kind:      kind,
		listeners: map[int]func(){},
		normalize: normalize,
	}
}

// Ready loads the data source if it has never been loaded.
func (ds *DataSource[T]) Ready(ctx context.Context) error {
	if ds.Loaded() {
		return nil
	}

	return ds.Refresh(ctx)
}

func (ds *DataSource[T]) Loaded() bool {
	ds.lock.Lock()
	defer ds.lock.Unlock()

	return ds.loaded
}

// Refresh fetches a new snapshot and then notifies the OnNextRefresh
// subscribers registered before the fetch started. The shared fetch is not
// cancelled when ctx is done, only bounded by Timeout.
func (ds *DataSource[T]) Refresh(ctx context.Context) error {
	ch := ds.flight.DoChan("refresh", func() (interface{}, error) {
		timeout := ds.Timeout
		if timeout <= 0 {
			timeout = DefaultRefreshTimeout
		}

		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()

		return nil, ds.refresh(fctx)
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case r := <-ch:
		return r.Err
	}
}

func (ds *DataSource[T]) refresh(ctx context.Context) error {
	log := ds.Logger.At("refresh").Start()

	ds.lock.Lock()
	cutoff := ds.next
	ds.lock.Unlock()

	items, err := ds.fetch(ctx)
	if err != nil {
		return log.Error(errors.Wrapf(err, "could not load %s", ds.kind))
	}

	data := make([]T, 0, len(items))

	for i := range items {
		if n := ds.normalize(&items[i]); n != nil {
			data = append(data, *n)
		}
	}

	ds.lock.Lock()

	ds.data = data
	ds.loaded = true

	ids := []int{}

	for id := range ds.listeners {
		if id < cutoff {
			ids = append(ids, id)
		}
	}

	sort.Ints(ids)

	listeners := make([]func(), 0, len(ids))

	for _, id := range ids {
		listeners = append(listeners, ds.listeners[id])
		delete(ds.listeners, id)
	}

	ds.lock.Unlock()

	for _, fn := range listeners {
		fn()
	}

	log.Logf("count=%d", len(data))

	return nil
}

// Data returns a copy of the current snapshot.
func (ds *DataSource[T]) Data() []T {
	ds.lock.Lock()
	defer ds.lock.Unlock()

	out := make([]T, 0, len(ds.data))

	for i := range ds.data {
		out = append(out, *ds.copy(&ds.data[i]))
	}

	return out
}

// OnNextRefresh runs fn after the next successful refresh that starts after
// the subscription. The returned function removes the subscription.
func (ds *DataSource[T]) OnNextRefresh(fn func()) func() {
	ds.lock.Lock()
	defer ds.lock.Unlock()

	id := ds.next
	ds.next++
	ds.listeners[id] = fn

	return func() {
		ds.lock.Lock()
		defer ds.lock.Unlock()

		delete(ds.listeners, id)
	}
}

// Find returns a copy of the first item matching fn.
func (ds *DataSource[T]) Find(name string, fn func(T) bool) (*T, error) {
	ds.lock.Lock()
	defer ds.lock.Unlock()

	for i := range ds.data {
		if fn(ds.data[i]) {
			return ds.copy(&ds.data[i]), nil
		}
	}

	return nil, structs.ErrNotFound(ds.kind, name)
}
