package application

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"translayer/internal/ports/output"
)

type tableSnapshot struct {
	names []string
	set   map[string]struct{}
}

// TableRegistry caches the table names of the active connection for the
// lifetime of the process. The only invalidation trigger is Invalidate, wired
// to the migrations-completed signal.
type TableRegistry struct {
	lister output.TableLister

	snapshot atomic.Pointer[tableSnapshot]
	group    singleflight.Group

	mu  sync.Mutex // guards gen against concurrent Invalidate during a load
	gen uint64
}

func NewTableRegistry(lister output.TableLister) *TableRegistry {
	return &TableRegistry{lister: lister}
}

// List returns the known table names in the order reported by the lister.
func (r *TableRegistry) List(ctx context.Context) ([]string, error) {
	snap, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(snap.names))
	copy(out, snap.names)
	return out, nil
}

func (r *TableRegistry) Exists(ctx context.Context, name string) (bool, error) {
	snap, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	_, ok := snap.set[name]
	return ok, nil
}

// Invalidate drops the cached table list; the next call reloads it.
func (r *TableRegistry) Invalidate() {
	r.mu.Lock()
	r.gen++
	r.snapshot.Store(nil)
	r.mu.Unlock()
}

func (r *TableRegistry) load(ctx context.Context) (*tableSnapshot, error) {
	if snap := r.snapshot.Load(); snap != nil {
		return snap, nil
	}

	r.mu.Lock()
	gen := r.gen
	r.mu.Unlock()

	v, err, _ := r.group.Do(strconv.FormatUint(gen, 10), func() (any, error) {
		names, err := r.lister.ListTables(ctx)
		if err != nil {
			return nil, err
		}
		snap := &tableSnapshot{names: names, set: make(map[string]struct{}, len(names))}
		for _, n := range names {
			snap.set[n] = struct{}{}
		}

		r.mu.Lock()
		if r.gen == gen {
			r.snapshot.Store(snap)
		}
		r.mu.Unlock()
		return snap, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return v.(*tableSnapshot), nil
}
